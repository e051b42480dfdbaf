package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Server   ServerConfig   `yaml:"server"`
	Mongo    MongoConfig    `yaml:"mongo"`
	LLM      LLMConfig      `yaml:"llm"`
	Scraper  ScraperConfig  `yaml:"scraper"`
	Auth     AuthConfig     `yaml:"auth"`
	EventBus EventBusConfig `yaml:"eventbus"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Port               int      `yaml:"port"`
	APIPrefix          string   `yaml:"api_prefix"`
	BodyLimitBytes     int64    `yaml:"body_limit_bytes"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// LLMConfig 는 분석/비교에 사용하는 completion 서비스 설정이다.
type LLMConfig struct {
	Provider          string `yaml:"provider"`
	ModelName         string `yaml:"model_name"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
	MinResponseLength int    `yaml:"min_response_length"`
}

// ScraperConfig 는 URL 분석 실패 시 사용하는 스크래핑 fallback 설정이다.
//
// strategy: selectors | readability | trafilatura
type ScraperConfig struct {
	Strategy       string `yaml:"strategy"`
	RenderJS       bool   `yaml:"render_js"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
}

type AuthConfig struct {
	Issuer        string `yaml:"issuer"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

type EventBusConfig struct {
	Enabled bool   `yaml:"enabled"`
	Topic   string `yaml:"topic"`
}

const (
	ProviderGoogle = "google"

	StrategySelectors   = "selectors"
	StrategyReadability = "readability"
	StrategyTrafilatura = "trafilatura"
)

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	c, err := Parse(data)
	if err != nil {
		panic(err)
	}
	config = c
}

// Parse decodes yaml bytes, applies environment overrides and defaults, then validates.
func Parse(data []byte) (*AppConfig, error) {
	var c AppConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	c.applyEnv()
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func (c *AppConfig) applyEnv() {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("MONGO_DB_NAME"); v != "" {
		c.Mongo.Database = v
	}
}

func (c *AppConfig) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 6000
	}
	if c.Server.APIPrefix == "" {
		c.Server.APIPrefix = "/api"
	}
	if c.Server.BodyLimitBytes <= 0 {
		c.Server.BodyLimitBytes = 1 << 20
	}
	if c.Mongo.URI == "" {
		// local docker-compose default
		c.Mongo.URI = "mongodb://localhost:27017"
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "product_compare"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderGoogle
	}
	if c.LLM.ModelName == "" {
		c.LLM.ModelName = "gemini-2.5-flash"
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = 60
	}
	if c.LLM.MinResponseLength <= 0 {
		c.LLM.MinResponseLength = 10
	}
	if c.Scraper.Strategy == "" {
		c.Scraper.Strategy = StrategySelectors
	}
	if c.Scraper.TimeoutSeconds <= 0 {
		c.Scraper.TimeoutSeconds = 15
	}
	if c.Auth.TokenTTLHours <= 0 {
		c.Auth.TokenTTLHours = 7 * 24
	}
	if c.EventBus.Topic == "" {
		c.EventBus.Topic = "product-compare.summary.events"
	}
}

// Validate rejects values the application cannot run with.
func (c *AppConfig) Validate() error {
	if !strings.EqualFold(c.LLM.Provider, ProviderGoogle) {
		return fmt.Errorf("unsupported LLM provider: %s", c.LLM.Provider)
	}
	switch strings.ToLower(c.Scraper.Strategy) {
	case StrategySelectors, StrategyReadability, StrategyTrafilatura:
	default:
		return fmt.Errorf("unsupported scraper strategy: %s", c.Scraper.Strategy)
	}
	if !strings.HasPrefix(c.Server.APIPrefix, "/") {
		return fmt.Errorf("server.api_prefix must start with '/': %q", c.Server.APIPrefix)
	}
	return nil
}

func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c ScraperConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
