package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("PORT", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_DB_NAME", "")

	c, err := Parse([]byte("logging:\n  level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, 6000, c.Server.Port)
	assert.Equal(t, "/api", c.Server.APIPrefix)
	assert.Equal(t, int64(1<<20), c.Server.BodyLimitBytes)
	assert.Equal(t, "gemini-2.5-flash", c.LLM.ModelName)
	assert.Equal(t, 10, c.LLM.MinResponseLength)
	assert.Equal(t, 60*time.Second, c.LLM.Timeout())
	assert.Equal(t, StrategySelectors, c.Scraper.Strategy)
	assert.Equal(t, 7*24*time.Hour, c.Auth.TokenTTL())
	assert.Equal(t, "product-compare.summary.events", c.EventBus.Topic)
}

func TestParseEnvOverridesFile(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("MONGO_URI", "mongodb://mongo:27017")
	t.Setenv("MONGO_DB_NAME", "compare_test")
	t.Setenv("LOG_LEVEL", "warn")

	c, err := Parse([]byte(`
server:
  port: 7000
mongo:
  uri: mongodb://file:27017
  database: from_file
`))
	require.NoError(t, err)

	assert.Equal(t, 8081, c.Server.Port)
	assert.Equal(t, "mongodb://mongo:27017", c.Mongo.URI)
	assert.Equal(t, "compare_test", c.Mongo.Database)
	assert.Equal(t, "warn", c.Logging.Level)
}

func TestParseRejectsUnsupportedValues(t *testing.T) {
	_, err := Parse([]byte("llm:\n  provider: openai\n"))
	assert.ErrorContains(t, err, "unsupported LLM provider")

	_, err = Parse([]byte("scraper:\n  strategy: goose\n"))
	assert.ErrorContains(t, err, "unsupported scraper strategy")

	_, err = Parse([]byte("server:\n  api_prefix: api\n"))
	assert.Error(t, err)
}
