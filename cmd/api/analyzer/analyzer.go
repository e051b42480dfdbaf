package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/mongo"
	"google.golang.org/genai"

	"product-compare/cmd/api/apperr"
	"product-compare/cmd/api/trace"
	"product-compare/internal/logger"
	"product-compare/config"
	"product-compare/models"
)

var (
	ErrEmptyResponse = errors.New("response is not a valid string")
	ErrShortResponse = errors.New("response is too short to be valid")
)

// Generator 는 completion 서비스 호출부다. *genai.Models 가 이 인터페이스를 만족한다.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// UsageRecorder 는 호출 단위 사용량 로그(ai_logs)를 저장한다.
type UsageRecorder interface {
	Insert(ctx context.Context, log models.AILog) (*mongo.InsertOneResult, error)
}

// Client 는 상품 분석/비교 호출을 담당한다.
// 생성 이후에는 불변 설정만 보관하므로 여러 요청에서 공유해도 된다.
type Client struct {
	gen       Generator
	model     string
	timeout   time.Duration
	minLength int
	recorder  UsageRecorder
}

// New 는 주어진 Generator 로 Client 를 만든다. recorder 는 nil 일 수 있다.
func New(gen Generator, cfg config.LLMConfig, recorder UsageRecorder) *Client {
	minLength := cfg.MinResponseLength
	if minLength <= 0 {
		minLength = 10
	}
	return &Client{
		gen:       gen,
		model:     cfg.ModelName,
		timeout:   cfg.Timeout(),
		minLength: minLength,
		recorder:  recorder,
	}
}

// NewFromEnv 는 GEMINI_API_KEY 로 genai 클라이언트를 만들어 Client 를 구성한다.
func NewFromEnv(ctx context.Context, cfg config.LLMConfig, recorder UsageRecorder) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	if !strings.EqualFold(cfg.Provider, config.ProviderGoogle) {
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return New(gc.Models, cfg, recorder), nil
}

// Model 은 요약 메타데이터에 기록할 모델 식별자다.
func (c *Client) Model() string { return c.model }

// IsURL 은 input 이 scheme 과 host 를 가진 절대 URL 인지 문법적으로만 검사한다.
func (c *Client) IsURL(input string) bool { return IsURL(input) }

func IsURL(input string) bool {
	input = strings.TrimSpace(input)
	if input == "" || strings.ContainsAny(input, " \t\r\n") {
		return false
	}
	u, err := url.Parse(input)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}

// Analyze 는 단일 상품을 분석한 마크다운을 반환한다.
// isURL 이 true 이면 프롬프트가 urlContext 도구 사용을 지시한다.
func (c *Client) Analyze(ctx context.Context, input string, isURL bool) (string, error) {
	text, err := c.generate(ctx, models.AIOperationAnalyze, BuildSummaryPrompt(input, isURL))
	if err != nil {
		return "", apperr.Wrap(apperr.KindAnalysis, "", fmt.Errorf("failed to generate summary: %w", err))
	}
	return text, nil
}

// Compare 는 summaries 순서 그대로 번호를 붙여 비교 결과 마크다운을 반환한다.
func (c *Client) Compare(ctx context.Context, summaries []string) (string, error) {
	text, err := c.generate(ctx, models.AIOperationCompare, BuildComparisonPrompt(summaries))
	if err != nil {
		return "", apperr.Wrap(apperr.KindAnalysis, "", fmt.Errorf("failed to compare products: %w", err))
	}
	return text, nil
}

func (c *Client) generateConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: SYSTEM_INSTRUCTION}}},
		Tools:             []*genai.Tool{{URLContext: &genai.URLContext{}}},
		ThinkingConfig:    &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
	}
}

func (c *Client) generate(ctx context.Context, operation, prompt string) (string, error) {
	startTime := time.Now()
	requestID, spanID := trace.NextSpanID(ctx)

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	result, err := c.gen.GenerateContent(callCtx, c.model, genai.Text(prompt), c.generateConfig())

	var text string
	if err == nil {
		text, err = c.validate(result)
	}

	c.record(ctx, operation, requestID, prompt, startTime, result, text, err)

	fields := logger.Fields{
		"request_id":  requestID,
		"span_id":     spanID,
		"operation":   operation,
		"model":       c.model,
		"duration_ms": time.Since(startTime).Milliseconds(),
	}
	if err != nil {
		fields["error_kind"] = string(apperr.KindAnalysis)
		fields["error"] = err.Error()
		logger.ErrorWithFields("completion call failed", fields)
		return "", err
	}
	logger.InfoWithFields("completion call succeeded", fields)
	return text, nil
}

func (c *Client) validate(result *genai.GenerateContentResponse) (string, error) {
	if result == nil {
		return "", ErrEmptyResponse
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	if utf8.RuneCountInString(text) < c.minLength {
		return "", ErrShortResponse
	}
	return text, nil
}

func (c *Client) record(ctx context.Context, operation, requestID, prompt string, startTime time.Time, result *genai.GenerateContentResponse, text string, callErr error) {
	if c.recorder == nil {
		return
	}
	entry := models.AILog{
		Operation:       operation,
		ModelName:       c.model,
		DurationMs:      time.Since(startTime).Milliseconds(),
		Success:         callErr == nil,
		RequestID:       requestID,
		PromptChars:     utf8.RuneCountInString(prompt),
		ResponseExcerpt: excerpt(text, 200),
		RequestedAt:     startTime,
		CompletedAt:     time.Now(),
	}
	if result != nil {
		entry.ModelVersion = result.ModelVersion
		if result.UsageMetadata != nil {
			entry.InputTokens = int64(result.UsageMetadata.PromptTokenCount)
			entry.OutputTokens = int64(result.UsageMetadata.CandidatesTokenCount)
			entry.TotalTokens = int64(result.UsageMetadata.TotalTokenCount)
		}
	}
	if callErr != nil {
		msg := callErr.Error()
		entry.ErrorMessage = &msg
	}

	// 요청이 취소되어도 사용량 기록은 남긴다
	if _, err := c.recorder.Insert(context.WithoutCancel(ctx), entry); err != nil {
		logger.ErrorWithFields("failed to record ai usage", logger.Fields{
			"request_id": requestID,
			"operation":  operation,
			"error":      err.Error(),
		})
	}
}

func excerpt(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
