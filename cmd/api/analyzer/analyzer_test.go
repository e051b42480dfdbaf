package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"google.golang.org/genai"

	"product-compare/cmd/api/apperr"
	"product-compare/config"
	"product-compare/models"
)

type fakeGenerator struct {
	text string
	err  error

	calls   int
	model   string
	prompt  string
	lastCfg *genai.GenerateContentConfig
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.lastCfg = cfg
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: f.text}}},
		}},
		ModelVersion: "gemini-2.5-flash-001",
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     12,
			CandidatesTokenCount: 34,
			TotalTokenCount:      46,
		},
	}, nil
}

type fakeRecorder struct {
	logs []models.AILog
}

func (f *fakeRecorder) Insert(ctx context.Context, log models.AILog) (*mongo.InsertOneResult, error) {
	f.logs = append(f.logs, log)
	return &mongo.InsertOneResult{}, nil
}

func testLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		Provider:          config.ProviderGoogle,
		ModelName:         "gemini-2.5-flash",
		TimeoutSeconds:    5,
		MinResponseLength: 10,
	}
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/p"))
	assert.True(t, IsURL("http://shop.example.com/item?id=3"))
	assert.False(t, IsURL("not a url"))
	assert.False(t, IsURL("iPhone 15 Pro Max 256GB $1199"))
	assert.False(t, IsURL("example.com/p"))
	assert.False(t, IsURL(""))
}

func TestAnalyzeReturnsTrimmedMarkdown(t *testing.T) {
	gen := &fakeGenerator{text: "\n  # Product Analysis\n\n## Product Information\n  "}
	rec := &fakeRecorder{}
	c := New(gen, testLLMConfig(), rec)

	out, err := c.Analyze(context.Background(), "https://example.com/p", true)
	require.NoError(t, err)
	assert.Equal(t, "# Product Analysis\n\n## Product Information", out)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "gemini-2.5-flash", gen.model)
	assert.Contains(t, gen.prompt, "Use the urlContext tool")
	assert.Contains(t, gen.prompt, "INPUT: https://example.com/p")

	require.NotNil(t, gen.lastCfg)
	require.Len(t, gen.lastCfg.Tools, 1)
	assert.NotNil(t, gen.lastCfg.Tools[0].URLContext)
	require.NotNil(t, gen.lastCfg.ThinkingConfig)
	assert.Equal(t, int32(0), *gen.lastCfg.ThinkingConfig.ThinkingBudget)

	require.Len(t, rec.logs, 1)
	assert.Equal(t, models.AIOperationAnalyze, rec.logs[0].Operation)
	assert.True(t, rec.logs[0].Success)
	assert.Equal(t, int64(46), rec.logs[0].TotalTokens)
	assert.Equal(t, "gemini-2.5-flash-001", rec.logs[0].ModelVersion)
}

func TestAnalyzeTextInputUsesDescriptionInstruction(t *testing.T) {
	gen := &fakeGenerator{text: "# Product Analysis for a phone"}
	c := New(gen, testLLMConfig(), nil)

	_, err := c.Analyze(context.Background(), "iPhone 15 Pro Max $1199", false)
	require.NoError(t, err)
	assert.Contains(t, gen.prompt, "Analyze the provided product description")
	assert.NotContains(t, gen.prompt, "urlContext")
}

func TestAnalyzeRejectsShortResponse(t *testing.T) {
	gen := &fakeGenerator{text: "  short  "}
	rec := &fakeRecorder{}
	c := New(gen, testLLMConfig(), rec)

	_, err := c.Analyze(context.Background(), "some product", false)
	require.Error(t, err)
	assert.Equal(t, apperr.KindAnalysis, apperr.KindOf(err))
	assert.ErrorIs(t, err, ErrShortResponse)

	require.Len(t, rec.logs, 1)
	assert.False(t, rec.logs[0].Success)
	require.NotNil(t, rec.logs[0].ErrorMessage)
}

func TestAnalyzeRejectsEmptyResponse(t *testing.T) {
	c := New(&fakeGenerator{text: "   "}, testLLMConfig(), nil)

	_, err := c.Analyze(context.Background(), "some product", false)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestAnalyzeWrapsUpstreamFailure(t *testing.T) {
	c := New(&fakeGenerator{err: errors.New("quota exceeded")}, testLLMConfig(), nil)

	_, err := c.Analyze(context.Background(), "some product", false)
	require.Error(t, err)
	assert.Equal(t, apperr.KindAnalysis, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestCompareLabelsProductsInOrder(t *testing.T) {
	gen := &fakeGenerator{text: "# Product Comparison Analysis"}
	rec := &fakeRecorder{}
	c := New(gen, testLLMConfig(), rec)

	out, err := c.Compare(context.Background(), []string{"alpha summary", "beta summary"})
	require.NoError(t, err)
	assert.Equal(t, "# Product Comparison Analysis", out)

	first := strings.Index(gen.prompt, "PRODUCT 1:\nalpha summary")
	second := strings.Index(gen.prompt, "PRODUCT 2:\nbeta summary")
	assert.GreaterOrEqual(t, first, 0)
	assert.Greater(t, second, first)
	assert.Contains(t, gen.prompt, "alpha summary\n\nPRODUCT 2:")

	require.Len(t, rec.logs, 1)
	assert.Equal(t, models.AIOperationCompare, rec.logs[0].Operation)
}

func TestCompareWrapsUpstreamFailure(t *testing.T) {
	c := New(&fakeGenerator{err: errors.New("unavailable")}, testLLMConfig(), nil)

	_, err := c.Compare(context.Background(), []string{"a", "b"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindAnalysis, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "failed to compare products")
}
