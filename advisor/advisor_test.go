package advisor

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/etnz/club"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeModel answers every request with text or err and records the requests.
type fakeModel struct {
	mu       sync.Mutex
	text     string
	err      error
	prompts  []string
	configs  []*genai.GenerateContentConfig
	modelIDs []string
}

func (f *fakeModel) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, contents[0].Parts[0].Text)
	f.configs = append(f.configs, config)
	f.modelIDs = append(f.modelIDs, model)
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(f.text, genai.RoleModel)}},
	}, nil
}

func (f *fakeModel) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func TestGenerateText(t *testing.T) {
	m := &fakeModel{text: "all good"}
	a := New(m, "", zerolog.Nop())
	ctx := context.Background()

	got, err := a.MarketAnalysis(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "all good", got)
	assert.Contains(t, m.prompts[0], "stock ticker AAPL")
	assert.Equal(t, DefaultModel, m.modelIDs[0])
	assert.Nil(t, m.configs[0])

	_, err = a.YieldCurveAnalysis(ctx)
	require.NoError(t, err)
	assert.Contains(t, m.prompts[1], "US Treasury yield curve")

	_, err = a.StockModelAnalysis(ctx, "DCF of MSFT")
	require.NoError(t, err)
	assert.Equal(t, "DCF of MSFT", m.prompts[2])
}

func TestRiskAnalysis(t *testing.T) {
	m := &fakeModel{text: "concentrated"}
	a := New(m, "gemini-test", zerolog.Nop())

	_, err := a.RiskAnalysis(context.Background(), []club.Holding{
		{Asset: "AAPL", MarketValue: club.M(5250)},
		{Asset: "GOOGL", MarketValue: club.M(1300)},
	})
	require.NoError(t, err)
	assert.Contains(t, m.prompts[0], `[{"asset":"AAPL","value":5250},{"asset":"GOOGL","value":1300}]`)
	assert.Equal(t, "gemini-test", m.modelIDs[0])
}

func TestGenerateText_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := New(nil, "", zerolog.Nop()).GenerateText(ctx, "hello")
	assert.ErrorIs(t, err, ErrNotConfigured)

	boom := errors.New("quota exceeded")
	_, err = New(&fakeModel{err: boom}, "", zerolog.Nop()).GenerateText(ctx, "hello")
	assert.ErrorIs(t, err, boom)

	_, err = New(&fakeModel{}, "", zerolog.Nop()).GenerateText(ctx, "hello")
	assert.Error(t, err, "an empty answer is an error")
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "text", Message("text", nil))
	assert.Contains(t, Message("", ErrNotConfigured), "not configured")
	assert.Equal(t, "An error occurred while fetching analysis: quota exceeded", Message("", errors.New("quota exceeded")))
}

func TestNewGemini_WithoutKey(t *testing.T) {
	a, err := NewGemini(context.Background(), "", "", zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, a.Configured())
}
