// Package advisor produces advisory texts and asset classifications with a
// Gemini model.
//
// Every call is fallible. Callers render errors with Message and the club
// analytics never depend on the advisor: ClassifyAssets falls back to a
// static classification when the model cannot be used.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/club"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// ClassificationTTL is how long a model classification is reused.
const ClassificationTTL = 24 * time.Hour

// ErrNotConfigured is returned when no API key was provided.
var ErrNotConfigured = errors.New("Gemini API key is not configured")

// Model generates content. *genai.Models implements it.
type Model interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Advisor wraps a Model with the club prompts.
type Advisor struct {
	model     Model
	modelName string
	cache     *cache.Cache
	log       zerolog.Logger
}

// New returns an Advisor on model. A nil model makes every call fail with
// ErrNotConfigured, and ClassifyAssets use the fallback.
func New(model Model, modelName string, log zerolog.Logger) *Advisor {
	if modelName == "" {
		modelName = DefaultModel
	}
	return &Advisor{
		model:     model,
		modelName: modelName,
		cache:     cache.New(ClassificationTTL, time.Hour),
		log:       log.With().Str("component", "advisor").Logger(),
	}
}

// NewGemini returns an Advisor on the Gemini API. An empty apiKey returns an
// unconfigured Advisor.
func NewGemini(ctx context.Context, apiKey, modelName string, log zerolog.Logger) (*Advisor, error) {
	if apiKey == "" {
		return New(nil, modelName, log), nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return New(client.Models, modelName, log), nil
}

// Configured returns true when the Advisor has a model.
func (a *Advisor) Configured() bool { return a.model != nil }

func (a *Advisor) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	if a.model == nil {
		return "", ErrNotConfigured
	}
	resp, err := a.model.GenerateContent(ctx, a.modelName, []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}, config)
	if err != nil {
		a.log.Error().Err(err).Str("model", a.modelName).Msg("generation failed")
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from %s", a.modelName)
	}
	return text, nil
}

// GenerateText returns the model answer to prompt.
func (a *Advisor) GenerateText(ctx context.Context, prompt string) (string, error) {
	return a.generate(ctx, prompt, nil)
}

// MarketAnalysis returns a short balanced analysis of a ticker.
func (a *Advisor) MarketAnalysis(ctx context.Context, ticker string) (string, error) {
	return a.GenerateText(ctx, fmt.Sprintf("Provide a brief, balanced analysis for the stock ticker %s. "+
		"Include a summary of recent news, potential bullish points, and potential bearish points. "+
		"Format the output as a simple text summary. Do not use markdown.", ticker))
}

// StockModelAnalysis runs a free form stock model prompt.
func (a *Advisor) StockModelAnalysis(ctx context.Context, prompt string) (string, error) {
	return a.GenerateText(ctx, prompt)
}

// RiskAnalysis returns a qualitative risk analysis of holdings.
func (a *Advisor) RiskAnalysis(ctx context.Context, holdings []club.Holding) (string, error) {
	type position struct {
		Asset string     `json:"asset"`
		Value club.Money `json:"value"`
	}
	positions := make([]position, len(holdings))
	for i, h := range holdings {
		positions[i] = position{Asset: h.Asset, Value: h.MarketValue}
	}
	data, err := json.Marshal(positions)
	if err != nil {
		return "", err
	}
	return a.GenerateText(ctx, fmt.Sprintf("Given the following portfolio holdings (asset, market value): %s. "+
		"Provide a brief qualitative risk analysis. Mention concentration risk, sector-specific risks if identifiable "+
		"(e.g., heavy in tech), and general market risks relevant to these assets. "+
		"Format as a simple text summary with paragraphs. Do not use markdown.", data))
}

// YieldCurveAnalysis comments the current US Treasury yield curve.
func (a *Advisor) YieldCurveAnalysis(ctx context.Context) (string, error) {
	return a.GenerateText(ctx, "Provide a concise analysis of the current US Treasury yield curve. "+
		"Explain its current shape (e.g., normal, inverted, flat) and what it implies for the economy "+
		"and for stock market investors. Format as a simple text summary. Do not use markdown.")
}

// Message renders the outcome of an advisory call for the user.
func Message(text string, err error) string {
	switch {
	case err == nil:
		return text
	case errors.Is(err, ErrNotConfigured):
		return "Error: Gemini API key is not configured. Please set the API key in the configuration."
	default:
		return "An error occurred while fetching analysis: " + strings.TrimSpace(err.Error())
	}
}
