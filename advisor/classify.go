package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/club"
	"github.com/patrickmn/go-cache"
	"google.golang.org/genai"
)

var classificationSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"ticker":    {Type: genai.TypeString},
			"sector":    {Type: genai.TypeString},
			"geography": {Type: genai.TypeString},
			"assetType": {Type: genai.TypeString},
		},
		Required: []string{"ticker", "sector", "geography", "assetType"},
	},
}

// ClassifyAssets returns the sector, geography and asset type of tickers.
//
// Model answers are cached per ticker set. When the model is not configured
// or its answer is unusable, FallbackClassify is returned instead and is not
// cached.
func (a *Advisor) ClassifyAssets(ctx context.Context, tickers []string) []club.AssetDetails {
	if len(tickers) == 0 {
		return []club.AssetDetails{}
	}
	key := cacheKey(tickers)
	if v, found := a.cache.Get(key); found {
		return slices.Clone(v.([]club.AssetDetails))
	}
	details, err := a.classify(ctx, tickers)
	if err != nil {
		a.log.Warn().Err(err).Strs("tickers", tickers).Msg("classification failed, using fallback")
		return FallbackClassify(tickers)
	}
	a.cache.Set(key, details, cache.DefaultExpiration)
	return slices.Clone(details)
}

func (a *Advisor) classify(ctx context.Context, tickers []string) ([]club.AssetDetails, error) {
	prompt := fmt.Sprintf("For the following stock tickers: %s. Provide their primary sector "+
		"(e.g., Technology, Healthcare, Financials), geography (country of primary listing, e.g., USA, China), "+
		"and asset type (e.g., Common Stock, ETF).", strings.Join(tickers, ", "))
	text, err := a.generate(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   classificationSchema,
	})
	if err != nil {
		return nil, err
	}
	return parseClassification(text)
}

// parseClassification decodes a JSON array of asset details.
func parseClassification(text string) ([]club.AssetDetails, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") {
		return nil, fmt.Errorf("invalid JSON response: not an array")
	}
	var details []club.AssetDetails
	if err := json.Unmarshal([]byte(text), &details); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}
	for i, d := range details {
		if d.Ticker == "" {
			return nil, fmt.Errorf("invalid JSON response: item %d has no ticker", i)
		}
	}
	return details, nil
}

var fallbackTech = []string{"AAPL", "GOOGL", "MSFT"}

// FallbackClassify classifies the big tech tickers as Technology and any
// other as Other, all listed in the USA as Equity.
func FallbackClassify(tickers []string) []club.AssetDetails {
	details := make([]club.AssetDetails, len(tickers))
	for i, t := range tickers {
		sector := "Other"
		if slices.Contains(fallbackTech, t) {
			sector = "Technology"
		}
		details[i] = club.AssetDetails{Ticker: t, Sector: sector, Geography: "USA", AssetType: "Equity"}
	}
	return details
}

func cacheKey(tickers []string) string {
	sorted := slices.Clone(tickers)
	slices.Sort(sorted)
	return strings.Join(slices.Compact(sorted), ",")
}
