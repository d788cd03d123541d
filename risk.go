package club

import (
	"slices"
	"strings"
)

// Concentration is the share of a view's total value held in its largest
// positions.
type Concentration struct {
	Top1 Percent `json:"top1"`
	Top3 Percent `json:"top3"`
	Top5 Percent `json:"top5"`
}

// ByMarketValue returns a copy of holdings sorted by decreasing market value.
func ByMarketValue(holdings []Holding) []Holding {
	sorted := slices.Clone(holdings)
	slices.SortStableFunc(sorted, func(a, b Holding) int { return b.MarketValue.Cmp(a.MarketValue) })
	return sorted
}

// ComputeConcentration returns the weight of the top 1, 3 and 5 holdings in
// totalValue. It is all zero without holdings or with a zero total value.
func ComputeConcentration(holdings []Holding, totalValue Money) Concentration {
	if len(holdings) == 0 || totalValue.IsZero() {
		return Concentration{}
	}
	sorted := ByMarketValue(holdings)
	top := func(k int) Percent {
		return Pct(MarketValue(sorted[:min(k, len(sorted))]).Ratio(totalValue))
	}
	return Concentration{Top1: top(1), Top3: top(3), Top5: top(5)}
}

// Weight is the share of a view held in one position, or in cash.
type Weight struct {
	Name   string  `json:"name"`
	Value  Money   `json:"value"`
	Weight Percent `json:"weight"`
}

// Weights splits a view into its holdings and cash, largest first.
func Weights(s PortfolioState) []Weight {
	weights := make([]Weight, 0, len(s.Holdings)+1)
	for _, h := range ByMarketValue(s.Holdings) {
		weights = append(weights, Weight{Name: h.Asset, Value: h.MarketValue, Weight: Pct(h.MarketValue.Ratio(s.TotalValue))})
	}
	if s.Cash.IsPositive() {
		weights = append(weights, Weight{Name: "Cash", Value: s.Cash, Weight: Pct(s.Cash.Ratio(s.TotalValue))})
	}
	return weights
}

// Sector is the static classification used by stress scenarios.
type Sector string

const (
	Tech   Sector = "Tech"
	Energy Sector = "Energy"
	Other  Sector = "Other"
)

var (
	techTickers   = []string{"AAPL", "GOOGL", "MSFT", "AMZN", "NVDA", "META"}
	energyTickers = []string{"XOM", "CVX", "SHEL"}
)

// SectorOf classifies a ticker, case insensitively.
func SectorOf(ticker string) Sector {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	switch {
	case slices.Contains(techTickers, t):
		return Tech
	case slices.Contains(energyTickers, t):
		return Energy
	default:
		return Other
	}
}
