package club

import (
	"fmt"
	"strings"
)

// Scenario is a stress test hypothesis.
type Scenario string

const (
	MarketDownturn    Scenario = "market_downturn"
	StockCrash        Scenario = "stock_crash"
	InterestRateHike  Scenario = "interest_rate_hike"
	InflationSpike    Scenario = "inflation_spike"
	TechSectorBoom    Scenario = "tech_sector_boom"
	EnergySectorCrash Scenario = "energy_sector_crash"
)

// Scenarios lists the available scenarios.
var Scenarios = []Scenario{MarketDownturn, StockCrash, InterestRateHike, InflationSpike, TechSectorBoom, EnergySectorCrash}

// ParseScenario parses a scenario tag.
func ParseScenario(s string) (Scenario, error) {
	tag := Scenario(strings.ToLower(strings.TrimSpace(s)))
	for _, sc := range Scenarios {
		if sc == tag {
			return sc, nil
		}
	}
	return "", fmt.Errorf("unknown stress scenario %q", s)
}

// IsGain returns true when the scenario measures a gain rather than a loss.
func (s Scenario) IsGain() bool { return s == TechSectorBoom }

// DefaultPercent is the shock applied when none is given.
func (s Scenario) DefaultPercent() float64 {
	if s.IsGain() {
		return 20
	}
	return -20
}

// StressResult is the outcome of a stress test.
type StressResult struct {
	Scenario      Scenario `json:"scenario"`
	Percent       float64  `json:"percent"`
	Asset         string   `json:"asset,omitempty"`
	Loss          Money    `json:"loss"` // signed: a -20% downturn reports a negative loss
	NewTotalValue Money    `json:"newTotalValue"`
}

// Impact returns the displayed P/L: the loss, or the gain for a gain
// scenario.
func (r StressResult) Impact() Money {
	if r.Scenario.IsGain() {
		return r.Loss.Neg()
	}
	return r.Loss
}

// StressTest applies a shock of pct percent to the holdings of a view.
//
//   - market_downturn, inflation_spike: all holdings.
//   - stock_crash: the holding of asset only, 0 if not held.
//   - interest_rate_hike: Tech holdings take pct, others pct/2.
//   - tech_sector_boom: Tech holdings, reported as a gain.
//   - energy_sector_crash: Energy holdings.
//
// The new total value is the view total value plus the loss. For the boom
// scenario the loss is the negated gain.
func StressTest(s PortfolioState, scenario Scenario, pct float64, asset string) StressResult {
	shock := func(h Holding, pct float64) Money { return h.MarketValue.Scale(pct / 100) }
	var loss Money
	switch scenario {
	case MarketDownturn, InflationSpike:
		loss = MarketValue(s.Holdings).Scale(pct / 100)
	case StockCrash:
		for _, h := range s.Holdings {
			if asset != "" && h.Asset == asset {
				loss = shock(h, pct)
				break
			}
		}
	case InterestRateHike:
		for _, h := range s.Holdings {
			impact := pct / 2
			if SectorOf(h.Asset) == Tech {
				impact = pct
			}
			loss = loss.Add(shock(h, impact))
		}
	case TechSectorBoom:
		var gain Money
		for _, h := range s.Holdings {
			if SectorOf(h.Asset) == Tech {
				gain = gain.Add(shock(h, pct))
			}
		}
		loss = gain.Neg()
	case EnergySectorCrash:
		for _, h := range s.Holdings {
			if SectorOf(h.Asset) == Energy {
				loss = loss.Add(shock(h, pct))
			}
		}
	}
	result := StressResult{Scenario: scenario, Percent: pct, Loss: loss, NewTotalValue: s.TotalValue.Add(loss)}
	if scenario == StockCrash {
		result.Asset = asset
	}
	return result
}
