package club

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stressView() PortfolioState {
	h := []Holding{
		{Asset: "AAPL", MarketValue: USD(40000)},
		{Asset: "XOM", MarketValue: USD(20000)},
		{Asset: "GLD", MarketValue: USD(30000)},
		{Asset: "MSFT", MarketValue: USD(10000)},
	}
	return PortfolioState{Holdings: h, TotalValue: USD(100000)}
}

func TestStressTest_MarketDownturn(t *testing.T) {
	r := StressTest(stressView(), MarketDownturn, -20, "")
	assertMoney(t, USD(-20000), r.Loss)
	assertMoney(t, USD(80000), r.NewTotalValue)
	assertMoney(t, USD(-20000), r.Impact())
}

func TestStressTest(t *testing.T) {
	testCases := []struct {
		scenario Scenario
		pct      float64
		asset    string
		wantLoss float64
	}{
		{InflationSpike, -10, "", -10000},
		{StockCrash, -50, "XOM", -10000},
		{StockCrash, -50, "TSLA", 0},
		{StockCrash, -50, "", 0},
		{InterestRateHike, -10, "", -4000 - 1000 - 1000 - 1500},
		{TechSectorBoom, 20, "", -(8000 + 2000)},
		{EnergySectorCrash, -30, "", -6000},
	}
	for _, tc := range testCases {
		t.Run(string(tc.scenario)+tc.asset, func(t *testing.T) {
			view := stressView()
			view.Cash = USD(5000)
			view.TotalValue = USD(105000)
			r := StressTest(view, tc.scenario, tc.pct, tc.asset)
			assertMoney(t, USD(tc.wantLoss), r.Loss)
			assertMoney(t, USD(105000+tc.wantLoss), r.NewTotalValue)
		})
	}
}

func TestStressTest_BoomIsReportedAsGain(t *testing.T) {
	r := StressTest(stressView(), TechSectorBoom, 20, "")
	assert.True(t, r.Scenario.IsGain())
	assertMoney(t, USD(10000), r.Impact())
	assertMoney(t, USD(-10000), r.Loss)
}

func TestParseScenario(t *testing.T) {
	s, err := ParseScenario("Energy_Sector_Crash")
	require.NoError(t, err)
	assert.Equal(t, EnergySectorCrash, s)
	assert.Equal(t, -20.0, s.DefaultPercent())
	assert.Equal(t, 20.0, TechSectorBoom.DefaultPercent())

	_, err = ParseScenario("alien_invasion")
	assert.Error(t, err)
}
