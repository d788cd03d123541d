package club

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAllocation(t *testing.T) {
	view := PortfolioState{
		Holdings: []Holding{
			{Asset: "AAPL", MarketValue: USD(600)},
			{Asset: "SAP", MarketValue: USD(200)},
			{Asset: "MYSTERY", MarketValue: USD(200)},
		},
		Cash: USD(1000),
	}
	details := []AssetDetails{
		{Ticker: "AAPL", Sector: "Technology", Geography: "USA", AssetType: "Equity"},
		{Ticker: "SAP", Sector: "Technology", Geography: "Europe", AssetType: "Equity"},
	}
	a := ComputeAllocation(view, details)

	require.Len(t, a.Sector, 2)
	assert.Equal(t, "Technology", a.Sector[0].Name)
	assert.True(t, a.Sector[0].Value.Equal(80))
	assert.Equal(t, "Unknown", a.Sector[1].Name)
	assert.True(t, a.Sector[1].Value.Equal(20))

	require.Len(t, a.Geography, 3)
	assert.Equal(t, "USA", a.Geography[0].Name)
	assert.Equal(t, []string{"Europe", "Unknown"}, []string{a.Geography[1].Name, a.Geography[2].Name}, "ties are sorted by name")

	// asset types are rescaled to make room for cash.
	require.Len(t, a.AssetType, 3)
	assert.Equal(t, "Equity", a.AssetType[0].Name)
	assert.True(t, a.AssetType[0].Value.Equal(40))
	assert.True(t, a.AssetType[1].Value.Equal(10))
	assert.Equal(t, "Cash", a.AssetType[2].Name)
	assert.True(t, a.AssetType[2].Value.Equal(50))
}

func TestComputeAllocation_Empty(t *testing.T) {
	assert.Equal(t, Allocation{}, ComputeAllocation(PortfolioState{}, nil))

	a := ComputeAllocation(PortfolioState{Cash: USD(10)}, nil)
	assert.Empty(t, a.Sector)
	require.Len(t, a.AssetType, 1)
	assert.Equal(t, "Cash", a.AssetType[0].Name)
	assert.True(t, a.AssetType[0].Value.Equal(100))
}

func TestTickers(t *testing.T) {
	h := []Holding{{Asset: "AAPL"}, {Asset: "GLD"}, {Asset: "AAPL"}}
	assert.Equal(t, []string{"AAPL", "GLD"}, Tickers(h))
}
