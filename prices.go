package club

import "strings"

// Prices provides the current price of assets.
type Prices interface {
	// Price returns the current unit price of asset, or false when unknown.
	Price(asset string) (Money, bool)
}

// StaticPrices is a fixed price list keyed by asset ticker.
type StaticPrices map[string]Money

// Price implements Prices. Tickers are matched case insensitively.
func (p StaticPrices) Price(asset string) (Money, bool) {
	if m, ok := p[asset]; ok {
		return m, true
	}
	m, ok := p[strings.ToUpper(asset)]
	return m, ok
}

// DemoPrices returns the price list used when no market data is configured.
func DemoPrices() StaticPrices {
	return StaticPrices{
		"AAPL":    M(175),
		"GOOGL":   M(130),
		"MSFT":    M(330),
		"XAU/USD": M(1980),
	}
}
