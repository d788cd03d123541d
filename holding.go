package club

// ClosedThreshold is the lot quantity at or under which a position is
// considered closed and is not reported.
var ClosedThreshold = Q(0.001)

// Holding is a priced position of one asset in one sub-portfolio.
type Holding struct {
	Portfolio          PortfolioID `json:"portfolio"`
	Asset              string      `json:"asset"`
	Quantity           Quantity    `json:"quantity"`
	AverageCost        Money       `json:"averageCost"`
	TotalCost          Money       `json:"totalCost"`
	CurrentPrice       Money       `json:"currentPrice"`
	MarketValue        Money       `json:"marketValue"`
	UnrealizedGainLoss Money       `json:"unrealizedGainLoss"`
	Priced             bool        `json:"priced"` // false when valued at average cost
}

// GainLossPercent returns the unrealized gain as a percentage of the cost of
// the held quantity, 0 when that cost is zero.
func (h Holding) GainLossPercent() Percent {
	return Pct(h.UnrealizedGainLoss.Ratio(h.AverageCost.Mul(h.Quantity)))
}

// Valuate prices the open lots of a replay.
//
// An asset without a price is valued at its average cost. The unrealized
// gain is measured against the total cost of all purchases of the lot.
func Valuate(r Replay, prices Prices) []Holding {
	if prices == nil {
		prices = StaticPrices{}
	}
	holdings := make([]Holding, 0, len(r.Lots))
	for _, lot := range r.Lots {
		if !lot.Quantity.GreaterThan(ClosedThreshold) {
			continue
		}
		avg := lot.AverageCost()
		price, priced := prices.Price(lot.Asset)
		if !priced {
			price = avg
		}
		value := price.Mul(lot.Quantity)
		holdings = append(holdings, Holding{
			Portfolio:          r.Portfolio,
			Asset:              lot.Asset,
			Quantity:           lot.Quantity,
			AverageCost:        avg,
			TotalCost:          lot.TotalCost,
			CurrentPrice:       price,
			MarketValue:        value,
			UnrealizedGainLoss: value.Sub(lot.TotalCost),
			Priced:             priced,
		})
	}
	return holdings
}

// MarketValue sums the market value of holdings.
func MarketValue(holdings []Holding) Money {
	var total Money
	for _, h := range holdings {
		total = total.Add(h.MarketValue)
	}
	return total
}
