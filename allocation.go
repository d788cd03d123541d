package club

import (
	"cmp"
	"slices"
)

// AssetDetails is the classification of an asset for allocation reports.
type AssetDetails struct {
	Ticker    string `json:"ticker"`
	Sector    string `json:"sector"`
	Geography string `json:"geography"`
	AssetType string `json:"assetType"`
}

// Slice is one category of an allocation breakdown.
type Slice struct {
	Name  string  `json:"name"`
	Value Percent `json:"value"`
}

// Allocation is the breakdown of a view by sector, geography and asset type.
type Allocation struct {
	Sector    []Slice `json:"sector"`
	Geography []Slice `json:"geography"`
	AssetType []Slice `json:"assetType"` // includes a Cash slice when the view holds cash
}

// ComputeAllocation aggregates the holdings of a view by the classification
// found in details. Sector and geography weights are relative to the market
// value of holdings; the asset type weights are relative to holdings plus
// cash. Unclassified assets fall in "Unknown".
func ComputeAllocation(s PortfolioState, details []AssetDetails) Allocation {
	market := MarketValue(s.Holdings)
	if market.IsZero() && s.Cash.IsZero() {
		return Allocation{}
	}
	byTicker := make(map[string]AssetDetails, len(details))
	for _, d := range details {
		byTicker[d.Ticker] = d
	}
	aggregate := func(key func(AssetDetails) string) []Slice {
		if market.IsZero() {
			return []Slice{}
		}
		sums := make(map[string]Money)
		var names []string
		for _, h := range s.Holdings {
			name := key(byTicker[h.Asset])
			if name == "" {
				name = "Unknown"
			}
			if _, ok := sums[name]; !ok {
				names = append(names, name)
			}
			sums[name] = sums[name].Add(h.MarketValue)
		}
		out := make([]Slice, 0, len(names))
		for _, name := range names {
			out = append(out, Slice{Name: name, Value: Pct(sums[name].Ratio(market))})
		}
		sortSlices(out)
		return out
	}

	a := Allocation{
		Sector:    aggregate(func(d AssetDetails) string { return d.Sector }),
		Geography: aggregate(func(d AssetDetails) string { return d.Geography }),
		AssetType: aggregate(func(d AssetDetails) string { return d.AssetType }),
	}
	total := market.Add(s.Cash)
	if s.Cash.IsPositive() && total.IsPositive() {
		scale := market.Ratio(total)
		for i := range a.AssetType {
			a.AssetType[i].Value = Percent(float64(a.AssetType[i].Value) * scale)
		}
		a.AssetType = append(a.AssetType, Slice{Name: "Cash", Value: Pct(s.Cash.Ratio(total))})
	}
	return a
}

// sortSlices sorts by decreasing weight, then by name.
func sortSlices(s []Slice) {
	slices.SortStableFunc(s, func(a, b Slice) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}

// Tickers returns the distinct assets of holdings, in order.
func Tickers(holdings []Holding) []string {
	var tickers []string
	for _, h := range holdings {
		if !slices.Contains(tickers, h.Asset) {
			tickers = append(tickers, h.Asset)
		}
	}
	return tickers
}
