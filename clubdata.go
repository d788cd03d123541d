package club

import (
	"maps"
	"slices"
)

// PortfolioState is the valued state of one sub-portfolio.
type PortfolioState struct {
	ID         PortfolioID `json:"id"`
	Holdings   []Holding   `json:"holdings"`
	Cash       Money       `json:"cash"`
	TotalValue Money       `json:"totalValue"` // market value of holdings plus cash
}

// ClubData is the aggregate root: the persisted records and everything
// derived from them.
type ClubData struct {
	Members            []Member                       `json:"members"`
	Transactions       []Transaction                  `json:"transactions"`
	Portfolios         map[PortfolioID]PortfolioState `json:"portfolios"`
	Cash               Money                          `json:"cash"`
	Holdings           []Holding                      `json:"holdings"` // sub-portfolio holdings, concatenated
	TotalShares        Quantity                       `json:"totalShares"`
	TotalValue         Money                          `json:"totalValue"`
	ShareValue         Money                          `json:"shareValue"` // 0 when no shares are outstanding
	PerformanceHistory []PerformancePoint             `json:"performanceHistory"`
}

// Derive replays and values a snapshot.
//
// Both sub-portfolios are always present. The combined holdings are not
// merged: an asset held in both sub-portfolios appears twice.
func Derive(s Snapshot, prices Prices) ClubData {
	d := ClubData{
		Members:            slices.Clone(s.Members),
		Transactions:       slices.Clone(s.Transactions),
		Portfolios:         make(map[PortfolioID]PortfolioState, len(Portfolios)),
		Holdings:           []Holding{},
		PerformanceHistory: slices.Clone(s.PerformanceHistory),
	}
	for _, id := range Portfolios {
		r := ReplayPortfolio(s.Transactions, id)
		holdings := Valuate(r, prices)
		state := PortfolioState{
			ID:         id,
			Holdings:   holdings,
			Cash:       r.Cash,
			TotalValue: MarketValue(holdings).Add(r.Cash),
		}
		d.Portfolios[id] = state
		d.Cash = d.Cash.Add(state.Cash)
		d.TotalValue = d.TotalValue.Add(state.TotalValue)
		d.Holdings = append(d.Holdings, holdings...)
	}
	d.TotalShares = TotalShares(s.Members)
	if d.TotalShares.IsPositive() {
		d.ShareValue = d.TotalValue.Div(d.TotalShares)
	}
	return d
}

// Snapshot returns the persisted part of d.
func (d ClubData) Snapshot() Snapshot {
	return Snapshot{
		Members:            slices.Clone(d.Members),
		Transactions:       slices.Clone(d.Transactions),
		PerformanceHistory: slices.Clone(d.PerformanceHistory),
	}
}

// Portfolio returns the state of a sub-portfolio.
func (d ClubData) Portfolio(id PortfolioID) PortfolioState { return d.Portfolios[id] }

// Member returns the member with that id.
func (d ClubData) Member(id string) (Member, bool) {
	i := FindMember(d.Members, id)
	if i < 0 {
		return Member{}, false
	}
	return d.Members[i], true
}

// Ledger returns the transactions as a Ledger.
func (d ClubData) Ledger() *Ledger { return NewLedger(d.Transactions...) }

// clone returns a copy of d that shares no slice with it.
func (d ClubData) clone() ClubData {
	c := d
	c.Members = slices.Clone(d.Members)
	c.Transactions = slices.Clone(d.Transactions)
	c.Holdings = slices.Clone(d.Holdings)
	c.PerformanceHistory = slices.Clone(d.PerformanceHistory)
	c.Portfolios = maps.Clone(d.Portfolios)
	for id, p := range c.Portfolios {
		p.Holdings = slices.Clone(p.Holdings)
		c.Portfolios[id] = p
	}
	return c
}
