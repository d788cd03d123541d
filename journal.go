package club

import (
	"github.com/etnz/club/date"
)

// event represents a single, atomic operation on a sub-portfolio.
// It is the lowest-level, immutable fact from which cash and lots are derived.
type event interface {
	date() date.Date
}

// Journal holds the atomic events of one sub-portfolio, in ledger order.
type Journal struct {
	portfolio PortfolioID
	events    []event
}

// --- Cash Events ---

// creditCash increases the cash balance.
type creditCash struct {
	on     date.Date
	amount Money
}

func (e creditCash) date() date.Date { return e.on }

// debitCash decreases the cash balance.
type debitCash struct {
	on     date.Date
	amount Money
}

func (e debitCash) date() date.Date { return e.on }

// --- Lot Events ---

// acquireLot adds units and their cost to the asset lot.
type acquireLot struct {
	on       date.Date
	asset    string
	quantity Quantity
	cost     Money
}

func (e acquireLot) date() date.Date { return e.on }

// disposeLot removes units from an existing asset lot. The lot cost is kept.
type disposeLot struct {
	on       date.Date
	asset    string
	quantity Quantity
}

func (e disposeLot) date() date.Date { return e.on }

// NewJournal converts the transactions of a sub-portfolio into atomic events.
// The list order is kept, transaction dates do not reorder events.
func NewJournal(txs []Transaction, portfolio PortfolioID) *Journal {
	j := &Journal{
		portfolio: portfolio,
		events:    make([]event, 0, len(txs)),
	}
	for _, tx := range txs {
		if tx.Portfolio != portfolio {
			continue
		}
		switch tx.Type {
		case Deposit:
			j.events = append(j.events, creditCash{on: tx.Date, amount: tx.Amount})
		case Withdrawal:
			j.events = append(j.events, debitCash{on: tx.Date, amount: tx.Amount})
		case Buy:
			j.events = append(j.events,
				acquireLot{on: tx.Date, asset: tx.Asset, quantity: tx.Quantity, cost: tx.Amount},
				debitCash{on: tx.Date, amount: tx.Amount},
			)
		case Sell:
			j.events = append(j.events,
				disposeLot{on: tx.Date, asset: tx.Asset, quantity: tx.Quantity},
				creditCash{on: tx.Date, amount: tx.Amount},
			)
		case Dividend:
			j.events = append(j.events, creditCash{on: tx.Date, amount: tx.Amount})
		}
	}
	return j
}

// Lot is the aggregate position of one asset: every unit bought minus every
// unit sold, and the cumulative cost of all purchases.
type Lot struct {
	Asset     string
	Quantity  Quantity
	TotalCost Money
}

// AverageCost returns the cost per unit held, 0 for an empty lot.
func (l Lot) AverageCost() Money {
	if l.Quantity.IsZero() {
		return Money{}
	}
	return l.TotalCost.Div(l.Quantity)
}

// Replay is the state of a sub-portfolio after folding its journal.
type Replay struct {
	Portfolio PortfolioID
	Cash      Money
	Lots      []Lot // in order of first purchase
}

// Replay folds the journal events into cash and lots.
//
// Nothing is checked: a sale can drive a lot negative and a withdrawal can
// drive cash negative. Sales never reduce the lot cost, so the average cost
// of the remaining units keeps the full purchase history.
func (j *Journal) Replay() Replay {
	r := Replay{Portfolio: j.portfolio}
	index := make(map[string]int)
	for _, e := range j.events {
		switch v := e.(type) {
		case creditCash:
			r.Cash = r.Cash.Add(v.amount)
		case debitCash:
			r.Cash = r.Cash.Sub(v.amount)
		case acquireLot:
			i, ok := index[v.asset]
			if !ok {
				i = len(r.Lots)
				index[v.asset] = i
				r.Lots = append(r.Lots, Lot{Asset: v.asset})
			}
			r.Lots[i].Quantity = r.Lots[i].Quantity.Add(v.quantity)
			r.Lots[i].TotalCost = r.Lots[i].TotalCost.Add(v.cost)
		case disposeLot:
			if i, ok := index[v.asset]; ok {
				r.Lots[i].Quantity = r.Lots[i].Quantity.Sub(v.quantity)
			}
		}
	}
	return r
}

// ReplayPortfolio replays the transactions of one sub-portfolio.
func ReplayPortfolio(txs []Transaction, portfolio PortfolioID) Replay {
	return NewJournal(txs, portfolio).Replay()
}
