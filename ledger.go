package club

import (
	"iter"
	"slices"
	"sort"

	"github.com/google/uuid"
)

// Ledger is the append-only list of club transactions.
//
// Transactions are kept in insertion order, which is also the replay order.
// Dates are informational: a transaction may be entered after a later-dated
// one, see OutOfOrder.
type Ledger struct {
	transactions []Transaction
	newID        func() string
}

// NewLedger returns a ledger holding txs as already recorded.
func NewLedger(txs ...Transaction) *Ledger {
	return &Ledger{
		transactions: slices.Clone(txs),
		newID:        uuid.NewString,
	}
}

// Append validates tx, assigns it a fresh id and appends it. On error the
// ledger is left unchanged.
func (l *Ledger) Append(tx Transaction) (Transaction, error) {
	tx, err := tx.Validate()
	if err != nil {
		return Transaction{}, err
	}
	tx.ID = l.newID()
	l.transactions = append(l.transactions, tx)
	return tx, nil
}

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// All returns a copy of the transactions in insertion order.
func (l *Ledger) All() []Transaction { return slices.Clone(l.transactions) }

// Transactions returns an iterator over the transactions accepted by all filters,
// in insertion order.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
	next:
		for i, tx := range l.transactions {
			for _, filter := range filters {
				if !filter(tx) {
					continue next
				}
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// ByPortfolio accepts transactions of a sub-portfolio.
func ByPortfolio(p PortfolioID) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Portfolio == p }
}

// ByMember accepts the deposits and withdrawals of a member.
func ByMember(id string) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Type.IsCashFlow() && tx.MemberID == id }
}

// ByType accepts transactions of any of the given types.
func ByType(types ...TransactionType) func(Transaction) bool {
	return func(tx Transaction) bool { return slices.Contains(types, tx.Type) }
}

// ByAsset accepts transactions on an asset.
func ByAsset(asset string) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Asset == asset }
}

// OutOfOrder returns the transactions dated before a transaction inserted
// earlier. Replay still processes them in insertion order.
func (l *Ledger) OutOfOrder() []Transaction {
	var late []Transaction
	var newest Transaction
	for i, tx := range l.transactions {
		if i > 0 && tx.Date.Before(newest.Date) {
			late = append(late, tx)
			continue
		}
		newest = tx
	}
	return late
}

// Chronological returns a copy of the transactions sorted by date. Same day
// transactions keep their insertion order.
func (l *Ledger) Chronological() []Transaction {
	txs := slices.Clone(l.transactions)
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.Before(txs[j].Date) })
	return txs
}
