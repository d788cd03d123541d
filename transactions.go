package club

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/club/date"
)

// Errors reported while validating transactions.
var (
	ErrMissingField     = errors.New("missing field")
	ErrUnknownType      = errors.New("unknown transaction type")
	ErrUnknownPortfolio = errors.New("unknown portfolio")
)

// TransactionType identifies the kind of a transaction.
type TransactionType string

// Transaction types.
const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
	Buy        TransactionType = "BUY"
	Sell       TransactionType = "SELL"
	Dividend   TransactionType = "DIVIDEND"
)

// TransactionTypes lists all known transaction types.
var TransactionTypes = []TransactionType{Deposit, Withdrawal, Buy, Sell, Dividend}

// ParseTransactionType parses a transaction type, case insensitive.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEPOSIT":
		return Deposit, nil
	case "WITHDRAWAL", "WITHDRAW":
		return Withdrawal, nil
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	case "DIVIDEND":
		return Dividend, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

// IsCashFlow returns true for transactions moving member money in or out of the club.
func (t TransactionType) IsCashFlow() bool { return t == Deposit || t == Withdrawal }

// PortfolioID identifies a sub-portfolio.
type PortfolioID string

// The two sub-portfolios of the club.
const (
	Phronesis PortfolioID = "Phronesis_Portfolio" // passive strategy
	FlagShip  PortfolioID = "FlagShip_Portfolio"  // active strategy
)

// Portfolios lists the sub-portfolios in reporting order.
var Portfolios = []PortfolioID{Phronesis, FlagShip}

// ParsePortfolio parses a sub-portfolio id. Short forms like "phr" or
// "flagship" are accepted.
func ParsePortfolio(s string) (PortfolioID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "phronesis_portfolio", "phronesis", "phr":
		return Phronesis, nil
	case "flagship_portfolio", "flagship", "flg":
		return FlagShip, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPortfolio, s)
	}
}

// Name returns the display name of the sub-portfolio.
func (p PortfolioID) Name() string { return strings.TrimSuffix(string(p), "_Portfolio") }

func (p PortfolioID) valid() bool { return p == Phronesis || p == FlagShip }

// Transaction is an immutable ledger entry. Which fields apply depends on Type:
//   - DEPOSIT and WITHDRAWAL: MemberID and Amount.
//   - BUY and SELL: Asset, Quantity, Price and Amount (Quantity*Price at entry).
//   - DIVIDEND: Asset and Amount.
//
// Amount is the authoritative cash flow used by the replay.
type Transaction struct {
	ID        string          `json:"id"`
	Date      date.Date       `json:"date"`
	Type      TransactionType `json:"type"`
	Portfolio PortfolioID     `json:"portfolio"`
	MemberID  string          `json:"memberId,omitempty"`
	Asset     string          `json:"asset,omitempty"`
	Quantity  Quantity        `json:"quantity"`
	Price     Money           `json:"price"`
	Amount    Money           `json:"amount"`
	Memo      string          `json:"memo,omitempty"`
}

// NewDeposit creates a deposit of amount by a member into a sub-portfolio.
func NewDeposit(on date.Date, portfolio PortfolioID, memberID string, amount Money) Transaction {
	return Transaction{Date: on, Type: Deposit, Portfolio: portfolio, MemberID: memberID, Amount: amount}
}

// NewWithdrawal creates a withdrawal of amount by a member from a sub-portfolio.
func NewWithdrawal(on date.Date, portfolio PortfolioID, memberID string, amount Money) Transaction {
	return Transaction{Date: on, Type: Withdrawal, Portfolio: portfolio, MemberID: memberID, Amount: amount}
}

// NewBuy creates a purchase of quantity units of asset at price. The amount
// is derived on validation.
func NewBuy(on date.Date, portfolio PortfolioID, asset string, quantity Quantity, price Money) Transaction {
	return Transaction{Date: on, Type: Buy, Portfolio: portfolio, Asset: asset, Quantity: quantity, Price: price}
}

// NewSell creates a sale of quantity units of asset at price. The amount is
// derived on validation.
func NewSell(on date.Date, portfolio PortfolioID, asset string, quantity Quantity, price Money) Transaction {
	return Transaction{Date: on, Type: Sell, Portfolio: portfolio, Asset: asset, Quantity: quantity, Price: price}
}

// NewDividend creates a dividend of amount paid by asset.
func NewDividend(on date.Date, portfolio PortfolioID, asset string, amount Money) Transaction {
	return Transaction{Date: on, Type: Dividend, Portfolio: portfolio, Asset: asset, Amount: amount}
}

// Validate checks that the transaction carries the fields required by its
// type. It returns a completed copy: a zero date becomes today and a missing
// BUY or SELL amount is derived from quantity and price.
//
// The ledger does not check available cash nor held quantities.
func (t Transaction) Validate() (Transaction, error) {
	if t.Date.IsZero() {
		t.Date = date.Today()
	}
	if !t.Portfolio.valid() {
		return t, fmt.Errorf("%w: %q", ErrUnknownPortfolio, t.Portfolio)
	}

	var errs []error
	missing := func(field string) { errs = append(errs, fmt.Errorf("%w: %s", ErrMissingField, field)) }

	switch t.Type {
	case Deposit, Withdrawal:
		if t.MemberID == "" {
			missing("memberId")
		}
		if t.Amount.IsZero() {
			missing("amount")
		}
	case Buy, Sell:
		if t.Asset == "" {
			missing("asset")
		}
		if t.Quantity.IsZero() {
			missing("quantity")
		}
		if t.Price.IsZero() {
			missing("price")
		}
		if len(errs) == 0 && t.Amount.IsZero() {
			t.Amount = t.Price.Mul(t.Quantity)
		}
	case Dividend:
		if t.Asset == "" {
			missing("asset")
		}
		if t.Amount.IsZero() {
			missing("amount")
		}
	default:
		return t, fmt.Errorf("%w: %q", ErrUnknownType, t.Type)
	}

	if err := errors.Join(errs...); err != nil {
		return t, fmt.Errorf("invalid %s transaction: %w", t.Type, err)
	}
	return t, nil
}

// String returns a one line description of the transaction.
func (t Transaction) String() string {
	switch t.Type {
	case Deposit, Withdrawal:
		return fmt.Sprintf("%s %s %s %s %s", t.Date, t.Type, t.Portfolio.Name(), t.MemberID, t.Amount)
	case Buy, Sell:
		return fmt.Sprintf("%s %s %s %s %s@%s", t.Date, t.Type, t.Portfolio.Name(), t.Asset, t.Quantity, t.Price)
	default:
		return fmt.Sprintf("%s %s %s %s %s", t.Date, t.Type, t.Portfolio.Name(), t.Asset, t.Amount)
	}
}

// MarshalJSON writes the fields in a stable order and omits the ones that do
// not apply to the transaction type.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("id", t.ID)
	w.Append("date", t.Date)
	w.Append("type", t.Type)
	w.Append("portfolio", t.Portfolio)
	switch t.Type {
	case Deposit, Withdrawal:
		w.Append("memberId", t.MemberID)
	case Buy, Sell:
		w.Append("asset", t.Asset)
		w.Append("quantity", t.Quantity)
		w.Append("price", t.Price)
	default:
		w.Optional("asset", t.Asset)
	}
	w.Append("amount", t.Amount)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}
