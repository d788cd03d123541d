package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/club"
	"github.com/etnz/club/date"
	"github.com/google/subcommands"
)

// txFlags are the flags shared by the transaction commands.
type txFlags struct {
	date      string
	portfolio string
	memo      string
}

func (c *txFlags) set(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD), today by default")
	f.StringVar(&c.portfolio, "p", "", "Sub-portfolio (phronesis or flagship)")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

// base parses the shared flags into a transaction of type t.
func (c *txFlags) base(t club.TransactionType) (club.Transaction, error) {
	tx := club.Transaction{Type: t, Memo: c.memo, Date: today()}
	if c.date != "" {
		on, err := date.Parse(c.date)
		if err != nil {
			return tx, fmt.Errorf("invalid date: %w", err)
		}
		tx.Date = on
	}
	p, err := club.ParsePortfolio(c.portfolio)
	if err != nil {
		return tx, err
	}
	tx.Portfolio = p
	return tx, nil
}

// appendTransaction records tx in the club and prints it.
func appendTransaction(ctx context.Context, tx club.Transaction, err error) subcommands.ExitStatus {
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withClub(ctx, func(s *session) error {
		tx, err := s.club.AddTransaction(ctx, tx)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Recorded %s\n", tx)
		if tx.Type.IsCashFlow() {
			if m, ok := s.club.Data().Member(tx.MemberID); ok {
				fmt.Fprintf(stdout, "Member %s now holds %s shares\n", m.Name, m.Shares)
			}
		}
		return nil
	})
}

// --- Deposit and Withdraw Commands ---

type cashFlowCmd struct {
	txFlags
	member string
	amount string
}

func (c *cashFlowCmd) SetFlags(f *flag.FlagSet) {
	c.set(f)
	f.StringVar(&c.member, "member", "", "Member id")
	f.StringVar(&c.amount, "a", "", "Amount in USD")
}

func (c *cashFlowCmd) transaction(t club.TransactionType) (club.Transaction, error) {
	tx, err := c.base(t)
	if err != nil {
		return tx, err
	}
	tx.MemberID = c.member
	if tx.Amount, err = club.ParseMoney(c.amount); err != nil {
		return tx, fmt.Errorf("invalid amount: %w", err)
	}
	return tx, nil
}

type depositCmd struct{ cashFlowCmd }

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "deposit member cash and issue shares" }
func (*depositCmd) Usage() string {
	return `club deposit -p <portfolio> -member <id> -a <amount> [-d <date>] [-m <memo>]

  Credits the sub-portfolio cash and issues shares to the member at the share
  value before the deposit.
`
}

func (c *depositCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tx, err := c.transaction(club.Deposit)
	return appendTransaction(ctx, tx, err)
}

type withdrawCmd struct{ cashFlowCmd }

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "withdraw member cash and redeem shares" }
func (*withdrawCmd) Usage() string {
	return `club withdraw -p <portfolio> -member <id> -a <amount> [-d <date>] [-m <memo>]

  Debits the sub-portfolio cash and redeems the member shares at the share
  value before the withdrawal. A member left without shares exits the club.
`
}

func (c *withdrawCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tx, err := c.transaction(club.Withdrawal)
	return appendTransaction(ctx, tx, err)
}

// --- Buy and Sell Commands ---

type tradeCmd struct {
	txFlags
	asset    string
	quantity string
	price    string
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	c.set(f)
	f.StringVar(&c.asset, "s", "", "Asset ticker")
	f.StringVar(&c.quantity, "q", "", "Number of units")
	f.StringVar(&c.price, "price", "", "Price per unit in USD")
}

func (c *tradeCmd) transaction(t club.TransactionType) (club.Transaction, error) {
	tx, err := c.base(t)
	if err != nil {
		return tx, err
	}
	tx.Asset = c.asset
	if tx.Quantity, err = club.ParseQuantity(c.quantity); err != nil {
		return tx, fmt.Errorf("invalid quantity: %w", err)
	}
	if tx.Price, err = club.ParseMoney(c.price); err != nil {
		return tx, fmt.Errorf("invalid price: %w", err)
	}
	return tx, nil
}

type buyCmd struct{ tradeCmd }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "purchase units to open or add to a position" }
func (*buyCmd) Usage() string {
	return `club buy -p <portfolio> -s <asset> -q <quantity> -price <price> [-d <date>] [-m <memo>]

  Purchases units of an asset. The total cost is debited from the
  sub-portfolio cash.
`
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tx, err := c.transaction(club.Buy)
	return appendTransaction(ctx, tx, err)
}

type sellCmd struct{ tradeCmd }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell units of a position" }
func (*sellCmd) Usage() string {
	return `club sell -p <portfolio> -s <asset> -q <quantity> -price <price> [-d <date>] [-m <memo>]

  Sells units of an asset. The proceeds are credited to the sub-portfolio
  cash and the average cost of the remaining units is unchanged.
`
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tx, err := c.transaction(club.Sell)
	return appendTransaction(ctx, tx, err)
}

// --- Dividend Command ---

type dividendCmd struct {
	txFlags
	asset  string
	amount string
}

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a dividend paid by an asset" }
func (*dividendCmd) Usage() string {
	return `club dividend -p <portfolio> -s <asset> -a <amount> [-d <date>] [-m <memo>]

  Credits a dividend to the sub-portfolio cash.
`
}

func (c *dividendCmd) SetFlags(f *flag.FlagSet) {
	c.set(f)
	f.StringVar(&c.asset, "s", "", "Asset ticker")
	f.StringVar(&c.amount, "a", "", "Amount in USD")
}

func (c *dividendCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tx, err := c.base(club.Dividend)
	if err == nil {
		tx.Asset = c.asset
		tx.Amount, err = club.ParseMoney(c.amount)
	}
	return appendTransaction(ctx, tx, err)
}
