package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/club"
	"github.com/etnz/club/renderer"
	"github.com/google/subcommands"
)

type txCmd struct {
	portfolio string
	member    string
	asset     string
	kind      string
	head      int
	tail      int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions in the ledger" }
func (*txCmd) Usage() string {
	return `club tx [-p <portfolio>] [-member <id>] [-s <asset>] [-t <type>] [-head <n>] [-tail <n>]

  Lists transactions from the ledger in insertion order, with options for
  filtering and limiting the output.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.portfolio, "p", "", "Only transactions of this sub-portfolio")
	f.StringVar(&p.member, "member", "", "Only transactions of this member")
	f.StringVar(&p.asset, "s", "", "Only transactions of this asset")
	f.StringVar(&p.kind, "t", "", "Only transactions of this type (deposit, withdrawal, buy, sell, dividend)")
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
}

func (p *txCmd) filters() ([]func(club.Transaction) bool, error) {
	var filters []func(club.Transaction) bool
	if p.portfolio != "" {
		id, err := club.ParsePortfolio(p.portfolio)
		if err != nil {
			return nil, err
		}
		filters = append(filters, club.ByPortfolio(id))
	}
	if p.member != "" {
		filters = append(filters, club.ByMember(p.member))
	}
	if p.asset != "" {
		filters = append(filters, club.ByAsset(p.asset))
	}
	if p.kind != "" {
		t, err := club.ParseTransactionType(p.kind)
		if err != nil {
			return nil, err
		}
		filters = append(filters, club.ByType(t))
	}
	return filters, nil
}

func (p *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		fmt.Fprintln(stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}
	filters, err := p.filters()
	if err != nil {
		fmt.Fprintf(stderr, "Error parsing filters: %v\n", err)
		return subcommands.ExitUsageError
	}

	return withClub(ctx, func(s *session) error {
		d := s.club.Data()
		var transactions []club.Transaction
		for _, tx := range d.Ledger().Transactions(filters...) {
			transactions = append(transactions, tx)
		}
		if p.head > 0 && len(transactions) > p.head {
			transactions = transactions[:p.head]
		}
		if p.tail > 0 && len(transactions) > p.tail {
			transactions = transactions[len(transactions)-p.tail:]
		}
		printMarkdown(renderer.TransactionsMarkdown(transactions, d.Members))
		return nil
	})
}
