package cmd

import (
	"context"
	"flag"

	"github.com/etnz/club/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the club net asset value and share value" }
func (*summaryCmd) Usage() string {
	return `club summary

  Displays the club total value, cash, shares outstanding, share value, the
  value of each sub-portfolio and the performance statistics.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withClub(ctx, func(s *session) error {
		printMarkdown(renderer.SummaryMarkdown(s.club.Data()))
		return nil
	})
}

type membersCmd struct{}

func (*membersCmd) Name() string     { return "members" }
func (*membersCmd) Synopsis() string { return "list members with their shares and equity" }
func (*membersCmd) Usage() string {
	return `club members

  Lists every member, active or exited, with invested capital, shares and
  equity at the current share value.
`
}

func (c *membersCmd) SetFlags(f *flag.FlagSet) {}

func (c *membersCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withClub(ctx, func(s *session) error {
		printMarkdown(renderer.MembersMarkdown(s.club.Data()))
		return nil
	})
}

type holdingsCmd struct {
	view string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "list the valued holdings of a view" }
func (*holdingsCmd) Usage() string {
	return `club holdings [-v <view>]

  Lists the holdings of the club or of one sub-portfolio with their average
  cost, price, market value and unrealized gain.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.view, "v", "", "View: combined, phronesis or flagship")
}

func (c *holdingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	v, ok := parseView(c.view)
	if !ok {
		return subcommands.ExitUsageError
	}
	return withClub(ctx, func(s *session) error {
		printMarkdown(renderer.HoldingsMarkdown(v, s.club.Data().Select(v)))
		return nil
	})
}
