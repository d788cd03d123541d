package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/club/date"
	"github.com/etnz/club/renderer"
	"github.com/google/subcommands"
)

type trackRecordCmd struct{}

func (*trackRecordCmd) Name() string     { return "track-record" }
func (*trackRecordCmd) Synopsis() string { return "display the monthly NAV track record" }
func (*trackRecordCmd) Usage() string {
	return `club track-record

  Displays every recorded month end with its NAV, share value, monthly return
  and drawdown.
`
}

func (c *trackRecordCmd) SetFlags(f *flag.FlagSet) {}

func (c *trackRecordCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withClub(ctx, func(s *session) error {
		printMarkdown(renderer.TrackRecordMarkdown(s.club.Data().PerformanceHistory))
		return nil
	})
}

type recordCmd struct {
	date      string
	benchmark float64
}

func (*recordCmd) Name() string     { return "record" }
func (*recordCmd) Synopsis() string { return "record the month end NAV in the performance history" }
func (*recordCmd) Usage() string {
	return `club record [-d <date>] [-benchmark <index>]

  Appends the current NAV and share value as the history point of the month
  of the date. The benchmark carries the last one forward when not given.
`
}

func (c *recordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "A date in the month to record, today by default")
	f.Float64Var(&c.benchmark, "benchmark", 0, "Benchmark index at the month end")
}

func (c *recordCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on := today()
	if c.date != "" {
		var err error
		if on, err = date.Parse(c.date); err != nil {
			fmt.Fprintf(stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	return withClub(ctx, func(s *session) error {
		p, err := s.club.RecordMonth(ctx, on, c.benchmark)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Recorded %s: NAV %.0f, share value %.2f\n", p.Date, p.NAV, p.ShareValue)
		return nil
	})
}
