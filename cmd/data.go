package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/club"
	"github.com/google/subcommands"
)

// Datasets exported by the export command.
var datasets = []string{"holdings", "transactions", "annual-returns", "track-record"}

type exportCmd struct {
	view   string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export a dataset in CSV format" }
func (*exportCmd) Usage() string {
	return `club export [-v <view>] [-o <file>] <holdings|transactions|annual-returns|track-record>

  Writes a dataset as CSV, to the standard output by default. The view only
  applies to holdings.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.view, "v", "", "View of the holdings: combined, phronesis or flagship")
	f.StringVar(&c.output, "o", "", "Output file")
}

// table builds the dataset named name.
func table(d club.ClubData, name string, v club.View) club.Table {
	switch name {
	case "holdings":
		return club.HoldingsTable(d.Select(v).Holdings)
	case "transactions":
		return club.TransactionsTable(d.Transactions, d.Members)
	case "annual-returns":
		return club.AnnualReturnsTable(club.AnnualReturns(d.PerformanceHistory))
	default:
		return club.TrackRecordTable(club.TrackRecord(d.PerformanceHistory))
	}
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || !slices.Contains(datasets, f.Arg(0)) {
		f.Usage()
		return subcommands.ExitUsageError
	}
	v, ok := parseView(c.view)
	if !ok {
		return subcommands.ExitUsageError
	}
	return withClub(ctx, func(s *session) error {
		var w io.Writer = stdout
		if c.output != "" {
			file, err := os.Create(c.output)
			if err != nil {
				return err
			}
			defer file.Close()
			w = file
		}
		return table(s.club.Data(), f.Arg(0), v).WriteCSV(w)
	})
}

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression over the club data" }
func (*queryCmd) Usage() string {
	return `club query <jsonpath>

  Evaluates a JSONPath expression over the club data, as served by GET /club,
  and prints the result as JSON.

Usage Examples:
$ club query '$.shareValue'
$ club query '$.members[?(@.status=="Active")].name'
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {}

// query evaluates path over the JSON form of d.
func query(d club.ClubData, path string) (any, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return jsonpath.Get(path, doc)
}

func (c *queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return withClub(ctx, func(s *session) error {
		result, err := query(s.club.Data(), f.Arg(0))
		if err != nil {
			return fmt.Errorf("invalid query %q: %w", f.Arg(0), err)
		}
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(out))
		return nil
	})
}
