package cmd

import (
	"context"
	"flag"
	"fmt"
	"math"
	"strings"

	"github.com/etnz/club"
	"github.com/etnz/club/advisor"
	"github.com/etnz/club/renderer"
	"github.com/google/subcommands"
)

// advisor returns the configured advisor, unconfigured without an API key.
func (s *session) advisor(ctx context.Context) (*advisor.Advisor, error) {
	return s.cfg.Advisor(ctx, s.log)
}

type riskCmd struct {
	view string
}

func (*riskCmd) Name() string     { return "risk" }
func (*riskCmd) Synopsis() string { return "display concentration, weights and performance statistics" }
func (*riskCmd) Usage() string {
	return `club risk [-v <view>]

  Displays the top 1, 3 and 5 concentration and the position weights of a
  view, with the club performance statistics.
`
}

func (c *riskCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.view, "v", "", "View: combined, phronesis or flagship")
}

func (c *riskCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	v, ok := parseView(c.view)
	if !ok {
		return subcommands.ExitUsageError
	}
	return withClub(ctx, func(s *session) error {
		d := s.club.Data()
		printMarkdown(renderer.RiskMarkdown(v, d.Select(v), club.ComputeStats(d.PerformanceHistory)))
		return nil
	})
}

type stressCmd struct {
	view     string
	scenario string
	percent  float64
	asset    string
}

func (*stressCmd) Name() string     { return "stress" }
func (*stressCmd) Synopsis() string { return "apply a stress scenario to a view" }
func (*stressCmd) Usage() string {
	return `club stress -scenario <scenario> [-pct <percent>] [-s <asset>] [-v <view>]

  Applies a shock to the holdings of a view and displays the impact and the
  resulting total value. Scenarios:
    market_downturn, stock_crash, interest_rate_hike, inflation_spike,
    tech_sector_boom, energy_sector_crash
`
}

func (c *stressCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.view, "v", "", "View: combined, phronesis or flagship")
	f.StringVar(&c.scenario, "scenario", string(club.MarketDownturn), "Stress scenario")
	f.Float64Var(&c.percent, "pct", math.NaN(), "Shock in percent, the scenario default when not set")
	f.StringVar(&c.asset, "s", "", "Asset crashed by the stock_crash scenario")
}

func (c *stressCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	v, ok := parseView(c.view)
	if !ok {
		return subcommands.ExitUsageError
	}
	scenario, err := club.ParseScenario(c.scenario)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if scenario == club.StockCrash && c.asset == "" {
		fmt.Fprintln(stderr, "Error: the stock_crash scenario requires an asset (-s).")
		return subcommands.ExitUsageError
	}
	pct := c.percent
	if math.IsNaN(pct) {
		pct = scenario.DefaultPercent()
	}
	return withClub(ctx, func(s *session) error {
		state := s.club.Data().Select(v)
		printMarkdown(renderer.StressMarkdown(v, state.TotalValue, club.StressTest(state, scenario, pct, c.asset)))
		return nil
	})
}

type allocationCmd struct {
	view string
}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "display the allocation by sector, country and asset type" }
func (*allocationCmd) Usage() string {
	return `club allocation [-v <view>]

  Classifies the holdings of a view with the advisory model, or a built-in
  table when no model is configured, and displays the allocation.
`
}

func (c *allocationCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.view, "v", "", "View: combined, phronesis or flagship")
}

func (c *allocationCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	v, ok := parseView(c.view)
	if !ok {
		return subcommands.ExitUsageError
	}
	return withClub(ctx, func(s *session) error {
		a, err := s.advisor(ctx)
		if err != nil {
			return err
		}
		state := s.club.Data().Select(v)
		details := a.ClassifyAssets(ctx, club.Tickers(state.Holdings))
		printMarkdown(renderer.AllocationMarkdown(v, club.ComputeAllocation(state, details)))
		return nil
	})
}

type adviseCmd struct {
	ticker string
	view   string
}

func (*adviseCmd) Name() string     { return "advise" }
func (*adviseCmd) Synopsis() string { return "ask the advisory model for an analysis" }
func (*adviseCmd) Usage() string {
	return `club advise <control> [args]

Controls:
  market -s <ticker>   Brief analysis of a stock.
  stock <prompt>       Free form stock model prompt.
  risk [-v <view>]     Qualitative risk analysis of the holdings.
  yield                US Treasury yield curve analysis.
`
}

func (c *adviseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "s", "", "Ticker of the market analysis")
	f.StringVar(&c.view, "v", "", "View of the risk analysis")
}

func (c *adviseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	control, args := f.Arg(0), f.Args()[1:]
	v, ok := parseView(c.view)
	if !ok {
		return subcommands.ExitUsageError
	}
	switch control {
	case "market":
		if c.ticker == "" {
			fmt.Fprintln(stderr, "Error: market analysis requires a ticker (-s).")
			return subcommands.ExitUsageError
		}
	case "stock":
		if len(args) == 0 {
			fmt.Fprintln(stderr, "Error: stock analysis requires a prompt.")
			return subcommands.ExitUsageError
		}
	case "risk", "yield":
	default:
		fmt.Fprintf(stderr, "Error: unknown advisory control %q.\n", control)
		return subcommands.ExitUsageError
	}

	return withClub(ctx, func(s *session) error {
		a, err := s.advisor(ctx)
		if err != nil {
			return err
		}
		var title, text string
		switch control {
		case "market":
			title = "Market Analysis: " + c.ticker
			text, err = a.MarketAnalysis(ctx, c.ticker)
		case "stock":
			title = "Stock Model"
			text, err = a.StockModelAnalysis(ctx, strings.Join(args, " "))
		case "risk":
			title = "Risk Analysis: " + v.Name()
			text, err = a.RiskAnalysis(ctx, s.club.Data().Select(v).Holdings)
		case "yield":
			title = "Yield Curve"
			text, err = a.YieldCurveAnalysis(ctx)
		}
		printMarkdown(renderer.AdviceMarkdown(title, advisor.Message(text, err)))
		return nil
	})
}
