// Package renderer formats club views as markdown documents.
package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/club"
	md "github.com/nao1215/markdown"
)

// newDoc returns a markdown builder. Documents are read with String.
func newDoc() *md.Markdown {
	var buf bytes.Buffer
	return md.NewMarkdown(&buf)
}

// ratio formats a ratio (0.125) as a signed percentage.
func ratio(r float64) string { return club.Pct(r).SignedString() }

func number(f float64, prec int) string { return strconv.FormatFloat(f, 'f', prec, 64) }

func twoColumns(header, value string, rows ...[]string) md.TableSet {
	return md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{header, value},
		Rows:      rows,
	}
}

// SummaryMarkdown renders the club dashboard.
func SummaryMarkdown(d club.ClubData) string {
	doc := newDoc()
	doc.H1("Club Summary")
	active := 0
	for _, m := range d.Members {
		if m.Status == club.Active {
			active++
		}
	}
	doc.Table(twoColumns(md.Bold("Total Value"), md.Bold(d.TotalValue.String()),
		[]string{"Share Value", d.ShareValue.String()},
		[]string{"Total Shares", d.TotalShares.String()},
		[]string{"Cash", d.Cash.String()},
		[]string{"Active Members", strconv.Itoa(active)},
	))

	doc.H2("Portfolios")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Portfolio", "Holdings", "Cash", "Total Value"},
		Rows:      [][]string{},
	}
	for _, id := range club.Portfolios {
		p := d.Portfolio(id)
		table.Rows = append(table.Rows, []string{id.Name(), club.MarketValue(p.Holdings).String(), p.Cash.String(), p.TotalValue.String()})
	}
	doc.Table(table)

	if len(d.PerformanceHistory) >= 2 {
		doc.H2("Performance")
		doc.Table(statsTable(club.ComputeStats(d.PerformanceHistory)))
	}
	return doc.String()
}

func statsTable(s club.Stats) md.TableSet {
	return twoColumns("Metric", "Value",
		[]string{"Cumulative Return", ratio(s.CumulativeReturn)},
		[]string{"Annualized Return", ratio(s.AnnualizedReturn)},
		[]string{"Annualized Volatility", club.Pct(s.AnnualizedVolatility).String()},
		[]string{"Sharpe Ratio", number(s.SharpeRatio, 2)},
		[]string{"Max Drawdown", ratio(s.MaxDrawdown)},
		[]string{"Benchmark Return", ratio(s.BenchmarkReturn)},
	)
}

// MembersMarkdown renders the member list with their equity at the current
// share value.
func MembersMarkdown(d club.ClubData) string {
	doc := newDoc()
	doc.H1("Members")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignLeft},
		Header:    []string{"ID", "Name", "Status", "Shares", "Invested", "Equity", "Profile"},
		Rows:      [][]string{},
	}
	for _, m := range d.Members {
		status := string(m.Status)
		if !m.ExitDate.IsZero() {
			status += fmt.Sprintf(" (left %s)", m.ExitDate)
		}
		table.Rows = append(table.Rows, []string{
			m.ID, m.Name, status,
			m.Shares.String(), m.InvestedCapital.String(), m.Equity(d.ShareValue).String(),
			m.ProfileType,
		})
	}
	doc.Table(table)
	return doc.String()
}

// HoldingsMarkdown renders the holdings and cash of a view.
func HoldingsMarkdown(v club.View, s club.PortfolioState) string {
	doc := newDoc()
	doc.H1(fmt.Sprintf("Holdings: %s", v.Name()))
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Portfolio", "Asset", "Quantity", "Avg. Cost", "Price", "Market Value", "Unrealized P/L", "P/L %"},
		Rows:      [][]string{},
	}
	for _, h := range s.Holdings {
		price := h.CurrentPrice.String()
		if !h.Priced {
			price += "*"
		}
		table.Rows = append(table.Rows, []string{
			h.Portfolio.Name(), h.Asset, h.Quantity.String(),
			h.AverageCost.String(), price, h.MarketValue.String(),
			h.UnrealizedGainLoss.SignedString(), h.GainLossPercent().SignedString(),
		})
	}
	doc.Table(table)
	doc.LF()
	doc.Table(twoColumns(md.Bold("Total Value"), md.Bold(s.TotalValue.String()),
		[]string{"Holdings", club.MarketValue(s.Holdings).String()},
		[]string{"Cash", s.Cash.String()},
	))
	return doc.String()
}

// TransactionsMarkdown renders the ledger, member ids resolved to names.
func TransactionsMarkdown(txs []club.Transaction, members []club.Member) string {
	doc := newDoc()
	doc.H1("Transactions")
	t := club.TransactionsTable(txs, members)
	table := md.TableSet{Header: t.Header, Rows: t.Rows}
	if table.Rows == nil {
		table.Rows = [][]string{}
	}
	doc.Table(table)
	return doc.String()
}

// TrackRecordMarkdown renders the annual returns then the monthly track
// record.
func TrackRecordMarkdown(history []club.PerformancePoint) string {
	doc := newDoc()
	doc.H1("Track Record")
	doc.Table(statsTable(club.ComputeStats(history)))

	doc.H2("Annual Returns")
	annual := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Year", "Portfolio", "Benchmark"},
		Rows:      [][]string{},
	}
	for _, r := range club.AnnualReturns(history) {
		annual.Rows = append(annual.Rows, []string{strconv.Itoa(r.Year), ratio(r.NAV), ratio(r.Benchmark)})
	}
	doc.Table(annual)

	doc.H2("Monthly")
	monthly := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "NAV", "Benchmark", "Return", "Drawdown"},
		Rows:      [][]string{},
	}
	for _, r := range club.TrackRecord(history) {
		monthly.Rows = append(monthly.Rows, []string{
			r.Date.String(), number(r.NAV, 0), number(r.Benchmark, 0),
			r.MonthlyReturn.SignedString(), r.Drawdown.SignedString(),
		})
	}
	doc.Table(monthly)
	return doc.String()
}
