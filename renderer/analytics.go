package renderer

import (
	"fmt"

	"github.com/etnz/club"
	md "github.com/nao1215/markdown"
)

// RiskMarkdown renders the concentration and the weights of a view, with the
// club wide statistics.
func RiskMarkdown(v club.View, s club.PortfolioState, stats club.Stats) string {
	doc := newDoc()
	doc.H1(fmt.Sprintf("Risk: %s", v.Name()))

	c := club.ComputeConcentration(s.Holdings, s.TotalValue)
	doc.H2("Concentration")
	doc.Table(twoColumns("Top Positions", "Weight",
		[]string{"Top 1", c.Top1.String()},
		[]string{"Top 3", c.Top3.String()},
		[]string{"Top 5", c.Top5.String()},
	))

	doc.H2("Weights")
	weights := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Position", "Value", "Weight"},
		Rows:      [][]string{},
	}
	for _, w := range club.Weights(s) {
		weights.Rows = append(weights.Rows, []string{w.Name, w.Value.String(), w.Weight.String()})
	}
	doc.Table(weights)

	doc.H2("Statistics")
	doc.Table(statsTable(stats))
	return doc.String()
}

// StressMarkdown renders the outcome of a stress test.
func StressMarkdown(v club.View, before club.Money, r club.StressResult) string {
	doc := newDoc()
	doc.H1(fmt.Sprintf("Stress Test: %s", r.Scenario))
	label := "Estimated Loss"
	if r.Scenario.IsGain() {
		label = "Estimated Gain"
	}
	rows := [][]string{
		{"View", v.Name()},
		{"Shock", fmt.Sprintf("%+g%%", r.Percent)},
	}
	if r.Asset != "" {
		rows = append(rows, []string{"Asset", r.Asset})
	}
	rows = append(rows,
		[]string{"Current Value", before.String()},
		[]string{label, r.Impact().SignedString()},
	)
	doc.Table(twoColumns("Scenario", string(r.Scenario), rows...))
	doc.LF()
	doc.PlainText(fmt.Sprintf("New total value: %s", md.Bold(r.NewTotalValue.String())))
	return doc.String()
}

// AllocationMarkdown renders the three allocation breakdowns.
func AllocationMarkdown(v club.View, a club.Allocation) string {
	doc := newDoc()
	doc.H1(fmt.Sprintf("Allocation: %s", v.Name()))
	for _, section := range []struct {
		title  string
		slices []club.Slice
	}{
		{"Sector", a.Sector},
		{"Geography", a.Geography},
		{"Asset Type", a.AssetType},
	} {
		doc.H2(section.title)
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{section.title, "Weight"},
			Rows:      [][]string{},
		}
		for _, s := range section.slices {
			table.Rows = append(table.Rows, []string{s.Name, s.Value.String()})
		}
		doc.Table(table)
	}
	return doc.String()
}

// MemberReportMarkdown renders the statement of a member.
func MemberReportMarkdown(r club.MemberReport) string {
	doc := newDoc()
	doc.H1(fmt.Sprintf("Statement: %s", r.Member.Name))
	doc.Table(twoColumns(md.Bold("Equity"), md.Bold(r.Equity.String()),
		[]string{"Shares", r.Member.Shares.String()},
		[]string{"Share Value", r.ShareValue.String()},
		[]string{"Invested Capital", r.Member.InvestedCapital.String()},
		[]string{"Gain / Loss", r.GainLoss.SignedString()},
		[]string{"Return", r.Return.SignedString()},
		[]string{"Ownership", r.Ownership.String()},
	))

	doc.H2("Deposits and Withdrawals")
	flows := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Date", "Type", "Portfolio", "Amount"},
		Rows:      [][]string{},
	}
	for _, tx := range r.Flows {
		flows.Rows = append(flows.Rows, []string{tx.Date.String(), string(tx.Type), tx.Portfolio.Name(), tx.Amount.String()})
	}
	doc.Table(flows)
	return doc.String()
}

// AdviceMarkdown renders an advisory text under a title.
func AdviceMarkdown(title, text string) string {
	doc := newDoc()
	doc.H1(title)
	doc.PlainText(text)
	return doc.String()
}
