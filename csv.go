package club

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Table is a CSV dataset: a fixed header and its rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// WriteCSV writes the table in CSV format.
func (t Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

func pct2(p Percent) string   { return strconv.FormatFloat(float64(p), 'f', 2, 64) }
func num(f float64) string    { return strconv.FormatFloat(f, 'f', -1, 64) }
func ratio2(f float64) string { return pct2(Pct(f)) }

// HoldingsTable exports holdings.
func HoldingsTable(holdings []Holding) Table {
	t := Table{Header: []string{"Portfolio", "Asset", "Quantity", "Avg. Cost", "Current Price", "Market Value", "Unrealized P/L", "P/L %"}}
	for _, h := range holdings {
		t.Rows = append(t.Rows, []string{
			h.Portfolio.Name(),
			h.Asset,
			h.Quantity.String(),
			h.AverageCost.Plain(),
			h.CurrentPrice.Plain(),
			h.MarketValue.Plain(),
			h.UnrealizedGainLoss.Plain(),
			pct2(h.GainLossPercent()),
		})
	}
	return t
}

// TransactionsTable exports transactions. Member ids are resolved to names.
func TransactionsTable(txs []Transaction, members []Member) Table {
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
	}
	t := Table{Header: []string{"ID", "Date", "Type", "Portfolio", "Member", "Asset", "Quantity", "Price", "Amount"}}
	for _, tx := range txs {
		member := names[tx.MemberID]
		if member == "" {
			member = tx.MemberID
		}
		var quantity, price string
		if tx.Type == Buy || tx.Type == Sell {
			quantity, price = tx.Quantity.String(), tx.Price.Plain()
		}
		t.Rows = append(t.Rows, []string{
			tx.ID,
			tx.Date.String(),
			string(tx.Type),
			tx.Portfolio.Name(),
			member,
			tx.Asset,
			quantity,
			price,
			tx.Amount.Plain(),
		})
	}
	return t
}

// AnnualReturnsTable exports the annual returns, newest year first.
func AnnualReturnsTable(rows []AnnualReturn) Table {
	t := Table{Header: []string{"Year", "Portfolio Return (%)", "Benchmark Return (%)"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{strconv.Itoa(r.Year), ratio2(r.NAV), ratio2(r.Benchmark)})
	}
	return t
}

// TrackRecordTable exports the track record.
func TrackRecordTable(rows []TrackRecordRow) Table {
	t := Table{Header: []string{"Date", "Portfolio NAV", "Benchmark", "Monthly Return (%)", "Drawdown (%)"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Date.String(), num(r.NAV), num(r.Benchmark), pct2(r.MonthlyReturn), pct2(r.Drawdown)})
	}
	return t
}
