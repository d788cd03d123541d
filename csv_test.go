package club

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoldingsTable(t *testing.T) {
	d := Derive(Demo(day("2025-01-15"), fixed(0.5)), DemoPrices())
	var b strings.Builder
	require.NoError(t, HoldingsTable(d.Holdings).WriteCSV(&b))
	want := `Portfolio,Asset,Quantity,Avg. Cost,Current Price,Market Value,Unrealized P/L,P/L %
Phronesis,AAPL,30,150.00,175.00,5250.00,750.00,16.67
Phronesis,GOOGL,10,100.00,130.00,1300.00,300.00,30.00
FlagShip,XAU/USD,1,3800.00,1980.00,1980.00,-1820.00,-47.89
`
	assert.Equal(t, want, b.String())
}

func TestTransactionsTable(t *testing.T) {
	s := Demo(day("2025-01-15"), fixed(0.5))
	table := TransactionsTable(s.Transactions, s.Members)
	assert.Equal(t, []string{"ID", "Date", "Type", "Portfolio", "Member", "Asset", "Quantity", "Price", "Amount"}, table.Header)
	require.Len(t, table.Rows, 8)
	assert.Equal(t, []string{"t1", "2019-07-20", "DEPOSIT", "Phronesis", "Alice Johnson", "", "", "", "10000.00"}, table.Rows[0])
	assert.Equal(t, []string{"t3", "2022-08-01", "BUY", "Phronesis", "", "AAPL", "30", "150.00", "4500.00"}, table.Rows[3])
}

func TestTrackRecordTable(t *testing.T) {
	var b strings.Builder
	require.NoError(t, TrackRecordTable(TrackRecord(history(100, 120, 90))).WriteCSV(&b))
	want := `Date,Portfolio NAV,Benchmark,Monthly Return (%),Drawdown (%)
2020-01-31,100,4000,0.00,0.00
2020-02-29,120,4001,20.00,0.00
2020-03-31,90,4002,-25.00,-25.00
`
	assert.Equal(t, want, b.String())
}

func TestAnnualReturnsTable(t *testing.T) {
	table := AnnualReturnsTable([]AnnualReturn{{Year: 2024, NAV: 0.125, Benchmark: -0.05}})
	assert.Equal(t, [][]string{{"2024", "12.50", "-5.00"}}, table.Rows)
}
