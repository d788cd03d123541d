package club

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	want := Demo(day("2025-03-18"), fixed(0.1, 0.9, 0.5))

	var buf bytes.Buffer
	require.NoError(t, EncodeSnapshot(&buf, want))
	got, err := DecodeSnapshot(&buf)
	require.NoError(t, err)

	require.Len(t, got.Transactions, len(want.Transactions))
	for i, tx := range got.Transactions {
		w := want.Transactions[i]
		assert.Equal(t, w.ID, tx.ID)
		assert.Equal(t, w.Date, tx.Date)
		assert.Equal(t, w.Type, tx.Type)
		assert.Equal(t, w.Portfolio, tx.Portfolio)
		assert.Equal(t, w.MemberID, tx.MemberID)
		assert.Equal(t, w.Asset, tx.Asset)
		assertQuantity(t, w.Quantity, tx.Quantity, tx.ID)
		assertMoney(t, w.Price, tx.Price, tx.ID)
		assertMoney(t, w.Amount, tx.Amount, tx.ID)
	}
	require.Len(t, got.Members, len(want.Members))
	for i, m := range got.Members {
		w := want.Members[i]
		assert.Equal(t, w.ID, m.ID)
		assert.Equal(t, w.ExitDate, m.ExitDate)
		assert.Equal(t, w.Status, m.Status)
		assertQuantity(t, w.Shares, m.Shares, m.ID)
		assertMoney(t, w.InvestedCapital, m.InvestedCapital, m.ID)
	}
	assert.Equal(t, want.PerformanceHistory, got.PerformanceHistory)

	// the derived data is identical.
	assertMoney(t, Derive(want, DemoPrices()).TotalValue, Derive(got, DemoPrices()).TotalValue)
}

func TestDecodeSnapshot_IgnoresDerivedFields(t *testing.T) {
	doc := `{
  "members": [{"id": "m1", "name": "Alice", "email": "a@b.c", "shares": 10, "investedCapital": "1000", "status": "active"}],
  "transactions": [{"id": "t1", "date": "2024-01-02", "type": "DEPOSIT", "portfolio": "Phronesis_Portfolio", "memberId": "m1", "amount": 1000}],
  "performanceHistory": [],
  "cash": 1000,
  "shareValue": 100
}`
	s, err := DecodeSnapshot(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, s.Transactions, 1)
	assert.Equal(t, day("2024-01-02"), s.Transactions[0].Date)
	assertMoney(t, USD(1000), s.Transactions[0].Amount)
	assertQuantity(t, Q(10), s.Members[0].Shares)
	assertMoney(t, USD(1000), s.Members[0].InvestedCapital)
	assert.True(t, s.Members[0].ExitDate.IsZero())
}

func TestDecodeSnapshot_Invalid(t *testing.T) {
	_, err := DecodeSnapshot(strings.NewReader(`{"members": [`))
	assert.Error(t, err)
}
