package club

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive_Demo(t *testing.T) {
	d := Derive(Demo(day("2025-01-15"), fixed(0.5)), DemoPrices())

	phr := d.Portfolio(Phronesis)
	assertMoney(t, USD(10000+15000-4500-1000), phr.Cash)
	require.Len(t, phr.Holdings, 2)
	assertMoney(t, USD(30*175+10*130), MarketValue(phr.Holdings))
	assertMoney(t, USD(19500+5250+1300), phr.TotalValue)

	flg := d.Portfolio(FlagShip)
	assertMoney(t, USD(5000-3800+1950-5500), flg.Cash)
	require.Len(t, flg.Holdings, 1)
	assertMoney(t, USD(1980), flg.Holdings[0].MarketValue)
	assertMoney(t, USD(3800), flg.Holdings[0].TotalCost)

	assertMoney(t, phr.Cash.Add(flg.Cash), d.Cash)
	assertMoney(t, phr.TotalValue.Add(flg.TotalValue), d.TotalValue)
	assert.Len(t, d.Holdings, 3)
	assertQuantity(t, Q(250), d.TotalShares)
	assertMoney(t, d.TotalValue.Div(Q(250)), d.ShareValue)
}

func TestDerive_CashIsSumOfPortfolios(t *testing.T) {
	testCases := map[string][]Transaction{
		"empty": nil,
		"one side": {
			{Type: Deposit, Portfolio: FlagShip, MemberID: "m", Amount: USD(10)},
		},
		"both sides, overdrawn": {
			{Type: Deposit, Portfolio: FlagShip, MemberID: "m", Amount: USD(10)},
			{Type: Withdrawal, Portfolio: Phronesis, MemberID: "m", Amount: USD(25)},
			{Type: Buy, Portfolio: FlagShip, Asset: "X", Quantity: Q(1), Price: USD(3), Amount: USD(3)},
			{Type: Dividend, Portfolio: Phronesis, Asset: "X", Amount: USD(0.5)},
		},
	}
	for name, txs := range testCases {
		t.Run(name, func(t *testing.T) {
			d := Derive(Snapshot{Transactions: txs}, nil)
			var sum Money
			for _, id := range Portfolios {
				sum = sum.Add(ReplayPortfolio(txs, id).Cash)
			}
			assertMoney(t, sum, d.Cash)
		})
	}
}

func TestDerive_Empty(t *testing.T) {
	d := Derive(Snapshot{}, DemoPrices())
	assert.True(t, d.Cash.IsZero())
	assert.True(t, d.TotalValue.IsZero())
	assert.True(t, d.ShareValue.IsZero())
	assert.True(t, d.TotalShares.IsZero())
	assert.Empty(t, d.Holdings)
	for _, id := range Portfolios {
		p, ok := d.Portfolios[id]
		require.True(t, ok, "every sub-portfolio is present")
		assert.True(t, p.TotalValue.IsZero())
	}
}

func TestDerive_SameAssetInBothPortfolios(t *testing.T) {
	txs := []Transaction{
		{Type: Buy, Portfolio: Phronesis, Asset: "AAPL", Quantity: Q(1), Price: USD(100), Amount: USD(100)},
		{Type: Buy, Portfolio: FlagShip, Asset: "AAPL", Quantity: Q(2), Price: USD(100), Amount: USD(200)},
	}
	d := Derive(Snapshot{Transactions: txs}, DemoPrices())
	require.Len(t, d.Holdings, 2, "combined holdings are concatenated, not merged")
	assert.Equal(t, Phronesis, d.Holdings[0].Portfolio)
	assert.Equal(t, FlagShip, d.Holdings[1].Portfolio)
}

func TestClubData_SelectAndClone(t *testing.T) {
	d := Derive(Demo(day("2025-01-15"), fixed(0.5)), DemoPrices())

	all := d.Select(Combined)
	assertMoney(t, d.TotalValue, all.TotalValue)
	assert.Len(t, all.Holdings, 3)

	flg := d.Select(View(FlagShip))
	assert.Equal(t, FlagShip, flg.ID)
	assert.Len(t, flg.Holdings, 1)

	c := d.clone()
	c.Members[0].Name = "changed"
	c.Holdings[0].Asset = "changed"
	assert.Equal(t, "Alice Johnson", d.Members[0].Name)
	assert.Equal(t, "AAPL", d.Holdings[0].Asset)
}

func TestParseView(t *testing.T) {
	for in, want := range map[string]View{"": Combined, "combined": Combined, "phr": View(Phronesis), "FlagShip_Portfolio": View(FlagShip)} {
		got, err := ParseView(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseView("bonds")
	assert.Error(t, err)
}
