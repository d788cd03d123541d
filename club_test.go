package club

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/etnz/club/date"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const today = "2025-03-18"

// openDemo opens a club seeded with the demo data.
func openDemo(t *testing.T, store *memStore) *Club {
	t.Helper()
	c, err := Open(context.Background(), store, DemoPrices(),
		WithClock(func() date.Date { return day(today) }),
		WithRandom(fixed(0.5)),
	)
	require.NoError(t, err)
	return c
}

func TestOpen_Seeds(t *testing.T) {
	store := &memStore{}
	c := openDemo(t, store)

	assert.Equal(t, 1, store.saves)
	d := c.Data()
	assert.Len(t, d.Members, 3)
	assert.Len(t, d.Transactions, 8)
	assert.Len(t, d.PerformanceHistory, HistoryMonths)
	assertMoney(t, USD(25680), d.TotalValue)
	assertQuantity(t, Q(250), d.TotalShares)
	assertMoney(t, USD(102.72), d.ShareValue)
}

func TestOpen_MigratesShortHistory(t *testing.T) {
	s := Demo(day(today), fixed(0.5))
	s.PerformanceHistory = s.PerformanceHistory[:10]
	store := &memStore{snapshot: &s}

	c := openDemo(t, store)
	assert.Equal(t, 1, store.saves)
	assert.Len(t, c.Data().PerformanceHistory, HistoryMonths)
	assert.Len(t, store.snapshot.PerformanceHistory, HistoryMonths)
}

func TestOpen_Loads(t *testing.T) {
	s := Demo(day(today), fixed(0.5))
	s.Members = s.Members[:1]
	store := &memStore{snapshot: &s}

	c := openDemo(t, store)
	assert.Equal(t, 0, store.saves)
	assert.Len(t, c.Data().Members, 1)
}

func TestOpen_LoadError(t *testing.T) {
	_, err := Open(context.Background(), failingLoad{&memStore{}}, DemoPrices())
	assert.ErrorIs(t, err, errDiskFull)
}

type failingLoad struct{ *memStore }

func (failingLoad) Load(context.Context) (Snapshot, error) { return Snapshot{}, errDiskFull }

func TestAddTransaction_Deposit(t *testing.T) {
	store := &memStore{}
	c := openDemo(t, store)
	ctx := context.Background()

	tx, err := c.AddTransaction(ctx, NewDeposit(day("2025-03-01"), Phronesis, "m1", USD(1027.20)))
	require.NoError(t, err)
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, 2, store.saves)

	d := c.Data()
	alice, ok := d.Member("m1")
	require.True(t, ok)
	assertQuantity(t, Q(110), alice.Shares)
	assertMoney(t, USD(11027.20), alice.InvestedCapital)
	assertQuantity(t, Q(260), d.TotalShares)
	// the share value does not move on a deposit.
	assertMoney(t, USD(102.72), d.ShareValue)
	assert.Len(t, store.snapshot.Transactions, 9)
}

func TestAddTransaction_Buy(t *testing.T) {
	c := openDemo(t, &memStore{})

	tx, err := c.AddTransaction(context.Background(), NewBuy(day("2025-03-01"), FlagShip, "MSFT", Q(2), USD(300)))
	require.NoError(t, err)
	assertMoney(t, USD(600), tx.Amount)

	flg := c.Data().Portfolio(FlagShip)
	assertMoney(t, USD(-2950), flg.Cash)
	assertMoney(t, USD(-2950+1980+660), flg.TotalValue)
}

func TestAddTransaction_UnknownMember(t *testing.T) {
	c := openDemo(t, &memStore{})

	_, err := c.AddTransaction(context.Background(), NewDeposit(day("2025-03-01"), Phronesis, "ghost", USD(500)))
	require.NoError(t, err)
	d := c.Data()
	assert.Len(t, d.Transactions, 9)
	assertQuantity(t, Q(250), d.TotalShares)
	assertMoney(t, USD(20000), d.Portfolio(Phronesis).Cash)
}

func TestAddTransaction_Invalid(t *testing.T) {
	store := &memStore{}
	c := openDemo(t, store)
	before := c.Data()

	_, err := c.AddTransaction(context.Background(), Transaction{Type: Buy, Portfolio: Phronesis, Asset: "AAPL"})
	assert.ErrorIs(t, err, ErrMissingField)
	_, err = c.AddTransaction(context.Background(), Transaction{Type: Deposit, Portfolio: "Nope", MemberID: "m1", Amount: USD(10)})
	assert.ErrorIs(t, err, ErrUnknownPortfolio)

	assert.Equal(t, 1, store.saves)
	assert.Len(t, c.Data().Transactions, len(before.Transactions))
}

func TestAddTransaction_SaveFailure(t *testing.T) {
	store := &memStore{}
	c := openDemo(t, store)
	store.failSave = errDiskFull

	_, err := c.AddTransaction(context.Background(), NewWithdrawal(day("2025-03-01"), Phronesis, "m2", USD(1000)))
	assert.ErrorIs(t, err, errDiskFull)

	d := c.Data()
	assert.Len(t, d.Transactions, 8)
	bob, _ := d.Member("m2")
	assertQuantity(t, Q(150), bob.Shares)
	assert.Len(t, store.snapshot.Transactions, 8)
}

func TestAddTransaction_OutOfOrderIsLogged(t *testing.T) {
	var buf bytes.Buffer
	c, err := Open(context.Background(), &memStore{}, DemoPrices(),
		WithLogger(zerolog.New(&buf)),
		WithClock(func() date.Date { return day(today) }),
		WithRandom(fixed(0.5)),
	)
	require.NoError(t, err)

	_, err = c.AddTransaction(context.Background(), NewDividend(day("2020-01-01"), Phronesis, "AAPL", USD(12)))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "transaction dated before the previous one")
	assert.Contains(t, buf.String(), `"component":"club"`)
	assert.Len(t, c.Data().Ledger().OutOfOrder(), 1)
}

func TestAddTransaction_FullWithdrawalExits(t *testing.T) {
	c := openDemo(t, &memStore{})
	_, err := c.AddTransaction(context.Background(), NewWithdrawal(day("2025-03-01"), Phronesis, "m1", USD(10272)))
	require.NoError(t, err)

	alice, _ := c.Data().Member("m1")
	assert.Equal(t, Inactive, alice.Status)
	assert.Equal(t, day(today), alice.ExitDate)
	assert.True(t, alice.Shares.IsZero())
}

func TestAddMember(t *testing.T) {
	c := openDemo(t, &memStore{})
	ctx := context.Background()

	m, err := c.AddMember(ctx, Member{Name: "Dana Scully", Email: "dana@email.com", Shares: Q(99)})
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, day(today), m.JoinDate)
	assert.Equal(t, Active, m.Status)
	assert.True(t, m.Shares.IsZero())
	assert.Len(t, c.Data().Members, 4)

	_, err = c.AddMember(ctx, Member{ID: "m1", Name: "Alice", Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrDuplicateMember)
	_, err = c.AddMember(ctx, Member{Name: "No Mail"})
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Len(t, c.Data().Members, 4)
}

func TestRecordMonth(t *testing.T) {
	store := &memStore{}
	c := openDemo(t, store)
	ctx := context.Background()

	p, err := c.RecordMonth(ctx, day(today), 0)
	require.NoError(t, err)
	assert.Equal(t, day("2025-03-31"), p.Date)
	assert.Equal(t, 25680.0, p.NAV)
	assert.Equal(t, 102.72, p.ShareValue)
	assert.Len(t, c.Data().PerformanceHistory, HistoryMonths+1)

	_, err = c.RecordMonth(ctx, day("2024-01-15"), 4100)
	assert.ErrorIs(t, err, ErrOutOfOrder)
	assert.Len(t, c.Data().PerformanceHistory, HistoryMonths+1)
	assert.Equal(t, 2, store.saves)
}

func TestMemberReport(t *testing.T) {
	c := openDemo(t, &memStore{})

	r, err := c.MemberReport("m2", " BOB@email.com ")
	require.NoError(t, err)
	assertMoney(t, USD(15408), r.Equity)

	_, err = c.MemberReport("m2", "alice@email.com")
	assert.ErrorIs(t, err, ErrUnknownMember)
}

func TestClub_Concurrent(t *testing.T) {
	c := openDemo(t, &memStore{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := c.AddTransaction(ctx, NewDividend(day(today), FlagShip, "XAU/USD", USD(1)))
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_ = c.Data().TotalValue
		}()
	}
	wg.Wait()
	assert.Len(t, c.Data().Transactions, 18)
	assertMoney(t, USD(-2340), c.Data().Portfolio(FlagShip).Cash)
}

func TestStoreErrorsAreWrapped(t *testing.T) {
	store := &memStore{failSave: errDiskFull}
	_, err := Open(context.Background(), store, nil)
	assert.True(t, errors.Is(err, errDiskFull))
}
