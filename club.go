package club

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/etnz/club/date"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store persists the club snapshot.
type Store interface {
	// Load returns the stored snapshot, or ErrNotFound.
	Load(ctx context.Context) (Snapshot, error)
	// Save replaces the stored snapshot.
	Save(ctx context.Context, s Snapshot) error
}

// Club owns the read-modify-persist cycle of the club data.
//
// Every mutation validates, updates the snapshot, persists it and then
// derives the club data again from scratch. A failed mutation leaves both the
// store and the in-memory state unchanged. Club is safe for concurrent use.
type Club struct {
	mu       sync.RWMutex
	store    Store
	prices   Prices
	log      zerolog.Logger
	today    func() date.Date
	rnd      func() float64
	snapshot Snapshot
	data     ClubData
}

// Option configures a Club.
type Option func(*Club)

// WithLogger sets the logger, zerolog.Nop() by default.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Club) { c.log = log.With().Str("component", "club").Logger() }
}

// WithClock sets the function returning today, used for exit dates and
// history generation.
func WithClock(today func() date.Date) Option { return func(c *Club) { c.today = today } }

// WithRandom sets the uniform [0, 1) source used to generate histories.
func WithRandom(rnd func() float64) Option { return func(c *Club) { c.rnd = rnd } }

// Open loads the club from store, or seeds the demo club when the store is
// empty. A stored history shorter than MinHistoryPoints is regenerated and
// saved back.
func Open(ctx context.Context, store Store, prices Prices, opts ...Option) (*Club, error) {
	c := &Club{
		store:  store,
		prices: prices,
		log:    zerolog.Nop(),
		today:  date.Today,
		rnd:    rand.Float64,
	}
	for _, opt := range opts {
		opt(c)
	}

	s, err := store.Load(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		c.log.Info().Msg("no stored club, seeding demo data")
		s = Demo(c.today(), c.rnd)
		if err := store.Save(ctx, s); err != nil {
			return nil, fmt.Errorf("failed to save seeded club: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to load club: %w", err)
	case NeedsMigration(s.PerformanceHistory):
		c.log.Warn().Int("points", len(s.PerformanceHistory)).Msg("stored history too short, regenerating")
		s.PerformanceHistory = GenerateHistory(c.today(), c.rnd)
		if err := store.Save(ctx, s); err != nil {
			return nil, fmt.Errorf("failed to save migrated club: %w", err)
		}
	}
	c.commit(s)
	c.log.Debug().
		Int("members", len(s.Members)).
		Int("transactions", len(s.Transactions)).
		Str("share_value", c.data.ShareValue.String()).
		Msg("club loaded")
	return c, nil
}

// commit replaces the snapshot and derives the club data. Callers hold the lock.
func (c *Club) commit(s Snapshot) {
	c.snapshot = s
	c.data = Derive(s, c.prices)
}

// save persists next and commits it. Callers hold the lock.
func (c *Club) save(ctx context.Context, next Snapshot) error {
	if err := c.store.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to save club: %w", err)
	}
	c.commit(next)
	return nil
}

// Data returns a copy of the derived club data.
func (c *Club) Data() ClubData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.clone()
}

// AddTransaction appends a transaction to the ledger.
//
// A deposit or withdrawal also converts its amount into shares of its member
// at the share value in effect before the transaction. The stored transaction,
// with its id and derived amount, is returned.
func (c *Club) AddTransaction(ctx context.Context, tx Transaction) (Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ledger := NewLedger(c.snapshot.Transactions...)
	tx, err := ledger.Append(tx)
	if err != nil {
		return Transaction{}, err
	}
	log := c.log.With().Str("tx", tx.ID).Str("type", string(tx.Type)).Str("portfolio", string(tx.Portfolio)).Logger()
	if n := len(c.snapshot.Transactions); n > 0 && tx.Date.Before(c.snapshot.Transactions[n-1].Date) {
		log.Warn().Str("date", tx.Date.String()).Msg("transaction dated before the previous one, replay keeps insertion order")
	}

	members := c.snapshot.Members
	if tx.Type.IsCashFlow() {
		var found bool
		members, found = ApplyMembership(members, tx, c.data.ShareValue, c.today())
		if !found {
			log.Warn().Str("member", tx.MemberID).Msg("unknown member, shares unchanged")
		}
	}

	next := Snapshot{
		Members:            members,
		Transactions:       ledger.All(),
		PerformanceHistory: c.snapshot.PerformanceHistory,
	}
	if err := c.save(ctx, next); err != nil {
		return Transaction{}, err
	}
	log.Info().Str("amount", tx.Amount.String()).Str("share_value", c.data.ShareValue.String()).Msg("transaction added")
	return tx, nil
}

// AddMember onboards a member with no shares. An empty id is replaced by a
// fresh one and a zero join date by today.
func (c *Club) AddMember(ctx context.Context, m Member) (Member, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := m.Validate(); err != nil {
		return Member{}, fmt.Errorf("invalid member: %w", err)
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if FindMember(c.snapshot.Members, m.ID) >= 0 {
		return Member{}, fmt.Errorf("%w: %q", ErrDuplicateMember, m.ID)
	}
	if m.JoinDate.IsZero() {
		m.JoinDate = c.today()
	}
	m.Shares, m.InvestedCapital = Quantity{}, Money{}
	m.Status, m.ExitDate = Active, date.Date{}

	next := c.snapshot
	next.Members = append(slices.Clone(c.snapshot.Members), m)
	if err := c.save(ctx, next); err != nil {
		return Member{}, err
	}
	c.log.Info().Str("member", m.ID).Str("name", m.Name).Msg("member added")
	return m, nil
}

// RecordMonth appends the live NAV and share value as the history point of
// the month of on. A zero benchmark carries the previous one forward.
func (c *Club) RecordMonth(ctx context.Context, on date.Date, benchmark float64) (PerformancePoint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := MonthEnd(c.data, on, benchmark)
	history, err := AppendPoint(c.snapshot.PerformanceHistory, p)
	if err != nil {
		return PerformancePoint{}, err
	}
	next := c.snapshot
	next.PerformanceHistory = history
	if err := c.save(ctx, next); err != nil {
		return PerformancePoint{}, err
	}
	c.log.Info().Str("date", p.Date.String()).Float64("nav", p.NAV).Msg("month recorded")
	return p, nil
}

// MemberReport returns the statement of a member, see NewMemberReport.
func (c *Club) MemberReport(id, email string) (MemberReport, error) {
	return NewMemberReport(c.Data(), id, email)
}
