package club

import (
	"context"
	"errors"
	"testing"

	"github.com/etnz/club/date"
	"github.com/stretchr/testify/assert"
)

// USD is a helper for test to create money from const
func USD(v float64) Money { return M(v) }

// day is a helper for test to parse dates.
func day(s string) date.Date { return date.MustParse(s) }

// assertMoney fails the test when got is not equal to want.
func assertMoney(t *testing.T, want, got Money, msgAndArgs ...any) bool {
	t.Helper()
	return assert.Truef(t, want.Equal(got), "want %s, got %s %v", want.value, got.value, msgAndArgs)
}

// assertQuantity fails the test when got is not equal to want.
func assertQuantity(t *testing.T, want, got Quantity, msgAndArgs ...any) bool {
	t.Helper()
	return assert.Truef(t, want.Equal(got), "want %s, got %s %v", want, got, msgAndArgs)
}

// fixed returns a deterministic random source cycling over values.
func fixed(values ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := values[i%len(values)]
		i++
		return v
	}
}

// memStore is an in-memory Store.
type memStore struct {
	snapshot *Snapshot
	saves    int
	failSave error
}

func (m *memStore) Load(ctx context.Context) (Snapshot, error) {
	if m.snapshot == nil {
		return Snapshot{}, ErrNotFound
	}
	return *m.snapshot, nil
}

func (m *memStore) Save(ctx context.Context, s Snapshot) error {
	if m.failSave != nil {
		return m.failSave
	}
	m.saves++
	m.snapshot = &s
	return nil
}

var errDiskFull = errors.New("disk full")

// history builds a monthly history from NAV values, starting in January 2020.
func history(navs ...float64) []PerformancePoint {
	h := make([]PerformancePoint, len(navs))
	for i, nav := range navs {
		h[i] = PerformancePoint{
			Date:       date.New(2020, 1, 1).AddMonth(i).EndOf(date.Monthly),
			NAV:        nav,
			ShareValue: 100 * nav / InitialNAV,
			Benchmark:  InitialBenchmark + float64(i),
		}
	}
	return h
}
