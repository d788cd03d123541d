package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/etnz/club"
	"github.com/etnz/club/date"
	"github.com/etnz/club/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule_Invalid(t *testing.T) {
	_, err := schedule(context.Background(), "every full moon", nil, zerolog.Nop())
	assert.ErrorContains(t, err, "invalid schedule")
}

func TestMonthEndJob(t *testing.T) {
	setup(t)
	ctx := context.Background()
	s := store.NewFile(filepath.Join(t.TempDir(), "club.json"), zerolog.Nop())
	c, err := club.Open(ctx, s, club.DemoPrices(), club.WithClock(today))
	require.NoError(t, err)
	before := len(c.Data().PerformanceHistory)

	job := monthEndJob(ctx, c, zerolog.Nop())
	job() // 2025-03-18 is not a month end
	assert.Len(t, c.Data().PerformanceHistory, before)

	today = func() date.Date { return date.MustParse("2025-03-31") }
	job()
	history := c.Data().PerformanceHistory
	require.Len(t, history, before+1)
	assert.Equal(t, "2025-03-31", history[before].Date.String())
	assert.Equal(t, 25680.0, history[before].NAV)

	// a second run the same day fails and is only logged
	job()
	assert.Len(t, c.Data().PerformanceHistory, before+1)
}
