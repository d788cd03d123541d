package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalls(t *testing.T) {
	c := NewCalls()
	ctx, cancel := context.WithCancel(context.Background())

	_, ok := c.Get("market")
	assert.False(t, ok)

	release := make(chan struct{})
	done := c.Start(ctx, "market", func(ctx context.Context) (string, error) {
		<-release
		return "bullish", ctx.Err()
	})
	r, ok := c.Get("market")
	require.True(t, ok)
	assert.Equal(t, Pending, r.State)

	// the caller going away does not cancel the call.
	cancel()
	close(release)
	<-done
	r, _ = c.Get("market")
	assert.Equal(t, Success, r.State)
	assert.Equal(t, "bullish", r.Text)
}

func TestCalls_Independent(t *testing.T) {
	c := NewCalls()
	ctx := context.Background()

	slow := make(chan struct{})
	doneRisk := c.Start(ctx, "risk", func(context.Context) (string, error) {
		<-slow
		return "", errors.New("timeout")
	})
	<-c.Start(ctx, "yield", func(context.Context) (string, error) { return "inverted", nil })

	yield, _ := c.Get("yield")
	assert.Equal(t, Success, yield.State)
	risk, _ := c.Get("risk")
	assert.Equal(t, Pending, risk.State)

	close(slow)
	<-doneRisk
	risk, _ = c.Get("risk")
	assert.Equal(t, Failed, risk.State)
	assert.Equal(t, "An error occurred while fetching analysis: timeout", risk.Error)
}

func TestCalls_LastWriterWins(t *testing.T) {
	c := NewCalls()
	ctx := context.Background()

	first := make(chan struct{})
	doneFirst := c.Start(ctx, "market", func(context.Context) (string, error) {
		<-first
		return "old", nil
	})
	<-c.Start(ctx, "market", func(context.Context) (string, error) { return "new", nil })
	r, _ := c.Get("market")
	assert.Equal(t, "new", r.Text)

	// the superseded call completes last and overwrites the result.
	close(first)
	<-doneFirst
	r, _ = c.Get("market")
	assert.Equal(t, "old", r.Text)
}
