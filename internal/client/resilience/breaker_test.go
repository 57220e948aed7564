package resilience_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizdeck/internal/client/resilience"
)

var errBackend = errors.New("backend down")

func testConfig() resilience.Config {
	return resilience.Config{
		FailureThreshold: 3,
		RecoveryTimeout:  50 * time.Millisecond,
		SuccessThreshold: 2,
	}
}

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	ctx := context.Background()
	b := resilience.NewBreaker("test", testConfig())

	for range 3 {
		err := b.Execute(ctx, func() error { return errBackend })
		require.ErrorIs(t, err, errBackend)
	}

	assert.Equal(t, resilience.StateOpen, b.State())

	err := b.Execute(ctx, func() error { return nil })
	assert.ErrorIs(t, err, resilience.ErrBreakerOpen)
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	ctx := context.Background()
	b := resilience.NewBreaker("test", testConfig())

	for range 2 {
		_ = b.Execute(ctx, func() error { return errBackend })
	}
	require.NoError(t, b.Execute(ctx, func() error { return nil }))

	// Two more failures do not trip the breaker after the reset.
	for range 2 {
		_ = b.Execute(ctx, func() error { return errBackend })
	}
	assert.Equal(t, resilience.StateClosed, b.State())
}

func TestBreaker_RecoversThroughHalfOpen(t *testing.T) {
	ctx := context.Background()
	b := resilience.NewBreaker("test", testConfig())

	for range 3 {
		_ = b.Execute(ctx, func() error { return errBackend })
	}
	require.Equal(t, resilience.StateOpen, b.State())

	time.Sleep(60 * time.Millisecond)

	require.NoError(t, b.Execute(ctx, func() error { return nil }))
	assert.Equal(t, resilience.StateHalfOpen, b.State())

	require.NoError(t, b.Execute(ctx, func() error { return nil }))
	assert.Equal(t, resilience.StateClosed, b.State())
}

func TestBreaker_ProbeFailureReopens(t *testing.T) {
	ctx := context.Background()
	b := resilience.NewBreaker("test", testConfig())

	for range 3 {
		_ = b.Execute(ctx, func() error { return errBackend })
	}

	time.Sleep(60 * time.Millisecond)

	_ = b.Execute(ctx, func() error { return errBackend })
	assert.Equal(t, resilience.StateOpen, b.State())
}
