package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSucceedsOnFirstAttempt(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), "convert", Config{MaxAttempts: 3, Delay: time.Millisecond}, func() (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 1, calls)
}

func TestDoSucceedsOnFinalAttempt(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), "convert", Config{MaxAttempts: 3, Delay: time.Millisecond}, func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 3, calls)
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	boom := errors.New("backend still settling")
	_, err := Do(context.Background(), "convert", Config{MaxAttempts: 3, Delay: time.Millisecond}, func() (string, error) {
		calls++
		return "", boom
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Contains(t, err.Error(), "convert")
}

func TestDoRetryCallback(t *testing.T) {
	retries := 0
	calls := 0
	_, err := Do(context.Background(), "convert", Config{
		MaxAttempts: 3,
		Delay:       time.Millisecond,
		OnRetry:     func() { retries++ },
	}, func() (string, error) {
		calls++
		return "", fmt.Errorf("attempt %d failed", calls)
	})

	require.Error(t, err)
	// The final failure surfaces as the composite error, not a retry.
	assert.Equal(t, 2, retries)
}

func TestDoHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	_, err := Do(ctx, "convert", Config{MaxAttempts: 10, Delay: 50 * time.Millisecond}, func() (string, error) {
		calls++
		cancel()
		return "", errors.New("transient")
	})

	require.Error(t, err)
	assert.Less(t, calls, 10)
}

func TestDoAppliesDefaults(t *testing.T) {
	start := time.Now()
	calls := 0
	_, err := Do(context.Background(), "convert", Config{Delay: time.Millisecond}, func() (string, error) {
		calls++
		return "", errors.New("transient")
	})

	require.Error(t, err)
	assert.Equal(t, DefaultMaxAttempts, calls)
	assert.Contains(t, err.Error(), fmt.Sprintf("after %d attempts", DefaultMaxAttempts))
	assert.Less(t, time.Since(start), time.Second)
}
