package ratelimiter

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock は手動で進める時計です。after は呼ばれた時点で時計を進めて即座に発火します。
type fakeClock struct {
	mu     sync.Mutex
	t      time.Time
	sleeps []time.Duration
}

func (f *fakeClock) now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) after(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.sleeps = append(f.sleeps, d)
	now := f.t
	f.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- now
	return ch
}

func newTestLimiter(limit int, interval time.Duration) (*RateLimiter, *fakeClock) {
	clk := &fakeClock{t: time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)}
	rl := NewRateLimiter(limit, interval)
	rl.now = clk.now
	rl.after = clk.after
	rl.lastReset = clk.t
	return rl, clk
}

func TestRateLimiter_WithinLimitDoesNotWait(t *testing.T) {
	t.Parallel()

	rl, clk := newTestLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		require.NoError(t, rl.Wait(context.Background()))
	}
	assert.Empty(t, clk.sleeps)
}

func TestRateLimiter_WaitsUntilWindowResets(t *testing.T) {
	t.Parallel()

	rl, clk := newTestLimiter(2, time.Minute)
	require.NoError(t, rl.Wait(context.Background()))

	clk.mu.Lock()
	clk.t = clk.t.Add(20 * time.Second)
	clk.mu.Unlock()

	require.NoError(t, rl.Wait(context.Background()))
	require.NoError(t, rl.Wait(context.Background()))

	require.Len(t, clk.sleeps, 1)
	assert.Equal(t, 40*time.Second, clk.sleeps[0])
	assert.Equal(t, 1, rl.count)
}

func TestRateLimiter_CancelledWhileWaiting(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, time.Hour)
	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := rl.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, rl.count)
}

func TestUnlimited_Wait(t *testing.T) {
	t.Parallel()

	var l Limiter = Unlimited{}
	for i := 0; i < 100; i++ {
		assert.NoError(t, l.Wait(context.Background()))
	}
}
