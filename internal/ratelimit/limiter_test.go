package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLimiter(t *testing.T) (*Limiter, *time.Time) {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := NewLimiter(NewMemoryStore())
	l.now = func() time.Time { return now }
	return l, &now
}

func TestKey(t *testing.T) {
	assert.Equal(t, "1.2.3.4:copperkoi", Key("1.2.3.4", "CopperKoi"))
}

func TestLockoutAfterMaxAttempts(t *testing.T) {
	l, _ := testLimiter(t)
	ctx := context.Background()
	key := Key("1.2.3.4", "admin")

	for i := 0; i < MaxAttempts-1; i++ {
		l.Fail(ctx, key)
		blocked, _ := l.Blocked(ctx, key)
		require.False(t, blocked, "attempt %d should not lock", i+1)
	}

	l.Fail(ctx, key)

	blocked, retryAfter := l.Blocked(ctx, key)
	assert.True(t, blocked)
	assert.Equal(t, Lockout, retryAfter)
}

func TestLockoutExpires(t *testing.T) {
	l, now := testLimiter(t)
	ctx := context.Background()
	key := Key("1.2.3.4", "admin")

	for i := 0; i < MaxAttempts; i++ {
		l.Fail(ctx, key)
	}
	blocked, _ := l.Blocked(ctx, key)
	require.True(t, blocked)

	*now = now.Add(Lockout + time.Second)

	blocked, _ = l.Blocked(ctx, key)
	assert.False(t, blocked)
}

func TestResetOnSuccessClearsCount(t *testing.T) {
	l, _ := testLimiter(t)
	ctx := context.Background()
	key := Key("1.2.3.4", "admin")

	for i := 0; i < MaxAttempts-1; i++ {
		l.Fail(ctx, key)
	}
	l.Reset(ctx, key)

	// The next failure starts over at count 1.
	l.Fail(ctx, key)
	e, err := l.store.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, 1, e.Count)
	assert.True(t, e.BlockedUntil.IsZero())
}

func TestWindowExpiryStartsFreshEntry(t *testing.T) {
	l, now := testLimiter(t)
	ctx := context.Background()
	key := Key("1.2.3.4", "admin")

	for i := 0; i < MaxAttempts-1; i++ {
		l.Fail(ctx, key)
	}

	*now = now.Add(Window + time.Second)

	l.Fail(ctx, key)
	e, err := l.store.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, 1, e.Count)
}

func TestKeysAreIndependent(t *testing.T) {
	l, _ := testLimiter(t)
	ctx := context.Background()

	for i := 0; i < MaxAttempts; i++ {
		l.Fail(ctx, Key("1.2.3.4", "admin"))
	}

	blocked, _ := l.Blocked(ctx, Key("5.6.7.8", "admin"))
	assert.False(t, blocked)
	blocked, _ = l.Blocked(ctx, Key("1.2.3.4", "other"))
	assert.False(t, blocked)
}

func TestSweepDropsOnlyExpiredEntries(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Put(ctx, "expired", Entry{
		Count:   3,
		ResetAt: now.Add(-time.Minute),
	}))
	require.NoError(t, store.Put(ctx, "locked", Entry{
		Count:        MaxAttempts,
		ResetAt:      now.Add(-time.Minute),
		BlockedUntil: now.Add(10 * time.Minute),
	}))
	require.NoError(t, store.Put(ctx, "counting", Entry{
		Count:   2,
		ResetAt: now.Add(5 * time.Minute),
	}))

	store.Sweep(ctx, now)

	e, _ := store.Get(ctx, "expired")
	assert.Nil(t, e)
	e, _ = store.Get(ctx, "locked")
	assert.NotNil(t, e, "active lockouts must survive the sweep")
	e, _ = store.Get(ctx, "counting")
	assert.NotNil(t, e)
}

func TestSweepTriggersAtThreshold(t *testing.T) {
	l, now := testLimiter(t)
	ctx := context.Background()

	for i := 0; i < sweepThreshold; i++ {
		l.Fail(ctx, fmt.Sprintf("10.0.0.%d:user", i))
	}
	require.Equal(t, sweepThreshold, l.store.Len(ctx))

	*now = now.Add(Window + time.Second)

	// Any lookup past the threshold prunes the dead entries.
	l.Blocked(ctx, "fresh-key")
	assert.Zero(t, l.store.Len(ctx))
}
