package ratelimit

import (
	"context"
	"strings"
	"time"
)

const (
	// Window is the rolling period over which failures accumulate.
	Window = 10 * time.Minute
	// MaxAttempts failures within a window trigger a lockout.
	MaxAttempts = 8
	// Lockout is how long a locked key is rejected outright.
	Lockout = 15 * time.Minute

	// sweepThreshold bounds memory: once this many keys are tracked, fully
	// expired entries are dropped before the next lookup.
	sweepThreshold = 2000
)

// Limiter throttles login attempts per (client IP, username) key. Lockout
// checks run before any bcrypt comparison so a brute-forcer cannot make the
// server burn hash time; see Blocked.
type Limiter struct {
	store Store
	now   func() time.Time
}

func NewLimiter(store Store) *Limiter {
	return &Limiter{store: store, now: time.Now}
}

// Key builds the limiter key. Per-(IP,account) rather than global: a shared
// office IP can still serve legitimate users while a targeted account stays
// throttled.
func Key(clientIP, username string) string {
	return clientIP + ":" + strings.ToLower(username)
}

// Blocked reports whether the key is locked out, and for how much longer.
// Store errors count as not blocked: the limiter is a deterrent and must not
// take logins down with it.
func (l *Limiter) Blocked(ctx context.Context, key string) (bool, time.Duration) {
	now := l.now()

	if l.store.Len(ctx) >= sweepThreshold {
		l.store.Sweep(ctx, now)
	}

	e, err := l.store.Get(ctx, key)
	if err != nil || e == nil {
		return false, 0
	}
	if e.BlockedUntil.After(now) {
		return true, e.BlockedUntil.Sub(now)
	}
	if !e.ResetAt.After(now) {
		// Window and lockout both over; forget the key.
		_ = l.store.Delete(ctx, key)
	}
	return false, 0
}

// Fail records a failed credential check. The first failure of a window
// starts a fresh entry; the MaxAttempts-th failure sets the lockout.
func (l *Limiter) Fail(ctx context.Context, key string) {
	now := l.now()

	e, err := l.store.Get(ctx, key)
	if err != nil || e == nil || !e.ResetAt.After(now) {
		_ = l.store.Put(ctx, key, Entry{
			Count:   1,
			ResetAt: now.Add(Window),
		})
		return
	}

	e.Count++
	if e.Count >= MaxAttempts {
		e.BlockedUntil = now.Add(Lockout)
	}
	_ = l.store.Put(ctx, key, *e)
}

// Reset clears the key unconditionally after a successful login.
func (l *Limiter) Reset(ctx context.Context, key string) {
	_ = l.store.Delete(ctx, key)
}
