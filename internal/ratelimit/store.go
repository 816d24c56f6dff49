package ratelimit

import (
	"context"
	"time"
)

// Entry tracks failed login attempts for one (client IP, username) key.
type Entry struct {
	Count        int       `json:"count"`
	ResetAt      time.Time `json:"reset_at"`      // failure window end
	BlockedUntil time.Time `json:"blocked_until"` // zero unless locked out
}

// Expired reports whether both the failure window and any lockout have
// elapsed, i.e. the entry carries no information anymore.
func (e Entry) Expired(now time.Time) bool {
	return !e.ResetAt.After(now) && !e.BlockedUntil.After(now)
}

// Store persists rate-limit entries. The in-memory implementation is the
// default; a Redis-backed one can be swapped in when several instances share
// one public origin. Implementations may lose entries under pressure: the
// limiter is a deterrent, not a ledger. Active lockouts must never be
// dropped early.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Put(ctx context.Context, key string, e Entry) error
	Delete(ctx context.Context, key string) error
	// Len reports how many keys are tracked; 0 for stores that self-expire.
	Len(ctx context.Context) int
	// Sweep drops entries fully expired at now.
	Sweep(ctx context.Context, now time.Time)
}
