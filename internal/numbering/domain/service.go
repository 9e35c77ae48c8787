package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Counter counts existing documents for an owner and scope key inside [from, to).
type Counter interface {
	CountInRange(ctx context.Context, orgID snowflake.ID, scope string, from, to time.Time) (int64, error)
}

// SequenceReserver atomically increments and returns the next sequence value.
type SequenceReserver interface {
	Reserve(ctx context.Context, orgID snowflake.ID, scope, period string) (int64, error)
}

// Locker serializes numbering for one scope across processes.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error)
	Release(ctx context.Context, key, token string) error
}

// Service mints human-readable document numbers.
type Service interface {
	// Next never fails: when the store is unavailable it returns the
	// non-sequential PREFIX-<epoch millis> form.
	Next(ctx context.Context, orgID snowflake.ID, prefix string, asOf time.Time) string
	// Issue mints a number and hands it to persist while the scope lock is held.
	Issue(ctx context.Context, orgID snowflake.ID, prefix string, asOf time.Time, persist func(ctx context.Context, number string) error) (string, error)
}
