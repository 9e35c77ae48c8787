package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

var (
	ErrNotConfigured = errors.New("numbering lock: redis client not configured")
	ErrInvalidKey    = errors.New("numbering lock: empty key")
	ErrInvalidTTL    = errors.New("numbering lock: ttl must be positive")
	// ErrLockLost means the scope key expired or was taken over before release.
	ErrLockLost = errors.New("numbering lock: lock lost before release")
)

// releaseIfOwner deletes KEYS[1] only while it still holds the caller's token.
var releaseIfOwner = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker guards one numbering scope at a time with SET NX and a random token.
type Locker struct {
	client redis.UniversalClient
}

func NewLocker(client redis.UniversalClient) *Locker {
	if client == nil {
		return nil
	}
	return &Locker{client: client}
}

// TryLock returns the owner token and true when the scope was free.
func (l *Locker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	switch {
	case l == nil || l.client == nil:
		return "", false, ErrNotConfigured
	case key == "":
		return "", false, ErrInvalidKey
	case ttl <= 0:
		return "", false, ErrInvalidTTL
	}

	token := uuid.NewString()
	acquired, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("numbering lock %s: %w", key, err)
	}
	if !acquired {
		return "", false, nil
	}
	return token, true, nil
}

func (l *Locker) Release(ctx context.Context, key, token string) error {
	if l == nil || l.client == nil || key == "" || token == "" {
		return nil
	}

	deleted, err := releaseIfOwner.Run(ctx, l.client, []string{key}, token).Int64()
	if err != nil {
		return fmt.Errorf("numbering lock %s: %w", key, err)
	}
	if deleted == 0 {
		return ErrLockLost
	}
	return nil
}

// ScopeKey is the lock key for one (org, prefix, month) numbering scope.
func ScopeKey(orgID snowflake.ID, prefix, period string) string {
	return fmt.Sprintf("khata:numbering:%s:%s:%s", orgID.String(), prefix, period)
}
