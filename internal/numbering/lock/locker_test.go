package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bwmarrin/snowflake"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T) (*Locker, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewLocker(client), srv
}

func TestTryLockIsExclusive(t *testing.T) {
	locker, _ := newTestLocker(t)
	ctx := context.Background()
	key := ScopeKey(snowflake.ID(7), "INV", "202603")

	token, ok, err := locker.TryLock(ctx, key, time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEmpty(t, token)

	_, ok, err = locker.TryLock(ctx, key, time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, locker.Release(ctx, key, token))

	_, ok, err = locker.TryLock(ctx, key, time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReleaseIgnoresForeignToken(t *testing.T) {
	locker, srv := newTestLocker(t)
	ctx := context.Background()
	key := ScopeKey(snowflake.ID(7), "INV", "202603")

	_, ok, err := locker.TryLock(ctx, key, time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	assert.ErrorIs(t, locker.Release(ctx, key, "someone-else"), ErrLockLost)
	assert.True(t, srv.Exists(key))
}

func TestLockExpires(t *testing.T) {
	locker, srv := newTestLocker(t)
	ctx := context.Background()
	key := "khata:numbering:test"

	_, ok, err := locker.TryLock(ctx, key, time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	srv.FastForward(2 * time.Second)

	token, ok, err := locker.TryLock(ctx, key, time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, locker.Release(ctx, key, token))
}

func TestReleaseAfterExpiryReportsLostLock(t *testing.T) {
	locker, srv := newTestLocker(t)
	ctx := context.Background()
	key := ScopeKey(snowflake.ID(9), "EXP", "202604")

	token, ok, err := locker.TryLock(ctx, key, time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	srv.FastForward(2 * time.Second)

	assert.ErrorIs(t, locker.Release(ctx, key, token), ErrLockLost)
}

func TestTryLockValidatesArguments(t *testing.T) {
	locker, _ := newTestLocker(t)

	_, _, err := locker.TryLock(context.Background(), "", time.Second)
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, _, err = locker.TryLock(context.Background(), "k", 0)
	assert.ErrorIs(t, err, ErrInvalidTTL)

	var nilLocker *Locker
	_, _, err = nilLocker.TryLock(context.Background(), "k", time.Second)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestScopeKey(t *testing.T) {
	assert.Equal(t, "khata:numbering:42:INV:202603", ScopeKey(snowflake.ID(42), "INV", "202603"))
}
