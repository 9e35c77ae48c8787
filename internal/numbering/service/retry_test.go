package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errConflict = errors.New("unique violation")

func fastPolicy() RetryPolicy {
	return RetryPolicy{
		Conflict:        func(err error) bool { return errors.Is(err, errConflict) },
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
	}
}

func TestIssueWithRetryRemintsOnConflict(t *testing.T) {
	counter := newMemoryCounter()
	svc := newTestService(counter)
	org := snowflake.ID(4)

	// Another writer already took 001 without the counter seeing it yet.
	taken := map[string]bool{"INV-202603-001": true}
	var attempts int

	number, err := IssueWithRetry(context.Background(), svc, org, "INV", fixedNow, fastPolicy(), func(_ context.Context, number string) error {
		attempts++
		if taken[number] {
			counter.add(org, "INV", fixedNow)
			return errConflict
		}
		taken[number] = true
		counter.add(org, "INV", fixedNow)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-202603-002", number)
	assert.Equal(t, 2, attempts)
}

func TestIssueWithRetryStopsOnOtherErrors(t *testing.T) {
	svc := newTestService(newMemoryCounter())
	boom := errors.New("disk full")
	var attempts int

	_, err := IssueWithRetry(context.Background(), svc, snowflake.ID(4), "INV", fixedNow, fastPolicy(), func(context.Context, string) error {
		attempts++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}

func TestIssueWithRetryGivesUp(t *testing.T) {
	svc := newTestService(newMemoryCounter())
	var attempts int

	_, err := IssueWithRetry(context.Background(), svc, snowflake.ID(4), "INV", fixedNow, fastPolicy(), func(context.Context, string) error {
		attempts++
		return errConflict
	})
	assert.ErrorIs(t, err, errConflict)
	assert.Equal(t, maxIssueAttempts, attempts)
}
