package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/cenkalti/backoff/v5"
	numberingdomain "github.com/smallbiznis/khata/internal/numbering/domain"
)

const maxIssueAttempts = 5

// RetryPolicy controls IssueWithRetry. Conflict reports whether a persist
// error is a number collision worth re-minting for.
type RetryPolicy struct {
	Conflict        func(error) bool
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxAttempts     uint
}

// IssueWithRetry re-mints and re-persists when persist hits a uniqueness
// conflict on the number. Any other persist error is returned immediately.
func IssueWithRetry(
	ctx context.Context,
	numberer numberingdomain.Service,
	orgID snowflake.ID,
	prefix string,
	asOf time.Time,
	policy RetryPolicy,
	persist func(ctx context.Context, number string) error,
) (string, error) {
	attempts := policy.MaxAttempts
	if attempts == 0 {
		attempts = maxIssueAttempts
	}

	b := backoff.NewExponentialBackOff()
	if policy.InitialInterval > 0 {
		b.InitialInterval = policy.InitialInterval
	}
	if policy.MaxInterval > 0 {
		b.MaxInterval = policy.MaxInterval
	}

	return backoff.Retry(ctx, func() (string, error) {
		number, err := numberer.Issue(ctx, orgID, prefix, asOf, persist)
		if err == nil {
			return number, nil
		}
		if policy.Conflict != nil && policy.Conflict(err) {
			return "", err
		}
		return "", backoff.Permanent(err)
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(attempts),
	)
}
