package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/khata/internal/clock"
	"github.com/smallbiznis/khata/internal/config"
	numberingdomain "github.com/smallbiznis/khata/internal/numbering/domain"
	"github.com/smallbiznis/khata/internal/numbering/format"
	"github.com/smallbiznis/khata/internal/numbering/lock"
	obsmetrics "github.com/smallbiznis/khata/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	lockTTL          = 5 * time.Second
	lockWait         = 500 * time.Millisecond
	lockPollInterval = 25 * time.Millisecond
)

type ServiceParams struct {
	fx.In

	Log        *zap.Logger
	Clock      clock.Clock
	Config     config.Config
	Counter    numberingdomain.Counter
	Reserver   numberingdomain.SequenceReserver `optional:"true"`
	Locker     numberingdomain.Locker           `optional:"true"`
	ObsMetrics *obsmetrics.Metrics              `optional:"true"`
}

type Service struct {
	log        *zap.Logger
	clock      clock.Clock
	strategy   string
	counter    numberingdomain.Counter
	reserver   numberingdomain.SequenceReserver
	locker     numberingdomain.Locker
	obsMetrics *obsmetrics.Metrics
}

func NewService(p ServiceParams) numberingdomain.Service {
	strategy := numberingdomain.StrategyCount
	if p.Config.NumberingStrategy == config.NumberingStrategySequence && p.Reserver != nil {
		strategy = numberingdomain.StrategySequence
	}

	return &Service{
		log:        p.Log.Named("numbering.service"),
		clock:      p.Clock,
		strategy:   strategy,
		counter:    p.Counter,
		reserver:   p.Reserver,
		locker:     p.Locker,
		obsMetrics: p.ObsMetrics,
	}
}

func (s *Service) Next(ctx context.Context, orgID snowflake.ID, prefix string, asOf time.Time) string {
	prefix = normalizePrefix(prefix)

	var number string
	_ = s.withScopeLock(ctx, orgID, prefix, asOf, func(ctx context.Context) error {
		number = s.mint(ctx, orgID, prefix, asOf)
		return nil
	})
	return number
}

func (s *Service) Issue(
	ctx context.Context,
	orgID snowflake.ID,
	prefix string,
	asOf time.Time,
	persist func(ctx context.Context, number string) error,
) (string, error) {
	if persist == nil {
		return "", errors.New("persist callback is required")
	}
	prefix = normalizePrefix(prefix)

	var number string
	err := s.withScopeLock(ctx, orgID, prefix, asOf, func(ctx context.Context) error {
		number = s.mint(ctx, orgID, prefix, asOf)
		return persist(ctx, number)
	})
	if err != nil {
		return "", err
	}
	return number, nil
}

// mint never fails. Any store error degrades to the epoch form.
func (s *Service) mint(ctx context.Context, orgID snowflake.ID, prefix string, asOf time.Time) string {
	seq, err := s.nextSequence(ctx, orgID, prefix, asOf)
	if err == nil {
		number, fmtErr := format.FormatNumber(numberingdomain.DefaultTemplate, prefix, asOf, seq)
		if fmtErr == nil {
			s.obsMetrics.RecordNumberIssued(ctx, s.strategy, false)
			return number
		}
		err = fmtErr
	}

	fallback := format.FormatFallback(prefix, s.clock.Now())
	s.log.Warn("document numbering degraded to fallback",
		zap.String("org_id", orgID.String()),
		zap.String("prefix", prefix),
		zap.String("strategy", s.strategy),
		zap.String("number", fallback),
		zap.Error(err),
	)
	s.obsMetrics.RecordNumberIssued(ctx, s.strategy, true)
	return fallback
}

func (s *Service) nextSequence(ctx context.Context, orgID snowflake.ID, prefix string, asOf time.Time) (int64, error) {
	if s.strategy == numberingdomain.StrategySequence {
		return s.reserver.Reserve(ctx, orgID, prefix, numberingdomain.Period(asOf))
	}

	if s.counter == nil {
		return 0, errors.New("document counter not configured")
	}
	from, to := numberingdomain.MonthRange(asOf)
	count, err := s.counter.CountInRange(ctx, orgID, prefix, from, to)
	if err != nil {
		return 0, err
	}
	return count + 1, nil
}

// withScopeLock runs fn under the scope lock when a locker is configured.
// Lock errors and timeouts run fn unlocked.
func (s *Service) withScopeLock(
	ctx context.Context,
	orgID snowflake.ID,
	prefix string,
	asOf time.Time,
	fn func(ctx context.Context) error,
) error {
	if s.locker == nil {
		return fn(ctx)
	}

	key := lock.ScopeKey(orgID, prefix, numberingdomain.Period(asOf))
	token, err := s.acquire(ctx, key)
	if err != nil {
		s.log.Warn("numbering lock unavailable, continuing unlocked",
			zap.String("key", key),
			zap.Error(err),
		)
		return fn(ctx)
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.locker.Release(releaseCtx, key, token); err != nil {
			s.log.Warn("failed to release numbering lock", zap.String("key", key), zap.Error(err))
		}
	}()

	return fn(ctx)
}

var errLockTimeout = errors.New("timed out waiting for numbering lock")

func (s *Service) acquire(ctx context.Context, key string) (string, error) {
	deadline := time.NewTimer(lockWait)
	defer deadline.Stop()
	ticker := time.NewTicker(lockPollInterval)
	defer ticker.Stop()

	for {
		token, ok, err := s.locker.TryLock(ctx, key, lockTTL)
		if err != nil {
			return "", err
		}
		if ok {
			return token, nil
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-deadline.C:
			return "", errLockTimeout
		case <-ticker.C:
		}
	}
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return numberingdomain.DefaultPrefix
	}
	return prefix
}
