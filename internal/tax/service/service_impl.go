package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	obsmetrics "github.com/smallbiznis/khata/internal/observability/metrics"
	taxdomain "github.com/smallbiznis/khata/internal/tax/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	categoryCacheSize = 512
	categoryCacheTTL  = 10 * time.Minute
)

type ServiceParams struct {
	fx.In

	Log        *zap.Logger
	ObsMetrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	log        *zap.Logger
	obsMetrics *obsmetrics.Metrics
	categories *expirable.LRU[string, []taxdomain.Category]
}

func NewService(p ServiceParams) taxdomain.Service {
	return &Service{
		log:        p.Log.Named("tax.service"),
		obsMetrics: p.ObsMetrics,
		categories: expirable.NewLRU[string, []taxdomain.Category](categoryCacheSize, nil, categoryCacheTTL),
	}
}

func (s *Service) Compute(ctx context.Context, req taxdomain.ComputeRequest) (taxdomain.TaxBreakdown, error) {
	breakdown, err := Compute(req.Direction, req.Amount, req.Rate)
	if err != nil {
		s.log.Debug("tax computation rejected",
			zap.String("direction", string(req.Direction)),
			zap.Error(err),
		)
		return taxdomain.TaxBreakdown{}, err
	}

	s.obsMetrics.RecordTaxComputation(ctx, string(req.Direction), breakdown.IsInterState())
	return breakdown, nil
}

func (s *Service) ValidateRegistrationID(ctx context.Context, id string) (taxdomain.Registration, error) {
	registration, err := ValidateRegistrationID(id)
	if err != nil {
		var vErr *taxdomain.ValidationError
		if errors.As(err, &vErr) {
			s.log.Debug("registration id rejected", zap.String("kind", vErr.Kind.Error()))
		}
		return taxdomain.Registration{}, err
	}
	if !registration.ChecksumValid {
		s.log.Info("registration id check character mismatch",
			zap.Int("jurisdiction_code", registration.JurisdictionCode),
		)
	}
	return registration, nil
}

// SuggestCategory serves repeated lookups from a bounded, expiring cache.
func (s *Service) SuggestCategory(ctx context.Context, description string) []taxdomain.Category {
	key := strings.ToLower(strings.TrimSpace(description))
	if cached, ok := s.categories.Get(key); ok {
		return cloneCategories(cached)
	}

	suggestions := SuggestCategory(description)
	s.categories.Add(key, suggestions)
	return cloneCategories(suggestions)
}

func cloneCategories(in []taxdomain.Category) []taxdomain.Category {
	out := make([]taxdomain.Category, len(in))
	copy(out, in)
	return out
}
