package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	obsmetrics "github.com/smallbiznis/khata/internal/observability/metrics"
	"github.com/smallbiznis/khata/internal/orgcontext"
	"github.com/smallbiznis/khata/internal/reconciliation/domain"
	"github.com/smallbiznis/khata/internal/reconciliation/ingestion"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParams struct {
	fx.In

	Log        *zap.Logger
	Loader     domain.CandidateLoader
	ObsMetrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	log        *zap.Logger
	loader     domain.CandidateLoader
	obsMetrics *obsmetrics.Metrics
}

func NewService(p ServiceParams) domain.Service {
	return &Service{
		log:        p.Log.Named("reconciliation.service"),
		loader:     p.Loader,
		obsMetrics: p.ObsMetrics,
	}
}

// Propose loads the org's ledger snapshot around the transaction dates and
// returns match proposals. Nothing is written.
func (s *Service) Propose(ctx context.Context, req domain.ProposeRequest) (domain.ProposeResult, error) {
	orgID, ok := orgcontext.OrgIDFromContext(ctx)
	if !ok || orgID == 0 {
		return domain.ProposeResult{}, domain.ErrInvalidOrganization
	}

	match, err := matcherFor(req.Strategy)
	if err != nil {
		return domain.ProposeResult{}, err
	}

	if err := validateTransactions(req.Transactions); err != nil {
		return domain.ProposeResult{}, err
	}

	result := domain.ProposeResult{
		Proposals: []domain.MatchProposal{},
		Unmatched: []domain.BankTransaction{},
	}
	if len(req.Transactions) == 0 {
		return result, nil
	}

	from, to := req.Transactions[0].OccurredAt, req.Transactions[0].OccurredAt
	for _, tx := range req.Transactions[1:] {
		if tx.OccurredAt.Before(from) {
			from = tx.OccurredAt
		}
		if tx.OccurredAt.After(to) {
			to = tx.OccurredAt
		}
	}
	from = from.Add(-domain.DayWindow * day)
	to = to.Add(domain.DayWindow * day)

	candidates, err := s.loader.ListLedgerEntries(ctx, orgID, from, to)
	if err != nil {
		s.log.Error("failed to load reconciliation candidates",
			zap.String("org_id", orgID.String()),
			zap.Error(err),
		)
		return domain.ProposeResult{}, err
	}

	result.Proposals = match(req.Transactions, candidates)
	result.Unmatched = Unmatched(req.Transactions, result.Proposals)

	s.obsMetrics.RecordReconciliation(ctx, len(result.Proposals))
	s.log.Info("reconciliation proposals computed",
		zap.String("org_id", orgID.String()),
		zap.Int("transactions", len(req.Transactions)),
		zap.Int("candidates", len(candidates)),
		zap.Int("proposals", len(result.Proposals)),
	)
	return result, nil
}

func (s *Service) ProposeFromStatement(ctx context.Context, statement io.Reader, strategy domain.Strategy) (domain.ProposeResult, error) {
	transactions, err := ingestion.ParseCSV(statement)
	if err != nil {
		return domain.ProposeResult{}, err
	}
	return s.Propose(ctx, domain.ProposeRequest{Transactions: transactions, Strategy: strategy})
}

type matcher func([]domain.BankTransaction, []domain.LedgerEntry) []domain.MatchProposal

func matcherFor(strategy domain.Strategy) (matcher, error) {
	switch domain.Strategy(strings.ToLower(strings.TrimSpace(string(strategy)))) {
	case "", domain.StrategyFirstMatch:
		return Reconcile, nil
	case domain.StrategyClosest:
		return ReconcileClosest, nil
	default:
		return nil, domain.ErrInvalidStrategy
	}
}

func validateTransactions(transactions []domain.BankTransaction) error {
	for i, tx := range transactions {
		switch {
		case strings.TrimSpace(tx.ID) == "":
			return fmt.Errorf("%w: transaction %d has no id", domain.ErrInvalidTransaction, i)
		case tx.OccurredAt.IsZero():
			return fmt.Errorf("%w: transaction %s has no date", domain.ErrInvalidTransaction, tx.ID)
		case tx.Amount.IsNegative():
			return fmt.Errorf("%w: transaction %s has a negative amount", domain.ErrInvalidTransaction, tx.ID)
		case tx.Direction != domain.DirectionCredit && tx.Direction != domain.DirectionDebit:
			return fmt.Errorf("%w: transaction %s has direction %q", domain.ErrInvalidTransaction, tx.ID, tx.Direction)
		}
	}
	return nil
}
