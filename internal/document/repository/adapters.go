package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/khata/internal/document/domain"
	reconciliationdomain "github.com/smallbiznis/khata/internal/reconciliation/domain"
	"gorm.io/gorm"
)

// Counter counts documents of one type created inside a range. It backs
// count-based document numbering.
type Counter struct {
	db   *gorm.DB
	repo domain.Repository
}

func NewCounter(db *gorm.DB, repo domain.Repository) *Counter {
	return &Counter{db: db, repo: repo}
}

func (c *Counter) CountInRange(ctx context.Context, orgID snowflake.ID, documentType string, from, to time.Time) (int64, error) {
	return c.repo.CountInRange(ctx, c.db, orgID, documentType, from, to)
}

// LedgerLoader exposes documents as reconciliation candidates.
type LedgerLoader struct {
	db   *gorm.DB
	repo domain.Repository
}

func NewLedgerLoader(db *gorm.DB, repo domain.Repository) reconciliationdomain.CandidateLoader {
	return &LedgerLoader{db: db, repo: repo}
}

func (l *LedgerLoader) ListLedgerEntries(ctx context.Context, orgID snowflake.ID, from, to time.Time) ([]reconciliationdomain.LedgerEntry, error) {
	docs, err := l.repo.ListInRange(ctx, l.db, orgID, from, to)
	if err != nil {
		return nil, err
	}

	entries := make([]reconciliationdomain.LedgerEntry, 0, len(docs))
	for _, doc := range docs {
		var kind reconciliationdomain.EntryKind
		switch doc.Kind {
		case domain.KindSale:
			kind = reconciliationdomain.EntryKindSale
		case domain.KindExpense:
			kind = reconciliationdomain.EntryKindExpense
		default:
			continue
		}
		entries = append(entries, reconciliationdomain.LedgerEntry{
			ID:            doc.ID.String(),
			Kind:          kind,
			Amount:        doc.TotalAmount,
			OccurredAt:    doc.OccurredAt,
			DisplayNumber: doc.DocumentNumber,
		})
	}
	return entries, nil
}
