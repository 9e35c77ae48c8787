package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/khata/internal/document/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, doc *domain.Document) error {
	return db.WithContext(ctx).Create(doc).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.Document, error) {
	var doc domain.Document
	err := db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Limit(1).
		Find(&doc).Error
	if err != nil {
		return nil, err
	}
	if doc.ID == 0 {
		return nil, nil
	}
	return &doc, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter domain.ListFilter) ([]*domain.Document, error) {
	var docs []*domain.Document
	stmt := db.WithContext(ctx).
		Model(&domain.Document{}).
		Where("org_id = ?", orgID)
	if filter.Kind != "" {
		stmt = stmt.Where("kind = ?", filter.Kind)
	}
	if filter.From != nil {
		stmt = stmt.Where("occurred_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		stmt = stmt.Where("occurred_at < ?", filter.To.UTC())
	}
	if filter.AfterAt != nil {
		at := filter.AfterAt.UTC()
		stmt = stmt.Where("(occurred_at < ? OR (occurred_at = ? AND id < ?))", at, at, filter.AfterID)
	}
	if filter.PageSize > 0 {
		stmt = stmt.Limit(filter.PageSize + 1)
	}

	err := stmt.
		Order("occurred_at desc, id desc").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// MarkFiled transitions a draft to filed. It reports false when the document
// was already filed.
func (r *repo) MarkFiled(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID, at time.Time) (bool, error) {
	result := db.WithContext(ctx).
		Model(&domain.Document{}).
		Where("org_id = ? AND id = ? AND status = ?", orgID, id, domain.StatusDraft).
		Updates(map[string]any{
			"status":     domain.StatusFiled,
			"filed_at":   at,
			"updated_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repo) CountInRange(ctx context.Context, db *gorm.DB, orgID snowflake.ID, documentType string, from, to time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Document{}).
		Where("org_id = ? AND document_type = ? AND created_at >= ? AND created_at < ?", orgID, documentType, from.UTC(), to.UTC()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) ListInRange(ctx context.Context, db *gorm.DB, orgID snowflake.ID, from, to time.Time) ([]domain.Document, error) {
	var docs []domain.Document
	err := db.WithContext(ctx).
		Where("org_id = ? AND occurred_at >= ? AND occurred_at <= ?", orgID, from.UTC(), to.UTC()).
		Order("occurred_at asc, id asc").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}
