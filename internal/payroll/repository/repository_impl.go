package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/khata/internal/payroll/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.PayrollRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*domain.PayrollRecord, error) {
	var record domain.PayrollRecord
	err := db.WithContext(ctx).
		Where("org_id = ? AND id = ?", orgID, id).
		Limit(1).
		Find(&record).Error
	if err != nil {
		return nil, err
	}
	if record.ID == 0 {
		return nil, nil
	}
	return &record, nil
}

func (r *repo) ExistsForPeriod(ctx context.Context, db *gorm.DB, orgID snowflake.ID, employeeCode, period string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.PayrollRecord{}).
		Where("org_id = ? AND employee_code = ? AND period = ?", orgID, employeeCode, period).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) CountProcessedInRange(ctx context.Context, db *gorm.DB, orgID snowflake.ID, from, to time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.PayrollRecord{}).
		Where("org_id = ? AND processed_at >= ? AND processed_at < ?", orgID, from.UTC(), to.UTC()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Counter adapts the repository to the numbering count port for payslips.
type Counter struct {
	db   *gorm.DB
	repo domain.Repository
}

func NewCounter(db *gorm.DB, repo domain.Repository) *Counter {
	return &Counter{db: db, repo: repo}
}

func (c *Counter) CountInRange(ctx context.Context, orgID snowflake.ID, _ string, from, to time.Time) (int64, error) {
	return c.repo.CountProcessedInRange(ctx, c.db, orgID, from, to)
}
