package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *PayrollRecord) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*PayrollRecord, error)
	ExistsForPeriod(ctx context.Context, db *gorm.DB, orgID snowflake.ID, employeeCode, period string) (bool, error)
	CountProcessedInRange(ctx context.Context, db *gorm.DB, orgID snowflake.ID, from, to time.Time) (int64, error)
}
