package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	Kind     Kind
	From     *time.Time
	To       *time.Time
	AfterID  snowflake.ID
	AfterAt  *time.Time
	PageSize int
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, doc *Document) error
	FindByID(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID) (*Document, error)
	List(ctx context.Context, db *gorm.DB, orgID snowflake.ID, filter ListFilter) ([]*Document, error)
	MarkFiled(ctx context.Context, db *gorm.DB, orgID, id snowflake.ID, at time.Time) (bool, error)
	CountInRange(ctx context.Context, db *gorm.DB, orgID snowflake.ID, documentType string, from, to time.Time) (int64, error)
	ListInRange(ctx context.Context, db *gorm.DB, orgID snowflake.ID, from, to time.Time) ([]Document, error)
}
