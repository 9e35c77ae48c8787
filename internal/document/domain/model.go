package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Kind string

const (
	KindSale    Kind = "sale"
	KindExpense Kind = "expense"
)

type Status string

const (
	StatusDraft Status = "draft"
	StatusFiled Status = "filed"
)

// Default document type prefixes per kind.
const (
	PrefixSale    = "INV"
	PrefixExpense = "EXP"
)

// Document is a sale or expense record carrying its tax breakdown. Filed
// documents are immutable.
type Document struct {
	ID             snowflake.ID      `gorm:"primaryKey" json:"id"`
	OrgID          snowflake.ID      `gorm:"not null;uniqueIndex:ux_documents_number,priority:1;index:idx_documents_org_occurred,priority:1" json:"organization_id"`
	Kind           Kind              `gorm:"type:text;not null" json:"kind"`
	DocumentType   string            `gorm:"type:text;not null" json:"document_type"`
	DocumentNumber string            `gorm:"type:text;not null;uniqueIndex:ux_documents_number,priority:2" json:"document_number"`
	Description    string            `gorm:"type:text" json:"description,omitempty"`
	BaseAmount     decimal.Decimal   `gorm:"type:numeric(18,2);not null" json:"base_amount"`
	TaxAmount      decimal.Decimal   `gorm:"type:numeric(18,2);not null" json:"tax_amount"`
	TotalAmount    decimal.Decimal   `gorm:"type:numeric(18,2);not null" json:"total_amount"`
	Rate           decimal.Decimal   `gorm:"type:numeric(9,4);not null" json:"rate"`
	CGSTAmount     decimal.Decimal   `gorm:"column:cgst_amount;type:numeric(18,2);not null" json:"cgst_amount"`
	SGSTAmount     decimal.Decimal   `gorm:"column:sgst_amount;type:numeric(18,2);not null" json:"sgst_amount"`
	IGSTAmount     decimal.Decimal   `gorm:"column:igst_amount;type:numeric(18,2);not null" json:"igst_amount"`
	Status         Status            `gorm:"type:text;not null" json:"status"`
	OccurredAt     time.Time         `gorm:"not null;index:idx_documents_org_occurred,priority:2" json:"occurred_at"`
	FiledAt        *time.Time        `json:"filed_at,omitempty"`
	Metadata       datatypes.JSONMap `gorm:"not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Document) TableName() string { return "documents" }
