package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// DefaultTemplate renders PREFIX-YYYYMM-NNN. The sequence width is a minimum.
const DefaultTemplate = "{PREFIX}-{YYYY}{MM}-{SEQ3}"

// DefaultPrefix is used when a caller passes an empty document type prefix.
const DefaultPrefix = "DOC"

const (
	StrategyCount    = "count"
	StrategySequence = "sequence"
)

// DocumentSequence is the per (org, scope, month) counter used by the
// sequence strategy.
type DocumentSequence struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	OrgID     snowflake.ID `gorm:"not null;uniqueIndex:ux_document_sequences_scope,priority:1"`
	Scope     string       `gorm:"type:text;not null;uniqueIndex:ux_document_sequences_scope,priority:2"`
	Period    string       `gorm:"type:text;not null;uniqueIndex:ux_document_sequences_scope,priority:3"` // YYYYMM
	LastValue int64        `gorm:"not null;default:0"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (DocumentSequence) TableName() string { return "document_sequences" }

// MonthRange returns [start of month, start of next month) in asOf's location.
func MonthRange(asOf time.Time) (time.Time, time.Time) {
	start := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	return start, start.AddDate(0, 1, 0)
}

// Period formats the sequence scope month as YYYYMM.
func Period(asOf time.Time) string {
	return asOf.Format("200601")
}
