package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	numberingdomain "github.com/smallbiznis/khata/internal/numbering/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sequenceRepository struct {
	db    *gorm.DB
	genID *snowflake.Node
}

func NewSequenceRepository(db *gorm.DB, genID *snowflake.Node) numberingdomain.SequenceReserver {
	return &sequenceRepository{db: db, genID: genID}
}

// Reserve increments the scope counter and reads it back inside one
// transaction; the UPDATE row lock serializes concurrent reservations.
func (r *sequenceRepository) Reserve(ctx context.Context, orgID snowflake.ID, scope, period string) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		seed := numberingdomain.DocumentSequence{
			ID:        r.genID.Generate(),
			OrgID:     orgID,
			Scope:     scope,
			Period:    period,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return err
		}

		result := tx.Exec(
			`UPDATE document_sequences
			 SET last_value = last_value + 1, updated_at = ?
			 WHERE org_id = ? AND scope = ? AND period = ?`,
			now,
			orgID,
			scope,
			period,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("document sequence %s/%s not found", scope, period)
		}

		return tx.Raw(
			`SELECT last_value
			 FROM document_sequences
			 WHERE org_id = ? AND scope = ? AND period = ?`,
			orgID,
			scope,
			period,
		).Scan(&next).Error
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}
