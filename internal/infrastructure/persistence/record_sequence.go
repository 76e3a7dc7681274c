package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/propdesk/backend/internal/domain/fiscal"
	"github.com/propdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRecordSequence implements fiscal.SequenceGenerator with one row per
// numbering space, locked with SELECT ... FOR UPDATE while it is advanced.
// A missing row is seeded from the last persisted record number.
type GormRecordSequence struct {
	db      *gorm.DB
	records fiscal.RecordRepository
	scheme  fiscal.NumberingScheme
}

// NewGormRecordSequence creates a new GormRecordSequence
func NewGormRecordSequence(db *gorm.DB, records fiscal.RecordRepository, scheme fiscal.NumberingScheme) *GormRecordSequence {
	return &GormRecordSequence{db: db, records: records, scheme: scheme}
}

// Next returns the next formatted number in space
func (s *GormRecordSequence) Next(ctx context.Context, space fiscal.NumberingSpace) (string, error) {
	seed, err := s.seed(ctx, space)
	if err != nil {
		return "", err
	}

	var next int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Insert the row if it does not exist; concurrent seeders are fine.
		row := models.RecordSequenceModel{Space: space.Key(), LastValue: seed, UpdatedAt: time.Now()}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return err
		}

		var current models.RecordSequenceModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&current, "space = ?", space.Key()).Error; err != nil {
			return err
		}

		next = current.LastValue + 1
		if next <= seed {
			next = seed + 1
		}
		return tx.Model(&models.RecordSequenceModel{}).
			Where("space = ?", space.Key()).
			Updates(map[string]any{"last_value": next, "updated_at": time.Now()}).Error
	})
	if err != nil {
		return "", fmt.Errorf("failed to advance sequence %s: %w", space.Key(), err)
	}
	return s.scheme.Format(space, next), nil
}

// seed returns the numeric suffix of the last persisted number in space
func (s *GormRecordSequence) seed(ctx context.Context, space fiscal.NumberingSpace) (int64, error) {
	if s.records == nil {
		return 0, nil
	}
	last, err := s.records.FindLastRecordNumber(ctx, space)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("failed to read last record number: %w", err)
	}
	return fiscal.SequenceOf(last), nil
}
