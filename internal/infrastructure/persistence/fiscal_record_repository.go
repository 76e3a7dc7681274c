package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propdesk/backend/internal/domain/fiscal"
	"github.com/propdesk/backend/internal/domain/shared"
	"github.com/propdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// ErrDuplicateRecord is returned when a write hits one of the unique indexes
// on fiscal_records (record number per kind, or the one-per-month slot).
var ErrDuplicateRecord = shared.NewConflictError(fiscal.CodeDuplicatePeriodRecord, "A record with the same number or period slot already exists")

// GormRecordRepository implements fiscal.RecordRepository using GORM
type GormRecordRepository struct {
	db *gorm.DB
}

// NewGormRecordRepository creates a new GormRecordRepository
func NewGormRecordRepository(db *gorm.DB) *GormRecordRepository {
	return &GormRecordRepository{db: db}
}

// FindByID finds a record by its ID
func (r *GormRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*fiscal.FiscalRecord, error) {
	var model models.FiscalRecordModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists records matching the filter, paginated and sorted
func (r *GormRecordRepository) FindAll(ctx context.Context, filter fiscal.RecordFilter) ([]fiscal.FiscalRecord, error) {
	var recordModels []models.FiscalRecordModel
	query := r.applyRecordFilter(r.db.WithContext(ctx).Model(&models.FiscalRecordModel{}), filter)

	orderBy := ValidateSortField(filter.OrderBy, FiscalRecordSortFields, "record_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir)).Order("record_number " + orderDir)

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(recordModels), nil
}

// Count counts records matching the filter
func (r *GormRecordRepository) Count(ctx context.Context, filter fiscal.RecordFilter) (int64, error) {
	var count int64
	query := r.applyRecordFilter(r.db.WithContext(ctx).Model(&models.FiscalRecordModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindLastRecordNumber returns the highest number stored in space, or "" when none.
// Ordering by length first keeps FAC-10000 after FAC-9999.
func (r *GormRecordRepository) FindLastRecordNumber(ctx context.Context, space fiscal.NumberingSpace) (string, error) {
	var model models.FiscalRecordModel
	err := r.db.WithContext(ctx).
		Select("record_number").
		Where("kind = ? AND is_credit_note = ?", space.Kind, space.CreditNote).
		Order("LENGTH(record_number) DESC").
		Order("record_number DESC").
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return model.RecordNumber, nil
}

// FindExistingForPeriod returns the non-credit-note record occupying key, or nil
func (r *GormRecordRepository) FindExistingForPeriod(ctx context.Context, key fiscal.PeriodKey) (*fiscal.FiscalRecord, error) {
	query := r.db.WithContext(ctx).
		Where("kind = ? AND period_month = ? AND is_credit_note = ?", key.Kind, key.Month, false)
	var counterpartyID *uuid.UUID
	if key.CounterpartyID != uuid.Nil {
		counterpartyID = &key.CounterpartyID
	}
	query = whereOptionalID(query, "counterparty_id", counterpartyID)
	query = whereOptionalID(query, "owner_id", key.OwnerID)
	query = whereOptionalID(query, "property_id", key.PropertyID)

	var model models.FiscalRecordModel
	if err := query.Order("created_at ASC").Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOriginal returns the credit notes issued against originalID
func (r *GormRecordRepository) FindByOriginal(ctx context.Context, originalID uuid.UUID) ([]fiscal.FiscalRecord, error) {
	var recordModels []models.FiscalRecordModel
	if err := r.db.WithContext(ctx).
		Where("original_record_id = ? AND is_credit_note = ?", originalID, true).
		Order("record_date ASC").
		Order("record_number ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(recordModels), nil
}

// ExistsByRecordNumber checks whether another record of kind already uses number
func (r *GormRecordRepository) ExistsByRecordNumber(ctx context.Context, kind fiscal.RecordKind, number string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.FiscalRecordModel{}).
		Where("kind = ? AND record_number = ?", kind, number)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindForPeriod returns records of the given kinds dated in [from, to)
func (r *GormRecordRepository) FindForPeriod(ctx context.Context, kinds []fiscal.RecordKind, from, to time.Time) ([]fiscal.FiscalRecord, error) {
	var recordModels []models.FiscalRecordModel
	query := r.db.WithContext(ctx).
		Where("record_date >= ? AND record_date < ?", from, to)
	if len(kinds) > 0 {
		query = query.Where("kind IN ?", kinds)
	}
	if err := query.
		Order("record_date ASC").
		Order("record_number ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainRecords(recordModels), nil
}

// Save creates or updates a record
func (r *GormRecordRepository) Save(ctx context.Context, record *fiscal.FiscalRecord) error {
	model := models.FiscalRecordModelFromDomain(record)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return translateWriteError(err)
	}
	return nil
}

// SaveWithLock saves with optimistic locking. The caller increments the
// version first; the row is only written while it still holds Version-1.
func (r *GormRecordRepository) SaveWithLock(ctx context.Context, record *fiscal.FiscalRecord) error {
	model := models.FiscalRecordModelFromDomain(record)
	result := r.db.WithContext(ctx).
		Model(model).
		Select("*").
		Omit("id", "created_at").
		Where("id = ? AND version = ?", record.ID, record.Version-1).
		Updates(model)

	if result.Error != nil {
		return translateWriteError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// applyRecordFilter applies the where clauses of filter, without pagination
func (r *GormRecordRepository) applyRecordFilter(query *gorm.DB, filter fiscal.RecordFilter) *gorm.DB {
	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.PropertyID != nil {
		query = query.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.IsCreditNote != nil {
		query = query.Where("is_credit_note = ?", *filter.IsCreditNote)
	}
	if filter.FromDate != nil {
		query = query.Where("record_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("record_date < ?", *filter.ToDate)
	}
	return query
}

func whereOptionalID(query *gorm.DB, column string, id *uuid.UUID) *gorm.DB {
	if id == nil {
		return query.Where(column + " IS NULL")
	}
	return query.Where(column+" = ?", *id)
}

func toDomainRecords(recordModels []models.FiscalRecordModel) []fiscal.FiscalRecord {
	records := make([]fiscal.FiscalRecord, len(recordModels))
	for i := range recordModels {
		records[i] = *recordModels[i].ToDomain()
	}
	return records
}

// translateWriteError maps unique-index violations to ErrDuplicateRecord.
// Postgres and SQLite messages are matched too in case the dialector does
// not translate errors.
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateRecord
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint") {
		return ErrDuplicateRecord
	}
	return fmt.Errorf("failed to save fiscal record: %w", err)
}
