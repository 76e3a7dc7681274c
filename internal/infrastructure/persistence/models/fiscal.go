package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propdesk/backend/internal/domain/fiscal"
	"github.com/shopspring/decimal"
)

// FiscalRecordModel is the persistence model for the FiscalRecord aggregate root.
type FiscalRecordModel struct {
	AggregateModel
	Kind               fiscal.RecordKind   `gorm:"type:varchar(20);not null;index:idx_fiscal_records_kind_date,priority:1;uniqueIndex:idx_fiscal_records_kind_number,priority:1"`
	RecordNumber       string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_fiscal_records_kind_number,priority:2"`
	CounterpartyID     *uuid.UUID          `gorm:"type:uuid;index"` // NULL for expenses without supplier
	PropertyID         *uuid.UUID          `gorm:"type:uuid;index"`
	OwnerID            *uuid.UUID          `gorm:"type:uuid;index"`
	OwnershipShare     *decimal.Decimal    `gorm:"type:decimal(7,4)"`
	RecordDate         time.Time           `gorm:"not null;index:idx_fiscal_records_kind_date,priority:2"`
	DueDate            *time.Time          `gorm:""`
	CorrespondingMonth string              `gorm:"type:char(7);not null"`
	PeriodMonth        string              `gorm:"type:char(7);not null"` // YYYY-MM of RecordDate, part of the one-per-month key
	FullBaseAmount     decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	BaseAmount         decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	VATRate            decimal.Decimal     `gorm:"type:decimal(7,4);not null"`
	VATAmount          decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	WithholdingRate    decimal.Decimal     `gorm:"type:decimal(7,4);not null"`
	WithholdingAmount  decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	TotalAmount        decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	IsProportional     bool                `gorm:"not null;default:false"`
	PeriodStart        *time.Time          `gorm:""`
	PeriodEnd          *time.Time          `gorm:""`
	DaysBilled         int                 `gorm:"not null;default:0"`
	IsCreditNote       bool                `gorm:"not null;default:false;index"`
	OriginalRecordID   *uuid.UUID          `gorm:"type:uuid;index"`
	Deductible         bool                `gorm:"not null;default:false"`
	Concept            string              `gorm:"type:varchar(500)"`
	Status             fiscal.RecordStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	SettledAt          *time.Time          `gorm:""`
	DisputeReason      string              `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (FiscalRecordModel) TableName() string {
	return "fiscal_records"
}

// ToDomain converts the persistence model to a domain FiscalRecord.
func (m *FiscalRecordModel) ToDomain() *fiscal.FiscalRecord {
	return &fiscal.FiscalRecord{
		BaseAggregateRoot:  m.ToDomainAggregateRoot(),
		Kind:               m.Kind,
		RecordNumber:       m.RecordNumber,
		CounterpartyID:     counterpartyFromColumn(m.CounterpartyID),
		PropertyID:         m.PropertyID,
		OwnerID:            m.OwnerID,
		OwnershipShare:     m.OwnershipShare,
		RecordDate:         m.RecordDate,
		DueDate:            m.DueDate,
		CorrespondingMonth: m.CorrespondingMonth,
		FullBaseAmount:     m.FullBaseAmount,
		BaseAmount:         m.BaseAmount,
		VATRate:            m.VATRate,
		VATAmount:          m.VATAmount,
		WithholdingRate:    m.WithholdingRate,
		WithholdingAmount:  m.WithholdingAmount,
		TotalAmount:        m.TotalAmount,
		IsProportional:     m.IsProportional,
		PeriodStart:        m.PeriodStart,
		PeriodEnd:          m.PeriodEnd,
		DaysBilled:         m.DaysBilled,
		IsCreditNote:       m.IsCreditNote,
		OriginalRecordID:   m.OriginalRecordID,
		Deductible:         m.Deductible,
		Concept:            m.Concept,
		Status:             m.Status,
		SettledAt:          m.SettledAt,
		DisputeReason:      m.DisputeReason,
	}
}

// FromDomain populates the persistence model from a domain FiscalRecord.
func (m *FiscalRecordModel) FromDomain(r *fiscal.FiscalRecord) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.Kind = r.Kind
	m.RecordNumber = r.RecordNumber
	m.CounterpartyID = counterpartyColumn(r.CounterpartyID)
	m.PropertyID = r.PropertyID
	m.OwnerID = r.OwnerID
	m.OwnershipShare = r.OwnershipShare
	m.RecordDate = r.RecordDate
	m.DueDate = r.DueDate
	m.CorrespondingMonth = r.CorrespondingMonth
	m.PeriodMonth = r.RecordDate.Format(fiscal.MonthLayout)
	m.FullBaseAmount = r.FullBaseAmount
	m.BaseAmount = r.BaseAmount
	m.VATRate = r.VATRate
	m.VATAmount = r.VATAmount
	m.WithholdingRate = r.WithholdingRate
	m.WithholdingAmount = r.WithholdingAmount
	m.TotalAmount = r.TotalAmount
	m.IsProportional = r.IsProportional
	m.PeriodStart = r.PeriodStart
	m.PeriodEnd = r.PeriodEnd
	m.DaysBilled = r.DaysBilled
	m.IsCreditNote = r.IsCreditNote
	m.OriginalRecordID = r.OriginalRecordID
	m.Deductible = r.Deductible
	m.Concept = r.Concept
	m.Status = r.Status
	m.SettledAt = r.SettledAt
	m.DisputeReason = r.DisputeReason
}

// FiscalRecordModelFromDomain creates a new persistence model from a domain FiscalRecord.
func FiscalRecordModelFromDomain(r *fiscal.FiscalRecord) *FiscalRecordModel {
	m := &FiscalRecordModel{}
	m.FromDomain(r)
	return m
}

// RecordSequenceModel stores the last value handed out per numbering space.
type RecordSequenceModel struct {
	Space     string    `gorm:"type:varchar(30);primaryKey"`
	LastValue int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RecordSequenceModel) TableName() string {
	return "fiscal_record_sequences"
}

// counterpartyColumn stores uuid.Nil as NULL so the foreign key is not checked
func counterpartyColumn(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func counterpartyFromColumn(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}
