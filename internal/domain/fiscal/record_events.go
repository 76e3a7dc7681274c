package fiscal

import (
	"time"

	"github.com/google/uuid"
	"github.com/propdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	AggregateTypeFiscalRecord = "FiscalRecord"

	EventTypeFiscalRecordCreated       = "FiscalRecordCreated"
	EventTypeFiscalRecordUpdated       = "FiscalRecordUpdated"
	EventTypeCreditNoteIssued          = "CreditNoteIssued"
	EventTypeFiscalRecordStatusChanged = "FiscalRecordStatusChanged"
)

// LedgerEventTypes lists the events that change VAT book contents
var LedgerEventTypes = []string{
	EventTypeFiscalRecordCreated,
	EventTypeFiscalRecordUpdated,
	EventTypeCreditNoteIssued,
}

// LedgerAffectingEvent is implemented by events that change the records of some years
type LedgerAffectingEvent interface {
	shared.DomainEvent
	AffectedYears() []int
}

// FiscalRecordCreatedEvent is raised when a new record is created
type FiscalRecordCreatedEvent struct {
	shared.BaseDomainEvent
	RecordID     uuid.UUID       `json:"record_id"`
	Kind         RecordKind      `json:"kind"`
	RecordNumber string          `json:"record_number"`
	RecordDate   time.Time       `json:"record_date"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// EventType returns the event type name
func (e *FiscalRecordCreatedEvent) EventType() string {
	return EventTypeFiscalRecordCreated
}

// AffectedYears returns the fiscal year of the record
func (e *FiscalRecordCreatedEvent) AffectedYears() []int {
	return []int{e.RecordDate.Year()}
}

// NewFiscalRecordCreatedEvent creates a new FiscalRecordCreatedEvent
func NewFiscalRecordCreatedEvent(r *FiscalRecord) *FiscalRecordCreatedEvent {
	return &FiscalRecordCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFiscalRecordCreated, AggregateTypeFiscalRecord, r.ID),
		RecordID:        r.ID,
		Kind:            r.Kind,
		RecordNumber:    r.RecordNumber,
		RecordDate:      r.RecordDate,
		TotalAmount:     r.TotalAmount,
	}
}

// FiscalRecordUpdatedEvent is raised when a record is revised
type FiscalRecordUpdatedEvent struct {
	shared.BaseDomainEvent
	RecordID           uuid.UUID       `json:"record_id"`
	Kind               RecordKind      `json:"kind"`
	RecordNumber       string          `json:"record_number"`
	RecordDate         time.Time       `json:"record_date"`
	PreviousRecordDate time.Time       `json:"previous_record_date"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
}

// EventType returns the event type name
func (e *FiscalRecordUpdatedEvent) EventType() string {
	return EventTypeFiscalRecordUpdated
}

// AffectedYears returns the current and, if different, the previous fiscal year
func (e *FiscalRecordUpdatedEvent) AffectedYears() []int {
	if e.PreviousRecordDate.Year() != e.RecordDate.Year() {
		return []int{e.RecordDate.Year(), e.PreviousRecordDate.Year()}
	}
	return []int{e.RecordDate.Year()}
}

// NewFiscalRecordUpdatedEvent creates a new FiscalRecordUpdatedEvent
func NewFiscalRecordUpdatedEvent(r *FiscalRecord, previousDate time.Time) *FiscalRecordUpdatedEvent {
	return &FiscalRecordUpdatedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeFiscalRecordUpdated, AggregateTypeFiscalRecord, r.ID),
		RecordID:           r.ID,
		Kind:               r.Kind,
		RecordNumber:       r.RecordNumber,
		RecordDate:         r.RecordDate,
		PreviousRecordDate: previousDate,
		TotalAmount:        r.TotalAmount,
	}
}

// CreditNoteIssuedEvent is raised when a credit note reverses a record
type CreditNoteIssuedEvent struct {
	shared.BaseDomainEvent
	CreditNoteID     uuid.UUID       `json:"credit_note_id"`
	OriginalRecordID uuid.UUID       `json:"original_record_id"`
	Kind             RecordKind      `json:"kind"`
	RecordNumber     string          `json:"record_number"`
	OriginalNumber   string          `json:"original_number"`
	RecordDate       time.Time       `json:"record_date"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
}

// EventType returns the event type name
func (e *CreditNoteIssuedEvent) EventType() string {
	return EventTypeCreditNoteIssued
}

// AffectedYears returns the fiscal year of the credit note
func (e *CreditNoteIssuedEvent) AffectedYears() []int {
	return []int{e.RecordDate.Year()}
}

// NewCreditNoteIssuedEvent creates a new CreditNoteIssuedEvent
func NewCreditNoteIssuedEvent(cn, original *FiscalRecord) *CreditNoteIssuedEvent {
	return &CreditNoteIssuedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeCreditNoteIssued, AggregateTypeFiscalRecord, cn.ID),
		CreditNoteID:     cn.ID,
		OriginalRecordID: original.ID,
		Kind:             cn.Kind,
		RecordNumber:     cn.RecordNumber,
		OriginalNumber:   original.RecordNumber,
		RecordDate:       cn.RecordDate,
		TotalAmount:      cn.TotalAmount,
	}
}

// FiscalRecordStatusChangedEvent is raised on every lifecycle transition
type FiscalRecordStatusChangedEvent struct {
	shared.BaseDomainEvent
	RecordID     uuid.UUID    `json:"record_id"`
	RecordNumber string       `json:"record_number"`
	FromStatus   RecordStatus `json:"from_status"`
	ToStatus     RecordStatus `json:"to_status"`
}

// EventType returns the event type name
func (e *FiscalRecordStatusChangedEvent) EventType() string {
	return EventTypeFiscalRecordStatusChanged
}

// NewFiscalRecordStatusChangedEvent creates a new FiscalRecordStatusChangedEvent
func NewFiscalRecordStatusChangedEvent(r *FiscalRecord, from RecordStatus) *FiscalRecordStatusChangedEvent {
	return &FiscalRecordStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFiscalRecordStatusChanged, AggregateTypeFiscalRecord, r.ID),
		RecordID:        r.ID,
		RecordNumber:    r.RecordNumber,
		FromStatus:      from,
		ToStatus:        r.Status,
	}
}
