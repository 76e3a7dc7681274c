package fiscal

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/propdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	CodeChainedCreditNote     = "CHAINED_CREDIT_NOTE"
	CodeDuplicatePeriodRecord = "DUPLICATE_PERIOD_RECORD"
	CodeDuplicateRecordNumber = "DUPLICATE_RECORD_NUMBER"

	// MonthLayout is the layout of CorrespondingMonth values
	MonthLayout = "2006-01"

	maxConceptLength = 500
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// RecordKind distinguishes issued invoices, received invoices and internal expenses
type RecordKind string

const (
	KindIssued   RecordKind = "ISSUED"   // Invoice issued to a tenant or client
	KindReceived RecordKind = "RECEIVED" // Invoice received from a supplier
	KindExpense  RecordKind = "EXPENSE"  // Internal expense without a supplier invoice
)

// IsValid checks if the kind is a valid RecordKind
func (k RecordKind) IsValid() bool {
	switch k {
	case KindIssued, KindReceived, KindExpense:
		return true
	}
	return false
}

// String returns the string representation of RecordKind
func (k RecordKind) String() string {
	return string(k)
}

// RequiresCounterparty reports whether records of this kind must name a counterparty
func (k RecordKind) RequiresCounterparty() bool {
	return k == KindIssued || k == KindReceived
}

// OnePerPeriod reports whether the per-month uniqueness rule applies to this kind
func (k RecordKind) OnePerPeriod() bool {
	return k == KindIssued || k == KindReceived
}

// RecordStatus represents the stored lifecycle state of a fiscal record
type RecordStatus string

const (
	StatusPending   RecordStatus = "PENDING"
	StatusCollected RecordStatus = "COLLECTED"
	StatusPaid      RecordStatus = "PAID"
	StatusDisputed  RecordStatus = "DISPUTED"

	// StatusOverdue is derived from the due date and never stored
	StatusOverdue RecordStatus = "OVERDUE"
)

// IsValid checks if the status can be stored
func (s RecordStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusCollected, StatusPaid, StatusDisputed:
		return true
	}
	return false
}

// String returns the string representation of RecordStatus
func (s RecordStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the record is settled
func (s RecordStatus) IsTerminal() bool {
	return s == StatusCollected || s == StatusPaid
}

// CanSettle returns true if the record can be collected or paid
func (s RecordStatus) CanSettle() bool {
	return s == StatusPending
}

// CanDispute returns true if the record can be disputed
func (s RecordStatus) CanDispute() bool {
	return s == StatusPending
}

// CanReopen returns true if a disputed record can go back to pending
func (s RecordStatus) CanReopen() bool {
	return s == StatusDisputed
}

// FiscalRecord is an issued invoice, a received invoice or an internal expense
type FiscalRecord struct {
	shared.BaseAggregateRoot
	Kind               RecordKind       `json:"kind"`
	RecordNumber       string           `json:"record_number"`
	CounterpartyID     uuid.UUID        `json:"counterparty_id"` // uuid.Nil for expenses without supplier
	PropertyID         *uuid.UUID       `json:"property_id,omitempty"`
	OwnerID            *uuid.UUID       `json:"owner_id,omitempty"`
	OwnershipShare     *decimal.Decimal `json:"ownership_share,omitempty"` // Snapshot taken at creation
	RecordDate         time.Time        `json:"record_date"`
	DueDate            *time.Time       `json:"due_date,omitempty"`
	CorrespondingMonth string           `json:"corresponding_month"` // YYYY-MM
	FullBaseAmount     decimal.Decimal  `json:"full_base_amount"`    // Base before proration
	BaseAmount         decimal.Decimal  `json:"base_amount"`
	VATRate            decimal.Decimal  `json:"vat_rate"`
	VATAmount          decimal.Decimal  `json:"vat_amount"`
	WithholdingRate    decimal.Decimal  `json:"withholding_rate"`
	WithholdingAmount  decimal.Decimal  `json:"withholding_amount"`
	TotalAmount        decimal.Decimal  `json:"total_amount"`
	IsProportional     bool             `json:"is_proportional"`
	PeriodStart        *time.Time       `json:"period_start,omitempty"`
	PeriodEnd          *time.Time       `json:"period_end,omitempty"`
	DaysBilled         int              `json:"days_billed"`
	IsCreditNote       bool             `json:"is_credit_note"`
	OriginalRecordID   *uuid.UUID       `json:"original_record_id,omitempty"`
	Deductible         bool             `json:"deductible"`
	Concept            string           `json:"concept"`
	Status             RecordStatus     `json:"status"`
	SettledAt          *time.Time       `json:"settled_at,omitempty"`
	DisputeReason      string           `json:"dispute_reason,omitempty"`
}

// RecordInput carries the caller-supplied fields of a new record
type RecordInput struct {
	Kind               RecordKind
	CounterpartyID     uuid.UUID
	PropertyID         *uuid.UUID
	OwnerID            *uuid.UUID
	RecordDate         time.Time
	DueDate            *time.Time
	CorrespondingMonth string
	BaseAmount         decimal.Decimal
	VATRate            decimal.Decimal
	WithholdingRate    decimal.Decimal
	IsProportional     bool
	PeriodStart        *time.Time
	PeriodEnd          *time.Time
	Deductible         bool
	Concept            string
}

// Validate checks required fields, amounts and the proportional period
func (in RecordInput) Validate() error {
	if !in.Kind.IsValid() {
		return shared.NewValidationError("INVALID_KIND", "Record kind is not valid")
	}
	if in.Kind.RequiresCounterparty() && in.CounterpartyID == uuid.Nil {
		return shared.NewValidationError("COUNTERPARTY_REQUIRED", "Counterparty is required")
	}
	if in.Kind == KindIssued && in.PropertyID == nil {
		return shared.NewValidationError("PROPERTY_REQUIRED", "Property is required for issued invoices")
	}
	if in.RecordDate.IsZero() {
		return shared.NewValidationError("RECORD_DATE_REQUIRED", "Record date is required")
	}
	if err := validateAmountInputs(in.BaseAmount, in.VATRate, in.WithholdingRate); err != nil {
		return err
	}
	if in.CorrespondingMonth != "" && !monthPattern.MatchString(in.CorrespondingMonth) {
		return shared.NewValidationError("INVALID_MONTH", "Corresponding month must be formatted as YYYY-MM")
	}
	if in.DueDate != nil && CivilDate(*in.DueDate).Before(CivilDate(in.RecordDate)) {
		return shared.NewValidationError("INVALID_DUE_DATE", "Due date cannot be before the record date")
	}
	if len(in.Concept) > maxConceptLength {
		return shared.NewValidationError("INVALID_CONCEPT", fmt.Sprintf("Concept cannot exceed %d characters", maxConceptLength))
	}
	if in.IsProportional {
		return ValidateProportionalPeriod(in.PeriodStart, in.PeriodEnd)
	}
	return nil
}

// PeriodKey returns the uniqueness slot the new record would occupy
func (in RecordInput) PeriodKey() PeriodKey {
	return PeriodKey{
		Kind:           in.Kind,
		OwnerID:        in.OwnerID,
		PropertyID:     in.PropertyID,
		CounterpartyID: in.CounterpartyID,
		Month:          in.RecordDate.Format(MonthLayout),
	}
}

func validateAmountInputs(base, vatRate, withholdingRate decimal.Decimal) error {
	if base.IsNegative() {
		return shared.NewValidationError("INVALID_AMOUNT", "Base amount cannot be negative")
	}
	if err := validateRate("INVALID_VAT_RATE", "VAT rate", vatRate); err != nil {
		return err
	}
	return validateRate("INVALID_WITHHOLDING_RATE", "Withholding rate", withholdingRate)
}

func validateRate(code, label string, rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(fullPercentage) {
		return shared.NewValidationError(code, label+" must be between 0 and 100")
	}
	return nil
}

func validateShare(share *decimal.Decimal) error {
	if share != nil && (share.IsNegative() || share.GreaterThan(fullPercentage)) {
		return shared.NewValidationError("INVALID_OWNERSHIP_SHARE", "Ownership share must be between 0 and 100")
	}
	return nil
}

// NewFiscalRecord creates a pending record with its fiscal amounts computed
func NewFiscalRecord(recordNumber string, in RecordInput, share *decimal.Decimal) (*FiscalRecord, error) {
	if recordNumber == "" {
		return nil, shared.NewValidationError("INVALID_RECORD_NUMBER", "Record number cannot be empty")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := validateShare(share); err != nil {
		return nil, err
	}

	month := in.CorrespondingMonth
	if month == "" {
		month = in.RecordDate.Format(MonthLayout)
	}

	r := &FiscalRecord{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Kind:               in.Kind,
		RecordNumber:       recordNumber,
		CounterpartyID:     in.CounterpartyID,
		PropertyID:         in.PropertyID,
		OwnerID:            in.OwnerID,
		OwnershipShare:     share,
		RecordDate:         in.RecordDate,
		DueDate:            in.DueDate,
		CorrespondingMonth: month,
		FullBaseAmount:     in.BaseAmount,
		VATRate:            in.VATRate,
		WithholdingRate:    in.WithholdingRate,
		IsProportional:     in.IsProportional,
		Deductible:         in.Deductible && in.Kind != KindIssued,
		Concept:            in.Concept,
		Status:             StatusPending,
	}
	if in.IsProportional {
		r.PeriodStart = in.PeriodStart
		r.PeriodEnd = in.PeriodEnd
	}
	r.recompute()

	r.AddDomainEvent(NewFiscalRecordCreatedEvent(r))

	return r, nil
}

// NewCreditNote derives a credit note reversing original
func NewCreditNote(recordNumber string, original *FiscalRecord, recordDate time.Time, concept string) (*FiscalRecord, error) {
	if err := CheckCreditable(original); err != nil {
		return nil, err
	}
	if recordNumber == "" {
		return nil, shared.NewValidationError("INVALID_RECORD_NUMBER", "Record number cannot be empty")
	}
	if recordDate.IsZero() {
		recordDate = time.Now()
	}
	if concept == "" {
		concept = fmt.Sprintf("Credit note for %s", original.RecordNumber)
	}

	originalID := original.ID
	cn := &FiscalRecord{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Kind:               original.Kind,
		RecordNumber:       recordNumber,
		CounterpartyID:     original.CounterpartyID,
		PropertyID:         original.PropertyID,
		OwnerID:            original.OwnerID,
		OwnershipShare:     original.OwnershipShare,
		RecordDate:         recordDate,
		CorrespondingMonth: original.CorrespondingMonth,
		FullBaseAmount:     original.FullBaseAmount,
		VATRate:            original.VATRate,
		WithholdingRate:    original.WithholdingRate,
		IsProportional:     original.IsProportional,
		PeriodStart:        original.PeriodStart,
		PeriodEnd:          original.PeriodEnd,
		DaysBilled:         original.DaysBilled,
		IsCreditNote:       true,
		OriginalRecordID:   &originalID,
		Deductible:         original.Deductible,
		Concept:            concept,
		Status:             StatusPending,
	}
	cn.setAmounts(Amounts{
		Base:              original.BaseAmount,
		VATAmount:         original.VATAmount,
		WithholdingAmount: original.WithholdingAmount,
		Total:             original.TotalAmount,
	}.Negated())

	cn.AddDomainEvent(NewCreditNoteIssuedEvent(cn, original))

	return cn, nil
}

// CheckCreditable reports whether a credit note may be issued against original
func CheckCreditable(original *FiscalRecord) error {
	if original == nil {
		return shared.NewNotFoundError("NOT_FOUND", "Original record not found")
	}
	if original.IsCreditNote {
		return shared.NewConflictError(CodeChainedCreditNote, "Cannot issue a credit note against another credit note")
	}
	return nil
}

// NumberingSpace returns the numbering space this record draws its number from
func (r *FiscalRecord) NumberingSpace() NumberingSpace {
	return NumberingSpace{Kind: r.Kind, CreditNote: r.IsCreditNote}
}

// PeriodKey identifies the owner/property/counterparty/month slot of the record
func (r *FiscalRecord) PeriodKey() PeriodKey {
	return RecordInput{
		Kind:           r.Kind,
		OwnerID:        r.OwnerID,
		PropertyID:     r.PropertyID,
		CounterpartyID: r.CounterpartyID,
		RecordDate:     r.RecordDate,
	}.PeriodKey()
}

// FiscalInput returns the inputs the record's amounts are derived from
func (r *FiscalRecord) FiscalInput() FiscalInput {
	return FiscalInput{
		BaseAmount:      r.FullBaseAmount,
		VATRate:         r.VATRate,
		WithholdingRate: r.WithholdingRate,
		IsProportional:  r.IsProportional,
		PeriodStart:     r.PeriodStart,
		PeriodEnd:       r.PeriodEnd,
	}
}

// recompute derives amounts from the full base, negating for credit notes
func (r *FiscalRecord) recompute() {
	base := r.FullBaseAmount
	if r.IsCreditNote {
		base = base.Abs()
	}
	fa := ComputeFiscalAmounts(FiscalInput{
		BaseAmount:      base,
		VATRate:         r.VATRate,
		WithholdingRate: r.WithholdingRate,
		IsProportional:  r.IsProportional,
		PeriodStart:     r.PeriodStart,
		PeriodEnd:       r.PeriodEnd,
	})
	r.DaysBilled = fa.Proration.DaysBilled
	if r.IsCreditNote {
		r.setAmounts(fa.Amounts.Negated())
		return
	}
	r.setAmounts(fa.Amounts)
}

func (r *FiscalRecord) setAmounts(a Amounts) {
	r.BaseAmount = a.Base
	r.VATAmount = a.VATAmount
	r.WithholdingAmount = a.WithholdingAmount
	r.TotalAmount = a.Total
}

// IsOverdue reports whether a pending record is past its due date at now
func (r *FiscalRecord) IsOverdue(now time.Time) bool {
	if r.Status != StatusPending || r.DueDate == nil {
		return false
	}
	return CivilDate(now).After(CivilDate(*r.DueDate))
}

// DisplayStatus returns the stored status, or OVERDUE when it applies at now
func (r *FiscalRecord) DisplayStatus(now time.Time) RecordStatus {
	if r.IsOverdue(now) {
		return StatusOverdue
	}
	return r.Status
}

// MarkCollected settles an issued record
func (r *FiscalRecord) MarkCollected(at time.Time) error {
	if r.Kind != KindIssued {
		return shared.NewDomainError("INVALID_STATE", "Only issued invoices can be collected")
	}
	return r.settle(StatusCollected, at)
}

// MarkPaid settles a received invoice or expense
func (r *FiscalRecord) MarkPaid(at time.Time) error {
	if r.Kind == KindIssued {
		return shared.NewDomainError("INVALID_STATE", "Issued invoices are collected, not paid")
	}
	return r.settle(StatusPaid, at)
}

func (r *FiscalRecord) settle(status RecordStatus, at time.Time) error {
	if !r.Status.CanSettle() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot settle record in %s status", r.Status))
	}
	from := r.Status
	r.Status = status
	r.SettledAt = &at
	r.UpdatedAt = time.Now()
	r.AddDomainEvent(NewFiscalRecordStatusChangedEvent(r, from))
	return nil
}

// MarkDisputed puts a pending record on hold
func (r *FiscalRecord) MarkDisputed(reason string) error {
	if !r.Status.CanDispute() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot dispute record in %s status", r.Status))
	}
	if reason == "" {
		return shared.NewValidationError("INVALID_REASON", "Dispute reason is required")
	}
	from := r.Status
	r.Status = StatusDisputed
	r.DisputeReason = reason
	r.UpdatedAt = time.Now()
	r.AddDomainEvent(NewFiscalRecordStatusChangedEvent(r, from))
	return nil
}

// Reopen returns a disputed record to pending
func (r *FiscalRecord) Reopen() error {
	if !r.Status.CanReopen() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reopen record in %s status", r.Status))
	}
	from := r.Status
	r.Status = StatusPending
	r.DisputeReason = ""
	r.UpdatedAt = time.Now()
	r.AddDomainEvent(NewFiscalRecordStatusChangedEvent(r, from))
	return nil
}

// RecordPatch holds optional changes to an existing record
type RecordPatch struct {
	RecordNumber       *string
	CounterpartyID     *uuid.UUID
	PropertyID         *uuid.UUID
	OwnerID            *uuid.UUID
	RecordDate         *time.Time
	DueDate            *time.Time
	CorrespondingMonth *string
	BaseAmount         *decimal.Decimal
	VATRate            *decimal.Decimal
	WithholdingRate    *decimal.Decimal
	IsProportional     *bool
	PeriodStart        *time.Time
	PeriodEnd          *time.Time
	Deductible         *bool
	Concept            *string
}

// RevisionChanges reports which parts of a record a revision touched
type RevisionChanges struct {
	NumberChanged    bool
	OwnershipChanged bool
	AmountsChanged   bool
	PreviousDate     time.Time
}

// Revise merges p into the record, validates the merged state and recomputes
// amounts when their inputs changed. The caller re-resolves the ownership
// share and checks number collisions using the returned changes.
func (r *FiscalRecord) Revise(p RecordPatch) (RevisionChanges, error) {
	changes := RevisionChanges{PreviousDate: r.RecordDate}
	if r.Status.IsTerminal() {
		return changes, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot update record in %s status", r.Status))
	}

	merged := r.mergedInput(p)
	if err := merged.Validate(); err != nil {
		return changes, err
	}
	number := r.RecordNumber
	if p.RecordNumber != nil {
		if *p.RecordNumber == "" {
			return changes, shared.NewValidationError("INVALID_RECORD_NUMBER", "Record number cannot be empty")
		}
		number = *p.RecordNumber
	}

	changes.NumberChanged = number != r.RecordNumber
	changes.OwnershipChanged = !sameID(merged.OwnerID, r.OwnerID) || !sameID(merged.PropertyID, r.PropertyID)
	changes.AmountsChanged = !merged.BaseAmount.Equal(r.FullBaseAmount) ||
		!merged.VATRate.Equal(r.VATRate) ||
		!merged.WithholdingRate.Equal(r.WithholdingRate) ||
		merged.IsProportional != r.IsProportional ||
		!sameTime(merged.PeriodStart, r.PeriodStart) ||
		!sameTime(merged.PeriodEnd, r.PeriodEnd)

	r.RecordNumber = number
	r.CounterpartyID = merged.CounterpartyID
	r.PropertyID = merged.PropertyID
	r.OwnerID = merged.OwnerID
	r.RecordDate = merged.RecordDate
	r.DueDate = merged.DueDate
	if merged.CorrespondingMonth != "" {
		r.CorrespondingMonth = merged.CorrespondingMonth
	}
	r.FullBaseAmount = merged.BaseAmount
	r.VATRate = merged.VATRate
	r.WithholdingRate = merged.WithholdingRate
	r.IsProportional = merged.IsProportional
	r.PeriodStart = merged.PeriodStart
	r.PeriodEnd = merged.PeriodEnd
	r.Deductible = merged.Deductible && r.Kind != KindIssued
	r.Concept = merged.Concept
	if !r.IsProportional {
		r.PeriodStart, r.PeriodEnd = nil, nil
	}
	if changes.AmountsChanged {
		r.recompute()
	}
	r.UpdatedAt = time.Now()

	r.AddDomainEvent(NewFiscalRecordUpdatedEvent(r, changes.PreviousDate))

	return changes, nil
}

// SnapshotShare replaces the ownership share snapshot
func (r *FiscalRecord) SnapshotShare(share *decimal.Decimal) error {
	if err := validateShare(share); err != nil {
		return err
	}
	r.OwnershipShare = share
	return nil
}

func (r *FiscalRecord) mergedInput(p RecordPatch) RecordInput {
	in := RecordInput{
		Kind:               r.Kind,
		CounterpartyID:     r.CounterpartyID,
		PropertyID:         r.PropertyID,
		OwnerID:            r.OwnerID,
		RecordDate:         r.RecordDate,
		DueDate:            r.DueDate,
		CorrespondingMonth: r.CorrespondingMonth,
		BaseAmount:         r.FullBaseAmount,
		VATRate:            r.VATRate,
		WithholdingRate:    r.WithholdingRate,
		IsProportional:     r.IsProportional,
		PeriodStart:        r.PeriodStart,
		PeriodEnd:          r.PeriodEnd,
		Deductible:         r.Deductible,
		Concept:            r.Concept,
	}
	if p.CounterpartyID != nil {
		in.CounterpartyID = *p.CounterpartyID
	}
	if p.PropertyID != nil {
		in.PropertyID = p.PropertyID
	}
	if p.OwnerID != nil {
		in.OwnerID = p.OwnerID
	}
	if p.RecordDate != nil {
		in.RecordDate = *p.RecordDate
	}
	if p.DueDate != nil {
		in.DueDate = p.DueDate
	}
	if p.CorrespondingMonth != nil {
		in.CorrespondingMonth = *p.CorrespondingMonth
	}
	if p.BaseAmount != nil {
		in.BaseAmount = *p.BaseAmount
	}
	if p.VATRate != nil {
		in.VATRate = *p.VATRate
	}
	if p.WithholdingRate != nil {
		in.WithholdingRate = *p.WithholdingRate
	}
	if p.IsProportional != nil {
		in.IsProportional = *p.IsProportional
	}
	if p.PeriodStart != nil {
		in.PeriodStart = p.PeriodStart
	}
	if p.PeriodEnd != nil {
		in.PeriodEnd = p.PeriodEnd
	}
	if p.Deductible != nil {
		in.Deductible = *p.Deductible
	}
	if p.Concept != nil {
		in.Concept = *p.Concept
	}
	if r.IsCreditNote {
		in.BaseAmount = in.BaseAmount.Abs()
	}
	return in
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
