package fiscal

import (
	"time"

	"github.com/google/uuid"
	"github.com/propdesk/backend/internal/domain/fiscal"
	"github.com/propdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ==================== Record DTOs ====================

// CreateRecordRequest represents a request to create a fiscal record
type CreateRecordRequest struct {
	Kind               fiscal.RecordKind `json:"kind" binding:"required,oneof=ISSUED RECEIVED EXPENSE"`
	CounterpartyID     uuid.UUID         `json:"counterparty_id"`
	PropertyID         *uuid.UUID        `json:"property_id"`
	OwnerID            *uuid.UUID        `json:"owner_id"`
	RecordDate         time.Time         `json:"record_date" binding:"required"`
	DueDate            *time.Time        `json:"due_date"`
	CorrespondingMonth string            `json:"corresponding_month" binding:"omitempty,yearmonth"`
	BaseAmount         decimal.Decimal   `json:"base_amount"`
	VATRate            decimal.Decimal   `json:"vat_rate"`
	WithholdingRate    decimal.Decimal   `json:"withholding_rate"`
	IsProportional     bool              `json:"is_proportional"`
	PeriodStart        *time.Time        `json:"period_start"`
	PeriodEnd          *time.Time        `json:"period_end"`
	Deductible         bool              `json:"deductible"`
	Concept            string            `json:"concept" binding:"max=500"`
}

// ToInput converts the request to domain input
func (r CreateRecordRequest) ToInput() fiscal.RecordInput {
	return fiscal.RecordInput{
		Kind:               r.Kind,
		CounterpartyID:     r.CounterpartyID,
		PropertyID:         r.PropertyID,
		OwnerID:            r.OwnerID,
		RecordDate:         r.RecordDate,
		DueDate:            r.DueDate,
		CorrespondingMonth: r.CorrespondingMonth,
		BaseAmount:         r.BaseAmount,
		VATRate:            r.VATRate,
		WithholdingRate:    r.WithholdingRate,
		IsProportional:     r.IsProportional,
		PeriodStart:        r.PeriodStart,
		PeriodEnd:          r.PeriodEnd,
		Deductible:         r.Deductible,
		Concept:            r.Concept,
	}
}

// UpdateRecordRequest represents a partial update; nil fields are left unchanged
type UpdateRecordRequest struct {
	RecordNumber       *string          `json:"record_number" binding:"omitempty,min=1,max=50"`
	CounterpartyID     *uuid.UUID       `json:"counterparty_id"`
	PropertyID         *uuid.UUID       `json:"property_id"`
	OwnerID            *uuid.UUID       `json:"owner_id"`
	RecordDate         *time.Time       `json:"record_date"`
	DueDate            *time.Time       `json:"due_date"`
	CorrespondingMonth *string          `json:"corresponding_month" binding:"omitempty,yearmonth"`
	BaseAmount         *decimal.Decimal `json:"base_amount"`
	VATRate            *decimal.Decimal `json:"vat_rate"`
	WithholdingRate    *decimal.Decimal `json:"withholding_rate"`
	IsProportional     *bool            `json:"is_proportional"`
	PeriodStart        *time.Time       `json:"period_start"`
	PeriodEnd          *time.Time       `json:"period_end"`
	Deductible         *bool            `json:"deductible"`
	Concept            *string          `json:"concept" binding:"omitempty,max=500"`
}

// ToPatch converts the request to a domain patch
func (r UpdateRecordRequest) ToPatch() fiscal.RecordPatch {
	return fiscal.RecordPatch{
		RecordNumber:       r.RecordNumber,
		CounterpartyID:     r.CounterpartyID,
		PropertyID:         r.PropertyID,
		OwnerID:            r.OwnerID,
		RecordDate:         r.RecordDate,
		DueDate:            r.DueDate,
		CorrespondingMonth: r.CorrespondingMonth,
		BaseAmount:         r.BaseAmount,
		VATRate:            r.VATRate,
		WithholdingRate:    r.WithholdingRate,
		IsProportional:     r.IsProportional,
		PeriodStart:        r.PeriodStart,
		PeriodEnd:          r.PeriodEnd,
		Deductible:         r.Deductible,
		Concept:            r.Concept,
	}
}

// CreateCreditNoteRequest represents a request to reverse a record
type CreateCreditNoteRequest struct {
	RecordDate *time.Time `json:"record_date"` // Defaults to today
	Concept    string     `json:"concept" binding:"max=500"`
}

// Status change actions
const (
	ActionCollect = "collect"
	ActionPay     = "pay"
	ActionDispute = "dispute"
	ActionReopen  = "reopen"
)

// ChangeStatusRequest represents a lifecycle transition
type ChangeStatusRequest struct {
	Action string     `json:"action" binding:"required,oneof=collect pay dispute reopen"`
	Reason string     `json:"reason" binding:"max=500"`
	At     *time.Time `json:"at"` // Settlement time, defaults to now
}

// ComputeAmountsRequest represents a stateless fiscal amount calculation
type ComputeAmountsRequest struct {
	BaseAmount      decimal.Decimal `json:"base_amount"`
	VATRate         decimal.Decimal `json:"vat_rate"`
	WithholdingRate decimal.Decimal `json:"withholding_rate"`
	IsProportional  bool            `json:"is_proportional"`
	PeriodStart     *time.Time      `json:"period_start"`
	PeriodEnd       *time.Time      `json:"period_end"`
}

// ToInput converts the request to domain input
func (r ComputeAmountsRequest) ToInput() fiscal.FiscalInput {
	return fiscal.FiscalInput{
		BaseAmount:      r.BaseAmount,
		VATRate:         r.VATRate,
		WithholdingRate: r.WithholdingRate,
		IsProportional:  r.IsProportional,
		PeriodStart:     r.PeriodStart,
		PeriodEnd:       r.PeriodEnd,
	}
}

// RecordListFilter represents filter options for record listings
type RecordListFilter struct {
	Page         int                  `form:"page" binding:"omitempty,min=1"`
	PageSize     int                  `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string               `form:"order_by"`
	OrderDir     string               `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Kind         *fiscal.RecordKind   `form:"kind" binding:"omitempty,oneof=ISSUED RECEIVED EXPENSE"`
	Status       *fiscal.RecordStatus `form:"status" binding:"omitempty,oneof=PENDING COLLECTED PAID DISPUTED"`
	PropertyID   *uuid.UUID           `form:"property_id"`
	OwnerID      *uuid.UUID           `form:"owner_id"`
	IsCreditNote *bool                `form:"is_credit_note"`
	FromDate     *time.Time           `form:"from_date" time_format:"2006-01-02"`
	ToDate       *time.Time           `form:"to_date" time_format:"2006-01-02"`
}

// toDomain fills in defaults and converts to the repository filter
func (f RecordListFilter) toDomain() fiscal.RecordFilter {
	base := shared.DefaultFilter()
	if f.Page > 0 {
		base.Page = f.Page
	}
	if f.PageSize > 0 {
		base.PageSize = f.PageSize
	}
	if f.OrderBy != "" {
		base.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		base.OrderDir = f.OrderDir
	}
	return fiscal.RecordFilter{
		Filter:       base,
		Kind:         f.Kind,
		Status:       f.Status,
		PropertyID:   f.PropertyID,
		OwnerID:      f.OwnerID,
		IsCreditNote: f.IsCreditNote,
		FromDate:     f.FromDate,
		ToDate:       f.ToDate,
	}
}

// RecordResponse represents a fiscal record in API responses
type RecordResponse struct {
	ID                 uuid.UUID           `json:"id"`
	Kind               fiscal.RecordKind   `json:"kind"`
	RecordNumber       string              `json:"record_number"`
	CounterpartyID     uuid.UUID           `json:"counterparty_id"`
	PropertyID         *uuid.UUID          `json:"property_id,omitempty"`
	OwnerID            *uuid.UUID          `json:"owner_id,omitempty"`
	OwnershipShare     *decimal.Decimal    `json:"ownership_share,omitempty"`
	RecordDate         time.Time           `json:"record_date"`
	DueDate            *time.Time          `json:"due_date,omitempty"`
	CorrespondingMonth string              `json:"corresponding_month"`
	FullBaseAmount     decimal.Decimal     `json:"full_base_amount"`
	BaseAmount         decimal.Decimal     `json:"base_amount"`
	VATRate            decimal.Decimal     `json:"vat_rate"`
	VATAmount          decimal.Decimal     `json:"vat_amount"`
	WithholdingRate    decimal.Decimal     `json:"withholding_rate"`
	WithholdingAmount  decimal.Decimal     `json:"withholding_amount"`
	TotalAmount        decimal.Decimal     `json:"total_amount"`
	IsProportional     bool                `json:"is_proportional"`
	PeriodStart        *time.Time          `json:"period_start,omitempty"`
	PeriodEnd          *time.Time          `json:"period_end,omitempty"`
	DaysBilled         int                 `json:"days_billed"`
	IsCreditNote       bool                `json:"is_credit_note"`
	OriginalRecordID   *uuid.UUID          `json:"original_record_id,omitempty"`
	Deductible         bool                `json:"deductible"`
	Concept            string              `json:"concept"`
	Status             fiscal.RecordStatus `json:"status"`
	DisplayStatus      fiscal.RecordStatus `json:"display_status"`
	IsOverdue          bool                `json:"is_overdue"`
	SettledAt          *time.Time          `json:"settled_at,omitempty"`
	DisputeReason      string              `json:"dispute_reason,omitempty"`
	Version            int                 `json:"version"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// ToRecordResponse converts a domain record; the overdue flag is derived at now
func ToRecordResponse(r *fiscal.FiscalRecord, now time.Time) RecordResponse {
	return RecordResponse{
		ID:                 r.ID,
		Kind:               r.Kind,
		RecordNumber:       r.RecordNumber,
		CounterpartyID:     r.CounterpartyID,
		PropertyID:         r.PropertyID,
		OwnerID:            r.OwnerID,
		OwnershipShare:     r.OwnershipShare,
		RecordDate:         r.RecordDate,
		DueDate:            r.DueDate,
		CorrespondingMonth: r.CorrespondingMonth,
		FullBaseAmount:     r.FullBaseAmount,
		BaseAmount:         r.BaseAmount,
		VATRate:            r.VATRate,
		VATAmount:          r.VATAmount,
		WithholdingRate:    r.WithholdingRate,
		WithholdingAmount:  r.WithholdingAmount,
		TotalAmount:        r.TotalAmount,
		IsProportional:     r.IsProportional,
		PeriodStart:        r.PeriodStart,
		PeriodEnd:          r.PeriodEnd,
		DaysBilled:         r.DaysBilled,
		IsCreditNote:       r.IsCreditNote,
		OriginalRecordID:   r.OriginalRecordID,
		Deductible:         r.Deductible,
		Concept:            r.Concept,
		Status:             r.Status,
		DisplayStatus:      r.DisplayStatus(now),
		IsOverdue:          r.IsOverdue(now),
		SettledAt:          r.SettledAt,
		DisputeReason:      r.DisputeReason,
		Version:            r.Version,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// ToRecordResponses converts a slice of domain records
func ToRecordResponses(records []fiscal.FiscalRecord, now time.Time) []RecordResponse {
	responses := make([]RecordResponse, len(records))
	for i := range records {
		responses[i] = ToRecordResponse(&records[i], now)
	}
	return responses
}

// ==================== Report DTOs ====================

// LiquidationReport is the VAT settlement of one period
type LiquidationReport struct {
	Period           fiscal.PeriodFilter `json:"period"`
	Label            string              `json:"label"`
	ChargedTotals    fiscal.LedgerTotals `json:"charged_totals"`
	SupportedTotals  fiscal.LedgerTotals `json:"supported_totals"`
	DeductibleTotals fiscal.LedgerTotals `json:"deductible_totals"`
	fiscal.Liquidation
}

// ExportResult is a rendered VAT book workbook
type ExportResult struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"-"`
	Location    string `json:"location,omitempty"` // Archive URL when archived
}
