package fiscal

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/propdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	minYear = 1900
	maxYear = 9999
)

// BookType selects which records a VAT book is built from
type BookType string

const (
	BookCharged   BookType = "CHARGED"   // VAT charged: issued invoices
	BookSupported BookType = "SUPPORTED" // VAT supported: received invoices and internal expenses
)

// IsValid checks if the book type is known
func (b BookType) IsValid() bool {
	return b == BookCharged || b == BookSupported
}

// Kinds returns the record kinds that belong in the book
func (b BookType) Kinds() []RecordKind {
	switch b {
	case BookCharged:
		return []RecordKind{KindIssued}
	case BookSupported:
		return []RecordKind{KindReceived, KindExpense}
	}
	return nil
}

// Includes reports whether records of kind belong in the book
func (b BookType) Includes(kind RecordKind) bool {
	for _, k := range b.Kinds() {
		if k == kind {
			return true
		}
	}
	return false
}

// OperationClass classifies a ledger entry for tax reporting
type OperationClass string

const (
	OperationStandard   OperationClass = "STANDARD"
	OperationExempt     OperationClass = "EXEMPT"     // VAT rate 0
	OperationCorrective OperationClass = "CORRECTIVE" // Credit note
)

// RecordTypeTag names the source document type of a ledger entry
type RecordTypeTag string

const (
	TagIssuedInvoice   RecordTypeTag = "ISSUED_INVOICE"
	TagReceivedInvoice RecordTypeTag = "RECEIVED_INVOICE"
	TagInternalExpense RecordTypeTag = "INTERNAL_EXPENSE"
)

// TagOf returns the record-type tag for kind
func TagOf(kind RecordKind) RecordTypeTag {
	switch kind {
	case KindIssued:
		return TagIssuedInvoice
	case KindReceived:
		return TagReceivedInvoice
	default:
		return TagInternalExpense
	}
}

// PeriodFilter restricts reports to a year, optionally narrowed to a quarter or a month.
// Month takes precedence over quarter when both are set.
type PeriodFilter struct {
	Year    int  `json:"year"`
	Quarter *int `json:"quarter,omitempty"`
	Month   *int `json:"month,omitempty"`
}

// YearPeriod returns a filter covering a whole year
func YearPeriod(year int) PeriodFilter {
	return PeriodFilter{Year: year}
}

// QuarterPeriod returns a filter covering one quarter
func QuarterPeriod(year, quarter int) PeriodFilter {
	return PeriodFilter{Year: year, Quarter: &quarter}
}

// MonthPeriod returns a filter covering one month
func MonthPeriod(year, month int) PeriodFilter {
	return PeriodFilter{Year: year, Month: &month}
}

// Validate rejects out-of-range years, quarters and months
func (p PeriodFilter) Validate() error {
	if p.Year < minYear || p.Year > maxYear {
		return shared.NewValidationError("INVALID_YEAR", fmt.Sprintf("Year must be between %d and %d", minYear, maxYear))
	}
	if p.Quarter != nil && (*p.Quarter < 1 || *p.Quarter > 4) {
		return shared.NewValidationError("INVALID_QUARTER", "Quarter must be between 1 and 4")
	}
	if p.Month != nil && (*p.Month < 1 || *p.Month > 12) {
		return shared.NewValidationError("INVALID_MONTH", "Month must be between 1 and 12")
	}
	return nil
}

// Range returns the half-open [from, to) interval covered by the filter, in UTC
func (p PeriodFilter) Range() (time.Time, time.Time) {
	switch {
	case p.Month != nil:
		from := time.Date(p.Year, time.Month(*p.Month), 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(0, 1, 0)
	case p.Quarter != nil:
		from := time.Date(p.Year, time.Month((*p.Quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(0, 3, 0)
	default:
		from := time.Date(p.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(1, 0, 0)
	}
}

// Contains reports whether the calendar date of t falls in the period
func (p PeriodFilter) Contains(t time.Time) bool {
	from, to := p.Range()
	d := CivilDate(t)
	return !d.Before(from) && d.Before(to)
}

// Label renders the period as 2025, 2025-Q3 or 2025-08
func (p PeriodFilter) Label() string {
	switch {
	case p.Month != nil:
		return fmt.Sprintf("%04d-%02d", p.Year, *p.Month)
	case p.Quarter != nil:
		return fmt.Sprintf("%04d-Q%d", p.Year, *p.Quarter)
	default:
		return fmt.Sprintf("%04d", p.Year)
	}
}

// LedgerEntry is the report-ready form of one fiscal record
type LedgerEntry struct {
	Index             int             `json:"index"`
	RecordID          uuid.UUID       `json:"record_id"`
	Date              time.Time       `json:"date"`
	RecordNumber      string          `json:"record_number"`
	CounterpartyID    uuid.UUID       `json:"counterparty_id"`
	CounterpartyName  string          `json:"counterparty_name"`
	PropertyID        *uuid.UUID      `json:"property_id,omitempty"`
	Concept           string          `json:"concept"`
	Base              decimal.Decimal `json:"base"`
	VATRate           decimal.Decimal `json:"vat_rate"`
	VATAmount         decimal.Decimal `json:"vat_amount"`
	WithholdingRate   decimal.Decimal `json:"withholding_rate"`
	WithholdingAmount decimal.Decimal `json:"withholding_amount"`
	Total             decimal.Decimal `json:"total"`
	Deductible        bool            `json:"deductible"`
	Operation         OperationClass  `json:"operation"`
	RecordType        RecordTypeTag   `json:"record_type"`
}

// LedgerTotals sums a set of entries
type LedgerTotals struct {
	Base        decimal.Decimal `json:"base"`
	VAT         decimal.Decimal `json:"vat"`
	Withholding decimal.Decimal `json:"withholding"`
	Total       decimal.Decimal `json:"total"`
	Count       int             `json:"count"`
}

func (t *LedgerTotals) add(e LedgerEntry) {
	t.Base = t.Base.Add(e.Base)
	t.VAT = t.VAT.Add(e.VATAmount)
	t.Withholding = t.Withholding.Add(e.WithholdingAmount)
	t.Total = t.Total.Add(e.Total)
	t.Count++
}

// RateBreakdown sums the entries sharing one VAT rate
type RateBreakdown struct {
	Rate  decimal.Decimal `json:"rate"`
	Base  decimal.Decimal `json:"base"`
	VAT   decimal.Decimal `json:"vat"`
	Count int             `json:"count"`
}

// Ledger is a VAT book for one period
type Ledger struct {
	Book             BookType        `json:"book"`
	Period           PeriodFilter    `json:"period"`
	Entries          []LedgerEntry   `json:"entries"`
	Totals           LedgerTotals    `json:"totals"`
	DeductibleTotals LedgerTotals    `json:"deductible_totals"`
	BreakdownByRate  []RateBreakdown `json:"breakdown_by_rate"`
}

// NewLedgerEntry maps a record into ledger shape. Index is assigned by GenerateLedger.
func NewLedgerEntry(r *FiscalRecord, counterpartyName string) LedgerEntry {
	op := OperationStandard
	switch {
	case r.IsCreditNote:
		op = OperationCorrective
	case r.VATRate.IsZero():
		op = OperationExempt
	}
	return LedgerEntry{
		RecordID:          r.ID,
		Date:              r.RecordDate,
		RecordNumber:      r.RecordNumber,
		CounterpartyID:    r.CounterpartyID,
		CounterpartyName:  counterpartyName,
		PropertyID:        r.PropertyID,
		Concept:           r.Concept,
		Base:              r.BaseAmount,
		VATRate:           r.VATRate,
		VATAmount:         r.VATAmount,
		WithholdingRate:   r.WithholdingRate,
		WithholdingAmount: r.WithholdingAmount,
		Total:             r.TotalAmount,
		Deductible:        r.Kind != KindIssued && r.Deductible,
		Operation:         op,
		RecordType:        TagOf(r.Kind),
	}
}

// recordNumberLess orders same-day entries by numeric sequence so FAC-9999
// precedes FAC-10000; equal sequences fall back to the full number.
func recordNumberLess(a, b string) bool {
	sa, sb := SequenceOf(a), SequenceOf(b)
	if sa != sb {
		return sa < sb
	}
	return a < b
}

// GenerateLedger builds the book from the records that belong to it and fall in period.
// Entries are ordered by record date, ties broken by record number, and indexed from 1.
// names maps counterparty ids to display names and may be nil.
func GenerateLedger(book BookType, records []FiscalRecord, period PeriodFilter, names map[uuid.UUID]string) (*Ledger, error) {
	if !book.IsValid() {
		return nil, shared.NewValidationError("INVALID_BOOK", "Book type is not valid")
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	entries := make([]LedgerEntry, 0, len(records))
	for i := range records {
		r := &records[i]
		if !book.Includes(r.Kind) || !period.Contains(r.RecordDate) {
			continue
		}
		entries = append(entries, NewLedgerEntry(r, names[r.CounterpartyID]))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := CivilDate(entries[i].Date), CivilDate(entries[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return recordNumberLess(entries[i].RecordNumber, entries[j].RecordNumber)
	})

	ledger := &Ledger{
		Book:    book,
		Period:  period,
		Entries: entries,
	}
	byRate := make(map[string]*RateBreakdown)
	for i := range ledger.Entries {
		e := &ledger.Entries[i]
		e.Index = i + 1
		ledger.Totals.add(*e)
		if e.Deductible {
			ledger.DeductibleTotals.add(*e)
		}
		key := e.VATRate.String()
		rb, ok := byRate[key]
		if !ok {
			rb = &RateBreakdown{Rate: e.VATRate}
			byRate[key] = rb
		}
		rb.Base = rb.Base.Add(e.Base)
		rb.VAT = rb.VAT.Add(e.VATAmount)
		rb.Count++
	}

	ledger.BreakdownByRate = make([]RateBreakdown, 0, len(byRate))
	for _, rb := range byRate {
		ledger.BreakdownByRate = append(ledger.BreakdownByRate, *rb)
	}
	sort.Slice(ledger.BreakdownByRate, func(i, j int) bool {
		return ledger.BreakdownByRate[i].Rate.GreaterThan(ledger.BreakdownByRate[j].Rate)
	})

	return ledger, nil
}
