package fiscal

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AmountSet aggregates the monetary figures of a group of records
type AmountSet struct {
	Base        decimal.Decimal `json:"base"`
	VAT         decimal.Decimal `json:"vat"`
	Withholding decimal.Decimal `json:"withholding"`
	Total       decimal.Decimal `json:"total"`
}

func (a AmountSet) plus(o AmountSet) AmountSet {
	return AmountSet{
		Base:        a.Base.Add(o.Base),
		VAT:         a.VAT.Add(o.VAT),
		Withholding: a.Withholding.Add(o.Withholding),
		Total:       a.Total.Add(o.Total),
	}
}

// SummaryTotals are the consolidated figures of one owner, or of all owners
type SummaryTotals struct {
	Issued        AmountSet       `json:"issued"`
	Received      AmountSet       `json:"received"`
	Expenses      AmountSet       `json:"expenses"`
	DeductibleVAT decimal.Decimal `json:"deductible_vat"`
	NetBalance    decimal.Decimal `json:"net_balance"` // Issued base minus received and expense bases
	NetVAT        decimal.Decimal `json:"net_vat"`     // Issued VAT minus deductible supported VAT
	RecordCount   int             `json:"record_count"`
}

func (s *SummaryTotals) settle() {
	s.NetBalance = s.Issued.Base.Sub(s.Received.Base).Sub(s.Expenses.Base)
	s.NetVAT = s.Issued.VAT.Sub(s.DeductibleVAT)
}

func (s *SummaryTotals) merge(o SummaryTotals) {
	s.Issued = s.Issued.plus(o.Issued)
	s.Received = s.Received.plus(o.Received)
	s.Expenses = s.Expenses.plus(o.Expenses)
	s.DeductibleVAT = s.DeductibleVAT.Add(o.DeductibleVAT)
	s.RecordCount += o.RecordCount
}

// OwnerPeriodSummary is one owner's consolidated position for a period
type OwnerPeriodSummary struct {
	OwnerID   uuid.UUID `json:"owner_id"`
	OwnerName string    `json:"owner_name"`
	InRoster  bool      `json:"in_roster"`
	SummaryTotals
}

// OwnerSummaryReport holds every owner's summary plus the overall total
type OwnerSummaryReport struct {
	Period           PeriodFilter         `json:"period"`
	Owners           []OwnerPeriodSummary `json:"owners"`
	OverallTotal     SummaryTotals        `json:"overall_total"`
	UnallocatedCount int                  `json:"unallocated_count"`
}

// GenerateOwnerSummary allocates each record in period to its owners and
// accumulates per-owner totals. Every roster owner is present, zero-filled
// when inactive; owners reached only through a record's own link follow the
// roster in first-seen order.
func GenerateOwnerSummary(records []FiscalRecord, owners []Owner, links []OwnershipLink, period PeriodFilter) (*OwnerSummaryReport, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	report := &OwnerSummaryReport{Period: period}
	index := make(map[uuid.UUID]int, len(owners))
	for _, o := range owners {
		if _, dup := index[o.ID]; dup {
			continue
		}
		index[o.ID] = len(report.Owners)
		report.Owners = append(report.Owners, OwnerPeriodSummary{OwnerID: o.ID, OwnerName: o.Name, InRoster: true})
	}

	allocator := NewAllocator(owners, links)
	for i := range records {
		r := &records[i]
		if !period.Contains(r.RecordDate) {
			continue
		}
		alloc := allocator.Allocate(r)
		if len(alloc.Shares) == 0 {
			report.UnallocatedCount++
			continue
		}
		base := alloc.Split(r.BaseAmount)
		vat := alloc.Split(r.VATAmount)
		withholding := alloc.Split(r.WithholdingAmount)
		total := alloc.Split(r.TotalAmount)
		for j, share := range alloc.Shares {
			pos, ok := index[share.OwnerID]
			if !ok {
				pos = len(report.Owners)
				index[share.OwnerID] = pos
				report.Owners = append(report.Owners, OwnerPeriodSummary{OwnerID: share.OwnerID})
			}
			report.Owners[pos].accumulate(r, AmountSet{
				Base:        base[j],
				VAT:         vat[j],
				Withholding: withholding[j],
				Total:       total[j],
			})
		}
	}

	for i := range report.Owners {
		report.Owners[i].settle()
		report.OverallTotal.merge(report.Owners[i].SummaryTotals)
	}
	report.OverallTotal.settle()

	return report, nil
}

func (s *OwnerPeriodSummary) accumulate(r *FiscalRecord, part AmountSet) {
	switch r.Kind {
	case KindIssued:
		s.Issued = s.Issued.plus(part)
	case KindReceived:
		s.Received = s.Received.plus(part)
	case KindExpense:
		s.Expenses = s.Expenses.plus(part)
	}
	if r.Kind != KindIssued && r.Deductible {
		s.DeductibleVAT = s.DeductibleVAT.Add(part.VAT)
	}
	s.RecordCount++
}
