package fiscal

import (
	"github.com/propdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// LiquidationResult says whether the period ends with VAT owed or refundable
type LiquidationResult string

const (
	ResultToPay    LiquidationResult = "TO_PAY"
	ResultToRefund LiquidationResult = "TO_REFUND"
)

// Liquidation nets VAT charged against deductible VAT supported
type Liquidation struct {
	ChargedVAT       decimal.Decimal   `json:"charged_vat"`
	DeductibleVAT    decimal.Decimal   `json:"deductible_vat"`
	NetVAT           decimal.Decimal   `json:"net_vat"`
	Result           LiquidationResult `json:"result"`
	SettlementAmount decimal.Decimal   `json:"settlement_amount"`
}

// GenerateLiquidation computes the VAT settlement of a charged and a supported book
func GenerateLiquidation(charged, supported *Ledger) Liquidation {
	var chargedVAT, deductibleVAT decimal.Decimal
	if charged != nil {
		chargedVAT = charged.Totals.VAT
	}
	if supported != nil {
		deductibleVAT = supported.DeductibleTotals.VAT
	}
	net := valueobject.RoundCents(chargedVAT.Sub(deductibleVAT))
	result := ResultToRefund
	if net.IsPositive() {
		result = ResultToPay
	}
	return Liquidation{
		ChargedVAT:       chargedVAT,
		DeductibleVAT:    deductibleVAT,
		NetVAT:           net,
		Result:           result,
		SettlementAmount: net.Abs(),
	}
}

// QuarterBooks pairs the two VAT books of one quarter
type QuarterBooks struct {
	Charged   *Ledger
	Supported *Ledger
}

// QuarterStatistics is one quarter of the annual statistics
type QuarterStatistics struct {
	Quarter        int             `json:"quarter"`
	ChargedBase    decimal.Decimal `json:"charged_base"`
	ChargedTotal   decimal.Decimal `json:"charged_total"`
	SupportedTotal decimal.Decimal `json:"supported_total"`
	EntryCount     int             `json:"entry_count"`
	Liquidation    Liquidation     `json:"liquidation"`
	// GrowthRate is the change in ChargedTotal against the previous quarter,
	// in percent. Nil for the first quarter or when the previous total is zero.
	GrowthRate *decimal.Decimal `json:"growth_rate"`
}

// AnnualStatistics aggregates the four quarterly liquidations of a year
type AnnualStatistics struct {
	Year           int                 `json:"year"`
	Quarters       []QuarterStatistics `json:"quarters"`
	ChargedTotal   decimal.Decimal     `json:"charged_total"`
	SupportedTotal decimal.Decimal     `json:"supported_total"`
	ChargedVAT     decimal.Decimal     `json:"charged_vat"`
	DeductibleVAT  decimal.Decimal     `json:"deductible_vat"`
	TotalToPay     decimal.Decimal     `json:"total_to_pay"`
	TotalToRefund  decimal.Decimal     `json:"total_to_refund"`
	NetVAT         decimal.Decimal     `json:"net_vat"`
}

// GrowthRate returns (current - previous) / previous × 100 rounded to cents,
// or nil when previous is zero.
func GrowthRate(current, previous decimal.Decimal) *decimal.Decimal {
	if previous.IsZero() {
		return nil
	}
	g := valueobject.RoundCents(current.Sub(previous).Div(previous).Mul(fullPercentage))
	return &g
}

// BuildAnnualStatistics liquidates each quarter and computes quarter-over-quarter growth
func BuildAnnualStatistics(year int, quarters [4]QuarterBooks) AnnualStatistics {
	stats := AnnualStatistics{Year: year, Quarters: make([]QuarterStatistics, 0, 4)}
	for i, q := range quarters {
		qs := QuarterStatistics{
			Quarter:     i + 1,
			Liquidation: GenerateLiquidation(q.Charged, q.Supported),
		}
		if q.Charged != nil {
			qs.ChargedBase = q.Charged.Totals.Base
			qs.ChargedTotal = q.Charged.Totals.Total
			qs.EntryCount += q.Charged.Totals.Count
		}
		if q.Supported != nil {
			qs.SupportedTotal = q.Supported.Totals.Total
			qs.EntryCount += q.Supported.Totals.Count
		}
		if i > 0 {
			qs.GrowthRate = GrowthRate(qs.ChargedTotal, stats.Quarters[i-1].ChargedTotal)
		}

		stats.ChargedTotal = stats.ChargedTotal.Add(qs.ChargedTotal)
		stats.SupportedTotal = stats.SupportedTotal.Add(qs.SupportedTotal)
		stats.ChargedVAT = stats.ChargedVAT.Add(qs.Liquidation.ChargedVAT)
		stats.DeductibleVAT = stats.DeductibleVAT.Add(qs.Liquidation.DeductibleVAT)
		stats.NetVAT = stats.NetVAT.Add(qs.Liquidation.NetVAT)
		if qs.Liquidation.Result == ResultToPay {
			stats.TotalToPay = stats.TotalToPay.Add(qs.Liquidation.SettlementAmount)
		} else {
			stats.TotalToRefund = stats.TotalToRefund.Add(qs.Liquidation.SettlementAmount)
		}
		stats.Quarters = append(stats.Quarters, qs)
	}
	return stats
}
