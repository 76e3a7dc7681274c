package fiscal

import (
	"time"

	"github.com/propdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Amounts holds the monetary figures derived from a tax base
type Amounts struct {
	Base              decimal.Decimal `json:"base"`
	VATAmount         decimal.Decimal `json:"vat_amount"`
	WithholdingAmount decimal.Decimal `json:"withholding_amount"`
	Total             decimal.Decimal `json:"total"`
}

// ComputeAmounts derives VAT, withholding and total from base. Rates are percentages.
func ComputeAmounts(base, vatRate, withholdingRate decimal.Decimal) Amounts {
	base = valueobject.RoundCents(base)
	vat := valueobject.ApplyPercent(base, vatRate)
	withholding := valueobject.ApplyPercent(base, withholdingRate)
	return Amounts{
		Base:              base,
		VATAmount:         vat,
		WithholdingAmount: withholding,
		Total:             TotalOf(base, vat, withholding),
	}
}

// TotalOf returns round(base + vat - withholding, 2)
func TotalOf(base, vat, withholding decimal.Decimal) decimal.Decimal {
	return valueobject.RoundCents(base.Add(vat).Sub(withholding))
}

// Negated returns the credit-note image of a: base and total forced negative,
// VAT and withholding sign-flipped.
func (a Amounts) Negated() Amounts {
	return Amounts{
		Base:              a.Base.Abs().Neg(),
		VATAmount:         a.VATAmount.Neg(),
		WithholdingAmount: a.WithholdingAmount.Neg(),
		Total:             a.Total.Abs().Neg(),
	}
}

// FiscalInput is everything needed to derive the amounts of one record
type FiscalInput struct {
	BaseAmount      decimal.Decimal
	VATRate         decimal.Decimal
	WithholdingRate decimal.Decimal
	IsProportional  bool
	PeriodStart     *time.Time
	PeriodEnd       *time.Time
}

// Validate rejects a negative base, rates outside 0-100 and an invalid
// proportional period
func (in FiscalInput) Validate() error {
	if err := validateAmountInputs(in.BaseAmount, in.VATRate, in.WithholdingRate); err != nil {
		return err
	}
	if in.IsProportional {
		return ValidateProportionalPeriod(in.PeriodStart, in.PeriodEnd)
	}
	return nil
}

// FiscalAmounts are the derived amounts plus the proration that produced the base
type FiscalAmounts struct {
	Amounts
	Proration Proration `json:"proration"`
}

// ComputeFiscalAmounts prorates the base when the input is proportional and
// derives VAT, withholding and total from the result. Pure.
func ComputeFiscalAmounts(in FiscalInput) FiscalAmounts {
	var p Proration
	if in.IsProportional {
		p = ProrateBase(in.BaseAmount, in.PeriodStart, in.PeriodEnd)
	} else {
		p = ProrateBase(in.BaseAmount, nil, nil)
	}
	return FiscalAmounts{
		Amounts:   ComputeAmounts(p.ProratedBase, in.VATRate, in.WithholdingRate),
		Proration: p,
	}
}
