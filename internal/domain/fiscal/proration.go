package fiscal

import (
	"time"

	"github.com/propdesk/backend/internal/domain/shared"
	"github.com/propdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

const (
	// CodeInvalidProportionalPeriod is returned for any rejected proportional date range
	CodeInvalidProportionalPeriod = "INVALID_PROPORTIONAL_PERIOD"

	hoursPerDay = 24
)

var fullPercentage = decimal.NewFromInt(100)

// Proration is the result of applying a calendar-day fraction to a monthly base
type Proration struct {
	ProratedBase decimal.Decimal `json:"prorated_base"`
	DaysBilled   int             `json:"days_billed"`
	DaysInMonth  int             `json:"days_in_month"`
	Proportion   decimal.Decimal `json:"proportion"` // DaysBilled / DaysInMonth, 1 when not prorated
	Percentage   decimal.Decimal `json:"percentage"` // Proportion × 100, rounded to cents
}

// IsProrated reports whether a day range was applied
func (p Proration) IsProrated() bool {
	return p.DaysBilled > 0
}

// ProrateBase scales base by the share of the start month covered by [start, end],
// both endpoints inclusive. A missing date leaves the base whole.
func ProrateBase(base decimal.Decimal, start, end *time.Time) Proration {
	if start == nil || end == nil {
		return Proration{
			ProratedBase: valueobject.RoundCents(base),
			Proportion:   decimal.NewFromInt(1),
			Percentage:   fullPercentage,
		}
	}

	days := DaysBilled(*start, *end)
	daysInMonth := DaysInMonth(*start)
	d := decimal.NewFromInt(int64(days))
	m := decimal.NewFromInt(int64(daysInMonth))

	return Proration{
		ProratedBase: valueobject.RoundCents(base.Mul(d).Div(m)),
		DaysBilled:   days,
		DaysInMonth:  daysInMonth,
		Proportion:   d.Div(m),
		Percentage:   valueobject.RoundCents(d.Mul(fullPercentage).Div(m)),
	}
}

// DaysBilled counts calendar days from start to end, both included
func DaysBilled(start, end time.Time) int {
	diff := CivilDate(end).Sub(CivilDate(start))
	days := int(diff / (hoursPerDay * time.Hour))
	if diff%(hoursPerDay*time.Hour) != 0 {
		days++
	}
	return days + 1
}

// DaysInMonth returns the number of days in the calendar month containing t
func DaysInMonth(t time.Time) int {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CivilDate truncates t to midnight UTC of its own calendar date
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidateProportionalPeriod checks a proportional billing range.
// Both dates are required, start must precede end, and the range may not
// bill more days than the start month has.
func ValidateProportionalPeriod(start, end *time.Time) error {
	if start == nil || end == nil {
		return shared.NewValidationError(CodeInvalidProportionalPeriod, "Proportional billing requires both period start and period end")
	}
	if !CivilDate(*start).Before(CivilDate(*end)) {
		return shared.NewValidationError(CodeInvalidProportionalPeriod, "Period start must be before period end")
	}
	if DaysBilled(*start, *end) > DaysInMonth(*start) {
		return shared.NewValidationError(CodeInvalidProportionalPeriod, "Proportional period cannot bill more days than the start month has")
	}
	return nil
}
