package fiscal

import (
	"testing"
	"time"

	"github.com/propdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestProrateBase(t *testing.T) {
	t.Run("missing dates keep full base", func(t *testing.T) {
		p := ProrateBase(dec("1000"), nil, datePtr(2025, 7, 31))
		assert.True(t, p.ProratedBase.Equal(dec("1000")))
		assert.Equal(t, 0, p.DaysBilled)
		assert.True(t, p.Percentage.Equal(dec("100")))
		assert.False(t, p.IsProrated())
	})

	t.Run("second half of july", func(t *testing.T) {
		p := ProrateBase(dec("1000"), datePtr(2025, 7, 17), datePtr(2025, 7, 31))
		assert.Equal(t, 15, p.DaysBilled)
		assert.Equal(t, 31, p.DaysInMonth)
		assert.True(t, p.ProratedBase.Equal(dec("483.87")), "got %s", p.ProratedBase)
		assert.True(t, p.Percentage.Equal(dec("48.39")), "got %s", p.Percentage)
	})

	t.Run("same day bills one day", func(t *testing.T) {
		p := ProrateBase(dec("300"), datePtr(2025, 6, 10), datePtr(2025, 6, 10))
		assert.Equal(t, 1, p.DaysBilled)
		assert.True(t, p.ProratedBase.Equal(dec("10")))
	})

	t.Run("cross month range divides by start month", func(t *testing.T) {
		p := ProrateBase(dec("280"), datePtr(2024, 2, 20), datePtr(2024, 3, 5))
		assert.Equal(t, 15, p.DaysBilled)
		assert.Equal(t, 29, p.DaysInMonth)
		assert.True(t, p.ProratedBase.Equal(dec("144.83")), "got %s", p.ProratedBase)
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		start := time.Date(2025, 7, 17, 22, 30, 0, 0, time.UTC)
		end := time.Date(2025, 7, 31, 1, 0, 0, 0, time.UTC)
		p := ProrateBase(dec("1000"), &start, &end)
		assert.Equal(t, 15, p.DaysBilled)
	})

	t.Run("days billed stays within month bounds", func(t *testing.T) {
		start := date(2025, 1, 1)
		for d := 0; d < 31; d++ {
			end := start.AddDate(0, 0, d)
			p := ProrateBase(dec("100"), &start, &end)
			assert.GreaterOrEqual(t, p.DaysBilled, 1)
			assert.LessOrEqual(t, p.DaysBilled, p.DaysInMonth)
			assert.True(t, p.Proportion.Equal(decimal.NewFromInt(int64(p.DaysBilled)).Div(decimal.NewFromInt(int64(p.DaysInMonth)))))
		}
	})

	t.Run("pure", func(t *testing.T) {
		a := ProrateBase(dec("812.40"), datePtr(2025, 4, 3), datePtr(2025, 4, 18))
		b := ProrateBase(dec("812.40"), datePtr(2025, 4, 3), datePtr(2025, 4, 18))
		assert.Equal(t, a, b)
	})
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(date(2025, 7, 17)))
	assert.Equal(t, 30, DaysInMonth(date(2025, 6, 1)))
	assert.Equal(t, 28, DaysInMonth(date(2025, 2, 10)))
	assert.Equal(t, 29, DaysInMonth(date(2024, 2, 10)))
	assert.Equal(t, 31, DaysInMonth(date(2025, 12, 31)))
}

func TestValidateProportionalPeriod(t *testing.T) {
	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
		ok    bool
	}{
		{"valid", datePtr(2025, 7, 17), datePtr(2025, 7, 31), true},
		{"whole month", datePtr(2025, 7, 1), datePtr(2025, 7, 31), true},
		{"missing start", nil, datePtr(2025, 7, 31), false},
		{"missing end", datePtr(2025, 7, 17), nil, false},
		{"start equals end", datePtr(2025, 7, 17), datePtr(2025, 7, 17), false},
		{"start after end", datePtr(2025, 7, 20), datePtr(2025, 7, 17), false},
		{"longer than start month", datePtr(2025, 2, 1), datePtr(2025, 3, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProportionalPeriod(tt.start, tt.end)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var de *shared.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, CodeInvalidProportionalPeriod, de.Code)
			assert.True(t, shared.IsValidation(err))
		})
	}
}
