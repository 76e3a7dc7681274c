package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundCents(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"483.870967", "483.87"},
		{"101.6127", "101.61"},
		{"0.005", "0.01"},
		{"-0.005", "-0.01"},
		{"12", "12"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := RoundCents(decimal.RequireFromString(tt.in))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestApplyPercent(t *testing.T) {
	base := decimal.NewFromInt(1000)
	assert.True(t, ApplyPercent(base, decimal.NewFromInt(21)).Equal(decimal.NewFromInt(210)))
	assert.True(t, ApplyPercent(base, decimal.Zero).IsZero())
	assert.True(t, ApplyPercent(decimal.RequireFromString("483.87"), decimal.NewFromInt(21)).
		Equal(decimal.RequireFromString("101.61")))
}

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), EUR)
		require.NoError(t, err)
		assert.Equal(t, EUR, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", EUR)
		assert.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyEUR(decimal.RequireFromString("100.10"))
	b := NewMoneyEUR(decimal.RequireFromString("0.25"))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "100.35 EUR", sum.String())

	diff, err := b.Subtract(a)
	require.NoError(t, err)
	assert.True(t, diff.IsNegative())
	assert.Equal(t, "99.85", diff.Abs().StringFixed())
	assert.True(t, diff.Negate().Equals(diff.Abs()))

	_, err = a.Add(Zero(USD))
	assert.Error(t, err)

	assert.Equal(t, "21.02", a.Percent(decimal.NewFromInt(21)).StringFixed())
}

func TestMoneyJSON(t *testing.T) {
	m := NewMoneyEUR(decimal.RequireFromString("585.48"))
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"585.48","currency":"EUR"}`, string(data))

	var back Money
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"12.5"}`), &back))
	assert.Equal(t, EUR, back.Currency())
	assert.Equal(t, "12.50", back.StringFixed())
}
