package fiscal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerWith(vat, deductibleVAT, total string) *Ledger {
	return &Ledger{
		Totals:           LedgerTotals{VAT: dec(vat), Total: dec(total), Count: 1},
		DeductibleTotals: LedgerTotals{VAT: dec(deductibleVAT)},
	}
}

func TestGenerateLiquidation(t *testing.T) {
	t.Run("to pay", func(t *testing.T) {
		l := GenerateLiquidation(ledgerWith("500", "0", "0"), ledgerWith("450", "300", "0"))
		assert.True(t, l.NetVAT.Equal(dec("200")))
		assert.Equal(t, ResultToPay, l.Result)
		assert.True(t, l.SettlementAmount.Equal(dec("200")))
	})

	t.Run("to refund", func(t *testing.T) {
		l := GenerateLiquidation(ledgerWith("100", "0", "0"), ledgerWith("400", "400", "0"))
		assert.True(t, l.NetVAT.Equal(dec("-300")))
		assert.Equal(t, ResultToRefund, l.Result)
		assert.True(t, l.SettlementAmount.Equal(dec("300")))
	})

	t.Run("zero is a refund of nothing", func(t *testing.T) {
		l := GenerateLiquidation(ledgerWith("0", "0", "0"), nil)
		assert.Equal(t, ResultToRefund, l.Result)
		assert.True(t, l.SettlementAmount.IsZero())
	})
}

func TestGrowthRate(t *testing.T) {
	assert.Nil(t, GrowthRate(dec("100"), dec("0")))
	g := GrowthRate(dec("150"), dec("100"))
	require.NotNil(t, g)
	assert.True(t, g.Equal(dec("50")))
	g = GrowthRate(dec("100"), dec("300"))
	require.NotNil(t, g)
	assert.True(t, g.Equal(dec("-66.67")))
}

func TestBuildAnnualStatistics(t *testing.T) {
	quarters := [4]QuarterBooks{
		{Charged: ledgerWith("0", "0", "0"), Supported: ledgerWith("0", "0", "0")},
		{Charged: ledgerWith("210", "0", "1210"), Supported: ledgerWith("42", "42", "242")},
		{Charged: ledgerWith("105", "0", "605"), Supported: ledgerWith("210", "210", "1210")},
		{Charged: ledgerWith("210", "0", "1210"), Supported: ledgerWith("0", "0", "0")},
	}

	stats := BuildAnnualStatistics(2025, quarters)
	require.Len(t, stats.Quarters, 4)

	assert.Nil(t, stats.Quarters[0].GrowthRate)
	assert.Nil(t, stats.Quarters[1].GrowthRate, "previous quarter total was zero")
	require.NotNil(t, stats.Quarters[2].GrowthRate)
	assert.True(t, stats.Quarters[2].GrowthRate.Equal(dec("-50")))
	require.NotNil(t, stats.Quarters[3].GrowthRate)
	assert.True(t, stats.Quarters[3].GrowthRate.Equal(dec("100")))

	assert.Equal(t, ResultToPay, stats.Quarters[1].Liquidation.Result)
	assert.Equal(t, ResultToRefund, stats.Quarters[2].Liquidation.Result)

	assert.True(t, stats.ChargedTotal.Equal(dec("3025")))
	assert.True(t, stats.TotalToPay.Equal(dec("378")))
	assert.True(t, stats.TotalToRefund.Equal(dec("105")))
	assert.True(t, stats.NetVAT.Equal(dec("273")))
	assert.Equal(t, 2025, stats.Year)
}
