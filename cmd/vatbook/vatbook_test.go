package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propdesk/backend/internal/domain/fiscal"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountPrinter(t *testing.T) {
	ap, err := newAmountPrinter("en", "EUR")
	require.NoError(t, err)

	assert.Equal(t, "1,234.50", ap.Amount(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "-60.00 EUR", ap.Money(decimal.NewFromInt(-60)))
	assert.Equal(t, "21 %", ap.Percent(decimal.NewFromInt(21)))

	_, err = newAmountPrinter("not a tag!", "EUR")
	assert.Error(t, err)
}

func TestParseBook(t *testing.T) {
	book, err := parseBook("Charged")
	require.NoError(t, err)
	assert.Equal(t, fiscal.BookCharged, book)

	_, err = parseBook("journal")
	assert.Error(t, err)
}

func TestPeriodFromFlags(t *testing.T) {
	newCmd := func(args ...string) *cobra.Command {
		cmd := &cobra.Command{Use: "x"}
		periodFlags(cmd)
		require.NoError(t, cmd.ParseFlags(args))
		return cmd
	}

	period, err := periodFromFlags(newCmd("--year", "2025", "--quarter", "3"))
	require.NoError(t, err)
	assert.Equal(t, fiscal.QuarterPeriod(2025, 3), period)

	period, err = periodFromFlags(newCmd("--year", "2025", "--month", "7"))
	require.NoError(t, err)
	assert.Equal(t, fiscal.MonthPeriod(2025, 7), period)

	_, err = periodFromFlags(newCmd("--year", "2025", "--quarter", "5"))
	assert.Error(t, err)
}

func TestPrintLedger(t *testing.T) {
	ap, err := newAmountPrinter("en", "EUR")
	require.NoError(t, err)

	ledger := &fiscal.Ledger{
		Book:   fiscal.BookSupported,
		Period: fiscal.QuarterPeriod(2025, 3),
		Entries: []fiscal.LedgerEntry{{
			Index:            1,
			RecordID:         uuid.New(),
			Date:             time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC),
			RecordNumber:     "FRE-0001",
			CounterpartyName: "Fontaneria Lopez",
			Base:             decimal.NewFromInt(1000),
			VATRate:          decimal.NewFromInt(21),
			VATAmount:        decimal.NewFromInt(210),
			Total:            decimal.NewFromInt(1210),
			Deductible:       true,
		}},
		Totals:           fiscal.LedgerTotals{Base: decimal.NewFromInt(1000), VAT: decimal.NewFromInt(210), Total: decimal.NewFromInt(1210), Count: 1},
		DeductibleTotals: fiscal.LedgerTotals{Base: decimal.NewFromInt(1000), VAT: decimal.NewFromInt(210), Count: 1},
		BreakdownByRate:  []fiscal.RateBreakdown{{Rate: decimal.NewFromInt(21), Base: decimal.NewFromInt(1000), VAT: decimal.NewFromInt(210), Count: 1}},
	}

	var out bytes.Buffer
	require.NoError(t, printLedger(&out, ap, ledger))

	text := out.String()
	assert.Contains(t, text, "SUPPORTED VAT book, 2025-Q3")
	assert.Contains(t, text, "FRE-0001")
	assert.Contains(t, text, "1,210.00")
	assert.Contains(t, text, "Deductible (1)")
	assert.Contains(t, text, "21 %")
}
