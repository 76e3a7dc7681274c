package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propdesk/backend/internal/domain/fiscal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func chargedLedger(t *testing.T) *fiscal.Ledger {
	t.Helper()
	property := uuid.New()
	counterparty := uuid.New()
	var records []fiscal.FiscalRecord
	for i, base := range []string{"1000", "500"} {
		r, err := fiscal.NewFiscalRecord([]string{"FAC-0001", "FAC-0002"}[i], fiscal.RecordInput{
			Kind:            fiscal.KindIssued,
			CounterpartyID:  counterparty,
			PropertyID:      &property,
			RecordDate:      time.Date(2025, time.July, 1+i, 0, 0, 0, 0, time.UTC),
			BaseAmount:      decimal.RequireFromString(base),
			VATRate:         decimal.RequireFromString("21"),
			WithholdingRate: decimal.RequireFromString("15"),
			Concept:         "Rent",
		}, nil)
		require.NoError(t, err)
		records = append(records, *r)
	}
	ledger, err := fiscal.GenerateLedger(fiscal.BookCharged, records, fiscal.QuarterPeriod(2025, 3),
		map[uuid.UUID]string{counterparty: "Acme Rentals"})
	require.NoError(t, err)
	return ledger
}

func raw(t *testing.T, f *excelize.File, sheet, axis string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, axis, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return v
}

func TestLedgerWorkbook_Write(t *testing.T) {
	w := NewLedgerWorkbook("EUR")
	assert.Equal(t, ContentTypeXLSX, w.ContentType())
	assert.Equal(t, "xlsx", w.FileExtension())

	charged := chargedLedger(t)
	supported, err := fiscal.GenerateLedger(fiscal.BookSupported, nil, fiscal.QuarterPeriod(2025, 3), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, w.Write(&buf, charged, supported))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "CHARGED 2025-Q3", "SUPPORTED 2025-Q3"}, f.GetSheetList())

	t.Run("summary", func(t *testing.T) {
		assert.Equal(t, "Book", raw(t, f, "Summary", "A1"))
		assert.Equal(t, "CHARGED", raw(t, f, "Summary", "A2"))
		assert.Equal(t, "2025-Q3", raw(t, f, "Summary", "B2"))
		assert.Equal(t, "2", raw(t, f, "Summary", "C2"))
		assert.Equal(t, "1500", raw(t, f, "Summary", "D2"))
		assert.Equal(t, "315", raw(t, f, "Summary", "E2"))
		assert.Equal(t, "EUR", raw(t, f, "Summary", "J2"))
		assert.Equal(t, "SUPPORTED", raw(t, f, "Summary", "A3"))
		assert.Equal(t, "0", raw(t, f, "Summary", "C3"))
	})

	t.Run("entries, totals and rates", func(t *testing.T) {
		sheet := "CHARGED 2025-Q3"
		assert.Equal(t, "Number", raw(t, f, sheet, "C1"))
		assert.Equal(t, "FAC-0001", raw(t, f, sheet, "C2"))
		assert.Equal(t, "Acme Rentals", raw(t, f, sheet, "E2"))
		assert.Equal(t, "1000", raw(t, f, sheet, "G2"))
		assert.Equal(t, "210", raw(t, f, sheet, "I2"))
		assert.Equal(t, "1060", raw(t, f, sheet, "L2"))
		assert.Equal(t, "no", raw(t, f, sheet, "M2"))
		assert.Equal(t, "FAC-0002", raw(t, f, sheet, "C3"))

		assert.Equal(t, "Totals", raw(t, f, sheet, "A5"))
		assert.Equal(t, "1500", raw(t, f, sheet, "G5"))
		assert.Equal(t, "1590", raw(t, f, sheet, "L5"))

		assert.Equal(t, "VAT %", raw(t, f, sheet, "A7"))
		assert.Equal(t, "21", raw(t, f, sheet, "A8"))
		assert.Equal(t, "315", raw(t, f, sheet, "C8"))
		assert.Equal(t, "2", raw(t, f, sheet, "D8"))
	})
}

func TestLedgerWorkbook_NoLedgers(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, NewLedgerWorkbook("").Write(&buf))
	assert.Zero(t, buf.Len())
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "SUPPORTED 2025-08", SheetName(&fiscal.Ledger{Book: fiscal.BookSupported, Period: fiscal.MonthPeriod(2025, 8)}))
}
