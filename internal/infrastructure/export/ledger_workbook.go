// Package export renders VAT books into spreadsheets.
package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/propdesk/backend/internal/domain/fiscal"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	// ContentTypeXLSX is the MIME type of the generated workbooks
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	summarySheet = "Summary"
	amountFormat = "#,##0.00"
	dateFormat   = "yyyy-mm-dd"
)

var entryHeader = []any{
	"#", "Date", "Number", "Type", "Counterparty", "Concept",
	"Base", "VAT %", "VAT", "Withholding %", "Withholding", "Total", "Deductible", "Operation",
}

// LedgerWorkbook writes one sheet per VAT book plus a summary sheet
type LedgerWorkbook struct {
	// Currency is printed in the summary header, e.g. EUR
	Currency string
}

// NewLedgerWorkbook creates a new LedgerWorkbook
func NewLedgerWorkbook(currency string) *LedgerWorkbook {
	return &LedgerWorkbook{Currency: currency}
}

// ContentType returns the workbook MIME type
func (w *LedgerWorkbook) ContentType() string {
	return ContentTypeXLSX
}

// FileExtension returns xlsx
func (w *LedgerWorkbook) FileExtension() string {
	return "xlsx"
}

// SheetName returns the sheet title of a book, e.g. "CHARGED 2025-Q3"
func SheetName(ledger *fiscal.Ledger) string {
	return fmt.Sprintf("%s %s", ledger.Book, ledger.Period.Label())
}

// Write renders ledgers into out
func (w *LedgerWorkbook) Write(out io.Writer, ledgers ...*fiscal.Ledger) error {
	if len(ledgers) == 0 {
		return errors.New("no ledgers to export")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return err
	}

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if err := w.writeSummary(f, styles, ledgers); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	for _, ledger := range ledgers {
		if ledger == nil {
			continue
		}
		if err := writeLedgerSheet(f, styles, ledger); err != nil {
			return fmt.Errorf("failed to write %s: %w", SheetName(ledger), err)
		}
	}

	return f.Write(out)
}

type workbookStyles struct {
	header int
	amount int
	date   int
	total  int
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	var s workbookStyles
	var err error
	amount, date := amountFormat, dateFormat

	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDE4EE"}, Pattern: 1},
	}); err != nil {
		return s, err
	}
	if s.amount, err = f.NewStyle(&excelize.Style{CustomNumFmt: &amount}); err != nil {
		return s, err
	}
	if s.date, err = f.NewStyle(&excelize.Style{CustomNumFmt: &date}); err != nil {
		return s, err
	}
	if s.total, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &amount}); err != nil {
		return s, err
	}
	return s, nil
}

func (w *LedgerWorkbook) writeSummary(f *excelize.File, styles workbookStyles, ledgers []*fiscal.Ledger) error {
	header := []any{"Book", "Period", "Entries", "Base", "VAT", "Withholding", "Total", "Deductible base", "Deductible VAT"}
	if w.Currency != "" {
		header = append(header, "Currency")
	}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", cell(len(header), 1), styles.header); err != nil {
		return err
	}

	row := 2
	for _, l := range ledgers {
		if l == nil {
			continue
		}
		values := []any{
			string(l.Book), l.Period.Label(), l.Totals.Count,
			money(l.Totals.Base), money(l.Totals.VAT), money(l.Totals.Withholding), money(l.Totals.Total),
			money(l.DeductibleTotals.Base), money(l.DeductibleTotals.VAT),
		}
		if w.Currency != "" {
			values = append(values, w.Currency)
		}
		if err := f.SetSheetRow(summarySheet, cell(1, row), &values); err != nil {
			return err
		}
		if err := f.SetCellStyle(summarySheet, cell(4, row), cell(9, row), styles.amount); err != nil {
			return err
		}
		row++
	}
	return f.SetColWidth(summarySheet, "A", "J", 16)
}

func writeLedgerSheet(f *excelize.File, styles workbookStyles, l *fiscal.Ledger) error {
	sheet := SheetName(l)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, "A1", &entryHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", cell(len(entryHeader), 1), styles.header); err != nil {
		return err
	}

	row := 2
	for _, e := range l.Entries {
		values := []any{
			e.Index, e.Date, e.RecordNumber, string(e.RecordType), e.CounterpartyName, e.Concept,
			money(e.Base), money(e.VATRate), money(e.VATAmount), money(e.WithholdingRate), money(e.WithholdingAmount),
			money(e.Total), yesNo(e.Deductible), string(e.Operation),
		}
		if err := f.SetSheetRow(sheet, cell(1, row), &values); err != nil {
			return err
		}
		row++
	}
	if row > 2 {
		if err := f.SetCellStyle(sheet, "B2", cell(2, row-1), styles.date); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "G2", cell(12, row-1), styles.amount); err != nil {
			return err
		}
	}

	// Totals below the entries, then the per-rate breakdown
	row++
	totals := []any{"Totals", nil, nil, nil, nil, nil,
		money(l.Totals.Base), nil, money(l.Totals.VAT), nil, money(l.Totals.Withholding), money(l.Totals.Total)}
	if err := f.SetSheetRow(sheet, cell(1, row), &totals); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cell(1, row), cell(12, row), styles.total); err != nil {
		return err
	}

	row += 2
	rateHeader := []any{"VAT %", "Base", "VAT", "Entries"}
	if err := f.SetSheetRow(sheet, cell(1, row), &rateHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cell(1, row), cell(4, row), styles.header); err != nil {
		return err
	}
	for _, rb := range l.BreakdownByRate {
		row++
		values := []any{money(rb.Rate), money(rb.Base), money(rb.VAT), rb.Count}
		if err := f.SetSheetRow(sheet, cell(1, row), &values); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell(2, row), cell(3, row), styles.amount); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 6); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "D", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "E", "F", 32); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "G", "N", 14)
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
