package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/propdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// amountPrinter renders amounts with the grouping and decimal separators of a locale
type amountPrinter struct {
	p        *message.Printer
	currency valueobject.Currency
}

func newAmountPrinter(lang, currency string) (*amountPrinter, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("invalid language %q: %w", lang, err)
	}
	return &amountPrinter{p: message.NewPrinter(tag), currency: valueobject.Currency(currency)}, nil
}

// Amount formats d with two decimals
func (a *amountPrinter) Amount(d decimal.Decimal) string {
	return a.p.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2)))
}

// Money formats d with two decimals followed by the currency code
func (a *amountPrinter) Money(d decimal.Decimal) string {
	m, err := valueobject.NewMoney(d, a.currency)
	if err != nil {
		return a.Amount(d)
	}
	return a.Amount(m.Round().Amount()) + " " + string(m.Currency())
}

// Percent formats a rate such as 21 as "21 %"
func (a *amountPrinter) Percent(d decimal.Decimal) string {
	return a.p.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(2))) + " %"
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
