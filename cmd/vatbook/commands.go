package main

import (
	"fmt"
	"io"
	"os"

	"github.com/propdesk/backend/internal/domain/fiscal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger <charged|supported>",
	Short: "Print the charged or supported VAT book of a period",
	Example: `  vatbook ledger charged --year 2025 --quarter 3
  vatbook ledger supported --year 2025 --month 7 --lang en
  vatbook ledger charged --year 2025 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runLedger,
}

var exportCmd = &cobra.Command{
	Use:   "export <charged|supported>",
	Short: "Write the VAT book of a period to a workbook",
	Example: `  vatbook export supported --year 2025 --quarter 1
  vatbook export charged --year 2025 --out charged-2025.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var liquidationCmd = &cobra.Command{
	Use:     "liquidation",
	Short:   "Settle charged against deductible VAT for a period",
	Example: `  vatbook liquidation --year 2025 --quarter 2`,
	Args:    cobra.NoArgs,
	RunE:    runLiquidation,
}

var statsCmd = &cobra.Command{
	Use:     "stats",
	Short:   "Print the quarterly statistics of a year",
	Example: `  vatbook stats --year 2025`,
	Args:    cobra.NoArgs,
	RunE:    runStats,
}

var ownersCmd = &cobra.Command{
	Use:     "owners",
	Short:   "Distribute a period's records among co-owners",
	Example: `  vatbook owners --year 2025 --month 7`,
	Args:    cobra.NoArgs,
	RunE:    runOwners,
}

func init() {
	for _, cmd := range []*cobra.Command{ledgerCmd, exportCmd, liquidationCmd, ownersCmd} {
		periodFlags(cmd)
	}
	statsCmd.Flags().Int("year", 0, "Calendar year (required)")
	_ = statsCmd.MarkFlagRequired("year")
	exportCmd.Flags().String("out", "", "Output file (default: the generated file name)")

	rootCmd.AddCommand(ledgerCmd, exportCmd, liquidationCmd, statsCmd, ownersCmd)
}

func runLedger(cmd *cobra.Command, args []string) error {
	book, err := parseBook(args[0])
	if err != nil {
		return err
	}
	period, err := periodFromFlags(cmd)
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ledger, err := s.reports.GenerateLedger(cmd.Context(), book, period)
	if err != nil {
		return err
	}
	if asJSON(cmd) {
		return writeJSON(cmd.OutOrStdout(), ledger)
	}
	ap, err := printerFor(cmd, s.currency)
	if err != nil {
		return err
	}
	return printLedger(cmd.OutOrStdout(), ap, ledger)
}

func runExport(cmd *cobra.Command, args []string) error {
	book, err := parseBook(args[0])
	if err != nil {
		return err
	}
	period, err := periodFromFlags(cmd)
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	result, err := s.reports.ExportLedger(cmd.Context(), book, period)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = result.FileName
	}
	if err := os.WriteFile(out, result.Content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	s.log.Info("VAT book exported", zap.String("file", out), zap.Int("bytes", len(result.Content)))
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func runLiquidation(cmd *cobra.Command, _ []string) error {
	period, err := periodFromFlags(cmd)
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	report, err := s.reports.GenerateLiquidation(cmd.Context(), period)
	if err != nil {
		return err
	}
	if asJSON(cmd) {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	ap, err := printerFor(cmd, s.currency)
	if err != nil {
		return err
	}

	w := newTable(cmd.OutOrStdout())
	fmt.Fprintf(w, "Period\t%s\t\n", report.Label)
	fmt.Fprintf(w, "Charged VAT\t%s\t\n", ap.Money(report.ChargedVAT))
	fmt.Fprintf(w, "Deductible VAT\t%s\t\n", ap.Money(report.DeductibleVAT))
	fmt.Fprintf(w, "Net VAT\t%s\t\n", ap.Money(report.NetVAT))
	fmt.Fprintf(w, "Result\t%s\t\n", report.Result)
	fmt.Fprintf(w, "Settlement\t%s\t\n", ap.Money(report.SettlementAmount))
	return w.Flush()
}

func runStats(cmd *cobra.Command, _ []string) error {
	year, _ := cmd.Flags().GetInt("year")

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	stats, err := s.reports.GenerateAnnualStatistics(cmd.Context(), year)
	if err != nil {
		return err
	}
	if asJSON(cmd) {
		return writeJSON(cmd.OutOrStdout(), stats)
	}
	ap, err := printerFor(cmd, s.currency)
	if err != nil {
		return err
	}
	return printStatistics(cmd.OutOrStdout(), ap, stats)
}

func runOwners(cmd *cobra.Command, _ []string) error {
	period, err := periodFromFlags(cmd)
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	report, err := s.reports.GenerateOwnerSummary(cmd.Context(), period)
	if err != nil {
		return err
	}
	if asJSON(cmd) {
		return writeJSON(cmd.OutOrStdout(), report)
	}
	ap, err := printerFor(cmd, s.currency)
	if err != nil {
		return err
	}
	return printOwnerSummary(cmd.OutOrStdout(), ap, report)
}

func asJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func printerFor(cmd *cobra.Command, currency string) (*amountPrinter, error) {
	lang, _ := cmd.Flags().GetString("lang")
	return newAmountPrinter(lang, currency)
}

func printLedger(out io.Writer, ap *amountPrinter, l *fiscal.Ledger) error {
	fmt.Fprintf(out, "%s VAT book, %s\n\n", l.Book, l.Period.Label())

	w := newTable(out)
	fmt.Fprintln(w, "#\tDate\tNumber\tCounterparty\tBase\tRate\tVAT\tWithholding\tTotal\t")
	for _, e := range l.Entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			e.Index,
			e.Date.Format("2006-01-02"),
			e.RecordNumber,
			e.CounterpartyName,
			ap.Amount(e.Base),
			ap.Percent(e.VATRate),
			ap.Amount(e.VATAmount),
			ap.Amount(e.WithholdingAmount),
			ap.Amount(e.Total),
		)
	}
	fmt.Fprintf(w, "\t\t\tTotal (%d)\t%s\t\t%s\t%s\t%s\t\n",
		l.Totals.Count,
		ap.Amount(l.Totals.Base),
		ap.Amount(l.Totals.VAT),
		ap.Amount(l.Totals.Withholding),
		ap.Amount(l.Totals.Total),
	)
	if l.Book == fiscal.BookSupported {
		fmt.Fprintf(w, "\t\t\tDeductible (%d)\t%s\t\t%s\t\t\t\n",
			l.DeductibleTotals.Count,
			ap.Amount(l.DeductibleTotals.Base),
			ap.Amount(l.DeductibleTotals.VAT),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(l.BreakdownByRate) == 0 {
		return nil
	}
	fmt.Fprintln(out)
	w = newTable(out)
	fmt.Fprintln(w, "Rate\tBase\tVAT\tEntries\t")
	for _, b := range l.BreakdownByRate {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t\n", ap.Percent(b.Rate), ap.Amount(b.Base), ap.Amount(b.VAT), b.Count)
	}
	return w.Flush()
}

func printStatistics(out io.Writer, ap *amountPrinter, stats *fiscal.AnnualStatistics) error {
	fmt.Fprintf(out, "Statistics %d\n\n", stats.Year)

	w := newTable(out)
	fmt.Fprintln(w, "Quarter\tCharged\tSupported\tNet VAT\tResult\tGrowth\t")
	for _, q := range stats.Quarters {
		growth := "-"
		if q.GrowthRate != nil {
			growth = ap.Percent(*q.GrowthRate)
		}
		fmt.Fprintf(w, "Q%d\t%s\t%s\t%s\t%s\t%s\t\n",
			q.Quarter,
			ap.Amount(q.ChargedTotal),
			ap.Amount(q.SupportedTotal),
			ap.Amount(q.Liquidation.NetVAT),
			q.Liquidation.Result,
			growth,
		)
	}
	fmt.Fprintf(w, "Year\t%s\t%s\t%s\t\t\t\n",
		ap.Amount(stats.ChargedTotal),
		ap.Amount(stats.SupportedTotal),
		ap.Amount(stats.NetVAT),
	)
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nTo pay: %s  To refund: %s\n", ap.Money(stats.TotalToPay), ap.Money(stats.TotalToRefund))
	return nil
}

func printOwnerSummary(out io.Writer, ap *amountPrinter, report *fiscal.OwnerSummaryReport) error {
	fmt.Fprintf(out, "Owner summary, %s\n\n", report.Period.Label())

	w := newTable(out)
	fmt.Fprintln(w, "Owner\tIssued\tReceived\tExpenses\tNet balance\tNet VAT\tRecords\t")
	for _, o := range report.Owners {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t\n",
			o.OwnerName,
			ap.Amount(o.Issued.Base),
			ap.Amount(o.Received.Base),
			ap.Amount(o.Expenses.Base),
			ap.Amount(o.NetBalance),
			ap.Amount(o.NetVAT),
			o.RecordCount,
		)
	}
	t := report.OverallTotal
	fmt.Fprintf(w, "Total\t%s\t%s\t%s\t%s\t%s\t%d\t\n",
		ap.Amount(t.Issued.Base),
		ap.Amount(t.Received.Base),
		ap.Amount(t.Expenses.Base),
		ap.Amount(t.NetBalance),
		ap.Amount(t.NetVAT),
		t.RecordCount,
	)
	if err := w.Flush(); err != nil {
		return err
	}
	if report.UnallocatedCount > 0 {
		fmt.Fprintf(out, "\n%d record(s) without an owner are not allocated\n", report.UnallocatedCount)
	}
	return nil
}
