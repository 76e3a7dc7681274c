package main

import (
	"fmt"
	"os"
	"strings"

	fiscalapp "github.com/propdesk/backend/internal/application/fiscal"
	"github.com/propdesk/backend/internal/domain/fiscal"
	"github.com/propdesk/backend/internal/infrastructure/config"
	"github.com/propdesk/backend/internal/infrastructure/export"
	"github.com/propdesk/backend/internal/infrastructure/logger"
	"github.com/propdesk/backend/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "vatbook",
	Short: "Print and export VAT books from the fiscal records database",
	Long: `vatbook reads fiscal records with the same configuration as the server
(config.toml and PROPDESK_* environment variables) and renders the charged and
supported VAT books, quarterly liquidations, annual statistics and owner
summaries on the terminal or as workbooks.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("lang", "es", "Language tag used to format amounts (e.g. es, en, de)")
	rootCmd.PersistentFlags().Bool("json", false, "Print JSON instead of a table")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
}

// session holds what a command needs and is closed when the command ends
type session struct {
	log      *zap.Logger
	db       *persistence.Database
	reports  *fiscalapp.ReportService
	currency string
}

func (s *session) Close() {
	if err := s.db.Close(); err != nil {
		s.log.Warn("Error closing database", zap.Error(err))
	}
	_ = logger.Sync(s.log)
}

// openSession loads configuration and wires a report service over the database.
// Logs go to stderr so stdout carries only the report.
func openSession(cmd *cobra.Command) (*session, error) {
	level, _ := cmd.Flags().GetString("log-level")
	log, err := logger.New(&logger.Config{Level: level, Format: "console", Output: "stderr"})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := persistence.NewDatabaseWithOptions(&cfg.Database, persistence.Options{
		Logger:   log,
		LogLevel: gormlogger.Warn,
	})
	if err != nil {
		return nil, err
	}

	records := persistence.NewGormRecordRepository(db.DB)
	reports := fiscalapp.NewReportService(
		records,
		persistence.NewGormOwnerRepository(db.DB),
		persistence.NewGormOwnershipRepository(db.DB),
		persistence.NewGormCounterpartyRepository(db.DB),
		log,
	)
	reports.SetExporter(export.NewLedgerWorkbook(cfg.Fiscal.Currency))

	return &session{log: log, db: db, reports: reports, currency: cfg.Fiscal.Currency}, nil
}

// periodFlags registers --year, --quarter and --month on cmd
func periodFlags(cmd *cobra.Command) {
	cmd.Flags().Int("year", 0, "Calendar year (required)")
	cmd.Flags().Int("quarter", 0, "Quarter 1-4")
	cmd.Flags().Int("month", 0, "Month 1-12, takes precedence over --quarter")
	_ = cmd.MarkFlagRequired("year")
}

// periodFromFlags reads the flags registered by periodFlags
func periodFromFlags(cmd *cobra.Command) (fiscal.PeriodFilter, error) {
	year, _ := cmd.Flags().GetInt("year")
	quarter, _ := cmd.Flags().GetInt("quarter")
	month, _ := cmd.Flags().GetInt("month")

	period := fiscal.YearPeriod(year)
	if cmd.Flags().Changed("quarter") {
		period.Quarter = &quarter
	}
	if cmd.Flags().Changed("month") {
		period.Month = &month
	}
	return period, period.Validate()
}

// parseBook accepts charged/supported in any case
func parseBook(arg string) (fiscal.BookType, error) {
	book := fiscal.BookType(strings.ToUpper(arg))
	if !book.IsValid() {
		return "", fmt.Errorf("unknown book %q: use charged or supported", arg)
	}
	return book, nil
}
