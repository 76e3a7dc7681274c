package fiscal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propdesk/backend/internal/domain/fiscal"
	"github.com/propdesk/backend/internal/domain/shared"
	"github.com/propdesk/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const reportServiceName = "ReportService"

// LedgerCache stores generated VAT books until a record of their year changes.
// Generation is read before a book is built and passed to Set, which skips
// the write when the year was invalidated in between.
type LedgerCache interface {
	Get(ctx context.Context, book fiscal.BookType, period fiscal.PeriodFilter) (*fiscal.Ledger, bool, error)
	Generation(ctx context.Context, year int) (int64, error)
	Set(ctx context.Context, ledger *fiscal.Ledger, generation int64) (bool, error)
	InvalidateYears(ctx context.Context, years ...int) error
}

// LedgerExporter renders VAT books into a document
type LedgerExporter interface {
	ContentType() string
	FileExtension() string
	Write(w io.Writer, ledgers ...*fiscal.Ledger) error
}

// ReportArchive keeps a copy of exported documents
type ReportArchive interface {
	// Put stores body under key and returns a location the caller can share
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// ReportService loads records and reference data and runs the VAT book,
// owner summary, liquidation and statistics calculations over them.
type ReportService struct {
	records        fiscal.RecordRepository
	owners         fiscal.OwnerRoster
	ownership      fiscal.OwnershipRepository
	counterparties fiscal.CounterpartyDirectory
	logger         *zap.Logger
	cache          LedgerCache
	exporter       LedgerExporter
	archive        ReportArchive
	metrics        *telemetry.FiscalMetrics
}

// NewReportService creates a new ReportService
func NewReportService(
	records fiscal.RecordRepository,
	owners fiscal.OwnerRoster,
	ownership fiscal.OwnershipRepository,
	counterparties fiscal.CounterpartyDirectory,
	logger *zap.Logger,
) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		records:        records,
		owners:         owners,
		ownership:      ownership,
		counterparties: counterparties,
		logger:         logger,
	}
}

// SetLedgerCache enables ledger caching
func (s *ReportService) SetLedgerCache(cache LedgerCache) {
	s.cache = cache
}

// SetExporter sets the VAT book exporter
func (s *ReportService) SetExporter(exporter LedgerExporter) {
	s.exporter = exporter
}

// SetArchive sets where exported books are archived
func (s *ReportService) SetArchive(archive ReportArchive) {
	s.archive = archive
}

// SetFiscalMetrics sets the metrics recorder
func (s *ReportService) SetFiscalMetrics(m *telemetry.FiscalMetrics) {
	s.metrics = m
}

// GenerateLedger builds the VAT book of the given type for period
func (s *ReportService) GenerateLedger(ctx context.Context, book fiscal.BookType, period fiscal.PeriodFilter) (*fiscal.Ledger, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, reportServiceName, "GenerateLedger",
		telemetry.WithAttribute(telemetry.SpanAttrBook, string(book)),
		telemetry.WithAttribute(telemetry.SpanAttrPeriod, period.Label()))
	defer span.End()

	var (
		ledger *fiscal.Ledger
		err    error
	)
	labels := telemetry.OperationLabels("generate_ledger", map[string]string{telemetry.ProfilingLabelBook: string(book)})
	telemetry.WithProfilingLabels(ctx, labels, func(ctx context.Context) {
		ledger, err = s.ledger(ctx, book, period)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrEntryCount, len(ledger.Entries))
	return ledger, nil
}

// ledger serves from the cache when possible
func (s *ReportService) ledger(ctx context.Context, book fiscal.BookType, period fiscal.PeriodFilter) (*fiscal.Ledger, error) {
	if !book.IsValid() {
		return nil, shared.NewValidationError("INVALID_BOOK", fmt.Sprintf("Unknown VAT book %q", book))
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	cacheable := false
	var generation int64
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, book, period)
		if err != nil {
			s.logger.Warn("ledger cache read failed", zap.String("book", string(book)), zap.Error(err))
		}
		s.metrics.LedgerCacheLookup(ctx, string(book), ok)
		if ok {
			return cached, nil
		}
		generation, err = s.cache.Generation(ctx, period.Year)
		if err != nil {
			s.logger.Warn("ledger cache generation read failed", zap.Int("year", period.Year), zap.Error(err))
		} else {
			cacheable = true
		}
	}

	start := time.Now()
	from, to := period.Range()
	records, err := s.records.FindForPeriod(ctx, book.Kinds(), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	names, err := s.counterpartyNames(ctx, records)
	if err != nil {
		return nil, err
	}

	ledger, err := fiscal.GenerateLedger(book, records, period, names)
	if err != nil {
		return nil, err
	}
	s.metrics.ReportGenerated(ctx, "ledger", time.Since(start))

	if cacheable {
		stored, err := s.cache.Set(ctx, ledger, generation)
		switch {
		case err != nil:
			s.logger.Warn("ledger cache write failed", zap.String("book", string(book)), zap.Error(err))
		case !stored:
			s.logger.Debug("ledger not cached, year changed while building",
				zap.String("book", string(book)), zap.String("period", period.Label()))
		}
	}
	return ledger, nil
}

// GenerateOwnerSummary consolidates the period per owner
func (s *ReportService) GenerateOwnerSummary(ctx context.Context, period fiscal.PeriodFilter) (*fiscal.OwnerSummaryReport, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, reportServiceName, "GenerateOwnerSummary",
		telemetry.WithAttribute(telemetry.SpanAttrPeriod, period.Label()))
	defer span.End()

	if err := period.Validate(); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	start := time.Now()
	from, to := period.Range()
	records, err := s.records.FindForPeriod(ctx, nil, from, to)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	owners, err := s.owners.ListOwners(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load owners: %w", err)
	}
	links, err := s.ownership.FindAll(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load ownership links: %w", err)
	}

	report, err := fiscal.GenerateOwnerSummary(records, owners, links, period)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.metrics.ReportGenerated(ctx, "owner_summary", time.Since(start))
	telemetry.SetAttribute(span, telemetry.SpanAttrOwnerCount, len(report.Owners))

	if report.UnallocatedCount > 0 {
		s.logger.Info("records left out of owner summary",
			zap.String("period", period.Label()),
			zap.Int("unallocated", report.UnallocatedCount),
		)
	}
	return report, nil
}

// GenerateLiquidation settles VAT for period from both books
func (s *ReportService) GenerateLiquidation(ctx context.Context, period fiscal.PeriodFilter) (*LiquidationReport, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, reportServiceName, "GenerateLiquidation",
		telemetry.WithAttribute(telemetry.SpanAttrPeriod, period.Label()))
	defer span.End()

	charged, supported, err := s.books(ctx, period)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return &LiquidationReport{
		Period:           period,
		Label:            period.Label(),
		ChargedTotals:    charged.Totals,
		SupportedTotals:  supported.Totals,
		DeductibleTotals: supported.DeductibleTotals,
		Liquidation:      fiscal.GenerateLiquidation(charged, supported),
	}, nil
}

// GenerateAnnualStatistics builds per-quarter liquidations and growth for year
func (s *ReportService) GenerateAnnualStatistics(ctx context.Context, year int) (*fiscal.AnnualStatistics, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, reportServiceName, "GenerateAnnualStatistics",
		telemetry.WithAttribute(telemetry.SpanAttrPeriod, fiscal.YearPeriod(year).Label()))
	defer span.End()

	if err := fiscal.YearPeriod(year).Validate(); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	start := time.Now()
	var quarters [4]fiscal.QuarterBooks
	for q := 1; q <= 4; q++ {
		charged, supported, err := s.books(ctx, fiscal.QuarterPeriod(year, q))
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		quarters[q-1] = fiscal.QuarterBooks{Charged: charged, Supported: supported}
	}

	stats := fiscal.BuildAnnualStatistics(year, quarters)
	s.metrics.ReportGenerated(ctx, "annual_statistics", time.Since(start))
	return &stats, nil
}

// ExportLedger renders the VAT book and archives it when an archive is configured
func (s *ReportService) ExportLedger(ctx context.Context, book fiscal.BookType, period fiscal.PeriodFilter) (*ExportResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, reportServiceName, "ExportLedger",
		telemetry.WithAttribute(telemetry.SpanAttrBook, string(book)),
		telemetry.WithAttribute(telemetry.SpanAttrPeriod, period.Label()))
	defer span.End()

	if s.exporter == nil {
		err := shared.NewDomainError("EXPORT_UNAVAILABLE", "VAT book export is not configured")
		telemetry.RecordError(span, err)
		return nil, err
	}

	ledger, err := s.ledger(ctx, book, period)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	start := time.Now()
	var buf bytes.Buffer
	if err := s.exporter.Write(&buf, ledger); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to render VAT book: %w", err)
	}
	s.metrics.ReportGenerated(ctx, "ledger_export", time.Since(start))

	result := &ExportResult{
		FileName:    LedgerFileName(book, period, s.exporter.FileExtension()),
		ContentType: s.exporter.ContentType(),
		Content:     buf.Bytes(),
	}

	if s.archive != nil {
		key := fmt.Sprintf("%d/%s", period.Year, result.FileName)
		location, err := s.archive.Put(ctx, key, result.ContentType, result.Content)
		if err != nil {
			// The export itself succeeded; the caller still gets the file.
			s.logger.Error("failed to archive VAT book",
				zap.String("key", key),
				zap.Error(err),
			)
		} else {
			result.Location = location
		}
	}

	s.logger.Info("VAT book exported",
		zap.String("book", string(book)),
		zap.String("period", period.Label()),
		zap.Int("entries", len(ledger.Entries)),
		zap.Int("bytes", len(result.Content)),
	)
	return result, nil
}

// LedgerFileName returns e.g. vat-book-charged-2025-Q3.xlsx
func LedgerFileName(book fiscal.BookType, period fiscal.PeriodFilter, ext string) string {
	return fmt.Sprintf("vat-book-%s-%s.%s", strings.ToLower(string(book)), period.Label(), strings.TrimPrefix(ext, "."))
}

func (s *ReportService) books(ctx context.Context, period fiscal.PeriodFilter) (*fiscal.Ledger, *fiscal.Ledger, error) {
	charged, err := s.ledger(ctx, fiscal.BookCharged, period)
	if err != nil {
		return nil, nil, err
	}
	supported, err := s.ledger(ctx, fiscal.BookSupported, period)
	if err != nil {
		return nil, nil, err
	}
	return charged, supported, nil
}

func (s *ReportService) counterpartyNames(ctx context.Context, records []fiscal.FiscalRecord) (map[uuid.UUID]string, error) {
	if s.counterparties == nil || len(records) == 0 {
		return nil, nil
	}
	seen := make(map[uuid.UUID]struct{}, len(records))
	ids := make([]uuid.UUID, 0, len(records))
	for i := range records {
		id := records[i].CounterpartyID
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	names, err := s.counterparties.FindNames(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load counterparty names: %w", err)
	}
	return names, nil
}
