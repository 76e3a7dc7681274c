package fiscal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propdesk/backend/internal/domain/fiscal"
	"github.com/propdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type reportServiceFixture struct {
	records        *MockRecordRepository
	owners         *MockOwnerRoster
	ownership      *MockOwnershipRepository
	counterparties *MockCounterpartyDirectory
	service        *ReportService
}

func newReportServiceFixture(logger *zap.Logger) *reportServiceFixture {
	f := &reportServiceFixture{
		records:        new(MockRecordRepository),
		owners:         new(MockOwnerRoster),
		ownership:      new(MockOwnershipRepository),
		counterparties: new(MockCounterpartyDirectory),
	}
	f.service = NewReportService(f.records, f.owners, f.ownership, f.counterparties, logger)
	return f
}

type recordSpec struct {
	kind         fiscal.RecordKind
	number       string
	on           time.Time
	base         string
	vat          string
	deductible   bool
	counterparty uuid.UUID
	property     *uuid.UUID
}

func buildRecord(t *testing.T, s recordSpec) fiscal.FiscalRecord {
	t.Helper()
	property := s.property
	if property == nil && s.kind == fiscal.KindIssued {
		id := uuid.New()
		property = &id
	}
	if s.counterparty == uuid.Nil && s.kind != fiscal.KindExpense {
		s.counterparty = uuid.New()
	}
	r, err := fiscal.NewFiscalRecord(s.number, fiscal.RecordInput{
		Kind:           s.kind,
		CounterpartyID: s.counterparty,
		PropertyID:     property,
		RecordDate:     s.on,
		BaseAmount:     dec(s.base),
		VATRate:        dec(s.vat),
		Deductible:     s.deductible,
	}, nil)
	require.NoError(t, err)
	r.ClearDomainEvents()
	return *r
}

func TestReportService_GenerateLedger(t *testing.T) {
	ctx := context.Background()
	q3 := fiscal.QuarterPeriod(2025, 3)
	from, to := q3.Range()

	t.Run("builds from records and names counterparties", func(t *testing.T) {
		f := newReportServiceFixture(nil)
		acme := uuid.New()
		records := []fiscal.FiscalRecord{
			buildRecord(t, recordSpec{kind: fiscal.KindIssued, number: "FAC-0002", on: date(2025, time.August, 1), base: "500", vat: "21", counterparty: acme}),
			buildRecord(t, recordSpec{kind: fiscal.KindIssued, number: "FAC-0001", on: date(2025, time.July, 1), base: "1000", vat: "21", counterparty: acme}),
		}

		f.records.On("FindForPeriod", mock.Anything, []fiscal.RecordKind{fiscal.KindIssued}, from, to).Return(records, nil)
		f.counterparties.On("FindNames", mock.Anything, []uuid.UUID{acme}).Return(map[uuid.UUID]string{acme: "Acme"}, nil)

		ledger, err := f.service.GenerateLedger(ctx, fiscal.BookCharged, q3)
		require.NoError(t, err)
		require.Len(t, ledger.Entries, 2)
		assert.Equal(t, "FAC-0001", ledger.Entries[0].RecordNumber)
		assert.Equal(t, 1, ledger.Entries[0].Index)
		assert.Equal(t, "Acme", ledger.Entries[1].CounterpartyName)
		assert.True(t, ledger.Totals.Base.Equal(dec("1500")))
		assert.True(t, ledger.Totals.VAT.Equal(dec("315")))
		f.counterparties.AssertExpectations(t)
	})

	t.Run("served from cache", func(t *testing.T) {
		f := newReportServiceFixture(nil)
		cache := new(MockLedgerCache)
		f.service.SetLedgerCache(cache)
		cached := &fiscal.Ledger{Book: fiscal.BookCharged, Period: q3}

		cache.On("Get", mock.Anything, fiscal.BookCharged, q3).Return(cached, true, nil)

		ledger, err := f.service.GenerateLedger(ctx, fiscal.BookCharged, q3)
		require.NoError(t, err)
		assert.Same(t, cached, ledger)
		f.records.AssertNotCalled(t, "FindForPeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache miss stores the result", func(t *testing.T) {
		f := newReportServiceFixture(nil)
		cache := new(MockLedgerCache)
		f.service.SetLedgerCache(cache)

		cache.On("Get", mock.Anything, fiscal.BookSupported, q3).Return(nil, false, nil)
		cache.On("Generation", mock.Anything, 2025).Return(int64(4), nil)
		f.records.On("FindForPeriod", mock.Anything, []fiscal.RecordKind{fiscal.KindReceived, fiscal.KindExpense}, from, to).
			Return([]fiscal.FiscalRecord{}, nil)
		cache.On("Set", mock.Anything, mock.MatchedBy(func(l *fiscal.Ledger) bool {
			return l.Book == fiscal.BookSupported && len(l.Entries) == 0
		}), int64(4)).Return(true, nil)

		ledger, err := f.service.GenerateLedger(ctx, fiscal.BookSupported, q3)
		require.NoError(t, err)
		assert.Empty(t, ledger.Entries)
		cache.AssertExpectations(t)
		f.counterparties.AssertNotCalled(t, "FindNames", mock.Anything, mock.Anything)
	})

	t.Run("cache errors degrade to a fresh build", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		f := newReportServiceFixture(zap.New(core))
		cache := new(MockLedgerCache)
		f.service.SetLedgerCache(cache)

		cache.On("Get", mock.Anything, fiscal.BookCharged, q3).Return(nil, false, errors.New("connection refused"))
		cache.On("Generation", mock.Anything, 2025).Return(int64(0), nil)
		cache.On("Set", mock.Anything, mock.Anything, int64(0)).Return(false, errors.New("connection refused"))
		f.records.On("FindForPeriod", mock.Anything, mock.Anything, from, to).Return([]fiscal.FiscalRecord{}, nil)

		_, err := f.service.GenerateLedger(ctx, fiscal.BookCharged, q3)
		require.NoError(t, err)
		assert.Equal(t, 1, logs.FilterMessage("ledger cache read failed").Len())
		assert.Equal(t, 1, logs.FilterMessage("ledger cache write failed").Len())
	})

	t.Run("unreadable generation skips the cache write", func(t *testing.T) {
		f := newReportServiceFixture(nil)
		cache := new(MockLedgerCache)
		f.service.SetLedgerCache(cache)

		cache.On("Get", mock.Anything, fiscal.BookCharged, q3).Return(nil, false, nil)
		cache.On("Generation", mock.Anything, 2025).Return(int64(0), errors.New("connection refused"))
		f.records.On("FindForPeriod", mock.Anything, mock.Anything, from, to).Return([]fiscal.FiscalRecord{}, nil)

		_, err := f.service.GenerateLedger(ctx, fiscal.BookCharged, q3)
		require.NoError(t, err)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown book", func(t *testing.T) {
		f := newReportServiceFixture(nil)
		_, err := f.service.GenerateLedger(ctx, fiscal.BookType("OTHER"), q3)
		requireDomainError(t, err, shared.KindValidation, "INVALID_BOOK")
	})

	t.Run("invalid quarter", func(t *testing.T) {
		f := newReportServiceFixture(nil)
		_, err := f.service.GenerateLedger(ctx, fiscal.BookCharged, fiscal.QuarterPeriod(2025, 5))
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})
}

func TestReportService_GenerateOwnerSummary(t *testing.T) {
	ctx := context.Background()
	f := newReportServiceFixture(nil)
	period := fiscal.MonthPeriod(2025, 7)
	from, to := period.Range()

	marta := uuid.New()
	property, unlinked := uuid.New(), uuid.New()
	records := []fiscal.FiscalRecord{
		buildRecord(t, recordSpec{kind: fiscal.KindIssued, number: "FAC-0001", on: date(2025, time.July, 1), base: "1000", vat: "21", property: &property}),
		buildRecord(t, recordSpec{kind: fiscal.KindExpense, number: "GAS-0001", on: date(2025, time.July, 3), base: "100", vat: "21", deductible: true}),
		buildRecord(t, recordSpec{kind: fiscal.KindReceived, number: "FRE-0001", on: date(2025, time.July, 4), base: "300", vat: "21", property: &unlinked}),
	}

	f.records.On("FindForPeriod", mock.Anything, []fiscal.RecordKind(nil), from, to).Return(records, nil)
	f.owners.On("ListOwners", mock.Anything).Return([]fiscal.Owner{{ID: marta, Name: "Marta"}}, nil)
	f.ownership.On("FindAll", mock.Anything).Return([]fiscal.OwnershipLink{
		{PropertyID: property, OwnerID: marta, Share: dec("100")},
	}, nil)

	report, err := f.service.GenerateOwnerSummary(ctx, period)
	require.NoError(t, err)
	require.Len(t, report.Owners, 1)
	assert.Equal(t, "Marta", report.Owners[0].OwnerName)
	assert.True(t, report.Owners[0].Issued.Base.Equal(dec("1000")))
	assert.True(t, report.Owners[0].Issued.VAT.Equal(dec("210")))
	assert.True(t, report.Owners[0].Expenses.Base.Equal(dec("100")))
	assert.True(t, report.Owners[0].DeductibleVAT.Equal(dec("21")))
	assert.True(t, report.Owners[0].Received.Base.IsZero())
	assert.Equal(t, 1, report.UnallocatedCount)
	assert.True(t, report.OverallTotal.Issued.Base.Equal(dec("1000")))
}

func TestReportService_GenerateLiquidation(t *testing.T) {
	ctx := context.Background()
	f := newReportServiceFixture(nil)
	q3 := fiscal.QuarterPeriod(2025, 3)
	from, to := q3.Range()

	f.records.On("FindForPeriod", mock.Anything, []fiscal.RecordKind{fiscal.KindIssued}, from, to).Return([]fiscal.FiscalRecord{
		buildRecord(t, recordSpec{kind: fiscal.KindIssued, number: "FAC-0001", on: date(2025, time.July, 1), base: "1000", vat: "21"}),
	}, nil)
	f.records.On("FindForPeriod", mock.Anything, []fiscal.RecordKind{fiscal.KindReceived, fiscal.KindExpense}, from, to).Return([]fiscal.FiscalRecord{
		buildRecord(t, recordSpec{kind: fiscal.KindReceived, number: "FRE-0001", on: date(2025, time.July, 2), base: "400", vat: "21", deductible: true}),
		buildRecord(t, recordSpec{kind: fiscal.KindExpense, number: "GAS-0001", on: date(2025, time.July, 3), base: "100", vat: "21"}),
	}, nil)
	f.counterparties.On("FindNames", mock.Anything, mock.Anything).Return(map[uuid.UUID]string{}, nil)

	report, err := f.service.GenerateLiquidation(ctx, q3)
	require.NoError(t, err)
	assert.Equal(t, "2025-Q3", report.Label)
	assert.True(t, report.ChargedVAT.Equal(dec("210")))
	assert.True(t, report.DeductibleVAT.Equal(dec("84")))
	assert.True(t, report.NetVAT.Equal(dec("126")))
	assert.Equal(t, fiscal.ResultToPay, report.Result)
	assert.True(t, report.SupportedTotals.VAT.Equal(dec("105")))
	assert.Equal(t, 1, report.DeductibleTotals.Count)
}

func TestReportService_GenerateAnnualStatistics(t *testing.T) {
	ctx := context.Background()
	f := newReportServiceFixture(nil)

	q1From, q1To := fiscal.QuarterPeriod(2025, 1).Range()
	f.records.On("FindForPeriod", mock.Anything, []fiscal.RecordKind{fiscal.KindIssued}, q1From, q1To).Return([]fiscal.FiscalRecord{
		buildRecord(t, recordSpec{kind: fiscal.KindIssued, number: "FAC-0001", on: date(2025, time.February, 1), base: "1000", vat: "21"}),
	}, nil)
	f.records.On("FindForPeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]fiscal.FiscalRecord{}, nil)
	f.counterparties.On("FindNames", mock.Anything, mock.Anything).Return(map[uuid.UUID]string{}, nil)

	stats, err := f.service.GenerateAnnualStatistics(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 2025, stats.Year)
	require.Len(t, stats.Quarters, 4)
	assert.True(t, stats.Quarters[0].ChargedBase.Equal(dec("1000")))
	assert.True(t, stats.ChargedVAT.Equal(dec("210")))
	f.records.AssertNumberOfCalls(t, "FindForPeriod", 8)
}

func TestReportService_ExportLedger(t *testing.T) {
	ctx := context.Background()
	q3 := fiscal.QuarterPeriod(2025, 3)

	t.Run("not configured", func(t *testing.T) {
		f := newReportServiceFixture(nil)
		_, err := f.service.ExportLedger(ctx, fiscal.BookCharged, q3)
		requireDomainError(t, err, shared.KindBusiness, "EXPORT_UNAVAILABLE")
	})

	t.Run("renders and archives", func(t *testing.T) {
		f := newReportServiceFixture(nil)
		exporter := new(MockLedgerExporter)
		archive := new(MockReportArchive)
		f.service.SetExporter(exporter)
		f.service.SetArchive(archive)

		f.records.On("FindForPeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]fiscal.FiscalRecord{}, nil)
		exporter.On("Write", mock.Anything).Return(nil)
		archive.On("Put", mock.Anything, "2025/vat-book-charged-2025-Q3.xlsx", exporter.ContentType(), []byte("workbook")).
			Return("https://reports.example.com/2025/vat-book-charged-2025-Q3.xlsx", nil)

		result, err := f.service.ExportLedger(ctx, fiscal.BookCharged, q3)
		require.NoError(t, err)
		assert.Equal(t, "vat-book-charged-2025-Q3.xlsx", result.FileName)
		assert.Equal(t, []byte("workbook"), result.Content)
		assert.Equal(t, "https://reports.example.com/2025/vat-book-charged-2025-Q3.xlsx", result.Location)
		archive.AssertExpectations(t)
	})

	t.Run("archive failure still returns the file", func(t *testing.T) {
		f := newReportServiceFixture(nil)
		exporter := new(MockLedgerExporter)
		archive := new(MockReportArchive)
		f.service.SetExporter(exporter)
		f.service.SetArchive(archive)

		f.records.On("FindForPeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]fiscal.FiscalRecord{}, nil)
		exporter.On("Write", mock.Anything).Return(nil)
		archive.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("access denied"))

		result, err := f.service.ExportLedger(ctx, fiscal.BookSupported, fiscal.MonthPeriod(2025, 8))
		require.NoError(t, err)
		assert.Equal(t, "vat-book-supported-2025-08.xlsx", result.FileName)
		assert.Empty(t, result.Location)
	})

	t.Run("render failure", func(t *testing.T) {
		f := newReportServiceFixture(nil)
		exporter := new(MockLedgerExporter)
		f.service.SetExporter(exporter)

		f.records.On("FindForPeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]fiscal.FiscalRecord{}, nil)
		exporter.On("Write", mock.Anything).Return(errors.New("disk full"))

		_, err := f.service.ExportLedger(ctx, fiscal.BookCharged, q3)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to render VAT book")
	})
}

func TestLedgerFileName(t *testing.T) {
	assert.Equal(t, "vat-book-charged-2025.xlsx", LedgerFileName(fiscal.BookCharged, fiscal.YearPeriod(2025), ".xlsx"))
	assert.Equal(t, "vat-book-supported-2025-Q1.csv", LedgerFileName(fiscal.BookSupported, fiscal.QuarterPeriod(2025, 1), "csv"))
}
