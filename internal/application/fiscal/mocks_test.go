package fiscal

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/propdesk/backend/internal/domain/fiscal"
	"github.com/propdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockRecordRepository is a mock implementation of fiscal.RecordRepository
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*fiscal.FiscalRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fiscal.FiscalRecord), args.Error(1)
}

func (m *MockRecordRepository) FindAll(ctx context.Context, filter fiscal.RecordFilter) ([]fiscal.FiscalRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fiscal.FiscalRecord), args.Error(1)
}

func (m *MockRecordRepository) Count(ctx context.Context, filter fiscal.RecordFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecordRepository) FindLastRecordNumber(ctx context.Context, space fiscal.NumberingSpace) (string, error) {
	args := m.Called(ctx, space)
	return args.String(0), args.Error(1)
}

func (m *MockRecordRepository) FindExistingForPeriod(ctx context.Context, key fiscal.PeriodKey) (*fiscal.FiscalRecord, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fiscal.FiscalRecord), args.Error(1)
}

func (m *MockRecordRepository) FindByOriginal(ctx context.Context, originalID uuid.UUID) ([]fiscal.FiscalRecord, error) {
	args := m.Called(ctx, originalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fiscal.FiscalRecord), args.Error(1)
}

func (m *MockRecordRepository) ExistsByRecordNumber(ctx context.Context, kind fiscal.RecordKind, number string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, kind, number, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecordRepository) FindForPeriod(ctx context.Context, kinds []fiscal.RecordKind, from, to time.Time) ([]fiscal.FiscalRecord, error) {
	args := m.Called(ctx, kinds, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fiscal.FiscalRecord), args.Error(1)
}

func (m *MockRecordRepository) Save(ctx context.Context, record *fiscal.FiscalRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRecordRepository) SaveWithLock(ctx context.Context, record *fiscal.FiscalRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// MockOwnershipRepository is a mock implementation of fiscal.OwnershipRepository
type MockOwnershipRepository struct {
	mock.Mock
}

func (m *MockOwnershipRepository) GetOwnershipShare(ctx context.Context, propertyID, ownerID uuid.UUID) (*decimal.Decimal, error) {
	args := m.Called(ctx, propertyID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*decimal.Decimal), args.Error(1)
}

func (m *MockOwnershipRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]fiscal.OwnershipLink, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fiscal.OwnershipLink), args.Error(1)
}

func (m *MockOwnershipRepository) FindAll(ctx context.Context) ([]fiscal.OwnershipLink, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fiscal.OwnershipLink), args.Error(1)
}

// MockOwnerRoster is a mock implementation of fiscal.OwnerRoster
type MockOwnerRoster struct {
	mock.Mock
}

func (m *MockOwnerRoster) ListOwners(ctx context.Context) ([]fiscal.Owner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fiscal.Owner), args.Error(1)
}

// MockCounterpartyDirectory is a mock implementation of fiscal.CounterpartyDirectory
type MockCounterpartyDirectory struct {
	mock.Mock
}

func (m *MockCounterpartyDirectory) FindCounterparty(ctx context.Context, id uuid.UUID) (*fiscal.Counterparty, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fiscal.Counterparty), args.Error(1)
}

func (m *MockCounterpartyDirectory) FindNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]string), args.Error(1)
}

// MockSequenceGenerator is a mock implementation of fiscal.SequenceGenerator
type MockSequenceGenerator struct {
	mock.Mock
}

func (m *MockSequenceGenerator) Next(ctx context.Context, space fiscal.NumberingSpace) (string, error) {
	args := m.Called(ctx, space)
	return args.String(0), args.Error(1)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// MockLedgerCache is a mock implementation of LedgerCache
type MockLedgerCache struct {
	mock.Mock
}

func (m *MockLedgerCache) Get(ctx context.Context, book fiscal.BookType, period fiscal.PeriodFilter) (*fiscal.Ledger, bool, error) {
	args := m.Called(ctx, book, period)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*fiscal.Ledger), args.Bool(1), args.Error(2)
}

func (m *MockLedgerCache) Generation(ctx context.Context, year int) (int64, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerCache) Set(ctx context.Context, ledger *fiscal.Ledger, generation int64) (bool, error) {
	args := m.Called(ctx, ledger, generation)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerCache) InvalidateYears(ctx context.Context, years ...int) error {
	args := m.Called(ctx, years)
	return args.Error(0)
}

// MockLedgerExporter is a mock implementation of LedgerExporter
type MockLedgerExporter struct {
	mock.Mock
}

func (m *MockLedgerExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (m *MockLedgerExporter) FileExtension() string {
	return "xlsx"
}

func (m *MockLedgerExporter) Write(w io.Writer, ledgers ...*fiscal.Ledger) error {
	args := m.Called(ledgers)
	if err := args.Error(0); err != nil {
		return err
	}
	_, err := w.Write([]byte("workbook"))
	return err
}

// MockReportArchive is a mock implementation of ReportArchive
type MockReportArchive struct {
	mock.Mock
}

func (m *MockReportArchive) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	args := m.Called(ctx, key, contentType, body)
	return args.String(0), args.Error(1)
}

// recordingLocker runs fn inline and remembers the keys it was asked for
type recordingLocker struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (l *recordingLocker) WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	l.keys = append(l.keys, key)
	l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	return fn(ctx)
}
