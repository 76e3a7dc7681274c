package fiscal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propdesk/backend/internal/domain/fiscal"
	"github.com/propdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordServiceFixture struct {
	records        *MockRecordRepository
	ownership      *MockOwnershipRepository
	counterparties *MockCounterpartyDirectory
	sequence       *MockSequenceGenerator
	publisher      *MockEventPublisher
	locker         *recordingLocker
	service        *RecordService
}

func newRecordServiceFixture(t *testing.T, logger *zap.Logger) *recordServiceFixture {
	t.Helper()
	f := &recordServiceFixture{
		records:        new(MockRecordRepository),
		ownership:      new(MockOwnershipRepository),
		counterparties: new(MockCounterpartyDirectory),
		sequence:       new(MockSequenceGenerator),
		publisher:      new(MockEventPublisher),
		locker:         &recordingLocker{},
	}
	f.service = NewRecordService(f.records, f.ownership, f.counterparties, f.sequence, f.locker,
		DefaultRecordSettings(), logger)
	f.service.SetEventPublisher(f.publisher)
	f.service.now = func() time.Time { return date(2025, time.August, 20) }
	return f
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireDomainError(t *testing.T, err error, kind shared.ErrorKind, code string) {
	t.Helper()
	require.Error(t, err)
	var de *shared.DomainError
	require.True(t, errors.As(err, &de), "expected a domain error, got %v", err)
	assert.Equal(t, kind, de.Kind)
	assert.Equal(t, code, de.Code)
}

func issuedRequest(counterparty, property, owner uuid.UUID) CreateRecordRequest {
	return CreateRecordRequest{
		Kind:            fiscal.KindIssued,
		CounterpartyID:  counterparty,
		PropertyID:      &property,
		OwnerID:         &owner,
		RecordDate:      date(2025, time.July, 5),
		BaseAmount:      dec("1000"),
		VATRate:         dec("21"),
		WithholdingRate: dec("15"),
		Concept:         "July rent",
	}
}

// existingIssued builds a persisted pending record with its events cleared
func existingIssued(t *testing.T, number string) *fiscal.FiscalRecord {
	t.Helper()
	property := uuid.New()
	record, err := fiscal.NewFiscalRecord(number, fiscal.RecordInput{
		Kind:            fiscal.KindIssued,
		CounterpartyID:  uuid.New(),
		PropertyID:      &property,
		RecordDate:      date(2025, time.July, 5),
		DueDate:         datePtr(2025, time.August, 4),
		BaseAmount:      dec("1000"),
		VATRate:         dec("21"),
		WithholdingRate: dec("15"),
		Concept:         "July rent",
	}, nil)
	require.NoError(t, err)
	record.ClearDomainEvents()
	return record
}

func TestRecordService_ComputeFiscalAmounts(t *testing.T) {
	f := newRecordServiceFixture(t, nil)

	t.Run("full month", func(t *testing.T) {
		result, err := f.service.ComputeFiscalAmounts(ComputeAmountsRequest{
			BaseAmount:      dec("1000"),
			VATRate:         dec("21"),
			WithholdingRate: dec("15"),
		})
		require.NoError(t, err)
		assert.True(t, result.Amounts.Base.Equal(dec("1000")))
		assert.True(t, result.Amounts.VATAmount.Equal(dec("210")))
		assert.True(t, result.Amounts.WithholdingAmount.Equal(dec("150")))
		assert.True(t, result.Amounts.Total.Equal(dec("1060")))
	})

	t.Run("half of July", func(t *testing.T) {
		result, err := f.service.ComputeFiscalAmounts(ComputeAmountsRequest{
			BaseAmount:     dec("1000"),
			VATRate:        dec("21"),
			IsProportional: true,
			PeriodStart:    datePtr(2025, time.July, 17),
			PeriodEnd:      datePtr(2025, time.July, 31),
		})
		require.NoError(t, err)
		assert.Equal(t, 15, result.Proration.DaysBilled)
		assert.True(t, result.Amounts.Base.Equal(dec("483.87")), "got %s", result.Amounts.Base)
	})

	t.Run("reversed period", func(t *testing.T) {
		_, err := f.service.ComputeFiscalAmounts(ComputeAmountsRequest{
			BaseAmount:     dec("1000"),
			IsProportional: true,
			PeriodStart:    datePtr(2025, time.July, 20),
			PeriodEnd:      datePtr(2025, time.July, 10),
		})
		requireDomainError(t, err, shared.KindValidation, fiscal.CodeInvalidProportionalPeriod)
	})

	invalid := []struct {
		name string
		req  ComputeAmountsRequest
		code string
	}{
		{
			name: "negative base with out of range rates",
			req:  ComputeAmountsRequest{BaseAmount: dec("-1000"), VATRate: dec("250"), WithholdingRate: dec("-15")},
			code: "INVALID_AMOUNT",
		},
		{
			name: "VAT rate above 100",
			req:  ComputeAmountsRequest{BaseAmount: dec("1000"), VATRate: dec("250")},
			code: "INVALID_VAT_RATE",
		},
		{
			name: "negative VAT rate",
			req:  ComputeAmountsRequest{BaseAmount: dec("1000"), VATRate: dec("-1")},
			code: "INVALID_VAT_RATE",
		},
		{
			name: "negative withholding rate",
			req:  ComputeAmountsRequest{BaseAmount: dec("1000"), VATRate: dec("21"), WithholdingRate: dec("-15")},
			code: "INVALID_WITHHOLDING_RATE",
		},
		{
			name: "withholding rate above 100",
			req:  ComputeAmountsRequest{BaseAmount: dec("1000"), WithholdingRate: dec("100.01")},
			code: "INVALID_WITHHOLDING_RATE",
		},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.ComputeFiscalAmounts(tt.req)
			requireDomainError(t, err, shared.KindValidation, tt.code)
		})
	}

	t.Run("rate bounds are inclusive", func(t *testing.T) {
		result, err := f.service.ComputeFiscalAmounts(ComputeAmountsRequest{
			BaseAmount:      dec("0"),
			VATRate:         dec("100"),
			WithholdingRate: dec("0"),
		})
		require.NoError(t, err)
		assert.True(t, result.Amounts.Total.IsZero())
	})
}

func TestRecordService_CreateRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("numbers, snapshots the share and applies counterparty terms", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		counterparty, property, owner := uuid.New(), uuid.New(), uuid.New()
		terms := 45
		share := dec("50")

		f.counterparties.On("FindCounterparty", mock.Anything, counterparty).
			Return(&fiscal.Counterparty{ID: counterparty, Name: "Acme", PaymentTermsDays: &terms}, nil)
		f.ownership.On("GetOwnershipShare", mock.Anything, property, owner).Return(&share, nil)
		f.records.On("FindExistingForPeriod", mock.Anything, mock.MatchedBy(func(k fiscal.PeriodKey) bool {
			return k.Month == "2025-07" && k.CounterpartyID == counterparty
		})).Return(nil, nil)
		f.sequence.On("Next", mock.Anything, fiscal.NumberingSpace{Kind: fiscal.KindIssued}).Return("FAC-0001", nil)
		f.records.On("Save", mock.Anything, mock.AnythingOfType("*fiscal.FiscalRecord")).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			return len(events) == 1 && events[0].EventType() == fiscal.EventTypeFiscalRecordCreated
		})).Return(nil)

		resp, err := f.service.CreateRecord(ctx, issuedRequest(counterparty, property, owner))
		require.NoError(t, err)

		assert.Equal(t, "FAC-0001", resp.RecordNumber)
		assert.Equal(t, fiscal.StatusPending, resp.Status)
		require.NotNil(t, resp.DueDate)
		assert.True(t, resp.DueDate.Equal(date(2025, time.August, 19)))
		require.NotNil(t, resp.OwnershipShare)
		assert.True(t, resp.OwnershipShare.Equal(share))
		assert.True(t, resp.TotalAmount.Equal(dec("1060")))
		assert.Equal(t, "2025-07", resp.CorrespondingMonth)
		assert.Len(t, f.locker.keys, 1)

		f.records.AssertExpectations(t)
		f.sequence.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("falls back to default terms", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		counterparty, property, owner := uuid.New(), uuid.New(), uuid.New()

		f.counterparties.On("FindCounterparty", mock.Anything, counterparty).
			Return(&fiscal.Counterparty{ID: counterparty, Name: "Acme"}, nil)
		f.ownership.On("GetOwnershipShare", mock.Anything, property, owner).Return(nil, nil)
		f.records.On("FindExistingForPeriod", mock.Anything, mock.Anything).Return(nil, nil)
		f.sequence.On("Next", mock.Anything, mock.Anything).Return("FAC-0002", nil)
		f.records.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.service.CreateRecord(ctx, issuedRequest(counterparty, property, owner))
		require.NoError(t, err)
		require.NotNil(t, resp.DueDate)
		assert.True(t, resp.DueDate.Equal(date(2025, time.August, 4)))
		assert.Nil(t, resp.OwnershipShare)
	})

	t.Run("rejects a second record in the same month", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		counterparty, property, owner := uuid.New(), uuid.New(), uuid.New()
		existing := existingIssued(t, "FAC-0007")

		f.counterparties.On("FindCounterparty", mock.Anything, counterparty).
			Return(&fiscal.Counterparty{ID: counterparty}, nil)
		f.ownership.On("GetOwnershipShare", mock.Anything, property, owner).Return(nil, nil)
		f.records.On("FindExistingForPeriod", mock.Anything, mock.Anything).Return(existing, nil)

		resp, err := f.service.CreateRecord(ctx, issuedRequest(counterparty, property, owner))
		assert.Nil(t, resp)
		requireDomainError(t, err, shared.KindConflict, fiscal.CodeDuplicatePeriodRecord)
		assert.Contains(t, err.Error(), "FAC-0007")

		f.sequence.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
		f.records.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("maps a unique index violation to a conflict", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		counterparty, property, owner := uuid.New(), uuid.New(), uuid.New()
		dup := shared.NewConflictError(fiscal.CodeDuplicatePeriodRecord, "duplicate")

		f.counterparties.On("FindCounterparty", mock.Anything, counterparty).Return(&fiscal.Counterparty{ID: counterparty}, nil)
		f.ownership.On("GetOwnershipShare", mock.Anything, property, owner).Return(nil, nil)
		f.records.On("FindExistingForPeriod", mock.Anything, mock.Anything).Return(nil, nil)
		f.sequence.On("Next", mock.Anything, mock.Anything).Return("FAC-0003", nil)
		f.records.On("Save", mock.Anything, mock.Anything).Return(dup)

		_, err := f.service.CreateRecord(ctx, issuedRequest(counterparty, property, owner))
		requireDomainError(t, err, shared.KindConflict, fiscal.CodeDuplicatePeriodRecord)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("expenses skip the period check and the lock", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)

		f.sequence.On("Next", mock.Anything, fiscal.NumberingSpace{Kind: fiscal.KindExpense}).Return("GAS-0001", nil)
		f.records.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.service.CreateRecord(ctx, CreateRecordRequest{
			Kind:       fiscal.KindExpense,
			RecordDate: date(2025, time.July, 9),
			BaseAmount: dec("80"),
			VATRate:    dec("21"),
			Deductible: true,
			Concept:    "Plumber",
		})
		require.NoError(t, err)
		assert.Equal(t, "GAS-0001", resp.RecordNumber)
		assert.True(t, resp.Deductible)
		assert.Empty(t, f.locker.keys)
		f.records.AssertNotCalled(t, "FindExistingForPeriod", mock.Anything, mock.Anything)
		f.counterparties.AssertNotCalled(t, "FindCounterparty", mock.Anything, mock.Anything)
	})

	t.Run("validation failure touches nothing", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		req := issuedRequest(uuid.New(), uuid.New(), uuid.New())
		req.PropertyID = nil

		_, err := f.service.CreateRecord(ctx, req)
		requireDomainError(t, err, shared.KindValidation, "PROPERTY_REQUIRED")
		f.sequence.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
	})

	t.Run("invalid proportional period", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		req := issuedRequest(uuid.New(), uuid.New(), uuid.New())
		req.IsProportional = true
		req.PeriodStart = datePtr(2025, time.July, 1)

		_, err := f.service.CreateRecord(ctx, req)
		requireDomainError(t, err, shared.KindValidation, fiscal.CodeInvalidProportionalPeriod)
	})

	t.Run("unknown counterparty", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		req := issuedRequest(uuid.New(), uuid.New(), uuid.New())
		f.counterparties.On("FindCounterparty", mock.Anything, req.CounterpartyID).Return(nil, shared.ErrNotFound)

		_, err := f.service.CreateRecord(ctx, req)
		requireDomainError(t, err, shared.KindNotFound, "COUNTERPARTY_NOT_FOUND")
	})

	t.Run("lock held elsewhere", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		f.locker.err = shared.ErrLockNotObtained
		counterparty, property, owner := uuid.New(), uuid.New(), uuid.New()
		f.counterparties.On("FindCounterparty", mock.Anything, counterparty).Return(&fiscal.Counterparty{ID: counterparty}, nil)
		f.ownership.On("GetOwnershipShare", mock.Anything, property, owner).Return(nil, nil)

		_, err := f.service.CreateRecord(ctx, issuedRequest(counterparty, property, owner))
		assert.ErrorIs(t, err, shared.ErrLockNotObtained)
		f.records.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("publish failure is logged, not returned", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		f := newRecordServiceFixture(t, zap.New(core))

		f.sequence.On("Next", mock.Anything, mock.Anything).Return("GAS-0002", nil)
		f.records.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("bus closed"))

		resp, err := f.service.CreateRecord(ctx, CreateRecordRequest{
			Kind:       fiscal.KindExpense,
			RecordDate: date(2025, time.July, 9),
			BaseAmount: dec("10"),
		})
		require.NoError(t, err)
		assert.Equal(t, "GAS-0002", resp.RecordNumber)
		assert.Equal(t, 1, logs.FilterMessage("failed to publish fiscal record events").Len())
	})
}

func TestRecordService_UpdateRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("recomputes amounts and bumps the version", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		record := existingIssued(t, "FAC-0001")
		base := dec("1200")

		f.records.On("FindByID", mock.Anything, record.ID).Return(record, nil)
		f.records.On("SaveWithLock", mock.Anything, record).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.service.UpdateRecord(ctx, record.ID, UpdateRecordRequest{BaseAmount: &base})
		require.NoError(t, err)
		assert.True(t, resp.BaseAmount.Equal(dec("1200")))
		assert.True(t, resp.TotalAmount.Equal(dec("1272")))
		assert.Equal(t, 2, resp.Version)
		assert.Empty(t, f.locker.keys)
	})

	t.Run("rejects a number already in use", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		record := existingIssued(t, "FAC-0001")
		number := "FAC-0002"

		f.records.On("FindByID", mock.Anything, record.ID).Return(record, nil)
		f.records.On("ExistsByRecordNumber", mock.Anything, fiscal.KindIssued, number, record.ID).Return(true, nil)

		_, err := f.service.UpdateRecord(ctx, record.ID, UpdateRecordRequest{RecordNumber: &number})
		requireDomainError(t, err, shared.KindConflict, fiscal.CodeDuplicateRecordNumber)
		f.records.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("moving to an occupied month is rejected", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		record := existingIssued(t, "FAC-0001")
		other := existingIssued(t, "FAC-0009")
		newDate := date(2025, time.September, 3)

		f.records.On("FindByID", mock.Anything, record.ID).Return(record, nil)
		f.records.On("FindExistingForPeriod", mock.Anything, mock.MatchedBy(func(k fiscal.PeriodKey) bool {
			return k.Month == "2025-09"
		})).Return(other, nil)

		_, err := f.service.UpdateRecord(ctx, record.ID, UpdateRecordRequest{
			RecordDate: &newDate,
			DueDate:    datePtr(2025, time.October, 3),
		})
		requireDomainError(t, err, shared.KindConflict, fiscal.CodeDuplicatePeriodRecord)
		assert.Len(t, f.locker.keys, 1)
		f.records.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("re-snapshots the share when the owner changes", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		record := existingIssued(t, "FAC-0001")
		owner := uuid.New()
		share := dec("25")

		f.records.On("FindByID", mock.Anything, record.ID).Return(record, nil)
		f.ownership.On("GetOwnershipShare", mock.Anything, *record.PropertyID, owner).Return(&share, nil)
		f.records.On("FindExistingForPeriod", mock.Anything, mock.Anything).Return(record, nil)
		f.records.On("SaveWithLock", mock.Anything, record).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.service.UpdateRecord(ctx, record.ID, UpdateRecordRequest{OwnerID: &owner})
		require.NoError(t, err)
		require.NotNil(t, resp.OwnershipShare)
		assert.True(t, resp.OwnershipShare.Equal(share))
	})

	t.Run("settled records are read only", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		record := existingIssued(t, "FAC-0001")
		require.NoError(t, record.MarkCollected(date(2025, time.July, 20)))
		concept := "changed"

		f.records.On("FindByID", mock.Anything, record.ID).Return(record, nil)

		_, err := f.service.UpdateRecord(ctx, record.ID, UpdateRecordRequest{Concept: &concept})
		requireDomainError(t, err, shared.KindBusiness, "INVALID_STATE")
	})

	t.Run("invalid proportional period", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		record := existingIssued(t, "FAC-0001")
		proportional := true

		f.records.On("FindByID", mock.Anything, record.ID).Return(record, nil)

		_, err := f.service.UpdateRecord(ctx, record.ID, UpdateRecordRequest{
			IsProportional: &proportional,
			PeriodStart:    datePtr(2025, time.July, 1),
			PeriodEnd:      datePtr(2025, time.August, 15),
		})
		requireDomainError(t, err, shared.KindValidation, fiscal.CodeInvalidProportionalPeriod)
	})

	t.Run("stale version", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		record := existingIssued(t, "FAC-0001")
		concept := "changed"

		f.records.On("FindByID", mock.Anything, record.ID).Return(record, nil)
		f.records.On("SaveWithLock", mock.Anything, record).Return(shared.ErrConcurrencyConflict)

		_, err := f.service.UpdateRecord(ctx, record.ID, UpdateRecordRequest{Concept: &concept})
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestRecordService_CreateCreditNote(t *testing.T) {
	ctx := context.Background()

	t.Run("negates the original", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		original := existingIssued(t, "FAC-0004")

		f.records.On("FindByID", mock.Anything, original.ID).Return(original, nil)
		f.records.On("FindByOriginal", mock.Anything, original.ID).Return([]fiscal.FiscalRecord{}, nil)
		f.sequence.On("Next", mock.Anything, fiscal.NumberingSpace{Kind: fiscal.KindIssued, CreditNote: true}).Return("ABO-0001", nil)
		f.records.On("Save", mock.Anything, mock.AnythingOfType("*fiscal.FiscalRecord")).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			return len(events) == 1 && events[0].EventType() == fiscal.EventTypeCreditNoteIssued
		})).Return(nil)

		resp, err := f.service.CreateCreditNote(ctx, original.ID, CreateCreditNoteRequest{})
		require.NoError(t, err)
		assert.Equal(t, "ABO-0001", resp.RecordNumber)
		assert.True(t, resp.IsCreditNote)
		require.NotNil(t, resp.OriginalRecordID)
		assert.Equal(t, original.ID, *resp.OriginalRecordID)
		assert.True(t, resp.BaseAmount.Equal(original.BaseAmount.Neg()))
		assert.True(t, resp.TotalAmount.Equal(original.TotalAmount.Neg()))
		assert.True(t, resp.RecordDate.Equal(date(2025, time.August, 20)))
		assert.Equal(t, "Credit note for FAC-0004", resp.Concept)
	})

	t.Run("chained credit note consumes no number", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		original := existingIssued(t, "FAC-0004")
		cn, err := fiscal.NewCreditNote("ABO-0001", original, date(2025, time.August, 1), "")
		require.NoError(t, err)

		f.records.On("FindByID", mock.Anything, cn.ID).Return(cn, nil)

		_, err = f.service.CreateCreditNote(ctx, cn.ID, CreateCreditNoteRequest{})
		requireDomainError(t, err, shared.KindConflict, fiscal.CodeChainedCreditNote)
		f.sequence.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
	})

	t.Run("warns when the original was already credited", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		f := newRecordServiceFixture(t, zap.New(core))
		original := existingIssued(t, "FAC-0004")
		first, err := fiscal.NewCreditNote("ABO-0001", original, date(2025, time.August, 1), "")
		require.NoError(t, err)
		at := date(2025, time.August, 10)

		f.records.On("FindByID", mock.Anything, original.ID).Return(original, nil)
		f.records.On("FindByOriginal", mock.Anything, original.ID).Return([]fiscal.FiscalRecord{*first}, nil)
		f.sequence.On("Next", mock.Anything, mock.Anything).Return("ABO-0002", nil)
		f.records.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.service.CreateCreditNote(ctx, original.ID, CreateCreditNoteRequest{RecordDate: &at, Concept: "Second refund"})
		require.NoError(t, err)
		assert.Equal(t, "ABO-0002", resp.RecordNumber)
		assert.Equal(t, "Second refund", resp.Concept)
		assert.Equal(t, 1, logs.FilterMessage("issuing another credit note against the same record").Len())
	})

	t.Run("original not found", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		id := uuid.New()
		f.records.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := f.service.CreateCreditNote(ctx, id, CreateCreditNoteRequest{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestRecordService_ChangeStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("collect an issued invoice", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		record := existingIssued(t, "FAC-0001")
		at := date(2025, time.August, 1)

		f.records.On("FindByID", mock.Anything, record.ID).Return(record, nil)
		f.records.On("SaveWithLock", mock.Anything, record).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			return len(events) == 1 && events[0].EventType() == fiscal.EventTypeFiscalRecordStatusChanged
		})).Return(nil)

		resp, err := f.service.ChangeStatus(ctx, record.ID, ChangeStatusRequest{Action: ActionCollect, At: &at})
		require.NoError(t, err)
		assert.Equal(t, fiscal.StatusCollected, resp.Status)
		assert.Equal(t, fiscal.StatusCollected, resp.DisplayStatus)
		require.NotNil(t, resp.SettledAt)
		assert.True(t, resp.SettledAt.Equal(at))
		assert.Equal(t, 2, resp.Version)
	})

	t.Run("pending past due displays overdue", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		record := existingIssued(t, "FAC-0001")

		f.records.On("FindByID", mock.Anything, record.ID).Return(record, nil)

		resp, err := f.service.GetRecord(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, fiscal.StatusPending, resp.Status)
		assert.Equal(t, fiscal.StatusOverdue, resp.DisplayStatus)
		assert.True(t, resp.IsOverdue)
	})

	t.Run("issued invoices are not paid", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		record := existingIssued(t, "FAC-0001")
		f.records.On("FindByID", mock.Anything, record.ID).Return(record, nil)

		_, err := f.service.ChangeStatus(ctx, record.ID, ChangeStatusRequest{Action: ActionPay})
		requireDomainError(t, err, shared.KindBusiness, "INVALID_STATE")
		f.records.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("dispute then reopen", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		record := existingIssued(t, "FAC-0001")
		f.records.On("FindByID", mock.Anything, record.ID).Return(record, nil)
		f.records.On("SaveWithLock", mock.Anything, record).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.service.ChangeStatus(ctx, record.ID, ChangeStatusRequest{Action: ActionDispute, Reason: "Wrong amount"})
		require.NoError(t, err)
		assert.Equal(t, fiscal.StatusDisputed, resp.Status)
		assert.Equal(t, "Wrong amount", resp.DisputeReason)

		resp, err = f.service.ChangeStatus(ctx, record.ID, ChangeStatusRequest{Action: ActionReopen})
		require.NoError(t, err)
		assert.Equal(t, fiscal.StatusPending, resp.Status)
		assert.Empty(t, resp.DisputeReason)
		assert.Equal(t, 3, resp.Version)
	})

	t.Run("unknown action", func(t *testing.T) {
		f := newRecordServiceFixture(t, nil)
		record := existingIssued(t, "FAC-0001")
		f.records.On("FindByID", mock.Anything, record.ID).Return(record, nil)

		_, err := f.service.ChangeStatus(ctx, record.ID, ChangeStatusRequest{Action: "archive"})
		requireDomainError(t, err, shared.KindValidation, "INVALID_ACTION")
	})
}

func TestRecordService_ListRecords(t *testing.T) {
	ctx := context.Background()
	f := newRecordServiceFixture(t, nil)
	record := existingIssued(t, "FAC-0001")
	kind := fiscal.KindIssued

	matches := mock.MatchedBy(func(filter fiscal.RecordFilter) bool {
		return filter.Page == 2 && filter.PageSize == 20 && filter.OrderBy == "record_date" &&
			filter.Kind != nil && *filter.Kind == fiscal.KindIssued
	})
	f.records.On("FindAll", mock.Anything, matches).Return([]fiscal.FiscalRecord{*record}, nil)
	f.records.On("Count", mock.Anything, matches).Return(int64(21), nil)

	responses, total, err := f.service.ListRecords(ctx, RecordListFilter{Page: 2, Kind: &kind})
	require.NoError(t, err)
	assert.Equal(t, int64(21), total)
	require.Len(t, responses, 1)
	assert.Equal(t, "FAC-0001", responses[0].RecordNumber)
}
