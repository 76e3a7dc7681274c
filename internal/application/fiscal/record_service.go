package fiscal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/propdesk/backend/internal/domain/fiscal"
	"github.com/propdesk/backend/internal/domain/shared"
	"github.com/propdesk/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const recordServiceName = "RecordService"

// RecordSettings holds the tunables of the record lifecycle
type RecordSettings struct {
	DefaultPaymentTermsDays int
	LockTTL                 time.Duration
}

// DefaultRecordSettings returns thirty-day terms and a ten-second lock
func DefaultRecordSettings() RecordSettings {
	return RecordSettings{DefaultPaymentTermsDays: 30, LockTTL: 10 * time.Second}
}

// RecordService orchestrates the fiscal record lifecycle: numbering, the
// one-record-per-month rule, ownership snapshots, credit notes and status changes.
type RecordService struct {
	records        fiscal.RecordRepository
	ownership      fiscal.OwnershipRepository
	counterparties fiscal.CounterpartyDirectory
	sequence       fiscal.SequenceGenerator
	locker         shared.Locker
	settings       RecordSettings
	logger         *zap.Logger
	eventPublisher shared.EventPublisher
	metrics        *telemetry.FiscalMetrics
	now            func() time.Time
}

// NewRecordService creates a new RecordService. A nil locker runs the
// uniqueness check without serialization.
func NewRecordService(
	records fiscal.RecordRepository,
	ownership fiscal.OwnershipRepository,
	counterparties fiscal.CounterpartyDirectory,
	sequence fiscal.SequenceGenerator,
	locker shared.Locker,
	settings RecordSettings,
	logger *zap.Logger,
) *RecordService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings.LockTTL <= 0 {
		settings.LockTTL = DefaultRecordSettings().LockTTL
	}
	return &RecordService{
		records:        records,
		ownership:      ownership,
		counterparties: counterparties,
		sequence:       sequence,
		locker:         locker,
		settings:       settings,
		logger:         logger,
		now:            time.Now,
	}
}

// SetEventPublisher sets the event publisher for cache invalidation and integrations
func (s *RecordService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetFiscalMetrics sets the metrics recorder
func (s *RecordService) SetFiscalMetrics(m *telemetry.FiscalMetrics) {
	s.metrics = m
}

// ComputeFiscalAmounts derives prorated base, VAT, withholding and total. Pure.
func (s *RecordService) ComputeFiscalAmounts(req ComputeAmountsRequest) (fiscal.FiscalAmounts, error) {
	in := req.ToInput()
	if err := in.Validate(); err != nil {
		return fiscal.FiscalAmounts{}, err
	}
	return fiscal.ComputeFiscalAmounts(in), nil
}

// CreateRecord validates, numbers and persists a new record
func (s *RecordService) CreateRecord(ctx context.Context, req CreateRecordRequest) (*RecordResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, recordServiceName, "CreateRecord",
		telemetry.WithAttribute(telemetry.SpanAttrRecordKind, string(req.Kind)))
	defer span.End()

	in := req.ToInput()
	if err := in.Validate(); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if in.DueDate == nil {
		due, err := s.defaultDueDate(ctx, in.CounterpartyID, in.RecordDate)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		in.DueDate = &due
	}

	share, err := s.resolveShare(ctx, in.PropertyID, in.OwnerID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var record *fiscal.FiscalRecord
	create := func(ctx context.Context) error {
		if in.Kind.OnePerPeriod() {
			if err := s.ensureSlotFree(ctx, in.PeriodKey(), uuid.Nil); err != nil {
				return err
			}
		}
		number, err := s.sequence.Next(ctx, fiscal.NumberingSpace{Kind: in.Kind})
		if err != nil {
			return fmt.Errorf("failed to generate record number: %w", err)
		}
		record, err = fiscal.NewFiscalRecord(number, in, share)
		if err != nil {
			return err
		}
		if err := s.records.Save(ctx, record); err != nil {
			if shared.IsConflict(err) {
				s.metrics.DuplicateRejected(ctx, string(in.Kind))
				return err
			}
			return fmt.Errorf("failed to save fiscal record: %w", err)
		}
		return nil
	}

	if in.Kind.OnePerPeriod() {
		err = s.withLock(ctx, in.PeriodKey().LockKey(), create)
	} else {
		err = create(ctx)
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrRecordID, record.ID.String(),
		telemetry.SpanAttrRecordNumber, record.RecordNumber,
	)
	s.metrics.RecordCreated(ctx, string(record.Kind), false)
	s.publishEvents(ctx, record)

	s.logger.Info("fiscal record created",
		zap.String("record_id", record.ID.String()),
		zap.String("record_number", record.RecordNumber),
		zap.String("kind", string(record.Kind)),
		zap.String("total_amount", record.TotalAmount.String()),
	)

	response := ToRecordResponse(record, s.now())
	return &response, nil
}

// UpdateRecord merges the given fields into a non-terminal record
func (s *RecordService) UpdateRecord(ctx context.Context, id uuid.UUID, req UpdateRecordRequest) (*RecordResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, recordServiceName, "UpdateRecord",
		telemetry.WithAttribute(telemetry.SpanAttrRecordID, id.String()))
	defer span.End()

	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	previousKey := record.PeriodKey()

	changes, err := record.Revise(req.ToPatch())
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if changes.NumberChanged {
		exists, err := s.records.ExistsByRecordNumber(ctx, record.Kind, record.RecordNumber, record.ID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("failed to check record number: %w", err)
		}
		if exists {
			err := shared.NewConflictError(fiscal.CodeDuplicateRecordNumber,
				fmt.Sprintf("Record number %s is already in use", record.RecordNumber))
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	if changes.OwnershipChanged {
		share, err := s.resolveShare(ctx, record.PropertyID, record.OwnerID)
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		if err := record.SnapshotShare(share); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	slotMoved := record.Kind.OnePerPeriod() && !record.IsCreditNote &&
		record.PeriodKey().LockKey() != previousKey.LockKey()
	save := func(ctx context.Context) error {
		if slotMoved {
			if err := s.ensureSlotFree(ctx, record.PeriodKey(), record.ID); err != nil {
				return err
			}
		}
		record.IncrementVersion()
		return s.records.SaveWithLock(ctx, record)
	}

	if slotMoved {
		err = s.withLock(ctx, record.PeriodKey().LockKey(), save)
	} else {
		err = save(ctx)
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.publishEvents(ctx, record)

	s.logger.Info("fiscal record updated",
		zap.String("record_id", record.ID.String()),
		zap.String("record_number", record.RecordNumber),
		zap.Bool("amounts_changed", changes.AmountsChanged),
		zap.Bool("ownership_changed", changes.OwnershipChanged),
	)

	response := ToRecordResponse(record, s.now())
	return &response, nil
}

// CreateCreditNote reverses originalID with a credit note from its kind's credit-note space
func (s *RecordService) CreateCreditNote(ctx context.Context, originalID uuid.UUID, req CreateCreditNoteRequest) (*RecordResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, recordServiceName, "CreateCreditNote",
		telemetry.WithAttribute(telemetry.SpanAttrOriginalID, originalID.String()))
	defer span.End()

	original, err := s.records.FindByID(ctx, originalID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	// Checked before numbering so a rejected request does not consume a number
	if err := fiscal.CheckCreditable(original); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	previous, err := s.records.FindByOriginal(ctx, original.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to look up existing credit notes: %w", err)
	}
	if len(previous) > 0 {
		s.logger.Warn("issuing another credit note against the same record",
			zap.String("original_id", original.ID.String()),
			zap.String("original_number", original.RecordNumber),
			zap.Int("existing_credit_notes", len(previous)),
		)
	}

	recordDate := s.now()
	if req.RecordDate != nil {
		recordDate = *req.RecordDate
	}

	space := fiscal.NumberingSpace{Kind: original.Kind, CreditNote: true}
	number, err := s.sequence.Next(ctx, space)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to generate credit note number: %w", err)
	}

	cn, err := fiscal.NewCreditNote(number, original, recordDate, req.Concept)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.records.Save(ctx, cn); err != nil {
		telemetry.RecordError(span, err)
		if shared.IsConflict(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save credit note: %w", err)
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrRecordID, cn.ID.String(),
		telemetry.SpanAttrRecordNumber, cn.RecordNumber,
		telemetry.SpanAttrCreditNote, true,
	)
	s.metrics.RecordCreated(ctx, string(cn.Kind), true)
	s.publishEvents(ctx, cn)

	s.logger.Info("credit note issued",
		zap.String("record_id", cn.ID.String()),
		zap.String("record_number", cn.RecordNumber),
		zap.String("original_number", original.RecordNumber),
		zap.String("total_amount", cn.TotalAmount.String()),
	)

	response := ToRecordResponse(cn, s.now())
	return &response, nil
}

// ChangeStatus applies a lifecycle transition
func (s *RecordService) ChangeStatus(ctx context.Context, id uuid.UUID, req ChangeStatusRequest) (*RecordResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, recordServiceName, "ChangeStatus",
		telemetry.WithAttribute(telemetry.SpanAttrRecordID, id.String()))
	defer span.End()

	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	at := s.now()
	if req.At != nil {
		at = *req.At
	}

	switch req.Action {
	case ActionCollect:
		err = record.MarkCollected(at)
	case ActionPay:
		err = record.MarkPaid(at)
	case ActionDispute:
		err = record.MarkDisputed(req.Reason)
	case ActionReopen:
		err = record.Reopen()
	default:
		err = shared.NewValidationError("INVALID_ACTION", fmt.Sprintf("Unknown status action %q", req.Action))
	}
	if err != nil {
		s.metrics.StatusChanged(ctx, string(record.Kind), "rejected")
		telemetry.RecordError(span, err)
		return nil, err
	}

	record.IncrementVersion()
	if err := s.records.SaveWithLock(ctx, record); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttribute(span, telemetry.SpanAttrRecordStatus, string(record.Status))
	s.metrics.StatusChanged(ctx, string(record.Kind), string(record.Status))
	s.publishEvents(ctx, record)

	s.logger.Info("fiscal record status changed",
		zap.String("record_id", record.ID.String()),
		zap.String("record_number", record.RecordNumber),
		zap.String("action", req.Action),
		zap.String("status", string(record.Status)),
	)

	response := ToRecordResponse(record, s.now())
	return &response, nil
}

// GetRecord retrieves a record by ID
func (s *RecordService) GetRecord(ctx context.Context, id uuid.UUID) (*RecordResponse, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToRecordResponse(record, s.now())
	return &response, nil
}

// ListRecords retrieves records with filtering and pagination
func (s *RecordService) ListRecords(ctx context.Context, filter RecordListFilter) ([]RecordResponse, int64, error) {
	domainFilter := filter.toDomain()

	records, err := s.records.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.records.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToRecordResponses(records, s.now()), total, nil
}

// defaultDueDate adds the counterparty's payment terms, or the configured
// default, to the record date
func (s *RecordService) defaultDueDate(ctx context.Context, counterpartyID uuid.UUID, recordDate time.Time) (time.Time, error) {
	days := s.settings.DefaultPaymentTermsDays
	if counterpartyID != uuid.Nil && s.counterparties != nil {
		cp, err := s.counterparties.FindCounterparty(ctx, counterpartyID)
		switch {
		case err == nil:
			if cp.PaymentTermsDays != nil {
				days = *cp.PaymentTermsDays
			}
		case shared.IsNotFound(err):
			return time.Time{}, shared.NewNotFoundError("COUNTERPARTY_NOT_FOUND", "Counterparty not found")
		default:
			return time.Time{}, fmt.Errorf("failed to load counterparty: %w", err)
		}
	}
	return recordDate.AddDate(0, 0, days), nil
}

// resolveShare snapshots the owner's share in the property, nil when either
// is missing or they are not linked
func (s *RecordService) resolveShare(ctx context.Context, propertyID, ownerID *uuid.UUID) (*decimal.Decimal, error) {
	if propertyID == nil || ownerID == nil || s.ownership == nil {
		return nil, nil
	}
	share, err := s.ownership.GetOwnershipShare(ctx, *propertyID, *ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ownership share: %w", err)
	}
	return share, nil
}

// ensureSlotFree rejects the write when another non-credit-note record holds key
func (s *RecordService) ensureSlotFree(ctx context.Context, key fiscal.PeriodKey, self uuid.UUID) error {
	existing, err := s.records.FindExistingForPeriod(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to check period uniqueness: %w", err)
	}
	if existing == nil || existing.ID == self {
		return nil
	}
	s.metrics.DuplicateRejected(ctx, string(key.Kind))
	s.logger.Warn("duplicate record for period rejected",
		zap.String("kind", string(key.Kind)),
		zap.String("month", key.Month),
		zap.String("existing_number", existing.RecordNumber),
	)
	return shared.NewConflictError(fiscal.CodeDuplicatePeriodRecord,
		fmt.Sprintf("A %s record already exists for this owner, property and counterparty in %s (%s)",
			key.Kind, key.Month, existing.RecordNumber))
}

func (s *RecordService) withLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	if s.locker == nil {
		return fn(ctx)
	}
	return s.locker.WithLock(ctx, key, s.settings.LockTTL, fn)
}

// publishEvents publishes and clears the record's pending events. Failures are
// logged; the write has already succeeded.
func (s *RecordService) publishEvents(ctx context.Context, record *fiscal.FiscalRecord) {
	events := record.GetDomainEvents()
	record.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish fiscal record events",
			zap.String("record_id", record.ID.String()),
			zap.Int("event_count", len(events)),
			zap.Error(err),
		)
	}
}
