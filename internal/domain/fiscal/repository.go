package fiscal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/propdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PeriodKey identifies the slot a non-credit-note record occupies for one month
type PeriodKey struct {
	Kind           RecordKind
	OwnerID        *uuid.UUID
	PropertyID     *uuid.UUID
	CounterpartyID uuid.UUID
	Month          string // YYYY-MM of the record date
}

// LockKey returns the key used to serialize creations for this slot
func (k PeriodKey) LockKey() string {
	return fmt.Sprintf("fiscal:period:%s:%s:%s:%s:%s", k.Kind, idOrDash(k.OwnerID), idOrDash(k.PropertyID), k.CounterpartyID, k.Month)
}

func idOrDash(id *uuid.UUID) string {
	if id == nil {
		return "-"
	}
	return id.String()
}

// RecordFilter defines filtering options for record listings
type RecordFilter struct {
	shared.Filter
	Kind         *RecordKind
	Status       *RecordStatus
	PropertyID   *uuid.UUID
	OwnerID      *uuid.UUID
	IsCreditNote *bool
	FromDate     *time.Time
	ToDate       *time.Time
}

// RecordRepository defines the persistence operations the lifecycle relies on
type RecordRepository interface {
	// FindByID finds a record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*FiscalRecord, error)

	// FindAll lists records matching the filter
	FindAll(ctx context.Context, filter RecordFilter) ([]FiscalRecord, error)

	// Count counts records matching the filter
	Count(ctx context.Context, filter RecordFilter) (int64, error)

	// FindLastRecordNumber returns the highest number issued in space, or "" when none
	FindLastRecordNumber(ctx context.Context, space NumberingSpace) (string, error)

	// FindExistingForPeriod returns the non-credit-note record occupying key, or nil
	FindExistingForPeriod(ctx context.Context, key PeriodKey) (*FiscalRecord, error)

	// FindByOriginal returns the credit notes issued against originalID
	FindByOriginal(ctx context.Context, originalID uuid.UUID) ([]FiscalRecord, error)

	// ExistsByRecordNumber checks whether another record of kind already uses number
	ExistsByRecordNumber(ctx context.Context, kind RecordKind, number string, excludeID uuid.UUID) (bool, error)

	// FindForPeriod returns records of the given kinds dated in [from, to)
	FindForPeriod(ctx context.Context, kinds []RecordKind, from, to time.Time) ([]FiscalRecord, error)

	// Save creates or updates a record
	Save(ctx context.Context, record *FiscalRecord) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, record *FiscalRecord) error
}

// OwnershipRepository reads ownership links
type OwnershipRepository interface {
	// GetOwnershipShare returns the share of ownerID in propertyID, or nil when not linked
	GetOwnershipShare(ctx context.Context, propertyID, ownerID uuid.UUID) (*decimal.Decimal, error)

	// FindByProperty returns all links of a property
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]OwnershipLink, error)

	// FindAll returns every ownership link
	FindAll(ctx context.Context) ([]OwnershipLink, error)
}

// OwnerRoster lists the owners of the business
type OwnerRoster interface {
	ListOwners(ctx context.Context) ([]Owner, error)
}

// Counterparty is a client or supplier as seen by the fiscal engine
type Counterparty struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	TaxID            string    `json:"tax_id"`
	PaymentTermsDays *int      `json:"payment_terms_days,omitempty"`
}

// CounterpartyDirectory resolves counterparties
type CounterpartyDirectory interface {
	// FindCounterparty returns the counterparty or shared.ErrNotFound
	FindCounterparty(ctx context.Context, id uuid.UUID) (*Counterparty, error)

	// FindNames returns display names for the given ids; unknown ids are omitted
	FindNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// SequenceGenerator hands out record numbers atomically per numbering space
type SequenceGenerator interface {
	Next(ctx context.Context, space NumberingSpace) (string, error)
}
