package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/propdesk/backend/internal/domain/fiscal"
	"github.com/propdesk/backend/internal/domain/shared"
	"github.com/propdesk/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormOwnershipRepository implements fiscal.OwnershipRepository using GORM
type GormOwnershipRepository struct {
	db *gorm.DB
}

// NewGormOwnershipRepository creates a new GormOwnershipRepository
func NewGormOwnershipRepository(db *gorm.DB) *GormOwnershipRepository {
	return &GormOwnershipRepository{db: db}
}

// GetOwnershipShare returns the share of ownerID in propertyID, or nil when not linked
func (r *GormOwnershipRepository) GetOwnershipShare(ctx context.Context, propertyID, ownerID uuid.UUID) (*decimal.Decimal, error) {
	var model models.PropertyOwnershipModel
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND owner_id = ?", propertyID, ownerID).
		Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	share := model.Share
	return &share, nil
}

// FindByProperty returns all links of a property, largest share first
func (r *GormOwnershipRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]fiscal.OwnershipLink, error) {
	var linkModels []models.PropertyOwnershipModel
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("share DESC").
		Order("owner_id ASC").
		Find(&linkModels).Error; err != nil {
		return nil, err
	}
	return toDomainLinks(linkModels), nil
}

// FindAll returns every ownership link
func (r *GormOwnershipRepository) FindAll(ctx context.Context) ([]fiscal.OwnershipLink, error) {
	var linkModels []models.PropertyOwnershipModel
	if err := r.db.WithContext(ctx).
		Order("property_id ASC").
		Order("share DESC").
		Order("owner_id ASC").
		Find(&linkModels).Error; err != nil {
		return nil, err
	}
	return toDomainLinks(linkModels), nil
}

func toDomainLinks(linkModels []models.PropertyOwnershipModel) []fiscal.OwnershipLink {
	links := make([]fiscal.OwnershipLink, len(linkModels))
	for i := range linkModels {
		links[i] = linkModels[i].ToDomain()
	}
	return links
}

// GormOwnerRepository implements fiscal.OwnerRoster using GORM
type GormOwnerRepository struct {
	db *gorm.DB
}

// NewGormOwnerRepository creates a new GormOwnerRepository
func NewGormOwnerRepository(db *gorm.DB) *GormOwnerRepository {
	return &GormOwnerRepository{db: db}
}

// ListOwners returns the active owners in roster order.
// The order matters: the last owner absorbs the equal-split remainder.
func (r *GormOwnerRepository) ListOwners(ctx context.Context) ([]fiscal.Owner, error) {
	var ownerModels []models.OwnerModel
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("display_order ASC").
		Order("name ASC").
		Order("id ASC").
		Find(&ownerModels).Error; err != nil {
		return nil, err
	}
	owners := make([]fiscal.Owner, len(ownerModels))
	for i := range ownerModels {
		owners[i] = ownerModels[i].ToDomain()
	}
	return owners, nil
}

// GormCounterpartyRepository implements fiscal.CounterpartyDirectory using GORM
type GormCounterpartyRepository struct {
	db *gorm.DB
}

// NewGormCounterpartyRepository creates a new GormCounterpartyRepository
func NewGormCounterpartyRepository(db *gorm.DB) *GormCounterpartyRepository {
	return &GormCounterpartyRepository{db: db}
}

// FindCounterparty returns the counterparty or shared.ErrNotFound
func (r *GormCounterpartyRepository) FindCounterparty(ctx context.Context, id uuid.UUID) (*fiscal.Counterparty, error) {
	var model models.CounterpartyModel
	if err := r.db.WithContext(ctx).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindNames returns display names for the given ids; unknown ids are omitted
func (r *GormCounterpartyRepository) FindNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var rows []models.CounterpartyModel
	if err := r.db.WithContext(ctx).
		Select("id", "name").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}
