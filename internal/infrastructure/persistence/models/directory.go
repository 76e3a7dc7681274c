package models

import (
	"github.com/google/uuid"
	"github.com/propdesk/backend/internal/domain/fiscal"
	"github.com/shopspring/decimal"
)

// OwnerModel is a co-owner of the business.
type OwnerModel struct {
	BaseModel
	Name         string `gorm:"type:varchar(200);not null"`
	TaxID        string `gorm:"type:varchar(30)"`
	Active       bool   `gorm:"not null;default:true;index"`
	DisplayOrder int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (OwnerModel) TableName() string {
	return "owners"
}

// ToDomain converts the model to a domain Owner
func (m *OwnerModel) ToDomain() fiscal.Owner {
	return fiscal.Owner{ID: m.ID, Name: m.Name}
}

// PropertyOwnershipModel links an owner to a property with a percentage share.
type PropertyOwnershipModel struct {
	PropertyID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID    uuid.UUID       `gorm:"type:uuid;primaryKey;index"`
	Share      decimal.Decimal `gorm:"type:decimal(7,4);not null"`
}

// TableName returns the table name for GORM
func (PropertyOwnershipModel) TableName() string {
	return "property_ownerships"
}

// ToDomain converts the model to a domain OwnershipLink
func (m *PropertyOwnershipModel) ToDomain() fiscal.OwnershipLink {
	return fiscal.OwnershipLink{PropertyID: m.PropertyID, OwnerID: m.OwnerID, Share: m.Share}
}

// Counterparty roles
const (
	CounterpartyRoleClient   = "CLIENT"
	CounterpartyRoleSupplier = "SUPPLIER"
)

// CounterpartyModel is a client or supplier.
type CounterpartyModel struct {
	BaseModel
	Role             string `gorm:"type:varchar(20);not null;index"`
	Name             string `gorm:"type:varchar(200);not null"`
	TaxID            string `gorm:"type:varchar(30)"`
	PaymentTermsDays *int   `gorm:""`
}

// TableName returns the table name for GORM
func (CounterpartyModel) TableName() string {
	return "counterparties"
}

// ToDomain converts the model to a domain Counterparty
func (m *CounterpartyModel) ToDomain() *fiscal.Counterparty {
	return &fiscal.Counterparty{
		ID:               m.ID,
		Name:             m.Name,
		TaxID:            m.TaxID,
		PaymentTermsDays: m.PaymentTermsDays,
	}
}
