package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/gestorplus/gestor-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Tenant represents a business in the multitenant system. Every operational
// record (products, clients, sales, coupons) is scoped to one tenant.
type Tenant struct {
	ID        uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	Name      string                `gorm:"size:255;not null" json:"name"`
	Slug      string                `gorm:"size:255;unique;not null" json:"slug"`
	Category  enum.BusinessCategory `gorm:"size:50;not null" json:"category"`
	Document  *string               `gorm:"size:20" json:"document,omitempty"` // CNPJ
	OwnerID   uuid.UUID             `gorm:"type:uuid;not null;index" json:"owner_id"`
	Active    bool                  `gorm:"default:true" json:"active"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
	DeletedAt gorm.DeletedAt        `gorm:"index" json:"-"`

	// Relationships
	Owner User   `gorm:"foreignKey:OwnerID" json:"-"`
	Users []User `gorm:"foreignKey:TenantID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tenant
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Tenant model
func (Tenant) TableName() string {
	return "tenants"
}
