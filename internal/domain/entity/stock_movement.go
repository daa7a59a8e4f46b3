package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/gestorplus/gestor-api/internal/domain/enum"
	"gorm.io/gorm"
)

// StockMovement records every inbound/outbound change to a product's stock.
// Checkout writes one outbound movement per sale line; manual adjustments and
// cancellations write their own entries. The movement log is append-only.
type StockMovement struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProductID uuid.UUID         `gorm:"type:uuid;not null;index" json:"product_id"`
	UserID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	SaleID    *uuid.UUID        `gorm:"type:uuid;index" json:"sale_id,omitempty"`
	Type      enum.MovementType `gorm:"size:10;not null" json:"type"`
	Quantity  int               `gorm:"not null" json:"quantity"`
	Reason    string            `gorm:"size:100;not null" json:"reason"`
	CreatedAt time.Time         `json:"created_at"`

	// Relationships
	Tenant  Tenant  `gorm:"foreignKey:TenantID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Sale    *Sale   `gorm:"foreignKey:SaleID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock movement
func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockMovement model
func (StockMovement) TableName() string {
	return "stock_movements"
}
