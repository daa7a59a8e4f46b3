package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gestorplus/gestor-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Client represents a customer in the registry. Sales reference clients but
// never own them; TotalSpent is denormalized and incremented inside the
// checkout transaction.
type Client struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TenantID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string          `gorm:"size:255;not null" json:"name"`
	Email      *string         `gorm:"size:255" json:"email,omitempty"`
	Phone      *string         `gorm:"size:50" json:"phone,omitempty"`
	Address    *string         `gorm:"type:text" json:"address,omitempty"`
	Document   *string         `gorm:"size:20" json:"document,omitempty"` // CPF or CNPJ
	Type       enum.ClientType `gorm:"size:20;default:'fisica'" json:"type"`
	TotalSpent int64           `gorm:"default:0" json:"-"` // Stored in cents
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Sales  []Sale `gorm:"foreignKey:ClientID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new client
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Client model
func (Client) TableName() string {
	return "clients"
}

// GetTotalSpentDecimal returns the accumulated spending as a decimal
func (c *Client) GetTotalSpentDecimal() float64 {
	return float64(c.TotalSpent) / 100
}

// MarshalJSON converts Client to JSON with decimal total spent
func (c Client) MarshalJSON() ([]byte, error) {
	type Alias Client
	return json.Marshal(&struct {
		Alias
		TotalSpent float64 `json:"total_spent"`
	}{
		Alias:      Alias(c),
		TotalSpent: c.GetTotalSpentDecimal(),
	})
}
