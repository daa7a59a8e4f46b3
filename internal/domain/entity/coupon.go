package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gestorplus/gestor-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Coupon represents a discount code. The value field is a percentage (0-100)
// for percentage coupons or an amount in cents for fixed coupons.
type Coupon struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Code        string          `gorm:"size:100;not null;index" json:"code"`
	Type        enum.CouponType `gorm:"size:20;default:'percentage'" json:"type"`
	Value       int64           `gorm:"not null" json:"value"`
	MinPurchase int64           `gorm:"default:0" json:"-"` // Stored in cents
	StartsAt    *time.Time      `json:"starts_at,omitempty"`
	ExpiresAt   *time.Time      `json:"expires_at,omitempty"`
	UsageLimit  int             `gorm:"default:0" json:"usage_limit"` // 0 = unlimited
	UsedCount   int             `gorm:"default:0" json:"used_count"`
	Active      bool            `gorm:"default:true" json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new coupon
func (c *Coupon) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Coupon model
func (Coupon) TableName() string {
	return "coupons"
}

// MarshalJSON converts Coupon to JSON with decimal minimum purchase
func (c Coupon) MarshalJSON() ([]byte, error) {
	type Alias Coupon
	return json.Marshal(&struct {
		Alias
		MinPurchase float64 `json:"min_purchase"`
	}{
		Alias:       Alias(c),
		MinPurchase: float64(c.MinPurchase) / 100,
	})
}

// IsExhausted reports whether the coupon reached its usage limit
func (c *Coupon) IsExhausted() bool {
	return c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit
}

// DiscountFor computes the discount in cents this coupon grants on the given
// subtotal. Fixed discounts are clamped to the subtotal.
func (c *Coupon) DiscountFor(subtotal int64) int64 {
	var discount int64
	switch c.Type {
	case enum.CouponTypePercentage:
		discount = subtotal * c.Value / 100
	case enum.CouponTypeFixed:
		discount = c.Value
	}
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}
