package request

import "time"

// CreateCouponRequest represents a coupon creation request. Percentage values
// are whole percents; fixed values are decimal amounts.
type CreateCouponRequest struct {
	Code        string     `json:"code" binding:"required,min=2,max=100"`
	Type        string     `json:"type" binding:"required,oneof=percentage fixed"`
	Value       float64    `json:"value" binding:"required,gt=0"`
	MinPurchase float64    `json:"min_purchase" binding:"min=0"`
	StartsAt    *time.Time `json:"starts_at"`
	ExpiresAt   *time.Time `json:"expires_at"`
	UsageLimit  int        `json:"usage_limit" binding:"min=0"` // 0 means unlimited
	Active      bool       `json:"active"`
}

// UpdateCouponRequest represents a coupon update request. Code, type and
// value are immutable once created.
type UpdateCouponRequest struct {
	MinPurchase *float64   `json:"min_purchase" binding:"omitempty,min=0"`
	StartsAt    *time.Time `json:"starts_at"`
	ExpiresAt   *time.Time `json:"expires_at"`
	UsageLimit  *int       `json:"usage_limit" binding:"omitempty,min=0"`
	Active      *bool      `json:"active"`
}

// ValidateCouponRequest checks a code against a subtotal without a cart
type ValidateCouponRequest struct {
	Code     string  `json:"code" binding:"required"`
	Subtotal float64 `json:"subtotal" binding:"min=0"`
}
