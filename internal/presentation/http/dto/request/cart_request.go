package request

import "github.com/google/uuid"

// AddCartItemRequest adds a product to the cart
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"omitempty,min=1"`
}

// AddCartItemByBarcodeRequest adds a scanned product to the cart
type AddCartItemByBarcodeRequest struct {
	Barcode  string `json:"barcode" binding:"required"`
	Quantity int    `json:"quantity" binding:"omitempty,min=1"`
}

// UpdateCartItemRequest sets the quantity of a cart line. Zero removes it.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// UpdateCartSelectionsRequest updates the non-item checkout state. Only
// provided fields are touched; a nil client UUID clears the client.
type UpdateCartSelectionsRequest struct {
	ClientID        *uuid.UUID `json:"client_id"`
	PaymentMethod   *string    `json:"payment_method"`
	Installments    *int       `json:"installments" binding:"omitempty,min=1"`
	DiscountPercent *float64   `json:"discount_percent" binding:"omitempty,min=0,max=100"`
	Notes           *string    `json:"notes"`
}

// ApplyCouponRequest attaches a coupon code to the cart
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}
