// Package cart implements the in-memory cart a checkout session is built
// from. A cart has no server-side persistence: it lives only inside the
// operator's session until it is submitted as a sale.
package cart

import (
	"github.com/google/uuid"
	"github.com/gestorplus/gestor-api/internal/domain/enum"
)

// Item is a single cart line. UnitPrice is a snapshot taken when the product
// was added and does not track later catalog price changes.
type Item struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   int64     `json:"unit_price"` // cents
	Total       int64     `json:"total"`      // cents, always Quantity * UnitPrice
}

// Cart accumulates line items and checkout selections for one in-progress
// sale. Insertion order is preserved for display; totals do not depend on it.
type Cart struct {
	Items           []Item             `json:"items"`
	ClientID        *uuid.UUID         `json:"client_id,omitempty"`
	PaymentMethod   enum.PaymentMethod `json:"payment_method,omitempty"`
	Installments    int                `json:"installments,omitempty"`
	DiscountPercent float64            `json:"discount_percent"`
	CouponCode      string             `json:"coupon_code,omitempty"`
	CouponDiscount  int64              `json:"coupon_discount"` // cents, advisory until submission
	Notes           string             `json:"notes,omitempty"`
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{Items: []Item{}}
}

// Add puts qty units of a product into the cart. If a line for the same
// product already exists its quantity is incremented; a duplicate line is
// never created. Quantities below 1 are treated as 1.
func (c *Cart) Add(productID uuid.UUID, name string, unitPrice int64, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += qty
			c.Items[i].Total = int64(c.Items[i].Quantity) * c.Items[i].UnitPrice
			return
		}
	}
	c.Items = append(c.Items, Item{
		ProductID:   productID,
		ProductName: name,
		Quantity:    qty,
		UnitPrice:   unitPrice,
		Total:       int64(qty) * unitPrice,
	})
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line, so UpdateQuantity(id, 0) equals Remove(id).
func (c *Cart) UpdateQuantity(productID uuid.UUID, qty int) {
	if qty <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = qty
			c.Items[i].Total = int64(qty) * c.Items[i].UnitPrice
			return
		}
	}
}

// Remove deletes the line for the given product. No-op if absent.
func (c *Cart) Remove(productID uuid.UUID) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart and resets every checkout selection. This is the
// terminal state after a successful submission or an explicit reset.
func (c *Cart) Clear() {
	c.Items = []Item{}
	c.ClientID = nil
	c.PaymentMethod = ""
	c.Installments = 0
	c.DiscountPercent = 0
	c.CouponCode = ""
	c.CouponDiscount = 0
	c.Notes = ""
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalUnits returns the summed quantity across all lines.
func (c *Cart) TotalUnits() int {
	var n int
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// SubTotal returns the sum of line totals in cents.
func (c *Cart) SubTotal() int64 {
	var sum int64
	for _, it := range c.Items {
		sum += it.Total
	}
	return sum
}

// DiscountAmount returns the manual percentage discount in cents.
func (c *Cart) DiscountAmount() int64 {
	if c.DiscountPercent <= 0 {
		return 0
	}
	pct := c.DiscountPercent
	if pct > 100 {
		pct = 100
	}
	return int64(float64(c.SubTotal()) * pct / 100)
}

// Total returns subtotal minus percentage discount minus coupon discount,
// clamped at zero.
func (c *Cart) Total() int64 {
	total := c.SubTotal() - c.DiscountAmount() - c.CouponDiscount
	if total < 0 {
		return 0
	}
	return total
}
