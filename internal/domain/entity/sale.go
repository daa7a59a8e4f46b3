package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gestorplus/gestor-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale represents a completed checkout: the persisted ledger entry.
// A sale is created exactly once and never edited; corrections happen via
// cancellation (which restores stock) and a new sale.
type Sale struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TenantID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	UserID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	ClientID        *uuid.UUID         `gorm:"type:uuid;index" json:"client_id,omitempty"`
	ReceiptNo       string             `gorm:"size:100;unique;not null" json:"receipt_no"`
	SaleDate        time.Time          `gorm:"not null" json:"sale_date"`
	Status          enum.SaleStatus    `gorm:"default:0" json:"status"`
	TotalItems      int                `gorm:"default:0" json:"total_items"`
	SubTotal        int64              `gorm:"default:0" json:"-"` // Stored in cents
	DiscountPercent float64            `gorm:"default:0" json:"discount_percent"`
	DiscountAmount  int64              `gorm:"default:0" json:"-"` // Stored in cents
	CouponCode      *string            `gorm:"size:100" json:"coupon_code,omitempty"`
	CouponDiscount  int64              `gorm:"default:0" json:"-"` // Stored in cents
	Total           int64              `gorm:"default:0" json:"-"` // Stored in cents
	PaymentMethod   enum.PaymentMethod `gorm:"size:50;not null" json:"payment_method"`
	Installments    *int               `json:"installments,omitempty"`
	Notes           *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	DeletedAt       gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Tenant Tenant     `gorm:"foreignKey:TenantID" json:"-"`
	User   User       `gorm:"foreignKey:UserID" json:"-"`
	Client *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Items  []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		SubTotal       float64 `json:"sub_total"`
		DiscountAmount float64 `json:"discount_amount"`
		CouponDiscount float64 `json:"coupon_discount"`
		Total          float64 `json:"total"`
	}{
		Alias:          Alias(s),
		SubTotal:       float64(s.SubTotal) / 100,
		DiscountAmount: float64(s.DiscountAmount) / 100,
		CouponDiscount: float64(s.CouponDiscount) / 100,
		Total:          float64(s.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// GetTotalDecimal returns the total as a decimal
func (s *Sale) GetTotalDecimal() float64 {
	return float64(s.Total) / 100
}

// GetSubTotalDecimal returns the subtotal as a decimal
func (s *Sale) GetSubTotalDecimal() float64 {
	return float64(s.SubTotal) / 100
}

// SaleItem represents a line item in a sale. Product name and unit price are
// snapshots taken at submission time so the ledger survives later catalog
// edits.
type SaleItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string         `gorm:"size:255;not null" json:"product_name"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	UnitPrice   int64          `gorm:"not null" json:"-"` // Stored in cents
	Total       int64          `gorm:"not null" json:"-"` // Stored in cents
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Sale    Sale    `gorm:"foreignKey:SaleID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(si),
		UnitPrice: float64(si.UnitPrice) / 100,
		Total:     float64(si.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
