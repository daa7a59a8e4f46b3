package request

import "github.com/google/uuid"

// CreateProductRequest represents a product creation request. Prices arrive
// as decimals and are stored as cents.
type CreateProductRequest struct {
	CategoryID     *uuid.UUID `json:"category_id"`
	Name           string     `json:"name" binding:"required,min=2,max=255"`
	Barcode        *string    `json:"barcode" binding:"omitempty,max=100"`
	Stock          int        `json:"stock" binding:"min=0"`
	MinStock       int        `json:"min_stock" binding:"min=0"`
	CostPrice      float64    `json:"cost_price" binding:"min=0"`
	SalePrice      float64    `json:"sale_price" binding:"min=0"`
	Perishable     bool       `json:"perishable"`
	ManufacturedAt *string    `json:"manufactured_at"` // YYYY-MM-DD
	ExpiresAt      *string    `json:"expires_at"`      // YYYY-MM-DD
	Notes          *string    `json:"notes"`
}

// UpdateProductRequest represents a product update request. Stock is absent
// on purpose; it only changes through the stock adjustment endpoint.
type UpdateProductRequest struct {
	CategoryID     *uuid.UUID `json:"category_id"`
	Name           *string    `json:"name" binding:"omitempty,min=2,max=255"`
	Barcode        *string    `json:"barcode" binding:"omitempty,max=100"`
	MinStock       *int       `json:"min_stock" binding:"omitempty,min=0"`
	CostPrice      *float64   `json:"cost_price" binding:"omitempty,min=0"`
	SalePrice      *float64   `json:"sale_price" binding:"omitempty,min=0"`
	Perishable     *bool      `json:"perishable"`
	ManufacturedAt *string    `json:"manufactured_at"`
	ExpiresAt      *string    `json:"expires_at"`
	Notes          *string    `json:"notes"`
}

// AdjustStockRequest represents a manual stock adjustment
type AdjustStockRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	LowStock   bool   `form:"low_stock"`
	OutOfStock bool   `form:"out_of_stock"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}

// UpdateCategoryRequest represents a category update request
type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}
