package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gestorplus/gestor-api/internal/domain/entity"
	"github.com/gestorplus/gestor-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	// GetByBarcode resolves a scanned/typed barcode; returns (nil, nil) when unknown
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	GetOutOfStock(ctx context.Context) ([]entity.Product, error)
	// GetExpiring returns perishable products expiring before the given date
	GetExpiring(ctx context.Context, before time.Time) ([]entity.Product, error)
	// AdjustStock applies a signed delta with a conditional update; a negative
	// delta only applies when resulting stock stays >= 0. Returns false when
	// the guard rejects the update (insufficient stock).
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (bool, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.Params
	Search     string
	CategoryID *uuid.UUID
	LowStock   bool
	OutOfStock bool
	SortBy     string
	SortOrder  string
}

// ProductCategoryRepository defines the interface for category data operations
type ProductCategoryRepository interface {
	Create(ctx context.Context, category *entity.ProductCategory) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductCategory, error)
	GetBySlug(ctx context.Context, slug string) (*entity.ProductCategory, error)
	Update(ctx context.Context, category *entity.ProductCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.Params, search string) ([]entity.ProductCategory, int64, error)
}
