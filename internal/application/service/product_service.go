package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gestorplus/gestor-api/internal/domain/entity"
	"github.com/gestorplus/gestor-api/internal/domain/enum"
	"github.com/gestorplus/gestor-api/internal/domain/repository"
	infraRepo "github.com/gestorplus/gestor-api/internal/infrastructure/repository"
	"github.com/gestorplus/gestor-api/pkg/apperror"
	"github.com/gestorplus/gestor-api/pkg/pagination"
	"github.com/gestorplus/gestor-api/pkg/utils"
	"github.com/google/uuid"
)

// ProductService handles catalog and stock operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.ProductCategoryRepository
	movementRepo repository.StockMovementRepository
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.ProductCategoryRepository,
	movementRepo repository.StockMovementRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		movementRepo: movementRepo,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name           string
	CategoryID     *uuid.UUID
	Barcode        *string
	Stock          int
	MinStock       int
	CostPrice      float64
	SalePrice      float64
	Perishable     bool
	ManufacturedAt *time.Time
	ExpiresAt      *time.Time
	Notes          *string
}

// CreateProduct creates a new catalog item. Initial stock is recorded as an
// inbound restock movement so the log starts consistent.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	userID, _ := infraRepo.GetUserID(ctx)

	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Product name is required")
	}
	if input.SalePrice < 0 || input.CostPrice < 0 {
		return nil, apperror.NewBadRequestError("Prices cannot be negative")
	}
	if input.Stock < 0 {
		return nil, apperror.NewBadRequestError("Stock cannot be negative")
	}
	if input.Perishable && input.ExpiresAt == nil {
		return nil, apperror.NewBadRequestError("Perishable products require an expiry date")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	if input.Barcode != nil && *input.Barcode != "" {
		existing, err := s.productRepo.GetByBarcode(ctx, *input.Barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError(fmt.Sprintf("Barcode %s is already in use", *input.Barcode))
		}
	}

	slug := utils.Slugify(input.Name)
	if existing, err := s.productRepo.GetBySlug(ctx, slug); err != nil {
		return nil, err
	} else if existing != nil {
		slug = fmt.Sprintf("%s-%s", slug, uuid.New().String()[:6])
	}

	product := &entity.Product{
		TenantID:       tenantID,
		UserID:         userID,
		CategoryID:     input.CategoryID,
		Name:           input.Name,
		Slug:           slug,
		Barcode:        input.Barcode,
		Stock:          input.Stock,
		MinStock:       input.MinStock,
		Perishable:     input.Perishable,
		ManufacturedAt: input.ManufacturedAt,
		ExpiresAt:      input.ExpiresAt,
		Notes:          input.Notes,
	}
	product.SetCostPriceFromDecimal(input.CostPrice)
	product.SetSalePriceFromDecimal(input.SalePrice)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	if input.Stock > 0 {
		_ = s.movementRepo.Create(ctx, &entity.StockMovement{
			TenantID:  tenantID,
			ProductID: product.ID,
			UserID:    userID,
			Type:      enum.MovementTypeIn,
			Quantity:  input.Stock,
			Reason:    enum.MovementReasonRestock,
		})
	}

	return product, nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	Name           *string
	CategoryID     *uuid.UUID
	Barcode        *string
	MinStock       *int
	CostPrice      *float64
	SalePrice      *float64
	Perishable     *bool
	ManufacturedAt *time.Time
	ExpiresAt      *time.Time
	Notes          *string
}

// UpdateProduct updates catalog fields. Stock is deliberately not editable
// here; it only changes through sales and stock adjustments.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil && *input.Name != "" && *input.Name != product.Name {
		product.Name = *input.Name
		slug := utils.Slugify(*input.Name)
		if existing, err := s.productRepo.GetBySlug(ctx, slug); err != nil {
			return nil, err
		} else if existing != nil && existing.ID != product.ID {
			slug = fmt.Sprintf("%s-%s", slug, uuid.New().String()[:6])
		}
		product.Slug = slug
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		product.CategoryID = input.CategoryID
	}
	if input.Barcode != nil {
		if *input.Barcode != "" {
			existing, err := s.productRepo.GetByBarcode(ctx, *input.Barcode)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != product.ID {
				return nil, apperror.NewConflictError(fmt.Sprintf("Barcode %s is already in use", *input.Barcode))
			}
		}
		product.Barcode = input.Barcode
	}
	if input.MinStock != nil {
		product.MinStock = *input.MinStock
	}
	if input.CostPrice != nil {
		product.SetCostPriceFromDecimal(*input.CostPrice)
	}
	if input.SalePrice != nil {
		product.SetSalePriceFromDecimal(*input.SalePrice)
	}
	if input.Perishable != nil {
		product.Perishable = *input.Perishable
	}
	if input.ManufacturedAt != nil {
		product.ManufacturedAt = input.ManufacturedAt
	}
	if input.ExpiresAt != nil {
		product.ExpiresAt = input.ExpiresAt
	}
	if input.Notes != nil {
		product.Notes = input.Notes
	}

	if product.Perishable && product.ExpiresAt == nil {
		return nil, apperror.NewBadRequestError("Perishable products require an expiry date")
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByBarcode resolves a scanned or typed barcode
func (s *ProductService) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	product, err := s.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product with barcode " + barcode)
	}
	return product, nil
}

// ListProducts lists catalog items with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(products, params.Pagination, total), nil
}

// DeleteProduct removes a product from the catalog
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

// AdjustStockInput represents a manual stock adjustment
type AdjustStockInput struct {
	Delta  int
	Reason string
}

// AdjustStock applies a manual signed stock change and logs the movement.
// The conditional update rejects adjustments that would go negative.
func (s *ProductService) AdjustStock(ctx context.Context, id uuid.UUID, input *AdjustStockInput) (*entity.Product, error) {
	if input.Delta == 0 {
		return nil, apperror.NewBadRequestError("Adjustment delta cannot be zero")
	}

	reason := input.Reason
	if reason == "" {
		reason = enum.MovementReasonAdjustment
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	ok, err := s.productRepo.AdjustStock(ctx, id, input.Delta)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewInsufficientStockError([]string{product.Name})
	}

	userID, _ := infraRepo.GetUserID(ctx)
	movementType := enum.MovementTypeIn
	quantity := input.Delta
	if input.Delta < 0 {
		movementType = enum.MovementTypeOut
		quantity = -input.Delta
	}
	_ = s.movementRepo.Create(ctx, &entity.StockMovement{
		TenantID:  product.TenantID,
		ProductID: product.ID,
		UserID:    userID,
		Type:      movementType,
		Quantity:  quantity,
		Reason:    reason,
	})

	return s.productRepo.GetByID(ctx, id)
}

// GetLowStock returns products at or below their alert threshold
func (s *ProductService) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// GetOutOfStock returns products with zero stock
func (s *ProductService) GetOutOfStock(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetOutOfStock(ctx)
}

// GetExpiring returns perishable products expiring within the given days
func (s *ProductService) GetExpiring(ctx context.Context, days int) ([]entity.Product, error) {
	if days <= 0 {
		days = 30
	}
	return s.productRepo.GetExpiring(ctx, time.Now().AddDate(0, 0, days))
}

// ListMovements lists the stock movement log for a product
func (s *ProductService) ListMovements(ctx context.Context, productID uuid.UUID, params *pagination.Params) (*pagination.PaginatedResult[entity.StockMovement], error) {
	movements, total, err := s.movementRepo.ListByProduct(ctx, productID, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(movements, params, total), nil
}

// CreateCategory creates a product category
func (s *ProductService) CreateCategory(ctx context.Context, name string) (*entity.ProductCategory, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	userID, _ := infraRepo.GetUserID(ctx)

	if name == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}

	slug := utils.Slugify(name)
	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError(fmt.Sprintf("Category %s already exists", name))
	}

	category := &entity.ProductCategory{
		TenantID: tenantID,
		UserID:   userID,
		Name:     name,
		Slug:     slug,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames a product category
func (s *ProductService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*entity.ProductCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	if name != "" && name != category.Name {
		category.Name = name
		category.Slug = utils.Slugify(name)
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lists product categories
func (s *ProductService) ListCategories(ctx context.Context, params *pagination.Params, search string) (*pagination.PaginatedResult[entity.ProductCategory], error) {
	categories, total, err := s.categoryRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(categories, params, total), nil
}

// DeleteCategory removes a product category
func (s *ProductService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	return s.categoryRepo.Delete(ctx, id)
}
