package repository

import (
	"context"
	"errors"

	"github.com/gestorplus/gestor-api/internal/domain/entity"
	"github.com/gestorplus/gestor-api/internal/domain/enum"
	domainRepo "github.com/gestorplus/gestor-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// errInsufficientStock is a sentinel used to roll back the checkout
// transaction without surfacing a database error to the caller.
var errInsufficientStock = errors.New("insufficient stock")

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// CreateWithItems persists a checkout atomically. Per line it decrements
// stock with a conditional update, then writes the sale, its items, one
// outbound stock movement per line, the coupon usage bump and the client
// total-spent update. Any insufficient line rolls the whole thing back.
func (r *saleRepository) CreateWithItems(ctx context.Context, sale *entity.Sale, items []entity.SaleItem, couponID *uuid.UUID) ([]uuid.UUID, error) {
	var insufficient []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Conditional decrement per line. Collecting every failing product
		// lets the caller report all shortages at once.
		for _, item := range items {
			result := tx.Model(&entity.Product{}).
				Where("id = ? AND tenant_id = ? AND stock >= ?", item.ProductID, sale.TenantID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				insufficient = append(insufficient, item.ProductID)
			}
		}
		if len(insufficient) > 0 {
			return errInsufficientStock
		}

		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].SaleID = sale.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		movements := make([]entity.StockMovement, 0, len(items))
		for _, item := range items {
			movements = append(movements, entity.StockMovement{
				TenantID:  sale.TenantID,
				ProductID: item.ProductID,
				UserID:    sale.UserID,
				SaleID:    &sale.ID,
				Type:      enum.MovementTypeOut,
				Quantity:  item.Quantity,
				Reason:    enum.MovementReasonSale,
			})
		}
		if err := tx.Create(&movements).Error; err != nil {
			return err
		}

		if couponID != nil {
			result := tx.Model(&entity.Coupon{}).
				Where("id = ? AND (usage_limit = 0 OR used_count < usage_limit)", *couponID).
				Update("used_count", gorm.Expr("used_count + 1"))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return errors.New("coupon usage limit reached")
			}
		}

		if sale.ClientID != nil {
			if err := tx.Model(&entity.Client{}).
				Where("id = ?", *sale.ClientID).
				Update("total_spent", gorm.Expr("total_spent + ?", sale.Total)).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if errors.Is(err, errInsufficientStock) {
		return insufficient, nil
	}
	return nil, err
}

// CancelAndRestore reverses a completed sale atomically. The status flip is
// conditional on the sale still being completed, so a concurrent or retried
// cancellation can never restore stock twice: either this transaction applies
// in full or nothing does.
func (r *saleRepository) CancelAndRestore(ctx context.Context, sale *entity.Sale, userID uuid.UUID) (bool, error) {
	cancelled := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Sale{}).
			Where("id = ? AND tenant_id = ? AND status = ?", sale.ID, sale.TenantID, enum.SaleStatusCompleted).
			Update("status", enum.SaleStatusCancelled)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		cancelled = true

		movements := make([]entity.StockMovement, 0, len(sale.Items))
		for _, item := range sale.Items {
			if err := tx.Model(&entity.Product{}).
				Where("id = ? AND tenant_id = ?", item.ProductID, sale.TenantID).
				Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
			movements = append(movements, entity.StockMovement{
				TenantID:  sale.TenantID,
				ProductID: item.ProductID,
				UserID:    userID,
				SaleID:    &sale.ID,
				Type:      enum.MovementTypeIn,
				Quantity:  item.Quantity,
				Reason:    enum.MovementReasonCancellation,
			})
		}
		if len(movements) > 0 {
			if err := tx.Create(&movements).Error; err != nil {
				return err
			}
		}

		if sale.ClientID != nil {
			if err := tx.Model(&entity.Client{}).
				Where("id = ?", *sale.ClientID).
				Update("total_spent", gorm.Expr("GREATEST(total_spent - ?, 0)", sale.Total)).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return false, err
	}
	return cancelled, nil
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Client").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Scopes(TenantScope(ctx)).
		Preload("Client").
		Preload("User").
		Preload("Items").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		First(&sale, "receipt_no = ?", receiptNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{}).Scopes(TenantScope(ctx))

	if params.Search != "" {
		query = query.Where("receipt_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.ClientID != nil {
		query = query.Where("client_id = ?", *params.ClientID)
	}

	if params.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *params.PaymentMethod)
	}

	if params.StartDate != nil {
		query = query.Where("sale_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("sale_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	switch params.SortBy {
	case "sale_date", "total", "receipt_no", "created_at":
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Client").
		Preload("User").
		Order(sortBy + " " + sortOrder).
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Sale{}).
		Scopes(TenantScope(ctx)).
		Where("id = ?", id).
		Update("status", status).Error
}
