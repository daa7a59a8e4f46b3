package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gestorplus/gestor-api/internal/domain/entity"
	"github.com/gestorplus/gestor-api/internal/domain/enum"
	"github.com/gestorplus/gestor-api/pkg/pagination"
)

// SaleRepository defines the interface for the sale ledger
type SaleRepository interface {
	// CreateWithItems persists a sale inside one database transaction:
	// per-line conditional stock decrement, sale row, item rows, outbound
	// stock movements, coupon usage increment and client total-spent update.
	// If any line has insufficient stock the whole transaction rolls back and
	// the offending product IDs are returned with a nil error.
	CreateWithItems(ctx context.Context, sale *entity.Sale, items []entity.SaleItem, couponID *uuid.UUID) (insufficient []uuid.UUID, err error)
	// CancelAndRestore flips a completed sale to cancelled inside one
	// transaction: conditional status update, per-line stock restore, inbound
	// stock movements and client total-spent rollback. Returns false with a
	// nil error when the sale was no longer in the completed state.
	CancelAndRestore(ctx context.Context, sale *entity.Sale, userID uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error
}

// SaleFilterParams contains filtering parameters for ledger queries
type SaleFilterParams struct {
	Pagination    *pagination.Params
	Search        string
	Status        *enum.SaleStatus
	ClientID      *uuid.UUID
	PaymentMethod *enum.PaymentMethod
	StartDate     *time.Time
	EndDate       *time.Time
	SortBy        string
	SortOrder     string
}
