package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/gestorplus/gestor-api/internal/domain/entity"
	"github.com/gestorplus/gestor-api/pkg/pagination"
)

// StockMovementRepository defines the interface for the stock movement log
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, productID uuid.UUID, params *pagination.Params) ([]entity.StockMovement, int64, error)
	List(ctx context.Context, params *pagination.Params) ([]entity.StockMovement, int64, error)
}
