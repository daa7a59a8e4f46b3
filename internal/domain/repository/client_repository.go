package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/gestorplus/gestor-api/internal/domain/entity"
	"github.com/gestorplus/gestor-api/pkg/pagination"
)

// ClientRepository defines the interface for client registry operations
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	GetByDocument(ctx context.Context, document string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.Params, search string) ([]entity.Client, int64, error)
	// TopSpenders returns clients ordered by accumulated spending
	TopSpenders(ctx context.Context, limit int) ([]entity.Client, error)
}
