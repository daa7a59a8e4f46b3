package repository

import (
	"context"

	"github.com/gestorplus/gestor-api/internal/domain/entity"
)

// SettingsRepository defines the interface for company settings access.
// Settings are keyed by the tenant in context.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.CompanySettings, error)
	Create(ctx context.Context, settings *entity.CompanySettings) error
	Update(ctx context.Context, settings *entity.CompanySettings) error
}
