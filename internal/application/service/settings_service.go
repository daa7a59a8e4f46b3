package service

import (
	"context"

	"github.com/gestorplus/gestor-api/internal/domain/entity"
	"github.com/gestorplus/gestor-api/internal/domain/repository"
	infraRepo "github.com/gestorplus/gestor-api/internal/infrastructure/repository"
	"github.com/gestorplus/gestor-api/pkg/apperror"
)

// SettingsService manages per-tenant receipt identity
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	tenantRepo   repository.TenantRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository, tenantRepo repository.TenantRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo, tenantRepo: tenantRepo}
}

// GetSettings returns the tenant's settings, creating defaults on first
// access so receipts always have an identity to print.
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.CompanySettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	settings = &entity.CompanySettings{
		TenantID:     tenantID,
		PaperWidthMM: 80,
	}
	if tenant, err := s.tenantRepo.GetByID(ctx, tenantID); err == nil && tenant != nil {
		settings.TradeName = tenant.Name
	}
	if err := s.settingsRepo.Create(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdateSettingsInput represents the update settings input
type UpdateSettingsInput struct {
	TradeName     *string
	Address       *string
	Phone         *string
	TaxID         *string
	ReceiptFooter *string
	PaperWidthMM  *int
}

// UpdateSettings updates the tenant's receipt identity. Paper width is
// restricted to the two thermal formats in use.
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.CompanySettings, error) {
	if input.PaperWidthMM != nil && *input.PaperWidthMM != 58 && *input.PaperWidthMM != 80 {
		return nil, apperror.NewBadRequestError("Paper width must be 58 or 80")
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if input.TradeName != nil && *input.TradeName != "" {
		settings.TradeName = *input.TradeName
	}
	if input.Address != nil {
		settings.Address = input.Address
	}
	if input.Phone != nil {
		settings.Phone = input.Phone
	}
	if input.TaxID != nil {
		settings.TaxID = input.TaxID
	}
	if input.ReceiptFooter != nil {
		settings.ReceiptFooter = input.ReceiptFooter
	}
	if input.PaperWidthMM != nil {
		settings.PaperWidthMM = *input.PaperWidthMM
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
