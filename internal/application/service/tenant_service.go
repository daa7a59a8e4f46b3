package service

import (
	"context"
	"fmt"

	"github.com/gestorplus/gestor-api/internal/domain/entity"
	"github.com/gestorplus/gestor-api/internal/domain/enum"
	"github.com/gestorplus/gestor-api/internal/domain/repository"
	"github.com/gestorplus/gestor-api/pkg/apperror"
	"github.com/google/uuid"
)

// TenantService manages the businesses registered in the system
type TenantService struct {
	tenantRepo repository.TenantRepository
}

// NewTenantService creates a new tenant service
func NewTenantService(tenantRepo repository.TenantRepository) *TenantService {
	return &TenantService{tenantRepo: tenantRepo}
}

// GetTenant retrieves a tenant by ID
func (s *TenantService) GetTenant(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.NewNotFoundError("Tenant")
	}
	return tenant, nil
}

// UpdateTenantInput represents the update tenant input
type UpdateTenantInput struct {
	Name     *string
	Category *string
	Document *string
}

// UpdateTenant updates the business profile. The slug is fixed at creation
// and never changes; external references depend on it.
func (s *TenantService) UpdateTenant(ctx context.Context, id uuid.UUID, input *UpdateTenantInput) (*entity.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.NewNotFoundError("Tenant")
	}

	if input.Name != nil && *input.Name != "" {
		tenant.Name = *input.Name
	}
	if input.Category != nil && *input.Category != "" {
		category := enum.BusinessCategory(*input.Category)
		if !category.Valid() {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Invalid business category %q", *input.Category))
		}
		tenant.Category = category
	}
	if input.Document != nil {
		tenant.Document = input.Document
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

// DeactivateTenant marks the business as inactive. Data is kept; logins for
// its users are refused by the auth middleware.
func (s *TenantService) DeactivateTenant(ctx context.Context, id uuid.UUID) error {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tenant == nil {
		return apperror.NewNotFoundError("Tenant")
	}
	tenant.Active = false
	return s.tenantRepo.Update(ctx, tenant)
}
