package service

import (
	"context"
	"fmt"

	"github.com/gestorplus/gestor-api/internal/domain/entity"
	"github.com/gestorplus/gestor-api/internal/domain/enum"
	"github.com/gestorplus/gestor-api/internal/domain/repository"
	infraRepo "github.com/gestorplus/gestor-api/internal/infrastructure/repository"
	"github.com/gestorplus/gestor-api/pkg/apperror"
	"github.com/gestorplus/gestor-api/pkg/pagination"
	"github.com/google/uuid"
)

// ClientService handles the client registry
type ClientService struct {
	clientRepo repository.ClientRepository
	saleRepo   repository.SaleRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository, saleRepo repository.SaleRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo, saleRepo: saleRepo}
}

// CreateClientInput represents the create client input
type CreateClientInput struct {
	Name     string
	Email    *string
	Phone    *string
	Address  *string
	Document *string
	Type     string
}

// CreateClient registers a new client
func (s *ClientService) CreateClient(ctx context.Context, input *CreateClientInput) (*entity.Client, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}
	userID, _ := infraRepo.GetUserID(ctx)

	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Client name is required")
	}

	clientType := enum.ClientTypeIndividual
	if input.Type != "" {
		clientType = enum.ClientType(input.Type)
		if !clientType.Valid() {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Invalid client type %q", input.Type))
		}
	}

	if input.Document != nil && *input.Document != "" {
		existing, err := s.clientRepo.GetByDocument(ctx, *input.Document)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("A client with this document already exists")
		}
	}

	client := &entity.Client{
		TenantID: tenantID,
		UserID:   userID,
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
		Document: input.Document,
		Type:     clientType,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// UpdateClientInput represents the update client input
type UpdateClientInput struct {
	Name     *string
	Email    *string
	Phone    *string
	Address  *string
	Document *string
	Type     *string
}

// UpdateClient updates registry fields. TotalSpent is never editable; it only
// changes through checkouts and cancellations.
func (s *ClientService) UpdateClient(ctx context.Context, id uuid.UUID, input *UpdateClientInput) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	if input.Name != nil && *input.Name != "" {
		client.Name = *input.Name
	}
	if input.Email != nil {
		client.Email = input.Email
	}
	if input.Phone != nil {
		client.Phone = input.Phone
	}
	if input.Address != nil {
		client.Address = input.Address
	}
	if input.Document != nil {
		if *input.Document != "" {
			existing, err := s.clientRepo.GetByDocument(ctx, *input.Document)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != client.ID {
				return nil, apperror.NewConflictError("A client with this document already exists")
			}
		}
		client.Document = input.Document
	}
	if input.Type != nil && *input.Type != "" {
		clientType := enum.ClientType(*input.Type)
		if !clientType.Valid() {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Invalid client type %q", *input.Type))
		}
		client.Type = clientType
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// ListClients lists clients with pagination and search
func (s *ClientService) ListClients(ctx context.Context, params *pagination.Params, search string) (*pagination.PaginatedResult[entity.Client], error) {
	clients, total, err := s.clientRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(clients, params, total), nil
}

// DeleteClient removes a client from the registry. Past sales keep their
// client reference through the soft delete.
func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return apperror.NewNotFoundError("Client")
	}
	return s.clientRepo.Delete(ctx, id)
}

// GetClientPurchases lists a client's sales history
func (s *ClientService) GetClientPurchases(ctx context.Context, id uuid.UUID, params *pagination.Params) (*pagination.PaginatedResult[entity.Sale], error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	sales, total, err := s.saleRepo.List(ctx, &repository.SaleFilterParams{
		Pagination: params,
		ClientID:   &id,
	})
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(sales, params, total), nil
}
