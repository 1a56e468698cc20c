package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// ClientUseCase casos de uso para clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un nuevo cliente.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.NewValidationError("name", "el nombre es requerido")
	}
	now := time.Now()
	client := &entity.Client{ID: uuid.New().String(), CreatedAt: now}
	applyClient(client, in, now)
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, domain.WrapPersistence("crear cliente", err)
	}
	return dto.NewClientResponse(client), nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewPersistenceError("leer cliente", err)
	}
	if client == nil {
		return nil, domain.NewNotFoundError("client", id)
	}
	return dto.NewClientResponse(client), nil
}

// Update reemplaza los datos del cliente.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	req := dto.CreateClientRequest(in)
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.NewValidationError("name", "el nombre es requerido")
	}
	client, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewPersistenceError("leer cliente", err)
	}
	if client == nil {
		return nil, domain.NewNotFoundError("client", id)
	}
	applyClient(client, req, time.Now())
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, domain.WrapPersistence("actualizar cliente", err)
	}
	return dto.NewClientResponse(client), nil
}

// List lista clientes por nombre.
func (uc *ClientUseCase) List(ctx context.Context, limit, offset int) (*dto.ClientListResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, domain.NewPersistenceError("listar clientes", err)
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *dto.NewClientResponse(c))
	}
	return &dto.ClientListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func applyClient(c *entity.Client, in dto.CreateClientRequest, now time.Time) {
	c.Name = strings.TrimSpace(in.Name)
	c.Email = strings.TrimSpace(in.Email)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Document = strings.TrimSpace(in.Document)
	c.Address = strings.TrimSpace(in.Address)
	c.City = strings.TrimSpace(in.City)
	c.State = strings.TrimSpace(in.State)
	c.ZipCode = strings.TrimSpace(in.ZipCode)
	c.UpdatedAt = now
}
