package orders

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// QueryUseCase lecturas de órdenes.
type QueryUseCase struct {
	orderRepo repository.OrderRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(orderRepo repository.OrderRepository) *QueryUseCase {
	return &QueryUseCase{orderRepo: orderRepo}
}

// GetByID obtiene la orden con cliente e ítems.
func (uc *QueryUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewPersistenceError("leer orden", err)
	}
	if order == nil {
		return nil, domain.NewNotFoundError("order", id)
	}
	return dto.NewOrderResponse(order), nil
}

// List órdenes más recientes primero.
func (uc *QueryUseCase) List(ctx context.Context, limit int) (*dto.OrderListResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	list, err := uc.orderRepo.List(ctx, limit)
	if err != nil {
		return nil, domain.NewPersistenceError("listar órdenes", err)
	}
	out := &dto.OrderListResponse{Items: make([]dto.OrderResponse, 0, len(list))}
	for _, o := range list {
		out.Items = append(out.Items, *dto.NewOrderResponse(o))
	}
	return out, nil
}
