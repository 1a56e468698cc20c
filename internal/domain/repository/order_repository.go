package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order y sus ítems.
type OrderRepository interface {
	// Create inserta la cabecera y todas sus líneas.
	Create(ctx context.Context, order *entity.Order) error
	// GetByID carga la orden con cliente e ítems; (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate como GetByID pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, limit int) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus, updatedAt time.Time) error
	Sign(ctx context.Context, id, signedBy string, signedAt time.Time) error
}
