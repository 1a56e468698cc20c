package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// SaleFilter filtro de listado de ventas. Start/End nil = sin límite.
type SaleFilter struct {
	Start *time.Time
	End   *time.Time
	Limit int
}

// SaleRepository define el puerto de persistencia para Sale y sus ítems.
type SaleRepository interface {
	// Create inserta la cabecera y todas sus líneas.
	Create(ctx context.Context, sale *entity.Sale) error
	// GetByID carga la venta con cliente e ítems (con producto); (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// List devuelve ventas más recientes primero, con cliente e ítems.
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
}
