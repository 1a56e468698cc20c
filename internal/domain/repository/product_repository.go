package repository

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetBySKU devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// Update reemplaza todos los campos editables, incluido Stock (edición absoluta).
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// ListLowStock productos con stock <= min_stock, menor stock primero.
	ListLowStock(ctx context.Context, limit int) ([]*entity.Product, error)
	// Delete devuelve domain.ErrProductInUse si alguna línea de venta u orden lo referencia.
	Delete(ctx context.Context, id string) error

	// DecrementStock descuenta qty solo si stock >= qty (una sola sentencia condicional).
	// Devuelve false sin modificar nada si el stock no alcanza o el producto no existe.
	DecrementStock(ctx context.Context, id string, qty int) (bool, error)
	// IncrementStock devuelve qty unidades al stock (compensación por cancelación).
	IncrementStock(ctx context.Context, id string, qty int) error
}
