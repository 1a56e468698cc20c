package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock solo lo modifican el motor de transacciones (ventas y órdenes) y la edición absoluta del producto.
type Product struct {
	ID          string
	Name        string
	Description string
	SKU         string // único
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal
	Stock       int // nunca negativo
	MinStock    int // umbral de stock bajo
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock indica si el producto está en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}
