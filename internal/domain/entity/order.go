package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order representa una orden de servicio (número OS-NNNNNN).
type Order struct {
	ID          string
	OrderNumber string
	ClientID    string
	Client      *Client // cargado en lecturas
	Status      OrderStatus
	Description string
	TotalAmount decimal.Decimal
	Items       []*OrderItem
	SignedAt    *time.Time
	SignedBy    string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderItem línea de una orden. ProductID vacío = servicio o ítem libre (no toca stock).
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   *string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	TotalPrice  decimal.Decimal
}

// HasProduct indica si la línea referencia un producto del catálogo.
func (i *OrderItem) HasProduct() bool {
	return i.ProductID != nil && *i.ProductID != ""
}
