package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta de mostrador (número V-NNNNNN). No tiene ciclo de vida.
type Sale struct {
	ID          string
	SaleNumber  string
	ClientID    *string
	Client      *Client // cargado en lecturas cuando ClientID no es nil
	TotalAmount decimal.Decimal
	Items       []*SaleItem
	CreatedBy   string
	CreatedAt   time.Time
}

// SaleItem línea de una venta. Siempre referencia un producto.
type SaleItem struct {
	ID         string
	SaleID     string
	ProductID  string
	Product    *Product // cargado en lecturas
	Quantity   int
	UnitPrice  decimal.Decimal
	Discount   decimal.Decimal
	TotalPrice decimal.Decimal
}
