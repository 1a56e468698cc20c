package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest entrada para registrar una venta.
type CreateSaleRequest struct {
	ClientID *string                 `json:"clientId"`
	Items    []CreateSaleItemRequest `json:"items" validate:"dive"`
}

// CreateSaleItemRequest línea de venta; siempre referencia un producto.
type CreateSaleItemRequest struct {
	ProductID  string           `json:"productId"`
	Quantity   int              `json:"quantity" validate:"min=1,max=1000000"`
	UnitPrice  decimal.Decimal  `json:"unitPrice"`
	Discount   *decimal.Decimal `json:"discount"`
	TotalPrice *decimal.Decimal `json:"totalPrice"`
}

// SaleItemResponse línea de venta.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Discount    decimal.Decimal `json:"discount"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID          string             `json:"id"`
	SaleNumber  string             `json:"saleNumber"`
	ClientID    *string            `json:"clientId"`
	Client      *ClientResponse    `json:"client,omitempty"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
	Items       []SaleItemResponse `json:"items"`
	CreatedBy   string             `json:"createdBy"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// SaleListRequest filtro opcional por fecha (YYYY-MM-DD). End incluye todo el día.
type SaleListRequest struct {
	Start string `query:"start"`
	End   string `query:"end"`
}

// SaleListResponse listado de ventas (más recientes primero, máximo 200).
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
}
