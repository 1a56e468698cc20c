package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest entrada para crear una orden de servicio.
type CreateOrderRequest struct {
	ClientID    string                   `json:"clientId" validate:"required"`
	Description string                   `json:"description" validate:"max=2000"`
	Items       []CreateOrderItemRequest `json:"items" validate:"dive"`
}

// CreateOrderItemRequest línea de orden. ProductID nil = servicio (no descuenta stock).
// TotalPrice es opcional y solo se usa para verificar el cálculo del servidor.
type CreateOrderItemRequest struct {
	ProductID   *string          `json:"productId"`
	Description string           `json:"description" validate:"required,max=500"`
	Quantity    int              `json:"quantity" validate:"min=1,max=1000000"`
	UnitPrice   decimal.Decimal  `json:"unitPrice"`
	Discount    *decimal.Decimal `json:"discount"`
	TotalPrice  *decimal.Decimal `json:"totalPrice"`
}

// UpdateOrderStatusRequest PATCH /orders/:id.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SignOrderRequest POST /orders/:id/sign. SignedBy vacío = usuario autenticado.
type SignOrderRequest struct {
	SignedBy string `json:"signedBy" validate:"max=200"`
}

// OrderItemResponse línea de orden.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   *string         `json:"productId"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Discount    decimal.Decimal `json:"discount"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// OrderResponse salida de una orden con cliente e ítems.
type OrderResponse struct {
	ID          string              `json:"id"`
	OrderNumber string              `json:"orderNumber"`
	ClientID    string              `json:"clientId"`
	Client      *ClientResponse     `json:"client,omitempty"`
	Status      string              `json:"status"`
	Description string              `json:"description"`
	TotalAmount decimal.Decimal     `json:"totalAmount"`
	Items       []OrderItemResponse `json:"items"`
	SignedAt    *time.Time          `json:"signedAt,omitempty"`
	SignedBy    string              `json:"signedBy,omitempty"`
	CreatedBy   string              `json:"createdBy"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// OrderListResponse listado de órdenes (más recientes primero).
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
}
