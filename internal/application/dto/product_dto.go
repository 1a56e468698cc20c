package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Stock       int             `json:"stock" validate:"min=0"`
	MinStock    int             `json:"minStock" validate:"min=0"`
	Category    string          `json:"category" validate:"max=100"`
}

// UpdateProductRequest edición absoluta de un producto (PUT): reemplaza todos los campos, Stock incluido.
type UpdateProductRequest CreateProductRequest

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	SKU         string          `json:"sku"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"minStock"`
	Category    string          `json:"category"`
	LowStock    bool            `json:"lowStock"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
