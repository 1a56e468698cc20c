package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalClients  int `json:"totalClients"`
	TotalProducts int `json:"totalProducts"`
	TotalOrders   int `json:"totalOrders"`

	// Hasta 10 productos con stock <= minStock, menor stock primero.
	LowStock []LowStockProductDTO `json:"lowStock"`
}

// LowStockProductDTO producto en o por debajo de su stock mínimo.
type LowStockProductDTO struct {
	ProductID string          `json:"productId"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Stock     int             `json:"stock"`
	MinStock  int             `json:"minStock"`
	Price     decimal.Decimal `json:"price"`
}
