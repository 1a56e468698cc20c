package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SaleAmount punto mínimo para reportes: fecha y total de una venta.
type SaleAmount struct {
	CreatedAt   time.Time
	TotalAmount decimal.Decimal
}

// AnalyticsRepository define las consultas de lectura para reportes.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// SalesBetween devuelve las ventas con created_at en [start, end].
	SalesBetween(ctx context.Context, start, end time.Time) ([]SaleAmount, error)

	// ── Métodos del Dashboard ─────────────────────────────────────────────────

	CountClients(ctx context.Context) (int, error)
	CountProducts(ctx context.Context) (int, error)
	CountOrders(ctx context.Context) (int, error)
}
