package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para reportes y dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// SalesBetween fecha y total de cada venta del período. El agrupado por semana
// se hace en Go para respetar la zona horaria configurada.
func (r *AnalyticsRepo) SalesBetween(ctx context.Context, start, end time.Time) ([]repository.SaleAmount, error) {
	const query = `
	SELECT created_at, total_amount
	FROM sales
	WHERE created_at BETWEEN $1 AND $2
	ORDER BY created_at`

	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics.SalesBetween: %w", err)
	}
	defer rows.Close()

	var results []repository.SaleAmount
	for rows.Next() {
		var row repository.SaleAmount
		if err := rows.Scan(&row.CreatedAt, &row.TotalAmount); err != nil {
			return nil, fmt.Errorf("analytics.SalesBetween scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func (r *AnalyticsRepo) CountClients(ctx context.Context) (int, error) {
	return r.count(ctx, "clients")
}

func (r *AnalyticsRepo) CountProducts(ctx context.Context) (int, error) {
	return r.count(ctx, "products")
}

func (r *AnalyticsRepo) CountOrders(ctx context.Context) (int, error) {
	return r.count(ctx, "orders")
}

// count table es siempre una constante interna, nunca entrada del usuario.
func (r *AnalyticsRepo) count(ctx context.Context, table string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.count %s: %w", table, err)
	}
	return n, nil
}
