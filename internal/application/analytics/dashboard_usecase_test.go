package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/application/inventory"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// lowStockRepo solo implementa ListLowStock; el resto no se usa en el dashboard.
type lowStockRepo struct {
	repository.ProductRepository
	items []*entity.Product
}

func (r lowStockRepo) ListLowStock(_ context.Context, limit int) ([]*entity.Product, error) {
	if len(r.items) > limit {
		return r.items[:limit], nil
	}
	return r.items, nil
}

func TestDashboard_GetSummary(t *testing.T) {
	now := time.Now()
	products := lowStockRepo{items: []*entity.Product{
		{ID: "p1", SKU: "A", Name: "Agotado", Stock: 0, MinStock: 2, Price: decimal.NewFromInt(3), CreatedAt: now},
		{ID: "p2", SKU: "B", Name: "Poco", Stock: 1, MinStock: 2, Price: decimal.NewFromInt(4), CreatedAt: now},
	}}
	uc := NewDashboardUseCase(&stubAnalytics{}, inventory.NewStockService(products))

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, out.TotalClients)
	assert.Equal(t, 0, out.TotalProducts)
	assert.Equal(t, 7, out.TotalOrders)
	require.Len(t, out.LowStock, 2)
	assert.Equal(t, "p1", out.LowStock[0].ProductID)
	assert.Equal(t, 2, out.LowStock[0].MinStock)
}
