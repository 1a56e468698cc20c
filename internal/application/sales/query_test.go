package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/sales"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/memory"
)

func TestQuery_ListFiltraPorFecha(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewSaleRepository(store)
	ctx := context.Background()
	for i, day := range []string{"2025-03-01", "2025-03-02", "2025-03-03"} {
		at, err := time.Parse("2006-01-02 15:04", day+" 23:30")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, &entity.Sale{
			ID: day, SaleNumber: []string{"V-000001", "V-000002", "V-000003"}[i],
			TotalAmount: decimal.NewFromInt(10), CreatedBy: "u", CreatedAt: at,
		}))
	}
	uc := sales.NewQueryUseCase(repo, time.UTC)

	out, err := uc.List(ctx, dto.SaleListRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 3)
	assert.Equal(t, "V-000003", out.Items[0].SaleNumber, "más recientes primero")

	out, err = uc.List(ctx, dto.SaleListRequest{Start: "2025-03-02", End: "2025-03-02"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1, "end incluye el día completo")
	assert.Equal(t, "V-000002", out.Items[0].SaleNumber)

	_, err = uc.List(ctx, dto.SaleListRequest{Start: "02/03/2025"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.List(ctx, dto.SaleListRequest{Start: "2025-03-03", End: "2025-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuery_EndIncluyeDiaDe25Horas(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("zona horaria no disponible: %v", err)
	}
	repo := memory.NewSaleRepository(memory.NewStore())
	ctx := context.Background()
	// 2025-11-02 termina el horario de verano: el día local dura 25 horas.
	at := time.Date(2025, 11, 2, 23, 30, 0, 0, loc)
	require.NoError(t, repo.Create(ctx, &entity.Sale{
		ID: "s1", SaleNumber: "V-000001", TotalAmount: decimal.NewFromInt(10), CreatedBy: "u", CreatedAt: at,
	}))
	uc := sales.NewQueryUseCase(repo, loc)

	out, err := uc.List(ctx, dto.SaleListRequest{Start: "2025-11-02", End: "2025-11-02"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1, "la venta de las 23:30 pertenece al día")
}
