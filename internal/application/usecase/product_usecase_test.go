package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/usecase"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/memory"
)

func productReq(sku string, stock int) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name: "Producto " + sku, SKU: sku, Stock: stock, MinStock: 2,
		Price: decimal.RequireFromString("19.999"), Cost: decimal.RequireFromString("12.00"),
	}
}

func TestProductUseCase_CRUD(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(memory.NewProductRepository(store))
	ctx := context.Background()

	created, err := uc.Create(ctx, productReq("ABC-1", 1))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "20", created.Price.String(), "precio redondeado a 2 decimales")
	assert.True(t, created.LowStock)

	_, err = uc.Create(ctx, productReq("ABC-1", 5))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	other, err := uc.Create(ctx, productReq("XYZ-9", 5))
	require.NoError(t, err)

	upd := dto.UpdateProductRequest(productReq("ABC-1", 40))
	upd.Name = "Renombrado"
	out, err := uc.Update(ctx, created.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", out.Name)
	assert.Equal(t, 40, out.Stock, "la edición es absoluta")
	assert.False(t, out.LowStock)

	_, err = uc.Update(ctx, other.ID, dto.UpdateProductRequest(productReq("ABC-1", 1)))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Update(ctx, "nope", dto.UpdateProductRequest(productReq("Q", 1)))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 1, list.Page.Limit)

	require.NoError(t, uc.Delete(ctx, other.ID))
	_, err = uc.GetByID(ctx, other.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, other.ID), domain.ErrNotFound)
}

func TestProductUseCase_Validaciones(t *testing.T) {
	uc := usecase.NewProductUseCase(memory.NewProductRepository(memory.NewStore()))
	ctx := context.Background()

	cases := map[string]func(r *dto.CreateProductRequest){
		"name":     func(r *dto.CreateProductRequest) { r.Name = " " },
		"sku":      func(r *dto.CreateProductRequest) { r.SKU = "" },
		"price":    func(r *dto.CreateProductRequest) { r.Price = decimal.NewFromInt(-1) },
		"cost":     func(r *dto.CreateProductRequest) { r.Cost = decimal.NewFromInt(-1) },
		"stock":    func(r *dto.CreateProductRequest) { r.Stock = -1 },
		"minStock": func(r *dto.CreateProductRequest) { r.MinStock = -1 },
	}
	for field, mutate := range cases {
		req := productReq("S-1", 1)
		mutate(&req)
		_, err := uc.Create(ctx, req)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr, field)
		assert.Equal(t, field, verr.Field)
	}
}

func TestProductUseCase_DeleteConVentas(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(memory.NewProductRepository(store))
	ctx := context.Background()

	p, err := uc.Create(ctx, productReq("VEN-1", 3))
	require.NoError(t, err)
	require.NoError(t, memory.NewSaleRepository(store).Create(ctx, &entity.Sale{
		ID: "s1", SaleNumber: "V-000001", TotalAmount: decimal.NewFromInt(1), CreatedBy: "u", CreatedAt: time.Now(),
		Items: []*entity.SaleItem{{ID: "i1", SaleID: "s1", ProductID: p.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(1), TotalPrice: decimal.NewFromInt(1)}},
	}))

	assert.ErrorIs(t, uc.Delete(ctx, p.ID), domain.ErrProductInUse)
	_, err = uc.GetByID(ctx, p.ID)
	assert.NoError(t, err)
}
