package sales_test

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/inventory"
	"github.com/jhoicas/Backoffice-api/internal/application/sales"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/memory"
)

var actor = entity.Actor{UserID: "user-1", Role: entity.RoleUser}

type fixture struct {
	store    *memory.Store
	products *memory.ProductRepo
	clients  *memory.ClientRepo
	sales    *memory.SaleRepo
	tx       sales.SalesTxRunner
	uc       *sales.CreateSaleUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		store:    store,
		products: memory.NewProductRepository(store),
		clients:  memory.NewClientRepository(store),
		sales:    memory.NewSaleRepository(store),
		tx:       memory.NewTxRunner(store),
	}
	f.uc = sales.NewCreateSaleUseCase(f.tx, inventory.NewStockService(f.products), f.clients, nil)
	return f
}

func (f *fixture) seedProduct(t *testing.T, id, name string, stock int) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.products.Create(context.Background(), &entity.Product{
		ID: id, Name: name, SKU: "SKU-" + id, Price: decimal.RequireFromString("10.00"),
		Stock: stock, CreatedAt: now, UpdatedAt: now,
	}))
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func item(productID string, qty int, price string) dto.CreateSaleItemRequest {
	return dto.CreateSaleItemRequest{ProductID: productID, Quantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

func TestCreateSale_DescuentaStockYNumera(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Teclado", 5)
	ctx := context.Background()

	out, err := f.uc.CreateSale(ctx, actor, dto.CreateSaleRequest{Items: []dto.CreateSaleItemRequest{item("p1", 3, "10.00")}})
	require.NoError(t, err)
	assert.Equal(t, "V-000001", out.SaleNumber)
	assert.True(t, out.TotalAmount.Equal(decimal.RequireFromString("30")))
	assert.Equal(t, "user-1", out.CreatedBy)
	assert.Equal(t, 2, f.stock(t, "p1"))

	_, err = f.uc.CreateSale(ctx, actor, dto.CreateSaleRequest{Items: []dto.CreateSaleItemRequest{item("p1", 3, "10.00")}})
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Contains(t, err.Error(), "Teclado")
	assert.Contains(t, err.Error(), "2")
	assert.Contains(t, err.Error(), "3")
	assert.Equal(t, 2, f.stock(t, "p1"))

	out, err = f.uc.CreateSale(ctx, actor, dto.CreateSaleRequest{Items: []dto.CreateSaleItemRequest{item("p1", 2, "10.00")}})
	require.NoError(t, err)
	assert.Equal(t, "V-000002", out.SaleNumber, "un intento fallido no consume número")
	assert.Equal(t, 0, f.stock(t, "p1"))
}

func TestCreateSale_LineasDelMismoProductoSeSuman(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Mouse", 4)

	_, err := f.uc.CreateSale(context.Background(), actor, dto.CreateSaleRequest{Items: []dto.CreateSaleItemRequest{
		item("p1", 3, "5.00"), item("p1", 2, "5.00"),
	}})
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 4, f.stock(t, "p1"))
}

func TestCreateSale_CantidadEnormeNoDesbordaElStock(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Mouse", 5)

	_, err := f.uc.CreateSale(context.Background(), actor, dto.CreateSaleRequest{Items: []dto.CreateSaleItemRequest{
		item("p1", 1, "1.00"), item("p1", math.MaxInt, "1.00"),
	}})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items[1].quantity", verr.Field)
	assert.Equal(t, 5, f.stock(t, "p1"))
}

func TestCreateSale_Validaciones(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Mouse", 4)
	ctx := context.Background()
	bad := decimal.RequireFromString("99")
	negative := decimal.RequireFromString("-1")

	cases := []struct {
		name  string
		in    dto.CreateSaleRequest
		field string
	}{
		{"sin ítems", dto.CreateSaleRequest{}, "items"},
		{"sin producto", dto.CreateSaleRequest{Items: []dto.CreateSaleItemRequest{item("", 1, "1")}}, "items[0].productId"},
		{"cantidad cero", dto.CreateSaleRequest{Items: []dto.CreateSaleItemRequest{item("p1", 0, "1")}}, "items[0].quantity"},
		{"precio negativo", dto.CreateSaleRequest{Items: []dto.CreateSaleItemRequest{item("p1", 1, "-1")}}, "items[0]"},
		{"descuento negativo", dto.CreateSaleRequest{Items: []dto.CreateSaleItemRequest{
			{ProductID: "p1", Quantity: 1, UnitPrice: decimal.RequireFromString("1"), Discount: &negative},
		}}, "items[0]"},
		{"cantidad sobre el máximo", dto.CreateSaleRequest{Items: []dto.CreateSaleItemRequest{item("p1", 1_000_001, "1")}}, "items[0].quantity"},
		{"precio con tres decimales", dto.CreateSaleRequest{Items: []dto.CreateSaleItemRequest{item("p1", 1, "1.005")}}, "items[0]"},
		{"total no coincide", dto.CreateSaleRequest{Items: []dto.CreateSaleItemRequest{
			item("p1", 1, "1"), {ProductID: "p1", Quantity: 1, UnitPrice: decimal.RequireFromString("1"), TotalPrice: &bad},
		}}, "items[1]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.CreateSale(ctx, actor, tc.in)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
	assert.Equal(t, 4, f.stock(t, "p1"))

	_, err := f.uc.CreateSale(ctx, entity.Actor{}, dto.CreateSaleRequest{Items: []dto.CreateSaleItemRequest{item("p1", 1, "1")}})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.uc.CreateSale(ctx, actor, dto.CreateSaleRequest{Items: []dto.CreateSaleItemRequest{item("nope", 1, "1")}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	missing := "client-x"
	_, err = f.uc.CreateSale(ctx, actor, dto.CreateSaleRequest{ClientID: &missing, Items: []dto.CreateSaleItemRequest{item("p1", 1, "1")}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateSale_ConClienteYDescuento(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Cable", 10)
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, f.clients.Create(ctx, &entity.Client{ID: "c1", Name: "Ana", CreatedAt: now, UpdatedAt: now}))

	discount := decimal.RequireFromString("2.50")
	clientID := "c1"
	out, err := f.uc.CreateSale(ctx, actor, dto.CreateSaleRequest{ClientID: &clientID, Items: []dto.CreateSaleItemRequest{
		{ProductID: "p1", Quantity: 2, UnitPrice: decimal.RequireFromString("10.00"), Discount: &discount},
	}})
	require.NoError(t, err)
	assert.True(t, out.TotalAmount.Equal(decimal.RequireFromString("17.50")))
	require.NotNil(t, out.Client)
	assert.Equal(t, "Ana", out.Client.Name)
}

// failingProducts falla el descuento número failOn dentro de la transacción.
type failingProducts struct {
	repository.ProductRepository
	calls  *int
	failOn int
}

func (p failingProducts) DecrementStock(ctx context.Context, id string, qty int) (bool, error) {
	*p.calls++
	if *p.calls == p.failOn {
		return false, errors.New("disco lleno")
	}
	return p.ProductRepository.DecrementStock(ctx, id, qty)
}

type failingTx struct {
	inner  sales.SalesTxRunner
	failOn int
}

func (r failingTx) RunSales(ctx context.Context, fn func(
	seqRepo repository.SequenceRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	calls := 0
	return r.inner.RunSales(ctx, func(seq repository.SequenceRepository, products repository.ProductRepository, saleRepo repository.SaleRepository) error {
		return fn(seq, failingProducts{ProductRepository: products, calls: &calls, failOn: r.failOn}, saleRepo)
	})
}

func TestCreateSale_FalloEnMedioNoDejaRastros(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "a", "A", 5)
	f.seedProduct(t, "b", "B", 5)
	f.seedProduct(t, "c", "C", 5)
	ctx := context.Background()

	uc := sales.NewCreateSaleUseCase(failingTx{inner: f.tx, failOn: 2}, inventory.NewStockService(f.products), f.clients, nil)
	_, err := uc.CreateSale(ctx, actor, dto.CreateSaleRequest{Items: []dto.CreateSaleItemRequest{
		item("a", 1, "1"), item("b", 1, "1"), item("c", 1, "1"),
	}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)

	for _, id := range []string{"a", "b", "c"} {
		assert.Equal(t, 5, f.stock(t, id), id)
	}
	list, err := f.sales.List(ctx, repository.SaleFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	out, err := f.uc.CreateSale(ctx, actor, dto.CreateSaleRequest{Items: []dto.CreateSaleItemRequest{item("a", 1, "1")}})
	require.NoError(t, err)
	assert.Equal(t, "V-000001", out.SaleNumber, "el contador también vuelve atrás")
}

func TestCreateSale_Concurrente(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Pendrive", 10)
	ctx := context.Background()

	const workers = 25
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers []string
		failed  int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := f.uc.CreateSale(ctx, actor, dto.CreateSaleRequest{Items: []dto.CreateSaleItemRequest{item("p1", 1, "1")}})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
				failed++
				return
			}
			numbers = append(numbers, out.SaleNumber)
		}()
	}
	wg.Wait()

	assert.Len(t, numbers, 10)
	assert.Equal(t, workers-10, failed)
	assert.Equal(t, 0, f.stock(t, "p1"))

	sort.Strings(numbers)
	for i := 1; i < len(numbers); i++ {
		assert.NotEqual(t, numbers[i-1], numbers[i])
	}
	assert.Equal(t, "V-000001", numbers[0])
	assert.Equal(t, "V-000010", numbers[len(numbers)-1])
}

type spyInvalidator struct{ calls int }

func (s *spyInvalidator) InvalidateWeeklySales(context.Context) error {
	s.calls++
	return errors.New("redis caído")
}

func TestCreateSale_InvalidaCacheSinFallar(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "p1", "Hub", 3)
	spy := &spyInvalidator{}
	uc := sales.NewCreateSaleUseCase(f.tx, inventory.NewStockService(f.products), f.clients, spy)

	_, err := uc.CreateSale(context.Background(), actor, dto.CreateSaleRequest{Items: []dto.CreateSaleItemRequest{item("p1", 1, "1")}})
	require.NoError(t, err)
	assert.Equal(t, 1, spy.calls)
}
