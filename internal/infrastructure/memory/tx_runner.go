package memory

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/application/orders"
	"github.com/jhoicas/Backoffice-api/internal/application/sales"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ sales.SalesTxRunner = (*TxRunner)(nil)
var _ orders.OrdersTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks con acceso exclusivo al Store y rollback por copia.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

func (r *TxRunner) run(ctx context.Context, fn func(a access) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snapshot := r.store.st.clone()
	if err := fn(access{store: r.store, inTx: true}); err != nil {
		r.store.st = snapshot
		return err
	}
	return nil
}

// RunSales transacción con contador, productos y ventas.
func (r *TxRunner) RunSales(ctx context.Context, fn func(
	seqRepo repository.SequenceRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return r.run(ctx, func(a access) error {
		return fn(&SequenceRepo{a: a}, &ProductRepo{a: a}, &SaleRepo{a: a})
	})
}

// RunOrders transacción con contador, productos y órdenes.
func (r *TxRunner) RunOrders(ctx context.Context, fn func(
	seqRepo repository.SequenceRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return r.run(ctx, func(a access) error {
		return fn(&SequenceRepo{a: a}, &ProductRepo{a: a}, &OrderRepo{a: a})
	})
}
