package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Backoffice-api/internal/application/orders"
	"github.com/jhoicas/Backoffice-api/internal/application/sales"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ sales.SalesTxRunner = (*TxRunner)(nil)
var _ orders.OrdersTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run inicia una transacción READ COMMITTED, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSales transacción para CreateSale: contador, productos y ventas.
func (r *TxRunner) RunSales(ctx context.Context, fn func(
	seqRepo repository.SequenceRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewSequenceRepository(tx), NewProductRepository(tx), NewSaleRepository(tx))
	})
}

// RunOrders transacción para CreateOrder y las transiciones de estado.
func (r *TxRunner) RunOrders(ctx context.Context, fn func(
	seqRepo repository.SequenceRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewSequenceRepository(tx), NewProductRepository(tx), NewOrderRepository(tx))
	})
}
