package sales

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// SalesTxRunner ejecuta una función dentro de una transacción que incluye el contador de
// documentos, productos y ventas. Si fn retorna error se hace rollback de todo.
type SalesTxRunner interface {
	RunSales(ctx context.Context, fn func(
		seqRepo repository.SequenceRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// ReportInvalidator descarta reportes cacheados que dependen de las ventas.
type ReportInvalidator interface {
	InvalidateWeeklySales(ctx context.Context) error
}
