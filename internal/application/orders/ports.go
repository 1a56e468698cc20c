package orders

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// OrdersTxRunner ejecuta una función dentro de una transacción que incluye el contador de
// documentos, productos y órdenes.
type OrdersTxRunner interface {
	RunOrders(ctx context.Context, fn func(
		seqRepo repository.SequenceRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
