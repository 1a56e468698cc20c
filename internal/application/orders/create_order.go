package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/inventory"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/numbering"
	"github.com/jhoicas/Backoffice-api/internal/domain/pricing"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// CreateOrderUseCase crea órdenes de servicio. Las líneas con producto descuentan stock en la
// misma transacción; las líneas sin producto (servicios) solo suman al total.
type CreateOrderUseCase struct {
	txRunner   OrdersTxRunner
	stock      *inventory.StockService
	clientRepo repository.ClientRepository
	now        func() time.Time
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(txRunner OrdersTxRunner, stock *inventory.StockService, clientRepo repository.ClientRepository) *CreateOrderUseCase {
	return &CreateOrderUseCase{txRunner: txRunner, stock: stock, clientRepo: clientRepo, now: time.Now}
}

// CreateOrder valida, numera (OS-NNNNNN) y persiste la orden en estado PENDING.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, actor entity.Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if actor.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	clientID := strings.TrimSpace(in.ClientID)
	if clientID == "" {
		return nil, domain.NewValidationError("clientId", "el cliente es requerido")
	}

	now := uc.now()
	order := &entity.Order{
		ID:          uuid.New().String(),
		ClientID:    clientID,
		Status:      entity.OrderStatusPending,
		Description: strings.TrimSpace(in.Description),
		CreatedBy:   actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	totals := make([]decimal.Decimal, 0, len(in.Items))
	var lines []inventory.StockLine
	for i, item := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(item.Description) == "" {
			return nil, domain.NewValidationError(field+".description", "la descripción es requerida")
		}
		if err := pricing.CheckQuantity(item.Quantity); err != nil {
			return nil, domain.NewValidationError(field+".quantity", err.Error())
		}
		discount := decimal.Zero
		if item.Discount != nil {
			discount = *item.Discount
		}
		total, err := pricing.LineTotal(item.Quantity, item.UnitPrice, discount, item.TotalPrice)
		if err != nil {
			return nil, domain.NewValidationError(field, err.Error())
		}
		totals = append(totals, total)

		var productID *string
		if item.ProductID != nil && strings.TrimSpace(*item.ProductID) != "" {
			id := strings.TrimSpace(*item.ProductID)
			productID = &id
			lines = append(lines, inventory.StockLine{ProductID: id, Quantity: item.Quantity, Field: field})
		}
		order.Items = append(order.Items, &entity.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			ProductID:   productID,
			Description: strings.TrimSpace(item.Description),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    discount,
			TotalPrice:  total,
		})
	}
	order.TotalAmount = pricing.Sum(totals)

	client, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, domain.NewPersistenceError("leer cliente", err)
	}
	if client == nil {
		return nil, domain.NewNotFoundError("client", clientID)
	}
	order.Client = client

	reservation, err := uc.stock.CheckAvailability(ctx, lines)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunOrders(ctx, func(
		seqRepo repository.SequenceRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		n, err := seqRepo.Next(ctx, numbering.KindOrder)
		if err != nil {
			return domain.NewPersistenceError("siguiente número de orden", err)
		}
		order.OrderNumber = numbering.Format(numbering.KindOrder, n)

		if err := orderRepo.Create(ctx, order); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.NewConflictError("número de orden duplicado "+order.OrderNumber, err)
			}
			return domain.NewPersistenceError("insertar orden", err)
		}
		if reservation.Empty() {
			return nil
		}
		if err := uc.stock.ReserveInTx(ctx, productRepo, reservation); err != nil {
			var stockErr *domain.InsufficientStockError
			if errors.As(err, &stockErr) {
				return domain.NewConflictError("el stock cambió durante la operación", stockErr)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, domain.WrapPersistence("crear orden", err)
	}
	return dto.NewOrderResponse(order), nil
}
