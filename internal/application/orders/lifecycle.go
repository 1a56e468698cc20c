package orders

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/inventory"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// LifecycleUseCase cambios de estado y firma de órdenes.
//
// Transiciones entre PENDING, IN_PROGRESS, COMPLETED y DELIVERED son libres.
// Pasar a CANCELLED devuelve al stock las líneas con producto; salir de CANCELLED
// vuelve a reservarlas con el mismo descuento condicional de la creación.
type LifecycleUseCase struct {
	txRunner OrdersTxRunner
	stock    *inventory.StockService
	now      func() time.Time
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(txRunner OrdersTxRunner, stock *inventory.StockService) *LifecycleUseCase {
	return &LifecycleUseCase{txRunner: txRunner, stock: stock, now: time.Now}
}

// UpdateStatus cambia el estado de la orden. Mismo estado = sin cambios (idempotente).
func (uc *LifecycleUseCase) UpdateStatus(ctx context.Context, actor entity.Actor, orderID, status string) (*dto.OrderResponse, error) {
	if actor.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(status) == "" {
		return nil, domain.NewValidationError("status", "el estado es requerido")
	}
	target, ok := entity.ParseOrderStatus(status)
	if !ok {
		return nil, domain.NewValidationError("status", "estado inválido: "+status+" (valores: "+statusLabels()+")")
	}

	var result *entity.Order
	err := uc.txRunner.RunOrders(ctx, func(
		_ repository.SequenceRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		// Bloquea la orden: dos cancelaciones concurrentes no pueden devolver stock dos veces.
		order, err := orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return domain.NewPersistenceError("leer orden", err)
		}
		if order == nil {
			return domain.NewNotFoundError("order", orderID)
		}
		result = order
		if order.Status == target {
			return nil
		}

		reservation := inventory.ReservationFromLines(stockLines(order))
		switch {
		case order.Status.HoldsStock() && !target.HoldsStock():
			if err := uc.stock.ReleaseInTx(ctx, productRepo, reservation); err != nil {
				return err
			}
		case !order.Status.HoldsStock() && target.HoldsStock():
			if err := uc.stock.ReserveInTx(ctx, productRepo, reservation); err != nil {
				return err
			}
		}

		now := uc.now()
		if err := orderRepo.UpdateStatus(ctx, order.ID, target, now); err != nil {
			return domain.NewPersistenceError("actualizar estado", err)
		}
		order.Status = target
		order.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, domain.WrapPersistence("actualizar estado de orden", err)
	}
	return dto.NewOrderResponse(result), nil
}

// Sign registra la firma de conformidad del cliente. signedBy vacío = usuario autenticado.
// La orden se bloquea como en UpdateStatus: una cancelación concurrente no puede colarse
// entre la verificación y la firma.
func (uc *LifecycleUseCase) Sign(ctx context.Context, actor entity.Actor, orderID, signedBy string) (*dto.OrderResponse, error) {
	if actor.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	signedBy = strings.TrimSpace(signedBy)
	if signedBy == "" {
		signedBy = actor.UserID
	}

	var result *entity.Order
	err := uc.txRunner.RunOrders(ctx, func(
		_ repository.SequenceRepository,
		_ repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		order, err := orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return domain.NewPersistenceError("leer orden", err)
		}
		if order == nil {
			return domain.NewNotFoundError("order", orderID)
		}
		if order.Status.IsCancelled() {
			return domain.NewValidationError("status", "no se puede firmar una orden cancelada")
		}
		now := uc.now()
		if err := orderRepo.Sign(ctx, order.ID, signedBy, now); err != nil {
			return domain.NewPersistenceError("firmar orden", err)
		}
		order.SignedAt = &now
		order.SignedBy = signedBy
		order.UpdatedAt = now
		result = order
		return nil
	})
	if err != nil {
		return nil, domain.WrapPersistence("firmar orden", err)
	}
	return dto.NewOrderResponse(result), nil
}

func stockLines(order *entity.Order) []inventory.StockLine {
	var lines []inventory.StockLine
	for _, it := range order.Items {
		if it.HasProduct() {
			lines = append(lines, inventory.StockLine{ProductID: *it.ProductID, Quantity: it.Quantity})
		}
	}
	return lines
}

func statusLabels() string {
	labels := make([]string, 0, 5)
	for _, s := range entity.OrderStatuses() {
		labels = append(labels, string(s))
	}
	return strings.Join(labels, ", ")
}
