package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/inventory"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/numbering"
	"github.com/jhoicas/Backoffice-api/internal/domain/pricing"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// CreateSaleUseCase registra una venta y descuenta el inventario en una sola transacción.
type CreateSaleUseCase struct {
	txRunner    SalesTxRunner
	stock       *inventory.StockService
	clientRepo  repository.ClientRepository
	invalidator ReportInvalidator
	now         func() time.Time
}

// NewCreateSaleUseCase construye el caso de uso. invalidator puede ser nil.
func NewCreateSaleUseCase(
	txRunner SalesTxRunner,
	stock *inventory.StockService,
	clientRepo repository.ClientRepository,
	invalidator ReportInvalidator,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:    txRunner,
		stock:       stock,
		clientRepo:  clientRepo,
		invalidator: invalidator,
		now:         time.Now,
	}
}

// CreateSale valida las líneas, el cliente (si viene) y el stock; luego en una transacción
// obtiene el siguiente número V-NNNNNN, inserta cabecera e ítems y descuenta el stock de
// cada producto. Cualquier fallo deja el sistema sin cambios.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, actor entity.Actor, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if actor.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("items", "se requiere al menos un ítem")
	}

	// 1) Validación estructural y totales de línea (sin I/O)
	totals := make([]decimal.Decimal, len(in.Items))
	lines := make([]inventory.StockLine, len(in.Items))
	for i, item := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		if strings.TrimSpace(item.ProductID) == "" {
			return nil, domain.NewValidationError(field+".productId", "el producto es requerido")
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
		totals[i] = total
		lines[i] = inventory.StockLine{ProductID: item.ProductID, Quantity: item.Quantity, Field: field}
	}

	// 2) Cliente opcional
	var client *entity.Client
	var clientID *string
	if in.ClientID != nil && strings.TrimSpace(*in.ClientID) != "" {
		id := strings.TrimSpace(*in.ClientID)
		c, err := uc.clientRepo.GetByID(ctx, id)
		if err != nil {
			return nil, domain.NewPersistenceError("leer cliente", err)
		}
		if c == nil {
			return nil, domain.NewNotFoundError("client", id)
		}
		client = c
		clientID = &id
	}

	// 3) Productos y stock (fuera de la tx, solo lectura)
	reservation, err := uc.stock.CheckAvailability(ctx, lines)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	sale := &entity.Sale{
		ID:          uuid.New().String(),
		ClientID:    clientID,
		Client:      client,
		TotalAmount: pricing.Sum(totals),
		CreatedBy:   actor.UserID,
		CreatedAt:   now,
	}
	for i, item := range in.Items {
		discount := decimal.Zero
		if item.Discount != nil {
			discount = *item.Discount
		}
		sale.Items = append(sale.Items, &entity.SaleItem{
			ID:         uuid.New().String(),
			SaleID:     sale.ID,
			ProductID:  item.ProductID,
			Product:    reservation.Product(item.ProductID),
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			Discount:   discount,
			TotalPrice: totals[i],
		})
	}

	err = uc.txRunner.RunSales(ctx, func(
		seqRepo repository.SequenceRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		n, err := seqRepo.Next(ctx, numbering.KindSale)
		if err != nil {
			return domain.NewPersistenceError("siguiente número de venta", err)
		}
		sale.SaleNumber = numbering.Format(numbering.KindSale, n)

		if err := saleRepo.Create(ctx, sale); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.NewConflictError("número de venta duplicado "+sale.SaleNumber, err)
			}
			return domain.NewPersistenceError("insertar venta", err)
		}

		// Descuento condicional: si otra venta consumió el stock desde la validación, rollback.
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
		return nil, domain.WrapPersistence("crear venta", err)
	}

	if uc.invalidator != nil {
		if err := uc.invalidator.InvalidateWeeklySales(ctx); err != nil {
			log.Warn().Err(err).Str("sale_number", sale.SaleNumber).Msg("invalidar cache de reporte semanal")
		}
	}
	return dto.NewSaleResponse(sale), nil
}
