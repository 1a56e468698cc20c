package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/pricing"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// StockLine cantidad pedida de un producto. Field identifica la línea de origen en los errores.
type StockLine struct {
	ProductID string
	Quantity  int
	Field     string
}

// Reservation cantidades agregadas por producto listas para descontarse en una transacción.
// Varias líneas del mismo producto se suman antes de comparar con el stock.
type Reservation struct {
	products map[string]*entity.Product
	totals   map[string]int
	order    []string // IDs ordenados: orden de bloqueo estable entre transacciones
}

// Product devuelve el producto leído durante la validación.
func (r *Reservation) Product(id string) *entity.Product {
	return r.products[id]
}

// Empty indica que ninguna línea toca stock.
func (r *Reservation) Empty() bool {
	return len(r.order) == 0
}

// StockService valida disponibilidad y aplica salidas/entradas de stock sobre Product.
type StockService struct {
	productRepo repository.ProductRepository
}

// NewStockService construye el servicio.
func NewStockService(productRepo repository.ProductRepository) *StockService {
	return &StockService{productRepo: productRepo}
}

// CheckAvailability lee los productos (fuera de la tx, solo lectura) y verifica que la
// cantidad acumulada por producto no supere el stock. Falla en la primera línea inválida.
func (s *StockService) CheckAvailability(ctx context.Context, lines []StockLine) (*Reservation, error) {
	res := &Reservation{
		products: make(map[string]*entity.Product),
		totals:   make(map[string]int),
	}
	for _, line := range lines {
		if err := pricing.CheckQuantity(line.Quantity); err != nil {
			return nil, domain.NewValidationError(quantityField(line), err.Error())
		}
		product, ok := res.products[line.ProductID]
		if !ok {
			p, err := s.productRepo.GetByID(ctx, line.ProductID)
			if err != nil {
				return nil, domain.NewPersistenceError("leer producto", err)
			}
			if p == nil {
				return nil, domain.NewNotFoundError("product", line.ProductID)
			}
			product = p
			res.products[line.ProductID] = p
			res.order = append(res.order, line.ProductID)
		}
		// Se compara contra lo que queda, no contra la suma.
		already := res.totals[line.ProductID]
		if line.Quantity > product.Stock-already {
			return nil, &domain.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   already + line.Quantity,
			}
		}
		res.totals[line.ProductID] = already + line.Quantity
	}
	sort.Strings(res.order)
	return res, nil
}

// ReserveInTx descuenta el stock con el productRepo del caller (misma transacción).
// Cada descuento es condicional (stock >= cantidad); si otra transacción consumió el stock
// entre la validación y el commit devuelve *domain.InsufficientStockError con el stock actual
// y el caller debe hacer rollback.
func (s *StockService) ReserveInTx(ctx context.Context, productRepo repository.ProductRepository, res *Reservation) error {
	for _, id := range res.order {
		qty := res.totals[id]
		ok, err := productRepo.DecrementStock(ctx, id, qty)
		if err != nil {
			return domain.WrapPersistence("descontar stock", err)
		}
		if ok {
			continue
		}
		name := res.products[id].Name
		available := 0
		current, err := productRepo.GetByID(ctx, id)
		if err != nil {
			return domain.NewPersistenceError("leer producto", err)
		}
		if current != nil {
			name = current.Name
			available = current.Stock
		}
		return &domain.InsufficientStockError{ProductID: id, ProductName: name, Available: available, Requested: qty}
	}
	return nil
}

// ReleaseInTx devuelve al stock las cantidades de la reserva (misma transacción del caller).
func (s *StockService) ReleaseInTx(ctx context.Context, productRepo repository.ProductRepository, res *Reservation) error {
	for _, id := range res.order {
		if err := productRepo.IncrementStock(ctx, id, res.totals[id]); err != nil {
			return domain.WrapPersistence("devolver stock", err)
		}
	}
	return nil
}

// ReservationFromLines arma una reserva sin validar contra el stock (compensaciones
// sobre órdenes ya persistidas).
func ReservationFromLines(lines []StockLine) *Reservation {
	res := &Reservation{
		products: make(map[string]*entity.Product),
		totals:   make(map[string]int),
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		if _, ok := res.totals[line.ProductID]; !ok {
			res.order = append(res.order, line.ProductID)
			res.products[line.ProductID] = &entity.Product{ID: line.ProductID}
		}
		res.totals[line.ProductID] += line.Quantity
	}
	sort.Strings(res.order)
	return res
}

func quantityField(line StockLine) string {
	if line.Field == "" {
		return "quantity"
	}
	return line.Field + ".quantity"
}

// ListLowStock productos con stock <= minStock (menor stock primero).
func (s *StockService) ListLowStock(ctx context.Context, limit int) ([]dto.LowStockProductDTO, error) {
	if limit <= 0 {
		limit = 10
	}
	list, err := s.productRepo.ListLowStock(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("productos con stock bajo: %w", err)
	}
	out := make([]dto.LowStockProductDTO, 0, len(list))
	for _, p := range list {
		out = append(out, dto.LowStockProductDTO{
			ProductID: p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			Stock:     p.Stock,
			MinStock:  p.MinStock,
			Price:     p.Price,
		})
	}
	return out, nil
}
