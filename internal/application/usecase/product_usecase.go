package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos del catálogo.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto. El SKU es único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetBySKU(ctx, strings.TrimSpace(in.SKU))
	if err != nil {
		return nil, domain.NewPersistenceError("leer producto por sku", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		CreatedAt: now,
	}
	applyProduct(product, in, now)
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, domain.WrapPersistence("crear producto", err)
	}
	return dto.NewProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewPersistenceError("leer producto", err)
	}
	if product == nil {
		return nil, domain.NewNotFoundError("product", id)
	}
	return dto.NewProductResponse(product), nil
}

// Update edición absoluta: reemplaza todos los campos, incluido el stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	req := dto.CreateProductRequest(in)
	if err := validateProduct(req); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewPersistenceError("leer producto", err)
	}
	if product == nil {
		return nil, domain.NewNotFoundError("product", id)
	}
	sku := strings.TrimSpace(req.SKU)
	if sku != product.SKU {
		other, err := uc.repo.GetBySKU(ctx, sku)
		if err != nil {
			return nil, domain.NewPersistenceError("leer producto por sku", err)
		}
		if other != nil && other.ID != product.ID {
			return nil, domain.ErrDuplicate
		}
	}
	applyProduct(product, req, time.Now())
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, domain.WrapPersistence("actualizar producto", err)
	}
	return dto.NewProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, domain.NewPersistenceError("listar productos", err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.NewProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto. Falla con ErrProductInUse si tiene ventas u órdenes.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return domain.NewPersistenceError("leer producto", err)
	}
	if product == nil {
		return domain.NewNotFoundError("product", id)
	}
	return domain.WrapPersistence("eliminar producto", uc.repo.Delete(ctx, id))
}

func validateProduct(in dto.CreateProductRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.NewValidationError("name", "el nombre es requerido")
	}
	if strings.TrimSpace(in.SKU) == "" {
		return domain.NewValidationError("sku", "el sku es requerido")
	}
	if in.Price.IsNegative() {
		return domain.NewValidationError("price", "el precio no puede ser negativo")
	}
	if in.Cost.IsNegative() {
		return domain.NewValidationError("cost", "el costo no puede ser negativo")
	}
	if in.Stock < 0 {
		return domain.NewValidationError("stock", "el stock no puede ser negativo")
	}
	if in.MinStock < 0 {
		return domain.NewValidationError("minStock", "el stock mínimo no puede ser negativo")
	}
	return nil
}

func applyProduct(p *entity.Product, in dto.CreateProductRequest, now time.Time) {
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.SKU = strings.TrimSpace(in.SKU)
	p.Price = in.Price.Round(2)
	p.Cost = in.Cost.Round(2)
	p.Stock = in.Stock
	p.MinStock = in.MinStock
	p.Category = strings.TrimSpace(in.Category)
	p.UpdatedAt = now
}
