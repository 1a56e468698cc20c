package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	a access
}

// NewProductRepository construye el repo fuera de transacción.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{a: access{store: store}}
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.a.with(func(st *state) error {
		if _, ok := st.products[product.ID]; ok {
			return domain.ErrDuplicate
		}
		if skuTaken(st, product.SKU, product.ID) {
			return domain.ErrDuplicate
		}
		st.products[product.ID] = copyProduct(product)
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.with(func(st *state) error {
		out = copyProduct(st.products[id])
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.with(func(st *state) error {
		for _, p := range st.products {
			if p.SKU == sku {
				out = copyProduct(p)
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.a.with(func(st *state) error {
		if _, ok := st.products[product.ID]; !ok {
			return nil
		}
		if skuTaken(st, product.SKU, product.ID) {
			return domain.ErrDuplicate
		}
		st.products[product.ID] = copyProduct(product)
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.a.with(func(st *state) error {
		all := make([]*entity.Product, 0, len(st.products))
		for _, p := range st.products {
			all = append(all, copyProduct(p))
		}
		sort.Slice(all, func(i, j int) bool {
			if all[i].CreatedAt.Equal(all[j].CreatedAt) {
				return all[i].ID < all[j].ID
			}
			return all[i].CreatedAt.After(all[j].CreatedAt)
		})
		out = paginate(all, limit, offset)
		return nil
	})
	return out, err
}

func (r *ProductRepo) ListLowStock(_ context.Context, limit int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.a.with(func(st *state) error {
		for _, p := range st.products {
			if p.IsLowStock() {
				out = append(out, copyProduct(p))
			}
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Stock == out[j].Stock {
				return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
			}
			return out[i].Stock < out[j].Stock
		})
		out = paginate(out, limit, 0)
		return nil
	})
	return out, err
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.a.with(func(st *state) error {
		for _, s := range st.sales {
			for _, it := range s.Items {
				if it.ProductID == id {
					return domain.ErrProductInUse
				}
			}
		}
		for _, o := range st.orders {
			for _, it := range o.Items {
				if it.HasProduct() && *it.ProductID == id {
					return domain.ErrProductInUse
				}
			}
		}
		delete(st.products, id)
		return nil
	})
}

func (r *ProductRepo) DecrementStock(_ context.Context, id string, qty int) (bool, error) {
	if qty <= 0 {
		return false, domain.NewStockQuantityError(qty)
	}
	ok := false
	err := r.a.with(func(st *state) error {
		p, found := st.products[id]
		if !found || p.Stock < qty {
			return nil
		}
		p.Stock -= qty
		ok = true
		return nil
	})
	return ok, err
}

func (r *ProductRepo) IncrementStock(_ context.Context, id string, qty int) error {
	if qty <= 0 {
		return domain.NewStockQuantityError(qty)
	}
	return r.a.with(func(st *state) error {
		if p, found := st.products[id]; found {
			p.Stock += qty
		}
		return nil
	})
}

func skuTaken(st *state, sku, exceptID string) bool {
	for _, p := range st.products {
		if p.SKU == sku && p.ID != exceptID {
			return true
		}
	}
	return false
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
