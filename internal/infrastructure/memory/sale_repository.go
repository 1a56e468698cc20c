package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas en memoria.
type SaleRepo struct {
	a access
}

// NewSaleRepository construye el repo.
func NewSaleRepository(store *Store) *SaleRepo {
	return &SaleRepo{a: access{store: store}}
}

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	return r.a.with(func(st *state) error {
		for _, s := range st.sales {
			if s.SaleNumber == sale.SaleNumber || s.ID == sale.ID {
				return domain.ErrDuplicate
			}
		}
		st.sales[sale.ID] = copySale(sale)
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.a.with(func(st *state) error {
		out = loadSale(st, id)
		return nil
	})
	return out, err
}

func (r *SaleRepo) List(_ context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.a.with(func(st *state) error {
		for id, s := range st.sales {
			if filter.Start != nil && s.CreatedAt.Before(*filter.Start) {
				continue
			}
			if filter.End != nil && s.CreatedAt.After(*filter.End) {
				continue
			}
			out = append(out, loadSale(st, id))
		}
		sort.Slice(out, func(i, j int) bool {
			return newerFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].SaleNumber, out[j].SaleNumber)
		})
		out = paginate(out, filter.Limit, 0)
		return nil
	})
	return out, err
}

func loadSale(st *state, id string) *entity.Sale {
	s, ok := st.sales[id]
	if !ok {
		return nil
	}
	out := copySale(s)
	if s.ClientID != nil {
		out.Client = copyClient(st.clients[*s.ClientID])
	}
	for _, it := range out.Items {
		it.Product = copyProduct(st.products[it.ProductID])
	}
	return out
}
