package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de reportes sobre el Store.
type AnalyticsRepo struct {
	a access
}

// NewAnalyticsRepository construye el repo.
func NewAnalyticsRepository(store *Store) *AnalyticsRepo {
	return &AnalyticsRepo{a: access{store: store}}
}

func (r *AnalyticsRepo) SalesBetween(_ context.Context, start, end time.Time) ([]repository.SaleAmount, error) {
	var out []repository.SaleAmount
	err := r.a.with(func(st *state) error {
		for _, s := range st.sales {
			if s.CreatedAt.Before(start) || s.CreatedAt.After(end) {
				continue
			}
			out = append(out, repository.SaleAmount{CreatedAt: s.CreatedAt, TotalAmount: s.TotalAmount})
		}
		return nil
	})
	return out, err
}

func (r *AnalyticsRepo) CountClients(_ context.Context) (int, error) {
	n := 0
	err := r.a.with(func(st *state) error { n = len(st.clients); return nil })
	return n, err
}

func (r *AnalyticsRepo) CountProducts(_ context.Context) (int, error) {
	n := 0
	err := r.a.with(func(st *state) error { n = len(st.products); return nil })
	return n, err
}

func (r *AnalyticsRepo) CountOrders(_ context.Context) (int, error) {
	n := 0
	err := r.a.with(func(st *state) error { n = len(st.orders); return nil })
	return n, err
}
