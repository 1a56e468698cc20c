package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo órdenes en memoria.
type OrderRepo struct {
	a access
}

// NewOrderRepository construye el repo.
func NewOrderRepository(store *Store) *OrderRepo {
	return &OrderRepo{a: access{store: store}}
}

func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	return r.a.with(func(st *state) error {
		for _, o := range st.orders {
			if o.OrderNumber == order.OrderNumber || o.ID == order.ID {
				return domain.ErrDuplicate
			}
		}
		st.orders[order.ID] = copyOrder(order)
		return nil
	})
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.a.with(func(st *state) error {
		out = loadOrder(st, id)
		return nil
	})
	return out, err
}

// GetForUpdate en memoria la transacción ya es exclusiva.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) List(_ context.Context, limit int) ([]*entity.Order, error) {
	var out []*entity.Order
	err := r.a.with(func(st *state) error {
		for id := range st.orders {
			out = append(out, loadOrder(st, id))
		}
		sort.Slice(out, func(i, j int) bool {
			return newerFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].OrderNumber, out[j].OrderNumber)
		})
		out = paginate(out, limit, 0)
		return nil
	})
	return out, err
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id string, status entity.OrderStatus, updatedAt time.Time) error {
	return r.a.with(func(st *state) error {
		if o, ok := st.orders[id]; ok {
			o.Status = status
			o.UpdatedAt = updatedAt
		}
		return nil
	})
}

func (r *OrderRepo) Sign(_ context.Context, id, signedBy string, signedAt time.Time) error {
	return r.a.with(func(st *state) error {
		if o, ok := st.orders[id]; ok {
			t := signedAt
			o.SignedAt = &t
			o.SignedBy = signedBy
			o.UpdatedAt = signedAt
		}
		return nil
	})
}

func loadOrder(st *state, id string) *entity.Order {
	o, ok := st.orders[id]
	if !ok {
		return nil
	}
	out := copyOrder(o)
	out.Client = copyClient(st.clients[o.ClientID])
	return out
}
