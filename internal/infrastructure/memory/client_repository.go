package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo clientes en memoria.
type ClientRepo struct {
	a access
}

// NewClientRepository construye el repo.
func NewClientRepository(store *Store) *ClientRepo {
	return &ClientRepo{a: access{store: store}}
}

func (r *ClientRepo) Create(_ context.Context, client *entity.Client) error {
	return r.a.with(func(st *state) error {
		if _, ok := st.clients[client.ID]; ok {
			return domain.ErrDuplicate
		}
		st.clients[client.ID] = copyClient(client)
		return nil
	})
}

func (r *ClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	var out *entity.Client
	err := r.a.with(func(st *state) error {
		out = copyClient(st.clients[id])
		return nil
	})
	return out, err
}

func (r *ClientRepo) Update(_ context.Context, client *entity.Client) error {
	return r.a.with(func(st *state) error {
		if _, ok := st.clients[client.ID]; ok {
			st.clients[client.ID] = copyClient(client)
		}
		return nil
	})
}

func (r *ClientRepo) List(_ context.Context, limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	err := r.a.with(func(st *state) error {
		all := make([]*entity.Client, 0, len(st.clients))
		for _, c := range st.clients {
			all = append(all, copyClient(c))
		}
		sort.Slice(all, func(i, j int) bool {
			return strings.ToLower(all[i].Name) < strings.ToLower(all[j].Name)
		})
		out = paginate(all, limit, offset)
		return nil
	})
	return out, err
}
