package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct {
	a access
}

// NewUserRepository construye el repo.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{a: access{store: store}}
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.a.with(func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, user.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		u := *user
		st.users[user.ID] = &u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.a.with(func(st *state) error {
		if u, ok := st.users[id]; ok {
			c := *u
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.a.with(func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				c := *u
				out = &c
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	return r.a.with(func(st *state) error {
		if _, ok := st.users[user.ID]; ok {
			u := *user
			st.users[user.ID] = &u
		}
		return nil
	})
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.a.with(func(st *state) error {
		for _, u := range st.users {
			c := *u
			out = append(out, &c)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		return nil
	})
	return out, err
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	return r.a.with(func(st *state) error {
		delete(st.users, id)
		return nil
	})
}
