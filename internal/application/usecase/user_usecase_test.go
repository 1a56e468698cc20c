package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/usecase"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/memory"
)

func newUsers(t *testing.T) (*usecase.UserUseCase, entity.Actor) {
	t.Helper()
	uc := usecase.NewUserUseCase(memory.NewUserRepository(memory.NewStore()))
	admin, created, err := uc.UpsertUser(context.Background(), dto.CreateUserRequest{
		Name: "Admin", Email: "Admin@Loja.com", Password: "admin123", Role: "admin",
	})
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, entity.RoleAdmin, admin.Role)
	return uc, entity.Actor{UserID: admin.ID, Role: admin.Role}
}

func TestUserUseCase_SoloAdmin(t *testing.T) {
	uc, admin := newUsers(t)
	ctx := context.Background()
	user := entity.Actor{UserID: "u-2", Role: entity.RoleUser}

	_, err := uc.List(ctx, user)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.List(ctx, entity.Actor{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Create(ctx, user, dto.CreateUserRequest{Name: "X", Email: "x@x.com", Password: "123456"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	created, err := uc.Create(ctx, admin, dto.CreateUserRequest{Name: "Vendedor", Email: "vendedor@loja.com", Password: "123456", Role: "gerente"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, created.Role, "rol desconocido se guarda como USER")

	_, err = uc.Create(ctx, admin, dto.CreateUserRequest{Name: "Otro", Email: "VENDEDOR@loja.com", Password: "123456"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	_, err = uc.Create(ctx, admin, dto.CreateUserRequest{Name: "Corto", Email: "corto@loja.com", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	assert.ErrorIs(t, uc.Delete(ctx, admin, admin.UserID), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.Delete(ctx, user, created.ID), domain.ErrForbidden)
	require.NoError(t, uc.Delete(ctx, admin, created.ID))
	assert.ErrorIs(t, uc.Delete(ctx, admin, created.ID), domain.ErrNotFound)
}

func TestUserUseCase_UpdateProfile(t *testing.T) {
	uc, admin := newUsers(t)
	ctx := context.Background()

	_, err := uc.UpdateProfile(ctx, admin, dto.UpdateProfileRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	blank := "  "
	_, err = uc.UpdateProfile(ctx, admin, dto.UpdateProfileRequest{Name: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateProfile(ctx, admin, dto.UpdateProfileRequest{NewPassword: "nueva123"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "currentPassword", verr.Field)

	_, err = uc.UpdateProfile(ctx, admin, dto.UpdateProfileRequest{CurrentPassword: "mala", NewPassword: "nueva123"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "currentPassword", verr.Field)

	name := "Administradora"
	out, err := uc.UpdateProfile(ctx, admin, dto.UpdateProfileRequest{Name: &name, CurrentPassword: "admin123", NewPassword: "nueva123"})
	require.NoError(t, err)
	assert.Equal(t, "Administradora", out.Name)

	_, err = uc.UpdateProfile(ctx, entity.Actor{}, dto.UpdateProfileRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUserUseCase_UpsertActualiza(t *testing.T) {
	uc, admin := newUsers(t)
	ctx := context.Background()

	out, created, err := uc.UpsertUser(ctx, dto.CreateUserRequest{Name: "Admin 2", Email: "admin@loja.com", Password: "otra123", Role: "USER"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, admin.UserID, out.ID)
	assert.Equal(t, entity.RoleUser, out.Role)

	_, _, err = uc.UpsertUser(ctx, dto.CreateUserRequest{Email: "", Password: "123456"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
