package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/usecase"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/infrastructure/memory"
)

func TestClientUseCase(t *testing.T) {
	uc := usecase.NewClientUseCase(memory.NewClientRepository(memory.NewStore()))
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateClientRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	b, err := uc.Create(ctx, dto.CreateClientRequest{Name: " beatriz ", City: "Recife"})
	require.NoError(t, err)
	assert.Equal(t, "beatriz", b.Name)
	_, err = uc.Create(ctx, dto.CreateClientRequest{Name: "Ana"})
	require.NoError(t, err)

	list, err := uc.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Ana", list.Items[0].Name, "orden alfabético sin distinguir mayúsculas")
	assert.Equal(t, 50, list.Page.Limit)

	upd, err := uc.Update(ctx, b.ID, dto.UpdateClientRequest{Name: "Beatriz", Phone: "+55 81 0000"})
	require.NoError(t, err)
	assert.Equal(t, "Beatriz", upd.Name)
	assert.Empty(t, upd.City, "PUT reemplaza todos los campos")

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Update(ctx, "nope", dto.UpdateClientRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
