package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrors_MatchSentinels(t *testing.T) {
	assert.ErrorIs(t, NewValidationError("items", "vacío"), ErrInvalidInput)
	assert.ErrorIs(t, NewNotFoundError("product", "p1"), ErrNotFound)
	assert.ErrorIs(t, &InsufficientStockError{ProductName: "Tornillo"}, ErrInsufficientStock)
	assert.ErrorIs(t, NewPersistenceError("insert sale", errors.New("boom")), ErrPersistence)
}

func TestConflictError_UnwrapsCause(t *testing.T) {
	cause := &InsufficientStockError{ProductID: "p1", ProductName: "Cable", Available: 1, Requested: 2}
	err := fmt.Errorf("crear venta: %w", NewConflictError("stock modificado concurrentemente", cause))

	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, ErrInsufficientStock, "la causa debe seguir siendo visible")

	var stockErr *InsufficientStockError
	assert.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 1, stockErr.Available)
}

func TestInsufficientStockError_Message(t *testing.T) {
	err := &InsufficientStockError{ProductName: "Filtro", Available: 2, Requested: 3}
	msg := err.Error()
	assert.Contains(t, msg, "Filtro")
	assert.Contains(t, msg, "2")
	assert.Contains(t, msg, "3")
}

func TestValidationError_Message(t *testing.T) {
	assert.Equal(t, "items: se requiere al menos un ítem", NewValidationError("items", "se requiere al menos un ítem").Error())
	assert.Equal(t, "sin campo", NewValidationError("", "sin campo").Error())
}

func TestWrapPersistence(t *testing.T) {
	assert.NoError(t, WrapPersistence("op", nil))

	notFound := NewNotFoundError("client", "c1")
	assert.Same(t, notFound, WrapPersistence("op", notFound), "los errores de dominio pasan sin cambios")

	err := WrapPersistence("insertar venta", errors.New("connection reset"))
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Contains(t, err.Error(), "insertar venta")
}
