package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrProductInUse       = errors.New("el producto tiene ventas u órdenes asociadas")
	ErrPersistence        = errors.New("error de persistencia")
)

// ValidationError entrada rechazada antes de tocar la base de datos.
// Field usa el nombre JSON del campo (ej. "items[2].quantity").
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError construye un ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewStockQuantityError movimiento de stock con cantidad no positiva.
func NewStockQuantityError(qty int) *ValidationError {
	return NewValidationError("quantity", fmt.Sprintf("la cantidad a mover debe ser mayor a 0 (recibido %d)", qty))
}

// NotFoundError entidad referenciada que no existe.
type NotFoundError struct {
	Resource string // product, client, order, sale, user
	ID       string
}

// NewNotFoundError construye un NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q no encontrado", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InsufficientStockError la cantidad pedida supera el stock disponible.
// El mensaje nombra el producto, el disponible y lo solicitado.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("\"%s\" tiene solo %d unidad(es) en stock. Solicitado: %d.",
		e.ProductName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// ConflictError una escritura concurrente invalidó la validación previa
// (stock consumido por otra transacción, número de documento duplicado).
// Reintentar la operación completa es seguro.
type ConflictError struct {
	Message string
	Err     error
}

// NewConflictError construye un ConflictError envolviendo la causa.
func NewConflictError(message string, err error) *ConflictError {
	return &ConflictError{Message: message, Err: err}
}

func (e *ConflictError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

func (e *ConflictError) Unwrap() error { return e.Err }

// PersistenceError fallo de almacenamiento no recuperable por el caller.
type PersistenceError struct {
	Op  string
	Err error
}

// NewPersistenceError envuelve err con la operación que falló.
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func (e *PersistenceError) Unwrap() error { return e.Err }

// WrapPersistence envuelve err como PersistenceError salvo que ya sea un error de dominio.
func WrapPersistence(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{
		ErrInvalidInput, ErrNotFound, ErrInsufficientStock, ErrConflict, ErrPersistence,
		ErrDuplicate, ErrUnauthorized, ErrForbidden, ErrProductInUse,
		ErrEmailAlreadyExists, ErrUserNotFound,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return NewPersistenceError(op, err)
}
