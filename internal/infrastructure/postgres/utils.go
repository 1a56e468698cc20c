package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isForeignKeyViolation 23503: fila referenciada por otra tabla.
func isForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}

// isCheckViolation 23514 (ej. products_stock_check).
func isCheckViolation(err error) bool {
	return hasCode(err, "23514")
}

// isInvalidTextRepresentation 22P02: texto que no es un UUID válido en una columna UUID.
func isInvalidTextRepresentation(err error) bool {
	return hasCode(err, "22P02")
}

// isNoRows sin fila o id con formato inválido: ninguna fila puede tener ese id.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err)
}

func hasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func emptyIfNull(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
