package repository

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/domain/numbering"
)

// SequenceRepository contador atómico por tipo de documento.
// Next debe ejecutarse dentro de la misma transacción que inserta el documento:
// serializa a los creadores concurrentes del mismo tipo hasta el commit y
// un rollback libera el número (sin huecos).
type SequenceRepository interface {
	Next(ctx context.Context, kind numbering.Kind) (int64, error)
}
