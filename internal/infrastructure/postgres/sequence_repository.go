package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Backoffice-api/internal/domain/numbering"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador en document_sequences. El upsert toma el lock de la fila
// hasta el fin de la transacción: dos ventas concurrentes nunca leen el mismo valor.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el contador. Pasar la tx del documento.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

func (r *SequenceRepo) Next(ctx context.Context, kind numbering.Kind) (int64, error) {
	const query = `
		INSERT INTO document_sequences (kind, last_number) VALUES ($1, 1)
		ON CONFLICT (kind) DO UPDATE SET last_number = document_sequences.last_number + 1
		RETURNING last_number`
	var n int64
	if err := r.q.QueryRow(ctx, query, string(kind)).Scan(&n); err != nil {
		return 0, fmt.Errorf("next %s number: %w", kind, err)
	}
	return n, nil
}
