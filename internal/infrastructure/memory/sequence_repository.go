package memory

import (
	"context"

	"github.com/jhoicas/Backoffice-api/internal/domain/numbering"
	"github.com/jhoicas/Backoffice-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador por tipo de documento; en una tx el rollback restaura el valor.
type SequenceRepo struct {
	a access
}

func (r *SequenceRepo) Next(_ context.Context, kind numbering.Kind) (int64, error) {
	var n int64
	err := r.a.with(func(st *state) error {
		st.seq[kind]++
		n = st.seq[kind]
		return nil
	})
	return n, err
}
