package postgres

import (
	"context"

	"github.com/openplanhq/trackd/internal/application/ports"
	"github.com/openplanhq/trackd/internal/infrastructure/persistence/db"
)

// SequenceRepository backs identifier allocation with a counter row per
// scope. Next is a single upsert that increments and reads in one statement,
// so concurrent callers serialize on the row and never observe the same
// value. Counter state is persisted; it is never derived by scanning for the
// maximum existing identifier.
type SequenceRepository struct {
	q *db.Queries
}

func NewSequenceRepository(q *db.Queries) *SequenceRepository {
	return &SequenceRepository{q: q}
}

func (r *SequenceRepository) Next(ctx context.Context, scopeKey string) (int64, error) {
	return r.q.NextSequenceValue(ctx, scopeKey)
}

// Ensure SequenceRepository implements ports.SequenceStore.
var _ ports.SequenceStore = (*SequenceRepository)(nil)
