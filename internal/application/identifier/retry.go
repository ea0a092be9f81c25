package identifier

import (
	"context"

	"github.com/openplanhq/trackd/internal/application/ports"
	domerrors "github.com/openplanhq/trackd/internal/domain/errors"
)

// maxAllocateAttempts bounds optimistic retries before giving up.
const maxAllocateAttempts = 5

// CompareAndSwapStore is the minimal contract for counter stores without an
// atomic increment. Current returns 0 for an unknown scope; CompareAndSwap
// either installs next when the scope still holds old (creating the row for
// old == 0) or reports a conflict.
type CompareAndSwapStore interface {
	Current(ctx context.Context, scopeKey string) (int64, error)
	CompareAndSwap(ctx context.Context, scopeKey string, old, next int64) (bool, error)
}

// RetrySequenceStore adapts a compare-and-swap store into a SequenceStore via
// bounded optimistic retry: read the current value, attempt a conditional
// bump, and on conflict re-read and try again. Exhausting the attempts yields
// ErrAllocationFailed.
type RetrySequenceStore struct {
	store CompareAndSwapStore
}

// NewRetrySequenceStore wraps a compare-and-swap store.
func NewRetrySequenceStore(store CompareAndSwapStore) *RetrySequenceStore {
	return &RetrySequenceStore{store: store}
}

// Next returns the next counter value for the scope.
func (s *RetrySequenceStore) Next(ctx context.Context, scopeKey string) (int64, error) {
	for attempt := 0; attempt < maxAllocateAttempts; attempt++ {
		cur, err := s.store.Current(ctx, scopeKey)
		if err != nil {
			return 0, err
		}
		ok, err := s.store.CompareAndSwap(ctx, scopeKey, cur, cur+1)
		if err != nil {
			return 0, err
		}
		if ok {
			return cur + 1, nil
		}
	}
	return 0, domerrors.ErrAllocationFailed
}

var _ ports.SequenceStore = (*RetrySequenceStore)(nil)
