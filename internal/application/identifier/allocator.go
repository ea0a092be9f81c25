package identifier

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/openplanhq/trackd/internal/application/ports"
)

// Scope is the partition a sequential identifier is allocated within, plus
// its formatting. Tasks use the project key unpadded ("PROJ-123"); incidents
// use a single global scope padded to three digits ("INC-045").
type Scope struct {
	Key      string
	Prefix   string
	PadWidth int
}

// IncidentScope is the global scope for incident identifiers.
var IncidentScope = Scope{Key: "incident", Prefix: "INC", PadWidth: 3}

// TaskScope builds the per-project scope for task identifiers.
func TaskScope(projectKey string) Scope {
	return Scope{Key: projectKey, Prefix: projectKey}
}

// Allocator hands out human-readable identifiers like "PROJ-123". Values are
// unique and strictly increasing per scope under concurrent callers; the
// counter lives in the store, never derived by scanning existing records.
type Allocator struct {
	seq ports.SequenceStore
	log zerolog.Logger
}

// NewAllocator builds the allocator.
func NewAllocator(seq ports.SequenceStore, log zerolog.Logger) *Allocator {
	return &Allocator{seq: seq, log: log}
}

// Allocate returns the next identifier in the scope. A fresh scope starts at
// 1. Errors from the store (including retry exhaustion) are logged with the
// scope key for diagnosis and returned as-is.
func (a *Allocator) Allocate(ctx context.Context, scope Scope) (string, error) {
	n, err := a.seq.Next(ctx, scope.Key)
	if err != nil {
		a.log.Error().Err(err).Str("scope_key", scope.Key).Msg("identifier allocation failed")
		return "", err
	}
	if scope.PadWidth > 0 {
		return fmt.Sprintf("%s-%0*d", scope.Prefix, scope.PadWidth, n), nil
	}
	return fmt.Sprintf("%s-%d", scope.Prefix, n), nil
}
