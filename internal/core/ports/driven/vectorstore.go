package driven

import (
	"context"

	"github.com/opencourse-labs/tutor-cli/internal/core/domain"
)

// VectorStore persists (id, vector, text, metadata) tuples and answers
// nearest-neighbour queries.
//
// Upsert is idempotent keyed by chunk ID: re-inserting an ID replaces the
// stored tuple instead of duplicating it, which makes re-ingestion of an
// unchanged file safe. Metadata values must be JSON-safe primitives; the
// adapter stringifies anything else before storage.
//
// The store is treated as single-writer (ingestion) / single-reader (query)
// within one process. Concurrent access from multiple processes is unsafe
// and out of scope.
type VectorStore interface {
	// Upsert inserts or replaces the given encoded chunks, keyed by chunk ID.
	Upsert(ctx context.Context, chunks []domain.EncodedChunk) error

	// Query returns the topK stored items nearest to the query vector,
	// ordered by increasing distance.
	Query(ctx context.Context, vector []float32, topK int) ([]domain.RetrievedItem, error)

	// Stats reports the number of stored chunks and distinct source files.
	Stats(ctx context.Context) (domain.DatabaseStats, error)

	// Clear removes every stored item.
	Clear(ctx context.Context) error

	// Close releases resources.
	Close() error
}
