package driven

import (
	"context"

	"github.com/opencourse-labs/tutor-cli/internal/core/domain"
)

// Null adapters stand in for capabilities the dependency probe could not
// resolve, so the pipeline always holds a complete component set. Every
// operation fails with the matching unavailable error; the orchestrator is
// expected to short-circuit before calling them, but a stray call still gets
// a typed error instead of a nil dereference.

// Ensure the null adapters implement the interfaces.
var (
	_ EmbeddingService = NullEmbeddingService{}
	_ AnswerService    = NullAnswerService{}
	_ VectorStore      = NullVectorStore{}
)

// NullEmbeddingService is the fallback embedding service.
type NullEmbeddingService struct{}

// Embed always fails with ErrEmbeddingUnavailable.
func (NullEmbeddingService) Embed(context.Context, string) ([]float32, error) {
	return nil, domain.ErrEmbeddingUnavailable
}

// EmbedBatch always fails with ErrEmbeddingUnavailable.
func (NullEmbeddingService) EmbedBatch(context.Context, []string) ([][]float32, error) {
	return nil, domain.ErrEmbeddingUnavailable
}

// Dimensions returns zero; there is no model.
func (NullEmbeddingService) Dimensions() int { return 0 }

// ModelName returns an empty name.
func (NullEmbeddingService) ModelName() string { return "" }

// Ping always fails with ErrEmbeddingUnavailable.
func (NullEmbeddingService) Ping(context.Context) error { return domain.ErrEmbeddingUnavailable }

// Close is a no-op.
func (NullEmbeddingService) Close() error { return nil }

// NullAnswerService is the fallback answer service.
type NullAnswerService struct{}

// Answer always fails with ErrAnswerUnavailable.
func (NullAnswerService) Answer(context.Context, string, []string) (string, error) {
	return "", domain.ErrAnswerUnavailable
}

// ModelName returns an empty name.
func (NullAnswerService) ModelName() string { return "" }

// Ping always fails with ErrAnswerUnavailable.
func (NullAnswerService) Ping(context.Context) error { return domain.ErrAnswerUnavailable }

// Close is a no-op.
func (NullAnswerService) Close() error { return nil }

// NullVectorStore is the fallback vector store.
type NullVectorStore struct{}

// Upsert always fails with ErrVectorStoreUnavailable.
func (NullVectorStore) Upsert(context.Context, []domain.EncodedChunk) error {
	return domain.ErrVectorStoreUnavailable
}

// Query always fails with ErrVectorStoreUnavailable.
func (NullVectorStore) Query(context.Context, []float32, int) ([]domain.RetrievedItem, error) {
	return nil, domain.ErrVectorStoreUnavailable
}

// Stats reports an empty store; inspection must work even in fallback mode.
func (NullVectorStore) Stats(context.Context) (domain.DatabaseStats, error) {
	return domain.DatabaseStats{}, nil
}

// Clear always fails with ErrVectorStoreUnavailable.
func (NullVectorStore) Clear(context.Context) error {
	return domain.ErrVectorStoreUnavailable
}

// Close is a no-op.
func (NullVectorStore) Close() error { return nil }
