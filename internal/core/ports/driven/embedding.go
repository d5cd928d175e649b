package driven

import "context"

// EmbeddingService converts text into fixed-dimension vectors.
//
// Implementations must be deterministic for identical input and model
// version; retrieval reproducibility depends on it. The core never inspects
// vector internals beyond handing them to a VectorStore.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts, preserving input
	// order. Callers bound the batch size; batching exists to cap peak
	// memory, not for concurrency.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 768, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	// The dependency probe calls this once at pipeline construction.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
