package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file type with no registered extractor.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrCorpusNotFound indicates the configured course-materials directory
	// does not exist. A configuration error: reported, never retried.
	ErrCorpusNotFound = errors.New("course materials directory not found")

	// ErrInvalidChunking indicates chunk size and overlap are inconsistent
	// (overlap >= chunk size would stop the sliding window from advancing).
	ErrInvalidChunking = errors.New("invalid chunking configuration")

	// ErrDependenciesMissing indicates the one-time dependency probe failed.
	// The pipeline stays in fallback mode for the process lifetime.
	ErrDependenciesMissing = errors.New("dependencies missing")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or unreachable.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrAnswerUnavailable indicates the answer-generation service is not
	// configured or unreachable.
	ErrAnswerUnavailable = errors.New("answer service unavailable")

	// ErrVectorStoreUnavailable indicates the vector store is not configured
	// or could not be opened.
	ErrVectorStoreUnavailable = errors.New("vector store unavailable")
)
