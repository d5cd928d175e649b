package domain

import "time"

// PipelineState tracks the orchestrator's lifecycle.
//
// The pipeline starts unprobed, commits to DependenciesOK or
// DependenciesMissing after the one-time construction probe, and moves to
// Loaded from DependenciesOK on first real use. There is no terminal state;
// Cleanup releases resources without changing the logical state.
type PipelineState string

// Pipeline states.
const (
	// StateUnprobed means the dependency probe has not run yet.
	StateUnprobed PipelineState = "unprobed"

	// StateDependenciesOK means every required adapter resolved; heavy
	// components are not yet constructed.
	StateDependenciesOK PipelineState = "dependencies_ok"

	// StateDependenciesMissing means at least one adapter is unavailable.
	// The pipeline serves fallback responses for its lifetime.
	StateDependenciesMissing PipelineState = "dependencies_missing"

	// StateLoaded means heavy components are constructed and ready.
	StateLoaded PipelineState = "loaded"
)

// Description returns the user-facing status string for the state.
func (s PipelineState) Description() string {
	switch s {
	case StateUnprobed, StateDependenciesOK:
		return "Not initialized"
	case StateDependenciesMissing:
		return "Dependencies missing"
	case StateLoaded:
		return "Ready"
	default:
		return "Unknown"
	}
}

// Citation is a human-auditable reference derived from a retrieved item. It is
// recomputed per query and never persisted independently.
type Citation struct {
	// File is the source file name.
	File string `json:"file"`

	// Page is the 1-based page locator.
	Page int `json:"page_number"`

	// Approximate is true when Page was estimated from the chunk ordinal
	// rather than recorded from the source format's own pagination.
	Approximate bool `json:"approximate"`

	// ChunkIndex is the chunk ordinal within the source file.
	ChunkIndex int `json:"chunk_index"`

	// Similarity is the relevance score in [0, 1].
	Similarity float64 `json:"similarity"`

	// Preview is a bounded excerpt of the chunk content.
	Preview string `json:"content"`
}

// QueryResult is the unified response of a pipeline query. Error is set only
// on failure; an empty Sources slice with no Error still means success.
type QueryResult struct {
	// Question is the caller's question, verbatim.
	Question string `json:"question"`

	// Answer is the generated answer text, or a fixed message when the
	// pipeline is degraded or retrieval found nothing.
	Answer string `json:"answer"`

	// Sources are citations ordered most relevant first.
	Sources []Citation `json:"sources"`

	// ContextUsed is the number of retrieved items given to the answer
	// generator.
	ContextUsed int `json:"context_used"`

	// Retrieved carries the raw retrieved items for downstream reuse.
	Retrieved []RetrievedItem `json:"retrieved_docs,omitempty"`

	// Error describes the failure when the query could not be served.
	Error string `json:"error,omitempty"`
}

// SetupStage identifies a knowledge-base setup stage for failure reporting.
type SetupStage string

// Setup stages, in execution order. The dependencies stage covers the
// construction-time probe result checked before any work starts.
const (
	StageDependencies SetupStage = "dependencies"
	StageDiscover     SetupStage = "discover"
	StageExtract      SetupStage = "extract"
	StageChunk        SetupStage = "chunk"
	StageEmbed        SetupStage = "embed"
	StageStore        SetupStage = "store"
)

// SetupResult reports what a knowledge-base setup run accomplished. A failed
// stage short-circuits the remaining stages; partial completion is never
// reported as success.
type SetupResult struct {
	// FilesProcessed counts files that were extracted and chunked.
	FilesProcessed int

	// FilesSkipped counts unsupported or empty files.
	FilesSkipped int

	// FilesFailed counts files whose extraction failed.
	FilesFailed int

	// ChunksIndexed counts chunks embedded and stored.
	ChunksIndexed int

	// SampleCreated is true when the corpus was empty and a built-in sample
	// document was materialised.
	SampleCreated bool

	// Duration is the total wall time of the run.
	Duration time.Duration

	// FailedStage names the stage that aborted the run, empty on success.
	FailedStage SetupStage
}

// DatabaseStats describes the vector store contents.
type DatabaseStats struct {
	// TotalDocuments is the number of stored chunks.
	TotalDocuments int `json:"total_documents"`

	// UniqueSourceFiles is the number of distinct source files represented.
	UniqueSourceFiles int `json:"unique_source_files"`
}

// ModelInfo describes an AI model backing the pipeline.
type ModelInfo struct {
	// Name is the model identifier, empty when unavailable.
	Name string `json:"model_name,omitempty"`

	// Dimensions is the embedding vector size; zero for language models.
	Dimensions int `json:"embedding_dimension,omitempty"`

	// Status is a human-readable availability string.
	Status string `json:"status"`
}

// KnowledgeBaseStats is the pipeline's inspection surface. It must be
// obtainable without triggering a load.
type KnowledgeBaseStats struct {
	Database       DatabaseStats `json:"database"`
	EmbeddingModel ModelInfo     `json:"embedding_model"`
	LanguageModel  ModelInfo     `json:"language_model"`
	SystemStatus   string        `json:"system_status"`
}
