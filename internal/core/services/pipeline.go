// Package services contains the pipeline orchestrator that wires ingestion
// and query together.
package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/opencourse-labs/tutor-cli/internal/chunker"
	"github.com/opencourse-labs/tutor-cli/internal/citations"
	"github.com/opencourse-labs/tutor-cli/internal/core/domain"
	"github.com/opencourse-labs/tutor-cli/internal/core/ports/driven"
	"github.com/opencourse-labs/tutor-cli/internal/core/ports/driving"
	"github.com/opencourse-labs/tutor-cli/internal/extractors"
	"github.com/opencourse-labs/tutor-cli/internal/logger"
)

// Ensure Pipeline implements the driving port.
var _ driving.Pipeline = (*Pipeline)(nil)

// Fixed answers returned without invoking the answer service.
const (
	// AnswerNoResults is returned when retrieval finds nothing relevant.
	AnswerNoResults = "I could not find relevant information in the course materials to answer this question. " +
		"Try rephrasing, or run 'tutor setup' to index your documents."

	// AnswerUnavailable is returned for every question while the pipeline is
	// in fallback mode.
	AnswerUnavailable = "The question answering system is not available because required AI services " +
		"could not be reached. Check that your embedding and answer providers are running, then restart."
)

// Config holds the orchestrator parameters.
type Config struct {
	// CorpusDir is the directory scanned for course documents.
	CorpusDir string

	// Chunking holds the word-window parameters.
	Chunking domain.ChunkingSettings

	// BatchSize bounds how many chunks are embedded per adapter call. Zero
	// means domain.DefaultEmbedBatchSize.
	BatchSize int

	// DefaultTopK is used when a query passes topK <= 0.
	DefaultTopK int
}

// Dependencies holds the adapters resolved by the one-time probe. A nil
// field marks that capability unavailable: the pipeline substitutes the
// port's null adapter and commits to fallback mode for its lifetime.
type Dependencies struct {
	// Embedding converts text to vectors, nil when unavailable.
	Embedding driven.EmbeddingService

	// Answer phrases final answers, nil when unavailable.
	Answer driven.AnswerService

	// OpenStore lazily opens the vector store. Construction stays cheap; the
	// first setup or query pays the open cost.
	OpenStore func() (driven.VectorStore, error)

	// Extractors routes files to text extractors. Nil means the default set.
	Extractors *extractors.Registry

	// Warnings carries non-fatal probe findings, surfaced through stats.
	Warnings []string
}

// Pipeline sequences ingestion (discover, extract, chunk, embed, store) and
// query (embed question, retrieve, cite, answer). It is single-threaded by
// design: both operations run to completion on the calling goroutine.
type Pipeline struct {
	cfg       Config
	embedding driven.EmbeddingService
	answer    driven.AnswerService
	openStore func() (driven.VectorStore, error)
	registry  *extractors.Registry
	chunks    *chunker.Chunker
	citer     *citations.Builder

	state    domain.PipelineState
	store    driven.VectorStore
	warnings []string

	embMissing   bool
	ansMissing   bool
	storeMissing bool
}

// NewPipeline validates the configuration and runs the dependency probe.
// Invalid chunking settings fail fast; missing adapters do not fail, they
// commit the pipeline to fallback mode so callers still get well-formed
// responses.
func NewPipeline(cfg Config, deps Dependencies) (*Pipeline, error) {
	if cfg.Chunking.ChunkSize == 0 && cfg.Chunking.Overlap == 0 {
		cfg.Chunking = domain.DefaultChunking()
	}
	if err := cfg.Chunking.Validate(); err != nil {
		return nil, err
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = domain.DefaultEmbedBatchSize
	}
	if cfg.DefaultTopK <= 0 {
		cfg.DefaultTopK = domain.DefaultTopK
	}

	chunks, err := chunker.New(
		chunker.WithChunkSize(cfg.Chunking.ChunkSize),
		chunker.WithOverlap(cfg.Chunking.Overlap),
	)
	if err != nil {
		return nil, err
	}

	registry := deps.Extractors
	if registry == nil {
		registry = extractors.Default()
	}

	p := &Pipeline{
		cfg:       cfg,
		embedding: deps.Embedding,
		answer:    deps.Answer,
		openStore: deps.OpenStore,
		registry:  registry,
		chunks:    chunks,
		citer:     citations.NewBuilder(citations.WithChunksPerPage(cfg.Chunking.ChunksPerPage)),
		state:     domain.StateUnprobed,
		warnings:  append([]string(nil), deps.Warnings...),
	}

	// One-time probe: a capability that did not resolve is replaced by its
	// null adapter, so the pipeline always holds a complete component set
	// and a stray call gets a typed error instead of a nil dereference.
	p.embMissing = p.embedding == nil
	p.ansMissing = p.answer == nil
	p.storeMissing = p.openStore == nil
	if p.embMissing {
		p.embedding = driven.NullEmbeddingService{}
	}
	if p.ansMissing {
		p.answer = driven.NullAnswerService{}
	}
	if p.storeMissing {
		p.openStore = func() (driven.VectorStore, error) { return driven.NullVectorStore{}, nil }
	}

	if p.embMissing || p.ansMissing || p.storeMissing {
		p.state = domain.StateDependenciesMissing
		logger.Warn("Dependency probe failed, running in fallback mode")
	} else {
		p.state = domain.StateDependenciesOK
	}

	return p, nil
}

// State returns the current lifecycle state.
func (p *Pipeline) State() domain.PipelineState {
	return p.state
}

// Warnings returns non-fatal findings from the dependency probe.
func (p *Pipeline) Warnings() []string {
	return p.warnings
}

// load opens the vector store on first real use and moves the pipeline to
// the loaded state. Inspection paths must not call this.
func (p *Pipeline) load() error {
	if p.state == domain.StateDependenciesMissing {
		return domain.ErrDependenciesMissing
	}
	if p.store != nil {
		return nil
	}

	store, err := p.openStore()
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrVectorStoreUnavailable, err)
	}
	p.store = store
	p.state = domain.StateLoaded
	logger.Debug("Vector store opened")
	return nil
}

// SetupKnowledgeBase ingests the corpus directory: discover files, extract
// text, chunk, embed in batches, and upsert into the store. Any stage failure
// short-circuits the remaining stages and reports which stage failed. When
// the corpus is empty a built-in sample document is materialised so the
// pipeline stays exercisable.
func (p *Pipeline) SetupKnowledgeBase(ctx context.Context, forceRebuild bool) (*domain.SetupResult, error) {
	start := time.Now()
	result := &domain.SetupResult{}

	fail := func(stage domain.SetupStage, err error) (*domain.SetupResult, error) {
		result.FailedStage = stage
		result.Duration = time.Since(start)
		return result, err
	}

	if err := p.load(); err != nil {
		if errors.Is(err, domain.ErrDependenciesMissing) {
			return fail(domain.StageDependencies, err)
		}
		return fail(domain.StageStore, err)
	}

	if forceRebuild {
		logger.Info("Force rebuild: clearing existing knowledge base")
		if err := p.store.Clear(ctx); err != nil {
			return fail(domain.StageStore, fmt.Errorf("clearing store: %w", err))
		}
	}

	logger.Section("Discover")
	paths, sampleCreated, err := p.discover()
	if err != nil {
		return fail(domain.StageDiscover, err)
	}
	result.SampleCreated = sampleCreated
	logger.Info("Found %d file(s) in %s", len(paths), p.cfg.CorpusDir)

	logger.Section("Extract and chunk")
	var pending []domain.Chunk
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return fail(domain.StageExtract, err)
		}

		ext, ok := p.registry.ForPath(path)
		if !ok {
			logger.Debug("Skipping %s: no extractor for %s", filepath.Base(path), extractors.TypeOf(path))
			result.FilesSkipped++
			continue
		}

		doc, err := ext.Extract(ctx, path)
		if err != nil {
			// One bad document must not abort the corpus.
			logger.Warn("Failed to extract %s: %v", filepath.Base(path), err)
			result.FilesFailed++
			continue
		}

		chunks := p.chunkDocument(doc)
		if len(chunks) == 0 {
			logger.Debug("Skipping %s: no text", doc.Name)
			result.FilesSkipped++
			continue
		}

		logger.Debug("Chunked %s into %d chunk(s)", doc.Name, len(chunks))
		pending = append(pending, chunks...)
		result.FilesProcessed++
	}

	if len(pending) == 0 {
		result.Duration = time.Since(start)
		return result, nil
	}

	logger.Section("Embed")
	encoded, err := p.embedChunks(ctx, pending)
	if err != nil {
		return fail(domain.StageEmbed, err)
	}

	logger.Section("Store")
	if err := p.store.Upsert(ctx, encoded); err != nil {
		return fail(domain.StageStore, fmt.Errorf("storing chunks: %w", err))
	}

	result.ChunksIndexed = len(encoded)
	result.Duration = time.Since(start)
	logger.Info("Indexed %d chunk(s) from %d file(s) in %s", result.ChunksIndexed, result.FilesProcessed, result.Duration.Round(time.Millisecond))
	return result, nil
}

// discover lists supported files in the corpus directory, creating the
// directory and a sample document when the corpus is empty.
func (p *Pipeline) discover() ([]string, bool, error) {
	if err := os.MkdirAll(p.cfg.CorpusDir, 0755); err != nil {
		return nil, false, fmt.Errorf("%w: %s: %w", domain.ErrCorpusNotFound, p.cfg.CorpusDir, err)
	}

	list := func() ([]string, error) {
		entries, err := os.ReadDir(p.cfg.CorpusDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrCorpusNotFound, p.cfg.CorpusDir, err)
		}
		var paths []string
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if extractors.TypeOf(entry.Name()).IsSupported() {
				paths = append(paths, filepath.Join(p.cfg.CorpusDir, entry.Name()))
			}
		}
		return paths, nil
	}

	paths, err := list()
	if err != nil {
		return nil, false, err
	}
	if len(paths) > 0 {
		return paths, false, nil
	}

	samplePath := filepath.Join(p.cfg.CorpusDir, SampleFileName)
	logger.Info("Corpus is empty, creating sample document %s", SampleFileName)
	if err := os.WriteFile(samplePath, []byte(SampleContent), 0644); err != nil {
		return nil, false, fmt.Errorf("creating sample document: %w", err)
	}

	paths, err = list()
	if err != nil {
		return nil, true, err
	}
	return paths, true, nil
}

// chunkDocument splits a document, page-aware when the source format carries
// pagination.
func (p *Pipeline) chunkDocument(doc *domain.Document) []domain.Chunk {
	meta := map[string]any{
		domain.MetaSourceFile: doc.Name,
		domain.MetaDocumentID: doc.ID,
		domain.MetaFilePath:   doc.Path,
		domain.MetaFileType:   doc.Type.String(),
		domain.MetaFileSize:   doc.Size,
	}
	if len(doc.Pages) > 0 {
		return p.chunks.ChunkPages(doc.Pages, meta)
	}
	return p.chunks.Chunk(chunker.Clean(doc.Text), meta)
}

// embedChunks embeds chunk contents in batches and pairs each chunk with its
// vector. Batching bounds peak memory, one adapter call per batch.
func (p *Pipeline) embedChunks(ctx context.Context, chunks []domain.Chunk) ([]domain.EncodedChunk, error) {
	encoded := make([]domain.EncodedChunk, 0, len(chunks))
	for offset := 0; offset < len(chunks); offset += p.cfg.BatchSize {
		end := offset + p.cfg.BatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[offset:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Content
		}

		vectors, err := p.embedding.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embedding batch at %d: %w", offset, err)
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("embedding batch at %d: expected %d vectors, got %d", offset, len(batch), len(vectors))
		}

		for i, c := range batch {
			encoded = append(encoded, domain.EncodedChunk{Chunk: c, Embedding: vectors[i]})
		}
	}
	return encoded, nil
}

// Query answers a question against the knowledge base. Failures are converted
// into a result carrying Error; the method itself only errors on programmer
// mistakes, never on adapter faults.
func (p *Pipeline) Query(ctx context.Context, question string, topK int) (*domain.QueryResult, error) {
	result := &domain.QueryResult{Question: question}

	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		result.Error = "please provide a non-empty question"
		return result, nil
	}

	if p.state == domain.StateDependenciesMissing {
		result.Answer = AnswerUnavailable
		return result, nil
	}

	if topK <= 0 {
		topK = p.cfg.DefaultTopK
	}

	if err := p.load(); err != nil {
		result.Error = err.Error()
		return result, nil
	}

	vector, err := p.embedding.Embed(ctx, trimmed)
	if err != nil {
		result.Error = fmt.Sprintf("embedding question: %v", err)
		return result, nil
	}

	items, err := p.store.Query(ctx, vector, topK)
	if err != nil {
		result.Error = fmt.Sprintf("searching knowledge base: %v", err)
		return result, nil
	}
	result.Retrieved = items

	if len(items) == 0 {
		// Never invoke generation with empty context.
		result.Answer = AnswerNoResults
		return result, nil
	}

	result.Sources = p.citer.Build(items)

	passages := make([]string, len(items))
	for i, item := range items {
		passages[i] = item.Content
	}

	answer, err := p.answer.Answer(ctx, trimmed, passages)
	if err != nil {
		result.Error = fmt.Sprintf("generating answer: %v", err)
		return result, nil
	}

	result.Answer = answer
	result.ContextUsed = len(passages)
	return result, nil
}

// Stats reports the knowledge base state. It never loads AI components or
// advances the lifecycle state; the store is opened just long enough to read
// its totals when no store is held yet.
func (p *Pipeline) Stats(ctx context.Context) (*domain.KnowledgeBaseStats, error) {
	stats := &domain.KnowledgeBaseStats{
		SystemStatus: p.state.Description(),
	}

	if p.embMissing {
		stats.EmbeddingModel = domain.ModelInfo{Status: "Not available"}
	} else {
		stats.EmbeddingModel = domain.ModelInfo{
			Name:       p.embedding.ModelName(),
			Dimensions: p.embedding.Dimensions(),
			Status:     "Configured",
		}
	}

	if p.ansMissing {
		stats.LanguageModel = domain.ModelInfo{Status: "Not available"}
	} else {
		stats.LanguageModel = domain.ModelInfo{
			Name:   p.answer.ModelName(),
			Status: "Configured",
		}
	}

	store := p.store
	if store == nil {
		opened, err := p.openStore()
		if err != nil {
			return nil, fmt.Errorf("reading store stats: %w", err)
		}
		defer opened.Close()
		store = opened
	}

	db, err := store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading store stats: %w", err)
	}
	stats.Database = db

	return stats, nil
}

// Cleanup releases held resources. The logical state is unchanged; a
// subsequent operation reloads what it needs.
func (p *Pipeline) Cleanup() error {
	var errs []error
	if p.store != nil {
		if err := p.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing store: %w", err))
		}
		p.store = nil
	}
	if p.embedding != nil {
		if err := p.embedding.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing embedding service: %w", err))
		}
	}
	if p.answer != nil {
		if err := p.answer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing answer service: %w", err))
		}
	}
	return errors.Join(errs...)
}
