// Package memory provides an in-memory vector store, used in tests and as a
// throwaway store when persistence is not wanted.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/opencourse-labs/tutor-cli/internal/core/domain"
	"github.com/opencourse-labs/tutor-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

type entry struct {
	sourceFile string
	content    string
	metadata   map[string]any
	embedding  []float32
}

// Store keeps every chunk in a map keyed by chunk ID. Upserting an existing
// ID replaces the entry.
type Store struct {
	mu     sync.RWMutex
	chunks map[string]entry
}

// NewStore creates an empty in-memory vector store.
func NewStore() *Store {
	return &Store{chunks: make(map[string]entry)}
}

// Upsert inserts or replaces the given encoded chunks, keyed by chunk ID.
func (s *Store) Upsert(_ context.Context, chunks []domain.EncodedChunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, chunk := range chunks {
		meta := make(map[string]any, len(chunk.Metadata))
		for k, v := range chunk.Metadata {
			switch v.(type) {
			case nil, string, bool, int, int8, int16, int32, int64,
				uint, uint8, uint16, uint32, uint64, float32, float64:
				meta[k] = v
			default:
				meta[k] = fmt.Sprintf("%v", v)
			}
		}
		s.chunks[chunk.ID()] = entry{
			sourceFile: chunk.SourceFile,
			content:    chunk.Content,
			metadata:   meta,
			embedding:  append([]float32(nil), chunk.Embedding...),
		}
	}
	return nil
}

// Query returns the topK stored items nearest to the query vector, ordered by
// increasing cosine distance.
func (s *Store) Query(_ context.Context, vector []float32, topK int) ([]domain.RetrievedItem, error) {
	if topK <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.RetrievedItem, 0, len(s.chunks))
	for id, e := range s.chunks {
		distance := cosineDistance(vector, e.embedding)
		items = append(items, domain.RetrievedItem{
			ID:         id,
			Content:    e.content,
			Metadata:   e.metadata,
			Distance:   distance,
			Similarity: domain.SimilarityFromDistance(distance),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Distance < items[j].Distance
	})
	if len(items) > topK {
		items = items[:topK]
	}
	return items, nil
}

// Stats reports the number of stored chunks and distinct source files.
func (s *Store) Stats(_ context.Context) (domain.DatabaseStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sources := make(map[string]bool)
	for _, e := range s.chunks {
		sources[e.sourceFile] = true
	}
	return domain.DatabaseStats{
		TotalDocuments:    len(s.chunks),
		UniqueSourceFiles: len(sources),
	}, nil
}

// Clear removes every stored item.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = make(map[string]entry)
	return nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

func cosineDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 1
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
