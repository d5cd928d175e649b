package sqlite

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencourse-labs/tutor-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "tutor-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func encodedChunk(sourceFile string, index int, content string, embedding []float32) domain.EncodedChunk {
	return domain.EncodedChunk{
		Chunk: domain.Chunk{
			Content:    content,
			SourceFile: sourceFile,
			Index:      index,
			StartWord:  0,
			EndWord:    len(content),
			Metadata: map[string]any{
				domain.MetaSourceFile: sourceFile,
				domain.MetaChunkIndex: index,
			},
		},
		Embedding: embedding,
	}
}

func TestStore_UpsertAndQuery(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	err := store.Upsert(ctx, []domain.EncodedChunk{
		encodedChunk("notes.txt", 0, "exactly aligned", []float32{1, 0}),
		encodedChunk("notes.txt", 1, "orthogonal", []float32{0, 1}),
		encodedChunk("notes.txt", 2, "nearly aligned", []float32{0.9, 0.1}),
	})
	require.NoError(t, err)

	items, err := store.Query(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Ordered by increasing distance: exact match first.
	assert.Equal(t, "notes.txt_chunk_0", items[0].ID)
	assert.Equal(t, "notes.txt_chunk_2", items[1].ID)
	assert.Less(t, items[0].Distance, items[1].Distance)

	assert.InDelta(t, 1.0, items[0].Similarity, 1e-6)
	for _, item := range items {
		assert.GreaterOrEqual(t, item.Similarity, 0.0)
		assert.LessOrEqual(t, item.Similarity, 1.0)
	}
}

func TestStore_Upsert_Idempotent(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	chunks := []domain.EncodedChunk{
		encodedChunk("lecture.pdf", 0, "first pass", []float32{1, 0}),
		encodedChunk("lecture.pdf", 1, "second chunk", []float32{0, 1}),
	}
	require.NoError(t, store.Upsert(ctx, chunks))

	// Re-ingesting the same file must replace rows, not duplicate them.
	chunks[0].Content = "first pass, updated"
	require.NoError(t, store.Upsert(ctx, chunks))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalDocuments)
	assert.Equal(t, 1, stats.UniqueSourceFiles)

	items, err := store.Query(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "first pass, updated", items[0].Content)
}

func TestStore_Query_TopKBounds(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, []domain.EncodedChunk{
		encodedChunk("a.txt", 0, "one", []float32{1, 0}),
	}))

	t.Run("topK larger than store", func(t *testing.T) {
		items, err := store.Query(ctx, []float32{1, 0}, 10)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("zero topK", func(t *testing.T) {
		items, err := store.Query(ctx, []float32{1, 0}, 0)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("empty store", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		items, err := store.Query(ctx, []float32{1, 0}, 5)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestStore_MetadataRoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	chunk := encodedChunk("notes.txt", 0, "content", []float32{1})
	chunk.Metadata["tags"] = []string{"week1", "intro"} // not JSON-primitive
	chunk.Metadata[domain.MetaPageNumber] = 4
	require.NoError(t, store.Upsert(ctx, []domain.EncodedChunk{chunk}))

	items, err := store.Query(ctx, []float32{1}, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)

	meta := items[0].Metadata
	assert.Equal(t, "notes.txt", meta[domain.MetaSourceFile])
	// Complex values are stringified at the storage boundary.
	assert.Equal(t, "[week1 intro]", meta["tags"])
	// Numbers come back as float64 after the JSON round trip.
	assert.Equal(t, float64(4), meta[domain.MetaPageNumber])
}

func TestStore_Clear(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, []domain.EncodedChunk{
		encodedChunk("a.txt", 0, "one", []float32{1}),
		encodedChunk("b.txt", 0, "two", []float32{1}),
	}))

	require.NoError(t, store.Clear(ctx))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalDocuments)
	assert.Equal(t, 0, stats.UniqueSourceFiles)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "tutor-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	ctx := context.Background()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Upsert(ctx, []domain.EncodedChunk{
		encodedChunk("notes.txt", 0, "persisted", []float32{1, 0}),
	}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(tempDir)
	require.NoError(t, err)
	defer reopened.Close()

	stats, err := reopened.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalDocuments)
}

func TestFloat32Codec(t *testing.T) {
	in := []float32{0, 1.5, -2.25, 3.14159}
	out := bytesToFloat32Slice(float32SliceToBytes(in))
	assert.Equal(t, in, out)

	assert.Nil(t, bytesToFloat32Slice(nil))
}

func TestCosineDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0}, []float32{1, 0}, 0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 1},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, 2},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 1},
		{"length mismatch", []float32{1}, []float32{1, 0}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineDistance(tt.a, tt.b), 1e-9)
		})
	}
}
