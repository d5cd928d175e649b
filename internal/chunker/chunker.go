// Package chunker splits cleaned document text into overlapping word windows.
package chunker

import (
	"regexp"
	"strings"

	"github.com/opencourse-labs/tutor-cli/internal/core/domain"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// allowedRe matches everything outside the allow-list: word characters,
	// whitespace and common punctuation survive, the rest becomes a space.
	allowedRe = regexp.MustCompile(`[^\w\s.,!?;:()\-\[\]{}"]`)
)

// Chunker produces overlapping fixed-size word windows from document text.
//
// The window advances by (chunk size - overlap) words per step, so the
// overlap between consecutive chunks is exact. The final window is clipped to
// the remaining words and may be shorter.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the window size in words.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between consecutive chunks in words.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker. It fails fast when overlap >= chunk size; a window
// that never advances would otherwise loop forever during ingestion.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		chunkSize: domain.DefaultChunkSize,
		overlap:   domain.DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.overlap >= c.chunkSize {
		return nil, domain.ErrInvalidChunking
	}

	return c, nil
}

// ChunkSize returns the configured window size in words.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// Overlap returns the configured overlap in words.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Clean normalises raw extracted text: runs of whitespace collapse to single
// spaces, characters outside the allow-list are dropped, and the result is
// trimmed. Applied once, at ingestion; query text is only trimmed.
func Clean(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = allowedRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Chunk splits cleaned text into ordered chunks, copying the caller-supplied
// metadata onto each and recording the word span. Empty text yields no
// chunks; embedding empty strings is never useful.
//
// The first returned chunk has ordinal 0. Text at most one window long
// produces exactly one chunk spanning the whole input.
func (c *Chunker) Chunk(text string, metadata map[string]any) []domain.Chunk {
	return c.chunkWords(strings.Fields(text), metadata, 0, 0)
}

// ChunkPages splits a paginated document page by page, keeping a single
// running ordinal across pages so chunk IDs stay unique within the document.
// Each chunk records its true page number; word spans are page-local.
func (c *Chunker) ChunkPages(pages []domain.PageText, metadata map[string]any) []domain.Chunk {
	var chunks []domain.Chunk
	for _, page := range pages {
		words := strings.Fields(Clean(page.Text))
		chunks = append(chunks, c.chunkWords(words, metadata, len(chunks), page.Number)...)
	}
	return chunks
}

// chunkWords emits windows over words, assigning ordinals from baseIndex.
// pageNumber 0 means the source carries no pagination.
func (c *Chunker) chunkWords(words []string, metadata map[string]any, baseIndex, pageNumber int) []domain.Chunk {
	if len(words) == 0 {
		return nil
	}

	sourceFile, _ := metadata[domain.MetaSourceFile].(string)

	if len(words) <= c.chunkSize {
		return []domain.Chunk{c.newChunk(words, metadata, sourceFile, baseIndex, 0, len(words), pageNumber)}
	}

	step := c.chunkSize - c.overlap
	estimated := (len(words)-c.overlap)/step + 1
	chunks := make([]domain.Chunk, 0, estimated)

	for start, index := 0, baseIndex; ; start, index = start+step, index+1 {
		end := start + c.chunkSize
		if end > len(words) {
			end = len(words)
		}

		chunks = append(chunks, c.newChunk(words[start:end], metadata, sourceFile, index, start, end, pageNumber))

		if end == len(words) {
			break
		}
	}

	return chunks
}

func (c *Chunker) newChunk(words []string, metadata map[string]any, sourceFile string, index, start, end, pageNumber int) domain.Chunk {
	meta := make(map[string]any, len(metadata)+4)
	for k, v := range metadata {
		meta[k] = v
	}
	meta[domain.MetaChunkIndex] = index
	meta[domain.MetaStartWord] = start
	meta[domain.MetaEndWord] = end
	if pageNumber > 0 {
		meta[domain.MetaPageNumber] = pageNumber
	}

	return domain.Chunk{
		Content:    strings.Join(words, " "),
		SourceFile: sourceFile,
		Index:      index,
		StartWord:  start,
		EndWord:    end,
		PageNumber: pageNumber,
		Metadata:   meta,
	}
}
