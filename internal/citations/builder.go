// Package citations derives human-auditable source references from retrieved
// items and renders them in inline and bibliographic styles.
package citations

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/opencourse-labs/tutor-cli/internal/core/domain"
)

// DefaultPreviewBytes bounds the content excerpt carried on a citation.
const DefaultPreviewBytes = 500

// Builder turns retrieved items into citations.
//
// When an item's metadata carries a true page number recorded at ingestion,
// the citation uses it verbatim. Otherwise the page is approximated as
// chunk_index/chunksPerPage + 1 and the citation is flagged Approximate so
// rendering can disclose the imprecision.
type Builder struct {
	chunksPerPage int
	previewBytes  int
}

// Option configures the builder.
type Option func(*Builder)

// WithChunksPerPage sets the chunks-per-page constant used for page
// approximation.
func WithChunksPerPage(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.chunksPerPage = n
		}
	}
}

// WithPreviewBytes bounds the length of citation previews.
func WithPreviewBytes(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.previewBytes = n
		}
	}
}

// NewBuilder creates a citation builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		chunksPerPage: domain.DefaultChunksPerPage,
		previewBytes:  DefaultPreviewBytes,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build derives one citation per retrieved item, preserving the input order.
// Callers rely on that order being most-relevant-first to decide what to show
// and what to truncate.
func (b *Builder) Build(items []domain.RetrievedItem) []domain.Citation {
	if len(items) == 0 {
		return nil
	}

	cites := make([]domain.Citation, 0, len(items))
	for _, item := range items {
		file, _ := item.Metadata[domain.MetaSourceFile].(string)
		if file == "" {
			file = "unknown"
		}

		chunkIndex, _ := metaInt(item.Metadata, domain.MetaChunkIndex)

		page, exact := metaInt(item.Metadata, domain.MetaPageNumber)
		if !exact || page <= 0 {
			page = chunkIndex/b.chunksPerPage + 1
		}

		cites = append(cites, domain.Citation{
			File:        file,
			Page:        page,
			Approximate: !exact,
			ChunkIndex:  chunkIndex,
			Similarity:  item.Similarity,
			Preview:     truncate(item.Content, b.previewBytes),
		})
	}
	return cites
}

// metaInt reads an integer metadata value. Values round-trip through JSON in
// the store layer, so numbers may come back as float64.
func metaInt(meta map[string]any, key string) (int, bool) {
	switch v := meta[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	default:
		return 0, false
	}
}

// truncate clips s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

// Inline renders the short citation form, "file, p. N". Approximate pages are
// marked with a tilde so an estimate is never presented as exact.
func Inline(c domain.Citation) string {
	if c.Approximate {
		return fmt.Sprintf("%s, p. ~%d", c.File, c.Page)
	}
	return fmt.Sprintf("%s, p. %d", c.File, c.Page)
}

// Bibliography renders the expanded form: one entry per source file, in
// first-appearance order, with that file's pages de-duplicated, sorted
// ascending and merged into contiguous runs ("Pages 1-3, 7"). An entry whose
// pages include an approximation carries an "(approximate)" suffix.
func Bibliography(cites []domain.Citation) []string {
	type group struct {
		pages       map[int]bool
		approximate bool
	}

	var order []string
	groups := make(map[string]*group)
	for _, c := range cites {
		g, ok := groups[c.File]
		if !ok {
			g = &group{pages: make(map[int]bool)}
			groups[c.File] = g
			order = append(order, c.File)
		}
		g.pages[c.Page] = true
		if c.Approximate {
			g.approximate = true
		}
	}

	entries := make([]string, 0, len(order))
	for _, file := range order {
		g := groups[file]
		entry := file + ", " + formatPages(g.pages)
		if g.approximate {
			entry += " (approximate)"
		}
		entries = append(entries, entry)
	}
	return entries
}

// formatPages renders a set of page numbers as "Page 2" or "Pages 1-3, 7".
func formatPages(set map[int]bool) string {
	pages := make([]int, 0, len(set))
	for p := range set {
		pages = append(pages, p)
	}
	sort.Ints(pages)

	if len(pages) == 1 {
		return "Page " + strconv.Itoa(pages[0])
	}

	var runs []string
	for i := 0; i < len(pages); {
		j := i
		for j+1 < len(pages) && pages[j+1] == pages[j]+1 {
			j++
		}
		if j > i {
			runs = append(runs, fmt.Sprintf("%d-%d", pages[i], pages[j]))
		} else {
			runs = append(runs, strconv.Itoa(pages[i]))
		}
		i = j + 1
	}
	return "Pages " + strings.Join(runs, ", ")
}
