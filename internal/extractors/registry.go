// Package extractors routes source files to the text extractor for their
// format.
package extractors

import (
	"path/filepath"
	"strings"

	"github.com/opencourse-labs/tutor-cli/internal/core/domain"
	"github.com/opencourse-labs/tutor-cli/internal/core/ports/driven"
	"github.com/opencourse-labs/tutor-cli/internal/extractors/docx"
	"github.com/opencourse-labs/tutor-cli/internal/extractors/pdf"
	"github.com/opencourse-labs/tutor-cli/internal/extractors/plaintext"
)

// Registry selects an extractor by file extension. A supported file type with
// no registered extractor is treated the same as an unsupported type: the
// ingestion path skips the file instead of failing the corpus.
type Registry struct {
	byType map[domain.FileType]driven.Extractor
}

// NewRegistry builds a registry from the given extractors. Later extractors
// win when two claim the same type.
func NewRegistry(exts ...driven.Extractor) *Registry {
	r := &Registry{byType: make(map[domain.FileType]driven.Extractor)}
	for _, ext := range exts {
		for _, t := range ext.SupportedTypes() {
			r.byType[t] = ext
		}
	}
	return r
}

// Default returns a registry with the extractors this build ships: plain text
// (.txt, .md), PDF and docx.
func Default() *Registry {
	return NewRegistry(plaintext.New(), pdf.New(), docx.New())
}

// TypeOf returns the file type for a path, derived from its extension.
func TypeOf(path string) domain.FileType {
	return domain.FileType(strings.ToLower(filepath.Ext(path)))
}

// ForPath returns the extractor for the path's file type, if one is
// registered.
func (r *Registry) ForPath(path string) (driven.Extractor, bool) {
	ext, ok := r.byType[TypeOf(path)]
	return ext, ok
}
