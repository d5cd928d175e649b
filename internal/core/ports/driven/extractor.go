package driven

import (
	"context"

	"github.com/opencourse-labs/tutor-cli/internal/core/domain"
)

// Extractor converts a source file into raw text.
//
// Extractors are selected by file extension. A format with native pagination
// (PDF) fills Document.Pages so citations can carry true page numbers;
// unpaginated formats leave Pages empty and citations fall back to an
// approximation.
type Extractor interface {
	// SupportedTypes returns the file types this extractor handles.
	SupportedTypes() []domain.FileType

	// Extract reads the file and returns a Document with Text (and Pages,
	// when the format is paginated) populated.
	Extract(ctx context.Context, path string) (*domain.Document, error)
}
