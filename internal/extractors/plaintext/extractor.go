// Package plaintext extracts text from .txt and .md files.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/opencourse-labs/tutor-cli/internal/core/domain"
	"github.com/opencourse-labs/tutor-cli/internal/core/ports/driven"
)

// Extractor reads plain-text formats whole. These formats carry no
// pagination, so Document.Pages stays empty and citations fall back to the
// approximated page locator.
type Extractor struct{}

var _ driven.Extractor = (*Extractor)(nil)

// New creates a plain-text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedTypes returns the formats this extractor handles.
func (e *Extractor) SupportedTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypeText, domain.FileTypeMarkdown}
}

// Extract reads the whole file as UTF-8 text.
func (e *Extractor) Extract(ctx context.Context, path string) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &domain.Document{
		ID:   uuid.NewString(),
		Path: path,
		Name: filepath.Base(path),
		Type: domain.FileType(strings.ToLower(filepath.Ext(path))),
		Size: info.Size(),
		Text: string(data),
	}, nil
}
