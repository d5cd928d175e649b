// Package pdf extracts per-page text from PDF files.
package pdf

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/opencourse-labs/tutor-cli/internal/core/domain"
	"github.com/opencourse-labs/tutor-cli/internal/core/ports/driven"
	"github.com/opencourse-labs/tutor-cli/internal/logger"
)

// Extractor reads PDFs page by page so chunks downstream can carry true page
// numbers instead of the approximated locator.
type Extractor struct{}

var _ driven.Extractor = (*Extractor)(nil)

// New creates a PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedTypes returns the formats this extractor handles.
func (e *Extractor) SupportedTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypePDF}
}

// Extract opens the PDF and collects the plain text of every page. A page
// that fails to decode is skipped with a warning; the rest of the document
// still ingests. A document where every page failed is an extraction error.
func (e *Extractor) Extract(ctx context.Context, path string) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	total := reader.NumPage()
	pages := make([]domain.PageText, 0, total)
	var failed int
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			failed++
			logger.Warn("Skipping page %d of %s: %v", i, filepath.Base(path), err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, domain.PageText{Number: i, Text: text})
	}

	if len(pages) == 0 && failed > 0 {
		return nil, fmt.Errorf("extract %s: no readable pages", path)
	}

	texts := make([]string, len(pages))
	for i, p := range pages {
		texts[i] = p.Text
	}

	return &domain.Document{
		ID:    uuid.NewString(),
		Path:  path,
		Name:  filepath.Base(path),
		Type:  domain.FileTypePDF,
		Size:  info.Size(),
		Text:  strings.Join(texts, "\n"),
		Pages: pages,
	}, nil
}
