// Package docx extracts text from Office Open XML word documents.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/opencourse-labs/tutor-cli/internal/core/domain"
	"github.com/opencourse-labs/tutor-cli/internal/core/ports/driven"
)

// Extractor reads .docx files. A .docx carries no fixed pagination (pages
// depend on rendering), so Document.Pages stays empty and citations fall back
// to the approximated page locator.
type Extractor struct{}

var _ driven.Extractor = (*Extractor)(nil)

// New creates a docx extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedTypes returns the formats this extractor handles.
func (e *Extractor) SupportedTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypeDocx}
}

// Extract opens the file as a ZIP archive and collects the paragraph text of
// word/document.xml.
func (e *Extractor) Extract(ctx context.Context, path string) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open docx %s: %w", path, domain.ErrInvalidInput)
	}

	text, err := documentText(reader)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	return &domain.Document{
		ID:   uuid.NewString(),
		Path: path,
		Name: filepath.Base(path),
		Type: domain.FileTypeDocx,
		Size: int64(len(data)),
		Text: text,
	}, nil
}

// documentText extracts text from word/document.xml. An archive without that
// entry is not a word document.
func documentText(reader *zip.Reader) (string, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", domain.ErrInvalidInput
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", domain.ErrInvalidInput
		}

		return parseDocumentXML(content), nil
	}
	return "", domain.ErrInvalidInput
}

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// parseDocumentXML extracts the paragraph text, one line per paragraph.
func parseDocumentXML(content []byte) string {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return ""
	}

	var result strings.Builder
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			result.WriteString("\n")
		}
		for _, r := range para.Runs {
			for _, t := range r.Text {
				result.WriteString(t.Content)
			}
		}
	}

	return strings.TrimSpace(result.String())
}
