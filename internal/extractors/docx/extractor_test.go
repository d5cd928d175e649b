package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/opencourse-labs/tutor-cli/internal/core/domain"
)

// writeDocx materialises a minimal word document with the given document.xml
// body paragraphs.
func writeDocx(t *testing.T, path, documentXML string) {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	entry, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := entry.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func TestExtractor_Extract(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lecture.docx")
	writeDocx(t, path, `<?xml version="1.0"?>
<document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <body>
    <p><r><t>The midterm covers </t></r><r><t>chapters 1 through 5.</t></r></p>
    <p><r><t>Office hours are on Thursdays.</t></r></p>
  </body>
</document>`)

	doc, err := New().Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "The midterm covers chapters 1 through 5.\nOffice hours are on Thursdays."
	if doc.Text != want {
		t.Errorf("expected %q, got %q", want, doc.Text)
	}
	if doc.Type != domain.FileTypeDocx {
		t.Errorf("expected type %q, got %q", domain.FileTypeDocx, doc.Type)
	}
	if doc.Name != "lecture.docx" {
		t.Errorf("expected name 'lecture.docx', got %q", doc.Name)
	}
	if len(doc.Pages) != 0 {
		t.Errorf("expected no pages for docx, got %d", len(doc.Pages))
	}
	if doc.ID == "" {
		t.Error("expected a document ID")
	}
}

func TestExtractor_Extract_NotAZip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.docx")
	if err := os.WriteFile(path, []byte("plain text posing as docx"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := New().Extract(context.Background(), path)
	if err == nil {
		t.Error("expected error for non-zip content")
	}
}

func TestExtractor_Extract_MissingDocumentXML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.docx")

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	if _, err := w.Create("word/other.xml"); err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := New().Extract(context.Background(), path)
	if err == nil {
		t.Error("expected error for archive without word/document.xml")
	}
}

func TestExtractor_Extract_MissingFile(t *testing.T) {
	_, err := New().Extract(context.Background(), filepath.Join(t.TempDir(), "gone.docx"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExtractor_Extract_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Extract(ctx, "irrelevant.docx")
	if err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestExtractor_SupportedTypes(t *testing.T) {
	types := New().SupportedTypes()
	if len(types) != 1 || types[0] != domain.FileTypeDocx {
		t.Errorf("expected only %q, got %v", domain.FileTypeDocx, types)
	}
}
