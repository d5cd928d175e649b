package pdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/opencourse-labs/tutor-cli/internal/core/domain"
)

func TestExtractor_SupportedTypes(t *testing.T) {
	types := New().SupportedTypes()
	if len(types) != 1 || types[0] != domain.FileTypePDF {
		t.Errorf("expected only %q, got %v", domain.FileTypePDF, types)
	}
}

func TestExtractor_Extract_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	if err := os.WriteFile(path, []byte("not a pdf"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := New().Extract(context.Background(), path)
	if err == nil {
		t.Error("expected error for non-PDF content")
	}
}

func TestExtractor_Extract_MissingFile(t *testing.T) {
	_, err := New().Extract(context.Background(), filepath.Join(t.TempDir(), "gone.pdf"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExtractor_Extract_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Extract(ctx, "irrelevant.pdf")
	if err == nil {
		t.Error("expected error for cancelled context")
	}
}
