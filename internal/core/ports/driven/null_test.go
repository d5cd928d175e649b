package driven

import (
	"context"
	"errors"
	"testing"

	"github.com/opencourse-labs/tutor-cli/internal/core/domain"
)

func TestNullEmbeddingService(t *testing.T) {
	ctx := context.Background()
	var svc NullEmbeddingService

	if _, err := svc.Embed(ctx, "text"); !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Errorf("expected ErrEmbeddingUnavailable, got %v", err)
	}
	if _, err := svc.EmbedBatch(ctx, []string{"text"}); !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Errorf("expected ErrEmbeddingUnavailable, got %v", err)
	}
	if err := svc.Ping(ctx); !errors.Is(err, domain.ErrEmbeddingUnavailable) {
		t.Errorf("expected ErrEmbeddingUnavailable from ping, got %v", err)
	}
	if svc.Dimensions() != 0 {
		t.Errorf("expected zero dimensions, got %d", svc.Dimensions())
	}
	if svc.ModelName() != "" {
		t.Errorf("expected empty model name, got %q", svc.ModelName())
	}
	if err := svc.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
}

func TestNullAnswerService(t *testing.T) {
	ctx := context.Background()
	var svc NullAnswerService

	if _, err := svc.Answer(ctx, "question", []string{"context"}); !errors.Is(err, domain.ErrAnswerUnavailable) {
		t.Errorf("expected ErrAnswerUnavailable, got %v", err)
	}
	if err := svc.Ping(ctx); !errors.Is(err, domain.ErrAnswerUnavailable) {
		t.Errorf("expected ErrAnswerUnavailable from ping, got %v", err)
	}
}

func TestNullVectorStore(t *testing.T) {
	ctx := context.Background()
	var store NullVectorStore

	if err := store.Upsert(ctx, nil); !errors.Is(err, domain.ErrVectorStoreUnavailable) {
		t.Errorf("expected ErrVectorStoreUnavailable, got %v", err)
	}
	if _, err := store.Query(ctx, nil, 5); !errors.Is(err, domain.ErrVectorStoreUnavailable) {
		t.Errorf("expected ErrVectorStoreUnavailable, got %v", err)
	}
	if err := store.Clear(ctx); !errors.Is(err, domain.ErrVectorStoreUnavailable) {
		t.Errorf("expected ErrVectorStoreUnavailable, got %v", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("expected stats to work in fallback mode, got %v", err)
	}
	if stats.TotalDocuments != 0 {
		t.Errorf("expected empty stats, got %d documents", stats.TotalDocuments)
	}
}
