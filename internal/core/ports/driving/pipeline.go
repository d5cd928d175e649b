// Package driving provides interfaces for external actors (primary/inbound
// ports).
package driving

import (
	"context"

	"github.com/opencourse-labs/tutor-cli/internal/core/domain"
)

// Pipeline is the complete surface exposed to consumers. The presentation
// layer calls nothing else.
type Pipeline interface {
	// SetupKnowledgeBase discovers, extracts, chunks, embeds and stores the
	// corpus. With forceRebuild the store is cleared first. A stage failure
	// short-circuits the remaining stages and is named in the result.
	SetupKnowledgeBase(ctx context.Context, forceRebuild bool) (*domain.SetupResult, error)

	// Query answers a question from the knowledge base. Adapter faults are
	// carried in QueryResult.Error rather than returned; the error return is
	// reserved for misuse of the pipeline itself.
	Query(ctx context.Context, question string, topK int) (*domain.QueryResult, error)

	// Stats reports store totals, model identities and the pipeline's load
	// state. The store may be opened briefly to read totals, but AI components
	// are never loaded and the lifecycle state does not change.
	Stats(ctx context.Context) (*domain.KnowledgeBaseStats, error)

	// Cleanup releases held resources. The pipeline would reload on next use.
	Cleanup() error
}
