package driven

import "context"

// AnswerService phrases a final answer from a question and retrieved context.
//
// The pipeline treats answer generation as a black box: (question, context)
// in, text out. The service is never invoked with empty context; the
// orchestrator short-circuits first.
//
// Implementations may include:
//   - Ollama (llama3.2, mistral)
//   - OpenAI (gpt-4o-mini)
type AnswerService interface {
	// Answer generates an answer to the question grounded in the given
	// context passages.
	Answer(ctx context.Context, question string, contextPassages []string) (string, error)

	// ModelName returns the name of the language model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
