package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or answer
// generation.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or compatible APIs).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// AnswerSettings holds answer-generation provider configuration.
type AnswerSettings struct {
	// Provider is the language model provider.
	Provider AIProvider

	// Model is the language model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or compatible APIs).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// MaxTokens bounds the generated answer length.
	MaxTokens int

	// Temperature controls generation randomness.
	Temperature float64
}

// IsConfigured returns true if the answer provider is set up.
func (a AnswerSettings) IsConfigured() bool {
	if !a.Provider.IsValid() {
		return false
	}
	if a.Provider.RequiresAPIKey() && a.APIKey == "" {
		return false
	}
	return true
}

// Default chunking and retrieval parameters.
const (
	// DefaultChunkSize is the chunk window in words.
	DefaultChunkSize = 1000

	// DefaultChunkOverlap is the overlap between consecutive chunks in words.
	DefaultChunkOverlap = 200

	// DefaultChunksPerPage is the constant used to approximate a page number
	// from a chunk ordinal for formats without native pagination.
	DefaultChunksPerPage = 3

	// DefaultEmbedBatchSize bounds how many chunks are embedded per adapter
	// call.
	DefaultEmbedBatchSize = 128

	// DefaultTopK is the number of neighbours retrieved per query.
	DefaultTopK = 5
)

// ChunkingSettings holds the word-window chunking parameters.
type ChunkingSettings struct {
	// ChunkSize is the window size in words.
	ChunkSize int

	// Overlap is the number of words shared by consecutive chunks.
	Overlap int

	// ChunksPerPage is the page-approximation constant.
	ChunksPerPage int
}

// Validate checks the chunking invariants. Overlap must be strictly smaller
// than the chunk size or the sliding window never advances.
func (c ChunkingSettings) Validate() error {
	if c.ChunkSize <= 0 {
		return ErrInvalidChunking
	}
	if c.Overlap < 0 || c.Overlap >= c.ChunkSize {
		return ErrInvalidChunking
	}
	if c.ChunksPerPage <= 0 {
		return ErrInvalidChunking
	}
	return nil
}

// DefaultChunking returns the default chunking settings.
func DefaultChunking() ChunkingSettings {
	return ChunkingSettings{
		ChunkSize:     DefaultChunkSize,
		Overlap:       DefaultChunkOverlap,
		ChunksPerPage: DefaultChunksPerPage,
	}
}
