// Package file provides TOML-backed configuration for the tutor CLI.
//
// Configuration lives at ~/.tutor/config.toml by default. A missing file is
// not an error; every field has a workable default so a fresh install can run
// against a local Ollama without touching the config at all.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/opencourse-labs/tutor-cli/internal/core/domain"
)

// DefaultConfigDir returns the default configuration directory, ~/.tutor.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".tutor"), nil
}

// Config is the on-disk configuration.
type Config struct {
	Corpus    CorpusConfig    `toml:"corpus"`
	Chunking  ChunkingConfig  `toml:"chunking"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Embedding ProviderConfig  `toml:"embedding"`
	Answer    AnswerConfig    `toml:"answer"`
}

// CorpusConfig locates the course materials.
type CorpusConfig struct {
	// Dir is the directory scanned for course documents.
	Dir string `toml:"dir"`

	// DataDir holds the vector database. Empty means ~/.tutor/data.
	DataDir string `toml:"data_dir"`
}

// ChunkingConfig holds the word-window parameters.
type ChunkingConfig struct {
	ChunkSize     int `toml:"chunk_size"`
	Overlap       int `toml:"overlap"`
	ChunksPerPage int `toml:"chunks_per_page"`
}

// RetrievalConfig holds query-time parameters.
type RetrievalConfig struct {
	// TopK is the number of neighbours retrieved per question.
	TopK int `toml:"top_k"`

	// BatchSize bounds how many chunks are embedded per request during
	// ingestion.
	BatchSize int `toml:"batch_size"`
}

// ProviderConfig selects and configures an AI provider.
type ProviderConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"`
	APIKey   string `toml:"api_key"`
}

// AnswerConfig configures the answer-generation provider.
type AnswerConfig struct {
	Provider    string  `toml:"provider"`
	Model       string  `toml:"model"`
	BaseURL     string  `toml:"base_url"`
	APIKey      string  `toml:"api_key"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float64 `toml:"temperature"`
}

// Default returns the configuration used when no file exists: a local Ollama
// for both embeddings and answers, and ./course_materials as the corpus.
func Default() Config {
	return Config{
		Corpus: CorpusConfig{
			Dir: "course_materials",
		},
		Chunking: ChunkingConfig{
			ChunkSize:     domain.DefaultChunkSize,
			Overlap:       domain.DefaultChunkOverlap,
			ChunksPerPage: domain.DefaultChunksPerPage,
		},
		Retrieval: RetrievalConfig{
			TopK:      domain.DefaultTopK,
			BatchSize: domain.DefaultEmbedBatchSize,
		},
		Embedding: ProviderConfig{
			Provider: string(domain.AIProviderOllama),
		},
		Answer: AnswerConfig{
			Provider: string(domain.AIProviderOllama),
		},
	}
}

// Load reads the configuration at path. A missing file returns defaults. API
// keys left empty in the file fall back to the OPENAI_API_KEY environment
// variable so keys need not live on disk.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	fillDefaults(&cfg)
	applyEnv(&cfg)
	return cfg, nil
}

// Save writes the configuration to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// fillDefaults restores defaults for zero-valued numeric fields so a partial
// config file does not silently disable chunk overlap or retrieval.
func fillDefaults(cfg *Config) {
	def := Default()
	if cfg.Corpus.Dir == "" {
		cfg.Corpus.Dir = def.Corpus.Dir
	}
	if cfg.Chunking.ChunkSize == 0 {
		cfg.Chunking.ChunkSize = def.Chunking.ChunkSize
	}
	if cfg.Chunking.ChunksPerPage == 0 {
		cfg.Chunking.ChunksPerPage = def.Chunking.ChunksPerPage
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = def.Retrieval.TopK
	}
	if cfg.Retrieval.BatchSize == 0 {
		cfg.Retrieval.BatchSize = def.Retrieval.BatchSize
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = def.Embedding.Provider
	}
	if cfg.Answer.Provider == "" {
		cfg.Answer.Provider = def.Answer.Provider
	}
}

// applyEnv fills API keys from the environment when the file leaves them
// empty.
func applyEnv(cfg *Config) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		if cfg.Embedding.APIKey == "" {
			cfg.Embedding.APIKey = key
		}
		if cfg.Answer.APIKey == "" {
			cfg.Answer.APIKey = key
		}
	}
}

// ChunkingSettings converts the chunking section to domain settings.
func (c Config) ChunkingSettings() domain.ChunkingSettings {
	return domain.ChunkingSettings{
		ChunkSize:     c.Chunking.ChunkSize,
		Overlap:       c.Chunking.Overlap,
		ChunksPerPage: c.Chunking.ChunksPerPage,
	}
}

// EmbeddingSettings converts the embedding section to domain settings.
func (c Config) EmbeddingSettings() domain.EmbeddingSettings {
	return domain.EmbeddingSettings{
		Provider: domain.AIProvider(c.Embedding.Provider),
		Model:    c.Embedding.Model,
		BaseURL:  c.Embedding.BaseURL,
		APIKey:   c.Embedding.APIKey,
	}
}

// AnswerSettings converts the answer section to domain settings.
func (c Config) AnswerSettings() domain.AnswerSettings {
	return domain.AnswerSettings{
		Provider:    domain.AIProvider(c.Answer.Provider),
		Model:       c.Answer.Model,
		BaseURL:     c.Answer.BaseURL,
		APIKey:      c.Answer.APIKey,
		MaxTokens:   c.Answer.MaxTokens,
		Temperature: c.Answer.Temperature,
	}
}
