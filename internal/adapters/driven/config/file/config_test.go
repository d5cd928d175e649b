package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencourse-labs/tutor-cli/internal/core/domain"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, "course_materials", cfg.Corpus.Dir)
	assert.Equal(t, domain.DefaultChunkSize, cfg.Chunking.ChunkSize)
	assert.Equal(t, domain.DefaultChunkOverlap, cfg.Chunking.Overlap)
	assert.Equal(t, domain.DefaultTopK, cfg.Retrieval.TopK)
	assert.Equal(t, string(domain.AIProviderOllama), cfg.Embedding.Provider)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[corpus]
dir = "/srv/course-docs"

[chunking]
overlap = 150
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/course-docs", cfg.Corpus.Dir)
	assert.Equal(t, 150, cfg.Chunking.Overlap)
	// Unset fields keep their defaults.
	assert.Equal(t, domain.DefaultChunkSize, cfg.Chunking.ChunkSize)
	assert.Equal(t, domain.DefaultEmbedBatchSize, cfg.Retrieval.BatchSize)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("corpus = {{"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_APIKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[embedding]
provider = "openai"

[answer]
provider = "openai"
api_key = "sk-file"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	// The environment fills only keys the file left empty.
	assert.Equal(t, "sk-env", cfg.Embedding.APIKey)
	assert.Equal(t, "sk-file", cfg.Answer.APIKey)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Corpus.Dir = "/tmp/corpus"
	cfg.Chunking.ChunkSize = 500
	cfg.Answer.Model = "llama3.2"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Corpus.Dir, loaded.Corpus.Dir)
	assert.Equal(t, 500, loaded.Chunking.ChunkSize)
	assert.Equal(t, "llama3.2", loaded.Answer.Model)
}

func TestConfig_SettingsConversion(t *testing.T) {
	cfg := Default()
	cfg.Embedding.Provider = "openai"
	cfg.Embedding.APIKey = "sk-test"
	cfg.Answer.MaxTokens = 512

	emb := cfg.EmbeddingSettings()
	assert.Equal(t, domain.AIProviderOpenAI, emb.Provider)
	assert.True(t, emb.IsConfigured())

	ans := cfg.AnswerSettings()
	assert.Equal(t, domain.AIProviderOllama, ans.Provider)
	assert.Equal(t, 512, ans.MaxTokens)

	require.NoError(t, cfg.ChunkingSettings().Validate())
}
