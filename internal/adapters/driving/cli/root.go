// Package cli implements the tutor command-line interface.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/opencourse-labs/tutor-cli/internal/adapters/driven/ai"
	configfile "github.com/opencourse-labs/tutor-cli/internal/adapters/driven/config/file"
	"github.com/opencourse-labs/tutor-cli/internal/adapters/driven/vectorstore/sqlite"
	"github.com/opencourse-labs/tutor-cli/internal/core/ports/driven"
	"github.com/opencourse-labs/tutor-cli/internal/core/ports/driving"
	"github.com/opencourse-labs/tutor-cli/internal/core/services"
	"github.com/opencourse-labs/tutor-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	verboseFlag bool
	configFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Ask questions about your course materials",
	Long: `tutor indexes a folder of course documents (PDF, Word, text, Markdown) into
a local vector database and answers questions about them with cited sources.

Run 'tutor setup' once to build the knowledge base, then 'tutor ask' to query it.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file (default ~/.tutor/config.toml)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the configuration from --config or the default location.
func loadConfig() (configfile.Config, error) {
	path := configFlag
	if path == "" {
		dir, err := configfile.DefaultConfigDir()
		if err != nil {
			return configfile.Config{}, err
		}
		path = filepath.Join(dir, "config.toml")
	}
	return configfile.Load(path)
}

// buildPipeline loads configuration, probes the AI services, and constructs
// the pipeline. Probe failures do not abort: the pipeline is returned in
// fallback mode with the findings attached as warnings.
func buildPipeline() (driving.Pipeline, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	var warnings []string

	embSettings := cfg.EmbeddingSettings()
	embedding, err := ai.CreateAndValidateEmbeddingService(&embSettings)
	if err != nil {
		warnings = append(warnings, err.Error())
		logger.Warn("%v", err)
	}
	if embedding == nil && err == nil {
		warnings = append(warnings, "embedding provider is not configured")
	}

	ansSettings := cfg.AnswerSettings()
	answer, err := ai.CreateAndValidateAnswerService(&ansSettings)
	if err != nil {
		warnings = append(warnings, err.Error())
		logger.Warn("%v", err)
	}
	if answer == nil && err == nil {
		warnings = append(warnings, "answer provider is not configured")
	}

	pipeline, err := services.NewPipeline(
		services.Config{
			CorpusDir:   cfg.Corpus.Dir,
			Chunking:    cfg.ChunkingSettings(),
			BatchSize:   cfg.Retrieval.BatchSize,
			DefaultTopK: cfg.Retrieval.TopK,
		},
		services.Dependencies{
			Embedding: embedding,
			Answer:    answer,
			OpenStore: func() (driven.VectorStore, error) {
				return sqlite.NewStore(cfg.Corpus.DataDir)
			},
			Warnings: warnings,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("building pipeline: %w", err)
	}
	return pipeline, nil
}
