package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencourse-labs/tutor-cli/internal/core/domain"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show knowledge base statistics",
	Long: `Reports the size of the indexed knowledge base, the configured models, and
the overall system status. This never loads the AI models; it is safe to run
as a health check.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	pipeline, err := buildPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Cleanup()

	stats, err := pipeline.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading stats: %w", err)
	}

	if statsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	outputStatsText(cmd, stats)
	return nil
}

func outputStatsText(cmd *cobra.Command, stats *domain.KnowledgeBaseStats) {
	cmd.Printf("System status:  %s\n", stats.SystemStatus)
	cmd.Println()
	cmd.Printf("Knowledge base: %d chunk(s) from %d source file(s)\n",
		stats.Database.TotalDocuments, stats.Database.UniqueSourceFiles)
	cmd.Println()

	cmd.Printf("Embedding model: %s\n", modelLine(stats.EmbeddingModel))
	if stats.EmbeddingModel.Dimensions > 0 {
		cmd.Printf("                 %d dimensions\n", stats.EmbeddingModel.Dimensions)
	}
	cmd.Printf("Language model:  %s\n", modelLine(stats.LanguageModel))
}

func modelLine(info domain.ModelInfo) string {
	if info.Name == "" {
		return info.Status
	}
	return fmt.Sprintf("%s (%s)", info.Name, info.Status)
}
