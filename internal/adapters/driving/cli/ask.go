package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencourse-labs/tutor-cli/internal/citations"
	"github.com/opencourse-labs/tutor-cli/internal/core/domain"
)

var (
	askTopK int
	askJSON bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your course materials",
	Long: `Retrieves the most relevant passages from the knowledge base and generates
an answer grounded in them, with citations back to the source documents.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of passages to retrieve (default from config)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	pipeline, err := buildPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Cleanup()

	result, err := pipeline.Query(cmd.Context(), args[0], askTopK)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if askJSON {
		return outputAskJSON(cmd, result)
	}
	return outputAskText(cmd, result)
}

func outputAskJSON(cmd *cobra.Command, result *domain.QueryResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	if result.Error != "" {
		return errors.New(result.Error)
	}
	return nil
}

func outputAskText(cmd *cobra.Command, result *domain.QueryResult) error {
	if result.Error != "" {
		return errors.New(result.Error)
	}

	cmd.Println(result.Answer)

	if len(result.Sources) == 0 {
		return nil
	}

	cmd.Println()
	cmd.Println("Sources:")
	for _, entry := range citations.Bibliography(result.Sources) {
		cmd.Printf("  %s\n", entry)
	}

	for _, c := range result.Sources {
		if c.Approximate {
			cmd.Println()
			cmd.Println("Page numbers marked approximate are estimated from chunk position.")
			break
		}
	}
	return nil
}
