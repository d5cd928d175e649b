package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var setupForce bool

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Build the knowledge base from your course materials",
	Long: `Scans the configured course materials directory, extracts and chunks every
supported document, embeds the chunks, and stores them in the local vector
database. Re-running setup on unchanged files is safe: chunks are replaced,
not duplicated.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVar(&setupForce, "force", false, "clear the existing knowledge base first")
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	pipeline, err := buildPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Cleanup()

	result, err := pipeline.SetupKnowledgeBase(cmd.Context(), setupForce)
	if err != nil {
		if result != nil && result.FailedStage != "" {
			return fmt.Errorf("setup failed during the %s stage: %w", result.FailedStage, err)
		}
		return fmt.Errorf("setup failed: %w", err)
	}

	if result.SampleCreated {
		cmd.Println("Your course materials folder was empty, so a sample document was created.")
	}

	cmd.Printf("Indexed %d chunk(s) from %d file(s) in %s\n",
		result.ChunksIndexed, result.FilesProcessed, result.Duration.Round(time.Millisecond))
	if result.FilesSkipped > 0 {
		cmd.Printf("Skipped %d unsupported or empty file(s)\n", result.FilesSkipped)
	}
	if result.FilesFailed > 0 {
		cmd.Printf("Failed to read %d file(s); run with --verbose for details\n", result.FilesFailed)
	}
	return nil
}
