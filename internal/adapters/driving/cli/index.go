package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index [document]",
	Short: "Build or refresh the index for a document",
	Long: `Splits the document into chunks, embeds them, and persists the
index so later queries start instantly. Running it again is a no-op
unless the document changed.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if indexerService == nil {
		return errors.New("indexer not configured")
	}

	count, err := indexerService.Index(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	if count == 0 {
		cmd.Println("Nothing to index: the document is missing or empty.")
		return nil
	}

	cmd.Printf("Indexed %d chunks.\n", count)
	return nil
}
