package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
)

var (
	searchK    int
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search [document] [query]",
	Short: "Find the passages most similar to a query",
	Long: `Embeds the query and returns the document passages closest to it
under cosine similarity, most similar first.`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchK, "top", "k", 0, "number of passages to return (default 3)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	docPath, query := args[0], args[1]

	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	results, err := retrievalService.Search(cmd.Context(), docPath, query, searchK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchText(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.RetrievedChunk) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, results []domain.RetrievedChunk) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		cmd.Printf("  [%d] chunk %d (%.3f)\n", i+1, results[i].Chunk.Ordinal, results[i].Score)
		cmd.Printf("      %s\n", results[i].Chunk.Text)
		cmd.Println()
	}

	return nil
}
