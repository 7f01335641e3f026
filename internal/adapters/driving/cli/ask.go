package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var askShowContext bool

var askCmd = &cobra.Command{
	Use:   "ask [document] [question]",
	Short: "Ask a single question about a document",
	Long: `Answers one question about the document and exits. The index is
built on first use and reused afterwards.

Requires the chat model API key (GROQ_API_KEY by default) to be set.`,
	Args: cobra.ExactArgs(2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowContext, "show-context", false, "print the retrieved passages with the answer")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	docPath, question := args[0], args[1]

	if chatService == nil {
		return errors.New("chat service not configured")
	}
	if err := checkLLM(); err != nil {
		return err
	}

	session, err := chatService.NewSession(cmd.Context(), docPath)
	if err != nil {
		return fmt.Errorf("opening session: %w", err)
	}

	answer, err := chatService.Ask(cmd.Context(), session, question)
	if err != nil {
		return err
	}

	cmd.Println(answer.Text)

	if askShowContext && len(answer.Contexts) > 0 {
		cmd.Println()
		cmd.Println("Retrieved context:")
		for i, ctx := range answer.Contexts {
			cmd.Printf("  [%d] %s\n", i+1, ctx)
		}
	}

	return nil
}
