package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/docchat-labs/docchat-cli/internal/adapters/driving/tui"
)

var chatShowContext bool

var chatCmd = &cobra.Command{
	Use:   "chat [document]",
	Short: "Start an interactive chat session with a document",
	Long: `Opens an interactive conversation against the document. Each
question is answered with the most similar passages as context, and
the conversation so far is carried into every prompt.

Controls:
  Enter    - Send question
  ↑/↓      - Scroll transcript
  Ctrl+C   - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatShowContext, "show-context", false, "show retrieved passages under each answer")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}
	if err := checkLLM(); err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("chat requires an interactive terminal; use 'docchat ask' for scripted queries")
	}

	// Panic recovery keeps the terminal usable and shows the trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat UI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	session, err := chatService.NewSession(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("opening session: %w", err)
	}

	model := tui.New(cmd.Context(), chatService, session, chatShowContext)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat UI error: %w", err)
	}

	return nil
}
