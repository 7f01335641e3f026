package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage stored chat sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions, newest first",
	RunE:  runSessionsList,
}

var sessionsClearCmd = &cobra.Command{
	Use:   "clear [document]",
	Short: "Delete sessions for a document, or all sessions",
	Long: `Deletes stored sessions and their transcripts. With a document
name only that document's sessions are removed; without arguments
every session is removed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSessionsClear,
}

func init() {
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsClearCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func runSessionsList(cmd *cobra.Command, _ []string) error {
	if sessionAdmin == nil {
		return errors.New("session store not configured")
	}

	sessions, err := sessionAdmin.ListSessions(cmd.Context())
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		cmd.Println("No stored sessions.")
		return nil
	}

	for _, session := range sessions {
		cmd.Printf("%s  %s  %s\n",
			session.ID, session.CreatedAt.Format("2006-01-02 15:04"), session.DocumentName)
	}
	return nil
}

func runSessionsClear(cmd *cobra.Command, args []string) error {
	if sessionAdmin == nil {
		return errors.New("session store not configured")
	}

	docName := ""
	if len(args) > 0 {
		docName = args[0]
	}

	if err := sessionAdmin.ClearSessions(cmd.Context(), docName); err != nil {
		return err
	}

	if docName == "" {
		cmd.Println("Cleared all sessions.")
	} else {
		cmd.Printf("Cleared sessions for %s.\n", docName)
	}
	return nil
}
