// Package cli wires the cobra command tree for docchat.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/docchat-labs/docchat-cli/internal/core/ports/driving"
	"github.com/docchat-labs/docchat-cli/internal/logger"
)

var (
	version = "dev"
	verbose bool
)

// Injected driving ports. The composition root sets these before
// Execute runs.
var (
	retrievalService driving.RetrievalService
	indexerService   driving.Indexer
	chatService      driving.ChatService
	sessionAdmin     driving.SessionAdmin
	llmCheck         func() error
)

var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "Chat with your documents from the terminal",
	Long: `docchat answers questions about a local document.

The document is split into overlapping chunks, embedded, and indexed
on first use; the index is persisted and reused on later runs. Answers
come from a chat model conditioned on the most similar passages.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Services bundles the driving ports the CLI needs.
type Services struct {
	Retrieval driving.RetrievalService
	Indexer   driving.Indexer
	Chat      driving.ChatService
	Sessions  driving.SessionAdmin

	// LLMCheck is an optional pre-flight run before commands that
	// need the chat model, so bad credentials fail before any
	// indexing work.
	LLMCheck func() error
}

// SetServices injects the driving ports.
func SetServices(s Services) {
	retrievalService = s.Retrieval
	indexerService = s.Indexer
	chatService = s.Chat
	sessionAdmin = s.Sessions
	llmCheck = s.LLMCheck
}

// checkLLM runs the chat-model pre-flight when one is configured.
func checkLLM() error {
	if llmCheck == nil {
		return nil
	}
	return llmCheck()
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
