package services

import (
	"fmt"
	"strings"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driven"
)

// DefaultSystemPrompt frames every conversation sent to the chat
// model unless a custom prompt is supplied.
const DefaultSystemPrompt = "You are a helpful assistant. " +
	"Use the provided context if it is relevant and format answers in Markdown, " +
	"avoiding decorative asterisks. " +
	"Maintain conversational context."

// BuildPrompt assembles the message sequence for one question: the
// system message, the prior turns oldest first, and a final user
// message carrying the retrieved passages and the question. An empty
// systemPrompt falls back to DefaultSystemPrompt. When historyLimit
// is positive only the most recent turns are kept; zero keeps the
// full transcript.
func BuildPrompt(
	systemPrompt string, history []domain.Turn, contexts []string,
	question string, historyLimit int,
) []driven.ChatMessage {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	if historyLimit > 0 && len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	messages := make([]driven.ChatMessage, 0, len(history)+2)
	messages = append(messages, driven.ChatMessage{
		Role:    driven.ChatRoleSystem,
		Content: systemPrompt,
	})

	for _, turn := range history {
		role := driven.ChatRoleUser
		if turn.Role == domain.RoleAssistant {
			role = driven.ChatRoleAssistant
		}
		messages = append(messages, driven.ChatMessage{
			Role:    role,
			Content: turn.Content,
		})
	}

	messages = append(messages, driven.ChatMessage{
		Role:    driven.ChatRoleUser,
		Content: questionMessage(contexts, question),
	})

	return messages
}

// questionMessage renders the final user message. Context blocks are
// numbered from 1 and omitted entirely when nothing was retrieved.
func questionMessage(contexts []string, question string) string {
	var b strings.Builder

	if len(contexts) > 0 {
		b.WriteString("Use the following context to answer the question in Markdown:\n\n")
		for i, ctx := range contexts {
			if i > 0 {
				b.WriteString("\n\n")
			}
			fmt.Fprintf(&b, "Context %d: %s", i+1, ctx)
		}
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "Question: %s\nAnswer:", question)
	return b.String()
}
