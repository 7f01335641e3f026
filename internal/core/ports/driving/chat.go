package driving

import (
	"context"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
)

// ChatService answers questions about a document, conditioning the
// LLM on retrieved passages and the conversation so far.
type ChatService interface {
	// NewSession opens (or builds) the retrieval state for the
	// document and starts a conversation against it.
	NewSession(ctx context.Context, docPath string) (*domain.Session, error)

	// Ask answers one question within a session. The question and
	// the answer are appended to the session transcript.
	Ask(ctx context.Context, session *domain.Session, question string) (*domain.Answer, error)

	// History returns the session transcript, oldest first.
	History(ctx context.Context, sessionID string) ([]domain.Turn, error)
}

// SessionAdmin manages stored conversations.
type SessionAdmin interface {
	// ListSessions returns all stored sessions, newest first.
	ListSessions(ctx context.Context) ([]domain.Session, error)

	// ClearSessions removes sessions for a document name, or all
	// sessions when the name is empty.
	ClearSessions(ctx context.Context, docName string) error
}
