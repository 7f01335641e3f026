package driven

import (
	"context"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
)

// TranscriptStore persists chat sessions and their turns. The
// retrieval core never reads from it; it exists so the caller-facing
// surfaces can resume and export conversations.
type TranscriptStore interface {
	// CreateSession starts a new session for the document.
	CreateSession(ctx context.Context, doc domain.Document) (*domain.Session, error)

	// GetSession retrieves a session by ID. Returns
	// domain.ErrNotFound if it does not exist.
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)

	// AppendTurn appends a turn to the session transcript.
	AppendTurn(ctx context.Context, sessionID string, turn domain.Turn) error

	// History returns the session's turns, oldest first.
	History(ctx context.Context, sessionID string) ([]domain.Turn, error)

	// ListSessions returns all sessions, newest first.
	ListSessions(ctx context.Context) ([]domain.Session, error)

	// DeleteSessions removes all sessions for the document name,
	// or every session when docName is empty.
	DeleteSessions(ctx context.Context, docName string) error

	// Close releases resources.
	Close() error
}
