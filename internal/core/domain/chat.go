package domain

import "time"

// Role tags a conversation turn as belonging to the user or the
// assistant.
type Role string

const (
	// RoleUser marks a user utterance.
	RoleUser Role = "user"

	// RoleAssistant marks an assistant utterance.
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is one of the known tags.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Turn is a single message in a conversation. The core treats the
// sequence of turns as read-only input to prompt assembly; it never
// mutates it.
type Turn struct {
	// Role tags the speaker.
	Role Role

	// Content is the literal message text.
	Content string
}

// Session identifies one conversation against one document.
type Session struct {
	// ID is the unique session identifier.
	ID string

	// DocumentName is the document the session chats with.
	DocumentName string

	// DocumentPath is the filesystem path the document was opened
	// from, kept so a resumed session can rebuild retrieval state.
	DocumentPath string

	// CreatedAt is when the session started.
	CreatedAt time.Time
}

// Answer is the result of one question handled by the chat service.
type Answer struct {
	// Text is the assistant's reply.
	Text string

	// Contexts are the retrieved passages the reply was conditioned
	// on, most similar first. Empty when nothing was retrieved.
	Contexts []string
}
