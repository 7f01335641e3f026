package driven

import "context"

// LLMService is the opaque text-completion collaborator. The core
// hands it an ordered message sequence and receives back a single
// literal text answer. No streaming, no function calling, no
// structured output.
//
// Implementations may include:
//   - Groq (llama3 family, OpenAI-compatible API)
//   - OpenAI (GPT-4o family)
//   - Any OpenAI-compatible inference server
type LLMService interface {
	// Chat conducts a multi-turn conversation and returns the
	// assistant's reply.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight
	// request. Run as a pre-flight so bad credentials fail before
	// any indexing work.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// Message roles understood by the LLM collaborator.
const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}
