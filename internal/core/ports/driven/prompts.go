package driven

// PromptChatSystem names the system prompt that frames every
// conversation with the chat model.
const PromptChatSystem = "chat_system"

// PromptStore loads named prompt templates, typically from
// user-editable files with embedded defaults as fallback.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload discards any cached templates so the next Load reads
	// from the backing store again.
	Reload()
}
