package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driven"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driving"
	"github.com/docchat-labs/docchat-cli/internal/logger"
)

// Ensure ChatService implements the interfaces.
var (
	_ driving.ChatService  = (*ChatService)(nil)
	_ driving.SessionAdmin = (*ChatService)(nil)
)

// ChatService answers questions about a document by conditioning the
// chat model on retrieved passages and the session transcript.
type ChatService struct {
	retriever    driving.RetrievalService
	llm          driven.LLMService
	transcripts  driven.TranscriptStore
	prompts      driven.PromptStore
	topK         int
	historyLimit int
}

// ChatServiceOption customises a ChatService.
type ChatServiceOption func(*ChatService)

// WithPromptStore sources the system prompt from a prompt store
// instead of the built-in default.
func WithPromptStore(prompts driven.PromptStore) ChatServiceOption {
	return func(s *ChatService) {
		s.prompts = prompts
	}
}

// NewChatService creates a chat service. llm may be nil when no API
// key is configured; Ask then fails fast with domain.ErrMissingAPIKey.
func NewChatService(
	retriever driving.RetrievalService,
	llm driven.LLMService,
	transcripts driven.TranscriptStore,
	topK int,
	historyLimit int,
	opts ...ChatServiceOption,
) *ChatService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	s := &ChatService{
		retriever:    retriever,
		llm:          llm,
		transcripts:  transcripts,
		topK:         topK,
		historyLimit: historyLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSession starts a conversation against the document.
func (s *ChatService) NewSession(ctx context.Context, docPath string) (*domain.Session, error) {
	doc := domain.NewDocument(docPath)

	session, err := s.transcripts.CreateSession(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	logger.Debug("Session %s opened for %q", session.ID, doc.Name)
	return session, nil
}

// Ask answers one question within a session. The missing-credentials
// check runs before any retrieval work so a misconfigured model fails
// fast instead of after an index build.
func (s *ChatService) Ask(
	ctx context.Context, session *domain.Session, question string,
) (*domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("ask: %w: empty question", domain.ErrInvalidInput)
	}

	if s.llm == nil {
		return nil, domain.ErrMissingAPIKey
	}

	retrieved, err := s.retriever.Search(ctx, session.DocumentPath, question, s.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}

	contexts := make([]string, len(retrieved))
	for i, rc := range retrieved {
		contexts[i] = rc.Chunk.Text
	}

	history, err := s.transcripts.History(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	messages := BuildPrompt(s.systemPrompt(), history, contexts, question, s.historyLimit)
	logger.Debug("Prompt: %d messages, %d context passages", len(messages), len(contexts))

	reply, err := s.llm.Chat(ctx, messages, driven.ChatOptions{})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w: %v", domain.ErrLLMUnavailable, err)
	}

	// Transcript failures must not lose the answer we already have.
	if err := s.transcripts.AppendTurn(ctx, session.ID, domain.Turn{
		Role: domain.RoleUser, Content: question,
	}); err != nil {
		logger.Warn("Recording question failed: %v", err)
	} else if err := s.transcripts.AppendTurn(ctx, session.ID, domain.Turn{
		Role: domain.RoleAssistant, Content: reply,
	}); err != nil {
		logger.Warn("Recording answer failed: %v", err)
	}

	return &domain.Answer{Text: reply, Contexts: contexts}, nil
}

// systemPrompt resolves the system prompt, preferring the prompt
// store when one is configured. Store failures fall back to the
// default rather than blocking the answer.
func (s *ChatService) systemPrompt() string {
	if s.prompts == nil {
		return DefaultSystemPrompt
	}
	prompt, err := s.prompts.Load(driven.PromptChatSystem)
	if err != nil || prompt == "" {
		if err != nil {
			logger.Warn("Loading system prompt failed: %v", err)
		}
		return DefaultSystemPrompt
	}
	return prompt
}

// History returns the session transcript, oldest first.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]domain.Turn, error) {
	return s.transcripts.History(ctx, sessionID)
}

// ListSessions returns all stored sessions, newest first.
func (s *ChatService) ListSessions(ctx context.Context) ([]domain.Session, error) {
	return s.transcripts.ListSessions(ctx)
}

// ClearSessions removes sessions for a document name, or all sessions
// when the name is empty.
func (s *ChatService) ClearSessions(ctx context.Context, docName string) error {
	return s.transcripts.DeleteSessions(ctx, docName)
}
