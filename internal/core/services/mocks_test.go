package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService with a
// deterministic keyword embedding so ranking is predictable.
type mockEmbeddingService struct {
	embedErr   error
	embedCalls int
	batchCalls int
}

// vectorFor maps text to a fixed 3-dimensional direction. Texts that
// mention the same keyword point the same way.
func (m *mockEmbeddingService) vectorFor(text string) []float32 {
	t := strings.ToLower(text)
	v := []float32{0.1, 0, 0}
	if strings.Contains(t, "sky") {
		v[1] = 1
	}
	if strings.Contains(t, "grass") {
		v[2] = 1
	}
	return v
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.embedCalls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vectorFor(text), nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.batchCalls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	result := make([][]float32, len(texts))
	for i, text := range texts {
		result[i] = m.vectorFor(text)
	}
	return result, nil
}

func (m *mockEmbeddingService) Dimensions() int { return 3 }

func (m *mockEmbeddingService) ModelName() string { return "mock-embed" }

func (m *mockEmbeddingService) Close() error { return nil }

// mockLLMService implements driven.LLMService, recording the messages
// it was asked to complete.
type mockLLMService struct {
	reply    string
	chatErr  error
	messages []driven.ChatMessage
}

func (m *mockLLMService) Chat(
	_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions,
) (string, error) {
	m.messages = messages
	if m.chatErr != nil {
		return "", m.chatErr
	}
	return m.reply, nil
}

func (m *mockLLMService) ModelName() string { return "mock-llm" }

func (m *mockLLMService) Ping(_ context.Context) error { return nil }

func (m *mockLLMService) Close() error { return nil }

// mockTranscriptStore is an in-memory driven.TranscriptStore.
type mockTranscriptStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	turns    map[string][]domain.Turn
	next     int
}

func newMockTranscriptStore() *mockTranscriptStore {
	return &mockTranscriptStore{
		sessions: make(map[string]*domain.Session),
		turns:    make(map[string][]domain.Turn),
	}
}

func (m *mockTranscriptStore) CreateSession(_ context.Context, doc domain.Document) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.next++
	session := &domain.Session{
		ID:           fmt.Sprintf("session-%d", m.next),
		DocumentName: doc.Name,
		DocumentPath: doc.Path,
	}
	m.sessions[session.ID] = session
	return session, nil
}

func (m *mockTranscriptStore) GetSession(_ context.Context, sessionID string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return session, nil
}

func (m *mockTranscriptStore) AppendTurn(_ context.Context, sessionID string, turn domain.Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.turns[sessionID] = append(m.turns[sessionID], turn)
	return nil
}

func (m *mockTranscriptStore) History(_ context.Context, sessionID string) ([]domain.Turn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]domain.Turn(nil), m.turns[sessionID]...), nil
}

func (m *mockTranscriptStore) ListSessions(_ context.Context) ([]domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessions := make([]domain.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, *s)
	}
	return sessions, nil
}

func (m *mockTranscriptStore) DeleteSessions(_ context.Context, docName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.sessions {
		if docName == "" || s.DocumentName == docName {
			delete(m.sessions, id)
			delete(m.turns, id)
		}
	}
	return nil
}

func (m *mockTranscriptStore) Close() error { return nil }
