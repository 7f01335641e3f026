package cli

import (
	"context"
	"fmt"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
)

// mockRetrieval is a stub driving.RetrievalService.
type mockRetrieval struct {
	results []domain.RetrievedChunk
	err     error
}

func (m *mockRetrieval) Search(
	_ context.Context, _, _ string, _ int,
) ([]domain.RetrievedChunk, error) {
	return m.results, m.err
}

// mockIndexer is a stub driving.Indexer.
type mockIndexer struct {
	count int
	err   error
}

func (m *mockIndexer) Index(_ context.Context, _ string) (int, error) {
	return m.count, m.err
}

func (m *mockIndexer) Invalidate(_ string) {}

// mockChat is a stub driving.ChatService.
type mockChat struct {
	answer   *domain.Answer
	err      error
	sessions int
}

func (m *mockChat) NewSession(_ context.Context, docPath string) (*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.sessions++
	return &domain.Session{
		ID:           fmt.Sprintf("session-%d", m.sessions),
		DocumentName: docPath,
		DocumentPath: docPath,
	}, nil
}

func (m *mockChat) Ask(_ context.Context, _ *domain.Session, _ string) (*domain.Answer, error) {
	return m.answer, m.err
}

func (m *mockChat) History(_ context.Context, _ string) ([]domain.Turn, error) {
	return nil, m.err
}

// mockAdmin is a stub driving.SessionAdmin.
type mockAdmin struct {
	sessions []domain.Session
	cleared  []string
	err      error
}

func (m *mockAdmin) ListSessions(_ context.Context) ([]domain.Session, error) {
	return m.sessions, m.err
}

func (m *mockAdmin) ClearSessions(_ context.Context, docName string) error {
	m.cleared = append(m.cleared, docName)
	return m.err
}

// setupTestServices installs mock services and returns a cleanup
// function restoring the previous state.
func setupTestServices() func() {
	prevRetrieval := retrievalService
	prevIndexer := indexerService
	prevChat := chatService
	prevAdmin := sessionAdmin
	prevCheck := llmCheck

	retrievalService = &mockRetrieval{
		results: []domain.RetrievedChunk{
			{
				Chunk: domain.Chunk{DocumentName: "report", Text: "The sky is blue.", Ordinal: 0},
				Score: 0.9,
			},
		},
	}
	indexerService = &mockIndexer{count: 2}
	chatService = &mockChat{answer: &domain.Answer{Text: "It is blue.", Contexts: []string{"The sky is blue."}}}
	sessionAdmin = &mockAdmin{}
	llmCheck = nil

	return func() {
		retrievalService = prevRetrieval
		indexerService = prevIndexer
		chatService = prevChat
		sessionAdmin = prevAdmin
		llmCheck = prevCheck
	}
}
