package mcp

import (
	"context"
	"fmt"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	results []domain.RetrievedChunk
	err     error
}

func (m *mockRetrievalService) Search(
	_ context.Context, _, _ string, _ int,
) ([]domain.RetrievedChunk, error) {
	return m.results, m.err
}

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	answer   *domain.Answer
	history  []domain.Turn
	err      error
	sessions int
}

func (m *mockChatService) NewSession(_ context.Context, docPath string) (*domain.Session, error) {
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

func (m *mockChatService) Ask(
	_ context.Context, _ *domain.Session, _ string,
) (*domain.Answer, error) {
	return m.answer, m.err
}

func (m *mockChatService) History(_ context.Context, _ string) ([]domain.Turn, error) {
	return m.history, m.err
}
