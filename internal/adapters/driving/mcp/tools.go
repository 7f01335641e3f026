package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Document string `json:"document" jsonschema:"path to the document to search"`
	Query    string `json:"query" jsonschema:"the query to find relevant passages"`
	K        int    `json:"k,omitempty" jsonschema:"maximum number of passages to return (default 3)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single retrieved passage.
type SearchResultOutput struct {
	Document string  `json:"document"`
	Ordinal  int     `json:"ordinal"`
	Score    float64 `json:"score"`
	Text     string  `json:"text"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Document  string `json:"document" jsonschema:"path to the document to chat with"`
	Question  string `json:"question" jsonschema:"the question to answer"`
	SessionID string `json:"session_id,omitempty" jsonschema:"session to continue; omit to start a new one"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer    string   `json:"answer"`
	SessionID string   `json:"session_id"`
	Contexts  []string `json:"contexts,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Find the passages of a document most similar to a query",
	}, s.handleSearch)

	if s.ports.Chat != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ask",
			Description: "Ask a question about a document and get a grounded answer",
		}, s.handleAsk)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	results, err := s.ports.Retrieval.Search(ctx, input.Document, input.Query, input.K)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			Document: results[i].Chunk.DocumentName,
			Ordinal:  results[i].Chunk.Ordinal,
			Score:    results[i].Score,
			Text:     results[i].Chunk.Text,
		}
	}

	return nil, output, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	session, err := s.session(ctx, input.SessionID, input.Document)
	if err != nil {
		return nil, AskOutput{}, err
	}

	answer, err := s.ports.Chat.Ask(ctx, session, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:    answer.Text,
		SessionID: session.ID,
		Contexts:  answer.Contexts,
	}, nil
}
