package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for docchat resources.
	uriScheme = "docchat://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing stored sessions.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sessions",
		Name:        "sessions",
		Description: "List of stored chat sessions",
		MIMEType:    "application/json",
	}, s.handleSessionsResource)

	// Template for a session transcript.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sessions/{sessionId}/transcript",
		Name:        "session-transcript",
		Description: "Transcript of a specific chat session, oldest turn first",
		MIMEType:    "application/json",
	}, s.handleTranscriptResource)
}

// handleSessionsResource returns the stored sessions.
func (s *Server) handleSessionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Sessions == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	sessions, err := s.ports.Sessions.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	type sessionInfo struct {
		ID        string    `json:"id"`
		Document  string    `json:"document"`
		Path      string    `json:"path"`
		CreatedAt time.Time `json:"created_at"`
	}

	infos := make([]sessionInfo, len(sessions))
	for i, session := range sessions {
		infos[i] = sessionInfo{
			ID:        session.ID,
			Document:  session.DocumentName,
			Path:      session.DocumentPath,
			CreatedAt: session.CreatedAt,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sessions: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleTranscriptResource returns the transcript of one session.
func (s *Server) handleTranscriptResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Chat == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	sessionID := extractSessionID(req.Params.URI)
	if sessionID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	turns, err := s.ports.Chat.History(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading transcript: %w", err)
	}

	type turnInfo struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	infos := make([]turnInfo, len(turns))
	for i, turn := range turns {
		infos[i] = turnInfo{
			Role:    string(turn.Role),
			Content: turn.Content,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling transcript: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSessionID extracts the session ID from a URI like
// docchat://sessions/{sessionId}/transcript.
func extractSessionID(uri string) string {
	const prefix = uriScheme + "sessions/"
	const suffix = "/transcript"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
