package mcp

import (
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces the MCP server needs.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval answers similarity queries against a document.
	Retrieval driving.RetrievalService

	// Chat answers questions about a document. Optional; without it
	// the ask tool is not registered.
	Chat driving.ChatService

	// Sessions lists stored conversations. Optional.
	Sessions driving.SessionAdmin
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}
