// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants search a local document and ask questions
// about it over stdio or HTTP.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")
