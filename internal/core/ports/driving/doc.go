// Package driving provides interfaces exposed by the application core
// to external actors (primary/inbound ports). The CLI, chat TUI, and
// MCP server drive the core exclusively through these interfaces.
package driving
