// Package domain defines the core business entities for Docchat.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A source document identified by its name stem
//   - Chunk: A bounded text segment carrying its position in the source
//   - Turn: A single conversation message with an explicit role tag
//   - RetrievedChunk: A chunk returned by similarity search with its score
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
