package driving

import (
	"context"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
)

// RetrievalService exposes the caller-facing retrieval API: open a
// retrieval handle for a document, then run similarity queries
// against it.
type RetrievalService interface {
	// Search returns the k most similar passages for the query,
	// most similar first. k defaults to 3 when non-positive and is
	// clamped to the number of chunks.
	Search(ctx context.Context, docPath, query string, k int) ([]domain.RetrievedChunk, error)
}

// Indexer builds or refreshes the persisted artifacts for a document.
type Indexer interface {
	// Index ensures the artifact pair for the document exists and is
	// consistent, rebuilding if needed. Returns the chunk count.
	Index(ctx context.Context, docPath string) (int, error)

	// Invalidate drops any cached retrieval state for the document
	// name, forcing the next open to reload or rebuild.
	Invalidate(docName string)
}
