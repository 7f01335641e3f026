package driven

import (
	"context"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
)

// Chunker splits normalised document text into ordered chunks
// suitable for embedding. Empty content produces no chunks and no
// error.
type Chunker interface {
	// Name returns the chunker name for logging and configuration.
	Name() string

	// Chunk splits the content into ordered chunks. Chunks carry
	// 0-based ordinals in document order.
	Chunk(ctx context.Context, doc domain.Document, content string) ([]domain.Chunk, error)
}
