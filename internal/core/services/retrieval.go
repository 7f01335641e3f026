package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driven"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driving"
	"github.com/docchat-labs/docchat-cli/internal/logger"
)

// Ensure Retriever implements the interface.
var _ driving.RetrievalService = (*Retriever)(nil)

// DefaultTopK is the number of passages returned when the caller does
// not ask for a specific k.
const DefaultTopK = 3

// Retriever answers similarity queries against a document's index.
type Retriever struct {
	index    *IndexService
	embedder driven.EmbeddingService
	topK     int
}

// NewRetriever creates a retriever. topK is the default result count
// for non-positive k; non-positive topK falls back to DefaultTopK.
func NewRetriever(index *IndexService, embedder driven.EmbeddingService, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{
		index:    index,
		embedder: embedder,
		topK:     topK,
	}
}

// Search returns the k most similar passages for the query, most
// similar first. An empty query, an empty document, or an empty index
// yields no results and no embedding call.
func (s *Retriever) Search(
	ctx context.Context, docPath, query string, k int,
) ([]domain.RetrievedChunk, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.RetrievedChunk{}, nil
	}

	handle, err := s.index.Open(ctx, docPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", docPath, err)
	}

	if handle.Empty() {
		logger.Debug("Nothing indexed for %q, returning no results", handle.Document.Name)
		return []domain.RetrievedChunk{}, nil
	}

	if k <= 0 {
		k = s.topK
	}
	if k > handle.Index.Count() {
		k = handle.Index.Count()
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w: %v", domain.ErrEmbeddingUnavailable, err)
	}
	vector = l2Normalize(vector)

	hits, err := handle.Index.Search(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", handle.Document.Name, err)
	}

	results := resolveHits(hits, handle.Chunks, handle.Document.Name)

	logger.Debug("Query %q: %d results", query, len(results))
	return results, nil
}

// resolveHits maps index hits back to their chunks. Ordinals outside
// the chunk range indicate a stale or damaged index; each such hit is
// dropped individually rather than failing the query.
func resolveHits(
	hits []driven.VectorHit, chunks []domain.Chunk, docName string,
) []domain.RetrievedChunk {
	results := make([]domain.RetrievedChunk, 0, len(hits))
	for _, hit := range hits {
		if hit.Ordinal < 0 || hit.Ordinal >= len(chunks) {
			logger.Warn("Dropping hit with out-of-range ordinal %d for %q",
				hit.Ordinal, docName)
			continue
		}
		results = append(results, domain.RetrievedChunk{
			Chunk: chunks[hit.Ordinal],
			Score: hit.Similarity,
		})
	}
	return results
}
