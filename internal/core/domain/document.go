package domain

import (
	"path/filepath"
	"strings"
)

// Document represents a source document to chat with.
// It is logically immutable once chunked; re-indexing the same
// name replaces its artifacts wholesale.
type Document struct {
	// Name is the stable identifier derived from the original
	// filename with its extension stripped.
	Name string

	// Path is the location of the document on disk.
	Path string
}

// NewDocument builds a Document for the given path, deriving the
// name stem used to key persisted artifacts.
func NewDocument(path string) Document {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return Document{Name: name, Path: path}
}

// Chunk represents a contiguous span of normalized text extracted
// from a Document. Chunks are produced in document order; Ordinal is
// the only ordering ever assumed.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentName links the chunk to its source document.
	DocumentName string

	// Text is the chunk content.
	Text string

	// Ordinal is the 0-based position within the document. It defines
	// the retrieval tie-break and makes results reproducible.
	Ordinal int
}

// RetrievedChunk is a chunk returned by similarity search.
type RetrievedChunk struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Score is the inner-product similarity against the query
	// (cosine similarity, since all vectors are L2-normalized).
	Score float64
}
