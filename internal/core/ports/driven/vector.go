package driven

import "context"

// VectorIndex provides similarity search over a fixed set of
// embeddings. Vectors are stored in insertion order; search results
// refer back to chunks by that ordinal position.
//
// Indexes are built once and never mutated afterwards, so concurrent
// reads against a loaded index are safe.
type VectorIndex interface {
	// Add appends vectors to the index in order. Every vector must
	// match the index dimension.
	Add(ctx context.Context, vectors [][]float32) error

	// Search finds the k nearest neighbours to the query vector
	// under inner-product similarity. The search is exact: for a
	// fixed index and query the results and their order are stable.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Count returns the number of vectors in the index.
	Count() int

	// Dimension returns the vector dimension.
	Dimension() int
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// Ordinal is the insertion position of the matched vector,
	// which is also the chunk ordinal.
	Ordinal int

	// Similarity is the inner-product score against the query
	// (cosine similarity when both sides are L2-normalized).
	Similarity float64
}

// VectorIndexStore owns the persisted artifact pair for a document
// name: the normalized embedding matrix and the serialized index.
// The pair is written only on a successful build and replaced
// atomically; it is never partially updated.
type VectorIndexStore interface {
	// New creates an empty index with the given dimension.
	New(dimension int) VectorIndex

	// Load reads and validates the artifact pair for the document
	// name. Any failure (missing file, deserialization error,
	// internal disagreement between the pair) returns an error; the
	// caller falls back to a full rebuild.
	Load(ctx context.Context, docName string) (VectorIndex, error)

	// Save persists the artifact pair for the document name. Either
	// both files are replaced or neither is; a failed write leaves a
	// previously valid pair intact.
	Save(ctx context.Context, docName string, index VectorIndex) error
}
