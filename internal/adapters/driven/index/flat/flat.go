// Package flat provides an exact inner-product similarity index over
// L2-normalized vectors, with on-disk persistence of the artifact
// pair (embedding matrix + serialized index).
//
// The index is flat: every query scans all vectors. At the scale this
// system targets (one document, a few hundred to a few thousand
// chunks) exact search is both fast enough and fully deterministic,
// which approximate structures are not.
package flat

import (
	"context"
	"sort"
	"sync"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index holds vectors in insertion order and searches them
// exhaustively under inner-product similarity.
type Index struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float32
}

// New creates an empty index. A non-positive dimension is treated as
// a placeholder of 1, the canonical shape for a document with no
// content.
func New(dimension int) *Index {
	if dimension <= 0 {
		dimension = 1
	}
	return &Index{dimension: dimension}
}

// Add appends vectors to the index in order.
func (idx *Index) Add(_ context.Context, vectors [][]float32) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, v := range vectors {
		if len(v) != idx.dimension {
			return domain.ErrDimensionMismatch
		}
	}
	idx.vectors = append(idx.vectors, vectors...)
	return nil
}

// Search finds the k nearest neighbours under inner-product
// similarity. Results are ordered by score descending; equal scores
// break ties on the lower ordinal, so for a fixed index and query the
// output is stable.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(query) != idx.dimension {
		return nil, domain.ErrDimensionMismatch
	}
	if k <= 0 || len(idx.vectors) == 0 {
		return nil, nil
	}
	if k > len(idx.vectors) {
		k = len(idx.vectors)
	}

	hits := make([]driven.VectorHit, len(idx.vectors))
	for i, v := range idx.vectors {
		hits[i] = driven.VectorHit{Ordinal: i, Similarity: dot(v, query)}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		return hits[i].Ordinal < hits[j].Ordinal
	})
	return hits[:k], nil
}

// Count returns the number of vectors in the index.
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.vectors)
}

// Dimension returns the vector dimension.
func (idx *Index) Dimension() int {
	return idx.dimension
}

// snapshot returns a copy of the vector slice headers for
// serialization. Vectors themselves are never mutated after Add.
func (idx *Index) snapshot() [][]float32 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([][]float32, len(idx.vectors))
	copy(out, idx.vectors)
	return out
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
