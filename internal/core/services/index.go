package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driven"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driving"
	"github.com/docchat-labs/docchat-cli/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.Indexer = (*IndexService)(nil)

// Handle is the in-memory retrieval state for one document: the
// chunks in document order and the index whose ordinals refer into
// them. len(Chunks) always equals Index.Count().
type Handle struct {
	Document domain.Document
	Chunks   []domain.Chunk
	Index    driven.VectorIndex
}

// Empty reports whether the handle has nothing to search.
func (h *Handle) Empty() bool {
	return len(h.Chunks) == 0 || h.Index == nil || h.Index.Count() == 0
}

// IndexService turns a document path into a searchable Handle. Handles
// are cached per document name; persisted artifacts are loaded when
// they agree with the current chunking and rebuilt otherwise.
type IndexService struct {
	mu          sync.Mutex
	normalisers []driven.Normaliser
	fallback    driven.Normaliser
	chunker     driven.Chunker
	embedder    driven.EmbeddingService
	store       driven.VectorIndexStore
	cache       map[string]*Handle
}

// NewIndexService creates a new index service. The fallback normaliser
// handles extensions no registered normaliser claims.
func NewIndexService(
	normalisers []driven.Normaliser,
	fallback driven.Normaliser,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	store driven.VectorIndexStore,
) *IndexService {
	return &IndexService{
		normalisers: normalisers,
		fallback:    fallback,
		chunker:     chunker,
		embedder:    embedder,
		store:       store,
		cache:       make(map[string]*Handle),
	}
}

// Index ensures the artifact pair for the document exists and is
// consistent, rebuilding if needed. Returns the chunk count.
func (s *IndexService) Index(ctx context.Context, docPath string) (int, error) {
	handle, err := s.Open(ctx, docPath)
	if err != nil {
		return 0, err
	}
	return len(handle.Chunks), nil
}

// Invalidate drops any cached handle for the document name. The next
// Open reloads or rebuilds.
func (s *IndexService) Invalidate(docName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cache[docName]; ok {
		logger.Debug("Invalidating cached handle for %q", docName)
		delete(s.cache, docName)
	}
}

// Open returns the retrieval handle for the document path, building it
// on first use. A missing or empty document yields an empty handle,
// not an error.
func (s *IndexService) Open(ctx context.Context, docPath string) (*Handle, error) {
	doc := domain.NewDocument(docPath)

	s.mu.Lock()
	defer s.mu.Unlock()

	if handle, ok := s.cache[doc.Name]; ok {
		return handle, nil
	}

	handle, err := s.build(ctx, doc)
	if err != nil {
		return nil, err
	}

	s.cache[doc.Name] = handle
	return handle, nil
}

// build normalises, chunks, and indexes the document.
func (s *IndexService) build(ctx context.Context, doc domain.Document) (*Handle, error) {
	logger.Section("Indexing " + doc.Name)

	content, err := s.normalise(ctx, doc.Path)
	if err != nil {
		return nil, err
	}

	chunks, err := s.chunker.Chunk(ctx, doc, content)
	if err != nil {
		return nil, fmt.Errorf("chunking %s: %w", doc.Name, err)
	}
	logger.Debug("Document %q: %d chunks", doc.Name, len(chunks))

	if len(chunks) == 0 {
		// Nothing to index and nothing worth persisting. The
		// placeholder dimension keeps the index constructible.
		return &Handle{Document: doc, Chunks: nil, Index: s.store.New(1)}, nil
	}

	index, err := s.loadOrRebuild(ctx, doc, chunks)
	if err != nil {
		return nil, err
	}

	return &Handle{Document: doc, Chunks: chunks, Index: index}, nil
}

// normalise extracts text from the document, routing by extension. A
// missing document yields empty content.
func (s *IndexService) normalise(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Document %q not found, treating as empty", path)
			return "", nil
		}
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	normaliser := s.normaliserFor(path)
	content, err := normaliser.Normalise(ctx, path)
	if err != nil {
		return "", fmt.Errorf("normalise %s: %w", path, err)
	}
	return content, nil
}

// normaliserFor selects the normaliser claiming the path's extension.
func (s *IndexService) normaliserFor(path string) driven.Normaliser {
	ext := strings.ToLower(filepath.Ext(path))
	for _, n := range s.normalisers {
		for _, supported := range n.SupportedExtensions() {
			if supported == ext {
				return n
			}
		}
	}
	return s.fallback
}

// loadOrRebuild returns a persisted index when it matches the chunks,
// otherwise embeds the chunks and builds a fresh one.
func (s *IndexService) loadOrRebuild(
	ctx context.Context, doc domain.Document, chunks []domain.Chunk,
) (driven.VectorIndex, error) {
	index, err := s.store.Load(ctx, doc.Name)
	if err == nil {
		if index.Count() == len(chunks) {
			logger.Debug("Loaded persisted index for %q (%d vectors)", doc.Name, index.Count())
			return index, nil
		}
		logger.Warn("Persisted index for %q has %d vectors, expected %d, rebuilding",
			doc.Name, index.Count(), len(chunks))
	} else {
		// Missing and corrupt artifacts both fall through to a
		// rebuild. The distinction only matters for logging.
		logger.Debug("No usable artifacts for %q: %v", doc.Name, err)
	}

	return s.rebuild(ctx, doc, chunks)
}

// rebuild embeds the chunks, builds the index, and persists the
// artifact pair. Persistence failures are logged, not fatal.
func (s *IndexService) rebuild(
	ctx context.Context, doc domain.Document, chunks []domain.Chunk,
) (driven.VectorIndex, error) {
	logger.Info("Building index for %q (%d chunks, model %s)",
		doc.Name, len(chunks), s.embedder.ModelName())

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding %s: %w: %v", doc.Name, domain.ErrEmbeddingUnavailable, err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedding %s: got %d vectors for %d chunks",
			doc.Name, len(vectors), len(chunks))
	}

	vectors = l2NormalizeAll(vectors)

	index := s.store.New(len(vectors[0]))
	if err := index.Add(ctx, vectors); err != nil {
		return nil, fmt.Errorf("building index for %s: %w", doc.Name, err)
	}

	if err := s.store.Save(ctx, doc.Name, index); err != nil {
		logger.Warn("Persisting artifacts for %q failed: %v", doc.Name, err)
	}

	return index, nil
}
