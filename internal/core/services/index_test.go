package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docchat-labs/docchat-cli/internal/adapters/driven/index/flat"
	"github.com/docchat-labs/docchat-cli/internal/normalisers/plaintext"
	"github.com/docchat-labs/docchat-cli/internal/postprocessors/chunker"
)

// newTestIndexService builds an index service over real splitting and
// storage with a deterministic embedder.
func newTestIndexService(t *testing.T, dir string, embedder *mockEmbeddingService) (*IndexService, *flat.Store) {
	t.Helper()

	store, err := flat.NewStore(filepath.Join(dir, "vectors"))
	require.NoError(t, err)

	split := chunker.New(chunker.WithChunkSize(20), chunker.WithOverlap(0))
	svc := NewIndexService(nil, plaintext.New(), split, embedder, store)
	return svc, store
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestIndexBuildsAndPersists(t *testing.T) {
	dir := t.TempDir()
	embedder := &mockEmbeddingService{}
	svc, store := newTestIndexService(t, dir, embedder)

	path := writeDoc(t, dir, "colors.txt", "The sky is blue.\n\nThe grass is green.")

	count, err := svc.Index(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 1, embedder.batchCalls)
	assert.True(t, store.Exists("colors"))
}

func TestIndexLoadsPersistedArtifacts(t *testing.T) {
	dir := t.TempDir()
	first := &mockEmbeddingService{}
	svc, _ := newTestIndexService(t, dir, first)

	path := writeDoc(t, dir, "colors.txt", "The sky is blue.\n\nThe grass is green.")

	_, err := svc.Index(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, first.batchCalls)

	// A fresh service with an empty cache must load from disk
	// without embedding anything.
	second := &mockEmbeddingService{}
	reopened, _ := newTestIndexService(t, dir, second)

	count, err := reopened.Index(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 0, second.batchCalls)
}

func TestIndexMissingDocument(t *testing.T) {
	dir := t.TempDir()
	embedder := &mockEmbeddingService{}
	svc, store := newTestIndexService(t, dir, embedder)

	count, err := svc.Index(context.Background(), filepath.Join(dir, "missing.txt"))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 0, embedder.batchCalls)
	assert.False(t, store.Exists("missing"))
}

func TestIndexEmptyDocument(t *testing.T) {
	dir := t.TempDir()
	embedder := &mockEmbeddingService{}
	svc, store := newTestIndexService(t, dir, embedder)

	path := writeDoc(t, dir, "blank.txt", "   \n\n  ")

	count, err := svc.Index(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 0, embedder.batchCalls)
	assert.False(t, store.Exists("blank"))
}

func TestIndexCorruptArtifactsRebuild(t *testing.T) {
	dir := t.TempDir()
	embedder := &mockEmbeddingService{}
	svc, store := newTestIndexService(t, dir, embedder)

	path := writeDoc(t, dir, "colors.txt", "The sky is blue.\n\nThe grass is green.")

	_, err := svc.Index(context.Background(), path)
	require.NoError(t, err)

	// Truncate one half of the artifact pair.
	idxPath := filepath.Join(dir, "vectors", "colors_index.idx")
	require.NoError(t, os.WriteFile(idxPath, []byte("junk"), 0600))

	rebuilt := &mockEmbeddingService{}
	reopened, _ := newTestIndexService(t, dir, rebuilt)

	count, err := reopened.Index(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 1, rebuilt.batchCalls)
	assert.True(t, store.Exists("colors"))
}

func TestIndexChunkCountMismatchRebuilds(t *testing.T) {
	dir := t.TempDir()
	embedder := &mockEmbeddingService{}
	svc, _ := newTestIndexService(t, dir, embedder)

	path := writeDoc(t, dir, "colors.txt", "The sky is blue.\n\nThe grass is green.")

	_, err := svc.Index(context.Background(), path)
	require.NoError(t, err)

	// Grow the document, then drop the cached handle.
	writeDoc(t, dir, "colors.txt", "The sky is blue.\n\nThe grass is green.\n\nThe sun is bright.")
	svc.Invalidate("colors")

	count, err := svc.Index(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 2, embedder.batchCalls)
}

func TestInvalidateUnknownDocument(t *testing.T) {
	dir := t.TempDir()
	svc, _ := newTestIndexService(t, dir, &mockEmbeddingService{})

	// No cached entry, must be a no-op.
	svc.Invalidate("nothing")
}
