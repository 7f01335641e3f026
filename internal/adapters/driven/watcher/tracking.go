package watcher

import (
	"context"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driving"
	"github.com/docchat-labs/docchat-cli/internal/logger"
)

// Ensure the decorators implement the driving ports.
var (
	_ driving.Indexer          = (*TrackingIndexer)(nil)
	_ driving.RetrievalService = (*TrackingRetrieval)(nil)
)

// TrackingIndexer wraps an indexer so every document it indexes is
// watched for changes.
type TrackingIndexer struct {
	inner   driving.Indexer
	watcher *Watcher
}

// WrapIndexer decorates the indexer with change tracking.
func WrapIndexer(inner driving.Indexer, w *Watcher) *TrackingIndexer {
	return &TrackingIndexer{inner: inner, watcher: w}
}

func (t *TrackingIndexer) Index(ctx context.Context, docPath string) (int, error) {
	n, err := t.inner.Index(ctx, docPath)
	if err == nil {
		t.watch(docPath)
	}
	return n, err
}

func (t *TrackingIndexer) Invalidate(docName string) {
	t.inner.Invalidate(docName)
}

func (t *TrackingIndexer) watch(docPath string) {
	if err := t.watcher.Watch(docPath); err != nil {
		logger.Warn("Watching %q failed: %v", docPath, err)
	}
}

// TrackingRetrieval wraps a retrieval service so every document
// queried is watched for changes.
type TrackingRetrieval struct {
	inner   driving.RetrievalService
	watcher *Watcher
}

// WrapRetrieval decorates the retrieval service with change tracking.
func WrapRetrieval(inner driving.RetrievalService, w *Watcher) *TrackingRetrieval {
	return &TrackingRetrieval{inner: inner, watcher: w}
}

func (t *TrackingRetrieval) Search(
	ctx context.Context, docPath, query string, k int,
) ([]domain.RetrievedChunk, error) {
	if err := t.watcher.Watch(docPath); err != nil {
		logger.Warn("Watching %q failed: %v", docPath, err)
	}
	return t.inner.Search(ctx, docPath, query, k)
}
