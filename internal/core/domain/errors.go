package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
//
// The retrieval path prefers graceful degradation over raising:
// a missing document, corrupt artifacts, or an empty index all
// degrade to an empty-but-valid state. Only unrecoverable
// configuration errors are fatal.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingAPIKey indicates the LLM backend credential is not
	// configured. This is the one hard failure in the design: no
	// answer can be produced without it, so the interaction must
	// stop before any retrieval work is attempted.
	ErrMissingAPIKey = errors.New("missing LLM API key")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Nothing can be indexed or retrieved without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrDimensionMismatch indicates a vector does not match the
	// index dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrCorruptArtifact indicates a persisted artifact failed to
	// deserialize or validate. Callers fall back to a full rebuild
	// rather than surfacing it.
	ErrCorruptArtifact = errors.New("corrupt persisted artifact")
)
