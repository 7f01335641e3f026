package driven

import "context"

// Normaliser extracts plain text from a source document on disk.
// Each normaliser handles specific file extensions (e.g., .pdf).
// Formats without a dedicated normaliser fall through to the
// plain-text reader.
type Normaliser interface {
	// SupportedExtensions returns the lowercase file extensions this
	// normaliser handles, including the leading dot.
	SupportedExtensions() []string

	// Normalise extracts the document's text, preserving page and
	// section order. A document with no extractable text yields an
	// empty string, not an error.
	Normalise(ctx context.Context, path string) (string, error)
}
