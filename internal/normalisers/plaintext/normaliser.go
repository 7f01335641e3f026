// Package plaintext reads documents that are already plain text.
package plaintext

import (
	"context"
	"os"

	"github.com/docchat-labs/docchat-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents. It is the fallback for
// every format without a dedicated normaliser: delimited text, word
// processor and slide deck exports are expected to be pre-converted
// to text by an external extraction step before reaching it.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".txt", ".md", ".csv", ".log", ".text"}
}

// Normalise reads the file content as UTF-8 text.
func (n *Normaliser) Normalise(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
