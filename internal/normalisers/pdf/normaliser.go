// Package pdf extracts text from PDF documents via the external
// pdftotext tool.
package pdf

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/docchat-labs/docchat-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// CommandRunner executes an external command and returns its stdout.
// It exists so tests can substitute the pdftotext invocation.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Normaliser extracts text from PDFs. The actual decoding is owned by
// pdftotext; this adapter only drives it and cleans up the output.
type Normaliser struct {
	runner CommandRunner
}

// Option configures the normaliser.
type Option func(*Normaliser)

// WithRunner replaces the command runner. Used in tests.
func WithRunner(r CommandRunner) Option {
	return func(n *Normaliser) {
		if r != nil {
			n.runner = r
		}
	}
}

// New creates a new PDF normaliser.
func New(opts ...Option) *Normaliser {
	n := &Normaliser{runner: execRunner{}}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".pdf"}
}

// Normalise extracts page text in page order. The page break markers
// pdftotext emits (form feeds) are rewritten to paragraph breaks so
// the chunker's separator cascade sees them as coarse boundaries.
func (n *Normaliser) Normalise(ctx context.Context, path string) (string, error) {
	out, err := n.runner.Run(ctx, "pdftotext", "-layout", "-enc", "UTF-8", path, "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	text := strings.ReplaceAll(string(out), "\f", "\n\n")
	return text, nil
}
