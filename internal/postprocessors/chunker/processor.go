// Package chunker provides a recursive character text chunking
// processor with a cascading separator policy.
package chunker

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.Chunker = (*Processor)(nil)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 500

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 50

// defaultSeparators is the cascade used to find split points: attempt
// the coarsest boundary first and retreat to finer ones only where a
// piece still exceeds the chunk size. The empty separator splits
// between characters, so no chunk ever exceeds the maximum even for
// pathological unbroken text.
var defaultSeparators = []string{"\n\n", "\n", " ", ""}

// Processor splits document content into bounded overlapping chunks.
type Processor struct {
	chunkSize  int
	overlap    int
	separators []string
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// WithSeparators replaces the separator cascade.
func WithSeparators(seps []string) Option {
	return func(p *Processor) {
		if len(seps) > 0 {
			p.separators = seps
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize:  DefaultChunkSize,
		overlap:    DefaultChunkOverlap,
		separators: defaultSeparators,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "recursive"
}

// Chunk splits the content into ordered chunks. Empty content
// produces no chunks and no error.
func (p *Processor) Chunk(_ context.Context, doc domain.Document, content string) ([]domain.Chunk, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}

	pieces := p.splitText(content, p.separators)

	chunks := make([]domain.Chunk, 0, len(pieces))
	for i, text := range pieces {
		chunks = append(chunks, domain.Chunk{
			ID:           uuid.New().String(),
			DocumentName: doc.Name,
			Text:         text,
			Ordinal:      i,
		})
	}
	return chunks, nil
}

// splitText splits text using the coarsest separator present, then
// recursively re-splits any piece that still exceeds the chunk size
// with the finer separators that remain.
func (p *Processor) splitText(text string, separators []string) []string {
	sep := separators[len(separators)-1]
	var next []string
	for i, s := range separators {
		if s == "" {
			sep = s
			break
		}
		if strings.Contains(text, s) {
			sep = s
			next = separators[i+1:]
			break
		}
	}

	splits := splitOn(text, sep)

	var final []string
	var fitting []string
	for _, piece := range splits {
		if runeLen(piece) < p.chunkSize {
			fitting = append(fitting, piece)
			continue
		}
		if len(fitting) > 0 {
			final = append(final, p.merge(fitting, sep)...)
			fitting = nil
		}
		if next == nil {
			// No finer separator left; keep the oversized piece.
			final = append(final, piece)
		} else {
			final = append(final, p.splitText(piece, next)...)
		}
	}
	if len(fitting) > 0 {
		final = append(final, p.merge(fitting, sep)...)
	}
	return final
}

// merge greedily packs pieces into chunks up to the chunk size,
// carrying trailing pieces up to the overlap into the next chunk.
func (p *Processor) merge(pieces []string, sep string) []string {
	sepLen := runeLen(sep)

	var chunks []string
	var current []string
	total := 0

	for _, piece := range pieces {
		l := runeLen(piece)
		extra := 0
		if len(current) > 0 {
			extra = sepLen
		}
		if total+l+extra > p.chunkSize && len(current) > 0 {
			if c := strings.TrimSpace(strings.Join(current, sep)); c != "" {
				chunks = append(chunks, c)
			}
			// Drop leading pieces until the carried tail fits the
			// overlap and leaves room for the incoming piece.
			for total > p.overlap || (total+l+extra > p.chunkSize && total > 0) {
				total -= runeLen(current[0])
				if len(current) > 1 {
					total -= sepLen
				}
				current = current[1:]
			}
		}
		if len(current) > 0 {
			total += sepLen
		}
		current = append(current, piece)
		total += l
	}

	if c := strings.TrimSpace(strings.Join(current, sep)); c != "" {
		chunks = append(chunks, c)
	}
	return chunks
}

// splitOn splits text by the separator, discarding empty pieces. The
// empty separator splits between characters.
func splitOn(text, sep string) []string {
	var parts []string
	if sep == "" {
		parts = strings.Split(text, "")
	} else {
		parts = strings.Split(text, sep)
	}
	out := parts[:0]
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
