package chunker

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
)

var testDoc = domain.Document{Name: "report", Path: "/tmp/report.pdf"}

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := New()
		if p.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, p.chunkSize)
		}
		if p.overlap != DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultChunkOverlap, p.overlap)
		}
	})

	t.Run("custom chunk size", func(t *testing.T) {
		p := New(WithChunkSize(200))
		if p.chunkSize != 200 {
			t.Errorf("expected chunkSize 200, got %d", p.chunkSize)
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		p := New(WithChunkSize(100), WithOverlap(150))
		if p.overlap >= p.chunkSize {
			t.Error("overlap should be reduced when it exceeds chunk size")
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		p := New(WithChunkSize(0), WithOverlap(-1))
		if p.chunkSize != DefaultChunkSize {
			t.Errorf("expected default chunkSize, got %d", p.chunkSize)
		}
		if p.overlap != DefaultChunkOverlap {
			t.Errorf("expected default overlap, got %d", p.overlap)
		}
	})
}

func TestProcessor_Name(t *testing.T) {
	p := New()
	if p.Name() != "recursive" {
		t.Errorf("expected name 'recursive', got '%s'", p.Name())
	}
}

func TestChunk_EmptyContent(t *testing.T) {
	p := New()

	for _, content := range []string{"", "   \n\t  "} {
		chunks, err := p.Chunk(context.Background(), testDoc, content)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chunks) != 0 {
			t.Errorf("expected 0 chunks for %q, got %d", content, len(chunks))
		}
	}
}

func TestChunk_SmallContent(t *testing.T) {
	p := New()
	chunks, err := p.Chunk(context.Background(), testDoc, "Just one short passage.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "Just one short passage." {
		t.Errorf("unexpected chunk text: %q", chunks[0].Text)
	}
	if chunks[0].Ordinal != 0 {
		t.Errorf("expected ordinal 0, got %d", chunks[0].Ordinal)
	}
	if chunks[0].DocumentName != "report" {
		t.Errorf("expected document name 'report', got %q", chunks[0].DocumentName)
	}
}

func TestChunk_PrefersParagraphBoundaries(t *testing.T) {
	p := New(WithChunkSize(40), WithOverlap(0))

	content := "First paragraph here.\n\nSecond paragraph here.\n\nThird one."
	chunks, err := p.Chunk(context.Background(), testDoc, content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	// The first paragraph does not fit together with the second, so
	// the split lands on the paragraph break. The two smaller
	// paragraphs are packed together.
	if chunks[0].Text != "First paragraph here." {
		t.Errorf("expected first paragraph intact, got %q", chunks[0].Text)
	}
	if chunks[1].Text != "Second paragraph here.\n\nThird one." {
		t.Errorf("unexpected second chunk: %q", chunks[1].Text)
	}
}

func TestChunk_NeverExceedsMaxSize(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(20))

	contents := []string{
		strings.Repeat("word and more words to fill space ", 50),
		strings.Repeat("line\n", 200),
		strings.Repeat("x", 950), // pathological unbroken text
	}

	for _, content := range contents {
		chunks, err := p.Chunk(context.Background(), testDoc, content)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chunks) == 0 {
			t.Fatal("expected chunks")
		}
		for i, c := range chunks {
			if n := utf8.RuneCountInString(c.Text); n > 100 {
				t.Errorf("chunk %d exceeds max size: %d chars", i, n)
			}
		}
	}
}

func TestChunk_UnbrokenTextExactOverlap(t *testing.T) {
	p := New(WithChunkSize(100), WithOverlap(10))

	// No separators at all: the cascade falls through to the
	// character split, which yields exact windows.
	content := strings.Repeat("0123456789", 25)
	chunks, err := p.Chunk(context.Background(), testDoc, content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i := 0; i < len(chunks)-1; i++ {
		tail := chunks[i].Text[len(chunks[i].Text)-10:]
		head := chunks[i+1].Text[:10]
		if tail != head {
			t.Errorf("chunks %d/%d do not overlap by 10 chars: %q vs %q", i, i+1, tail, head)
		}
	}
}

func TestChunk_OrdinalsAreDocumentOrder(t *testing.T) {
	p := New(WithChunkSize(50), WithOverlap(5))

	content := strings.Repeat("some sentence with several words in it. ", 30)
	chunks, err := p.Chunk(context.Background(), testDoc, content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, c := range chunks {
		if c.Ordinal != i {
			t.Errorf("chunk %d has ordinal %d", i, c.Ordinal)
		}
		if c.ID == "" {
			t.Errorf("chunk %d has empty ID", i)
		}
	}
}
