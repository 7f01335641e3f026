package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
}

func (m *mockRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	return m.output, m.err
}

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestSupportedExtensions(t *testing.T) {
	normaliser := New()
	exts := normaliser.SupportedExtensions()

	require.NotEmpty(t, exts)
	assert.Contains(t, exts, ".pdf")
	assert.Len(t, exts, 1)
}

func TestNormalise_PageBreaksBecomeParagraphBreaks(t *testing.T) {
	runner := &mockRunner{output: []byte("page one text\fpage two text")}
	normaliser := New(WithRunner(runner))

	text, err := normaliser.Normalise(context.Background(), "/docs/report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "page one text\n\npage two text", text)
}

func TestNormalise_RunnerError(t *testing.T) {
	runner := &mockRunner{err: errors.New("exit status 1")}
	normaliser := New(WithRunner(runner))

	_, err := normaliser.Normalise(context.Background(), "/docs/broken.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdftotext")
}

func TestNormalise_EmptyOutput(t *testing.T) {
	runner := &mockRunner{output: nil}
	normaliser := New(WithRunner(runner))

	text, err := normaliser.Normalise(context.Background(), "/docs/scanned.pdf")
	require.NoError(t, err)
	assert.Empty(t, text)
}
