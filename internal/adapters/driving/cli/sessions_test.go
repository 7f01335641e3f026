package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docchat-labs/docchat-cli/internal/core/domain"
)

func TestSessionsListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"sessions", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No stored sessions.")
}

func TestSessionsListCmd_ShowsSessions(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	sessionAdmin = &mockAdmin{
		sessions: []domain.Session{
			{ID: "s1", DocumentName: "report", CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"sessions", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "s1")
	assert.Contains(t, buf.String(), "report")
}

func TestSessionsClearCmd_ByDocument(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	admin := &mockAdmin{}
	sessionAdmin = admin

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"sessions", "clear", "report"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Equal(t, []string{"report"}, admin.cleared)
	assert.Contains(t, buf.String(), "Cleared sessions for report.")
}

func TestSessionsClearCmd_All(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	admin := &mockAdmin{}
	sessionAdmin = admin

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"sessions", "clear"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Equal(t, []string{""}, admin.cleared)
	assert.Contains(t, buf.String(), "Cleared all sessions.")
}

func TestIndexCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"index", "doc.txt"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Indexed 2 chunks.")
}

func TestIndexCmd_EmptyDocument(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	indexerService = &mockIndexer{count: 0}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"index", "doc.txt"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Nothing to index")
}
