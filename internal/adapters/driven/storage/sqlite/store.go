package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/docchat-labs/docchat-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/docchat-labs/docchat-cli/internal/core/domain"
	"github.com/docchat-labs/docchat-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.TranscriptStore = (*Store)(nil)

// Store is a SQLite-backed transcript store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.docchat/data/transcripts.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docchat", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "transcripts.db")

	// WAL mode for better concurrency between readers and the writer
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, path: dbPath}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// CreateSession starts a new session for the document.
func (s *Store) CreateSession(ctx context.Context, doc domain.Document) (*domain.Session, error) {
	if doc.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	session := &domain.Session{
		ID:           uuid.New().String(),
		DocumentName: doc.Name,
		DocumentPath: doc.Path,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (id, document_name, document_path, created_at) VALUES (?, ?, ?, ?)",
		session.ID, session.DocumentName, session.DocumentPath, session.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting session: %w", err)
	}
	return session, nil
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, document_name, document_path, created_at FROM sessions WHERE id = ?", sessionID)

	var session domain.Session
	if err := row.Scan(&session.ID, &session.DocumentName, &session.DocumentPath, &session.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	return &session, nil
}

// AppendTurn appends a turn to the session transcript.
func (s *Store) AppendTurn(ctx context.Context, sessionID string, turn domain.Turn) error {
	if !turn.Role.Valid() {
		return domain.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO turns (session_id, role, content, position, created_at)
		VALUES (?, ?, ?, (SELECT COUNT(*) FROM turns WHERE session_id = ?), ?)`,
		sessionID, string(turn.Role), turn.Content, sessionID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting turn: %w", err)
	}
	return nil
}

// History returns the session's turns, oldest first.
func (s *Store) History(ctx context.Context, sessionID string) ([]domain.Turn, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT role, content FROM turns WHERE session_id = ? ORDER BY position ASC", sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying turns: %w", err)
	}
	defer rows.Close()

	var turns []domain.Turn
	for rows.Next() {
		var role, content string
		if err := rows.Scan(&role, &content); err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		turns = append(turns, domain.Turn{Role: domain.Role(role), Content: content})
	}
	return turns, rows.Err()
}

// ListSessions returns all sessions, newest first.
func (s *Store) ListSessions(ctx context.Context) ([]domain.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, document_name, document_path, created_at FROM sessions ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		var session domain.Session
		if err := rows.Scan(&session.ID, &session.DocumentName, &session.DocumentPath, &session.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// DeleteSessions removes all sessions for the document name, or every
// session when docName is empty. Turns cascade.
func (s *Store) DeleteSessions(ctx context.Context, docName string) error {
	var err error
	if docName == "" {
		_, err = s.db.ExecContext(ctx, "DELETE FROM sessions")
	} else {
		_, err = s.db.ExecContext(ctx, "DELETE FROM sessions WHERE document_name = ?", docName)
	}
	if err != nil {
		return fmt.Errorf("deleting sessions: %w", err)
	}
	return nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		version := migrationVersion(name)
		if version <= currentVersion {
			continue
		}

		script, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(script)); err != nil {
			return fmt.Errorf("applying migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}

// migrationVersion extracts the numeric prefix of a migration name.
func migrationVersion(name string) int {
	prefix, _, _ := strings.Cut(name, "_")
	version := 0
	for _, r := range prefix {
		if r < '0' || r > '9' {
			break
		}
		version = version*10 + int(r-'0')
	}
	return version
}
