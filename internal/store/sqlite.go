package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	// ARCHITECTURAL DISCOVERY: Import SQLite driver but only reference in connection string
	_ "github.com/mattn/go-sqlite3"

	"seelikeme/pkg/interfaces"
	"seelikeme/pkg/types"
)

// schema bootstraps the two tables on open. Detection results are stored as
// JSON blobs keyed by session, feedback as append-only rows.
const schema = `
CREATE TABLE IF NOT EXISTS session_results (
	session_id TEXT PRIMARY KEY,
	results    TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS feedback (
	id         TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	payload    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_feedback_session ON feedback(session_id);
`

// SQLite is the key-value-backed store implementation.
// FUNCTIONAL DISCOVERY: Session results follow last-write-wins semantics;
// the upsert keeps exactly one cached result per session
type SQLite struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLite opens (or creates) the store database at path
func NewSQLite(path string) (*SQLite, error) {
	// TECHNICAL DISCOVERY: WAL mode and busy timeout allow concurrent readers
	// alongside the write path without "database is locked" failures
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open store database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize store schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// SaveResult upserts the latest detection result for a session
func (s *SQLite) SaveResult(ctx context.Context, sessionID string, result types.DetectionResult) error {
	if err := s.ready(); err != nil {
		return err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode detection result: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO session_results (session_id, results, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET results = excluded.results, updated_at = excluded.updated_at`,
		sessionID, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save result for session %s: %w", sessionID, err)
	}
	return nil
}

// GetResult returns the cached detection result for a session
func (s *SQLite) GetResult(ctx context.Context, sessionID string) (types.DetectionResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT results FROM session_results WHERE session_id = ?`, sessionID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, interfaces.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session %s: %w", sessionID, err)
	}

	var result types.DetectionResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, fmt.Errorf("failed to decode cached result for session %s: %w", sessionID, err)
	}
	return result, nil
}

// SaveFeedback appends one feedback payload for a session
func (s *SQLite) SaveFeedback(ctx context.Context, sessionID string, payload []byte) error {
	if err := s.ready(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback (id, session_id, payload, created_at) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), sessionID, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save feedback for session %s: %w", sessionID, err)
	}
	return nil
}

// Connected reports whether the backing database is open
func (s *SQLite) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.closed
}

// Close shuts down the backing database
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *SQLite) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return interfaces.ErrStoreClosed
	}
	return nil
}
