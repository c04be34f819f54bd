package chat

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps chat transcripts in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path, ensures its
// directory exists and creates the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets page renders read transcripts while a submit is writing.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &SQLiteStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS chat_messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session TEXT NOT NULL,
    role TEXT NOT NULL,
    body TEXT NOT NULL,
    created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chat_messages_session ON chat_messages(session, id);
`)
	return err
}

// Append stores one message at the end of a session's transcript.
func (s *SQLiteStore) Append(ctx context.Context, session string, m Message) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_messages (session, role, body, created_at) VALUES (?, ?, ?, ?)`,
		session, string(m.Role), m.Text, m.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("append chat message: %w", err)
	}
	return nil
}

// Messages returns a session's transcript in insertion order.
func (s *SQLiteStore) Messages(ctx context.Context, session string) ([]Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT role, body, created_at FROM chat_messages WHERE session = ? ORDER BY id`, session)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var role, body, created string
		if err := rows.Scan(&role, &body, &created); err != nil {
			return nil, err
		}
		m := Message{Role: Role(role), Text: body}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			m.CreatedAt = t
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Clear removes a session's transcript.
func (s *SQLiteStore) Clear(ctx context.Context, session string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE session = ?`, session)
	return err
}
