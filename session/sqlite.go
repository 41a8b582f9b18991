package session

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS session (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// SQLiteStore persists the account-id slot in a SQLite file so that the
// session identity survives client restarts.
type SQLiteStore struct {
	db  *sql.DB
	key string
}

// NewSQLite opens (creating if necessary) the session database at path.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init session schema: %w", err)
	}

	return &SQLiteStore{db: db, key: AccountIDParam}, nil
}

func (s *SQLiteStore) Load() (string, error) {
	var id string
	err := s.db.QueryRow(`SELECT value FROM session WHERE key = ?`, s.key).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load session id: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) Save(accountID string) error {
	_, err := s.db.Exec(`
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		s.key, accountID,
	)
	if err != nil {
		return fmt.Errorf("save session id: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
