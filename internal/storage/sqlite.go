package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sessions (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
);`

// SQLite stores keys in a single-file SQLite database. Pass an empty dir
// for an in-memory database (tests).
type SQLite struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewSQLite opens (or creates) the session database.
func NewSQLite(dataDir string, logger *zap.Logger) (*SQLite, error) {
	var dsn string
	if dataDir == "" {
		dsn = ":memory:?_journal_mode=WAL"
	} else {
		if err := os.MkdirAll(dataDir, 0o700); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		dsn = filepath.Join(dataDir, "sessions.db") + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("migrate session database: %w", err)
	}
	return &SQLite{db: db, logger: logger}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Get(key string) (string, bool) {
	var value string
	err := s.db.Get(&value, `SELECT value FROM sessions WHERE key = ?`, key)
	if err != nil {
		return "", false
	}
	return value, true
}

func (s *SQLite) Set(key, value string) {
	_, err := s.db.Exec(
		`INSERT INTO sessions (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		s.logger.Warn("session storage write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *SQLite) Remove(key string) {
	if _, err := s.db.Exec(`DELETE FROM sessions WHERE key = ?`, key); err != nil {
		s.logger.Warn("session storage remove failed", zap.String("key", key), zap.Error(err))
	}
}
