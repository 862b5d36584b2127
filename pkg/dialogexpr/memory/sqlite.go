package memory

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrKeyNotFound indicates the store has no document for a top-level key.
var ErrKeyNotFound = errors.New("scope key not found")

// SQLiteStore is a persistent Memory. Each top-level path segment is a row
// holding one JSON document; the rest of the path is resolved inside it.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a store at path.
// Use ":memory:" for a throwaway store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Every connection to ":memory:" is its own database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS scopes (
			key TEXT NOT NULL PRIMARY KEY,
			updated TEXT NOT NULL,
			data BLOB NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db, logger: slog.Default()}, nil
}

// WithLogger sets the logger used to report read failures from GetValue,
// which has no error return.
func (s *SQLiteStore) WithLogger(logger *slog.Logger) *SQLiteStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// GetValue implements Memory.
func (s *SQLiteStore) GetValue(path string) (any, bool) {
	parts, err := ParsePath(path)
	if err != nil {
		return nil, false
	}
	doc, err := s.Load(parts[0])
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			s.logger.Warn("scope read failed",
				slog.String("key", parts[0]),
				slog.String("error", err.Error()))
		}
		return nil, false
	}
	return GetPath(doc, parts[1:])
}

// SetValue implements Memory.
func (s *SQLiteStore) SetValue(path string, value any) error {
	parts, err := ParsePath(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	key, doc, err := s.load(parts[0])
	if errors.Is(err, ErrKeyNotFound) {
		key, doc = parts[0], nil
	} else if err != nil {
		return err
	}

	doc, err = SetPath(doc, parts[1:], Normalize(value))
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return s.save(key, doc)
}

// Load returns the document stored under key.
func (s *SQLiteStore) Load(key string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	_, doc, err := s.load(key)
	return doc, err
}

// Save replaces the document stored under key.
func (s *SQLiteStore) Save(key string, doc any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	return s.save(key, Normalize(doc))
}

// Keys returns the stored top-level keys in order.
func (s *SQLiteStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`SELECT key FROM scopes ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list scope keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan scope key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scope keys: %w", err)
	}
	return keys, nil
}

// Delete removes the document stored under key.
// Returns nil if the key doesn't exist.
func (s *SQLiteStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`DELETE FROM scopes WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete scope: %w", err)
	}
	return nil
}

// Close releases the database. Closing twice is a no-op.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

// load resolves key with the same exact-then-case-insensitive rule as
// AccessProperty. Callers hold the lock.
func (s *SQLiteStore) load(key string) (string, any, error) {
	var stored string
	var data []byte
	err := s.db.QueryRow(`
		SELECT key, data FROM scopes
		WHERE key = ? COLLATE NOCASE
		ORDER BY key = ? DESC, key
		LIMIT 1
	`, key, key).Scan(&stored, &data)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, ErrKeyNotFound
	}
	if err != nil {
		return "", nil, fmt.Errorf("load scope: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", nil, fmt.Errorf("decode scope %s: %w", stored, err)
	}
	return stored, doc, nil
}

// save writes doc under key. Callers hold the lock.
func (s *SQLiteStore) save(key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode scope %s: %w", key, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO scopes (key, updated, data)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			updated = excluded.updated,
			data = excluded.data
	`, key, time.Now().UTC().Format(time.RFC3339Nano), data)
	if err != nil {
		return fmt.Errorf("save scope: %w", err)
	}
	return nil
}
