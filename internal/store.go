package internal

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// RawRecord is one key-value pair read from the store, scoped to a single
// extraction run
type RawRecord struct {
	Key     string
	Payload []byte
}

// Store is a read-only accessor over the workspace-state database. The
// editor keeps its state in an ItemTable(key, value) table inside a SQLite
// file; the three chat keyspaces live under well-known keys.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore opens the database read-only. A missing or unreadable file is
// fatal: no write fallback, no retry.
func OpenStore(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &StoreError{Path: path, Op: "open", Err: err}
	}

	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, &StoreError{Path: path, Op: "open", Err: err}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StoreError{Path: path, Op: "ping", Err: err}
	}

	return &Store{db: db, path: path}, nil
}

// Path returns the database file path the store was opened with
func (s *Store) Path() string {
	return s.path
}

// Get returns the raw payload stored under key. Absent keys (and NULL
// values, which the editor writes for cleared entries) yield ErrKeyMissing.
func (s *Store) Get(key string) ([]byte, error) {
	var value sql.NullString
	err := s.db.QueryRow("SELECT value FROM ItemTable WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrKeyMissing, key)
	}
	if err != nil {
		return nil, &StoreError{Path: s.path, Op: "query", Err: err}
	}
	if !value.Valid {
		return nil, fmt.Errorf("%w: %s", ErrKeyMissing, key)
	}
	return []byte(value.String), nil
}

// GetRecord is Get wrapped into a RawRecord
func (s *Store) GetRecord(key string) (RawRecord, error) {
	payload, err := s.Get(key)
	if err != nil {
		return RawRecord{}, err
	}
	return RawRecord{Key: key, Payload: payload}, nil
}

// HasKey reports whether a key is present with a non-NULL value
func (s *Store) HasKey(key string) (bool, error) {
	_, err := s.Get(key)
	if errors.Is(err, ErrKeyMissing) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Tables lists the table names in the database, for inspection
func (s *Store) Tables() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM sqlite_master WHERE type='table' ORDER BY name")
	if err != nil {
		return nil, &StoreError{Path: s.path, Op: "query", Err: err}
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, &StoreError{Path: s.path, Op: "query", Err: err}
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Path: s.path, Op: "query", Err: err}
	}
	return tables, nil
}

// ItemCount returns the number of rows in ItemTable, for inspection
func (s *Store) ItemCount() (int64, error) {
	var count int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM ItemTable").Scan(&count); err != nil {
		return 0, &StoreError{Path: s.path, Op: "query", Err: err}
	}
	return count, nil
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}
