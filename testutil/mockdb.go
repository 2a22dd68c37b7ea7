package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateStateDB creates a state database file at dbPath with the standard
// ItemTable schema and the given key-value entries. An empty entries map
// produces a valid database with no rows.
func CreateStateDB(t *testing.T, dbPath string, entries map[string]string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create database directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS ItemTable (
		key TEXT UNIQUE ON CONFLICT REPLACE,
		value BLOB
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create ItemTable: %v", err)
	}

	insertSQL := "INSERT INTO ItemTable (key, value) VALUES (?, ?)"
	stmt, err := db.Prepare(insertSQL)
	if err != nil {
		t.Fatalf("Failed to prepare insert statement: %v", err)
	}
	defer stmt.Close()

	for key, value := range entries {
		if _, err := stmt.Exec(key, value); err != nil {
			t.Fatalf("Failed to insert %s: %v", key, err)
		}
	}
}

// OpenRawDB opens a state database read-write for direct fixture
// manipulation. The caller closes it.
func OpenRawDB(t *testing.T, dbPath string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	return db
}

// CreateSeededStateDB creates a state database populated with the sample
// keyspace payloads from this package
func CreateSeededStateDB(t *testing.T, dbPath string) {
	t.Helper()
	CreateStateDB(t, dbPath, map[string]string{
		"composer.composerData": SampleComposerPayload,
		"aiService.generations": SampleGenerationsPayload,
		"aiService.prompts":     SamplePromptsPayload,
	})
}
