package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (creating if needed) the SQLite database at path with foreign
// keys enforced, and migrates it to the current schema.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	database, err := sql.Open("sqlite3", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// one writer; pragmas are per connection
	database.SetMaxOpenConns(1)

	if err := InitSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// DSN builds the go-sqlite3 connection string for path.
func DSN(path string) string {
	return "file:" + path + "?_foreign_keys=on&_busy_timeout=5000"
}

// SeedIfEmpty loads the demo fixtures when the database has no boards yet.
func SeedIfEmpty(database *sql.DB) (bool, error) {
	var boards int
	if err := database.QueryRow("SELECT COUNT(*) FROM boards").Scan(&boards); err != nil {
		return false, fmt.Errorf("failed to count boards: %w", err)
	}
	if boards > 0 {
		return false, nil
	}
	if err := SeedFixtures(database); err != nil {
		return false, err
	}
	return true, nil
}
