// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Instead, use
// setupTestDB() and the seed* helpers.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/kanban/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// A single connection keeps the in-memory database alive and shared.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedBoard inserts a test board and returns its ID.
func seedBoard(t *testing.T, db *sql.DB, id, name string, isDefault bool) string {
	t.Helper()
	if id == "" {
		id = "BOARD-001"
	}
	if name == "" {
		name = "Test Board"
	}
	_, err := db.Exec(
		"INSERT INTO boards (id, name, owner_id, is_default, created_at, updated_at) VALUES (?, ?, 'alice', ?, ?, ?)",
		id, name, isDefault, time.Now().UTC(), time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("failed to seed board: %v", err)
	}
	return id
}

// seedColumn inserts a test column and returns its ID.
func seedColumn(t *testing.T, db *sql.DB, id, boardID, title string, position int) string {
	t.Helper()
	if boardID == "" {
		boardID = "BOARD-001"
	}
	_, err := db.Exec(
		"INSERT INTO board_columns (id, board_id, title, position) VALUES (?, ?, ?, ?)",
		id, boardID, title, position,
	)
	if err != nil {
		t.Fatalf("failed to seed column: %v", err)
	}
	return id
}

// seedTask inserts a test task and returns its ID.
func seedTask(t *testing.T, db *sql.DB, id, boardID, columnID, title string, position int) string {
	t.Helper()
	if boardID == "" {
		boardID = "BOARD-001"
	}
	_, err := db.Exec(
		"INSERT INTO tasks (id, board_id, column_id, title, position, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, boardID, columnID, title, position, time.Now().UTC(), time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
	return id
}

// seedLabel inserts a test label and returns its ID.
func seedLabel(t *testing.T, db *sql.DB, id, boardID, name string) string {
	t.Helper()
	if boardID == "" {
		boardID = "BOARD-001"
	}
	_, err := db.Exec(
		"INSERT INTO labels (id, board_id, name, color) VALUES (?, ?, ?, '#ff0000')",
		id, boardID, name,
	)
	if err != nil {
		t.Fatalf("failed to seed label: %v", err)
	}
	return id
}

// seedChecklistItem inserts a test checklist item and returns its ID.
func seedChecklistItem(t *testing.T, db *sql.DB, id, taskID, parentID, itemType string, position int) string {
	t.Helper()
	var parent any
	if parentID != "" {
		parent = parentID
	}
	_, err := db.Exec(
		"INSERT INTO checklist_items (id, task_id, parent_id, text, type, position) VALUES (?, ?, ?, ?, ?, ?)",
		id, taskID, parent, "item "+id, itemType, position,
	)
	if err != nil {
		t.Fatalf("failed to seed checklist item: %v", err)
	}
	return id
}

// seedBasicBoard creates BOARD-001 with To Do / Done columns.
func seedBasicBoard(t *testing.T, db *sql.DB) {
	t.Helper()
	seedBoard(t, db, "BOARD-001", "Main", true)
	seedColumn(t, db, "COL-001", "BOARD-001", "To Do", 0)
	seedColumn(t, db, "COL-002", "BOARD-001", "Done", 1)
}
