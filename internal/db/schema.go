package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for fresh kanban installs.
// This schema reflects the current state after all migrations.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the SQLite schema. All repository
// tests load it via GetSchemaSQL(), so a repository referencing a column that
// does not exist here fails immediately with "no such column".
//
// When adding new columns or tables:
//  1. Append a migration in migrations.go
//  2. Update SchemaSQL here
//  3. Mirror the change in internal/adapters/postgres/schema.go
const SchemaSQL = `
-- Boards (dashboards)
CREATE TABLE IF NOT EXISTS boards (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	owner_id TEXT,
	is_default INTEGER NOT NULL DEFAULT 0,
	google_calendar_url TEXT,
	weather_location TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_boards_single_default ON boards(is_default) WHERE is_default = 1;

-- Board membership
CREATE TABLE IF NOT EXISTS board_members (
	board_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	role TEXT NOT NULL CHECK(role IN ('owner', 'member')) DEFAULT 'member',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (board_id, user_id),
	FOREIGN KEY (board_id) REFERENCES boards(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_board_members_user ON board_members(user_id);

-- Board invites
CREATE TABLE IF NOT EXISTS board_invites (
	code TEXT PRIMARY KEY,
	board_id TEXT NOT NULL,
	created_by TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (board_id) REFERENCES boards(id) ON DELETE CASCADE
);

-- Columns
CREATE TABLE IF NOT EXISTS board_columns (
	id TEXT PRIMARY KEY,
	board_id TEXT NOT NULL,
	title TEXT NOT NULL,
	position INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (board_id) REFERENCES boards(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_board_columns_board ON board_columns(board_id, position);

-- Tasks
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	board_id TEXT NOT NULL,
	column_id TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	date TEXT,
	image_url TEXT,
	position INTEGER NOT NULL DEFAULT 0,
	created_by TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (board_id) REFERENCES boards(id) ON DELETE CASCADE,
	FOREIGN KEY (column_id) REFERENCES board_columns(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_tasks_board ON tasks(board_id, position);
CREATE INDEX IF NOT EXISTS idx_tasks_column ON tasks(column_id);

-- Labels (per-board label config)
CREATE TABLE IF NOT EXISTS labels (
	id TEXT PRIMARY KEY,
	board_id TEXT NOT NULL,
	name TEXT NOT NULL,
	color TEXT NOT NULL,
	pinned INTEGER NOT NULL DEFAULT 0,
	usage_count INTEGER NOT NULL DEFAULT 0,
	UNIQUE (board_id, name),
	FOREIGN KEY (board_id) REFERENCES boards(id) ON DELETE CASCADE
);

-- Task labels (junction table)
CREATE TABLE IF NOT EXISTS task_labels (
	task_id TEXT NOT NULL,
	label_id TEXT NOT NULL,
	PRIMARY KEY (task_id, label_id),
	FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE,
	FOREIGN KEY (label_id) REFERENCES labels(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_task_labels_label ON task_labels(label_id);

-- Checklist items (nested via parent_id)
CREATE TABLE IF NOT EXISTS checklist_items (
	id TEXT PRIMARY KEY,
	task_id TEXT NOT NULL,
	parent_id TEXT,
	text TEXT NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	type TEXT NOT NULL CHECK(type IN ('item', 'group')) DEFAULT 'item',
	position INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE,
	FOREIGN KEY (parent_id) REFERENCES checklist_items(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_checklist_items_task ON checklist_items(task_id, position);

-- Chat history
CREATE TABLE IF NOT EXISTS chat_messages (
	id TEXT PRIMARY KEY,
	board_id TEXT NOT NULL,
	user_id TEXT,
	sender TEXT NOT NULL CHECK(sender IN ('user', 'ai')),
	content TEXT NOT NULL,
	timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (board_id) REFERENCES boards(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_chat_messages_board ON chat_messages(board_id, timestamp);

-- Change logs (audit trail, outlives deleted boards)
CREATE TABLE IF NOT EXISTS change_logs (
	id TEXT PRIMARY KEY,
	board_id TEXT NOT NULL,
	actor_id TEXT,
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	details TEXT,
	timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_change_logs_board ON change_logs(board_id);
CREATE INDEX IF NOT EXISTS idx_change_logs_timestamp ON change_logs(timestamp);
CREATE INDEX IF NOT EXISTS idx_change_logs_entity ON change_logs(entity_type, entity_id);
`

// InitSchema brings the database up to the current schema version.
func InitSchema(db *sql.DB) error {
	if err := RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
