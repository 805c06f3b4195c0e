package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaVersion is bumped together with the sqlite migrations.
const schemaVersion = 1

// SchemaSQL mirrors internal/db/schema.go in PostgreSQL dialect.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS boards (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	owner_id TEXT,
	is_default BOOLEAN NOT NULL DEFAULT false,
	google_calendar_url TEXT,
	weather_location TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_boards_single_default ON boards(is_default) WHERE is_default;

CREATE TABLE IF NOT EXISTS board_members (
	board_id TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
	user_id TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'member' CHECK (role IN ('owner', 'member')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (board_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_board_members_user ON board_members(user_id);

CREATE TABLE IF NOT EXISTS board_invites (
	code TEXT PRIMARY KEY,
	board_id TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
	created_by TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS board_columns (
	id TEXT PRIMARY KEY,
	board_id TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	position INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_board_columns_board ON board_columns(board_id, position);

CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	board_id TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
	column_id TEXT NOT NULL REFERENCES board_columns(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	description TEXT,
	date TEXT,
	image_url TEXT,
	position INTEGER NOT NULL DEFAULT 0,
	created_by TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_tasks_board ON tasks(board_id, position);

CREATE TABLE IF NOT EXISTS labels (
	id TEXT PRIMARY KEY,
	board_id TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	color TEXT NOT NULL,
	pinned BOOLEAN NOT NULL DEFAULT false,
	usage_count INTEGER NOT NULL DEFAULT 0,
	UNIQUE (board_id, name)
);

CREATE TABLE IF NOT EXISTS task_labels (
	task_id TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	label_id TEXT NOT NULL REFERENCES labels(id) ON DELETE CASCADE,
	PRIMARY KEY (task_id, label_id)
);

CREATE TABLE IF NOT EXISTS checklist_items (
	id TEXT PRIMARY KEY,
	task_id TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	parent_id TEXT REFERENCES checklist_items(id) ON DELETE CASCADE,
	text TEXT NOT NULL,
	completed BOOLEAN NOT NULL DEFAULT false,
	type TEXT NOT NULL DEFAULT 'item' CHECK (type IN ('item', 'group')),
	position INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_checklist_items_task ON checklist_items(task_id, position);

CREATE TABLE IF NOT EXISTS chat_messages (
	id TEXT PRIMARY KEY,
	board_id TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
	user_id TEXT,
	sender TEXT NOT NULL CHECK (sender IN ('user', 'ai')),
	content TEXT NOT NULL,
	timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_chat_messages_board ON chat_messages(board_id, timestamp);

CREATE TABLE IF NOT EXISTS change_logs (
	id TEXT PRIMARY KEY,
	board_id TEXT NOT NULL,
	actor_id TEXT,
	action TEXT NOT NULL CHECK (action IN ('create', 'update', 'delete')),
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	details TEXT,
	timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_change_logs_board ON change_logs(board_id, timestamp DESC);

CREATE TABLE IF NOT EXISTS id_counters (
	name TEXT PRIMARY KEY,
	value INTEGER NOT NULL
);
`

// Migrate applies the schema inside a transaction and records its version.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, SchemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	if _, err := tx.Exec(ctx,
		"INSERT INTO schema_version (version) VALUES ($1) ON CONFLICT (version) DO NOTHING", schemaVersion,
	); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	return tx.Commit(ctx)
}
