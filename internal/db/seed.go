package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates an empty database with a demo board exercising
// columns, labels, nested checklists and chat history.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().UTC()

	boards := []struct {
		id, name  string
		isDefault bool
	}{
		{"BOARD-001", "Main", true},
		{"BOARD-002", "Side Projects", false},
	}
	for _, b := range boards {
		if _, err := database.Exec(
			"INSERT INTO boards (id, name, owner_id, is_default, created_at, updated_at) VALUES (?, ?, 'local', ?, ?, ?)",
			b.id, b.name, b.isDefault, now, now,
		); err != nil {
			return fmt.Errorf("seed boards: %w", err)
		}
		if _, err := database.Exec(
			"INSERT INTO board_members (board_id, user_id, role, created_at) VALUES (?, 'local', 'owner', ?)",
			b.id, now,
		); err != nil {
			return fmt.Errorf("seed members: %w", err)
		}
	}

	columns := []struct {
		id, boardID, title string
		position           int
	}{
		{"COL-001", "BOARD-001", "To Do", 0},
		{"COL-002", "BOARD-001", "In Progress", 1},
		{"COL-003", "BOARD-001", "Done", 2},
		{"COL-004", "BOARD-002", "Ideas", 0},
		{"COL-005", "BOARD-002", "Done", 1},
	}
	for _, c := range columns {
		if _, err := database.Exec(
			"INSERT INTO board_columns (id, board_id, title, position, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			c.id, c.boardID, c.title, c.position, now, now,
		); err != nil {
			return fmt.Errorf("seed columns: %w", err)
		}
	}

	labels := []struct {
		id, boardID, name, color string
		pinned                   bool
		usage                    int
	}{
		{"LABEL-001", "BOARD-001", "work", "#2563eb", true, 2},
		{"LABEL-002", "BOARD-001", "home", "#16a34a", false, 1},
		{"LABEL-003", "BOARD-001", "urgent", "#dc2626", false, 1},
	}
	for _, l := range labels {
		if _, err := database.Exec(
			"INSERT INTO labels (id, board_id, name, color, pinned, usage_count) VALUES (?, ?, ?, ?, ?, ?)",
			l.id, l.boardID, l.name, l.color, l.pinned, l.usage,
		); err != nil {
			return fmt.Errorf("seed labels: %w", err)
		}
	}

	tasks := []struct {
		id, boardID, columnID, title, desc, date string
		position                                 int
	}{
		{"TASK-001", "BOARD-001", "COL-001", "Quarterly report", "Collect numbers from finance", now.AddDate(0, 0, 7).Format("2006-01-02"), 0},
		{"TASK-002", "BOARD-001", "COL-002", "Fix leaking tap", "", "", 1},
		{"TASK-003", "BOARD-001", "COL-003", "Renew passport", "", now.AddDate(0, 0, -3).Format("2006-01-02"), 2},
		{"TASK-004", "BOARD-002", "COL-004", "Build a birdhouse", "", "", 0},
	}
	for i, t := range tasks {
		var desc, date sql.NullString
		if t.desc != "" {
			desc = sql.NullString{String: t.desc, Valid: true}
		}
		if t.date != "" {
			date = sql.NullString{String: t.date, Valid: true}
		}
		createdAt := now.Add(time.Duration(i) * time.Minute)
		if _, err := database.Exec(
			"INSERT INTO tasks (id, board_id, column_id, title, description, date, position, created_by, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, 'local', ?, ?)",
			t.id, t.boardID, t.columnID, t.title, desc, date, t.position, createdAt, createdAt,
		); err != nil {
			return fmt.Errorf("seed tasks: %w", err)
		}
	}

	taskLabels := [][2]string{
		{"TASK-001", "LABEL-001"},
		{"TASK-001", "LABEL-003"},
		{"TASK-002", "LABEL-002"},
		{"TASK-003", "LABEL-001"},
	}
	for _, tl := range taskLabels {
		if _, err := database.Exec("INSERT INTO task_labels (task_id, label_id) VALUES (?, ?)", tl[0], tl[1]); err != nil {
			return fmt.Errorf("seed task labels: %w", err)
		}
	}

	items := []struct {
		id, taskID, parentID, text, typ string
		completed                       bool
		position                        int
	}{
		{"CHK-001", "TASK-001", "", "Gather data", "group", false, 0},
		{"CHK-002", "TASK-001", "CHK-001", "Sales figures", "item", true, 0},
		{"CHK-003", "TASK-001", "CHK-001", "Cost breakdown", "item", false, 1},
		{"CHK-004", "TASK-001", "", "Draft summary", "item", false, 1},
	}
	for _, it := range items {
		var parent sql.NullString
		if it.parentID != "" {
			parent = sql.NullString{String: it.parentID, Valid: true}
		}
		if _, err := database.Exec(
			"INSERT INTO checklist_items (id, task_id, parent_id, text, completed, type, position) VALUES (?, ?, ?, ?, ?, ?, ?)",
			it.id, it.taskID, parent, it.text, it.completed, it.typ, it.position,
		); err != nil {
			return fmt.Errorf("seed checklist: %w", err)
		}
	}

	return nil
}
