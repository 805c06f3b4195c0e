package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/kanban/internal/adapters/sqlite"
	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/secondary"
)

func TestLabelRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewLabelRepository(db)
	ctx := context.Background()
	seedBasicBoard(t, db)

	id, _ := repo.GetNextID(ctx)
	if id != "LABEL-001" {
		t.Errorf("expected LABEL-001, got %s", id)
	}
	if err := repo.Create(ctx, &secondary.LabelRecord{ID: id, BoardID: "BOARD-001", Name: "bug", Color: "#ff0000"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err := repo.Create(ctx, &secondary.LabelRecord{ID: "LABEL-002", BoardID: "BOARD-001", Name: "bug", Color: "#00ff00"})
	if !errors.Is(err, models.ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate name, got %v", err)
	}

	got, err := repo.GetByName(ctx, "BOARD-001", "bug")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	got.Name = "defect"
	got.Pinned = true
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if _, err := repo.GetByName(ctx, "BOARD-001", "bug"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("old name should be gone, got %v", err)
	}

	if err := repo.IncrementUsage(ctx, id); err != nil {
		t.Fatalf("IncrementUsage failed: %v", err)
	}
	after, _ := repo.GetByID(ctx, id)
	if after.UsageCount != 1 || !after.Pinned || after.Name != "defect" {
		t.Errorf("unexpected label %+v", after)
	}
}

func TestLabelRepository_ListOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewLabelRepository(db)
	ctx := context.Background()
	seedBasicBoard(t, db)
	seedLabel(t, db, "LABEL-001", "BOARD-001", "a")
	seedLabel(t, db, "LABEL-002", "BOARD-001", "b")
	seedLabel(t, db, "LABEL-003", "BOARD-001", "c")
	db.Exec("UPDATE labels SET usage_count = 5 WHERE id = 'LABEL-002'")
	db.Exec("UPDATE labels SET pinned = 1 WHERE id = 'LABEL-003'")

	labels, err := repo.List(ctx, "BOARD-001")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"c", "b", "a"}
	for i, l := range labels {
		if l.Name != want[i] {
			t.Errorf("position %d = %s, want %s", i, l.Name, want[i])
		}
	}
}

func TestLabelRepository_DeleteStripsTasks(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewLabelRepository(db)
	ctx := context.Background()
	seedBasicBoard(t, db)
	seedTask(t, db, "TASK-001", "BOARD-001", "COL-001", "a", 0)
	seedLabel(t, db, "LABEL-001", "BOARD-001", "bug")
	db.Exec("INSERT INTO task_labels (task_id, label_id) VALUES ('TASK-001', 'LABEL-001')")

	if err := repo.Delete(ctx, "LABEL-001"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var links int
	db.QueryRow("SELECT COUNT(*) FROM task_labels").Scan(&links)
	if links != 0 {
		t.Errorf("expected label links removed, got %d", links)
	}
}
