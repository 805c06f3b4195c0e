package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/example/kanban/internal/adapters/sqlite"
	"github.com/example/kanban/internal/ports/secondary"
)

func TestChangeLogRepository_CreateListPrune(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewChangeLogRepository(db)
	ctx := context.Background()

	old := time.Now().UTC().AddDate(0, 0, -40)
	entries := []*secondary.ChangeLogRecord{
		{BoardID: "BOARD-001", ActorID: "alice", Action: "create", EntityType: "task", EntityID: "TASK-001", Timestamp: old},
		{BoardID: "BOARD-001", ActorID: "bob", Action: "update", EntityType: "task", EntityID: "TASK-001", Details: `{"field":"title"}`},
		{BoardID: "BOARD-002", Action: "delete", EntityType: "column", EntityID: "COL-003"},
	}
	for _, e := range entries {
		id, err := repo.GetNextID(ctx)
		if err != nil {
			t.Fatalf("GetNextID failed: %v", err)
		}
		e.ID = id
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	if entries[2].ID != "LOG-0003" {
		t.Errorf("expected LOG-0003, got %s", entries[2].ID)
	}

	board1, err := repo.List(ctx, secondary.ChangeLogFilters{BoardID: "BOARD-001"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(board1) != 2 || board1[0].ActorID != "bob" {
		t.Errorf("expected newest first for BOARD-001, got %+v", board1)
	}

	got, err := repo.GetByID(ctx, "LOG-0002")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Details != `{"field":"title"}` {
		t.Errorf("unexpected details %q", got.Details)
	}

	limited, _ := repo.List(ctx, secondary.ChangeLogFilters{Limit: 1})
	if len(limited) != 1 {
		t.Errorf("expected limit to apply, got %d", len(limited))
	}

	pruned, err := repo.PruneOlderThan(ctx, 30)
	if err != nil {
		t.Fatalf("PruneOlderThan failed: %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}
}
