package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/example/kanban/internal/adapters/sqlite"
	"github.com/example/kanban/internal/ports/secondary"
)

func TestChatRepository_ListReturnsTailInOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewChatRepository(db)
	ctx := context.Background()
	seedBoard(t, db, "BOARD-001", "Main", true)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"m1", "m2", "m3", "m4"} {
		sender := "user"
		if i%2 == 1 {
			sender = "ai"
		}
		err := repo.Create(ctx, &secondary.ChatMessageRecord{
			ID: id, BoardID: "BOARD-001", Sender: sender, Content: id, Timestamp: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	all, err := repo.List(ctx, "BOARD-001", 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 4 || all[0].ID != "m1" || all[3].ID != "m4" {
		t.Errorf("unexpected history %+v", all)
	}

	tail, _ := repo.List(ctx, "BOARD-001", 2)
	if len(tail) != 2 || tail[0].ID != "m3" || tail[1].ID != "m4" {
		t.Errorf("unexpected tail %+v", tail)
	}

	n, err := repo.DeleteByBoard(ctx, "BOARD-001")
	if err != nil || n != 4 {
		t.Errorf("DeleteByBoard = %d, %v", n, err)
	}
}
