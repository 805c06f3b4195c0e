package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/kanban/internal/adapters/postgres"
	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/secondary"
)

// openStore connects to the database named by KANBAN_TEST_POSTGRES_DSN and
// truncates every table. Tests are skipped when it is unset.
func openStore(t *testing.T) *postgres.Store {
	t.Helper()
	dsn := os.Getenv("KANBAN_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("KANBAN_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	store, err := postgres.Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	require.NoError(t, store.Truncate(ctx))
	return store
}

func TestStore_BoardLifecycle(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	id, err := store.Boards.GetNextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "BOARD-001", id)

	require.NoError(t, store.Boards.Create(ctx, &secondary.BoardRecord{ID: id, Name: "Main", OwnerID: "alice", IsDefault: true}))
	require.NoError(t, store.Boards.AddMember(ctx, &secondary.MemberRecord{BoardID: id, UserID: "alice", Role: models.RoleOwner}))
	require.NoError(t, store.Columns.Create(ctx, &secondary.ColumnRecord{ID: "COL-001", BoardID: id, Title: "To Do"}))
	require.NoError(t, store.Tasks.Create(ctx, &secondary.TaskRecord{ID: "TASK-001", BoardID: id, ColumnID: "COL-001", Title: "a"}))
	require.NoError(t, store.Labels.Create(ctx, &secondary.LabelRecord{ID: "LABEL-001", BoardID: id, Name: "bug", Color: "#ff0000"}))

	err = store.Labels.Create(ctx, &secondary.LabelRecord{ID: "LABEL-002", BoardID: id, Name: "bug", Color: "#ff0000"})
	assert.True(t, errors.Is(err, models.ErrConflict))

	added, err := store.Tasks.AttachLabel(ctx, "TASK-001", "LABEL-001")
	require.NoError(t, err)
	assert.True(t, added)

	names, err := store.Tasks.LabelNames(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"bug"}, names["TASK-001"])

	boards, err := store.Boards.List(ctx, secondary.BoardFilters{MemberID: "alice"})
	require.NoError(t, err)
	assert.Len(t, boards, 1)

	require.NoError(t, store.Boards.Delete(ctx, id))
	_, err = store.Tasks.GetByID(ctx, "TASK-001")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestStore_GetNextIDIsUniqueUnderConcurrency(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	const callers = 16
	ids := make([]string, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], errs[i] = store.Tasks.GetNextID(ctx)
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, callers)
	for i, id := range ids {
		require.NoError(t, errs[i])
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.True(t, seen["TASK-001"])
	assert.True(t, seen["TASK-016"])
}

func TestStore_GetNextIDFollowsStoredRows(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Boards.Create(ctx, &secondary.BoardRecord{ID: "BOARD-007", Name: "Imported"}))

	id, err := store.Boards.GetNextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "BOARD-008", id)

	id, err = store.Boards.GetNextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "BOARD-009", id, "a reserved id is never handed out twice")
}
