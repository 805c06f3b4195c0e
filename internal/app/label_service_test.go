package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/primary"
)

func labelNames(labels []*models.Label) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = l.Name
	}
	return out
}

func TestLabelService_UpsertLabel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	boardID, _ := env.mustDefaultBoard(t)

	label, err := env.labels.UpsertLabel(ctx, boardID, "work", "")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultLabelColor, label.Color)

	label, err = env.labels.UpsertLabel(ctx, boardID, "work", "#00ff00")
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", label.Color)

	labels, _ := env.labels.ListLabels(ctx, boardID)
	assert.Len(t, labels, 1)

	_, err = env.labels.UpsertLabel(ctx, boardID, "work", "green")
	assert.ErrorIs(t, err, models.ErrInvalid)
	_, err = env.labels.UpsertLabel(ctx, boardID, " ", "#00ff00")
	assert.ErrorIs(t, err, models.ErrInvalid)
}

func TestLabelService_UpdateLabel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	boardID, cols := env.mustDefaultBoard(t)
	id := env.mustTask(t, cols[0], "tagged", "wrk")
	_, err := env.labels.UpsertLabel(ctx, boardID, "home", "")
	require.NoError(t, err)

	renamed, err := env.labels.UpdateLabel(ctx, primary.UpdateLabelRequest{
		BoardID: boardID,
		Name:    "wrk",
		NewName: strPtr("work"),
		Color:   strPtr("#123456"),
	})
	require.NoError(t, err)
	assert.Equal(t, "work", renamed.Name)
	assert.Equal(t, "#123456", renamed.Color)

	task, _ := env.tasks.GetTask(ctx, id)
	assert.Equal(t, []string{"work"}, task.Labels, "task links follow the rename")

	_, err = env.labels.UpdateLabel(ctx, primary.UpdateLabelRequest{BoardID: boardID, Name: "work", NewName: strPtr("home")})
	assert.ErrorIs(t, err, models.ErrConflict)

	_, err = env.labels.UpdateLabel(ctx, primary.UpdateLabelRequest{BoardID: boardID, Name: "nope", NewName: strPtr("x")})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestLabelService_Pinning(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	boardID, cols := env.mustDefaultBoard(t)
	env.mustTask(t, cols[0], "one", "busy")
	env.mustTask(t, cols[0], "two", "busy")
	_, err := env.labels.UpsertLabel(ctx, boardID, "idle", "")
	require.NoError(t, err)

	labels, _ := env.labels.ListLabels(ctx, boardID)
	assert.Equal(t, []string{"busy", "idle"}, labelNames(labels))

	require.NoError(t, env.labels.PinLabel(ctx, boardID, "idle"))
	labels, _ = env.labels.ListLabels(ctx, boardID)
	assert.Equal(t, []string{"idle", "busy"}, labelNames(labels))

	pinned, err := env.labels.TogglePin(ctx, boardID, "idle")
	require.NoError(t, err)
	assert.False(t, pinned)

	pinned, err = env.labels.TogglePin(ctx, boardID, "busy")
	require.NoError(t, err)
	assert.True(t, pinned)

	require.NoError(t, env.labels.UnpinLabel(ctx, boardID, "busy"))
	assert.ErrorIs(t, env.labels.PinLabel(ctx, boardID, "ghost"), models.ErrNotFound)
}

func TestLabelService_TaskLinks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	boardID, cols := env.mustDefaultBoard(t)
	id := env.mustTask(t, cols[0], "task")

	require.NoError(t, env.labels.AddLabelToTask(ctx, id, "new"))
	require.NoError(t, env.labels.AddLabelToTask(ctx, id, "new"))

	label, err := env.labelRepo.GetByName(ctx, boardID, "new")
	require.NoError(t, err)
	assert.Equal(t, 1, label.UsageCount)

	require.NoError(t, env.labels.RemoveLabelFromTask(ctx, id, "new"))
	task, _ := env.tasks.GetTask(ctx, id)
	assert.Empty(t, task.Labels)

	assert.ErrorIs(t, env.labels.AddLabelToTask(ctx, "TASK-999", "x"), models.ErrNotFound)
	assert.ErrorIs(t, env.labels.RemoveLabelFromTask(ctx, id, "ghost"), models.ErrNotFound)
}

func TestLabelService_DeleteLabel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	boardID, cols := env.mustDefaultBoard(t)
	id := env.mustTask(t, cols[0], "task", "doomed", "kept")

	require.NoError(t, env.labels.DeleteLabel(ctx, boardID, "doomed"))

	task, _ := env.tasks.GetTask(ctx, id)
	assert.Equal(t, []string{"kept"}, task.Labels)
	assert.ErrorIs(t, env.labels.DeleteLabel(ctx, boardID, "doomed"), models.ErrNotFound)
}
