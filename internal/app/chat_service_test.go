package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/secondary"
)

// fakeCompleter records requests and answers with reply or err.
type fakeCompleter struct {
	reply    string
	err      error
	requests []secondary.ChatRequest
}

func (f *fakeCompleter) Complete(ctx context.Context, req secondary.ChatRequest) (string, error) {
	f.requests = append(f.requests, req)
	return f.reply, f.err
}

func newChatService(env *testEnv, completer secondary.ChatCompleter) *ChatServiceImpl {
	svc := NewChatService(ChatServiceDeps{
		BoardRepo:     env.boardRepo,
		ColumnRepo:    env.columnRepo,
		TaskRepo:      env.taskRepo,
		LabelRepo:     env.labelRepo,
		ChecklistRepo: env.checklistRepo,
		ChatRepo:      env.chatRepo,
		Completer:     completer,
		SystemPrompt:  "You help with a kanban board.",
	})
	svc.now = func() time.Time { return time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestChatService_SendMessage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	boardID, cols := env.mustDefaultBoard(t)
	env.mustTask(t, cols[0], "Pay rent")
	env.mustTask(t, cols[2], "File taxes")

	completer := &fakeCompleter{reply: "  You have one open task.  "}
	svc := newChatService(env, completer)

	exchange, err := svc.SendMessage(ctx, boardID, "What is left?")
	require.NoError(t, err)
	assert.False(t, exchange.Fallback)
	assert.Equal(t, "What is left?", exchange.Question.Content)
	assert.Equal(t, models.SenderUser, exchange.Question.Sender)
	assert.Equal(t, "You have one open task.", exchange.Answer.Content)
	assert.Equal(t, models.SenderAI, exchange.Answer.Sender)

	require.Len(t, completer.requests, 1)
	req := completer.requests[0]
	assert.Equal(t, "You help with a kanban board.", req.SystemPrompt)
	assert.Equal(t, "What is left?", req.Message)
	assert.Empty(t, req.History)

	var boardCtx models.ChatContext
	require.NoError(t, json.Unmarshal([]byte(req.Context), &boardCtx))
	assert.Equal(t, models.DefaultBoardName, boardCtx.DashboardName)
	assert.Equal(t, 2, boardCtx.Stats.TotalTasks)
	assert.Equal(t, 1, boardCtx.Stats.CompletedTasks)

	msgs, err := svc.ListMessages(ctx, boardID)
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
}

func TestChatService_HistoryWindow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	boardID, _ := env.mustDefaultBoard(t)
	completer := &fakeCompleter{reply: "ok"}
	svc := newChatService(env, completer)

	for _, q := range []string{"one", "two", "three", "four"} {
		_, err := svc.SendMessage(ctx, boardID, q)
		require.NoError(t, err)
	}

	require.Len(t, completer.requests, 4)
	assert.Len(t, completer.requests[1].History, 2)
	last := completer.requests[3].History
	require.Len(t, last, DefaultChatHistory)
	assert.Equal(t, "assistant", last[0].Role, "oldest turn is dropped first")
	assert.Equal(t, "user", last[1].Role)
	assert.Equal(t, "two", last[1].Content)
	assert.Equal(t, "assistant", last[4].Role)
}

func TestChatService_Fallback(t *testing.T) {
	tests := []struct {
		name      string
		completer secondary.ChatCompleter
	}{
		{"no completer", nil},
		{"completer error", &fakeCompleter{err: errors.New("quota exceeded")}},
		{"empty reply", &fakeCompleter{reply: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			boardID, _ := env.mustDefaultBoard(t)
			svc := newChatService(env, tt.completer)

			exchange, err := svc.SendMessage(context.Background(), boardID, "hello")
			require.NoError(t, err)
			assert.True(t, exchange.Fallback)
			assert.Equal(t, models.ChatFallbackReply, exchange.Answer.Content)
		})
	}
}

func TestChatService_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	boardID, _ := env.mustDefaultBoard(t)
	svc := newChatService(env, &fakeCompleter{reply: "ok"})

	_, err := svc.SendMessage(ctx, boardID, "   ")
	assert.ErrorIs(t, err, models.ErrInvalid)

	_, err = svc.SendMessage(ctx, "BOARD-999", "hi")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestChatService_ClearMessages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	boardID, _ := env.mustDefaultBoard(t)
	svc := newChatService(env, &fakeCompleter{reply: "ok"})

	_, err := svc.SendMessage(ctx, boardID, "hi")
	require.NoError(t, err)

	n, err := svc.ClearMessages(ctx, boardID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	msgs, _ := svc.ListMessages(ctx, boardID)
	assert.Empty(t, msgs)
}
