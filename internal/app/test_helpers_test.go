package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/example/kanban/internal/adapters/sqlite"
	"github.com/example/kanban/internal/ctxutil"
	"github.com/example/kanban/internal/db"
	"github.com/example/kanban/internal/ports/primary"
	"github.com/example/kanban/internal/ports/secondary"
)

// testEnv wires every service over a throwaway SQLite file.
type testEnv struct {
	boardRepo     *sqlite.BoardRepository
	columnRepo    *sqlite.ColumnRepository
	taskRepo      *sqlite.TaskRepository
	labelRepo     *sqlite.LabelRepository
	checklistRepo *sqlite.ChecklistRepository
	chatRepo      *sqlite.ChatRepository
	logRepo       *sqlite.ChangeLogRepository
	state         *memoryStateStore

	boards     *BoardServiceImpl
	columns    *ColumnServiceImpl
	tasks      *TaskServiceImpl
	labels     *LabelServiceImpl
	checklists *ChecklistServiceImpl
	sharing    *SharingServiceImpl
	logs       *LogServiceImpl
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn, err := db.Open(filepath.Join(t.TempDir(), "kanban.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	env := &testEnv{
		boardRepo:     sqlite.NewBoardRepository(conn),
		columnRepo:    sqlite.NewColumnRepository(conn),
		taskRepo:      sqlite.NewTaskRepository(conn),
		labelRepo:     sqlite.NewLabelRepository(conn),
		checklistRepo: sqlite.NewChecklistRepository(conn),
		chatRepo:      sqlite.NewChatRepository(conn),
		logRepo:       sqlite.NewChangeLogRepository(conn),
		state:         &memoryStateStore{},
	}
	writer := sqlite.NewLogWriterAdapter(env.logRepo)
	logger := zap.NewNop()

	env.boards = NewBoardService(BoardServiceDeps{
		BoardRepo:     env.boardRepo,
		ColumnRepo:    env.columnRepo,
		TaskRepo:      env.taskRepo,
		LabelRepo:     env.labelRepo,
		ChecklistRepo: env.checklistRepo,
		StateStore:    env.state,
		LogWriter:     writer,
		Logger:        logger,
	})
	env.columns = NewColumnService(env.boardRepo, env.columnRepo, writer, logger)
	env.tasks = NewTaskService(env.columnRepo, env.taskRepo, env.labelRepo, env.checklistRepo, writer, logger)
	env.labels = NewLabelService(env.labelRepo, env.taskRepo, writer, logger)
	env.checklists = NewChecklistService(env.checklistRepo, env.taskRepo, writer, logger)
	env.sharing = NewSharingService(env.boardRepo, writer, logger)
	env.logs = NewLogService(env.logRepo)
	return env
}

// userCtx returns a context acting as userID.
func userCtx(userID string) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

// mustDefaultBoard creates the default board and returns its columns.
func (e *testEnv) mustDefaultBoard(t *testing.T) (string, []string) {
	t.Helper()
	ctx := context.Background()
	board, err := e.boards.EnsureDefaultBoard(ctx)
	if err != nil {
		t.Fatalf("EnsureDefaultBoard failed: %v", err)
	}
	cols, err := e.columns.ListColumns(ctx, board.ID)
	if err != nil {
		t.Fatalf("ListColumns failed: %v", err)
	}
	ids := make([]string, len(cols))
	for i, c := range cols {
		ids[i] = c.ID
	}
	return board.ID, ids
}

// mustTask creates a task with the given title in columnID.
func (e *testEnv) mustTask(t *testing.T, columnID, title string, labels ...string) string {
	t.Helper()
	task, err := e.tasks.CreateTask(context.Background(), primary.CreateTaskRequest{
		ColumnID: columnID,
		Title:    title,
		Labels:   labels,
	})
	if err != nil {
		t.Fatalf("CreateTask(%q) failed: %v", title, err)
	}
	return task.ID
}

// memoryStateStore implements secondary.WorkspaceStateStore in memory.
type memoryStateStore struct {
	state   secondary.WorkspaceState
	saves   int
	loadErr error
}

func (m *memoryStateStore) Load() (*secondary.WorkspaceState, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	copied := m.state
	return &copied, nil
}

func (m *memoryStateStore) Save(state *secondary.WorkspaceState) error {
	m.state = *state
	m.saves++
	return nil
}

var _ secondary.WorkspaceStateStore = (*memoryStateStore)(nil)

// failingLogWriter implements secondary.LogWriter and always fails.
type failingLogWriter struct {
	calls int
}

func (f *failingLogWriter) LogCreate(ctx context.Context, boardID, entityType, entityID string) error {
	f.calls++
	return errors.New("log store unavailable")
}

func (f *failingLogWriter) LogUpdate(ctx context.Context, boardID, entityType, entityID, fieldName, oldValue, newValue string) error {
	f.calls++
	return errors.New("log store unavailable")
}

func (f *failingLogWriter) LogDelete(ctx context.Context, boardID, entityType, entityID string) error {
	f.calls++
	return errors.New("log store unavailable")
}

var _ secondary.LogWriter = (*failingLogWriter)(nil)
