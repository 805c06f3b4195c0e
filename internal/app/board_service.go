package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/kanban/internal/ctxutil"
	coreboard "github.com/example/kanban/internal/core/board"
	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/primary"
	"github.com/example/kanban/internal/ports/secondary"
)

// BoardServiceImpl implements the BoardService interface.
type BoardServiceImpl struct {
	boardRepo     secondary.BoardRepository
	columnRepo    secondary.ColumnRepository
	taskRepo      secondary.TaskRepository
	labelRepo     secondary.LabelRepository
	checklistRepo secondary.ChecklistRepository
	stateStore    secondary.WorkspaceStateStore
	loader        boardLoader
	changes       changeRecorder

	// memberScoped restricts reads to boards the acting user belongs to (cloud mode).
	memberScoped bool
}

// BoardServiceDeps groups the collaborators of BoardServiceImpl.
type BoardServiceDeps struct {
	BoardRepo     secondary.BoardRepository
	ColumnRepo    secondary.ColumnRepository
	TaskRepo      secondary.TaskRepository
	LabelRepo     secondary.LabelRepository
	ChecklistRepo secondary.ChecklistRepository
	StateStore    secondary.WorkspaceStateStore
	LogWriter     secondary.LogWriter
	Logger        *zap.Logger
	MemberScoped  bool
}

// NewBoardService creates a new BoardService with injected dependencies.
func NewBoardService(deps BoardServiceDeps) *BoardServiceImpl {
	return &BoardServiceImpl{
		boardRepo:     deps.BoardRepo,
		columnRepo:    deps.ColumnRepo,
		taskRepo:      deps.TaskRepo,
		labelRepo:     deps.LabelRepo,
		checklistRepo: deps.ChecklistRepo,
		stateStore:    deps.StateStore,
		loader: boardLoader{
			columnRepo:    deps.ColumnRepo,
			taskRepo:      deps.TaskRepo,
			labelRepo:     deps.LabelRepo,
			checklistRepo: deps.ChecklistRepo,
		},
		changes:      newChangeRecorder(deps.LogWriter, deps.Logger),
		memberScoped: deps.MemberScoped,
	}
}

// EnsureDefaultBoard returns the default board, creating it with the
// default columns when the store is empty.
func (s *BoardServiceImpl) EnsureDefaultBoard(ctx context.Context) (*models.Board, error) {
	record, err := s.boardRepo.GetDefault(ctx)
	if err == nil {
		return recordToBoard(record), nil
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("failed to get default board: %w", err)
	}
	return s.createBoard(ctx, models.DefaultBoardName, true)
}

// CreateBoard creates a board with the default columns and selects it.
func (s *BoardServiceImpl) CreateBoard(ctx context.Context, name string) (*models.Board, error) {
	board, err := s.createBoard(ctx, name, false)
	if err != nil {
		return nil, err
	}
	if err := s.setSelected(board.ID); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *BoardServiceImpl) createBoard(ctx context.Context, name string, isDefault bool) (*models.Board, error) {
	name = strings.TrimSpace(name)
	if r := coreboard.ValidateName("board", name); !r.Allowed {
		return nil, invalid(r.Reason)
	}

	board, err := s.insertBoard(ctx, name, isDefault)
	if err != nil {
		return nil, err
	}

	for i, title := range models.DefaultColumnTitles {
		if _, err := s.insertColumn(ctx, board.ID, title, i); err != nil {
			return nil, err
		}
	}

	return recordToBoard(board), nil
}

// insertBoard persists a board and makes the acting user its owner.
func (s *BoardServiceImpl) insertBoard(ctx context.Context, name string, isDefault bool) (*secondary.BoardRecord, error) {
	id, err := s.boardRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate board ID: %w", err)
	}

	userID := ctxutil.UserOrLocal(ctx)
	record := &secondary.BoardRecord{
		ID:        id,
		Name:      name,
		OwnerID:   userID,
		IsDefault: isDefault,
	}
	if err := s.boardRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	if err := s.boardRepo.AddMember(ctx, &secondary.MemberRecord{
		BoardID: id,
		UserID:  userID,
		Role:    models.RoleOwner,
	}); err != nil {
		return nil, fmt.Errorf("failed to add board owner: %w", err)
	}

	s.changes.created(ctx, id, models.EntityBoard, id)
	return record, nil
}

func (s *BoardServiceImpl) insertColumn(ctx context.Context, boardID, title string, position int) (*secondary.ColumnRecord, error) {
	id, err := s.columnRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate column ID: %w", err)
	}
	record := &secondary.ColumnRecord{ID: id, BoardID: boardID, Title: title, Position: position}
	if err := s.columnRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}
	s.changes.created(ctx, boardID, models.EntityColumn, id)
	return record, nil
}

// GetBoard retrieves a board by ID.
func (s *BoardServiceImpl) GetBoard(ctx context.Context, boardID string) (*models.Board, error) {
	record, err := s.visibleBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return recordToBoard(record), nil
}

// visibleBoard loads a board, hiding it from non-members when member scoped.
func (s *BoardServiceImpl) visibleBoard(ctx context.Context, boardID string) (*secondary.BoardRecord, error) {
	record, err := s.boardRepo.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if !s.memberScoped {
		return record, nil
	}
	if _, err := s.boardRepo.GetMember(ctx, boardID, ctxutil.UserOrLocal(ctx)); err != nil {
		if isNotFound(err) {
			return nil, missing(fmt.Sprintf("board %s not found", boardID))
		}
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	return record, nil
}

// ListBoards lists the boards visible to the acting user.
func (s *BoardServiceImpl) ListBoards(ctx context.Context) ([]*models.Board, error) {
	filters := secondary.BoardFilters{}
	if s.memberScoped {
		filters.MemberID = ctxutil.UserOrLocal(ctx)
	}

	records, err := s.boardRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}

	boards := make([]*models.Board, len(records))
	for i, r := range records {
		boards[i] = recordToBoard(r)
	}
	return boards, nil
}

// RenameBoard changes a board's name.
func (s *BoardServiceImpl) RenameBoard(ctx context.Context, boardID, name string) error {
	name = strings.TrimSpace(name)
	if r := coreboard.ValidateName("board", name); !r.Allowed {
		return invalid(r.Reason)
	}
	return s.updateBoard(ctx, boardID, func(b *secondary.BoardRecord) (string, string, string) {
		old := b.Name
		b.Name = name
		return "name", old, name
	})
}

// SetCalendarURL stores the calendar embed URL of a board.
func (s *BoardServiceImpl) SetCalendarURL(ctx context.Context, boardID, url string) error {
	url = strings.TrimSpace(url)
	if err := validateCalendar(url); err != nil {
		return err
	}
	return s.updateBoard(ctx, boardID, func(b *secondary.BoardRecord) (string, string, string) {
		old := b.CalendarURL
		b.CalendarURL = url
		return "google_calendar_url", old, url
	})
}

// ClearCalendarURL removes the calendar embed URL of a board.
func (s *BoardServiceImpl) ClearCalendarURL(ctx context.Context, boardID string) error {
	return s.updateBoard(ctx, boardID, func(b *secondary.BoardRecord) (string, string, string) {
		old := b.CalendarURL
		b.CalendarURL = ""
		return "google_calendar_url", old, ""
	})
}

// SetWeatherLocation stores the weather widget location of a board.
func (s *BoardServiceImpl) SetWeatherLocation(ctx context.Context, boardID, location string) error {
	location = strings.TrimSpace(location)
	if r := coreboard.ValidateName("location", location); !r.Allowed {
		return invalid(r.Reason)
	}
	return s.updateBoard(ctx, boardID, func(b *secondary.BoardRecord) (string, string, string) {
		old := b.WeatherLocation
		b.WeatherLocation = location
		return "weather_location", old, location
	})
}

// ClearWeatherLocation removes the weather widget location of a board.
func (s *BoardServiceImpl) ClearWeatherLocation(ctx context.Context, boardID string) error {
	return s.updateBoard(ctx, boardID, func(b *secondary.BoardRecord) (string, string, string) {
		old := b.WeatherLocation
		b.WeatherLocation = ""
		return "weather_location", old, ""
	})
}

// updateBoard loads a board, applies mutate and persists it. mutate reports
// the changed field with its old and new value for the change log.
func (s *BoardServiceImpl) updateBoard(ctx context.Context, boardID string, mutate func(*secondary.BoardRecord) (string, string, string)) error {
	record, err := s.boardRepo.GetByID(ctx, boardID)
	if err != nil {
		return err
	}

	field, oldValue, newValue := mutate(record)
	if err := s.boardRepo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to update board: %w", err)
	}

	s.changes.updated(ctx, boardID, models.EntityBoard, boardID, field, oldValue, newValue)
	return nil
}

// DeleteBoard deletes a board and moves the selection off it.
func (s *BoardServiceImpl) DeleteBoard(ctx context.Context, boardID string) error {
	record, err := s.boardRepo.GetByID(ctx, boardID)
	if err != nil {
		return err
	}

	userID := ctxutil.UserOrLocal(ctx)
	guardCtx := coreboard.DeleteBoardContext{
		BoardID:   boardID,
		IsDefault: record.IsDefault,
		IsOwner:   record.OwnerID == "" || record.OwnerID == userID,
	}
	if r := coreboard.CanDeleteBoard(guardCtx); !r.Allowed {
		if record.IsDefault {
			return invalid(r.Reason)
		}
		return forbidden(r.Reason)
	}

	if err := s.boardRepo.Delete(ctx, boardID); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	s.changes.deleted(ctx, boardID, models.EntityBoard, boardID)

	return s.reselectAfterDelete(ctx, boardID)
}

func (s *BoardServiceImpl) reselectAfterDelete(ctx context.Context, deletedID string) error {
	if s.stateStore == nil {
		return nil
	}
	state, err := s.stateStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load workspace state: %w", err)
	}

	defaultID := ""
	if def, err := s.boardRepo.GetDefault(ctx); err == nil {
		defaultID = def.ID
	}
	remaining, err := s.ListBoards(ctx)
	if err != nil {
		return err
	}
	ids := make([]string, len(remaining))
	for i, b := range remaining {
		ids[i] = b.ID
	}

	next := coreboard.NextSelection(state.SelectedBoard, deletedID, defaultID, ids)
	if next == state.SelectedBoard {
		return nil
	}
	state.SelectedBoard = next
	if err := s.stateStore.Save(state); err != nil {
		return fmt.Errorf("failed to save workspace state: %w", err)
	}
	return nil
}

// SelectBoard makes a board the current one.
func (s *BoardServiceImpl) SelectBoard(ctx context.Context, boardID string) error {
	if _, err := s.boardRepo.GetByID(ctx, boardID); err != nil {
		return err
	}
	return s.setSelected(boardID)
}

func (s *BoardServiceImpl) setSelected(boardID string) error {
	if s.stateStore == nil {
		return nil
	}
	state, err := s.stateStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load workspace state: %w", err)
	}
	state.SelectedBoard = boardID
	if err := s.stateStore.Save(state); err != nil {
		return fmt.Errorf("failed to save workspace state: %w", err)
	}
	return nil
}

// CurrentBoard resolves the selected board, falling back to the default.
func (s *BoardServiceImpl) CurrentBoard(ctx context.Context) (*models.Board, error) {
	if s.stateStore != nil {
		state, err := s.stateStore.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load workspace state: %w", err)
		}
		if state.SelectedBoard != "" {
			record, err := s.boardRepo.GetByID(ctx, state.SelectedBoard)
			if err == nil {
				return recordToBoard(record), nil
			}
			if !isNotFound(err) {
				return nil, err
			}
		}
	}

	record, err := s.boardRepo.GetDefault(ctx)
	if err == nil {
		return recordToBoard(record), nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	boards, err := s.ListBoards(ctx)
	if err != nil {
		return nil, err
	}
	if len(boards) == 0 {
		return nil, missing("no boards exist (run 'kanban init')")
	}
	return boards[0], nil
}

// GetBoardView loads a board with columns, tasks, labels and checklists.
func (s *BoardServiceImpl) GetBoardView(ctx context.Context, boardID string) (*primary.BoardView, error) {
	record, err := s.visibleBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	content, err := s.loader.load(ctx, boardID)
	if err != nil {
		return nil, err
	}

	view := &primary.BoardView{
		Board:   recordToBoard(record),
		Columns: make([]*primary.ColumnView, len(content.columns)),
		Labels:  content.labels,
	}
	byColumn := make(map[string]*primary.ColumnView, len(content.columns))
	for i, c := range content.columns {
		cv := &primary.ColumnView{Column: c, Tasks: []*models.Task{}}
		view.Columns[i] = cv
		byColumn[c.ID] = cv
	}
	for _, t := range content.tasks {
		if cv, ok := byColumn[t.ColumnID]; ok {
			cv.Tasks = append(cv.Tasks, t)
		}
	}
	return view, nil
}

// Ensure BoardServiceImpl implements the interface
var _ primary.BoardService = (*BoardServiceImpl)(nil)

func validateCalendar(url string) error {
	if r := coreboard.ValidateCalendarURL(url); !r.Allowed {
		return invalid(r.Reason)
	}
	return nil
}
