package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/kanban/internal/ctxutil"
	corechecklist "github.com/example/kanban/internal/core/checklist"
	corefilter "github.com/example/kanban/internal/core/filter"
	coretask "github.com/example/kanban/internal/core/task"
	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/primary"
	"github.com/example/kanban/internal/ports/secondary"
)

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	columnRepo    secondary.ColumnRepository
	taskRepo      secondary.TaskRepository
	labelRepo     secondary.LabelRepository
	checklistRepo secondary.ChecklistRepository
	loader        boardLoader
	labels        labelWriter
	checklists    checklistWriter
	changes       changeRecorder
}

// NewTaskService creates a new TaskService with injected dependencies.
func NewTaskService(
	columnRepo secondary.ColumnRepository,
	taskRepo secondary.TaskRepository,
	labelRepo secondary.LabelRepository,
	checklistRepo secondary.ChecklistRepository,
	logWriter secondary.LogWriter,
	logger *zap.Logger,
) *TaskServiceImpl {
	changes := newChangeRecorder(logWriter, logger)
	return &TaskServiceImpl{
		columnRepo:    columnRepo,
		taskRepo:      taskRepo,
		labelRepo:     labelRepo,
		checklistRepo: checklistRepo,
		loader: boardLoader{
			columnRepo:    columnRepo,
			taskRepo:      taskRepo,
			labelRepo:     labelRepo,
			checklistRepo: checklistRepo,
		},
		labels:     labelWriter{labelRepo: labelRepo, taskRepo: taskRepo, changes: changes},
		checklists: checklistWriter{checklistRepo: checklistRepo, changes: changes},
		changes:    changes,
	}
}

// validateNewTask runs the creation guards for a task about to be inserted.
func validateNewTask(columnID string, columnExists bool, title, date, imageURL string) error {
	r := coretask.CanCreateTask(coretask.CreateTaskContext{
		ColumnID:     columnID,
		ColumnExists: columnExists,
		Title:        title,
		Date:         date,
	})
	if !r.Allowed {
		if !columnExists {
			return missing(r.Reason)
		}
		return invalid(r.Reason)
	}
	if imageURL != "" {
		if r := coretask.CanUpdateTask(coretask.UpdateTaskContext{ImageURL: &imageURL}); !r.Allowed {
			return invalid(r.Reason)
		}
	}
	return nil
}

// CreateTask creates a task at the end of the board order.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, req primary.CreateTaskRequest) (*models.Task, error) {
	column, err := s.columnRepo.GetByID(ctx, req.ColumnID)
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("failed to get column: %w", err)
	}
	if err := validateNewTask(req.ColumnID, column != nil, req.Title, req.Date, req.ImageURL); err != nil {
		return nil, err
	}

	id, err := s.taskRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate task ID: %w", err)
	}
	position, err := s.taskRepo.NextPosition(ctx, column.BoardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task position: %w", err)
	}

	record := &secondary.TaskRecord{
		ID:          id,
		BoardID:     column.BoardID,
		ColumnID:    column.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Date:        req.Date,
		ImageURL:    req.ImageURL,
		Position:    position,
		CreatedBy:   ctxutil.UserFromContext(ctx),
	}
	if err := s.taskRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	s.changes.created(ctx, column.BoardID, models.EntityTask, id)

	for _, name := range req.Labels {
		if err := s.labels.attach(ctx, column.BoardID, id, name); err != nil {
			return nil, err
		}
	}
	if err := s.checklists.createTree(ctx, column.BoardID, id, "", req.Checklist); err != nil {
		return nil, err
	}

	return s.GetTask(ctx, id)
}

// GetTask retrieves a task with labels and checklist.
func (s *TaskServiceImpl) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	record, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task := recordToTask(record)
	names, err := s.taskRepo.LabelNames(ctx, record.BoardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task labels: %w", err)
	}
	task.Labels = labelNamesOrEmpty(names[taskID])

	items, err := s.checklistRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get checklist: %w", err)
	}
	flat := make([]*models.ChecklistItem, len(items))
	for i, r := range items {
		flat[i] = recordToChecklistItem(r)
	}
	task.Checklist = corechecklist.BuildTree(flat)
	if task.Checklist == nil {
		task.Checklist = []*models.ChecklistItem{}
	}
	return task, nil
}

// ListTasks lists the tasks of a board matching the filters, newest first.
func (s *TaskServiceImpl) ListTasks(ctx context.Context, filters primary.TaskFilters) ([]*models.Task, error) {
	if filters.BoardID == "" {
		return nil, invalid("board ID is required")
	}

	content, err := s.loader.load(ctx, filters.BoardID)
	if err != nil {
		return nil, err
	}

	return corefilter.Apply(content.tasks, corefilter.Criteria{
		ColumnID: filters.ColumnID,
		Query:    filters.Query,
		Tags:     filters.Tags,
	}), nil
}

// UpdateTask applies a partial update.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, req primary.UpdateTaskRequest) error {
	r := coretask.CanUpdateTask(coretask.UpdateTaskContext{
		TaskID:   req.TaskID,
		Title:    req.Title,
		Date:     req.Date,
		ImageURL: req.ImageURL,
	})
	if !r.Allowed {
		return invalid(r.Reason)
	}

	record, err := s.taskRepo.GetByID(ctx, req.TaskID)
	if err != nil {
		return err
	}
	before := *record

	if req.Title != nil {
		record.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		record.Description = *req.Description
	}
	if req.Date != nil {
		record.Date = *req.Date
	}
	if req.ImageURL != nil {
		record.ImageURL = *req.ImageURL
	}

	if err := s.taskRepo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	s.changes.updated(ctx, record.BoardID, models.EntityTask, record.ID, "title", before.Title, record.Title)
	s.changes.updated(ctx, record.BoardID, models.EntityTask, record.ID, "description", before.Description, record.Description)
	s.changes.updated(ctx, record.BoardID, models.EntityTask, record.ID, "date", before.Date, record.Date)
	s.changes.updated(ctx, record.BoardID, models.EntityTask, record.ID, "image_url", before.ImageURL, record.ImageURL)
	return nil
}

// MoveTask moves a task to another column of the same board.
func (s *TaskServiceImpl) MoveTask(ctx context.Context, taskID, columnID string) error {
	record, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}

	column, err := s.columnRepo.GetByID(ctx, columnID)
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to get column: %w", err)
	}

	guardCtx := coretask.MoveTaskContext{
		TaskID:       taskID,
		TaskBoardID:  record.BoardID,
		ColumnID:     columnID,
		ColumnExists: column != nil,
	}
	if column != nil {
		guardCtx.ColumnBoardID = column.BoardID
	}
	if r := coretask.CanMoveTask(guardCtx); !r.Allowed {
		if column == nil {
			return missing(r.Reason)
		}
		return invalid(r.Reason)
	}

	if record.ColumnID == columnID {
		return nil
	}
	oldColumn := record.ColumnID
	record.ColumnID = columnID
	if err := s.taskRepo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to move task: %w", err)
	}

	s.changes.updated(ctx, record.BoardID, models.EntityTask, taskID, "column_id", oldColumn, columnID)
	return nil
}

// ReorderTasks moves activeID to overID's slot when both share a column.
// Anything else is reported as a no-op rather than an error.
func (s *TaskServiceImpl) ReorderTasks(ctx context.Context, activeID, overID string) (*primary.ReorderResult, error) {
	active, err := s.lookup(ctx, activeID)
	if err != nil {
		return nil, err
	}
	over, err := s.lookup(ctx, overID)
	if err != nil {
		return nil, err
	}

	guardCtx := coretask.ReorderContext{
		ActiveID:     activeID,
		OverID:       overID,
		ActiveExists: active != nil,
		OverExists:   over != nil,
	}
	if active != nil {
		guardCtx.ActiveColumnID = active.ColumnID
	}
	if over != nil {
		guardCtx.OverColumnID = over.ColumnID
	}
	if r := coretask.CanReorderTasks(guardCtx); !r.Allowed {
		return &primary.ReorderResult{Moved: false, Reason: r.Reason}, nil
	}

	records, err := s.taskRepo.List(ctx, secondary.TaskFilters{BoardID: active.BoardID})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	order := make([]string, len(records))
	for i, r := range records {
		order[i] = r.ID
	}

	reordered, moved := coretask.Reorder(order, activeID, overID)
	if !moved {
		return &primary.ReorderResult{Moved: false, Reason: "task is already in place"}, nil
	}
	if err := s.taskRepo.SetPositions(ctx, active.BoardID, reordered); err != nil {
		return nil, fmt.Errorf("failed to reorder tasks: %w", err)
	}

	s.changes.updated(ctx, active.BoardID, models.EntityTask, activeID, "position",
		fmt.Sprint(active.Position), fmt.Sprint(indexOf(reordered, activeID)))
	return &primary.ReorderResult{Moved: true}, nil
}

// lookup returns nil without error when the task does not exist.
func (s *TaskServiceImpl) lookup(ctx context.Context, taskID string) (*secondary.TaskRecord, error) {
	record, err := s.taskRepo.GetByID(ctx, taskID)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return record, nil
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// DeleteTask deletes a task.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, taskID string) error {
	record, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	s.changes.deleted(ctx, record.BoardID, models.EntityTask, taskID)
	return nil
}

// Ensure TaskServiceImpl implements the interface
var _ primary.TaskService = (*TaskServiceImpl)(nil)
