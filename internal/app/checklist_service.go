package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	corechecklist "github.com/example/kanban/internal/core/checklist"
	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/primary"
	"github.com/example/kanban/internal/ports/secondary"
)

// checklistWriter creates checklist subtrees for new tasks.
type checklistWriter struct {
	checklistRepo secondary.ChecklistRepository
	changes       changeRecorder
}

// createTree inserts inputs under parentID (empty for top level), recursing
// into children. Items with children are stored as groups.
func (w checklistWriter) createTree(ctx context.Context, boardID, taskID, parentID string, inputs []primary.ChecklistInput) error {
	for i, in := range inputs {
		text := strings.TrimSpace(in.Text)
		if text == "" {
			return invalid("checklist text cannot be empty")
		}
		itemType := in.Type
		if itemType == "" {
			itemType = models.ChecklistTypeItem
			if len(in.Children) > 0 {
				itemType = models.ChecklistTypeGroup
			}
		}
		if itemType != models.ChecklistTypeItem && itemType != models.ChecklistTypeGroup {
			return invalid(fmt.Sprintf("invalid checklist type %q (expected item or group)", itemType))
		}
		if itemType == models.ChecklistTypeItem && len(in.Children) > 0 {
			return invalid(fmt.Sprintf("checklist item %q cannot have children", text))
		}

		id, err := w.checklistRepo.GetNextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate checklist ID: %w", err)
		}
		record := &secondary.ChecklistItemRecord{
			ID:        id,
			TaskID:    taskID,
			ParentID:  parentID,
			Text:      text,
			Completed: in.Completed,
			Type:      itemType,
			Position:  i,
		}
		if err := w.checklistRepo.Create(ctx, record); err != nil {
			return fmt.Errorf("failed to create checklist item: %w", err)
		}
		w.changes.created(ctx, boardID, models.EntityChecklist, id)

		if err := w.createTree(ctx, boardID, taskID, id, in.Children); err != nil {
			return err
		}
	}
	return nil
}

// ChecklistServiceImpl implements the ChecklistService interface.
type ChecklistServiceImpl struct {
	checklistRepo secondary.ChecklistRepository
	taskRepo      secondary.TaskRepository
	changes       changeRecorder
}

// NewChecklistService creates a new ChecklistService with injected dependencies.
func NewChecklistService(
	checklistRepo secondary.ChecklistRepository,
	taskRepo secondary.TaskRepository,
	logWriter secondary.LogWriter,
	logger *zap.Logger,
) *ChecklistServiceImpl {
	return &ChecklistServiceImpl{
		checklistRepo: checklistRepo,
		taskRepo:      taskRepo,
		changes:       newChangeRecorder(logWriter, logger),
	}
}

// AddItem adds an item or group to a task, optionally under a group.
func (s *ChecklistServiceImpl) AddItem(ctx context.Context, req primary.AddChecklistItemRequest) (*models.ChecklistItem, error) {
	if req.Type == "" {
		req.Type = models.ChecklistTypeItem
	}

	task, err := s.taskRepo.GetByID(ctx, req.TaskID)
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	guardCtx := corechecklist.AddItemContext{
		TaskID:     req.TaskID,
		TaskExists: task != nil,
		Text:       req.Text,
		Type:       req.Type,
		ParentID:   req.ParentID,
	}
	if req.ParentID != "" {
		parent, err := s.checklistRepo.GetByID(ctx, req.ParentID)
		if err != nil && !isNotFound(err) {
			return nil, fmt.Errorf("failed to get parent item: %w", err)
		}
		if parent != nil {
			guardCtx.ParentExists = true
			guardCtx.ParentType = parent.Type
			guardCtx.ParentTaskID = parent.TaskID
		}
	}
	if r := corechecklist.CanAddItem(guardCtx); !r.Allowed {
		if task == nil || (req.ParentID != "" && !guardCtx.ParentExists) {
			return nil, missing(r.Reason)
		}
		return nil, invalid(r.Reason)
	}

	id, err := s.checklistRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate checklist ID: %w", err)
	}
	position, err := s.checklistRepo.NextPosition(ctx, req.TaskID, req.ParentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get checklist position: %w", err)
	}

	record := &secondary.ChecklistItemRecord{
		ID:       id,
		TaskID:   req.TaskID,
		ParentID: req.ParentID,
		Text:     strings.TrimSpace(req.Text),
		Type:     req.Type,
		Position: position,
	}
	if err := s.checklistRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create checklist item: %w", err)
	}

	s.changes.created(ctx, task.BoardID, models.EntityChecklist, id)
	return recordToChecklistItem(record), nil
}

// GetChecklist returns the checklist tree of a task.
func (s *ChecklistServiceImpl) GetChecklist(ctx context.Context, taskID string) ([]*models.ChecklistItem, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	flat, err := s.flat(ctx, taskID)
	if err != nil {
		return nil, err
	}
	tree := corechecklist.BuildTree(flat)
	if tree == nil {
		tree = []*models.ChecklistItem{}
	}
	return tree, nil
}

func (s *ChecklistServiceImpl) flat(ctx context.Context, taskID string) ([]*models.ChecklistItem, error) {
	records, err := s.checklistRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist: %w", err)
	}
	items := make([]*models.ChecklistItem, len(records))
	for i, r := range records {
		items[i] = recordToChecklistItem(r)
	}
	return items, nil
}

// UpdateItemText changes the text of an item.
func (s *ChecklistServiceImpl) UpdateItemText(ctx context.Context, itemID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return invalid("checklist text cannot be empty")
	}

	item, boardID, err := s.itemWithBoard(ctx, itemID)
	if err != nil {
		return err
	}
	if err := s.checklistRepo.UpdateText(ctx, itemID, text); err != nil {
		return fmt.Errorf("failed to update checklist item: %w", err)
	}
	s.changes.updated(ctx, boardID, models.EntityChecklist, itemID, "text", item.Text, text)
	return nil
}

// SetCompleted sets the completed flag. For a group the value cascades to
// every descendant. Each enclosing group is then completed exactly when all
// of its children are.
func (s *ChecklistServiceImpl) SetCompleted(ctx context.Context, itemID string, completed bool) error {
	item, boardID, err := s.itemWithBoard(ctx, itemID)
	if err != nil {
		return err
	}

	flat, err := s.flat(ctx, item.TaskID)
	if err != nil {
		return err
	}
	ids := []string{itemID}
	if item.Type == models.ChecklistTypeGroup {
		ids = append(ids, corechecklist.Descendants(flat, itemID)...)
	}

	if err := s.checklistRepo.SetCompleted(ctx, ids, completed); err != nil {
		return fmt.Errorf("failed to update checklist: %w", err)
	}

	changed := make(map[string]bool, len(ids))
	for _, id := range ids {
		changed[id] = true
	}
	for _, f := range flat {
		if changed[f.ID] {
			f.Completed = completed
		}
	}
	for ancestorID, done := range corechecklist.Ancestors(flat, itemID) {
		if err := s.checklistRepo.SetCompleted(ctx, []string{ancestorID}, done); err != nil {
			return fmt.Errorf("failed to update checklist group: %w", err)
		}
	}
	s.changes.updated(ctx, boardID, models.EntityChecklist, itemID, "completed",
		strconv.FormatBool(item.Completed), strconv.FormatBool(completed))
	return nil
}

// DeleteItem deletes an item and its descendants.
func (s *ChecklistServiceImpl) DeleteItem(ctx context.Context, itemID string) error {
	_, boardID, err := s.itemWithBoard(ctx, itemID)
	if err != nil {
		return err
	}
	if err := s.checklistRepo.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("failed to delete checklist item: %w", err)
	}
	s.changes.deleted(ctx, boardID, models.EntityChecklist, itemID)
	return nil
}

// itemWithBoard loads an item and resolves the board of its task.
func (s *ChecklistServiceImpl) itemWithBoard(ctx context.Context, itemID string) (*secondary.ChecklistItemRecord, string, error) {
	item, err := s.checklistRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, "", err
	}
	task, err := s.taskRepo.GetByID(ctx, item.TaskID)
	if err != nil {
		return nil, "", err
	}
	return item, task.BoardID, nil
}

// Ensure ChecklistServiceImpl implements the interface
var _ primary.ChecklistService = (*ChecklistServiceImpl)(nil)
