package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	corelabel "github.com/example/kanban/internal/core/label"
	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/primary"
	"github.com/example/kanban/internal/ports/secondary"
)

// labelWriter holds the label mutations shared by the label, task and board
// services.
type labelWriter struct {
	labelRepo secondary.LabelRepository
	taskRepo  secondary.TaskRepository
	changes   changeRecorder
}

// upsert creates a label or updates the color of an existing one. pinned is
// applied only when non-nil; usage count is always kept.
func (w labelWriter) upsert(ctx context.Context, boardID, name, color string, pinned *bool) (*secondary.LabelRecord, error) {
	name = strings.TrimSpace(name)
	if r := corelabel.ValidateName(name); !r.Allowed {
		return nil, invalid(r.Reason)
	}
	if color == "" {
		color = models.DefaultLabelColor
	}
	if r := corelabel.ValidateColor(color); !r.Allowed {
		return nil, invalid(r.Reason)
	}

	existing, err := w.labelRepo.GetByName(ctx, boardID, name)
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("failed to get label: %w", err)
	}

	if existing != nil {
		oldColor := existing.Color
		existing.Color = color
		if pinned != nil {
			existing.Pinned = *pinned
		}
		if err := w.labelRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update label: %w", err)
		}
		w.changes.updated(ctx, boardID, models.EntityLabel, existing.ID, "color", oldColor, color)
		return existing, nil
	}

	id, err := w.labelRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate label ID: %w", err)
	}
	record := &secondary.LabelRecord{ID: id, BoardID: boardID, Name: name, Color: color}
	if pinned != nil {
		record.Pinned = *pinned
	}
	if err := w.labelRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create label: %w", err)
	}
	w.changes.created(ctx, boardID, models.EntityLabel, id)
	return record, nil
}

// attach links a label to a task by name, creating the label with the
// default color when missing. Usage is counted only for new links.
func (w labelWriter) attach(ctx context.Context, boardID, taskID, name string) error {
	name = strings.TrimSpace(name)
	if r := corelabel.ValidateName(name); !r.Allowed {
		return invalid(r.Reason)
	}

	label, err := w.labelRepo.GetByName(ctx, boardID, name)
	if isNotFound(err) {
		label, err = w.upsert(ctx, boardID, name, models.DefaultLabelColor, nil)
	}
	if err != nil {
		return err
	}

	added, err := w.taskRepo.AttachLabel(ctx, taskID, label.ID)
	if err != nil {
		return fmt.Errorf("failed to attach label: %w", err)
	}
	if !added {
		return nil
	}
	if err := w.labelRepo.IncrementUsage(ctx, label.ID); err != nil {
		return fmt.Errorf("failed to count label usage: %w", err)
	}
	w.changes.updated(ctx, boardID, models.EntityTask, taskID, "labels", "", "+"+name)
	return nil
}

// LabelServiceImpl implements the LabelService interface.
type LabelServiceImpl struct {
	labelRepo secondary.LabelRepository
	taskRepo  secondary.TaskRepository
	labels    labelWriter
	changes   changeRecorder
}

// NewLabelService creates a new LabelService with injected dependencies.
func NewLabelService(
	labelRepo secondary.LabelRepository,
	taskRepo secondary.TaskRepository,
	logWriter secondary.LogWriter,
	logger *zap.Logger,
) *LabelServiceImpl {
	changes := newChangeRecorder(logWriter, logger)
	return &LabelServiceImpl{
		labelRepo: labelRepo,
		taskRepo:  taskRepo,
		labels:    labelWriter{labelRepo: labelRepo, taskRepo: taskRepo, changes: changes},
		changes:   changes,
	}
}

// UpsertLabel creates a label or updates the color of an existing one.
func (s *LabelServiceImpl) UpsertLabel(ctx context.Context, boardID, name, color string) (*models.Label, error) {
	record, err := s.labels.upsert(ctx, boardID, name, color, nil)
	if err != nil {
		return nil, err
	}
	return recordToLabel(record), nil
}

// UpdateLabel renames and/or recolors a label. Task links follow the label.
func (s *LabelServiceImpl) UpdateLabel(ctx context.Context, req primary.UpdateLabelRequest) (*models.Label, error) {
	record, err := s.labelRepo.GetByName(ctx, req.BoardID, req.Name)
	if err != nil {
		return nil, err
	}
	before := *record

	if req.NewName != nil {
		newName := strings.TrimSpace(*req.NewName)
		taken := false
		if newName != record.Name {
			other, err := s.labelRepo.GetByName(ctx, req.BoardID, newName)
			if err != nil && !isNotFound(err) {
				return nil, fmt.Errorf("failed to check label name: %w", err)
			}
			taken = other != nil
		}
		r := corelabel.CanRenameLabel(corelabel.RenameContext{
			BoardID:   req.BoardID,
			OldName:   record.Name,
			NewName:   newName,
			NameTaken: taken,
		})
		if !r.Allowed {
			if taken {
				return nil, conflict(r.Reason)
			}
			return nil, invalid(r.Reason)
		}
		record.Name = newName
	}

	if req.Color != nil {
		if r := corelabel.ValidateColor(*req.Color); !r.Allowed {
			return nil, invalid(r.Reason)
		}
		record.Color = *req.Color
	}

	if err := s.labelRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update label: %w", err)
	}

	s.changes.updated(ctx, req.BoardID, models.EntityLabel, record.ID, "name", before.Name, record.Name)
	s.changes.updated(ctx, req.BoardID, models.EntityLabel, record.ID, "color", before.Color, record.Color)
	return recordToLabel(record), nil
}

// DeleteLabel deletes a label and strips it from every task.
func (s *LabelServiceImpl) DeleteLabel(ctx context.Context, boardID, name string) error {
	record, err := s.labelRepo.GetByName(ctx, boardID, name)
	if err != nil {
		return err
	}
	if err := s.labelRepo.Delete(ctx, record.ID); err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	s.changes.deleted(ctx, boardID, models.EntityLabel, record.ID)
	return nil
}

// PinLabel pins a label.
func (s *LabelServiceImpl) PinLabel(ctx context.Context, boardID, name string) error {
	return s.setPinned(ctx, boardID, name, func(bool) bool { return true })
}

// UnpinLabel unpins a label.
func (s *LabelServiceImpl) UnpinLabel(ctx context.Context, boardID, name string) error {
	return s.setPinned(ctx, boardID, name, func(bool) bool { return false })
}

// TogglePin flips the pinned flag and returns the new value.
func (s *LabelServiceImpl) TogglePin(ctx context.Context, boardID, name string) (bool, error) {
	var pinned bool
	err := s.setPinned(ctx, boardID, name, func(old bool) bool {
		pinned = !old
		return pinned
	})
	return pinned, err
}

func (s *LabelServiceImpl) setPinned(ctx context.Context, boardID, name string, next func(bool) bool) error {
	record, err := s.labelRepo.GetByName(ctx, boardID, name)
	if err != nil {
		return err
	}

	old := record.Pinned
	record.Pinned = next(old)
	if old == record.Pinned {
		return nil
	}
	if err := s.labelRepo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to update label: %w", err)
	}

	s.changes.updated(ctx, boardID, models.EntityLabel, record.ID, "pinned",
		strconv.FormatBool(old), strconv.FormatBool(record.Pinned))
	return nil
}

// ListLabels lists labels pinned first, then by usage.
func (s *LabelServiceImpl) ListLabels(ctx context.Context, boardID string) ([]*models.Label, error) {
	records, err := s.labelRepo.List(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}

	labels := make([]*models.Label, len(records))
	for i, r := range records {
		labels[i] = recordToLabel(r)
	}
	corelabel.Rank(labels)
	return labels, nil
}

// AddLabelToTask attaches a label by name, creating it if missing.
func (s *LabelServiceImpl) AddLabelToTask(ctx context.Context, taskID, name string) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	return s.labels.attach(ctx, task.BoardID, taskID, name)
}

// RemoveLabelFromTask detaches a label by name.
func (s *LabelServiceImpl) RemoveLabelFromTask(ctx context.Context, taskID, name string) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	label, err := s.labelRepo.GetByName(ctx, task.BoardID, strings.TrimSpace(name))
	if err != nil {
		return err
	}
	if err := s.taskRepo.DetachLabel(ctx, taskID, label.ID); err != nil {
		return fmt.Errorf("failed to detach label: %w", err)
	}
	s.changes.updated(ctx, task.BoardID, models.EntityTask, taskID, "labels", "-"+label.Name, "")
	return nil
}

// Ensure LabelServiceImpl implements the interface
var _ primary.LabelService = (*LabelServiceImpl)(nil)
