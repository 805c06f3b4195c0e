package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/primary"
	"github.com/example/kanban/internal/ports/secondary"
)

// ExportBoard captures a board as a portable snapshot.
func (s *BoardServiceImpl) ExportBoard(ctx context.Context, boardID string) (*primary.BoardSnapshot, error) {
	view, err := s.GetBoardView(ctx, boardID)
	if err != nil {
		return nil, err
	}

	snap := &primary.BoardSnapshot{
		Version:         primary.SnapshotVersion,
		Name:            view.Board.Name,
		CalendarURL:     view.Board.CalendarURL,
		WeatherLocation: view.Board.WeatherLocation,
		Columns:         make([]primary.SnapshotColumn, len(view.Columns)),
	}
	for _, l := range view.Labels {
		snap.Labels = append(snap.Labels, primary.SnapshotLabel{Name: l.Name, Color: l.Color, Pinned: l.Pinned})
	}
	for i, c := range view.Columns {
		col := primary.SnapshotColumn{Title: c.Title}
		for _, t := range c.Tasks {
			col.Tasks = append(col.Tasks, primary.SnapshotTask{
				Title:       t.Title,
				Description: t.Description,
				Date:        t.Date,
				ImageURL:    t.ImageURL,
				Labels:      t.Labels,
				Checklist:   checklistToInputs(t.Checklist),
			})
		}
		snap.Columns[i] = col
	}
	return snap, nil
}

func checklistToInputs(items []*models.ChecklistItem) []primary.ChecklistInput {
	if len(items) == 0 {
		return nil
	}
	out := make([]primary.ChecklistInput, len(items))
	for i, item := range items {
		out[i] = primary.ChecklistInput{
			Text:      item.Text,
			Type:      item.Type,
			Completed: item.Completed,
			Children:  checklistToInputs(item.Children),
		}
	}
	return out
}

// ImportBoard creates a new board from a snapshot. Every entity gets a fresh
// ID; name overrides the snapshot's name when non-empty.
func (s *BoardServiceImpl) ImportBoard(ctx context.Context, snap *primary.BoardSnapshot, name string) (*models.Board, error) {
	if snap == nil {
		return nil, invalid("snapshot is empty")
	}
	if snap.Version != primary.SnapshotVersion {
		return nil, invalid(fmt.Sprintf("unsupported snapshot version %d (expected %d)", snap.Version, primary.SnapshotVersion))
	}
	if strings.TrimSpace(name) == "" {
		name = snap.Name
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("board name cannot be empty")
	}
	if snap.CalendarURL != "" {
		if err := validateCalendar(snap.CalendarURL); err != nil {
			return nil, err
		}
	}

	record, err := s.insertBoard(ctx, name, false)
	if err != nil {
		return nil, err
	}
	if snap.CalendarURL != "" || snap.WeatherLocation != "" {
		record.CalendarURL = snap.CalendarURL
		record.WeatherLocation = snap.WeatherLocation
		if err := s.boardRepo.Update(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to update imported board: %w", err)
		}
	}

	labels := labelWriter{labelRepo: s.labelRepo, taskRepo: s.taskRepo, changes: s.changes}
	for _, l := range snap.Labels {
		if _, err := labels.upsert(ctx, record.ID, l.Name, l.Color, &l.Pinned); err != nil {
			return nil, err
		}
	}

	checklists := checklistWriter{checklistRepo: s.checklistRepo, changes: s.changes}
	for i, c := range snap.Columns {
		col, err := s.insertColumn(ctx, record.ID, c.Title, i)
		if err != nil {
			return nil, err
		}
		for _, t := range c.Tasks {
			taskID, err := s.importTask(ctx, record.ID, col.ID, t)
			if err != nil {
				return nil, err
			}
			for _, labelName := range t.Labels {
				if err := labels.attach(ctx, record.ID, taskID, labelName); err != nil {
					return nil, err
				}
			}
			if err := checklists.createTree(ctx, record.ID, taskID, "", t.Checklist); err != nil {
				return nil, err
			}
		}
	}

	if err := s.setSelected(record.ID); err != nil {
		return nil, err
	}
	return s.GetBoard(ctx, record.ID)
}

func (s *BoardServiceImpl) importTask(ctx context.Context, boardID, columnID string, t primary.SnapshotTask) (string, error) {
	if err := validateNewTask(columnID, true, t.Title, t.Date, t.ImageURL); err != nil {
		return "", err
	}

	id, err := s.taskRepo.GetNextID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to generate task ID: %w", err)
	}
	position, err := s.taskRepo.NextPosition(ctx, boardID)
	if err != nil {
		return "", fmt.Errorf("failed to get task position: %w", err)
	}

	record := &secondary.TaskRecord{
		ID:          id,
		BoardID:     boardID,
		ColumnID:    columnID,
		Title:       strings.TrimSpace(t.Title),
		Description: t.Description,
		Date:        t.Date,
		ImageURL:    t.ImageURL,
		Position:    position,
	}
	if err := s.taskRepo.Create(ctx, record); err != nil {
		return "", fmt.Errorf("failed to create task: %w", err)
	}
	s.changes.created(ctx, boardID, models.EntityTask, id)
	return id, nil
}
