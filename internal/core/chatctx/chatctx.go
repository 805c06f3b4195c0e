// Package chatctx builds the board summary handed to the chat assistant.
package chatctx

import (
	"sort"
	"strings"
	"time"

	"github.com/example/kanban/internal/core/checklist"
	"github.com/example/kanban/internal/models"
)

// MaxDeadlines bounds the upcoming deadline list.
const MaxDeadlines = 5

// doneMarkers identify the column whose tasks count as completed.
var doneMarkers = []string{"done", "complete", "completado"}

// IsDoneColumn reports whether a column title marks finished work.
func IsDoneColumn(title string) bool {
	t := strings.ToLower(title)
	for _, m := range doneMarkers {
		if strings.Contains(t, m) {
			return true
		}
	}
	return false
}

// Build summarises a board. Columns must be in display order; tasks carry
// their labels and checklist tree. Deadlines are dates strictly after today.
func Build(board *models.Board, columns []*models.Column, tasks []*models.Task, now time.Time) *models.ChatContext {
	ctx := &models.ChatContext{
		DashboardName: board.Name,
		Columns:       make([]models.ChatContextColumn, 0, len(columns)),
		Stats: models.ChatContextStats{
			TotalTasks:        len(tasks),
			TasksPerColumn:    make(map[string]int, len(columns)),
			UpcomingDeadlines: []models.Deadline{},
		},
	}

	byColumn := make(map[string][]*models.Task)
	for _, t := range tasks {
		byColumn[t.ColumnID] = append(byColumn[t.ColumnID], t)
	}

	doneCounted := false
	for _, col := range columns {
		summary := models.ChatContextColumn{ID: col.ID, Title: col.Title, Tasks: []models.ChatContextTask{}}
		for _, t := range byColumn[col.ID] {
			labels := t.Labels
			if labels == nil {
				labels = []string{}
			}
			summary.Tasks = append(summary.Tasks, models.ChatContextTask{
				ID:          t.ID,
				Title:       t.Title,
				Description: t.Description,
				Date:        t.Date,
				Labels:      labels,
				Checklist:   checklist.Progress(t.Checklist),
				CreatedAt:   t.CreatedAt.UnixMilli(),
			})
		}
		ctx.Columns = append(ctx.Columns, summary)
		ctx.Stats.TasksPerColumn[col.Title] = len(summary.Tasks)

		// only the first finished column counts
		if !doneCounted && IsDoneColumn(col.Title) {
			ctx.Stats.CompletedTasks = len(summary.Tasks)
			doneCounted = true
		}
	}

	ctx.Stats.UpcomingDeadlines = upcoming(tasks, now)
	return ctx
}

func upcoming(tasks []*models.Task, now time.Time) []models.Deadline {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	type dated struct {
		title string
		date  string
		at    time.Time
	}
	var list []dated
	for _, t := range tasks {
		if t.Date == "" {
			continue
		}
		at, err := time.Parse(models.TaskDateLayout, t.Date)
		if err != nil || !at.After(today) {
			continue
		}
		list = append(list, dated{title: t.Title, date: t.Date, at: at})
	}

	sort.SliceStable(list, func(i, j int) bool { return list[i].at.Before(list[j].at) })
	if len(list) > MaxDeadlines {
		list = list[:MaxDeadlines]
	}

	out := make([]models.Deadline, 0, len(list))
	for _, d := range list {
		out = append(out, models.Deadline{Task: d.title, Date: d.date})
	}
	return out
}
