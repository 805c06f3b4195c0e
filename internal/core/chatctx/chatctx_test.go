package chatctx

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/example/kanban/internal/models"
)

func TestIsDoneColumn(t *testing.T) {
	for title, want := range map[string]bool{
		"Done":        true,
		"Completado":  true,
		"Completed":   true,
		"In Progress": false,
		"To Do":       false,
	} {
		if got := IsDoneColumn(title); got != want {
			t.Errorf("IsDoneColumn(%q) = %v, want %v", title, got, want)
		}
	}
}

func TestBuild(t *testing.T) {
	now := time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC)
	created := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	board := &models.Board{ID: "BOARD-001", Name: "Main"}
	columns := []*models.Column{
		{ID: "COL-001", Title: "To Do"},
		{ID: "COL-002", Title: "In Progress"},
		{ID: "COL-003", Title: "Done"},
	}
	tasks := []*models.Task{
		{ID: "TASK-001", ColumnID: "COL-001", Title: "plan trip", Date: "2026-05-12", Labels: []string{"home"}, CreatedAt: created,
			Checklist: []*models.ChecklistItem{
				{ID: "CHK-001", Type: "group", Completed: true, Children: []*models.ChecklistItem{{ID: "CHK-002", Completed: true}}},
				{ID: "CHK-003", Type: "item"},
			}},
		{ID: "TASK-002", ColumnID: "COL-001", Title: "today", Date: "2026-05-10", CreatedAt: created},
		{ID: "TASK-003", ColumnID: "COL-002", Title: "soon", Date: "2026-05-11", CreatedAt: created},
		{ID: "TASK-004", ColumnID: "COL-003", Title: "shipped", Date: "2026-04-01", CreatedAt: created},
	}

	got := Build(board, columns, tasks, now)

	want := &models.ChatContext{
		DashboardName: "Main",
		Columns: []models.ChatContextColumn{
			{ID: "COL-001", Title: "To Do", Tasks: []models.ChatContextTask{
				{ID: "TASK-001", Title: "plan trip", Date: "2026-05-12", Labels: []string{"home"}, Checklist: models.ChecklistProgress{Total: 2, Completed: 1}, CreatedAt: created.UnixMilli()},
				{ID: "TASK-002", Title: "today", Date: "2026-05-10", Labels: []string{}, CreatedAt: created.UnixMilli()},
			}},
			{ID: "COL-002", Title: "In Progress", Tasks: []models.ChatContextTask{
				{ID: "TASK-003", Title: "soon", Date: "2026-05-11", Labels: []string{}, CreatedAt: created.UnixMilli()},
			}},
			{ID: "COL-003", Title: "Done", Tasks: []models.ChatContextTask{
				{ID: "TASK-004", Title: "shipped", Date: "2026-04-01", Labels: []string{}, CreatedAt: created.UnixMilli()},
			}},
		},
		Stats: models.ChatContextStats{
			TotalTasks:     4,
			TasksPerColumn: map[string]int{"To Do": 2, "In Progress": 1, "Done": 1},
			CompletedTasks: 1,
			UpcomingDeadlines: []models.Deadline{
				{Task: "soon", Date: "2026-05-11"},
				{Task: "plan trip", Date: "2026-05-12"},
			},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildLimitsDeadlines(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var tasks []*models.Task
	for _, d := range []string{"2026-01-09", "2026-01-02", "2026-01-08", "2026-01-03", "2026-01-07", "2026-01-04", "not-a-date"} {
		tasks = append(tasks, &models.Task{ID: d, ColumnID: "COL-001", Title: d, Date: d})
	}

	got := Build(&models.Board{Name: "b"}, []*models.Column{{ID: "COL-001", Title: "To Do"}}, tasks, now)

	var dates []string
	for _, d := range got.Stats.UpcomingDeadlines {
		dates = append(dates, d.Date)
	}
	want := []string{"2026-01-02", "2026-01-03", "2026-01-04", "2026-01-07", "2026-01-08"}
	if diff := cmp.Diff(want, dates); diff != "" {
		t.Errorf("deadlines mismatch (-want +got):\n%s", diff)
	}
	if got.Stats.CompletedTasks != 0 {
		t.Errorf("CompletedTasks = %d, want 0", got.Stats.CompletedTasks)
	}
}
