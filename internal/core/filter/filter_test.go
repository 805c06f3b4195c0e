package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/example/kanban/internal/models"
)

func boardTasks() []*models.Task {
	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	return []*models.Task{
		{ID: "TASK-001", ColumnID: "COL-001", Title: "Write Report", Labels: []string{"Work"}, CreatedAt: base},
		{ID: "TASK-002", ColumnID: "COL-001", Title: "buy groceries", Labels: []string{"home", "errand"}, CreatedAt: base.Add(time.Hour)},
		{ID: "TASK-003", ColumnID: "COL-002", Title: "report taxes", Labels: nil, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "TASK-004", ColumnID: "COL-003", Title: "Fix bike", Labels: []string{"Home"}, CreatedAt: base.Add(3 * time.Hour)},
	}
}

func ids(tasks []*models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"work", "home"}, ParseTags(" Work , ,HOME,"))
	assert.Nil(t, ParseTags(""))
	assert.Nil(t, ParseTags(" , "))
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{"no criteria returns newest first", Criteria{}, []string{"TASK-004", "TASK-003", "TASK-002", "TASK-001"}},
		{"query is case-insensitive substring", Criteria{Query: "REPORT"}, []string{"TASK-003", "TASK-001"}},
		{"tags any-match ignoring case", Criteria{Tags: "home, work"}, []string{"TASK-004", "TASK-002", "TASK-001"}},
		{"query keeps surrounding spaces", Criteria{Query: " report"}, []string{"TASK-001"}},
		{"query and tags combine", Criteria{Query: "report", Tags: "work"}, []string{"TASK-001"}},
		{"blank tag list matches all", Criteria{Tags: " , "}, []string{"TASK-004", "TASK-003", "TASK-002", "TASK-001"}},
		{"column scope", Criteria{ColumnID: "COL-001"}, []string{"TASK-002", "TASK-001"}},
		{"no match", Criteria{Tags: "garden"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(boardTasks(), tt.criteria)))
		})
	}
}
