package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/primary"
)

type mockLabelService struct {
	primary.LabelService

	labels []*models.Label
	pinned bool
}

func (m *mockLabelService) ListLabels(ctx context.Context, boardID string) ([]*models.Label, error) {
	return m.labels, nil
}

func (m *mockLabelService) UpsertLabel(ctx context.Context, boardID, name, color string) (*models.Label, error) {
	return &models.Label{BoardID: boardID, Name: name, Color: color}, nil
}

func (m *mockLabelService) TogglePin(ctx context.Context, boardID, name string) (bool, error) {
	m.pinned = !m.pinned
	return m.pinned, nil
}

type mockLogService struct {
	primary.LogService

	logs        []*models.ChangeLog
	lastFilters primary.LogFilters
}

func (m *mockLogService) ListLogs(ctx context.Context, filters primary.LogFilters) ([]*models.ChangeLog, error) {
	m.lastFilters = filters
	return m.logs, nil
}

func TestLabelAdapter_List(t *testing.T) {
	mock := &mockLabelService{labels: []*models.Label{
		{Name: "urgent", Color: "#ef4444", Pinned: true, UsageCount: 1},
		{Name: "home", Color: "#22c55e", UsageCount: 4},
	}}
	var buf bytes.Buffer

	labels, err := NewLabelAdapter(mock, &buf).List(context.Background(), "1")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(labels) != 2 {
		t.Errorf("expected 2 labels, got %d", len(labels))
	}
	output := buf.String()
	if strings.Index(output, "urgent") > strings.Index(output, "home") {
		t.Errorf("expected service order to be kept, got '%s'", output)
	}
	if !strings.Contains(output, "#22c55e") {
		t.Errorf("expected color in output, got '%s'", output)
	}
}

func TestLabelAdapter_TogglePin(t *testing.T) {
	mock := &mockLabelService{}
	var buf bytes.Buffer
	adapter := NewLabelAdapter(mock, &buf)

	pinned, _ := adapter.TogglePin(context.Background(), "1", "home")
	if !pinned {
		t.Error("expected first toggle to pin")
	}
	pinned, _ = adapter.TogglePin(context.Background(), "1", "home")
	if pinned {
		t.Error("expected second toggle to unpin")
	}
	if !strings.Contains(buf.String(), "home pinned") || !strings.Contains(buf.String(), "home unpinned") {
		t.Errorf("unexpected output '%s'", buf.String())
	}
}

func TestLogAdapter_List(t *testing.T) {
	mock := &mockLogService{logs: []*models.ChangeLog{
		{
			ActorID:    "alice",
			Action:     models.ActionUpdate,
			EntityType: models.EntityTask,
			EntityID:   "3",
			Details:    `{"field":"title"}`,
			Timestamp:  time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC),
		},
		{Action: models.ActionCreate, EntityType: models.EntityBoard, EntityID: "1"},
	}}
	var buf bytes.Buffer

	_, err := NewLogAdapter(mock, &buf).List(context.Background(), primary.LogFilters{BoardID: "1", Limit: 20})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mock.lastFilters.Limit != 20 {
		t.Errorf("expected limit to pass through, got %d", mock.lastFilters.Limit)
	}
	output := buf.String()
	for _, want := range []string{"2026-10-16 08:00:00", "alice", "task 3", `{"field":"title"}`, "board 1"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got '%s'", want, output)
		}
	}
}

func TestLogAdapter_Empty(t *testing.T) {
	var buf bytes.Buffer

	_, _ = NewLogAdapter(&mockLogService{}, &buf).List(context.Background(), primary.LogFilters{})

	if !strings.Contains(buf.String(), "No log entries found") {
		t.Errorf("unexpected output '%s'", buf.String())
	}
}
