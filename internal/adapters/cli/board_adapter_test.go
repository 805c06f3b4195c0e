package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/primary"
)

func init() {
	// Output assertions compare plain text.
	color.NoColor = true
}

// mockBoardService implements primary.BoardService for testing.
// Methods a test does not stub fall through to the nil embedded interface.
type mockBoardService struct {
	primary.BoardService

	listBoardsFn   func(ctx context.Context) ([]*models.Board, error)
	currentBoardFn func(ctx context.Context) (*models.Board, error)
	getBoardFn     func(ctx context.Context, boardID string) (*models.Board, error)
	createBoardFn  func(ctx context.Context, name string) (*models.Board, error)
	deleteBoardFn  func(ctx context.Context, boardID string) error
	selectBoardFn  func(ctx context.Context, boardID string) error
	boardViewFn    func(ctx context.Context, boardID string) (*primary.BoardView, error)

	lastSelected string
}

func (m *mockBoardService) ListBoards(ctx context.Context) ([]*models.Board, error) {
	return m.listBoardsFn(ctx)
}

func (m *mockBoardService) CurrentBoard(ctx context.Context) (*models.Board, error) {
	if m.currentBoardFn != nil {
		return m.currentBoardFn(ctx)
	}
	return nil, models.ErrNotFound
}

func (m *mockBoardService) GetBoard(ctx context.Context, boardID string) (*models.Board, error) {
	if m.getBoardFn != nil {
		return m.getBoardFn(ctx, boardID)
	}
	return &models.Board{ID: boardID, Name: "Board " + boardID}, nil
}

func (m *mockBoardService) CreateBoard(ctx context.Context, name string) (*models.Board, error) {
	if m.createBoardFn != nil {
		return m.createBoardFn(ctx, name)
	}
	return &models.Board{ID: "2", Name: name}, nil
}

func (m *mockBoardService) DeleteBoard(ctx context.Context, boardID string) error {
	if m.deleteBoardFn != nil {
		return m.deleteBoardFn(ctx, boardID)
	}
	return nil
}

func (m *mockBoardService) SelectBoard(ctx context.Context, boardID string) error {
	m.lastSelected = boardID
	if m.selectBoardFn != nil {
		return m.selectBoardFn(ctx, boardID)
	}
	return nil
}

func (m *mockBoardService) GetBoardView(ctx context.Context, boardID string) (*primary.BoardView, error) {
	return m.boardViewFn(ctx, boardID)
}

func TestBoardAdapter_List_MarksCurrent(t *testing.T) {
	mock := &mockBoardService{
		listBoardsFn: func(ctx context.Context) ([]*models.Board, error) {
			return []*models.Board{
				{ID: "1", Name: "Main", IsDefault: true},
				{ID: "2", Name: "Side"},
			}, nil
		},
		currentBoardFn: func(ctx context.Context) (*models.Board, error) {
			return &models.Board{ID: "2", Name: "Side"}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewBoardAdapter(mock, &buf)

	boards, err := adapter.List(context.Background())

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(boards) != 2 {
		t.Errorf("expected 2 boards, got %d", len(boards))
	}
	output := buf.String()
	if !strings.Contains(output, "Side ←") {
		t.Errorf("expected current board marker, got '%s'", output)
	}
	if strings.Contains(output, "Main ←") {
		t.Errorf("expected default board to be unmarked, got '%s'", output)
	}
}

func TestBoardAdapter_List_Empty(t *testing.T) {
	mock := &mockBoardService{
		listBoardsFn: func(ctx context.Context) ([]*models.Board, error) {
			return nil, nil
		},
	}
	var buf bytes.Buffer

	_, err := NewBoardAdapter(mock, &buf).List(context.Background())

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "No boards found") {
		t.Errorf("expected 'No boards found', got '%s'", buf.String())
	}
}

func TestBoardAdapter_List_Error(t *testing.T) {
	mock := &mockBoardService{
		listBoardsFn: func(ctx context.Context) ([]*models.Board, error) {
			return nil, errors.New("database down")
		},
	}
	var buf bytes.Buffer

	_, err := NewBoardAdapter(mock, &buf).List(context.Background())

	if err == nil || !strings.Contains(err.Error(), "failed to list boards") {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

func TestBoardAdapter_Select(t *testing.T) {
	mock := &mockBoardService{}
	var buf bytes.Buffer

	err := NewBoardAdapter(mock, &buf).Select(context.Background(), "3")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if mock.lastSelected != "3" {
		t.Errorf("expected board 3 selected, got '%s'", mock.lastSelected)
	}
	if !strings.Contains(buf.String(), "Now on board 3") {
		t.Errorf("unexpected output '%s'", buf.String())
	}
}

func TestBoardAdapter_Select_UnknownBoard(t *testing.T) {
	mock := &mockBoardService{
		getBoardFn: func(ctx context.Context, boardID string) (*models.Board, error) {
			return nil, models.ErrNotFound
		},
	}
	var buf bytes.Buffer

	err := NewBoardAdapter(mock, &buf).Select(context.Background(), "9")

	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if mock.lastSelected != "" {
		t.Errorf("expected no selection, got '%s'", mock.lastSelected)
	}
}

func TestBoardAdapter_Delete_ReportsFallback(t *testing.T) {
	mock := &mockBoardService{
		currentBoardFn: func(ctx context.Context) (*models.Board, error) {
			return &models.Board{ID: "1", Name: "Main"}, nil
		},
	}
	var buf bytes.Buffer

	err := NewBoardAdapter(mock, &buf).Delete(context.Background(), "2")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "Now on: Main (1)") {
		t.Errorf("expected fallback board in output, got '%s'", buf.String())
	}
}

func TestBoardAdapter_Show(t *testing.T) {
	mock := &mockBoardService{
		boardViewFn: func(ctx context.Context, boardID string) (*primary.BoardView, error) {
			return &primary.BoardView{
				Board: &models.Board{ID: "1", Name: "Main", WeatherLocation: "Madrid"},
				Columns: []*primary.ColumnView{
					{
						Column: &models.Column{ID: "1", Title: "To Do"},
						Tasks: []*models.Task{{
							ID:     "7",
							Title:  "Buy milk",
							Date:   "2026-10-20",
							Labels: []string{"home"},
							Checklist: []*models.ChecklistItem{
								{ID: "1", Text: "Go", Completed: true},
								{ID: "2", Text: "Pay"},
							},
						}},
					},
					{Column: &models.Column{ID: "2", Title: "Done"}},
				},
				Labels: []*models.Label{{Name: "home", Color: "#ff0000"}},
			}, nil
		},
	}
	var buf bytes.Buffer

	view, err := NewBoardAdapter(mock, &buf).Show(context.Background(), "1")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(view.Columns) != 2 {
		t.Errorf("expected 2 columns, got %d", len(view.Columns))
	}
	output := buf.String()
	for _, want := range []string{"Main", "Weather: Madrid", "TO DO", "Buy milk", "@2026-10-20", "[1/2]", "#home", "(empty)"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got '%s'", want, output)
		}
	}
}

func TestLabelSwatch(t *testing.T) {
	// Pure red lands on the red corner of the color cube (16 + 36*5).
	c := labelSwatch("#ff0000")
	c.EnableColor()
	got := c.Sprint("x")
	if !strings.HasPrefix(got, "\x1b[38;5;196m") {
		t.Errorf("expected 256-color red escape, got %q", got)
	}

	if labelSwatch("nonsense") == nil {
		t.Error("expected a fallback color for malformed input")
	}
}
