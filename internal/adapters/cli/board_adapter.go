package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/primary"
)

// BoardAdapter is a thin adapter that translates CLI operations to BoardService calls.
// It depends only on the BoardService interface, enabling easy testing with mocks.
type BoardAdapter struct {
	service primary.BoardService
	out     io.Writer
}

// NewBoardAdapter creates a new BoardAdapter with the given service.
func NewBoardAdapter(service primary.BoardService, out io.Writer) *BoardAdapter {
	return &BoardAdapter{
		service: service,
		out:     out,
	}
}

// List lists the boards visible to the acting user, marking the current one.
func (a *BoardAdapter) List(ctx context.Context) ([]*models.Board, error) {
	boards, err := a.service.ListBoards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}

	if len(boards) == 0 {
		fmt.Fprintln(a.out, "No boards found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Create your first board:")
		fmt.Fprintln(a.out, "  kanban board create \"My Board\"")
		return boards, nil
	}

	currentID := ""
	if current, err := a.service.CurrentBoard(ctx); err == nil {
		currentID = current.ID
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDEFAULT\tOWNER")
	fmt.Fprintln(w, "--\t----\t-------\t-----")

	for _, board := range boards {
		name := board.Name
		if board.ID == currentID {
			name += color.New(color.FgHiMagenta).Sprint(" ←")
		}
		def := ""
		if board.IsDefault {
			def = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", board.ID, name, def, board.OwnerID)
	}

	w.Flush()
	return boards, nil
}

// Create creates a board and reports the new selection.
func (a *BoardAdapter) Create(ctx context.Context, name string) (*models.Board, error) {
	board, err := a.service.CreateBoard(ctx, name)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Created board %s: %s\n", board.ID, board.Name)
	fmt.Fprintf(a.out, "  Columns: %s\n", strings.Join(models.DefaultColumnTitles, ", "))
	return board, nil
}

// Select makes a board current.
func (a *BoardAdapter) Select(ctx context.Context, boardID string) error {
	board, err := a.service.GetBoard(ctx, boardID)
	if err != nil {
		return fmt.Errorf("failed to get board: %w", err)
	}
	if err := a.service.SelectBoard(ctx, boardID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Now on board %s: %s\n", board.ID, board.Name)
	return nil
}

// Delete deletes a board and reports which board is current afterwards.
func (a *BoardAdapter) Delete(ctx context.Context, boardID string) error {
	board, err := a.service.GetBoard(ctx, boardID)
	if err != nil {
		return fmt.Errorf("failed to get board: %w", err)
	}
	if err := a.service.DeleteBoard(ctx, boardID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Board %s deleted\n", board.ID)
	if current, err := a.service.CurrentBoard(ctx); err == nil {
		fmt.Fprintf(a.out, "  Now on: %s (%s)\n", current.Name, current.ID)
	}
	return nil
}

// Show renders a board with its columns, tasks, labels and checklist progress.
func (a *BoardAdapter) Show(ctx context.Context, boardID string) (*primary.BoardView, error) {
	view, err := a.service.GetBoardView(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	RenderBoard(a.out, view)
	return view, nil
}

// RenderBoard writes a board view as text.
func RenderBoard(out io.Writer, view *primary.BoardView) {
	colors := make(map[string]string, len(view.Labels))
	for _, l := range view.Labels {
		colors[l.Name] = l.Color
	}

	fmt.Fprintf(out, "\n%s %s\n", color.New(color.Bold).Sprint(view.Board.Name), color.New(color.FgHiBlack).Sprintf("(%s)", view.Board.ID))
	if view.Board.WeatherLocation != "" {
		fmt.Fprintf(out, "Weather: %s\n", view.Board.WeatherLocation)
	}
	if view.Board.CalendarURL != "" {
		fmt.Fprintf(out, "Calendar: %s\n", view.Board.CalendarURL)
	}

	for _, col := range view.Columns {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s %s\n",
			color.New(color.FgHiBlue, color.Bold).Sprint(strings.ToUpper(col.Title)),
			color.New(color.FgHiBlack).Sprintf("[%s, %d]", col.ID, len(col.Tasks)))
		if len(col.Tasks) == 0 {
			fmt.Fprintln(out, "  (empty)")
			continue
		}
		for _, task := range col.Tasks {
			fmt.Fprintf(out, "  %s %s%s%s\n",
				color.New(color.FgHiBlack).Sprint(task.ID),
				task.Title,
				formatDate(task.Date),
				formatProgress(task.Checklist))
			if len(task.Labels) > 0 {
				fmt.Fprintf(out, "    %s\n", formatLabels(task.Labels, colors))
			}
		}
	}
	fmt.Fprintln(out)
}

func formatDate(date string) string {
	if date == "" {
		return ""
	}
	return color.New(color.FgYellow).Sprintf(" @%s", date)
}

func formatProgress(items []*models.ChecklistItem) string {
	if len(items) == 0 {
		return ""
	}
	done := 0
	for _, item := range items {
		if item.Completed {
			done++
		}
	}
	c := color.New(color.FgHiBlack)
	if done == len(items) {
		c = color.New(color.FgHiGreen)
	}
	return c.Sprintf(" [%d/%d]", done, len(items))
}

func formatLabels(names []string, colors map[string]string) string {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, labelSwatch(colors[name]).Sprintf("#%s", name))
	}
	return strings.Join(parts, " ")
}

// labelSwatch maps a #rrggbb label color onto the 256-color cube.
func labelSwatch(hex string) *color.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return color.New(color.FgWhite)
	}
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.New(color.FgWhite)
	}
	r := ((rgb >> 16) & 0xff) * 6 / 256
	g := ((rgb >> 8) & 0xff) * 6 / 256
	b := (rgb & 0xff) * 6 / 256
	code := 16 + 36*r + 6*g + b

	return color.New(color.Attribute(38), color.Attribute(5), color.Attribute(code))
}
