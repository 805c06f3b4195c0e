package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/primary"
)

// LabelAdapter translates CLI operations to LabelService calls.
type LabelAdapter struct {
	service primary.LabelService
	out     io.Writer
}

// NewLabelAdapter creates a new LabelAdapter with the given service.
func NewLabelAdapter(service primary.LabelService, out io.Writer) *LabelAdapter {
	return &LabelAdapter{
		service: service,
		out:     out,
	}
}

// List lists a board's labels, pinned first.
func (a *LabelAdapter) List(ctx context.Context, boardID string) ([]*models.Label, error) {
	labels, err := a.service.ListLabels(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}

	if len(labels) == 0 {
		fmt.Fprintln(a.out, "No labels found.")
		return labels, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOLOR\tPINNED\tUSED")
	fmt.Fprintln(w, "----\t-----\t------\t----")

	for _, label := range labels {
		pinned := ""
		if label.Pinned {
			pinned = color.New(color.FgHiMagenta).Sprint("📌")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
			labelSwatch(label.Color).Sprint(label.Name),
			label.Color,
			pinned,
			label.UsageCount,
		)
	}

	w.Flush()
	return labels, nil
}

// Upsert creates a label or recolors an existing one.
func (a *LabelAdapter) Upsert(ctx context.Context, boardID, name, hex string) (*models.Label, error) {
	label, err := a.service.UpsertLabel(ctx, boardID, name, hex)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Label %s set to %s\n", labelSwatch(label.Color).Sprint(label.Name), label.Color)
	return label, nil
}

// TogglePin flips a label's pinned flag.
func (a *LabelAdapter) TogglePin(ctx context.Context, boardID, name string) (bool, error) {
	pinned, err := a.service.TogglePin(ctx, boardID, name)
	if err != nil {
		return false, err
	}

	if pinned {
		fmt.Fprintf(a.out, "✓ Label %s pinned\n", name)
	} else {
		fmt.Fprintf(a.out, "✓ Label %s unpinned\n", name)
	}
	return pinned, nil
}

// LogAdapter translates CLI operations to LogService calls.
type LogAdapter struct {
	service primary.LogService
	out     io.Writer
}

// NewLogAdapter creates a new LogAdapter with the given service.
func NewLogAdapter(service primary.LogService, out io.Writer) *LogAdapter {
	return &LogAdapter{
		service: service,
		out:     out,
	}
}

// List prints change log entries, newest first.
func (a *LogAdapter) List(ctx context.Context, filters primary.LogFilters) ([]*models.ChangeLog, error) {
	logs, err := a.service.ListLogs(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}

	if len(logs) == 0 {
		fmt.Fprintln(a.out, "No log entries found.")
		return logs, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TIME\tACTOR\tACTION\tENTITY\tDETAILS")
	fmt.Fprintln(w, "----\t-----\t------\t------\t-------")

	for _, entry := range logs {
		actor := entry.ActorID
		if actor == "" {
			actor = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\n",
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			actor,
			colorizeAction(entry.Action),
			entry.EntityType,
			entry.EntityID,
			entry.Details,
		)
	}

	w.Flush()
	return logs, nil
}

func colorizeAction(action string) string {
	switch action {
	case models.ActionCreate:
		return color.New(color.FgHiGreen).Sprint(action)
	case models.ActionDelete:
		return color.New(color.FgRed).Sprint(action)
	case models.ActionUpdate:
		return color.New(color.FgYellow).Sprint(action)
	default:
		return action
	}
}
