package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/primary"
)

// TaskAdapter translates CLI operations to TaskService calls.
type TaskAdapter struct {
	service primary.TaskService
	out     io.Writer
}

// NewTaskAdapter creates a new TaskAdapter with the given service.
func NewTaskAdapter(service primary.TaskService, out io.Writer) *TaskAdapter {
	return &TaskAdapter{
		service: service,
		out:     out,
	}
}

// List lists the tasks of a board matching the filters.
func (a *TaskAdapter) List(ctx context.Context, filters primary.TaskFilters) ([]*models.Task, error) {
	tasks, err := a.service.ListTasks(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	if len(tasks) == 0 {
		if filters.Query != "" || filters.Tags != "" {
			fmt.Fprintln(a.out, "No tasks match the current search.")
			return tasks, nil
		}
		fmt.Fprintln(a.out, "No tasks found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Create your first task:")
		fmt.Fprintln(a.out, "  kanban task add \"Write the report\"")
		return tasks, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCOLUMN\tDATE\tLABELS")
	fmt.Fprintln(w, "--\t-----\t------\t----\t------")

	for _, task := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			task.ID,
			task.Title,
			task.ColumnID,
			task.Date,
			strings.Join(task.Labels, ","),
		)
	}

	w.Flush()
	return tasks, nil
}

// Show displays a task with its checklist tree.
func (a *TaskAdapter) Show(ctx context.Context, taskID string) (*models.Task, error) {
	task, err := a.service.GetTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	fmt.Fprintf(a.out, "\nTask: %s\n", task.ID)
	fmt.Fprintf(a.out, "Title:   %s\n", task.Title)
	fmt.Fprintf(a.out, "Column:  %s\n", task.ColumnID)
	if task.Date != "" {
		fmt.Fprintf(a.out, "Date:    %s\n", task.Date)
	}
	if len(task.Labels) > 0 {
		fmt.Fprintf(a.out, "Labels:  %s\n", strings.Join(task.Labels, ", "))
	}
	if task.ImageURL != "" {
		fmt.Fprintf(a.out, "Media:   %s\n", task.ImageURL)
	}
	fmt.Fprintf(a.out, "Created: %s\n", task.CreatedAt.Format("2006-01-02 15:04"))
	if task.Description != "" {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, task.Description)
	}
	if len(task.Checklist) > 0 {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Checklist:")
		RenderChecklist(a.out, task.Checklist, 1)
	}
	fmt.Fprintln(a.out)

	return task, nil
}

// Create creates a task.
func (a *TaskAdapter) Create(ctx context.Context, req primary.CreateTaskRequest) (*models.Task, error) {
	task, err := a.service.CreateTask(ctx, req)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Created task %s: %s\n", task.ID, task.Title)
	return task, nil
}

// Move moves a task to another column.
func (a *TaskAdapter) Move(ctx context.Context, taskID, columnID string) error {
	if err := a.service.MoveTask(ctx, taskID, columnID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Task %s moved to %s\n", taskID, columnID)
	return nil
}

// Reorder places activeID at overID's slot.
func (a *TaskAdapter) Reorder(ctx context.Context, activeID, overID string) (*primary.ReorderResult, error) {
	result, err := a.service.ReorderTasks(ctx, activeID, overID)
	if err != nil {
		return nil, err
	}

	if !result.Moved {
		fmt.Fprintf(a.out, "No change: %s\n", result.Reason)
		return result, nil
	}
	fmt.Fprintf(a.out, "✓ Task %s placed at %s\n", activeID, overID)
	return result, nil
}

// Delete deletes a task.
func (a *TaskAdapter) Delete(ctx context.Context, taskID string) error {
	task, err := a.service.GetTask(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	if err := a.service.DeleteTask(ctx, taskID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Task %s deleted: %s\n", task.ID, task.Title)
	return nil
}

// RenderChecklist writes a checklist tree, indenting children of groups.
func RenderChecklist(out io.Writer, items []*models.ChecklistItem, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, item := range items {
		mark := "[ ]"
		if item.Completed {
			mark = color.New(color.FgHiGreen).Sprint("[x]")
		}
		text := item.Text
		if item.Type == models.ChecklistTypeGroup {
			text = color.New(color.Bold).Sprint(text)
		}
		fmt.Fprintf(out, "%s%s %s %s\n", indent, mark, text, color.New(color.FgHiBlack).Sprint(item.ID))
		if len(item.Children) > 0 {
			RenderChecklist(out, item.Children, depth+1)
		}
	}
}
