// Package task contains the pure business logic for task operations.
// Guards are pure functions that evaluate preconditions without side effects.
package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/kanban/internal/models"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CreateTaskContext provides context for task creation guards.
type CreateTaskContext struct {
	ColumnID     string
	ColumnExists bool
	Title        string
	Date         string // optional
}

// UpdateTaskContext provides context for task update guards.
type UpdateTaskContext struct {
	TaskID   string
	Title    *string // nil when unchanged
	Date     *string // nil when unchanged, empty clears
	ImageURL *string
}

// MoveTaskContext provides context for moving a task between columns.
type MoveTaskContext struct {
	TaskID        string
	TaskBoardID   string
	ColumnID      string
	ColumnExists  bool
	ColumnBoardID string
}

// ReorderContext provides context for reordering two tasks.
type ReorderContext struct {
	ActiveID       string
	OverID         string
	ActiveExists   bool
	OverExists     bool
	ActiveColumnID string
	OverColumnID   string
}

// CanCreateTask evaluates whether a task can be created.
// Rules:
// - Column must exist
// - Title must not be blank
// - Date, when given, must be YYYY-MM-DD
func CanCreateTask(ctx CreateTaskContext) GuardResult {
	if !ctx.ColumnExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("column %s not found", ctx.ColumnID),
		}
	}

	if strings.TrimSpace(ctx.Title) == "" {
		return GuardResult{Allowed: false, Reason: "task title cannot be empty"}
	}

	if ctx.Date != "" {
		if r := checkDate(ctx.Date); !r.Allowed {
			return r
		}
	}

	return GuardResult{Allowed: true}
}

// CanUpdateTask evaluates whether a partial task update is valid.
// Rules:
// - Title, when provided, must not be blank
// - Date, when provided and non-empty, must be YYYY-MM-DD
// - Image URL, when provided and non-empty, must be http(s) or data URL
func CanUpdateTask(ctx UpdateTaskContext) GuardResult {
	if ctx.Title != nil && strings.TrimSpace(*ctx.Title) == "" {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot clear title of task %s", ctx.TaskID),
		}
	}

	if ctx.Date != nil && *ctx.Date != "" {
		if r := checkDate(*ctx.Date); !r.Allowed {
			return r
		}
	}

	if ctx.ImageURL != nil && *ctx.ImageURL != "" {
		u := *ctx.ImageURL
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") &&
			!strings.HasPrefix(u, "data:") && !strings.HasPrefix(u, "file://") {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("unsupported image URL %q", u),
			}
		}
	}

	return GuardResult{Allowed: true}
}

// CanMoveTask evaluates whether a task can be moved to a column.
// Rules:
// - Target column must exist
// - Target column must belong to the task's board
func CanMoveTask(ctx MoveTaskContext) GuardResult {
	if !ctx.ColumnExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("column %s not found", ctx.ColumnID),
		}
	}

	if ctx.ColumnBoardID != ctx.TaskBoardID {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("column %s belongs to board %s, task %s is on board %s", ctx.ColumnID, ctx.ColumnBoardID, ctx.TaskID, ctx.TaskBoardID),
		}
	}

	return GuardResult{Allowed: true}
}

// CanReorderTasks evaluates whether two tasks can be reordered.
// A refusal here is a no-op for the caller, not a failure.
// Rules:
// - Both tasks must exist
// - Both tasks must share a column
func CanReorderTasks(ctx ReorderContext) GuardResult {
	if !ctx.ActiveExists || !ctx.OverExists {
		return GuardResult{Allowed: false, Reason: "task not found"}
	}

	if ctx.ActiveID == ctx.OverID {
		return GuardResult{Allowed: false, Reason: "task is already in place"}
	}

	if ctx.ActiveColumnID != ctx.OverColumnID {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("tasks %s and %s are in different columns", ctx.ActiveID, ctx.OverID),
		}
	}

	return GuardResult{Allowed: true}
}

func checkDate(date string) GuardResult {
	if _, err := time.Parse(models.TaskDateLayout, date); err != nil {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invalid date %q (expected YYYY-MM-DD)", date),
		}
	}
	return GuardResult{Allowed: true}
}
