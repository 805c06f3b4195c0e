package task

import "testing"

func strPtr(s string) *string { return &s }

func TestCanCreateTask(t *testing.T) {
	tests := []struct {
		name        string
		ctx         CreateTaskContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "can create task when column exists",
			ctx:         CreateTaskContext{ColumnID: "COL-001", ColumnExists: true, Title: "Write report"},
			wantAllowed: true,
		},
		{
			name:        "can create task with valid date",
			ctx:         CreateTaskContext{ColumnID: "COL-001", ColumnExists: true, Title: "Write report", Date: "2026-03-01"},
			wantAllowed: true,
		},
		{
			name:        "cannot create task when column not found",
			ctx:         CreateTaskContext{ColumnID: "COL-999", ColumnExists: false, Title: "Write report"},
			wantAllowed: false,
			wantReason:  "column COL-999 not found",
		},
		{
			name:        "cannot create task with blank title",
			ctx:         CreateTaskContext{ColumnID: "COL-001", ColumnExists: true, Title: "   "},
			wantAllowed: false,
			wantReason:  "task title cannot be empty",
		},
		{
			name:        "cannot create task with malformed date",
			ctx:         CreateTaskContext{ColumnID: "COL-001", ColumnExists: true, Title: "x", Date: "03/01/2026"},
			wantAllowed: false,
			wantReason:  `invalid date "03/01/2026" (expected YYYY-MM-DD)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanCreateTask(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanUpdateTask(t *testing.T) {
	tests := []struct {
		name        string
		ctx         UpdateTaskContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "no fields is allowed",
			ctx:         UpdateTaskContext{TaskID: "TASK-001"},
			wantAllowed: true,
		},
		{
			name:        "clearing date is allowed",
			ctx:         UpdateTaskContext{TaskID: "TASK-001", Date: strPtr("")},
			wantAllowed: true,
		},
		{
			name:        "data image url is allowed",
			ctx:         UpdateTaskContext{TaskID: "TASK-001", ImageURL: strPtr("data:image/png;base64,AAAA")},
			wantAllowed: true,
		},
		{
			name:        "clearing title is rejected",
			ctx:         UpdateTaskContext{TaskID: "TASK-001", Title: strPtr("")},
			wantAllowed: false,
			wantReason:  "cannot clear title of task TASK-001",
		},
		{
			name:        "bad date is rejected",
			ctx:         UpdateTaskContext{TaskID: "TASK-001", Date: strPtr("tomorrow")},
			wantAllowed: false,
			wantReason:  `invalid date "tomorrow" (expected YYYY-MM-DD)`,
		},
		{
			name:        "ftp image url is rejected",
			ctx:         UpdateTaskContext{TaskID: "TASK-001", ImageURL: strPtr("ftp://host/a.png")},
			wantAllowed: false,
			wantReason:  `unsupported image URL "ftp://host/a.png"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanUpdateTask(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanMoveTask(t *testing.T) {
	tests := []struct {
		name        string
		ctx         MoveTaskContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "can move within board",
			ctx:         MoveTaskContext{TaskID: "TASK-001", TaskBoardID: "BOARD-001", ColumnID: "COL-002", ColumnExists: true, ColumnBoardID: "BOARD-001"},
			wantAllowed: true,
		},
		{
			name:        "cannot move to missing column",
			ctx:         MoveTaskContext{TaskID: "TASK-001", TaskBoardID: "BOARD-001", ColumnID: "COL-999"},
			wantAllowed: false,
			wantReason:  "column COL-999 not found",
		},
		{
			name:        "cannot move across boards",
			ctx:         MoveTaskContext{TaskID: "TASK-001", TaskBoardID: "BOARD-001", ColumnID: "COL-004", ColumnExists: true, ColumnBoardID: "BOARD-002"},
			wantAllowed: false,
			wantReason:  "column COL-004 belongs to board BOARD-002, task TASK-001 is on board BOARD-001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanMoveTask(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanReorderTasks(t *testing.T) {
	tests := []struct {
		name        string
		ctx         ReorderContext
		wantAllowed bool
	}{
		{
			name:        "same column",
			ctx:         ReorderContext{ActiveID: "TASK-001", OverID: "TASK-002", ActiveExists: true, OverExists: true, ActiveColumnID: "COL-001", OverColumnID: "COL-001"},
			wantAllowed: true,
		},
		{
			name:        "different columns",
			ctx:         ReorderContext{ActiveID: "TASK-001", OverID: "TASK-002", ActiveExists: true, OverExists: true, ActiveColumnID: "COL-001", OverColumnID: "COL-002"},
			wantAllowed: false,
		},
		{
			name:        "missing over task",
			ctx:         ReorderContext{ActiveID: "TASK-001", OverID: "TASK-999", ActiveExists: true},
			wantAllowed: false,
		},
		{
			name:        "same task",
			ctx:         ReorderContext{ActiveID: "TASK-001", OverID: "TASK-001", ActiveExists: true, OverExists: true, ActiveColumnID: "COL-001", OverColumnID: "COL-001"},
			wantAllowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanReorderTasks(tt.ctx).Allowed; got != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", got, tt.wantAllowed)
			}
		})
	}
}
