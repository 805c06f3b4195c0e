package label

import (
	"testing"

	"github.com/example/kanban/internal/models"
)

func TestValidateColor(t *testing.T) {
	tests := []struct {
		color       string
		wantAllowed bool
	}{
		{"#ff0000", true},
		{"#A1b2C3", true},
		{"ff0000", false},
		{"#fff", false},
		{"#gggggg", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			if got := ValidateColor(tt.color).Allowed; got != tt.wantAllowed {
				t.Errorf("ValidateColor(%q) = %v, want %v", tt.color, got, tt.wantAllowed)
			}
		})
	}
}

func TestCanRenameLabel(t *testing.T) {
	tests := []struct {
		name        string
		ctx         RenameContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "free name",
			ctx:         RenameContext{BoardID: "BOARD-001", OldName: "bug", NewName: "defect"},
			wantAllowed: true,
		},
		{
			name:        "same name is a color-only update",
			ctx:         RenameContext{BoardID: "BOARD-001", OldName: "bug", NewName: "bug", NameTaken: true},
			wantAllowed: true,
		},
		{
			name:        "collision",
			ctx:         RenameContext{BoardID: "BOARD-001", OldName: "bug", NewName: "urgent", NameTaken: true},
			wantAllowed: false,
			wantReason:  `label "urgent" already exists on board BOARD-001`,
		},
		{
			name:        "blank",
			ctx:         RenameContext{BoardID: "BOARD-001", OldName: "bug", NewName: " "},
			wantAllowed: false,
			wantReason:  "label name cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanRenameLabel(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestRank(t *testing.T) {
	labels := []*models.Label{
		{Name: "docs", UsageCount: 1},
		{Name: "bug", UsageCount: 5},
		{Name: "urgent", UsageCount: 0, Pinned: true},
		{Name: "api", UsageCount: 5},
		{Name: "ops", UsageCount: 9, Pinned: true},
	}

	Rank(labels)

	want := []string{"ops", "urgent", "api", "bug", "docs"}
	for i, l := range labels {
		if l.Name != want[i] {
			t.Errorf("position %d = %q, want %q", i, l.Name, want[i])
		}
	}
}
