package board

import "testing"

func TestCanDeleteBoard(t *testing.T) {
	tests := []struct {
		name        string
		ctx         DeleteBoardContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "owner can delete regular board",
			ctx:         DeleteBoardContext{BoardID: "BOARD-002", IsOwner: true},
			wantAllowed: true,
		},
		{
			name:        "default board is permanent",
			ctx:         DeleteBoardContext{BoardID: "BOARD-001", IsDefault: true, IsOwner: true},
			wantAllowed: false,
			wantReason:  "cannot delete default board BOARD-001",
		},
		{
			name:        "member cannot delete",
			ctx:         DeleteBoardContext{BoardID: "BOARD-002"},
			wantAllowed: false,
			wantReason:  "only the owner can delete board BOARD-002",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanDeleteBoard(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanRemoveMember(t *testing.T) {
	tests := []struct {
		name        string
		ctx         RemoveMemberContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "owner removes member",
			ctx:         RemoveMemberContext{BoardID: "BOARD-002", UserID: "bob", TargetRole: "member", IsMember: true, CallerID: "alice", CallerRole: "owner"},
			wantAllowed: true,
		},
		{
			name:        "member leaves",
			ctx:         RemoveMemberContext{BoardID: "BOARD-002", UserID: "bob", TargetRole: "member", IsMember: true, CallerID: "bob", CallerRole: "member"},
			wantAllowed: true,
		},
		{
			name:        "member cannot remove another member",
			ctx:         RemoveMemberContext{BoardID: "BOARD-002", UserID: "carol", TargetRole: "member", IsMember: true, CallerID: "bob", CallerRole: "member"},
			wantAllowed: false,
			wantReason:  "only the owner can remove members of board BOARD-002",
		},
		{
			name:        "outsider cannot remove member",
			ctx:         RemoveMemberContext{BoardID: "BOARD-002", UserID: "carol", TargetRole: "member", IsMember: true, CallerID: "mallory"},
			wantAllowed: false,
			wantReason:  "only the owner can remove members of board BOARD-002",
		},
		{
			name:        "owner cannot be removed",
			ctx:         RemoveMemberContext{BoardID: "BOARD-002", UserID: "alice", TargetRole: "owner", IsMember: true, CallerID: "alice", CallerRole: "owner"},
			wantAllowed: false,
			wantReason:  "cannot remove owner alice from board BOARD-002",
		},
		{
			name:        "non member",
			ctx:         RemoveMemberContext{BoardID: "BOARD-002", UserID: "eve"},
			wantAllowed: false,
			wantReason:  "user eve is not a member of board BOARD-002",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanRemoveMember(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestValidateCalendarURL(t *testing.T) {
	tests := []struct {
		url         string
		wantAllowed bool
	}{
		{"https://calendar.google.com/calendar/embed?src=abc", true},
		{"http://localhost:8080/cal", true},
		{"calendar.google.com/embed", false},
		{"javascript:alert(1)", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := ValidateCalendarURL(tt.url).Allowed; got != tt.wantAllowed {
				t.Errorf("ValidateCalendarURL(%q) = %v, want %v", tt.url, got, tt.wantAllowed)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	if ValidateName("board", " \t").Allowed {
		t.Error("expected blank name to be rejected")
	}
	if got := ValidateName("column", "").Reason; got != "column name cannot be empty" {
		t.Errorf("Reason = %q", got)
	}
	if !ValidateName("board", "Work").Allowed {
		t.Error("expected name to be accepted")
	}
}

func TestNextSelection(t *testing.T) {
	tests := []struct {
		name      string
		selected  string
		deleted   string
		defaultID string
		remaining []string
		want      string
	}{
		{"keep unrelated selection", "BOARD-003", "BOARD-002", "BOARD-001", nil, "BOARD-003"},
		{"fall back to default", "BOARD-002", "BOARD-002", "BOARD-001", nil, "BOARD-001"},
		{"fall back to first remaining", "BOARD-002", "BOARD-002", "", []string{"BOARD-002", "BOARD-004"}, "BOARD-004"},
		{"nothing left", "BOARD-002", "BOARD-002", "", []string{"BOARD-002"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextSelection(tt.selected, tt.deleted, tt.defaultID, tt.remaining); got != tt.want {
				t.Errorf("NextSelection() = %q, want %q", got, tt.want)
			}
		})
	}
}
