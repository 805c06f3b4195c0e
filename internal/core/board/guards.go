// Package board contains the pure business logic for boards and columns.
// Guards are pure functions that evaluate preconditions without side effects.
package board

import (
	"fmt"
	"net/url"
	"strings"
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

// DeleteBoardContext provides context for board deletion guards.
type DeleteBoardContext struct {
	BoardID   string
	IsDefault bool
	IsOwner   bool
}

// MembershipContext provides context for member-scoped operations.
type MembershipContext struct {
	BoardID  string
	UserID   string
	IsMember bool
}

// RemoveMemberContext provides context for removing a member.
type RemoveMemberContext struct {
	BoardID    string
	UserID     string
	TargetRole string
	IsMember   bool
	CallerID   string
	CallerRole string
}

// CanDeleteBoard evaluates whether a board can be deleted.
// Rules:
// - The default board is permanent
// - Only the owner may delete a shared board
func CanDeleteBoard(ctx DeleteBoardContext) GuardResult {
	if ctx.IsDefault {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot delete default board %s", ctx.BoardID),
		}
	}

	if !ctx.IsOwner {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("only the owner can delete board %s", ctx.BoardID),
		}
	}

	return GuardResult{Allowed: true}
}

// CanAccessBoard evaluates whether a user may act on a board.
func CanAccessBoard(ctx MembershipContext) GuardResult {
	if !ctx.IsMember {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("user %s is not a member of board %s", ctx.UserID, ctx.BoardID),
		}
	}
	return GuardResult{Allowed: true}
}

// CanRemoveMember evaluates whether a member can be removed from a board.
// Rules:
// - Target must be a member
// - The owner cannot be removed
// - Only the owner may remove someone else; members may remove themselves
func CanRemoveMember(ctx RemoveMemberContext) GuardResult {
	if !ctx.IsMember {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("user %s is not a member of board %s", ctx.UserID, ctx.BoardID),
		}
	}

	if ctx.TargetRole == "owner" {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot remove owner %s from board %s", ctx.UserID, ctx.BoardID),
		}
	}

	if ctx.CallerRole != "owner" && ctx.CallerID != ctx.UserID {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("only the owner can remove members of board %s", ctx.BoardID),
		}
	}

	return GuardResult{Allowed: true}
}

// ValidateName checks that a board or column name is not blank.
func ValidateName(kind, name string) GuardResult {
	if strings.TrimSpace(name) == "" {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("%s name cannot be empty", kind)}
	}
	return GuardResult{Allowed: true}
}

// ValidateCalendarURL checks that a calendar embed URL is absolute http(s).
func ValidateCalendarURL(raw string) GuardResult {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invalid calendar URL %q (expected http(s) URL)", raw),
		}
	}
	return GuardResult{Allowed: true}
}

// NextSelection picks the board to select after deletedID is removed.
// The current selection is kept unless it was the deleted board; then the
// default board wins, falling back to the first remaining board.
func NextSelection(selected, deletedID, defaultID string, remaining []string) string {
	if selected != "" && selected != deletedID {
		return selected
	}
	if defaultID != "" && defaultID != deletedID {
		return defaultID
	}
	for _, id := range remaining {
		if id != deletedID {
			return id
		}
	}
	return ""
}
