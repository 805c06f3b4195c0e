// Package label contains the pure business logic for board labels.
package label

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

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

// RenameContext provides context for label rename guards.
type RenameContext struct {
	BoardID   string
	OldName   string
	NewName   string
	NameTaken bool // another label on the board already uses NewName
}

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateColor checks that a color is a #rrggbb hex string.
func ValidateColor(color string) GuardResult {
	if !colorPattern.MatchString(color) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invalid color %q (expected #rrggbb)", color),
		}
	}
	return GuardResult{Allowed: true}
}

// ValidateName checks that a label name is not blank.
func ValidateName(name string) GuardResult {
	if strings.TrimSpace(name) == "" {
		return GuardResult{Allowed: false, Reason: "label name cannot be empty"}
	}
	return GuardResult{Allowed: true}
}

// CanRenameLabel evaluates whether a label can be renamed.
// Rules:
// - New name must not be blank
// - New name must not collide with another label on the board
func CanRenameLabel(ctx RenameContext) GuardResult {
	if r := ValidateName(ctx.NewName); !r.Allowed {
		return r
	}

	if ctx.NewName != ctx.OldName && ctx.NameTaken {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("label %q already exists on board %s", ctx.NewName, ctx.BoardID),
		}
	}

	return GuardResult{Allowed: true}
}

// Rank orders labels pinned first, then by usage count descending, then name.
func Rank(labels []*models.Label) {
	sort.SliceStable(labels, func(i, j int) bool {
		a, b := labels[i], labels[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		if a.UsageCount != b.UsageCount {
			return a.UsageCount > b.UsageCount
		}
		return a.Name < b.Name
	})
}
