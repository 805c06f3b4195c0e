// Package checklist contains the pure logic for nested task checklists.
package checklist

import (
	"fmt"
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

// AddItemContext provides context for checklist item creation guards.
type AddItemContext struct {
	TaskID       string
	TaskExists   bool
	Text         string
	Type         string
	ParentID     string // optional
	ParentExists bool
	ParentType   string
	ParentTaskID string
}

// CanAddItem evaluates whether a checklist item can be created.
// Rules:
// - Task must exist
// - Text must not be blank
// - Type must be item or group
// - Parent, when given, must be a group of the same task
func CanAddItem(ctx AddItemContext) GuardResult {
	if !ctx.TaskExists {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("task %s not found", ctx.TaskID)}
	}

	if strings.TrimSpace(ctx.Text) == "" {
		return GuardResult{Allowed: false, Reason: "checklist text cannot be empty"}
	}

	if ctx.Type != models.ChecklistTypeItem && ctx.Type != models.ChecklistTypeGroup {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invalid checklist type %q (expected item or group)", ctx.Type),
		}
	}

	if ctx.ParentID == "" {
		return GuardResult{Allowed: true}
	}

	if !ctx.ParentExists {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("checklist item %s not found", ctx.ParentID)}
	}
	if ctx.ParentTaskID != ctx.TaskID {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("checklist item %s belongs to task %s", ctx.ParentID, ctx.ParentTaskID),
		}
	}
	if ctx.ParentType != models.ChecklistTypeGroup {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("checklist item %s is not a group", ctx.ParentID),
		}
	}

	return GuardResult{Allowed: true}
}

// BuildTree nests a flat list of items by ParentID, ordering siblings by
// Position. Items whose parent is missing are promoted to the top level.
func BuildTree(items []*models.ChecklistItem) []*models.ChecklistItem {
	byID := make(map[string]*models.ChecklistItem, len(items))
	for _, item := range items {
		item.Children = nil
		byID[item.ID] = item
	}

	var roots []*models.ChecklistItem
	for _, item := range items {
		if parent, ok := byID[item.ParentID]; ok && item.ParentID != "" {
			parent.Children = append(parent.Children, item)
			continue
		}
		roots = append(roots, item)
	}

	sortItems(roots)
	return roots
}

func sortItems(items []*models.ChecklistItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})
	for _, item := range items {
		sortItems(item.Children)
	}
}

// Descendants returns the IDs of every item below id in the flat list.
func Descendants(items []*models.ChecklistItem, id string) []string {
	children := make(map[string][]string)
	for _, item := range items {
		if item.ParentID != "" {
			children[item.ParentID] = append(children[item.ParentID], item.ID)
		}
	}

	var out []string
	queue := append([]string(nil), children[id]...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		out = append(out, next)
		queue = append(queue, children[next]...)
	}
	return out
}

// Ancestors walks up from the parent of id and returns the state each
// ancestor should take: completed exactly when all of its children are.
// Only ancestors whose state changes are returned. items must already
// reflect the change made to id.
func Ancestors(items []*models.ChecklistItem, id string) map[string]bool {
	byID := make(map[string]*models.ChecklistItem, len(items))
	children := make(map[string][]*models.ChecklistItem)
	for _, item := range items {
		byID[item.ID] = item
		if item.ParentID != "" {
			children[item.ParentID] = append(children[item.ParentID], item)
		}
	}

	out := make(map[string]bool)
	item, ok := byID[id]
	for ok && item.ParentID != "" {
		parent, found := byID[item.ParentID]
		if !found {
			break
		}
		done := true
		for _, child := range children[parent.ID] {
			if !child.Completed {
				done = false
				break
			}
		}
		if parent.Completed != done {
			parent.Completed = done
			out[parent.ID] = done
		}
		item, ok = parent, true
	}
	return out
}

// Progress counts the top-level entries of a tree and how many are completed.
func Progress(tree []*models.ChecklistItem) models.ChecklistProgress {
	p := models.ChecklistProgress{Total: len(tree)}
	for _, item := range tree {
		if item.Completed {
			p.Completed++
		}
	}
	return p
}
