// Package filter implements board task search.
package filter

import (
	"sort"
	"strings"

	"github.com/example/kanban/internal/models"
)

// Criteria narrows a task list. Empty fields match everything.
type Criteria struct {
	ColumnID string
	Query    string // case-insensitive title substring, matched as given
	Tags     string // comma separated label names, any-match
}

// ParseTags splits a comma separated tag search into trimmed, lower-cased
// names, dropping empty entries.
func ParseTags(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Matches reports whether a task satisfies the query and any of the tags.
func Matches(t *models.Task, query string, tags []string) bool {
	if query != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(query)) {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, label := range t.Labels {
		name := strings.ToLower(label)
		for _, tag := range tags {
			if name == tag {
				return true
			}
		}
	}
	return false
}

// Apply returns the tasks matching c, newest first.
func Apply(tasks []*models.Task, c Criteria) []*models.Task {
	tags := ParseTags(c.Tags)

	out := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		if c.ColumnID != "" && t.ColumnID != c.ColumnID {
			continue
		}
		if Matches(t, c.Query, tags) {
			out = append(out, t)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
