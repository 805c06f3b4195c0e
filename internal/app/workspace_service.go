package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/kanban/internal/ports/primary"
	"github.com/example/kanban/internal/ports/secondary"
)

// WorkspaceServiceImpl implements the WorkspaceService interface.
type WorkspaceServiceImpl struct {
	store secondary.WorkspaceStateStore
}

// NewWorkspaceService creates a new WorkspaceService with injected dependencies.
func NewWorkspaceService(store secondary.WorkspaceStateStore) *WorkspaceServiceImpl {
	return &WorkspaceServiceImpl{store: store}
}

// GetState returns the persisted preferences.
func (s *WorkspaceServiceImpl) GetState(_ context.Context) (*primary.WorkspaceState, error) {
	state, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace state: %w", err)
	}
	return &primary.WorkspaceState{
		SelectedBoard: state.SelectedBoard,
		DarkMode:      state.DarkMode,
		SearchQuery:   state.SearchQuery,
		TagSearch:     state.TagSearch,
	}, nil
}

// ToggleDarkMode flips dark mode and returns the new value.
func (s *WorkspaceServiceImpl) ToggleDarkMode(_ context.Context) (bool, error) {
	var dark bool
	err := s.update(func(st *secondary.WorkspaceState) {
		st.DarkMode = !st.DarkMode
		dark = st.DarkMode
	})
	return dark, err
}

// SetSearchQuery stores the default title search.
func (s *WorkspaceServiceImpl) SetSearchQuery(_ context.Context, query string) error {
	return s.update(func(st *secondary.WorkspaceState) {
		st.SearchQuery = strings.TrimSpace(query)
	})
}

// SetTagSearch stores the default comma separated tag search.
func (s *WorkspaceServiceImpl) SetTagSearch(_ context.Context, tags string) error {
	return s.update(func(st *secondary.WorkspaceState) {
		st.TagSearch = strings.TrimSpace(tags)
	})
}

func (s *WorkspaceServiceImpl) update(mutate func(*secondary.WorkspaceState)) error {
	state, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load workspace state: %w", err)
	}
	mutate(state)
	if err := s.store.Save(state); err != nil {
		return fmt.Errorf("failed to save workspace state: %w", err)
	}
	return nil
}

// Ensure WorkspaceServiceImpl implements the interface
var _ primary.WorkspaceService = (*WorkspaceServiceImpl)(nil)
