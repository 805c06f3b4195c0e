package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/kanban/internal/ports/secondary"
)

// stateFile is the name of the workspace state file inside the kanban dir.
const stateFile = "state.json"

// LoadState reads state.json from dir. A missing file yields the zero state
// (no board selected, light mode, no saved filters).
func LoadState(dir string) (*secondary.WorkspaceState, error) {
	path := filepath.Join(dir, stateFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &secondary.WorkspaceState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	var state secondary.WorkspaceState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state: %w", err)
	}

	return &state, nil
}

// SaveState writes state.json to dir
func SaveState(dir string, state *secondary.WorkspaceState) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	path := filepath.Join(dir, stateFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}

	return nil
}

// StateStore implements secondary.WorkspaceStateStore on state.json.
type StateStore struct {
	dir string
}

// NewStateStore creates a store keeping state.json under dir.
func NewStateStore(dir string) *StateStore {
	return &StateStore{dir: dir}
}

// Load reads the current state.
func (s *StateStore) Load() (*secondary.WorkspaceState, error) {
	return LoadState(s.dir)
}

// Save persists state.
func (s *StateStore) Save(state *secondary.WorkspaceState) error {
	return SaveState(s.dir, state)
}

// Path returns the location of state.json.
func (s *StateStore) Path() string {
	return filepath.Join(s.dir, stateFile)
}

var _ secondary.WorkspaceStateStore = (*StateStore)(nil)
