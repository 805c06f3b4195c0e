package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/kanban/internal/ports/secondary"
)

func TestLoadState_MissingFile(t *testing.T) {
	state, err := LoadState(t.TempDir())
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if *state != (secondary.WorkspaceState{}) {
		t.Errorf("expected zero state, got %+v", state)
	}
}

func TestStateStore_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	store := NewStateStore(dir)

	want := &secondary.WorkspaceState{SelectedBoard: "BOARD-002", DarkMode: true, TagSearch: "work"}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *got != *want {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	if _, err := os.Stat(store.Path()); err != nil {
		t.Errorf("expected state file at %s: %v", store.Path(), err)
	}
}

func TestLoadState_Corrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, stateFile), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadState(dir); err == nil {
		t.Error("expected parse error")
	}
}
