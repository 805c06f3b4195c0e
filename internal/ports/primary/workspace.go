package primary

import "context"

// WorkspaceService defines the primary port for client UI preferences.
type WorkspaceService interface {
	// GetState returns the persisted preferences.
	GetState(ctx context.Context) (*WorkspaceState, error)

	// ToggleDarkMode flips dark mode and returns the new value.
	ToggleDarkMode(ctx context.Context) (bool, error)

	// SetSearchQuery stores the default title search.
	SetSearchQuery(ctx context.Context, query string) error

	// SetTagSearch stores the default comma separated tag search.
	SetTagSearch(ctx context.Context, tags string) error
}

// WorkspaceState is the client UI state at the port boundary.
type WorkspaceState struct {
	SelectedBoard string `json:"selected_board"`
	DarkMode      bool   `json:"dark_mode"`
	SearchQuery   string `json:"search_query"`
	TagSearch     string `json:"tag_search"`
}
