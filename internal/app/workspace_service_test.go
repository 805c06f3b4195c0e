package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceService(t *testing.T) {
	store := &memoryStateStore{}
	svc := NewWorkspaceService(store)
	ctx := context.Background()

	dark, err := svc.ToggleDarkMode(ctx)
	require.NoError(t, err)
	assert.True(t, dark)

	dark, err = svc.ToggleDarkMode(ctx)
	require.NoError(t, err)
	assert.False(t, dark)

	require.NoError(t, svc.SetSearchQuery(ctx, "milk"))
	require.NoError(t, svc.SetTagSearch(ctx, "home,work"))

	state, err := svc.GetState(ctx)
	require.NoError(t, err)
	assert.Equal(t, "milk", state.SearchQuery)
	assert.Equal(t, "home,work", state.TagSearch)
	assert.False(t, state.DarkMode)
	assert.Equal(t, 4, store.saves)
}
