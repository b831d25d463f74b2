package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSelection(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	added, err := s.AddSelection(ctx, SelectionItem{ElementID: "e1", Label: "Age", DataClassID: "c1", DataModelID: "m1"})
	require.NoError(t, err)
	assert.True(t, added)

	has, err := s.HasSelection(ctx, "e1")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = s.HasSelection(ctx, "e2")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestAddSelectionIdempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.AddSelection(ctx, SelectionItem{ElementID: "e1", Label: "first"})
	require.NoError(t, err)

	added, err := s.AddSelection(ctx, SelectionItem{ElementID: "e1", Label: "second"})
	require.NoError(t, err)
	assert.False(t, added, "duplicate add is a no-op")

	items, err := s.ListSelection(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "first", items[0].Label, "original details are kept")
}

func TestAddSelectionEmptyID(t *testing.T) {
	s := createTestStore(t)
	_, err := s.AddSelection(context.Background(), SelectionItem{})
	require.Error(t, err)
}

func TestListSelectionInsertionOrder(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"zeta", "alpha", "mid"} {
		_, err := s.AddSelection(ctx, SelectionItem{ElementID: id})
		require.NoError(t, err)
	}

	items, err := s.ListSelection(ctx)
	require.NoError(t, err)

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ElementID
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, ids)
}

func TestListSelectionEmpty(t *testing.T) {
	s := createTestStore(t)

	items, err := s.ListSelection(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestRemoveSelection(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.AddSelection(ctx, SelectionItem{ElementID: "e1"})
	require.NoError(t, err)
	_, err = s.AddSelection(ctx, SelectionItem{ElementID: "e2"})
	require.NoError(t, err)

	require.NoError(t, s.RemoveSelection(ctx, "e1"))

	items, err := s.ListSelection(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "e2", items[0].ElementID)

	err = s.RemoveSelection(ctx, "e1")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestClearSelection(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"e1", "e2", "e3"} {
		_, err := s.AddSelection(ctx, SelectionItem{ElementID: id})
		require.NoError(t, err)
	}

	n, err := s.ClearSelection(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	items, err := s.ListSelection(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	n, err = s.ClearSelection(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
