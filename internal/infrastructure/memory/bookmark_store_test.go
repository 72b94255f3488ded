package memory_test

import (
	"testing"

	"github.com/bnema/sidebar/internal/domain/entity"
	"github.com/bnema/sidebar/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func childIDs(t *testing.T, s *memory.BookmarkStore, id entity.BookmarkID) []entity.BookmarkID {
	t.Helper()
	children, err := s.Children(testContext(), id)
	require.NoError(t, err)
	ids := make([]entity.BookmarkID, len(children))
	for i, c := range children {
		ids[i] = c.ID
	}
	return ids
}

func TestBookmarkStore_BatchRefreshesOnce(t *testing.T) {
	ctx := testContext()
	ws := memory.DemoWorkspace()
	s := ws.Bookmarks

	calls := 0
	s.OnChange(func() { calls++ })

	batch := s.Batch(ctx)
	require.NoError(t, batch.Move(ctx, "b1", "f2", 0))
	require.NoError(t, batch.Move(ctx, "b2", "f2", 1))
	created, err := batch.Create(ctx, "f2", 2, "Example", "https://example.com")
	require.NoError(t, err)
	assert.Zero(t, calls, "listeners wait for End")

	require.NoError(t, batch.End(ctx))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, s.Refreshes())
	assert.Equal(t, []entity.BookmarkID{"b1", "b2", created.ID}, childIDs(t, s, "f2"))
	assert.Empty(t, childIDs(t, s, "f1"))

	assert.ErrorIs(t, batch.End(ctx), memory.ErrBatchEnded)
	assert.ErrorIs(t, batch.Move(ctx, "b3", "f2", 0), memory.ErrBatchEnded)
}

func TestBookmarkStore_EmptyBatchDoesNotRefresh(t *testing.T) {
	ctx := testContext()
	s := memory.DemoWorkspace().Bookmarks

	require.NoError(t, s.Batch(ctx).End(ctx))
	assert.Zero(t, s.Refreshes())
}

func TestBookmarkStore_MoveFolderIntoDescendantFails(t *testing.T) {
	ctx := testContext()
	s := memory.DemoWorkspace().Bookmarks

	batch := s.Batch(ctx)
	err := batch.Move(ctx, "f1", "f1", 0)
	assert.ErrorIs(t, err, entity.ErrCycle)
	require.NoError(t, batch.End(ctx))
	assert.Equal(t, []entity.BookmarkID{"f1", "f2", "b3"}, childIDs(t, s, entity.RootBookmarkID))
}

func TestBookmarkStore_GetAndExpand(t *testing.T) {
	ctx := testContext()
	s := memory.DemoWorkspace().Bookmarks

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	require.NoError(t, s.SetExpanded(ctx, "f1", true))
	f1, err := s.Get(ctx, "f1")
	require.NoError(t, err)
	assert.True(t, f1.Expanded)

	ok, err := s.IsAncestor(ctx, "f1", "b2")
	require.NoError(t, err)
	assert.True(t, ok)
}
