package memory_test

import (
	"testing"

	"github.com/bnema/sidebar/internal/domain/entity"
	"github.com/bnema/sidebar/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tabIDs(t *testing.T, s *memory.TabStore) []entity.TabID {
	t.Helper()
	tabs, err := s.List(testContext())
	require.NoError(t, err)
	ids := make([]entity.TabID, len(tabs))
	for i, tab := range tabs {
		ids[i] = tab.ID
	}
	return ids
}

func TestTabStore_MoveAndGroup(t *testing.T) {
	ctx := testContext()
	s := memory.DemoWorkspace().Tabs

	changes := 0
	s.OnChange(func() { changes++ })

	require.NoError(t, s.Move(ctx, []entity.TabID{"t4"}, 0))
	assert.Equal(t, []entity.TabID{"t4", "t1", "t2", "t3"}, tabIDs(t, s))

	require.NoError(t, s.SetGroup(ctx, []entity.TabID{"t4"}, "g1"))
	tabs, err := s.GroupTabs(ctx, "g1")
	require.NoError(t, err)
	assert.Len(t, tabs, 3)

	require.NoError(t, s.SetGroup(ctx, []entity.TabID{"t2", "t3", "t4"}, ""))
	_, err = s.Group(ctx, "g1")
	assert.ErrorIs(t, err, entity.ErrNotFound, "empty groups are pruned")
	assert.Equal(t, 3, changes)
}

func TestTabStore_CreateAndMoveToSpace(t *testing.T) {
	ctx := testContext()
	s := memory.DemoWorkspace().Tabs

	tab, err := s.Create(ctx, "https://new.example.com", 1, "g1")
	require.NoError(t, err)
	assert.Equal(t, entity.TabGroupID("g1"), tab.GroupID)
	assert.Equal(t, []entity.TabID{"t1", tab.ID, "t2", "t3", "t4"}, tabIDs(t, s))

	_, err = s.Create(ctx, "https://x.example.com", 0, "nope")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	require.NoError(t, s.MoveToSpace(ctx, []entity.TabID{"t1"}, "home"))
	got, err := s.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, entity.SpaceID("home"), got.SpaceID)

	assert.ErrorIs(t, s.MoveToSpace(ctx, []entity.TabID{"zz"}, "home"), entity.ErrNotFound)
}

func TestTabStore_ReturnsCopies(t *testing.T) {
	ctx := testContext()
	s := memory.DemoWorkspace().Tabs

	tab, err := s.Get(ctx, "t1")
	require.NoError(t, err)
	tab.Title = "changed"

	again, err := s.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Go", again.Title)
}

func TestPinnedStore_CreateAndFind(t *testing.T) {
	ctx := testContext()
	s := memory.DemoWorkspace().Pinned

	found, err := s.FindByURL(ctx, "https://mail.example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, entity.PinnedSiteID("p1"), found.ID)

	missing, err := s.FindByURL(ctx, "https://nowhere.example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	site, err := s.Create(ctx, "https://docs.example.com", "Docs", 0)
	require.NoError(t, err)
	require.NoError(t, s.Move(ctx, []entity.PinnedSiteID{site.ID}, 5))

	sites, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, sites, 3)
	assert.Equal(t, site.ID, sites[2].ID)
}

func TestSpaceStore_Move(t *testing.T) {
	ctx := testContext()
	s := memory.DemoWorkspace().Spaces

	require.NoError(t, s.Move(ctx, []entity.SpaceID{"read"}, 0))
	spaces, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, spaces, 3)
	assert.Equal(t, entity.SpaceID("read"), spaces[0].ID)

	assert.ErrorIs(t, s.Move(ctx, []entity.SpaceID{"nope"}, 0), entity.ErrNotFound)
}

func TestSpaceStore_SetActive(t *testing.T) {
	ctx := testContext()
	s := memory.DemoWorkspace().Spaces

	require.NoError(t, s.SetActive(ctx, "home"))
	s.View(func(l *entity.SpaceList) {
		assert.Equal(t, entity.SpaceID("home"), l.ActiveID)
	})
	assert.ErrorIs(t, s.SetActive(ctx, "nope"), entity.ErrNotFound)
}
