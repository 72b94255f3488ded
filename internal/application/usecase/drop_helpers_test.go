package usecase_test

import (
	"context"
	"slices"
	"testing"

	"github.com/bnema/sidebar/internal/domain/dnd"
	"github.com/bnema/sidebar/internal/domain/entity"
	"github.com/bnema/sidebar/internal/infrastructure/memory"
	"github.com/bnema/sidebar/internal/logging"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func newSession(t *testing.T, items ...dnd.Item) *dnd.Session {
	t.Helper()
	s, err := dnd.NewSession(items...)
	require.NoError(t, err)
	return s
}

// accept negotiates like the coordinator does before a drop.
func accept(t *testing.T, target dnd.DropTarget, s *dnd.Session) dnd.Format {
	t.Helper()
	f, ok := target.Accepts(s)
	require.True(t, ok, "target %s rejected the session", target.TargetID)
	return f
}

type fakeSelection []string

func (f fakeSelection) Contains(id string) bool { return slices.Contains(f, id) }
func (f fakeSelection) IDs() []string           { return slices.Clone(f) }

func tabOrder(t *testing.T, ws *memory.Workspace) []entity.TabID {
	t.Helper()
	tabs, err := ws.Tabs.List(testContext())
	require.NoError(t, err)
	ids := make([]entity.TabID, len(tabs))
	for i, tab := range tabs {
		ids[i] = tab.ID
	}
	return ids
}

func bookmarkOrder(t *testing.T, ws *memory.Workspace, folder entity.BookmarkID) []entity.BookmarkID {
	t.Helper()
	children, err := ws.Bookmarks.Children(testContext(), folder)
	require.NoError(t, err)
	ids := make([]entity.BookmarkID, len(children))
	for i, c := range children {
		ids[i] = c.ID
	}
	return ids
}

func getTab(t *testing.T, ws *memory.Workspace, id entity.TabID) *entity.Tab {
	t.Helper()
	tab, err := ws.Tabs.Get(testContext(), id)
	require.NoError(t, err)
	return tab
}

func getBookmark(t *testing.T, ws *memory.Workspace, id entity.BookmarkID) *entity.Bookmark {
	t.Helper()
	b, err := ws.Bookmarks.Get(testContext(), id)
	require.NoError(t, err)
	return b
}

func getGroup(t *testing.T, ws *memory.Workspace, id entity.TabGroupID) *entity.TabGroup {
	t.Helper()
	g, err := ws.Tabs.Group(testContext(), id)
	require.NoError(t, err)
	return g
}
