package host_test

import (
	"testing"
	"time"

	"github.com/bnema/sidebar/internal/domain/dnd"
	"github.com/bnema/sidebar/internal/domain/entity"
	"github.com/bnema/sidebar/internal/ui/dragdrop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSidebar_DragTabBeforeFirst(t *testing.T) {
	sb, _ := newDemoSidebar(t)
	ctx := testContext()
	coord := sb.Coordinator()

	require.True(t, coord.Start(ctx, "t4", 20, 16.5))
	coord.Move(ctx, 20, 7.5)

	snap := coord.Snapshot()
	assert.Equal(t, dragdrop.StateOver, snap.State)
	assert.Equal(t, "t1", snap.TargetID)
	assert.Equal(t, dnd.PositionBefore, snap.Position)
	assert.Equal(t, 40.0, snap.OverlayWidth)

	res := coord.End(ctx)
	require.True(t, res.Valid)
	assert.Equal(t, []string{"t4", "t1", "t2", "t3"}, tabIDs(t, sb.Workspace()))
}

func TestSidebar_DragTabIntoGroup(t *testing.T) {
	sb, _ := newDemoSidebar(t)
	ctx := testContext()
	coord := sb.Coordinator()

	require.True(t, coord.Start(ctx, "t1", 20, 7.5))
	coord.Move(ctx, 20, 10.5)
	assert.Equal(t, dnd.PositionInto, coord.Snapshot().Position)

	res := coord.End(ctx)
	require.True(t, res.Valid)
	assert.Equal(t, []string{"t2", "t3", "t1", "t4"}, tabIDs(t, sb.Workspace()))

	tab, err := sb.Workspace().Tabs.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, entity.TabGroupID("g1"), tab.GroupID)
}

func TestSidebar_HoverExpandsFolder(t *testing.T) {
	sb, sched := newDemoSidebar(t)
	ctx := testContext()
	coord := sb.Coordinator()

	require.True(t, coord.Start(ctx, "b3", 20, 27.5))
	coord.Move(ctx, 20, 22.5)
	assert.Equal(t, dnd.PositionInto, coord.Snapshot().Position)
	assert.Equal(t, 1, sched.Pending())

	assert.Equal(t, 1, sched.Fire())
	f1, err := sb.Workspace().Bookmarks.Get(ctx, "f1")
	require.NoError(t, err)
	assert.True(t, f1.Expanded)

	res := coord.End(ctx)
	require.True(t, res.Valid)
	children, err := sb.Workspace().Bookmarks.Children(ctx, "f1")
	require.NoError(t, err)
	require.Len(t, children, 3)
	assert.Equal(t, entity.BookmarkID("b3"), children[2].ID)
}

func TestSidebar_LeavingFolderDisarmsExpand(t *testing.T) {
	sb, sched := newDemoSidebar(t)
	ctx := testContext()
	coord := sb.Coordinator()

	require.True(t, coord.Start(ctx, "b3", 20, 27.5))
	coord.Move(ctx, 20, 22.5)
	coord.Move(ctx, 20, 25.5)
	assert.Equal(t, "f2", coord.Snapshot().TargetID)
	assert.Equal(t, 1, sched.Pending())

	coord.Cancel(ctx)
	assert.Zero(t, sched.Pending())
	assert.Zero(t, sched.Fire())
}

func TestSidebar_DragTabOntoSpace(t *testing.T) {
	sb, _ := newDemoSidebar(t)
	ctx := testContext()
	coord := sb.Coordinator()

	require.True(t, coord.Start(ctx, "t4", 20, 16.5))
	coord.Move(ctx, 15.5, 4.5)
	snap := coord.Snapshot()
	assert.Equal(t, dnd.ZoneSpaces, snap.TargetZone)
	assert.Equal(t, dnd.FormatTab, snap.Format)

	require.True(t, coord.End(ctx).Valid)
	tab, err := sb.Workspace().Tabs.Get(ctx, "t4")
	require.NoError(t, err)
	assert.Equal(t, entity.SpaceID("home"), tab.SpaceID)

	_, visible := sb.Frame().Element("t4")
	assert.False(t, visible)
}

func TestSidebar_DragBookmarkToPinnedEnd(t *testing.T) {
	sb, _ := newDemoSidebar(t)
	ctx := testContext()
	coord := sb.Coordinator()

	require.True(t, coord.Start(ctx, "b3", 20, 27.5))
	coord.Move(ctx, 30.5, 1.5)
	assert.Equal(t, "zone-end", coord.Snapshot().TargetID)

	require.True(t, coord.End(ctx).Valid)
	pins, err := sb.Workspace().Pinned.List(ctx)
	require.NoError(t, err)
	require.Len(t, pins, 3)
	assert.Equal(t, "https://news.example.com", pins[2].URL)
}

func TestSidebar_SecondStartIgnoredWhileDragging(t *testing.T) {
	sb, _ := newDemoSidebar(t)
	ctx := testContext()
	coord := sb.Coordinator()

	require.True(t, coord.Start(ctx, "t4", 20, 16.5))
	assert.False(t, coord.Start(ctx, "t1", 20, 7.5))
	assert.Equal(t, "t4", coord.Snapshot().SourceID)

	coord.Cancel(ctx)
	assert.Equal(t, dragdrop.StateIdle, coord.Snapshot().State)
	assert.Equal(t, []string{"t1", "t2", "t3", "t4"}, tabIDs(t, sb.Workspace()))
}

func TestSidebar_StartIgnoresZoneEnd(t *testing.T) {
	sb, _ := newDemoSidebar(t)
	assert.False(t, sb.Coordinator().Start(testContext(), "tabs:end", 20, 18.5))
	assert.False(t, sb.Coordinator().Start(testContext(), "missing", 0, 0))
}

func TestSidebar_MultiDragHighlightedTabs(t *testing.T) {
	sb, _ := newDemoSidebar(t)
	ctx := testContext()
	require.NoError(t, sb.Workspace().Tabs.SetHighlighted(ctx, []entity.TabID{"t1", "t4"}))

	coord := sb.Coordinator()
	require.True(t, coord.Start(ctx, "t4", 20, 16.5))
	snap := coord.Snapshot()
	assert.True(t, snap.IsMultiDrag)
	assert.Equal(t, 2, snap.MultiCount)

	coord.Move(ctx, 20, 18.5)
	require.True(t, coord.End(ctx).Valid)
	assert.Equal(t, []string{"t2", "t3", "t1", "t4"}, tabIDs(t, sb.Workspace()))
}

func TestSidebar_ExternalLinkAfterTab(t *testing.T) {
	sb, _ := newDemoSidebar(t)
	ctx := testContext()
	ext := sb.External()
	types := []string{dragdrop.MIMEURIList}

	require.True(t, ext.DragOver(ctx, types, 20, 8.5))
	hover, ok := ext.Hover()
	require.True(t, ok)
	assert.Equal(t, "t1", hover.TargetID)
	assert.Equal(t, dnd.PositionAfter, hover.Position)

	res := ext.Drop(ctx, dragdrop.NativeDrag{
		Types: types,
		Data:  map[string]string{dragdrop.MIMEURIList: "https://example.org/page"},
	}, 20, 8.5)
	assert.True(t, res.PreventDefault)
	require.True(t, res.Handled)
	assert.Equal(t, []string{"t1", "tab1", "t2", "t3", "t4"}, tabIDs(t, sb.Workspace()))
}

func TestSidebar_ExternalHoverExpandsCollapsedGroup(t *testing.T) {
	sb, sched := newDemoSidebar(t)
	ctx := testContext()
	require.NoError(t, sb.Workspace().Tabs.SetGroupCollapsed(ctx, "g1", true))

	require.True(t, sb.External().DragOver(ctx, []string{dragdrop.MIMEURIList}, 20, 10.5))
	assert.Equal(t, 1, sched.Fire())

	g, err := sb.Workspace().Tabs.Group(ctx, "g1")
	require.NoError(t, err)
	assert.False(t, g.Collapsed)
}

func TestSidebar_SetAutoExpandDelay(t *testing.T) {
	sb, sched := newDemoSidebar(t)
	ctx := testContext()
	sb.SetAutoExpandDelay(250 * time.Millisecond)

	coord := sb.Coordinator()
	require.True(t, coord.Start(ctx, "b3", 20, 27.5))
	coord.Move(ctx, 20, 22.5)
	coord.Cancel(ctx)

	assert.Equal(t, []time.Duration{250 * time.Millisecond}, sched.Delays())
}

func TestSidebar_DropOntoItselfIsRejected(t *testing.T) {
	tests := []struct {
		name           string
		source         string
		startX, startY float64
		overX, overY   float64
	}{
		{name: "bookmark", source: "b3", startX: 5, startY: 27.5, overX: 5, overY: 28.5},
		{name: "tab", source: "t1", startX: 5, startY: 7.5, overX: 5, overY: 8.5},
		{name: "pinned site", source: "p1", startX: 2.5, startY: 1.5, overX: 7.5, overY: 1.5},
		{name: "space", source: "work", startX: 2.5, startY: 4.5, overX: 7.5, overY: 4.5},
		{name: "tab group", source: "g1", startX: 5, startY: 9.5, overX: 5, overY: 10.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb, _ := newDemoSidebar(t)
			ctx := testContext()
			coord := sb.Coordinator()
			before := orders(t, sb.Workspace())

			require.True(t, coord.Start(ctx, tt.source, tt.startX, tt.startY))
			coord.Move(ctx, tt.overX, tt.overY)
			assert.Empty(t, coord.Snapshot().TargetID)

			res := coord.End(ctx)
			assert.False(t, res.Valid)
			assert.False(t, coord.Snapshot().WasValidDrop)
			assert.Equal(t, before, orders(t, sb.Workspace()))
		})
	}
}

func TestSidebar_TabOverSpaceEdgeLandsInside(t *testing.T) {
	sb, _ := newDemoSidebar(t)
	ctx := testContext()
	coord := sb.Coordinator()

	require.True(t, coord.Start(ctx, "t4", 20, 16.5))
	coord.Move(ctx, 10.5, 4.5)
	snap := coord.Snapshot()
	assert.Equal(t, "home", snap.TargetID)
	assert.Equal(t, dnd.PositionInto, snap.Position)

	require.True(t, coord.End(ctx).Valid)
	tab, err := sb.Workspace().Tabs.Get(ctx, "t4")
	require.NoError(t, err)
	assert.Equal(t, entity.SpaceID("home"), tab.SpaceID)
}

func TestSidebar_ExternalLinkOutsideTabListIsIgnored(t *testing.T) {
	sb, _ := newDemoSidebar(t)
	ctx := testContext()
	ext := sb.External()
	types := []string{dragdrop.MIMEURIList}

	// Row 1 is the pinned bar.
	assert.False(t, ext.DragOver(ctx, types, 5, 1.5))
	_, ok := ext.Hover()
	assert.False(t, ok)

	res := ext.Drop(ctx, dragdrop.NativeDrag{
		Types: types,
		Data:  map[string]string{dragdrop.MIMEURIList: "https://example.org/page"},
	}, 5, 1.5)
	assert.True(t, res.PreventDefault)
	assert.False(t, res.Handled)
	assert.Equal(t, []string{"t1", "t2", "t3", "t4"}, tabIDs(t, sb.Workspace()))
}

func TestSidebar_ExternalLinkOnTabListEndAppends(t *testing.T) {
	sb, _ := newDemoSidebar(t)
	ctx := testContext()

	res := sb.External().Drop(ctx, dragdrop.NativeDrag{
		Types: []string{dragdrop.MIMEURIList},
		Data:  map[string]string{dragdrop.MIMEURIList: "https://example.org/page"},
	}, 20, 18.5)
	require.True(t, res.Handled)
	assert.Equal(t, []string{"t1", "t2", "t3", "t4", "tab1"}, tabIDs(t, sb.Workspace()))
}
