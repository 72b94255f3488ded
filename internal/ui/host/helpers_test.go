package host_test

import (
	"context"
	"testing"

	"github.com/bnema/sidebar/internal/domain/entity"
	"github.com/bnema/sidebar/internal/infrastructure/memory"
	"github.com/bnema/sidebar/internal/logging"
	"github.com/bnema/sidebar/internal/ui/host"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

// newDemoSidebar mounts the demo workspace at width 40 with a manual
// scheduler. Rows at that width:
//
//	0 pinned header, 1-2 p1 p2 chips
//	3 spaces header, 4-5 space chips
//	6 tabs header, 7-8 t1, 9-11 g1, 12-13 t2, 14-15 t3, 16-17 t4, 18-19 end
//	20 bookmarks header, 21-23 f1, 24-26 f2, 27-28 b3, 29-30 end
func newDemoSidebar(t *testing.T) (*host.Sidebar, *host.ManualScheduler) {
	t.Helper()
	sched := &host.ManualScheduler{}
	opts := host.DefaultOptions()
	opts.Scheduler = sched.Schedule
	sb, err := host.NewSidebar(testContext(), memory.DemoWorkspace(), opts)
	require.NoError(t, err)
	t.Cleanup(sb.Close)
	return sb, sched
}

func tabIDs(t *testing.T, ws *memory.Workspace) []string {
	t.Helper()
	tabs, err := ws.Tabs.List(testContext())
	require.NoError(t, err)
	ids := make([]string, len(tabs))
	for i, tab := range tabs {
		ids[i] = string(tab.ID)
	}
	return ids
}

// orders captures every reorderable list of the workspace.
func orders(t *testing.T, ws *memory.Workspace) map[string][]string {
	t.Helper()
	ctx := testContext()
	out := map[string][]string{"tabs": tabIDs(t, ws)}

	pins, err := ws.Pinned.List(ctx)
	require.NoError(t, err)
	for _, p := range pins {
		out["pinned"] = append(out["pinned"], string(p.ID))
	}
	spaces, err := ws.Spaces.List(ctx)
	require.NoError(t, err)
	for _, sp := range spaces {
		out["spaces"] = append(out["spaces"], string(sp.ID))
	}
	marks, err := ws.Bookmarks.Children(ctx, entity.RootBookmarkID)
	require.NoError(t, err)
	for _, b := range marks {
		out["bookmarks"] = append(out["bookmarks"], string(b.ID))
	}
	return out
}
