package dragdrop_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sidebar/internal/application/port"
	"github.com/bnema/sidebar/internal/domain/dnd"
	"github.com/bnema/sidebar/internal/domain/entity"
	"github.com/bnema/sidebar/internal/ui/dragdrop"
)

func TestExtractLink_ScenarioC_URIListWithComment(t *testing.T) {
	link, ok := dragdrop.ExtractLink(map[string]string{
		dragdrop.MIMEURIList: "https://example.com\n#comment",
	})
	require.True(t, ok)
	assert.Equal(t, "https://example.com", link.URL)
	assert.Equal(t, "https://example.com", link.Title)
}

func TestExtractLink(t *testing.T) {
	tests := []struct {
		name      string
		data      map[string]string
		wantOK    bool
		wantURL   string
		wantTitle string
	}{
		{
			name:      "skips comments and blank lines",
			data:      map[string]string{dragdrop.MIMEURIList: "# dragged\r\n\r\nhttps://go.dev/doc\r\nhttps://second.example"},
			wantOK:    true,
			wantURL:   "https://go.dev/doc",
			wantTitle: "https://go.dev/doc",
		},
		{
			name: "plain text label becomes title",
			data: map[string]string{
				dragdrop.MIMEURIList:   "https://go.dev",
				dragdrop.MIMEPlainText: "The Go Programming Language",
			},
			wantOK:    true,
			wantURL:   "https://go.dev",
			wantTitle: "The Go Programming Language",
		},
		{
			name: "plain text equal to url is not a label",
			data: map[string]string{
				dragdrop.MIMEURIList:   "https://go.dev",
				dragdrop.MIMEPlainText: "https://go.dev",
			},
			wantOK:    true,
			wantURL:   "https://go.dev",
			wantTitle: "https://go.dev",
		},
		{
			name:      "moz url carries its own title",
			data:      map[string]string{dragdrop.MIMEMozURL: "https://go.dev\nGo"},
			wantOK:    true,
			wantURL:   "https://go.dev",
			wantTitle: "Go",
		},
		{
			name:      "falls back to http plain text",
			data:      map[string]string{dragdrop.MIMEPlainText: "  http://example.org/page  "},
			wantOK:    true,
			wantURL:   "http://example.org/page",
			wantTitle: "http://example.org/page",
		},
		{
			name:   "plain text that is not a url is rejected",
			data:   map[string]string{dragdrop.MIMEPlainText: "just some words"},
			wantOK: false,
		},
		{
			name:   "plain text with other scheme is rejected",
			data:   map[string]string{dragdrop.MIMEPlainText: "ftp://files.example/x"},
			wantOK: false,
		},
		{
			name:   "relative uri-list entry is not well formed",
			data:   map[string]string{dragdrop.MIMEURIList: "/relative/path"},
			wantOK: false,
		},
		{
			name:   "empty payload",
			data:   map[string]string{},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, ok := dragdrop.ExtractLink(tt.data)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantURL, link.URL)
				assert.Equal(t, tt.wantTitle, link.Title)
			}
		})
	}
}

func TestIsExternalLinkDrag(t *testing.T) {
	assert.True(t, dragdrop.IsExternalLinkDrag([]string{dragdrop.MIMEURIList}))
	assert.True(t, dragdrop.IsExternalLinkDrag([]string{dragdrop.MIMEPlainText}))
	assert.False(t, dragdrop.IsExternalLinkDrag([]string{dragdrop.MIMEURIList, dragdrop.MIMEInternal}))
	assert.False(t, dragdrop.IsExternalLinkDrag([]string{"Files"}))
}

type externalFixture struct {
	probe   *fakeProbe
	reg     *dragdrop.Registry
	sched   *fakeScheduler
	adapter *dragdrop.ExternalDropAdapter
	drops   []recordedDrop
	expands int
}

func newExternalFixture(t *testing.T, expanded bool) *externalFixture {
	t.Helper()
	f := &externalFixture{reg: dragdrop.NewRegistry(), sched: &fakeScheduler{}}
	f.probe = &fakeProbe{
		bounds: entity.Rect{X: 0, Y: 0, W: 200, H: 400},
		hits: []port.ProbeHit{
			{Kind: port.ProbeGroupHeader, ID: "g1", Rect: entity.Rect{X: 0, Y: 0, W: 200, H: 40}, Expanded: expanded, Expand: func() { f.expands++ }},
			{Kind: port.ProbeTab, ID: "t1", Rect: entity.Rect{X: 0, Y: 40, W: 200, H: 20}},
		},
	}
	require.NoError(t, f.reg.RegisterDropHandler(dnd.ZoneTabs, func(_ context.Context, s *dnd.Session, target dnd.DropTarget, pos dnd.Position, format dnd.Format) error {
		f.drops = append(f.drops, recordedDrop{s, target, pos, format})
		return nil
	}))
	timer := dragdrop.NewAutoExpandTimer(time.Second, dragdrop.WithScheduler(f.sched.schedule))
	f.adapter = dragdrop.NewExternalDropAdapter(dnd.ZoneTabs, f.reg, f.probe, dragdrop.WithExternalTimer(timer))
	return f
}

var linkTypes = []string{dragdrop.MIMEURIList, dragdrop.MIMEPlainText}

func TestExternalDropAdapter_HoverPositions(t *testing.T) {
	ctx := testContext()
	f := newExternalFixture(t, false)

	assert.True(t, f.adapter.DragOver(ctx, linkTypes, 10, 20))
	hover, ok := f.adapter.Hover()
	require.True(t, ok)
	assert.Equal(t, "g1", hover.TargetID)
	assert.Equal(t, dnd.PositionInto, hover.Position)

	f.adapter.DragOver(ctx, linkTypes, 10, 55)
	hover, _ = f.adapter.Hover()
	assert.Equal(t, "t1", hover.TargetID)
	assert.Equal(t, dnd.PositionAfter, hover.Position)

	f.adapter.DragOver(ctx, linkTypes, 10, 300)
	hover, _ = f.adapter.Hover()
	assert.Equal(t, port.ProbeNothing, hover.Kind)
}

func TestExternalDropAdapter_ExpandedGroupAfterBecomesIntoFirst(t *testing.T) {
	ctx := testContext()
	f := newExternalFixture(t, true)

	f.adapter.DragOver(ctx, linkTypes, 10, 38)
	hover, _ := f.adapter.Hover()
	assert.Equal(t, dnd.PositionIntoFirst, hover.Position)
}

func TestExternalDropAdapter_IgnoresInternalDrags(t *testing.T) {
	ctx := testContext()
	f := newExternalFixture(t, false)

	assert.False(t, f.adapter.DragOver(ctx, []string{dragdrop.MIMEInternal, dragdrop.MIMEPlainText}, 10, 20))
	_, ok := f.adapter.Hover()
	assert.False(t, ok)
}

func TestExternalDropAdapter_AutoExpandCollapsedGroup(t *testing.T) {
	ctx := testContext()
	f := newExternalFixture(t, false)

	f.adapter.DragOver(ctx, linkTypes, 10, 20)
	f.adapter.DragOver(ctx, linkTypes, 11, 21)
	assert.Equal(t, 1, f.sched.scheduled())
	f.sched.fireAll()
	assert.Equal(t, 1, f.expands)

	f.adapter.DragOver(ctx, linkTypes, 10, 50)
	assert.Zero(t, f.sched.pending())
}

func TestExternalDropAdapter_DragLeaveOnlyWhenLeavingContainer(t *testing.T) {
	ctx := testContext()
	f := newExternalFixture(t, false)

	f.adapter.DragOver(ctx, linkTypes, 10, 20)
	f.adapter.DragLeave(ctx, 10, 45) // moved onto a sibling
	_, ok := f.adapter.Hover()
	assert.True(t, ok)

	f.adapter.DragLeave(ctx, 500, 45)
	_, ok = f.adapter.Hover()
	assert.False(t, ok)
	assert.Zero(t, f.sched.pending())
}

func TestExternalDropAdapter_DropIntoGroup(t *testing.T) {
	ctx := testContext()
	f := newExternalFixture(t, false)

	f.adapter.DragOver(ctx, linkTypes, 10, 20)
	result := f.adapter.Drop(ctx, dragdrop.NativeDrag{
		Types: linkTypes,
		Data: map[string]string{
			dragdrop.MIMEURIList:   "https://go.dev",
			dragdrop.MIMEPlainText: "Go",
		},
	}, 10, 20)

	assert.True(t, result.PreventDefault)
	assert.True(t, result.Handled)
	require.Len(t, f.drops, 1)
	drop := f.drops[0]
	assert.Equal(t, dnd.FormatURL, drop.format)
	assert.Equal(t, dnd.PositionInto, drop.pos)
	assert.Equal(t, dnd.KindTabGroup, drop.target.Kind)
	assert.Equal(t, "g1", drop.target.TargetID)
	require.Equal(t, 1, drop.session.Len())
	assert.Equal(t, "Go", drop.session.Items()[0].URL.Title)

	_, ok := f.adapter.Hover()
	assert.False(t, ok)
	assert.Zero(t, f.sched.pending())
}

func TestExternalDropAdapter_DropOnEmptySpaceAppends(t *testing.T) {
	ctx := testContext()
	f := newExternalFixture(t, false)

	result := f.adapter.Drop(ctx, dragdrop.NativeDrag{
		Types: linkTypes,
		Data:  map[string]string{dragdrop.MIMEPlainText: "https://example.com"},
	}, 10, 300)

	assert.True(t, result.Handled)
	require.Len(t, f.drops, 1)
	assert.Equal(t, dnd.KindZoneEnd, f.drops[0].target.Kind)
	assert.Equal(t, dnd.PositionAfter, f.drops[0].pos)
}

func TestExternalDropAdapter_DropWithoutLinkStillPreventsDefault(t *testing.T) {
	ctx := testContext()
	f := newExternalFixture(t, false)

	result := f.adapter.Drop(ctx, dragdrop.NativeDrag{
		Types: linkTypes,
		Data:  map[string]string{dragdrop.MIMEPlainText: "not a link"},
	}, 10, 50)

	assert.True(t, result.PreventDefault)
	assert.False(t, result.Handled)
	assert.Empty(t, f.drops)
}

func TestExternalDropAdapter_HandlerFailureReported(t *testing.T) {
	ctx := testContext()
	f := newExternalFixture(t, false)
	failure := errors.New("tab service down")
	require.NoError(t, f.reg.RegisterDropHandler(dnd.ZoneTabs, func(context.Context, *dnd.Session, dnd.DropTarget, dnd.Position, dnd.Format) error {
		return failure
	}))

	result := f.adapter.Drop(ctx, dragdrop.NativeDrag{
		Types: linkTypes,
		Data:  map[string]string{dragdrop.MIMEURIList: "https://go.dev"},
	}, 10, 50)

	assert.True(t, result.PreventDefault)
	assert.False(t, result.Handled)
	assert.ErrorIs(t, result.Err, failure)
}

func TestExternalDropAdapter_OutsideTabListIsRefused(t *testing.T) {
	ctx := testContext()
	f := newExternalFixture(t, false)

	f.adapter.DragOver(ctx, linkTypes, 10, 20)
	require.Equal(t, 1, f.sched.pending())

	assert.False(t, f.adapter.DragOver(ctx, linkTypes, 10, 500))
	_, ok := f.adapter.Hover()
	assert.False(t, ok)
	assert.Zero(t, f.sched.pending())

	result := f.adapter.Drop(ctx, dragdrop.NativeDrag{
		Types: linkTypes,
		Data:  map[string]string{dragdrop.MIMEURIList: "https://go.dev"},
	}, 500, 10)

	assert.True(t, result.PreventDefault)
	assert.False(t, result.Handled)
	assert.NoError(t, result.Err)
	assert.Empty(t, f.drops)
}
