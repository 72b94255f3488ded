package host

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/sidebar/internal/application/usecase"
	"github.com/bnema/sidebar/internal/domain/dnd"
	"github.com/bnema/sidebar/internal/infrastructure/memory"
	"github.com/bnema/sidebar/internal/logging"
	"github.com/bnema/sidebar/internal/ui/dragdrop"
)

// Options configures a Sidebar.
type Options struct {
	Width           float64
	Geometry        dnd.Geometry
	AutoExpandDelay time.Duration
	FallbackRadius  float64
	HorizontalPins  bool
	// Scheduler replaces time.AfterFunc for hover-to-expand.
	Scheduler dragdrop.Scheduler
	// IDGenerator replaces the gesture id generator.
	IDGenerator func() string
}

// DefaultOptions returns the options used by the terminal host.
func DefaultOptions() Options {
	return Options{
		Width:           40,
		Geometry:        dnd.DefaultGeometry,
		AutoExpandDelay: dragdrop.DefaultAutoExpandDelay,
		FallbackRadius:  2,
		HorizontalPins:  true,
	}
}

// Sidebar owns the four mounted zones, the coordinator that drags
// between them and the adapter for links dragged in from outside.
type Sidebar struct {
	ws             *memory.Workspace
	width          float64
	horizontalPins bool

	tabs      *usecase.TabDropUseCase
	bookmarks *usecase.BookmarkDropUseCase
	pinned    *usecase.PinnedDropUseCase
	spaces    *usecase.SpaceDropUseCase

	selections map[dnd.Zone]*dragdrop.Selection

	registry    *dragdrop.Registry
	coordinator *dragdrop.Coordinator
	external    *dragdrop.ExternalDropAdapter
	extTimer    *dragdrop.AutoExpandTimer
	teardown    []func()

	baseCtx context.Context
	mu      sync.Mutex
	frame   *Frame
	dirty   atomic.Bool
}

// NewSidebar mounts every zone of ws. ctx carries the logger used by
// expand callbacks.
func NewSidebar(ctx context.Context, ws *memory.Workspace, opts Options) (*Sidebar, error) {
	if opts.Width <= 0 {
		opts.Width = DefaultOptions().Width
	}
	s := &Sidebar{
		ws:             ws,
		width:          opts.Width,
		horizontalPins: opts.HorizontalPins,
		selections: map[dnd.Zone]*dragdrop.Selection{
			dnd.ZonePinned:    dragdrop.NewSelection(),
			dnd.ZoneBookmarks: dragdrop.NewSelection(),
		},
		registry: dragdrop.NewRegistry(),
		baseCtx:  ctx,
	}
	s.tabs = usecase.NewTabDropUseCase(ws.Tabs, ws.Bookmarks)
	s.bookmarks = usecase.NewBookmarkDropUseCase(ws.Bookmarks, s.selections[dnd.ZoneBookmarks])
	s.pinned = usecase.NewPinnedDropUseCase(ws.Pinned, s.selections[dnd.ZonePinned], opts.HorizontalPins)
	s.spaces = usecase.NewSpaceDropUseCase(ws.Spaces, ws.Tabs, true)

	mounts := []struct {
		zone     dnd.Zone
		handler  dragdrop.DropHandler
		provider dragdrop.ItemsProvider
	}{
		{dnd.ZonePinned, s.pinned.Drop, s.pinned.Items},
		{dnd.ZoneSpaces, s.spaces.Drop, nil},
		{dnd.ZoneTabs, s.tabs.Drop, s.tabs.Items},
		{dnd.ZoneBookmarks, s.bookmarks.Drop, s.bookmarks.Items},
	}
	for _, m := range mounts {
		unmount, err := s.registry.Mount(m.zone, m.handler, m.provider)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to mount %s zone: %w", m.zone, err)
		}
		s.teardown = append(s.teardown, unmount)
	}

	var timerOpts []dragdrop.TimerOption
	if opts.Scheduler != nil {
		timerOpts = append(timerOpts, dragdrop.WithScheduler(opts.Scheduler))
	}
	delay := opts.AutoExpandDelay
	if delay <= 0 {
		delay = dragdrop.DefaultAutoExpandDelay
	}

	coordOpts := []dragdrop.Option{
		dragdrop.WithGeometry(opts.Geometry),
		dragdrop.WithAutoExpandTimer(dragdrop.NewAutoExpandTimer(delay, timerOpts...)),
		dragdrop.WithFallbackRadius(opts.FallbackRadius),
	}
	if opts.IDGenerator != nil {
		coordOpts = append(coordOpts, dragdrop.WithIDGenerator(opts.IDGenerator))
	}
	s.coordinator = dragdrop.NewCoordinator(s.registry, &surface{s: s}, coordOpts...)
	s.extTimer = dragdrop.NewAutoExpandTimer(delay, timerOpts...)
	s.external = dragdrop.NewExternalDropAdapter(dnd.ZoneTabs, s.registry, &tabProbe{s: s},
		dragdrop.WithExternalTimer(s.extTimer),
		dragdrop.WithExternalGeometry(opts.Geometry),
	)

	s.dirty.Store(true)
	ws.OnChange(s.Invalidate)

	logging.FromContext(ctx).Debug().Float64("width", s.width).Msg("sidebar mounted")
	return s, nil
}

// Coordinator returns the drag coordinator.
func (s *Sidebar) Coordinator() *dragdrop.Coordinator { return s.coordinator }

// External returns the adapter for links dragged in from outside.
func (s *Sidebar) External() *dragdrop.ExternalDropAdapter { return s.external }

// Registry returns the zone registry.
func (s *Sidebar) Registry() *dragdrop.Registry { return s.registry }

// Workspace returns the collaborators behind the sidebar.
func (s *Sidebar) Workspace() *memory.Workspace { return s.ws }

// Selection returns the multi-selection of a zone, or nil when the zone
// has none.
func (s *Sidebar) Selection(zone dnd.Zone) *dragdrop.Selection {
	return s.selections[zone]
}

func (s *Sidebar) selection(zone dnd.Zone) *dragdrop.Selection {
	if sel := s.selections[zone]; sel != nil {
		return sel
	}
	return dragdrop.NewSelection()
}

// SetWidth changes the render width.
func (s *Sidebar) SetWidth(w float64) {
	s.mu.Lock()
	s.width = w
	s.mu.Unlock()
	s.Invalidate()
}

// SetAutoExpandDelay updates both hover-to-expand timers.
func (s *Sidebar) SetAutoExpandDelay(d time.Duration) {
	s.coordinator.AutoExpand().SetDelay(d)
	s.extTimer.SetDelay(d)
}

// Invalidate marks the current frame stale.
func (s *Sidebar) Invalidate() {
	s.dirty.Store(true)
}

// Frame returns the current frame, re-rendering it if the workspace or
// a selection changed.
func (s *Sidebar) Frame() *Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame == nil || s.dirty.Swap(false) {
		s.frame = s.Layout(s.baseCtx)
	}
	return s.frame
}

// Close waits for a drop that is still running, then unmounts every
// zone and stops pending timers.
func (s *Sidebar) Close() {
	if s.external != nil {
		s.external.Close()
	}
	if s.coordinator != nil {
		if err := s.coordinator.Close(s.baseCtx); err != nil {
			logging.FromContext(s.baseCtx).Warn().Err(err).Msg("closing drag coordinator")
		}
	}
	for _, unmount := range s.teardown {
		unmount()
	}
	s.teardown = nil
}
