package dragdrop

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/bnema/sidebar/internal/application/port"
	"github.com/bnema/sidebar/internal/domain/dnd"
	"github.com/bnema/sidebar/internal/logging"
)

// State is the coordinator's gesture state.
type State int

const (
	StateIdle State = iota
	StateActive
	StateOver
	StateCompleting
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateOver:
		return "over"
	case StateCompleting:
		return "completing"
	default:
		return "idle"
	}
}

type targetKey struct {
	zone dnd.Zone
	id   string
}

func keyOf(t dnd.DropTarget) targetKey {
	return targetKey{zone: t.Zone, id: t.TargetID}
}

func (k targetKey) String() string {
	return string(k.zone) + ":" + k.id
}

// Snapshot is a read-only view of the gesture for rendering.
type Snapshot struct {
	State        State
	GestureID    string
	SourceZone   dnd.Zone
	SourceID     string
	Session      *dnd.Session
	IsMultiDrag  bool
	MultiCount   int
	OverlayWidth float64
	PointerX     float64
	PointerY     float64

	TargetZone dnd.Zone
	TargetID   string
	Format     dnd.Format
	Position   dnd.Position

	// WasValidDrop survives the end of a gesture to drive the completion
	// animation and is cleared when the next gesture starts.
	WasValidDrop bool
}

// DropResult reports how a gesture ended.
type DropResult struct {
	Valid    bool
	Zone     dnd.Zone
	TargetID string
	Position dnd.Position
	Format   dnd.Format
	Err      error
}

// Coordinator drives drag gestures: start, repeated move/over, then end
// or cancel. All entry points are total; failures are logged and turn
// into invalid drops. Handlers and acceptors must not call back into the
// coordinator.
type Coordinator struct {
	registry *Registry
	surface  port.DragSurface
	expand   *AutoExpandTimer
	geometry dnd.Geometry
	radius   float64
	inflight *semaphore.Weighted
	newID    func() string

	mu           sync.Mutex
	state        State
	gestureID    string
	sourceZone   dnd.Zone
	sourceID     string
	session      *dnd.Session
	overlayWidth float64
	px, py       float64
	target       *port.DropCandidate
	format       dnd.Format
	position     dnd.Position
	wasValidDrop bool
	closed       bool
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithGeometry sets the ratios used to compute drop positions.
func WithGeometry(g dnd.Geometry) Option {
	return func(c *Coordinator) { c.geometry = g }
}

// WithAutoExpandTimer shares a timer instead of creating one.
func WithAutoExpandTimer(t *AutoExpandTimer) Option {
	return func(c *Coordinator) { c.expand = t }
}

// WithFallbackRadius bounds the closest-center collision fallback.
func WithFallbackRadius(r float64) Option {
	return func(c *Coordinator) { c.radius = r }
}

// WithIDGenerator replaces the gesture id generator.
func WithIDGenerator(fn func() string) Option {
	return func(c *Coordinator) { c.newID = fn }
}

// NewCoordinator creates an idle coordinator.
func NewCoordinator(registry *Registry, surface port.DragSurface, opts ...Option) *Coordinator {
	c := &Coordinator{
		registry: registry,
		surface:  surface,
		geometry: dnd.DefaultGeometry,
		inflight: semaphore.NewWeighted(1),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.expand == nil {
		c.expand = NewAutoExpandTimer(DefaultAutoExpandDelay)
	}
	return c
}

// AutoExpand returns the timer used for hover-to-expand.
func (c *Coordinator) AutoExpand() *AutoExpandTimer {
	return c.expand
}

// Snapshot returns the current gesture view.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:        c.state,
		GestureID:    c.gestureID,
		SourceZone:   c.sourceZone,
		SourceID:     c.sourceID,
		Session:      c.session,
		OverlayWidth: c.overlayWidth,
		PointerX:     c.px,
		PointerY:     c.py,
		Format:       c.format,
		Position:     c.position,
		WasValidDrop: c.wasValidDrop,
	}
	if c.session != nil {
		snap.MultiCount = c.session.Len()
		snap.IsMultiDrag = c.session.IsMulti()
	}
	if c.target != nil {
		snap.TargetZone = c.target.Target.Zone
		snap.TargetID = c.target.Target.TargetID
	}
	return snap
}

// Start begins a gesture on a draggable element. It returns false when
// a gesture is already running or the element cannot be dragged.
func (c *Coordinator) Start(ctx context.Context, elementID string, x, y float64) bool {
	log := logging.FromContext(ctx)

	c.mu.Lock()
	busy, closed := c.state != StateIdle, c.closed
	c.mu.Unlock()
	if closed {
		log.Debug().Str("element", elementID).Msg("drag start ignored, coordinator closed")
		return false
	}
	if busy {
		log.Debug().Str("element", elementID).Msg("drag start ignored, gesture in progress")
		return false
	}

	zone, ok := c.surface.ZoneOf(elementID)
	if !ok {
		log.Debug().Str("element", elementID).Msg("drag start ignored, element outside any zone")
		return false
	}
	item, ok := c.surface.ItemFor(elementID)
	if !ok {
		log.Debug().Str("element", elementID).Msg("drag start ignored, element is not draggable")
		return false
	}
	items := c.expandSelection(ctx, zone, elementID, item)
	session, err := dnd.NewSession(items...)
	if err != nil {
		log.Debug().Err(err).Msg("drag start ignored")
		return false
	}
	var width float64
	if rect, ok := c.surface.ElementRect(elementID); ok {
		width = rect.W
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateIdle || c.closed {
		return false
	}
	c.resetLocked(false)
	c.state = StateActive
	c.gestureID = c.newID()
	c.sourceZone = zone
	c.sourceID = elementID
	c.session = session
	c.overlayWidth = width
	c.px, c.py = x, y

	log.Debug().
		Str("gesture_id", c.gestureID).
		Str("zone", string(zone)).
		Str("element", elementID).
		Int("items", session.Len()).
		Msg("drag started")
	return true
}

// expandSelection asks the zone's provider for the multi-selection. The
// selection is used only when it includes the dragged element; dragging
// an unselected element moves just that element.
func (c *Coordinator) expandSelection(ctx context.Context, zone dnd.Zone, elementID string, item dnd.Item) (items []dnd.Item) {
	items = []dnd.Item{item}
	provider, ok := c.registry.ItemsProvider(zone)
	if !ok {
		return items
	}
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(ctx).Warn().Interface("panic", r).Str("zone", string(zone)).Msg("items provider panicked")
			items = []dnd.Item{item}
		}
	}()

	selection := provider(ctx, elementID)
	key := item.Key()
	if len(selection) == 0 || !slices.ContainsFunc(selection, func(it dnd.Item) bool { return it.Key() == key }) {
		return items
	}
	return selection
}

// Move tracks the pointer. It resolves the target under the pointer and
// recomputes the drop position even when the target did not change.
func (c *Coordinator) Move(ctx context.Context, x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateActive && c.state != StateOver {
		return
	}
	c.px, c.py = x, y

	cand, ok := ResolveCollision(c.surface.DropTargets(), x, y, c.radius)
	if !ok {
		if c.target != nil {
			logging.FromContext(ctx).Trace().Msg("pointer left all drop targets")
		}
		c.clearTargetLocked()
		return
	}
	if c.target == nil || keyOf(c.target.Target) != keyOf(cand.Target) {
		c.overLocked(ctx, cand)
		return
	}

	// Same target: take the fresh descriptor and negotiate again, its
	// acceptor may have changed since the last move.
	f, ok := safeAccept(cand.Target, c.session)
	if !ok {
		logging.FromContext(ctx).Debug().
			Str("zone", string(cand.Target.Zone)).
			Str("target", cand.Target.TargetID).
			Msg("drop target no longer accepts payload")
		c.clearTargetLocked()
		return
	}
	c.target = &cand
	c.format = f
	c.position = cand.Target.Position(c.geometry, cand.Rect, x, y, f)
	c.updateExpandLocked()
	logging.FromContext(ctx).Trace().
		Str("target", cand.Target.TargetID).
		Str("position", c.position.String()).
		Msg("drag moved")
}

// Over is used by hosts that do their own hit testing: it makes the
// target with the given id current. An unknown id means no candidate.
func (c *Coordinator) Over(ctx context.Context, zone dnd.Zone, targetID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateActive && c.state != StateOver {
		return
	}
	cand, ok := findCandidate(c.surface.DropTargets(), targetKey{zone: zone, id: targetID})
	if !ok {
		c.clearTargetLocked()
		return
	}
	c.overLocked(ctx, cand)
}

func (c *Coordinator) overLocked(ctx context.Context, cand port.DropCandidate) {
	log := logging.FromContext(ctx)

	f, ok := safeAccept(cand.Target, c.session)
	if !ok {
		log.Debug().
			Str("zone", string(cand.Target.Zone)).
			Str("target", cand.Target.TargetID).
			Msg("drop target rejected payload")
		c.clearTargetLocked()
		return
	}

	c.state = StateOver
	c.target = &cand
	c.format = f
	c.position = cand.Target.Position(c.geometry, cand.Rect, c.px, c.py, f)
	c.updateExpandLocked()

	log.Debug().
		Str("zone", string(cand.Target.Zone)).
		Str("target", cand.Target.TargetID).
		Str("format", string(f)).
		Str("position", c.position.String()).
		Msg("drag over target")
}

func (c *Coordinator) updateExpandLocked() {
	t := c.target.Target
	if t.WantsExpand(c.position, c.format) {
		c.expand.Arm(keyOf(t).String(), t.Expand)
		return
	}
	c.expand.Disarm()
}

func (c *Coordinator) clearTargetLocked() {
	c.expand.Disarm()
	c.target = nil
	c.format = ""
	c.position = dnd.PositionNone
	if c.state == StateOver {
		c.state = StateActive
	}
}

// End finishes the gesture. The drop handler of the accepted zone runs to
// completion before End returns; no other gesture can start meanwhile.
func (c *Coordinator) End(ctx context.Context) DropResult {
	c.mu.Lock()
	if c.state != StateActive && c.state != StateOver {
		c.mu.Unlock()
		return DropResult{}
	}
	c.expand.Disarm()

	ctx = logging.WithGestureID(ctx, c.gestureID)
	log := logging.FromContext(ctx)

	if c.target == nil || c.position == dnd.PositionNone {
		c.resetLocked(false)
		c.mu.Unlock()
		log.Debug().Msg("drag ended without a drop target")
		return DropResult{}
	}

	// Re-validate against the live target; it may have changed or
	// unmounted since the last over.
	fresh, ok := findCandidate(c.surface.DropTargets(), keyOf(c.target.Target))
	if !ok {
		c.resetLocked(false)
		c.mu.Unlock()
		log.Debug().Str("target", c.target.Target.TargetID).Msg("drop target vanished before release")
		return DropResult{}
	}
	f, ok := safeAccept(fresh.Target, c.session)
	if !ok {
		c.resetLocked(false)
		c.mu.Unlock()
		log.Debug().Str("target", fresh.Target.TargetID).Msg("drop target rejected payload on release")
		return DropResult{}
	}
	pos := c.position
	if f != c.format {
		pos = fresh.Target.Position(c.geometry, fresh.Rect, c.px, c.py, f)
	}
	result := DropResult{
		Zone:     fresh.Target.Zone,
		TargetID: fresh.Target.TargetID,
		Position: pos,
		Format:   f,
	}
	if pos == dnd.PositionNone {
		c.resetLocked(false)
		c.mu.Unlock()
		return DropResult{}
	}

	handler, ok := c.registry.DropHandler(fresh.Target.Zone)
	if !ok {
		c.resetLocked(false)
		c.mu.Unlock()
		log.Debug().Str("zone", string(fresh.Target.Zone)).Msg("no drop handler registered, ignoring drop")
		return DropResult{}
	}
	// Close holds the slot once it has drained; a release that races it
	// is dropped.
	if !c.inflight.TryAcquire(1) {
		c.resetLocked(false)
		c.mu.Unlock()
		log.Warn().Msg("coordinator closed, ignoring drop")
		return DropResult{}
	}
	session := c.session
	c.state = StateCompleting
	c.mu.Unlock()

	err := invokeHandler(logging.WithZone(ctx, string(fresh.Target.Zone)), handler, session, fresh.Target, pos, f)
	c.inflight.Release(1)

	c.mu.Lock()
	c.resetLocked(err == nil)
	c.mu.Unlock()

	if err != nil {
		log.Warn().Err(err).
			Str("zone", string(result.Zone)).
			Str("target", result.TargetID).
			Msg("drop handler failed")
		result.Err = err
		return result
	}
	result.Valid = true
	log.Info().
		Str("zone", string(result.Zone)).
		Str("target", result.TargetID).
		Str("position", pos.String()).
		Str("format", string(f)).
		Int("items", session.Len()).
		Msg("drop completed")
	return result
}

// Cancel abandons the gesture without invoking any handler. A drop that
// is already completing cannot be cancelled.
func (c *Coordinator) Cancel(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateActive && c.state != StateOver {
		return
	}
	c.expand.Disarm()
	logging.FromContext(ctx).Debug().Str("gesture_id", c.gestureID).Msg("drag cancelled")
	c.resetLocked(false)
}

// Close stops the coordinator. It waits for a drop whose handler is
// already running, then abandons any gesture still in progress. Later
// gestures are refused. Close returns early with an error when ctx ends
// first, leaving the coordinator open.
func (c *Coordinator) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	if err := c.inflight.Acquire(ctx, 1); err != nil {
		c.mu.Lock()
		c.closed = false
		c.mu.Unlock()
		return fmt.Errorf("wait for in-flight drop: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.expand.Disarm()
	if c.state == StateActive || c.state == StateOver {
		logging.FromContext(ctx).Debug().Str("gesture_id", c.gestureID).Msg("drag abandoned on close")
		c.resetLocked(false)
	}
	return nil
}

func (c *Coordinator) resetLocked(valid bool) {
	c.state = StateIdle
	c.gestureID = ""
	c.sourceZone = ""
	c.sourceID = ""
	c.session = nil
	c.overlayWidth = 0
	c.target = nil
	c.format = ""
	c.position = dnd.PositionNone
	c.wasValidDrop = valid
}

func safeAccept(t dnd.DropTarget, s *dnd.Session) (f dnd.Format, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			f, ok = "", false
		}
	}()
	return t.Accepts(s)
}

func invokeHandler(ctx context.Context, h DropHandler, s *dnd.Session, t dnd.DropTarget, pos dnd.Position, f dnd.Format) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("drop handler panicked: %v", r)
		}
	}()
	return h(ctx, s, t, pos, f)
}
