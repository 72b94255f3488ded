package host

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/bnema/sidebar/internal/domain/dnd"
	"github.com/bnema/sidebar/internal/domain/entity"
	"github.com/bnema/sidebar/internal/infrastructure/scenario"
	"github.com/bnema/sidebar/internal/logging"
	"github.com/bnema/sidebar/internal/ui/dragdrop"
)

// ErrUnknownElement is returned when a step names an element that is not
// in the current frame.
var ErrUnknownElement = errors.New("unknown element")

type manualTimer struct {
	fn   func()
	done bool
}

// ManualScheduler is a dragdrop.Scheduler whose timers only run when
// Fire is called.
type ManualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
	delays []time.Duration
}

// Schedule records fn. The returned stop reports whether fn was still
// pending.
func (m *ManualScheduler) Schedule(d time.Duration, fn func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{fn: fn}
	m.timers = append(m.timers, t)
	m.delays = append(m.delays, d)
	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		pending := !t.done
		t.done = true
		return pending
	}
}

// Fire runs every pending timer and returns how many ran.
func (m *ManualScheduler) Fire() int {
	m.mu.Lock()
	var due []*manualTimer
	for _, t := range m.timers {
		if !t.done {
			t.done = true
			due = append(due, t)
		}
	}
	m.timers = nil
	m.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
	return len(due)
}

// Pending returns the number of timers not yet fired or stopped.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.timers {
		if !t.done {
			n++
		}
	}
	return n
}

// Delays returns the delay of every timer scheduled so far.
func (m *ManualScheduler) Delays() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.delays)
}

// StepResult is the outcome of one replayed step.
type StepResult struct {
	Index    int
	Action   scenario.Action
	Detail   string
	Drop     *dragdrop.DropResult
	External *dragdrop.ExternalDropResult
}

// Mismatch is one expected collection that differs after replay.
type Mismatch struct {
	Field string
	Want  []string
	Got   []string
}

// Report summarizes a replay.
type Report struct {
	Name       string
	Steps      []StepResult
	Mismatches []Mismatch
}

// Passed reports whether every expectation held.
func (r *Report) Passed() bool {
	return len(r.Mismatches) == 0
}

// Replayer runs a scenario against a freshly built sidebar. Hover timers
// never fire on their own; an expand step fires them.
type Replayer struct {
	script    *scenario.Script
	sidebar   *Sidebar
	scheduler *ManualScheduler
	px, py    float64
}

// NewReplayer builds the script's workspace and mounts a sidebar on it.
func NewReplayer(ctx context.Context, script *scenario.Script, opts Options) (*Replayer, error) {
	ws, err := script.Workspace()
	if err != nil {
		return nil, fmt.Errorf("failed to build workspace: %w", err)
	}
	sched := &ManualScheduler{}
	opts.Scheduler = sched.Schedule
	if script.Width > 0 {
		opts.Width = script.Width
	}
	if script.HorizontalPins != nil {
		opts.HorizontalPins = *script.HorizontalPins
	}
	sb, err := NewSidebar(ctx, ws, opts)
	if err != nil {
		return nil, err
	}
	return &Replayer{script: script, sidebar: sb, scheduler: sched}, nil
}

// Sidebar returns the sidebar the script runs against.
func (r *Replayer) Sidebar() *Sidebar { return r.sidebar }

// Close unmounts the sidebar.
func (r *Replayer) Close() { r.sidebar.Close() }

// Run replays every step and compares the script's expectations. An
// error means a step could not be executed; failed drops are reported in
// the step results instead.
func (r *Replayer) Run(ctx context.Context) (*Report, error) {
	log := logging.FromContext(ctx)
	report := &Report{Name: r.script.Name}

	for i, st := range r.script.Steps {
		res, err := r.step(ctx, st)
		if err != nil {
			return report, fmt.Errorf("step %d (%s): %w", i+1, st.Action, err)
		}
		res.Index = i + 1
		res.Action = st.Action
		report.Steps = append(report.Steps, res)
		log.Debug().Int("step", res.Index).Str("action", string(st.Action)).Str("detail", res.Detail).Msg("replayed step")
	}

	if r.script.Expect != nil {
		mismatches, err := r.check(ctx, r.script.Expect)
		if err != nil {
			return report, err
		}
		report.Mismatches = mismatches
	}
	return report, nil
}

func (r *Replayer) step(ctx context.Context, st scenario.Step) (StepResult, error) {
	coord := r.sidebar.Coordinator()
	switch st.Action {
	case scenario.ActionStart:
		x, y, err := r.point(st)
		if err != nil {
			return StepResult{}, err
		}
		r.px, r.py = x, y
		ok := coord.Start(ctx, st.Element, x, y)
		return StepResult{Detail: fmt.Sprintf("start %s started=%t", st.Element, ok)}, nil

	case scenario.ActionMove:
		x, y, err := r.point(st)
		if err != nil {
			return StepResult{}, err
		}
		r.px, r.py = x, y
		coord.Move(ctx, x, y)
		snap := coord.Snapshot()
		return StepResult{Detail: fmt.Sprintf("over %s:%s %s", snap.TargetZone, snap.TargetID, snap.Position)}, nil

	case scenario.ActionOver:
		coord.Over(ctx, dnd.Zone(st.Zone), st.Target)
		snap := coord.Snapshot()
		return StepResult{Detail: fmt.Sprintf("over %s:%s %s", snap.TargetZone, snap.TargetID, snap.Position)}, nil

	case scenario.ActionEnd:
		res := coord.End(ctx)
		detail := "no drop"
		if res.Valid {
			detail = fmt.Sprintf("dropped %s on %s:%s %s", res.Format, res.Zone, res.TargetID, res.Position)
		} else if res.Err != nil {
			detail = "drop failed: " + res.Err.Error()
		}
		return StepResult{Detail: detail, Drop: &res}, nil

	case scenario.ActionCancel:
		coord.Cancel(ctx)
		return StepResult{Detail: "cancelled"}, nil

	case scenario.ActionExpand:
		n := r.scheduler.Fire()
		return StepResult{Detail: fmt.Sprintf("fired %d timer(s)", n)}, nil

	case scenario.ActionSelect:
		if err := r.selectIDs(ctx, dnd.Zone(st.Zone), st.IDs); err != nil {
			return StepResult{}, err
		}
		return StepResult{Detail: fmt.Sprintf("selected %d in %s", len(st.IDs), st.Zone)}, nil

	case scenario.ActionExternal:
		return r.external(ctx, st)
	}
	return StepResult{}, fmt.Errorf("unknown action %q", st.Action)
}

func (r *Replayer) external(ctx context.Context, st scenario.Step) (StepResult, error) {
	drag := dragdrop.NativeDrag{Types: slices.Clone(st.Types), Data: maps.Clone(st.Data)}
	if st.URL != "" {
		drag.Types = append(drag.Types, dragdrop.MIMEURIList)
		if drag.Data == nil {
			drag.Data = make(map[string]string)
		}
		drag.Data[dragdrop.MIMEURIList] = st.URL
	}

	// Without a point the link lands on the tab list's end row, which
	// appends.
	zone := r.sidebar.Frame().Zones[dnd.ZoneTabs]
	x, y := zone.X+zone.W/2, zone.Y+zone.H-0.5
	if st.Element != "" || (st.X != nil && st.Y != nil) {
		var err error
		if x, y, err = r.point(st); err != nil {
			return StepResult{}, err
		}
	}

	ext := r.sidebar.External()
	ext.DragOver(ctx, drag.Types, x, y)
	res := ext.Drop(ctx, drag, x, y)
	detail := "ignored"
	switch {
	case res.Handled:
		detail = fmt.Sprintf("dropped %s %s %s", res.Link.URL, res.Target.TargetID, res.Target.Position)
	case res.Err != nil:
		detail = "drop failed: " + res.Err.Error()
	}
	return StepResult{Detail: detail, External: &res}, nil
}

func (r *Replayer) selectIDs(ctx context.Context, zone dnd.Zone, ids []string) error {
	if zone == dnd.ZoneTabs {
		tabIDs := make([]entity.TabID, len(ids))
		for i, id := range ids {
			tabIDs[i] = entity.TabID(id)
		}
		return r.sidebar.Workspace().Tabs.SetHighlighted(ctx, tabIDs)
	}
	sel := r.sidebar.Selection(zone)
	if sel == nil {
		return fmt.Errorf("zone %s has no selection", zone)
	}
	sel.Set(ids...)
	r.sidebar.Invalidate()
	return nil
}

// point resolves a step's pointer position in cell-center coordinates.
func (r *Replayer) point(st scenario.Step) (float64, float64, error) {
	if st.Element == "" {
		if st.X == nil || st.Y == nil {
			return r.px, r.py, nil
		}
		return *st.X, *st.Y, nil
	}
	el, ok := r.sidebar.Frame().Element(st.Element)
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrUnknownElement, st.Element)
	}
	return anchor(el.Rect, st.At)
}

// anchor picks a cell inside rect. Pointers sit on cell centers so every
// row of an element is addressable.
func anchor(rect entity.Rect, at string) (float64, float64, error) {
	cx, cy := rect.Center()
	switch at {
	case "", "middle":
		return cx, cy, nil
	case "top":
		return cx, rect.Y + 0.5, nil
	case "bottom":
		return cx, rect.Y + rect.H - 0.5, nil
	case "left":
		return rect.X + 0.5, cy, nil
	case "right":
		return rect.X + rect.W - 0.5, cy, nil
	}
	return 0, 0, fmt.Errorf("unknown anchor %q", at)
}

func (r *Replayer) check(ctx context.Context, want *scenario.Expect) ([]Mismatch, error) {
	ws := r.sidebar.Workspace()
	var out []Mismatch
	compare := func(field string, want, got []string) {
		if want != nil && !slices.Equal(want, got) {
			out = append(out, Mismatch{Field: field, Want: want, Got: got})
		}
	}

	tabs, err := ws.Tabs.List(ctx)
	if err != nil {
		return nil, err
	}
	tabIDs := make([]string, len(tabs))
	for i, t := range tabs {
		tabIDs[i] = string(t.ID)
	}
	compare("tabs", want.Tabs, tabIDs)

	for _, g := range slices.Sorted(maps.Keys(want.Groups)) {
		members, err := ws.Tabs.GroupTabs(ctx, entity.TabGroupID(g))
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(members))
		for i, t := range members {
			ids[i] = string(t.ID)
		}
		compare("groups."+g, nonNil(want.Groups[g]), ids)
	}

	for _, id := range slices.Sorted(maps.Keys(want.TabSpaces)) {
		t, err := ws.Tabs.Get(ctx, entity.TabID(id))
		if err != nil {
			return nil, err
		}
		compare("tab_spaces."+id, []string{want.TabSpaces[id]}, []string{string(t.SpaceID)})
	}

	pins, err := ws.Pinned.List(ctx)
	if err != nil {
		return nil, err
	}
	pinIDs := make([]string, len(pins))
	for i, p := range pins {
		pinIDs[i] = string(p.ID)
	}
	compare("pinned", want.Pinned, pinIDs)

	spaces, err := ws.Spaces.List(ctx)
	if err != nil {
		return nil, err
	}
	spaceIDs := make([]string, len(spaces))
	for i, sp := range spaces {
		spaceIDs[i] = string(sp.ID)
	}
	compare("spaces", want.Spaces, spaceIDs)

	for _, f := range slices.Sorted(maps.Keys(want.Bookmarks)) {
		children, err := ws.Bookmarks.Children(ctx, entity.BookmarkID(f))
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(children))
		for i, c := range children {
			ids[i] = string(c.ID)
		}
		compare("bookmarks."+f, nonNil(want.Bookmarks[f]), ids)
	}
	return out, nil
}

// nonNil turns an empty YAML list into an expectation of no members.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
