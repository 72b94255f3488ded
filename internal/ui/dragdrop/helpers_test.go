package dragdrop_test

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/sidebar/internal/application/port"
	"github.com/bnema/sidebar/internal/domain/dnd"
	"github.com/bnema/sidebar/internal/domain/entity"
	"github.com/bnema/sidebar/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

type fakeTimer struct {
	fn      func()
	stopped bool
	fired   bool
}

// fakeScheduler records scheduled callbacks and fires them on demand.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
	delays []time.Duration
}

func (s *fakeScheduler) schedule(d time.Duration, fn func()) func() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{fn: fn}
	s.timers = append(s.timers, t)
	s.delays = append(s.delays, d)
	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		pending := !t.stopped && !t.fired
		t.stopped = true
		return pending
	}
}

func (s *fakeScheduler) fireAll() {
	s.mu.Lock()
	var due []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()
	for _, t := range due {
		t.fn()
	}
}

func (s *fakeScheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (s *fakeScheduler) scheduled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

type fakeElement struct {
	zone dnd.Zone
	rect entity.Rect
	item dnd.Item
}

// fakeSurface is a hand-built frame of elements and drop targets.
type fakeSurface struct {
	mu       sync.Mutex
	elements map[string]fakeElement
	targets  []port.DropCandidate
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{elements: make(map[string]fakeElement)}
}

func (s *fakeSurface) addElement(id string, zone dnd.Zone, rect entity.Rect, item dnd.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elements[id] = fakeElement{zone: zone, rect: rect, item: item}
}

func (s *fakeSurface) addTarget(t dnd.DropTarget, rect entity.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets = append(s.targets, port.DropCandidate{Target: t, Rect: rect})
}

func (s *fakeSurface) setTargets(c ...port.DropCandidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets = c
}

func (s *fakeSurface) ZoneOf(id string) (dnd.Zone, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.elements[id]
	return e.zone, ok
}

func (s *fakeSurface) ElementRect(id string) (entity.Rect, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.elements[id]
	return e.rect, ok
}

func (s *fakeSurface) ItemFor(id string) (dnd.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.elements[id]
	return e.item, ok
}

func (s *fakeSurface) DropTargets() []port.DropCandidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]port.DropCandidate, len(s.targets))
	copy(out, s.targets)
	return out
}

type fakeProbe struct {
	bounds entity.Rect
	hits   []port.ProbeHit
}

func (p *fakeProbe) ProbeAt(x, y float64) port.ProbeHit {
	for _, h := range p.hits {
		if h.Rect.Contains(x, y) {
			return h
		}
	}
	return port.ProbeHit{}
}

func (p *fakeProbe) Bounds() entity.Rect {
	return p.bounds
}
