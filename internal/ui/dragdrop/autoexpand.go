package dragdrop

import (
	"sync"
	"time"
)

// DefaultAutoExpandDelay is how long a collapsed container must be
// hovered before it opens.
const DefaultAutoExpandDelay = time.Second

// Scheduler runs fn after d and returns a function that cancels it.
type Scheduler func(d time.Duration, fn func()) (stop func() bool)

func afterFunc(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, fn).Stop
}

// AutoExpandTimer is the shared hover-to-expand countdown. Only one
// target is tracked at a time.
type AutoExpandTimer struct {
	mu       sync.Mutex
	delay    time.Duration
	schedule Scheduler

	stop     func() bool
	targetID string
	armed    bool
	gen      uint64
}

// TimerOption configures an AutoExpandTimer.
type TimerOption func(*AutoExpandTimer)

// WithScheduler replaces time.AfterFunc, mainly for tests.
func WithScheduler(s Scheduler) TimerOption {
	return func(t *AutoExpandTimer) {
		t.schedule = s
	}
}

// NewAutoExpandTimer creates a disarmed timer.
func NewAutoExpandTimer(delay time.Duration, opts ...TimerOption) *AutoExpandTimer {
	if delay <= 0 {
		delay = DefaultAutoExpandDelay
	}
	t := &AutoExpandTimer{delay: delay, schedule: afterFunc}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Arm starts the countdown for targetID. Arming the target that is
// already armed does nothing, so pointer jitter never restarts it.
// onExpand runs at most once per arm and does not disarm the timer.
func (t *AutoExpandTimer) Arm(targetID string, onExpand func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.armed && t.targetID == targetID {
		return
	}
	t.cancelLocked()

	t.gen++
	gen := t.gen
	t.targetID = targetID
	t.armed = true
	t.stop = t.schedule(t.delay, func() {
		t.mu.Lock()
		live := t.armed && t.gen == gen
		t.mu.Unlock()

		if live && onExpand != nil {
			onExpand()
		}
	})
}

// Disarm cancels any pending countdown.
func (t *AutoExpandTimer) Disarm() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cancelLocked()
	t.armed = false
	t.targetID = ""
}

// Armed returns the target currently counted down for.
func (t *AutoExpandTimer) Armed() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.targetID, t.armed
}

// SetDelay changes the dwell time for subsequent arms.
func (t *AutoExpandTimer) SetDelay(d time.Duration) {
	if d <= 0 {
		return
	}
	t.mu.Lock()
	t.delay = d
	t.mu.Unlock()
}

func (t *AutoExpandTimer) cancelLocked() {
	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
	// Invalidate a callback that already left the scheduler.
	t.gen++
}
