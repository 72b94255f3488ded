// Package memory provides in-process collaborators for the sidebar: the
// bookmark tree, tab strip, pinned bar and space bar. They back the
// interactive host and gesture replays.
package memory

import (
	"strconv"
	"sync"
)

// listeners fans out change notifications.
type listeners struct {
	mu  sync.Mutex
	fns []func()
}

func (l *listeners) add(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fns = append(l.fns, fn)
}

func (l *listeners) notify() {
	l.mu.Lock()
	fns := make([]func(), len(l.fns))
	copy(fns, l.fns)
	l.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

type sequence struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func (s *sequence) id() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.prefix + strconv.Itoa(s.next)
}
