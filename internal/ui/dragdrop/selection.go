package dragdrop

import (
	"slices"
	"sync"
)

// Selection is the ordered multi-selection a zone component owns.
// Items providers read it to expand a drag.
type Selection struct {
	mu  sync.RWMutex
	ids []string
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Toggle adds id if absent, removes it otherwise.
func (s *Selection) Toggle(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		return
	}
	s.ids = append(s.ids, id)
}

// Set replaces the selection.
func (s *Selection) Set(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = slices.Clone(ids)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.Set()
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.ids, id)
}

// IDs returns the selected ids in selection order.
func (s *Selection) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ids)
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}
