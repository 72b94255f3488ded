// Package dragdrop coordinates drag gestures across the sidebar's zones.
//
// Zones plug in through a Registry when their component mounts: a
// DropHandler realizes completed drops and an optional ItemsProvider
// expands a dragged element into the zone's current multi-selection.
// The Coordinator drives one gesture at a time against a
// port.DragSurface; the ExternalDropAdapter handles links dragged in
// from outside the application.
package dragdrop

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/sidebar/internal/domain/dnd"
)

// DropHandler realizes a completed drop. It is the only code allowed to
// call the bookmark, tab, pin and space collaborators.
type DropHandler func(ctx context.Context, s *dnd.Session, target dnd.DropTarget, pos dnd.Position, f dnd.Format) error

// ItemsProvider expands a dragged element into the zone's current
// multi-selection. An empty result means no selection applies.
type ItemsProvider func(ctx context.Context, elementID string) []dnd.Item

// Registry maps zones to their drop handler and items provider.
// Entries live as long as the owning component stays mounted.
type Registry struct {
	mu        sync.RWMutex
	handlers  map[dnd.Zone]DropHandler
	providers map[dnd.Zone]ItemsProvider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers:  make(map[dnd.Zone]DropHandler),
		providers: make(map[dnd.Zone]ItemsProvider),
	}
}

// RegisterDropHandler installs the drop handler for a zone, replacing any
// previous one.
func (r *Registry) RegisterDropHandler(zone dnd.Zone, h DropHandler) error {
	if !zone.Valid() {
		return fmt.Errorf("register drop handler for %q: %w", zone, dnd.ErrUnknownZone)
	}
	if h == nil {
		return fmt.Errorf("register drop handler for %q: nil handler", zone)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[zone] = h
	return nil
}

// UnregisterDropHandler removes a zone's drop handler.
func (r *Registry) UnregisterDropHandler(zone dnd.Zone) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, zone)
}

// RegisterItemsProvider installs the items provider for a zone.
func (r *Registry) RegisterItemsProvider(zone dnd.Zone, p ItemsProvider) error {
	if !zone.Valid() {
		return fmt.Errorf("register items provider for %q: %w", zone, dnd.ErrUnknownZone)
	}
	if p == nil {
		return fmt.Errorf("register items provider for %q: nil provider", zone)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[zone] = p
	return nil
}

// UnregisterItemsProvider removes a zone's items provider.
func (r *Registry) UnregisterItemsProvider(zone dnd.Zone) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.providers, zone)
}

// DropHandler returns the handler registered for zone. The returned
// function stays valid after the zone unregisters.
func (r *Registry) DropHandler(zone dnd.Zone) (DropHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[zone]
	return h, ok
}

// ItemsProvider returns the provider registered for zone.
func (r *Registry) ItemsProvider(zone dnd.Zone) (ItemsProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[zone]
	return p, ok
}

// Mount registers a zone's handler and optional provider and returns the
// matching teardown. Components call the teardown when they unmount.
func (r *Registry) Mount(zone dnd.Zone, h DropHandler, p ItemsProvider) (func(), error) {
	if err := r.RegisterDropHandler(zone, h); err != nil {
		return nil, err
	}
	if p != nil {
		if err := r.RegisterItemsProvider(zone, p); err != nil {
			r.UnregisterDropHandler(zone)
			return nil, err
		}
	}
	return func() {
		r.UnregisterDropHandler(zone)
		if p != nil {
			r.UnregisterItemsProvider(zone)
		}
	}, nil
}
