package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/bnema/sidebar/internal/domain/entity"
	"github.com/bnema/sidebar/internal/domain/repository"
	"github.com/bnema/sidebar/internal/logging"
)

// TabStore is an in-memory tab strip.
type TabStore struct {
	mu      sync.RWMutex
	list    *entity.TabList
	ids     sequence
	changed listeners
}

// NewTabStore creates a store around an existing tab list.
func NewTabStore(list *entity.TabList) *TabStore {
	if list == nil {
		list = entity.NewTabList()
	}
	return &TabStore{list: list, ids: sequence{prefix: "tab"}}
}

var _ repository.TabRepository = (*TabStore)(nil)

// OnChange registers a listener called after every mutation.
func (s *TabStore) OnChange(fn func()) {
	s.changed.add(fn)
}

// View runs fn with read access to the tab list.
func (s *TabStore) View(fn func(*entity.TabList)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.list)
}

func copyTabs(tabs []*entity.Tab) []*entity.Tab {
	out := make([]*entity.Tab, len(tabs))
	for i, t := range tabs {
		c := *t
		out[i] = &c
	}
	return out
}

func (s *TabStore) List(_ context.Context) ([]*entity.Tab, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyTabs(s.list.Tabs), nil
}

func (s *TabStore) Get(_ context.Context, id entity.TabID) (*entity.Tab, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t := s.list.Find(id)
	if t == nil {
		return nil, fmt.Errorf("tab %s: %w", id, entity.ErrNotFound)
	}
	c := *t
	return &c, nil
}

func (s *TabStore) Group(_ context.Context, id entity.TabGroupID) (*entity.TabGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g := s.list.Group(id)
	if g == nil {
		return nil, fmt.Errorf("tab group %s: %w", id, entity.ErrNotFound)
	}
	c := *g
	return &c, nil
}

func (s *TabStore) GroupTabs(_ context.Context, id entity.TabGroupID) ([]*entity.Tab, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.list.Group(id) == nil {
		return nil, fmt.Errorf("tab group %s: %w", id, entity.ErrNotFound)
	}
	return copyTabs(s.list.GroupTabs(id)), nil
}

func (s *TabStore) Highlighted(_ context.Context) ([]*entity.Tab, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyTabs(s.list.Highlighted()), nil
}

func (s *TabStore) Move(ctx context.Context, ids []entity.TabID, index int) error {
	s.mu.Lock()
	ok := s.list.Move(ids, index)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("move tabs %v: %w", ids, entity.ErrNotFound)
	}
	logging.FromContext(ctx).Debug().Int("count", len(ids)).Int("index", index).Msg("tabs moved")
	s.changed.notify()
	return nil
}

func (s *TabStore) SetGroup(ctx context.Context, ids []entity.TabID, group entity.TabGroupID) error {
	s.mu.Lock()
	if group != "" && s.list.Group(group) == nil {
		s.mu.Unlock()
		return fmt.Errorf("tab group %s: %w", group, entity.ErrNotFound)
	}
	s.list.SetGroup(ids, group)
	s.mu.Unlock()

	logging.FromContext(ctx).Debug().Int("count", len(ids)).Str("group", string(group)).Msg("tabs regrouped")
	s.changed.notify()
	return nil
}

func (s *TabStore) MoveGroup(ctx context.Context, id entity.TabGroupID, index int) error {
	s.mu.Lock()
	ok := s.list.MoveGroup(id, index)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("tab group %s: %w", id, entity.ErrNotFound)
	}
	logging.FromContext(ctx).Debug().Str("group", string(id)).Int("index", index).Msg("tab group moved")
	s.changed.notify()
	return nil
}

func (s *TabStore) SetGroupCollapsed(ctx context.Context, id entity.TabGroupID, collapsed bool) error {
	s.mu.Lock()
	g := s.list.Group(id)
	if g == nil {
		s.mu.Unlock()
		return fmt.Errorf("tab group %s: %w", id, entity.ErrNotFound)
	}
	g.Collapsed = collapsed
	s.mu.Unlock()

	logging.FromContext(ctx).Debug().Str("group", string(id)).Bool("collapsed", collapsed).Msg("tab group toggled")
	s.changed.notify()
	return nil
}

func (s *TabStore) Create(ctx context.Context, url string, index int, group entity.TabGroupID) (*entity.Tab, error) {
	s.mu.Lock()
	if group != "" && s.list.Group(group) == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("tab group %s: %w", group, entity.ErrNotFound)
	}
	t := &entity.Tab{
		ID:      entity.TabID(s.ids.id()),
		GroupID: group,
		URL:     url,
		Title:   url,
	}
	s.list.Insert(t, index)
	c := *t
	s.mu.Unlock()

	logging.FromContext(ctx).Debug().Str("tab", string(t.ID)).Str("url", url).Int("index", index).Msg("tab created")
	s.changed.notify()
	return &c, nil
}

func (s *TabStore) MoveToSpace(ctx context.Context, ids []entity.TabID, space entity.SpaceID) error {
	s.mu.Lock()
	for _, id := range ids {
		if s.list.Find(id) == nil {
			s.mu.Unlock()
			return fmt.Errorf("tab %s: %w", id, entity.ErrNotFound)
		}
	}
	for _, id := range ids {
		s.list.Find(id).SpaceID = space
	}
	s.mu.Unlock()

	logging.FromContext(ctx).Debug().Int("count", len(ids)).Str("space", string(space)).Msg("tabs moved to space")
	s.changed.notify()
	return nil
}

// SetHighlighted makes exactly ids the highlighted tabs.
func (s *TabStore) SetHighlighted(ctx context.Context, ids []entity.TabID) error {
	s.mu.Lock()
	for _, id := range ids {
		if s.list.Find(id) == nil {
			s.mu.Unlock()
			return fmt.Errorf("tab %s: %w", id, entity.ErrNotFound)
		}
	}
	for _, t := range s.list.Tabs {
		t.Highlighted = slices.Contains(ids, t.ID)
	}
	s.mu.Unlock()

	logging.FromContext(ctx).Debug().Int("count", len(ids)).Msg("tabs highlighted")
	s.changed.notify()
	return nil
}
