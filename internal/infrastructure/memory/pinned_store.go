package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/sidebar/internal/domain/entity"
	"github.com/bnema/sidebar/internal/domain/repository"
	"github.com/bnema/sidebar/internal/logging"
)

// PinnedStore is an in-memory pinned bar.
type PinnedStore struct {
	mu      sync.RWMutex
	list    *entity.PinList
	ids     sequence
	changed listeners
}

// NewPinnedStore creates a store around an existing pin list.
func NewPinnedStore(list *entity.PinList) *PinnedStore {
	if list == nil {
		list = entity.NewPinList()
	}
	return &PinnedStore{list: list, ids: sequence{prefix: "pin"}}
}

var _ repository.PinnedSiteRepository = (*PinnedStore)(nil)

// OnChange registers a listener called after every mutation.
func (s *PinnedStore) OnChange(fn func()) {
	s.changed.add(fn)
}

// View runs fn with read access to the pin list.
func (s *PinnedStore) View(fn func(*entity.PinList)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.list)
}

func (s *PinnedStore) List(_ context.Context) ([]*entity.PinnedSite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.PinnedSite, len(s.list.Sites))
	for i, p := range s.list.Sites {
		c := *p
		out[i] = &c
	}
	return out, nil
}

// FindByURL returns nil without error when no site is pinned for url.
func (s *PinnedStore) FindByURL(_ context.Context, url string) (*entity.PinnedSite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.list.FindByURL(url)
	if p == nil {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (s *PinnedStore) Move(ctx context.Context, ids []entity.PinnedSiteID, index int) error {
	s.mu.Lock()
	ok := s.list.Move(ids, index)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("move pinned sites %v: %w", ids, entity.ErrNotFound)
	}
	logging.FromContext(ctx).Debug().Int("count", len(ids)).Int("index", index).Msg("pinned sites moved")
	s.changed.notify()
	return nil
}

func (s *PinnedStore) Create(ctx context.Context, url, title string, index int) (*entity.PinnedSite, error) {
	s.mu.Lock()
	p := &entity.PinnedSite{
		ID:    entity.PinnedSiteID(s.ids.id()),
		URL:   url,
		Title: title,
	}
	s.list.Insert(p, index)
	c := *p
	s.mu.Unlock()

	logging.FromContext(ctx).Debug().Str("pin", string(p.ID)).Str("url", url).Msg("site pinned")
	s.changed.notify()
	return &c, nil
}
