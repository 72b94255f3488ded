package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/sidebar/internal/domain/entity"
	"github.com/bnema/sidebar/internal/domain/repository"
	"github.com/bnema/sidebar/internal/logging"
)

// SpaceStore is an in-memory space bar.
type SpaceStore struct {
	mu      sync.RWMutex
	list    *entity.SpaceList
	changed listeners
}

// NewSpaceStore creates a store around an existing space list.
func NewSpaceStore(list *entity.SpaceList) *SpaceStore {
	if list == nil {
		list = entity.NewSpaceList()
	}
	return &SpaceStore{list: list}
}

var _ repository.SpaceRepository = (*SpaceStore)(nil)

// OnChange registers a listener called after every mutation.
func (s *SpaceStore) OnChange(fn func()) {
	s.changed.add(fn)
}

// View runs fn with read access to the space list.
func (s *SpaceStore) View(fn func(*entity.SpaceList)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.list)
}

// SetActive switches the active space.
func (s *SpaceStore) SetActive(ctx context.Context, id entity.SpaceID) error {
	s.mu.Lock()
	if s.list.Find(id) == nil {
		s.mu.Unlock()
		return fmt.Errorf("space %s: %w", id, entity.ErrNotFound)
	}
	s.list.ActiveID = id
	s.mu.Unlock()

	logging.FromContext(ctx).Debug().Str("space", string(id)).Msg("space activated")
	s.changed.notify()
	return nil
}

func (s *SpaceStore) List(_ context.Context) ([]*entity.Space, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Space, len(s.list.Spaces))
	for i, sp := range s.list.Spaces {
		c := *sp
		out[i] = &c
	}
	return out, nil
}

func (s *SpaceStore) Move(ctx context.Context, ids []entity.SpaceID, index int) error {
	s.mu.Lock()
	ok := s.list.Move(ids, index)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("move spaces %v: %w", ids, entity.ErrNotFound)
	}
	logging.FromContext(ctx).Debug().Int("count", len(ids)).Int("index", index).Msg("spaces moved")
	s.changed.notify()
	return nil
}
