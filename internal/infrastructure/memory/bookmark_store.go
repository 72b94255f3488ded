package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/sidebar/internal/domain/entity"
	"github.com/bnema/sidebar/internal/domain/repository"
	"github.com/bnema/sidebar/internal/logging"
)

// ErrBatchEnded is returned when a finished batch is used again.
var ErrBatchEnded = errors.New("bookmark batch already ended")

// BookmarkStore is an in-memory bookmark tree.
type BookmarkStore struct {
	mu        sync.RWMutex
	tree      *entity.BookmarkTree
	ids       sequence
	changed   listeners
	refreshes int
}

// NewBookmarkStore creates a store around an existing tree.
func NewBookmarkStore(tree *entity.BookmarkTree) *BookmarkStore {
	if tree == nil {
		tree = entity.NewBookmarkTree()
	}
	return &BookmarkStore{tree: tree, ids: sequence{prefix: "bm"}}
}

var _ repository.BookmarkRepository = (*BookmarkStore)(nil)

// OnChange registers a listener called after every refresh.
func (s *BookmarkStore) OnChange(fn func()) {
	s.changed.add(fn)
}

// Refreshes returns how many refreshes have been emitted.
func (s *BookmarkStore) Refreshes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshes
}

// View runs fn with read access to the tree.
func (s *BookmarkStore) View(fn func(*entity.BookmarkTree)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.tree)
}

func (s *BookmarkStore) Get(_ context.Context, id entity.BookmarkID) (*entity.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.tree.Get(id)
	if b == nil {
		return nil, fmt.Errorf("bookmark %s: %w", id, entity.ErrNotFound)
	}
	c := *b
	return &c, nil
}

func (s *BookmarkStore) Children(_ context.Context, id entity.BookmarkID) ([]*entity.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tree.Get(id) == nil {
		return nil, fmt.Errorf("folder %s: %w", id, entity.ErrNotFound)
	}
	children := s.tree.Children(id)
	out := make([]*entity.Bookmark, len(children))
	for i, b := range children {
		c := *b
		out[i] = &c
	}
	return out, nil
}

func (s *BookmarkStore) IsAncestor(_ context.Context, ancestor, id entity.BookmarkID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.IsAncestor(ancestor, id), nil
}

func (s *BookmarkStore) SetExpanded(ctx context.Context, id entity.BookmarkID, expanded bool) error {
	s.mu.Lock()
	b := s.tree.Get(id)
	if b == nil {
		s.mu.Unlock()
		return fmt.Errorf("folder %s: %w", id, entity.ErrNotFound)
	}
	b.Expanded = expanded
	s.mu.Unlock()

	logging.FromContext(ctx).Debug().Str("folder", string(id)).Bool("expanded", expanded).Msg("folder toggled")
	s.refresh()
	return nil
}

// Batch starts a scoped group of mutations.
func (s *BookmarkStore) Batch(_ context.Context) repository.BookmarkBatch {
	return &bookmarkBatch{store: s}
}

func (s *BookmarkStore) refresh() {
	s.mu.Lock()
	s.refreshes++
	s.mu.Unlock()
	s.changed.notify()
}

type bookmarkBatch struct {
	store *BookmarkStore
	mu    sync.Mutex
	ops   int
	ended bool
}

func (b *bookmarkBatch) Move(ctx context.Context, id, parent entity.BookmarkID, index int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ended {
		return ErrBatchEnded
	}

	b.store.mu.Lock()
	err := b.store.tree.Move(id, parent, index)
	b.store.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to move bookmark: %w", err)
	}
	b.ops++
	logging.FromContext(ctx).Debug().
		Str("bookmark", string(id)).
		Str("parent", string(parent)).
		Int("index", index).
		Msg("bookmark moved")
	return nil
}

func (b *bookmarkBatch) Create(ctx context.Context, parent entity.BookmarkID, index int, title, url string) (*entity.Bookmark, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ended {
		return nil, ErrBatchEnded
	}

	bm := &entity.Bookmark{
		ID:    entity.BookmarkID(b.store.ids.id()),
		Title: title,
		URL:   url,
	}
	b.store.mu.Lock()
	err := b.store.tree.Insert(bm, parent, index)
	b.store.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to create bookmark: %w", err)
	}
	b.ops++
	logging.FromContext(ctx).Debug().Str("bookmark", string(bm.ID)).Str("url", url).Msg("bookmark created")
	c := *bm
	return &c, nil
}

func (b *bookmarkBatch) End(ctx context.Context) error {
	b.mu.Lock()
	if b.ended {
		b.mu.Unlock()
		return ErrBatchEnded
	}
	b.ended = true
	ops := b.ops
	b.mu.Unlock()

	if ops > 0 {
		logging.FromContext(ctx).Debug().Int("ops", ops).Msg("bookmark batch ended")
		b.store.refresh()
	}
	return nil
}
