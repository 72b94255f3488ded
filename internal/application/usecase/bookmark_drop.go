package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/bnema/sidebar/internal/domain/dnd"
	"github.com/bnema/sidebar/internal/domain/entity"
	"github.com/bnema/sidebar/internal/domain/repository"
	"github.com/bnema/sidebar/internal/logging"
)

var bookmarkFormats = []dnd.Format{dnd.FormatBookmark, dnd.FormatURL}

// BookmarkDropUseCase realizes drops in the bookmarks zone. Every drop
// runs inside one bookmark batch so the tree refreshes once.
type BookmarkDropUseCase struct {
	bookmarks repository.BookmarkRepository
	selection SelectionReader
}

// NewBookmarkDropUseCase creates the bookmarks zone handler. selection
// may be nil when the zone has no multi-selection.
func NewBookmarkDropUseCase(bookmarks repository.BookmarkRepository, selection SelectionReader) *BookmarkDropUseCase {
	return &BookmarkDropUseCase{bookmarks: bookmarks, selection: selection}
}

// Target builds the drop target of a bookmark row. A row rejects being
// dropped onto itself, and folders reject their own subtree.
func (uc *BookmarkDropUseCase) Target(ctx context.Context, b *entity.Bookmark) dnd.DropTarget {
	t := dnd.DropTarget{
		Zone:     dnd.ZoneBookmarks,
		TargetID: string(b.ID),
		Kind:     dnd.KindBookmark,
		Accept:   dnd.Accept(bookmarkFormats, dnd.AllOf(dnd.RejectSelf(string(b.ID)), uc.notIntoSelf(ctx, b.ID))),
	}
	if b.IsFolder() {
		id := b.ID
		t.Kind = dnd.KindFolder
		t.IsContainer = true
		t.IsExpanded = b.Expanded
		t.Expand = func() {
			if err := uc.bookmarks.SetExpanded(ctx, id, true); err != nil {
				logging.FromContext(ctx).Warn().Err(err).Str("folder", string(id)).Msg("failed to expand folder")
			}
		}
	}
	return t
}

// EndTarget builds the empty area below the last root bookmark.
func (uc *BookmarkDropUseCase) EndTarget() dnd.DropTarget {
	return ZoneEndTarget(dnd.ZoneBookmarks, dnd.Accept(bookmarkFormats, nil))
}

// notIntoSelf rejects a bookmark drag when one of its folders contains
// the target.
func (uc *BookmarkDropUseCase) notIntoSelf(ctx context.Context, target entity.BookmarkID) dnd.Validator {
	return func(s *dnd.Session, f dnd.Format) bool {
		if f != dnd.FormatBookmark {
			return true
		}
		for _, it := range s.ItemsWith(dnd.FormatBookmark) {
			if !it.Bookmark.Folder {
				continue
			}
			inside, err := uc.bookmarks.IsAncestor(ctx, it.Bookmark.BookmarkID, target)
			if err != nil || inside {
				return false
			}
		}
		return true
	}
}

// Items expands a drag to the selected bookmarks when the dragged one is
// part of the selection.
func (uc *BookmarkDropUseCase) Items(ctx context.Context, elementID string) []dnd.Item {
	if uc.selection == nil || !uc.selection.Contains(elementID) {
		return nil
	}
	var items []dnd.Item
	for _, id := range uc.selection.IDs() {
		b, err := uc.bookmarks.Get(ctx, entity.BookmarkID(id))
		if err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("bookmark", id).Msg("selected bookmark is gone")
			continue
		}
		items = append(items, dnd.NewBookmarkItem(b))
	}
	return items
}

// Drop realizes a drop in the bookmarks zone.
func (uc *BookmarkDropUseCase) Drop(ctx context.Context, s *dnd.Session, target dnd.DropTarget, pos dnd.Position, f dnd.Format) (err error) {
	var moving []entity.BookmarkID
	switch f {
	case dnd.FormatBookmark:
		for _, it := range s.ItemsWith(dnd.FormatBookmark) {
			moving = append(moving, it.Bookmark.BookmarkID)
		}
	case dnd.FormatURL:
	default:
		return fmt.Errorf("%w: %s onto %s", ErrUnsupportedDrop, f, target.Kind)
	}

	parent, index, ok, err := uc.destination(ctx, target, pos, moving)
	if err != nil || !ok {
		return err
	}

	batch := uc.bookmarks.Batch(ctx)
	defer func() {
		if endErr := batch.End(ctx); endErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to end bookmark batch: %w", endErr))
		}
	}()

	log := logging.FromContext(ctx)
	if f == dnd.FormatBookmark {
		if err := uc.moveBlock(ctx, batch, parent, index, moving); err != nil {
			return err
		}
		log.Debug().Int("count", len(moving)).Str("parent", string(parent)).Int("index", index).Msg("bookmarks dropped")
		return nil
	}

	urls := sessionURLs(s)
	for i, u := range urls {
		title := u.Title
		if title == "" {
			title = u.URL
		}
		if _, err := batch.Create(ctx, parent, index+i, title, u.URL); err != nil {
			return fmt.Errorf("failed to create bookmark: %w", err)
		}
	}
	log.Debug().Int("count", len(urls)).Str("parent", string(parent)).Int("index", index).Msg("links bookmarked")
	return nil
}

// destination resolves a target and position to a parent folder and an
// index counted without the moving nodes.
func (uc *BookmarkDropUseCase) destination(ctx context.Context, target dnd.DropTarget, pos dnd.Position, moving []entity.BookmarkID) (entity.BookmarkID, int, bool, error) {
	id := entity.BookmarkID(target.TargetID)

	switch {
	case target.Kind == dnd.KindZoneEnd:
		ids, err := uc.childIDs(ctx, entity.RootBookmarkID)
		if err != nil {
			return "", 0, false, err
		}
		return entity.RootBookmarkID, countWithout(ids, moving), true, nil

	case target.Kind == dnd.KindFolder && pos.IsInside():
		if pos == dnd.PositionIntoFirst {
			return id, 0, true, nil
		}
		ids, err := uc.childIDs(ctx, id)
		if err != nil {
			return "", 0, false, err
		}
		return id, countWithout(ids, moving), true, nil

	case (target.Kind == dnd.KindFolder || target.Kind == dnd.KindBookmark) &&
		(pos == dnd.PositionBefore || pos == dnd.PositionAfter):
		b, err := uc.bookmarks.Get(ctx, id)
		if err != nil {
			return "", 0, false, fmt.Errorf("failed to get drop target: %w", err)
		}
		ids, err := uc.childIDs(ctx, b.ParentID)
		if err != nil {
			return "", 0, false, err
		}
		index := entity.BlockIndex(ids, id, isAfter(pos), moving)
		if index < 0 {
			return "", 0, false, nil
		}
		return b.ParentID, index, true, nil
	}
	return "", 0, false, fmt.Errorf("%w: %s on %s", ErrUnsupportedDrop, pos, target.Kind)
}

// moveBlock moves the nodes one by one so they end up adjacent, in drag
// order, at index of the parent's remaining children. Each step is
// anchored on a node that stays put, since the batch applies moves
// immediately.
func (uc *BookmarkDropUseCase) moveBlock(ctx context.Context, batch repository.BookmarkBatch, parent entity.BookmarkID, index int, moving []entity.BookmarkID) error {
	ids, err := uc.childIDs(ctx, parent)
	if err != nil {
		return err
	}
	rest := slices.DeleteFunc(ids, func(id entity.BookmarkID) bool { return slices.Contains(moving, id) })
	var anchor entity.BookmarkID
	if index < len(rest) {
		anchor = rest[index]
	}

	var prev entity.BookmarkID
	for k, id := range moving {
		siblings, err := uc.childIDs(ctx, parent)
		if err != nil {
			return err
		}
		siblings = slices.DeleteFunc(siblings, func(s entity.BookmarkID) bool { return s == id })

		at := len(siblings)
		switch {
		case k > 0:
			at = slices.Index(siblings, prev) + 1
		case anchor != "":
			at = slices.Index(siblings, anchor)
		}
		if err := batch.Move(ctx, id, parent, at); err != nil {
			return fmt.Errorf("failed to move bookmark %s: %w", id, err)
		}
		prev = id
	}
	return nil
}

func (uc *BookmarkDropUseCase) childIDs(ctx context.Context, id entity.BookmarkID) ([]entity.BookmarkID, error) {
	children, err := uc.bookmarks.Children(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list folder: %w", err)
	}
	ids := make([]entity.BookmarkID, len(children))
	for i, c := range children {
		ids[i] = c.ID
	}
	return ids, nil
}
