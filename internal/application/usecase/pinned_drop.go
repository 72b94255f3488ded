package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/bnema/sidebar/internal/domain/dnd"
	"github.com/bnema/sidebar/internal/domain/entity"
	"github.com/bnema/sidebar/internal/domain/repository"
	"github.com/bnema/sidebar/internal/logging"
)

var pinnedFormats = []dnd.Format{dnd.FormatPinnedSite, dnd.FormatURL}

// PinnedDropUseCase realizes drops in the pinned bar: reordering pins and
// pinning dropped links. A link that is already pinned is skipped.
type PinnedDropUseCase struct {
	pins       repository.PinnedSiteRepository
	selection  SelectionReader
	horizontal bool
}

// NewPinnedDropUseCase creates the pinned zone handler.
func NewPinnedDropUseCase(pins repository.PinnedSiteRepository, selection SelectionReader, horizontal bool) *PinnedDropUseCase {
	return &PinnedDropUseCase{pins: pins, selection: selection, horizontal: horizontal}
}

// Target builds the drop target of a pinned icon.
func (uc *PinnedDropUseCase) Target(p *entity.PinnedSite) dnd.DropTarget {
	return dnd.DropTarget{
		Zone:         dnd.ZonePinned,
		TargetID:     string(p.ID),
		Kind:         dnd.KindPinnedSite,
		Accept:       dnd.Accept(pinnedFormats, dnd.RejectSelf(string(p.ID))),
		IsHorizontal: uc.horizontal,
	}
}

// EndTarget builds the empty area after the last pin.
func (uc *PinnedDropUseCase) EndTarget() dnd.DropTarget {
	t := ZoneEndTarget(dnd.ZonePinned, dnd.Accept(pinnedFormats, nil))
	t.IsHorizontal = uc.horizontal
	return t
}

// Items expands a drag to the selected pins.
func (uc *PinnedDropUseCase) Items(ctx context.Context, elementID string) []dnd.Item {
	if uc.selection == nil || !uc.selection.Contains(elementID) {
		return nil
	}
	sites, err := uc.pins.List(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to list pinned sites")
		return nil
	}
	var items []dnd.Item
	for _, id := range uc.selection.IDs() {
		for _, p := range sites {
			if string(p.ID) == id {
				items = append(items, dnd.NewPinnedSiteItem(p))
			}
		}
	}
	return items
}

// Drop realizes a drop in the pinned bar.
func (uc *PinnedDropUseCase) Drop(ctx context.Context, s *dnd.Session, target dnd.DropTarget, pos dnd.Position, f dnd.Format) error {
	log := logging.FromContext(ctx)

	sites, err := uc.pins.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pinned sites: %w", err)
	}
	order := make([]entity.PinnedSiteID, len(sites))
	for i, p := range sites {
		order[i] = p.ID
	}

	switch f {
	case dnd.FormatPinnedSite:
		var moving []entity.PinnedSiteID
		for _, it := range s.ItemsWith(dnd.FormatPinnedSite) {
			moving = append(moving, it.PinnedSite.PinID)
		}
		index, err := listIndex(order, target, pos, moving)
		if err != nil || index < 0 {
			return err
		}
		if err := uc.pins.Move(ctx, moving, index); err != nil {
			return fmt.Errorf("failed to move pinned sites: %w", err)
		}
		log.Debug().Int("count", len(moving)).Int("index", index).Msg("pinned sites dropped")

	case dnd.FormatURL:
		index, err := listIndex(order, target, pos, nil)
		if err != nil || index < 0 {
			return err
		}
		created := 0
		for _, u := range sessionURLs(s) {
			existing, err := uc.pins.FindByURL(ctx, u.URL)
			if err != nil {
				return fmt.Errorf("failed to check existing pin: %w", err)
			}
			if existing != nil {
				log.Debug().Str("url", u.URL).Msg("url already pinned")
				continue
			}
			if _, err := uc.pins.Create(ctx, u.URL, u.Title, index+created); err != nil {
				return fmt.Errorf("failed to pin site: %w", err)
			}
			created++
		}
		log.Debug().Int("count", created).Int("index", index).Msg("links pinned")

	default:
		return fmt.Errorf("%w: %s onto %s", ErrUnsupportedDrop, f, target.Kind)
	}
	return nil
}

// listIndex resolves a leaf target in a flat list. It returns -1 when the
// drop lands on one of the moving elements.
func listIndex[K ~string](order []K, target dnd.DropTarget, pos dnd.Position, moving []K) (int, error) {
	if target.Kind == dnd.KindZoneEnd {
		return countWithout(order, moving), nil
	}
	if pos != dnd.PositionBefore && pos != dnd.PositionAfter {
		return -1, fmt.Errorf("%w: %s on %s", ErrUnsupportedDrop, pos, target.Kind)
	}
	anchor := K(target.TargetID)
	index := entity.BlockIndex(order, anchor, isAfter(pos), moving)
	if index < 0 && !slices.Contains(moving, anchor) {
		return -1, fmt.Errorf("%s %s: %w", target.Kind, anchor, entity.ErrNotFound)
	}
	return index, nil
}
