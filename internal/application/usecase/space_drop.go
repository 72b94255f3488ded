package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/sidebar/internal/domain/dnd"
	"github.com/bnema/sidebar/internal/domain/entity"
	"github.com/bnema/sidebar/internal/domain/repository"
	"github.com/bnema/sidebar/internal/logging"
)

var spaceFormats = []dnd.Format{dnd.FormatSpace, dnd.FormatTab}

// SpaceDropUseCase realizes drops on the space bar: reordering spaces
// and moving tabs into a space.
type SpaceDropUseCase struct {
	spaces     repository.SpaceRepository
	tabs       repository.TabRepository
	horizontal bool
}

// NewSpaceDropUseCase creates the spaces zone handler.
func NewSpaceDropUseCase(spaces repository.SpaceRepository, tabs repository.TabRepository, horizontal bool) *SpaceDropUseCase {
	return &SpaceDropUseCase{spaces: spaces, tabs: tabs, horizontal: horizontal}
}

// Target builds the drop target of a space icon. A space holds tabs but
// only reorders against other spaces, so a tab anywhere over it lands
// inside.
func (uc *SpaceDropUseCase) Target(sp *entity.Space) dnd.DropTarget {
	holdsTabs := func(f dnd.Format) bool { return f == dnd.FormatTab }
	return dnd.DropTarget{
		Zone:         dnd.ZoneSpaces,
		TargetID:     string(sp.ID),
		Kind:         dnd.KindSpace,
		Accept:       dnd.Accept(spaceFormats, dnd.RejectSelf(string(sp.ID))),
		IsHorizontal: uc.horizontal,
		IsContainer:  true,
		ContainerFor: holdsTabs,
		InsideOnly:   holdsTabs,
	}
}

// EndTarget builds the empty area after the last space. Tabs need a
// concrete space, so it only takes spaces.
func (uc *SpaceDropUseCase) EndTarget() dnd.DropTarget {
	t := ZoneEndTarget(dnd.ZoneSpaces, dnd.Accept([]dnd.Format{dnd.FormatSpace}, nil))
	t.IsHorizontal = uc.horizontal
	return t
}

// Drop realizes a drop on the space bar.
func (uc *SpaceDropUseCase) Drop(ctx context.Context, s *dnd.Session, target dnd.DropTarget, pos dnd.Position, f dnd.Format) error {
	log := logging.FromContext(ctx)

	switch f {
	case dnd.FormatSpace:
		spaces, err := uc.spaces.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list spaces: %w", err)
		}
		order := make([]entity.SpaceID, len(spaces))
		for i, sp := range spaces {
			order[i] = sp.ID
		}
		var moving []entity.SpaceID
		for _, it := range s.ItemsWith(dnd.FormatSpace) {
			moving = append(moving, it.Space.SpaceID)
		}
		index, err := listIndex(order, target, pos, moving)
		if err != nil || index < 0 {
			return err
		}
		if err := uc.spaces.Move(ctx, moving, index); err != nil {
			return fmt.Errorf("failed to move spaces: %w", err)
		}
		log.Debug().Int("count", len(moving)).Int("index", index).Msg("spaces dropped")

	case dnd.FormatTab:
		if target.Kind != dnd.KindSpace || !pos.IsInside() {
			return fmt.Errorf("%w: tab %s %s", ErrUnsupportedDrop, pos, target.Kind)
		}
		ids := sessionTabIDs(s)
		space := entity.SpaceID(target.TargetID)
		if err := uc.tabs.MoveToSpace(ctx, ids, space); err != nil {
			return fmt.Errorf("failed to move tabs to space: %w", err)
		}
		log.Debug().Int("count", len(ids)).Str("space", string(space)).Msg("tabs moved to space")

	default:
		return fmt.Errorf("%w: %s onto %s", ErrUnsupportedDrop, f, target.Kind)
	}
	return nil
}
