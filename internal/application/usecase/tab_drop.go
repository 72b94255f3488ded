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

// tabFormats is the preference order of every target in the tabs zone.
// Bookmark only wins for folders, which carry no url.
var tabFormats = []dnd.Format{dnd.FormatTabGroup, dnd.FormatTab, dnd.FormatURL, dnd.FormatBookmark}

// TabDropUseCase realizes drops in the tabs zone: reordering tabs,
// joining or leaving groups, moving whole groups and opening dropped
// links (or every link of a dropped folder) as new tabs.
type TabDropUseCase struct {
	tabs    repository.TabRepository
	folders dnd.FolderReader
}

// NewTabDropUseCase creates the tabs zone handler. folders is used to
// open bookmark folders as tabs and may be nil.
func NewTabDropUseCase(tabs repository.TabRepository, folders dnd.FolderReader) *TabDropUseCase {
	return &TabDropUseCase{tabs: tabs, folders: folders}
}

// TabTarget builds the drop target of a tab row. Groups cannot nest, so
// a tab group is rejected next to a grouped tab.
func (uc *TabDropUseCase) TabTarget(t *entity.Tab) dnd.DropTarget {
	grouped := t.InGroup()
	return dnd.DropTarget{
		Zone:     dnd.ZoneTabs,
		TargetID: string(t.ID),
		Kind:     dnd.KindTab,
		Accept: dnd.Accept(tabFormats, dnd.AllOf(
			dnd.RejectSelf(string(t.ID)),
			func(_ *dnd.Session, f dnd.Format) bool {
				return f != dnd.FormatTabGroup || !grouped
			},
		)),
	}
}

// GroupTarget builds the drop target of a group header. The header holds
// tabs and links but only reorders against other groups.
func (uc *TabDropUseCase) GroupTarget(ctx context.Context, g *entity.TabGroup) dnd.DropTarget {
	id := g.ID
	return dnd.DropTarget{
		Zone:        dnd.ZoneTabs,
		TargetID:    string(g.ID),
		Kind:        dnd.KindTabGroup,
		Accept:      dnd.Accept(tabFormats, dnd.RejectSelf(string(g.ID))),
		IsContainer: true,
		IsExpanded:  !g.Collapsed,
		ContainerFor: func(f dnd.Format) bool {
			return f != dnd.FormatTabGroup
		},
		Expand: func() {
			if err := uc.tabs.SetGroupCollapsed(ctx, id, false); err != nil {
				logging.FromContext(ctx).Warn().Err(err).Str("group", string(id)).Msg("failed to expand tab group")
			}
		},
	}
}

// EndTarget builds the empty area below the last tab.
func (uc *TabDropUseCase) EndTarget() dnd.DropTarget {
	return ZoneEndTarget(dnd.ZoneTabs, dnd.Accept(tabFormats, nil))
}

// Items expands a drag to the highlighted tabs.
func (uc *TabDropUseCase) Items(ctx context.Context, _ string) []dnd.Item {
	highlighted, err := uc.tabs.Highlighted(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("failed to read highlighted tabs")
		return nil
	}
	if len(highlighted) < 2 {
		return nil
	}
	items := make([]dnd.Item, len(highlighted))
	for i, t := range highlighted {
		items[i] = dnd.NewTabItem(t)
	}
	return items
}

// Drop realizes a drop in the tabs zone.
func (uc *TabDropUseCase) Drop(ctx context.Context, s *dnd.Session, target dnd.DropTarget, pos dnd.Position, f dnd.Format) error {
	log := logging.FromContext(ctx)

	tabs, err := uc.tabs.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tabs: %w", err)
	}

	switch f {
	case dnd.FormatTab:
		moving := sessionTabIDs(s)
		p, err := tabPlacement(tabs, target, pos, moving)
		if err != nil || !p.ok {
			return err
		}
		if err := uc.tabs.Move(ctx, moving, p.index); err != nil {
			return fmt.Errorf("failed to move tabs: %w", err)
		}
		if err := uc.tabs.SetGroup(ctx, moving, p.group); err != nil {
			return fmt.Errorf("failed to regroup tabs: %w", err)
		}
		log.Debug().Int("count", len(moving)).Int("index", p.index).Str("group", string(p.group)).Msg("tabs dropped")

	case dnd.FormatTabGroup:
		var groups []entity.TabGroupID
		var moving []entity.TabID
		for _, it := range s.ItemsWith(dnd.FormatTabGroup) {
			members, err := uc.tabs.GroupTabs(ctx, it.TabGroup.GroupID)
			if err != nil {
				return fmt.Errorf("failed to list group tabs: %w", err)
			}
			groups = append(groups, it.TabGroup.GroupID)
			for _, t := range members {
				moving = append(moving, t.ID)
			}
		}
		p, err := tabPlacement(tabs, target, pos, moving)
		if err != nil || !p.ok {
			return err
		}
		// Each group in turn lands right before the tab that follows the
		// drop point, which keeps the dragged groups in drag order.
		anchor := stayingTabAt(tabs, moving, p.index)
		for _, id := range groups {
			current, err := uc.tabs.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list tabs: %w", err)
			}
			index := groupIndexBefore(current, id, anchor)
			if err := uc.tabs.MoveGroup(ctx, id, index); err != nil {
				return fmt.Errorf("failed to move tab group %s: %w", id, err)
			}
		}
		log.Debug().Int("groups", len(groups)).Int("tabs", len(moving)).Int("index", p.index).Msg("tab groups dropped")

	case dnd.FormatURL, dnd.FormatBookmark:
		urls, err := dnd.CollectURLs(ctx, s, uc.folders)
		if err != nil {
			return fmt.Errorf("failed to collect urls: %w", err)
		}
		p, err := tabPlacement(tabs, target, pos, nil)
		if err != nil || !p.ok {
			return err
		}
		for i, u := range urls {
			if _, err := uc.tabs.Create(ctx, u.URL, p.index+i, p.group); err != nil {
				return fmt.Errorf("failed to open tab: %w", err)
			}
		}
		log.Debug().Int("count", len(urls)).Int("index", p.index).Msg("links opened as tabs")

	default:
		return fmt.Errorf("%w: %s onto %s", ErrUnsupportedDrop, f, target.Kind)
	}
	return nil
}

type placement struct {
	index int
	group entity.TabGroupID
	ok    bool
}

// tabPlacement resolves a target and position to an index counted
// without the moving tabs, plus the group the tabs end up in. ok is
// false when the drop lands on one of the moving tabs.
func tabPlacement(tabs []*entity.Tab, target dnd.DropTarget, pos dnd.Position, moving []entity.TabID) (placement, error) {
	// before counts the tabs that stay and precede i.
	before := func(i int) int {
		n := 0
		for _, t := range tabs[:i] {
			if !slices.Contains(moving, t.ID) {
				n++
			}
		}
		return n
	}
	// through counts the tabs that stay up to and including i.
	through := func(i int) int {
		n := before(i)
		if !slices.Contains(moving, tabs[i].ID) {
			n++
		}
		return n
	}

	switch target.Kind {
	case dnd.KindTab:
		id := entity.TabID(target.TargetID)
		i := slices.IndexFunc(tabs, func(t *entity.Tab) bool { return t.ID == id })
		if i < 0 {
			return placement{}, fmt.Errorf("tab %s: %w", id, entity.ErrNotFound)
		}
		if slices.Contains(moving, id) {
			return placement{}, nil
		}
		switch pos {
		case dnd.PositionBefore:
			return placement{index: before(i), group: tabs[i].GroupID, ok: true}, nil
		case dnd.PositionAfter:
			return placement{index: through(i), group: tabs[i].GroupID, ok: true}, nil
		}

	case dnd.KindTabGroup:
		id := entity.TabGroupID(target.TargetID)
		first, last := -1, -1
		for i, t := range tabs {
			if t.GroupID != id {
				continue
			}
			if first < 0 {
				first = i
			}
			last = i
		}
		if first < 0 {
			return placement{}, fmt.Errorf("tab group %s: %w", id, entity.ErrNotFound)
		}
		switch pos {
		case dnd.PositionBefore:
			return placement{index: before(first), ok: true}, nil
		case dnd.PositionIntoFirst:
			return placement{index: before(first), group: id, ok: true}, nil
		case dnd.PositionInto:
			return placement{index: through(last), group: id, ok: true}, nil
		case dnd.PositionAfter:
			return placement{index: through(last), ok: true}, nil
		}

	case dnd.KindZoneEnd:
		return placement{index: before(len(tabs)), ok: true}, nil
	}
	return placement{}, fmt.Errorf("%w: %s on %s", ErrUnsupportedDrop, pos, target.Kind)
}

// stayingTabAt returns the tab found at index once the moving tabs are
// removed, or "" past the end.
func stayingTabAt(tabs []*entity.Tab, moving []entity.TabID, index int) entity.TabID {
	i := 0
	for _, t := range tabs {
		if slices.Contains(moving, t.ID) {
			continue
		}
		if i == index {
			return t.ID
		}
		i++
	}
	return ""
}

// groupIndexBefore returns the MoveGroup index that puts group right
// before anchor, or at the end when anchor is "".
func groupIndexBefore(tabs []*entity.Tab, group entity.TabGroupID, anchor entity.TabID) int {
	order := make([]entity.TabID, len(tabs))
	var members []entity.TabID
	for i, t := range tabs {
		order[i] = t.ID
		if t.GroupID == group {
			members = append(members, t.ID)
		}
	}
	if anchor == "" {
		return countWithout(order, members)
	}
	return entity.BlockIndex(order, anchor, false, members)
}

func sessionTabIDs(s *dnd.Session) []entity.TabID {
	var ids []entity.TabID
	for _, it := range s.ItemsWith(dnd.FormatTab) {
		ids = append(ids, it.Tab.TabID)
	}
	return ids
}
