package scenario

import (
	"errors"
	"fmt"

	"github.com/bnema/sidebar/internal/domain/entity"
	"github.com/bnema/sidebar/internal/infrastructure/memory"
)

// State is the workspace a script starts from.
type State struct {
	Spaces    []SpaceSpec    `yaml:"spaces,omitempty"`
	Pinned    []PinSpec      `yaml:"pinned,omitempty"`
	Groups    []GroupSpec    `yaml:"groups,omitempty"`
	Tabs      []TabSpec      `yaml:"tabs,omitempty"`
	Bookmarks []BookmarkSpec `yaml:"bookmarks,omitempty"`
}

type SpaceSpec struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Icon string `yaml:"icon,omitempty"`
}

type PinSpec struct {
	ID    string `yaml:"id"`
	URL   string `yaml:"url"`
	Title string `yaml:"title,omitempty"`
}

type GroupSpec struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Color     string `yaml:"color,omitempty"`
	Collapsed bool   `yaml:"collapsed,omitempty"`
}

type TabSpec struct {
	ID          string `yaml:"id"`
	URL         string `yaml:"url"`
	Title       string `yaml:"title,omitempty"`
	Group       string `yaml:"group,omitempty"`
	Space       string `yaml:"space,omitempty"`
	Highlighted bool   `yaml:"highlighted,omitempty"`
}

// BookmarkSpec is a bookmark or, when it has a folder flag or children,
// a folder.
type BookmarkSpec struct {
	ID       string         `yaml:"id"`
	Title    string         `yaml:"title"`
	URL      string         `yaml:"url,omitempty"`
	Folder   bool           `yaml:"folder,omitempty"`
	Expanded bool           `yaml:"expanded,omitempty"`
	Children []BookmarkSpec `yaml:"children,omitempty"`
}

func (b BookmarkSpec) isFolder() bool {
	return b.Folder || len(b.Children) > 0
}

func (s *State) validate() error {
	seen := make(map[string]bool)
	check := func(kind, id string) error {
		if id == "" {
			return fmt.Errorf("%s without id", kind)
		}
		if seen[id] {
			return fmt.Errorf("duplicate id %q", id)
		}
		seen[id] = true
		return nil
	}
	var errs []error
	for _, sp := range s.Spaces {
		errs = append(errs, check("space", sp.ID))
	}
	for _, p := range s.Pinned {
		errs = append(errs, check("pin", p.ID))
	}
	groups := make(map[string]bool)
	for _, g := range s.Groups {
		errs = append(errs, check("group", g.ID))
		groups[g.ID] = true
	}
	for _, t := range s.Tabs {
		errs = append(errs, check("tab", t.ID))
		if t.Group != "" && !groups[t.Group] {
			errs = append(errs, fmt.Errorf("tab %q references unknown group %q", t.ID, t.Group))
		}
	}
	var walk func([]BookmarkSpec)
	walk = func(bs []BookmarkSpec) {
		for _, b := range bs {
			errs = append(errs, check("bookmark", b.ID))
			walk(b.Children)
		}
	}
	walk(s.Bookmarks)
	return errors.Join(errs...)
}

// Workspace builds in-memory stores holding the state.
func (s *State) Workspace() (*memory.Workspace, error) {
	spaces := entity.NewSpaceList()
	for _, sp := range s.Spaces {
		spaces.Add(&entity.Space{ID: entity.SpaceID(sp.ID), Name: sp.Name, Icon: sp.Icon})
	}

	pins := entity.NewPinList()
	for i, p := range s.Pinned {
		pins.Insert(&entity.PinnedSite{ID: entity.PinnedSiteID(p.ID), URL: p.URL, Title: titleOr(p.Title, p.URL)}, i)
	}

	tabs := entity.NewTabList()
	for _, g := range s.Groups {
		tabs.AddGroup(&entity.TabGroup{
			ID:        entity.TabGroupID(g.ID),
			Title:     g.Title,
			Color:     g.Color,
			Collapsed: g.Collapsed,
		})
	}
	for _, t := range s.Tabs {
		space := entity.SpaceID(t.Space)
		if space == "" {
			space = spaces.ActiveID
		}
		tabs.Add(&entity.Tab{
			ID:          entity.TabID(t.ID),
			GroupID:     entity.TabGroupID(t.Group),
			SpaceID:     space,
			URL:         t.URL,
			Title:       titleOr(t.Title, t.URL),
			Highlighted: t.Highlighted,
		})
	}

	tree := entity.NewBookmarkTree()
	var insert func(parent entity.BookmarkID, specs []BookmarkSpec) error
	insert = func(parent entity.BookmarkID, specs []BookmarkSpec) error {
		for i, b := range specs {
			node := &entity.Bookmark{
				ID:       entity.BookmarkID(b.ID),
				Title:    titleOr(b.Title, b.URL),
				URL:      b.URL,
				Folder:   b.isFolder(),
				Expanded: b.Expanded,
			}
			if err := tree.Insert(node, parent, i); err != nil {
				return fmt.Errorf("failed to add bookmark %s: %w", b.ID, err)
			}
			if err := insert(node.ID, b.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := insert(entity.RootBookmarkID, s.Bookmarks); err != nil {
		return nil, err
	}

	return &memory.Workspace{
		Bookmarks: memory.NewBookmarkStore(tree),
		Tabs:      memory.NewTabStore(tabs),
		Pinned:    memory.NewPinnedStore(pins),
		Spaces:    memory.NewSpaceStore(spaces),
	}, nil
}

// Workspace returns the script's starting workspace, or the demo
// workspace when the script has no state.
func (s *Script) Workspace() (*memory.Workspace, error) {
	if s.State == nil {
		return memory.DemoWorkspace(), nil
	}
	return s.State.Workspace()
}

func titleOr(title, fallback string) string {
	if title != "" {
		return title
	}
	return fallback
}
