package memory

import "github.com/bnema/sidebar/internal/domain/entity"

// Workspace groups the stores behind one browser window.
type Workspace struct {
	Bookmarks *BookmarkStore
	Tabs      *TabStore
	Pinned    *PinnedStore
	Spaces    *SpaceStore
}

// NewWorkspace creates empty stores.
func NewWorkspace() *Workspace {
	return &Workspace{
		Bookmarks: NewBookmarkStore(nil),
		Tabs:      NewTabStore(nil),
		Pinned:    NewPinnedStore(nil),
		Spaces:    NewSpaceStore(nil),
	}
}

// OnChange registers fn on every store.
func (w *Workspace) OnChange(fn func()) {
	w.Bookmarks.OnChange(fn)
	w.Tabs.OnChange(fn)
	w.Pinned.OnChange(fn)
	w.Spaces.OnChange(fn)
}

// DemoWorkspace returns a small populated window used by the interactive
// host when no scenario is given.
func DemoWorkspace() *Workspace {
	spaces := entity.NewSpaceList()
	spaces.Add(&entity.Space{ID: "work", Name: "Work", Icon: "W"})
	spaces.Add(&entity.Space{ID: "home", Name: "Home", Icon: "H"})
	spaces.Add(&entity.Space{ID: "read", Name: "Reading", Icon: "R"})

	pins := entity.NewPinList()
	pins.Insert(&entity.PinnedSite{ID: "p1", URL: "https://mail.example.com", Title: "Mail"}, 0)
	pins.Insert(&entity.PinnedSite{ID: "p2", URL: "https://cal.example.com", Title: "Calendar"}, 1)

	tabs := entity.NewTabList()
	tabs.AddGroup(&entity.TabGroup{ID: "g1", Title: "Research", Color: "blue"})
	tabs.Add(&entity.Tab{ID: "t1", SpaceID: "work", URL: "https://go.dev", Title: "Go"})
	tabs.Add(&entity.Tab{ID: "t2", GroupID: "g1", SpaceID: "work", URL: "https://pkg.go.dev", Title: "Packages"})
	tabs.Add(&entity.Tab{ID: "t3", GroupID: "g1", SpaceID: "work", URL: "https://go.dev/blog", Title: "Blog"})
	tabs.Add(&entity.Tab{ID: "t4", SpaceID: "work", URL: "https://example.com", Title: "Example"})

	tree := entity.NewBookmarkTree()
	_ = tree.Insert(&entity.Bookmark{ID: "f1", Title: "Docs", Folder: true}, entity.RootBookmarkID, 0)
	_ = tree.Insert(&entity.Bookmark{ID: "b1", Title: "Effective Go", URL: "https://go.dev/doc/effective_go"}, "f1", 0)
	_ = tree.Insert(&entity.Bookmark{ID: "b2", Title: "Language Reference", URL: "https://go.dev/ref/spec"}, "f1", 1)
	_ = tree.Insert(&entity.Bookmark{ID: "f2", Title: "Later", Folder: true}, entity.RootBookmarkID, 1)
	_ = tree.Insert(&entity.Bookmark{ID: "b3", Title: "News", URL: "https://news.example.com"}, entity.RootBookmarkID, 2)

	return &Workspace{
		Bookmarks: NewBookmarkStore(tree),
		Tabs:      NewTabStore(tabs),
		Pinned:    NewPinnedStore(pins),
		Spaces:    NewSpaceStore(spaces),
	}
}
