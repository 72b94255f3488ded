// Package host renders the sidebar's four zones into a cell grid and
// wires them to the drag coordinator. The terminal UI and gesture replays
// both drive the sidebar through it.
package host

import (
	"context"

	"github.com/bnema/sidebar/internal/domain/dnd"
	"github.com/bnema/sidebar/internal/domain/entity"
)

// Row heights in cells. Leaves get two rows so the midpoint split is
// reachable, containers three so before/into/after each own a row.
const (
	leafRows      = 2
	containerRows = 3
	headerRows    = 1
	chipWidth     = 10
)

// Element is one rendered row or chip of the sidebar.
type Element struct {
	ID        string
	Zone      dnd.Zone
	Kind      dnd.TargetKind
	Label     string
	Depth     int
	Rect      entity.Rect
	Draggable bool
	Item      dnd.Item
	Target    dnd.DropTarget
	Expanded  bool
	Selected  bool
	Active    bool
}

// Header is a zone title row.
type Header struct {
	Zone  dnd.Zone
	Title string
	Rect  entity.Rect
}

// Frame is one render of the sidebar. Targets in a frame are built fresh
// and never reused by the next one.
type Frame struct {
	Width    float64
	Height   float64
	Headers  []Header
	Elements []Element
	Zones    map[dnd.Zone]entity.Rect

	byID map[string]int
}

// Element returns the element with id.
func (f *Frame) Element(id string) (Element, bool) {
	i, ok := f.byID[id]
	if !ok {
		return Element{}, false
	}
	return f.Elements[i], true
}

// ElementAt returns the element under a point.
func (f *Frame) ElementAt(x, y float64) (Element, bool) {
	for _, el := range f.Elements {
		if el.Rect.Contains(x, y) {
			return el, true
		}
	}
	return Element{}, false
}

type frameBuilder struct {
	frame *Frame
	y     float64
}

func (b *frameBuilder) header(zone dnd.Zone, title string) {
	b.frame.Headers = append(b.frame.Headers, Header{
		Zone:  zone,
		Title: title,
		Rect:  entity.Rect{X: 0, Y: b.y, W: b.frame.Width, H: headerRows},
	})
	b.y += headerRows
}

// row appends a full-width element of h rows.
func (b *frameBuilder) row(el Element, h float64) {
	indent := float64(el.Depth * 2)
	el.Rect = entity.Rect{X: indent, Y: b.y, W: b.frame.Width - indent, H: h}
	b.add(el)
	b.y += h
}

func (b *frameBuilder) add(el Element) {
	// First element wins when two zones share an id.
	if _, dup := b.frame.byID[el.ID]; !dup {
		b.frame.byID[el.ID] = len(b.frame.Elements)
	}
	b.frame.Elements = append(b.frame.Elements, el)
	r := b.frame.Zones[el.Zone]
	if r.Empty() {
		b.frame.Zones[el.Zone] = el.Rect
		return
	}
	b.frame.Zones[el.Zone] = union(r, el.Rect)
}

// chips lays elements out left to right, wrapping at the frame width,
// followed by the zone's end target on the remaining space.
func (b *frameBuilder) chips(els []Element, end Element) {
	x := 0.0
	for _, el := range els {
		if x+chipWidth > b.frame.Width && x > 0 {
			x = 0
			b.y += leafRows
		}
		el.Rect = entity.Rect{X: x, Y: b.y, W: chipWidth, H: leafRows}
		b.add(el)
		x += chipWidth
	}
	if b.frame.Width-x < chipWidth/2 {
		x = 0
		b.y += leafRows
	}
	end.Rect = entity.Rect{X: x, Y: b.y, W: b.frame.Width - x, H: leafRows}
	b.add(end)
	b.y += leafRows
}

func union(a, b entity.Rect) entity.Rect {
	x0, y0 := min(a.X, b.X), min(a.Y, b.Y)
	x1, y1 := max(a.X+a.W, b.X+b.W), max(a.Y+a.H, b.Y+b.H)
	return entity.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Layout renders the workspace into a frame.
func (s *Sidebar) Layout(ctx context.Context) *Frame {
	b := &frameBuilder{frame: &Frame{
		Width: s.width,
		Zones: make(map[dnd.Zone]entity.Rect),
		byID:  make(map[string]int),
	}}

	s.layoutPinned(b)
	s.layoutSpaces(b)
	s.layoutTabs(ctx, b)
	s.layoutBookmarks(ctx, b)

	b.frame.Height = b.y
	return b.frame
}

func (s *Sidebar) layoutPinned(b *frameBuilder) {
	b.header(dnd.ZonePinned, "Pinned")
	var els []Element
	s.ws.Pinned.View(func(l *entity.PinList) {
		for _, p := range l.Sites {
			els = append(els, Element{
				ID:        string(p.ID),
				Zone:      dnd.ZonePinned,
				Kind:      dnd.KindPinnedSite,
				Label:     p.Title,
				Draggable: true,
				Item:      dnd.NewPinnedSiteItem(p),
				Target:    s.pinned.Target(p),
				Selected:  s.selection(dnd.ZonePinned).Contains(string(p.ID)),
			})
		}
	})
	end := Element{ID: "pinned:end", Zone: dnd.ZonePinned, Kind: dnd.KindZoneEnd, Target: s.pinned.EndTarget()}
	if s.horizontalPins {
		b.chips(els, end)
		return
	}
	for _, el := range els {
		b.row(el, leafRows)
	}
	b.row(end, leafRows)
}

func (s *Sidebar) layoutSpaces(b *frameBuilder) {
	b.header(dnd.ZoneSpaces, "Spaces")
	var els []Element
	s.ws.Spaces.View(func(l *entity.SpaceList) {
		for _, sp := range l.Spaces {
			els = append(els, Element{
				ID:        string(sp.ID),
				Zone:      dnd.ZoneSpaces,
				Kind:      dnd.KindSpace,
				Label:     sp.Icon + " " + sp.Name,
				Draggable: true,
				Item:      dnd.NewSpaceItem(sp),
				Target:    s.spaces.Target(sp),
				Active:    sp.ID == l.ActiveID,
			})
		}
	})
	b.chips(els, Element{ID: "spaces:end", Zone: dnd.ZoneSpaces, Kind: dnd.KindZoneEnd, Target: s.spaces.EndTarget()})
}

func (s *Sidebar) activeSpace() entity.SpaceID {
	var active entity.SpaceID
	s.ws.Spaces.View(func(l *entity.SpaceList) { active = l.ActiveID })
	return active
}

func (s *Sidebar) layoutTabs(ctx context.Context, b *frameBuilder) {
	b.header(dnd.ZoneTabs, "Tabs")
	active := s.activeSpace()

	var tabs []entity.Tab
	groups := make(map[entity.TabGroupID]entity.TabGroup)
	s.ws.Tabs.View(func(l *entity.TabList) {
		for _, t := range l.Tabs {
			if t.SpaceID == "" || t.SpaceID == active {
				tabs = append(tabs, *t)
			}
		}
		for _, g := range l.Groups {
			groups[g.ID] = *g
		}
	})

	emitted := make(map[entity.TabGroupID]bool)
	for i := range tabs {
		t := &tabs[i]
		depth := 0
		if t.InGroup() {
			g, ok := groups[t.GroupID]
			if ok && !emitted[g.ID] {
				emitted[g.ID] = true
				b.row(Element{
					ID:        string(g.ID),
					Zone:      dnd.ZoneTabs,
					Kind:      dnd.KindTabGroup,
					Label:     g.Title,
					Draggable: true,
					Item:      dnd.NewTabGroupItem(&g),
					Target:    s.tabs.GroupTarget(ctx, &g),
					Expanded:  !g.Collapsed,
				}, containerRows)
			}
			if ok && g.Collapsed {
				continue
			}
			depth = 1
		}
		b.row(Element{
			ID:        string(t.ID),
			Zone:      dnd.ZoneTabs,
			Kind:      dnd.KindTab,
			Label:     t.Title,
			Depth:     depth,
			Draggable: true,
			Item:      dnd.NewTabItem(t),
			Target:    s.tabs.TabTarget(t),
			Selected:  t.Highlighted,
		}, leafRows)
	}
	b.row(Element{ID: "tabs:end", Zone: dnd.ZoneTabs, Kind: dnd.KindZoneEnd, Target: s.tabs.EndTarget()}, leafRows)
}

func (s *Sidebar) layoutBookmarks(ctx context.Context, b *frameBuilder) {
	b.header(dnd.ZoneBookmarks, "Bookmarks")

	openTabs := make(map[string]entity.Tab)
	s.ws.Tabs.View(func(l *entity.TabList) {
		for _, t := range l.Tabs {
			if _, seen := openTabs[t.URL]; !seen {
				openTabs[t.URL] = *t
			}
		}
	})

	type row struct {
		b     entity.Bookmark
		depth int
	}
	var rows []row
	s.ws.Bookmarks.View(func(tree *entity.BookmarkTree) {
		var visit func(id entity.BookmarkID, depth int)
		visit = func(id entity.BookmarkID, depth int) {
			for _, c := range tree.Children(id) {
				rows = append(rows, row{b: *c, depth: depth})
				if c.IsFolder() && c.Expanded {
					visit(c.ID, depth+1)
				}
			}
		}
		visit(entity.RootBookmarkID, 0)
	})

	sel := s.selection(dnd.ZoneBookmarks)
	for i := range rows {
		bm := &rows[i].b
		item := dnd.NewBookmarkItem(bm)
		if t, open := openTabs[bm.URL]; open && bm.URL != "" {
			item = item.WithTab(&t)
		}
		h := float64(leafRows)
		kind := dnd.KindBookmark
		if bm.IsFolder() {
			h = containerRows
			kind = dnd.KindFolder
		}
		b.row(Element{
			ID:        string(bm.ID),
			Zone:      dnd.ZoneBookmarks,
			Kind:      kind,
			Label:     bm.Title,
			Depth:     rows[i].depth,
			Draggable: true,
			Item:      item,
			Target:    s.bookmarks.Target(ctx, bm),
			Expanded:  bm.Expanded,
			Selected:  sel.Contains(string(bm.ID)),
		}, h)
	}
	b.row(Element{ID: "bookmarks:end", Zone: dnd.ZoneBookmarks, Kind: dnd.KindZoneEnd, Target: s.bookmarks.EndTarget()}, leafRows)
}
