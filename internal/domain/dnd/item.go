package dnd

import (
	"slices"

	"github.com/bnema/sidebar/internal/domain/entity"
)

// Item is one logical thing being dragged. Formats is ordered from most
// to least specific; each listed format has its payload set.
type Item struct {
	Formats []Format

	URL        *URLData
	Tab        *TabData
	TabGroup   *TabGroupData
	Bookmark   *BookmarkData
	PinnedSite *PinnedSiteData
	Space      *SpaceData
}

// Has reports whether the item can be read as f.
func (it Item) Has(f Format) bool {
	return slices.Contains(it.Formats, f)
}

// Key returns a stable identity for the item, used to de-duplicate
// provider results against the dragged element.
func (it Item) Key() string {
	switch {
	case it.Bookmark != nil:
		return "bookmark:" + string(it.Bookmark.BookmarkID)
	case it.TabGroup != nil:
		return "tab-group:" + string(it.TabGroup.GroupID)
	case it.Tab != nil:
		return "tab:" + string(it.Tab.TabID)
	case it.PinnedSite != nil:
		return "pinned-site:" + string(it.PinnedSite.PinID)
	case it.Space != nil:
		return "space:" + string(it.Space.SpaceID)
	case it.URL != nil:
		return "url:" + it.URL.URL
	}
	return ""
}

// IDFor returns the identity of the item when read as f, or "" when the
// item does not carry f.
func (it Item) IDFor(f Format) string {
	switch {
	case f == FormatTab && it.Tab != nil:
		return string(it.Tab.TabID)
	case f == FormatTabGroup && it.TabGroup != nil:
		return string(it.TabGroup.GroupID)
	case f == FormatBookmark && it.Bookmark != nil:
		return string(it.Bookmark.BookmarkID)
	case f == FormatPinnedSite && it.PinnedSite != nil:
		return string(it.PinnedSite.PinID)
	case f == FormatSpace && it.Space != nil:
		return string(it.Space.SpaceID)
	case f == FormatURL && it.URL != nil:
		return it.URL.URL
	}
	return ""
}

func (it *Item) add(f Format) {
	if !it.Has(f) {
		it.Formats = append(it.Formats, f)
	}
}

// NewURLItem builds an item that is only a URL.
func NewURLItem(url, title string) Item {
	return Item{
		Formats: []Format{FormatURL},
		URL:     &URLData{URL: url, Title: title},
	}
}

// NewTabItem builds a tab item, readable as tab and url.
func NewTabItem(t *entity.Tab) Item {
	return Item{
		Formats: []Format{FormatTab, FormatURL},
		Tab: &TabData{
			TabID:   t.ID,
			GroupID: t.GroupID,
			URL:     t.URL,
			Title:   t.Title,
		},
		URL: &URLData{URL: t.URL, Title: t.Title},
	}
}

// NewTabGroupItem builds a tab group item.
func NewTabGroupItem(g *entity.TabGroup) Item {
	return Item{
		Formats:  []Format{FormatTabGroup},
		TabGroup: &TabGroupData{GroupID: g.ID, Title: g.Title},
	}
}

// NewBookmarkItem builds a bookmark item. Links are also readable as url;
// folders are only readable as bookmark.
func NewBookmarkItem(b *entity.Bookmark) Item {
	it := Item{
		Formats: []Format{FormatBookmark},
		Bookmark: &BookmarkData{
			BookmarkID: b.ID,
			ParentID:   b.ParentID,
			Folder:     b.IsFolder(),
			URL:        b.URL,
			Title:      b.Title,
		},
	}
	if !b.IsFolder() && b.URL != "" {
		it.add(FormatURL)
		it.URL = &URLData{URL: b.URL, Title: b.Title}
	}
	return it
}

// WithTab marks the item as also backed by an open tab, as happens for a
// bookmark that is currently loaded. The tab view is inserted ahead of url.
func (it Item) WithTab(t *entity.Tab) Item {
	out := it
	out.Formats = slices.Clone(it.Formats)
	out.Tab = &TabData{TabID: t.ID, GroupID: t.GroupID, URL: t.URL, Title: t.Title}
	if out.Has(FormatTab) {
		return out
	}
	if i := slices.Index(out.Formats, FormatURL); i >= 0 {
		out.Formats = slices.Insert(out.Formats, i, FormatTab)
	} else {
		out.Formats = append(out.Formats, FormatTab)
	}
	return out
}

// NewPinnedSiteItem builds a pinned site item, readable as pinned-site and url.
func NewPinnedSiteItem(p *entity.PinnedSite) Item {
	return Item{
		Formats:    []Format{FormatPinnedSite, FormatURL},
		PinnedSite: &PinnedSiteData{PinID: p.ID, URL: p.URL, Title: p.Title},
		URL:        &URLData{URL: p.URL, Title: p.Title},
	}
}

// NewSpaceItem builds a space item.
func NewSpaceItem(s *entity.Space) Item {
	return Item{
		Formats: []Format{FormatSpace},
		Space:   &SpaceData{SpaceID: s.ID, Name: s.Name},
	}
}
