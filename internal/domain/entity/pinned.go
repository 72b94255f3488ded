package entity

import "slices"

// PinnedSiteID uniquely identifies a pinned shortcut.
type PinnedSiteID string

// PinnedSite is a shortcut icon in the pinned bar.
type PinnedSite struct {
	ID    PinnedSiteID
	URL   string
	Title string
}

// PinList is the ordered pinned bar.
type PinList struct {
	Sites []*PinnedSite
}

// NewPinList creates an empty pin list.
func NewPinList() *PinList {
	return &PinList{Sites: make([]*PinnedSite, 0)}
}

func pinID(p *PinnedSite) PinnedSiteID { return p.ID }

// Find returns a pinned site by ID.
func (pl *PinList) Find(id PinnedSiteID) *PinnedSite {
	for _, p := range pl.Sites {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// FindByURL returns the pinned site for a URL.
func (pl *PinList) FindByURL(url string) *PinnedSite {
	for _, p := range pl.Sites {
		if p.URL == url {
			return p
		}
	}
	return nil
}

// Insert places a site at index.
func (pl *PinList) Insert(site *PinnedSite, index int) {
	pl.Sites = insertAt(pl.Sites, site, index)
}

// Move moves the sites as one block to index.
func (pl *PinList) Move(ids []PinnedSiteID, index int) bool {
	for _, id := range ids {
		if pl.Find(id) == nil {
			return false
		}
	}
	pl.Sites = moveBlock(pl.Sites, pinID, ids, index)
	return true
}

// IndexOf returns the position of a site, or -1.
func (pl *PinList) IndexOf(id PinnedSiteID) int {
	return slices.IndexFunc(pl.Sites, func(p *PinnedSite) bool { return p.ID == id })
}
