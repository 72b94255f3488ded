// Package dnd holds the pure drag-and-drop model: payload formats, drag
// sessions, drop targets, format negotiation and drop-position geometry.
package dnd

import "github.com/bnema/sidebar/internal/domain/entity"

// Format is a capability tag: one view a dragged item can be read through.
type Format string

const (
	FormatURL        Format = "url"
	FormatTab        Format = "tab"
	FormatTabGroup   Format = "tab-group"
	FormatBookmark   Format = "bookmark"
	FormatPinnedSite Format = "pinned-site"
	FormatSpace      Format = "space"
)

// URLData is the payload of the url format.
type URLData struct {
	URL   string
	Title string
}

// TabData is the payload of the tab format.
type TabData struct {
	TabID   entity.TabID
	GroupID entity.TabGroupID // empty when ungrouped
	URL     string
	Title   string
}

// TabGroupData is the payload of the tab-group format.
type TabGroupData struct {
	GroupID entity.TabGroupID
	Title   string
}

// BookmarkData is the payload of the bookmark format.
type BookmarkData struct {
	BookmarkID entity.BookmarkID
	ParentID   entity.BookmarkID
	Folder     bool
	URL        string
	Title      string
}

// PinnedSiteData is the payload of the pinned-site format.
type PinnedSiteData struct {
	PinID entity.PinnedSiteID
	URL   string
	Title string
}

// SpaceData is the payload of the space format.
type SpaceData struct {
	SpaceID entity.SpaceID
	Name    string
}
