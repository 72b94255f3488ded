package entity

import "slices"

// TabID uniquely identifies a browser tab.
type TabID string

// TabGroupID uniquely identifies a tab group. The zero value means ungrouped.
type TabGroupID string

// Tab represents a browser tab as listed in the sidebar.
type Tab struct {
	ID          TabID
	GroupID     TabGroupID // empty = not grouped
	SpaceID     SpaceID
	URL         string
	Title       string
	Highlighted bool // part of the browser's multi-selection
}

// InGroup returns true if the tab belongs to a tab group.
func (t *Tab) InGroup() bool {
	return t.GroupID != ""
}

// TabGroup is a named, collapsible run of adjacent tabs.
type TabGroup struct {
	ID        TabGroupID
	Title     string
	Color     string
	Collapsed bool
}

// TabList manages the ordered tabs and their groups.
// Tabs of one group are always kept adjacent.
type TabList struct {
	Tabs   []*Tab
	Groups []*TabGroup
}

// NewTabList creates an empty tab list.
func NewTabList() *TabList {
	return &TabList{
		Tabs:   make([]*Tab, 0),
		Groups: make([]*TabGroup, 0),
	}
}

func tabID(t *Tab) TabID { return t.ID }

// Add appends a tab to the end of the list.
func (tl *TabList) Add(tab *Tab) {
	tl.Tabs = append(tl.Tabs, tab)
}

// Insert places a tab at index.
func (tl *TabList) Insert(tab *Tab, index int) {
	tl.Tabs = insertAt(tl.Tabs, tab, index)
}

// AddGroup registers a tab group.
func (tl *TabList) AddGroup(g *TabGroup) {
	tl.Groups = append(tl.Groups, g)
}

// Find returns a tab by ID.
func (tl *TabList) Find(id TabID) *Tab {
	for _, tab := range tl.Tabs {
		if tab.ID == id {
			return tab
		}
	}
	return nil
}

// IndexOf returns the position of a tab, or -1.
func (tl *TabList) IndexOf(id TabID) int {
	return slices.IndexFunc(tl.Tabs, func(t *Tab) bool { return t.ID == id })
}

// Group returns a tab group by ID.
func (tl *TabList) Group(id TabGroupID) *TabGroup {
	for _, g := range tl.Groups {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// GroupTabs returns the tabs of a group in list order.
func (tl *TabList) GroupTabs(id TabGroupID) []*Tab {
	var out []*Tab
	for _, t := range tl.Tabs {
		if t.GroupID == id {
			out = append(out, t)
		}
	}
	return out
}

// Highlighted returns the multi-selected tabs in list order.
func (tl *TabList) Highlighted() []*Tab {
	var out []*Tab
	for _, t := range tl.Tabs {
		if t.Highlighted {
			out = append(out, t)
		}
	}
	return out
}

// Count returns the number of tabs.
func (tl *TabList) Count() int {
	return len(tl.Tabs)
}

// Move moves the given tabs as one block so the first lands at index.
// Returns false if any tab is unknown.
func (tl *TabList) Move(ids []TabID, index int) bool {
	for _, id := range ids {
		if tl.Find(id) == nil {
			return false
		}
	}
	tl.Tabs = moveBlock(tl.Tabs, tabID, ids, index)
	return true
}

// SetGroup assigns the tabs to a group. An empty group ungroups them.
// Groups left without tabs are dropped.
func (tl *TabList) SetGroup(ids []TabID, group TabGroupID) {
	for _, id := range ids {
		if t := tl.Find(id); t != nil {
			t.GroupID = group
		}
	}
	tl.pruneGroups()
}

// MoveGroup moves all tabs of a group as one block to index.
func (tl *TabList) MoveGroup(id TabGroupID, index int) bool {
	tabs := tl.GroupTabs(id)
	if len(tabs) == 0 {
		return false
	}
	ids := make([]TabID, len(tabs))
	for i, t := range tabs {
		ids[i] = t.ID
	}
	tl.Tabs = moveBlock(tl.Tabs, tabID, ids, index)
	return true
}

// Remove deletes a tab by ID.
func (tl *TabList) Remove(id TabID) bool {
	i := tl.IndexOf(id)
	if i < 0 {
		return false
	}
	tl.Tabs = slices.Delete(tl.Tabs, i, i+1)
	tl.pruneGroups()
	return true
}

func (tl *TabList) pruneGroups() {
	tl.Groups = slices.DeleteFunc(tl.Groups, func(g *TabGroup) bool {
		return len(tl.GroupTabs(g.ID)) == 0
	})
}
