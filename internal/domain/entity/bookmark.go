package entity

import (
	"fmt"
	"slices"
)

// BookmarkID uniquely identifies a bookmark or bookmark folder.
type BookmarkID string

// RootBookmarkID is the implicit folder every top-level node lives in.
const RootBookmarkID BookmarkID = "root"

// Bookmark is a node of the bookmark tree: either a link or a folder.
type Bookmark struct {
	ID       BookmarkID
	ParentID BookmarkID
	Title    string
	URL      string // empty for folders
	Folder   bool
	Expanded bool // folder is open in the sidebar
}

// IsFolder returns true if this node can hold children.
func (b *Bookmark) IsFolder() bool {
	return b.Folder
}

// BookmarkTree is the in-memory hierarchy of bookmarks.
type BookmarkTree struct {
	nodes    map[BookmarkID]*Bookmark
	children map[BookmarkID][]BookmarkID
}

// NewBookmarkTree creates a tree holding only the root folder.
func NewBookmarkTree() *BookmarkTree {
	root := &Bookmark{ID: RootBookmarkID, Folder: true, Expanded: true}
	return &BookmarkTree{
		nodes:    map[BookmarkID]*Bookmark{RootBookmarkID: root},
		children: map[BookmarkID][]BookmarkID{RootBookmarkID: {}},
	}
}

// Get returns a node by ID.
func (t *BookmarkTree) Get(id BookmarkID) *Bookmark {
	return t.nodes[id]
}

// Children returns the direct children of a folder in order.
func (t *BookmarkTree) Children(id BookmarkID) []*Bookmark {
	ids := t.children[id]
	out := make([]*Bookmark, 0, len(ids))
	for _, cid := range ids {
		out = append(out, t.nodes[cid])
	}
	return out
}

// IndexOf returns the position of a node within its parent, or -1.
func (t *BookmarkTree) IndexOf(id BookmarkID) int {
	b := t.nodes[id]
	if b == nil {
		return -1
	}
	return slices.Index(t.children[b.ParentID], id)
}

// Insert adds a new node under parent at index.
func (t *BookmarkTree) Insert(b *Bookmark, parent BookmarkID, index int) error {
	p := t.nodes[parent]
	if p == nil {
		return fmt.Errorf("parent %s: %w", parent, ErrNotFound)
	}
	if !p.IsFolder() {
		return fmt.Errorf("parent %s: %w", parent, ErrNotFolder)
	}
	b.ParentID = parent
	t.nodes[b.ID] = b
	if b.IsFolder() {
		t.children[b.ID] = []BookmarkID{}
	}
	t.children[parent] = insertAt(t.children[parent], b.ID, index)
	return nil
}

// IsAncestor reports whether ancestor is id itself or one of its parents.
func (t *BookmarkTree) IsAncestor(ancestor, id BookmarkID) bool {
	for cur := id; cur != ""; {
		if cur == ancestor {
			return true
		}
		n := t.nodes[cur]
		if n == nil || cur == RootBookmarkID {
			return false
		}
		cur = n.ParentID
	}
	return false
}

// Move reparents a node to parent at index. The index is interpreted
// after the node has been removed from its current position.
func (t *BookmarkTree) Move(id, parent BookmarkID, index int) error {
	b := t.nodes[id]
	if b == nil || id == RootBookmarkID {
		return fmt.Errorf("bookmark %s: %w", id, ErrNotFound)
	}
	p := t.nodes[parent]
	if p == nil {
		return fmt.Errorf("parent %s: %w", parent, ErrNotFound)
	}
	if !p.IsFolder() {
		return fmt.Errorf("parent %s: %w", parent, ErrNotFolder)
	}
	if b.IsFolder() && t.IsAncestor(id, parent) {
		return fmt.Errorf("move %s into %s: %w", id, parent, ErrCycle)
	}

	old := t.children[b.ParentID]
	if i := slices.Index(old, id); i >= 0 {
		t.children[b.ParentID] = slices.Delete(old, i, i+1)
	}
	b.ParentID = parent
	t.children[parent] = insertAt(t.children[parent], id, index)
	return nil
}

// Walk visits the subtree rooted at id depth-first, in child order.
// Returning false from fn stops descent below that node.
func (t *BookmarkTree) Walk(id BookmarkID, fn func(*Bookmark) bool) {
	n := t.nodes[id]
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, cid := range t.children[id] {
		t.Walk(cid, fn)
	}
}
