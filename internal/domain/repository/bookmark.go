package repository

import (
	"context"

	"github.com/bnema/sidebar/internal/domain/entity"
)

// BookmarkRepository is the bookmark tree collaborator.
type BookmarkRepository interface {
	// Get retrieves a node by ID.
	Get(ctx context.Context, id entity.BookmarkID) (*entity.Bookmark, error)

	// Children lists the direct children of a folder in order.
	Children(ctx context.Context, id entity.BookmarkID) ([]*entity.Bookmark, error)

	// IsAncestor reports whether ancestor is id or one of its parents.
	IsAncestor(ctx context.Context, ancestor, id entity.BookmarkID) (bool, error)

	// SetExpanded opens or closes a folder in the sidebar.
	SetExpanded(ctx context.Context, id entity.BookmarkID, expanded bool) error

	// Batch starts a scoped group of mutations. Listeners are refreshed
	// once, when the batch ends.
	Batch(ctx context.Context) BookmarkBatch
}

// BookmarkBatch is an explicit handle for a multi-step tree update.
type BookmarkBatch interface {
	// Move reparents a node. Index is counted after removing the node.
	Move(ctx context.Context, id, parent entity.BookmarkID, index int) error

	// Create inserts a new link under parent at index.
	Create(ctx context.Context, parent entity.BookmarkID, index int, title, url string) (*entity.Bookmark, error)

	// End closes the batch and refreshes listeners once.
	End(ctx context.Context) error
}
