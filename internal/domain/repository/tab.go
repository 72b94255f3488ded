package repository

import (
	"context"

	"github.com/bnema/sidebar/internal/domain/entity"
)

// TabRepository is the tab and tab-group collaborator.
type TabRepository interface {
	// List returns every tab in strip order.
	List(ctx context.Context) ([]*entity.Tab, error)

	// Get retrieves a tab by ID.
	Get(ctx context.Context, id entity.TabID) (*entity.Tab, error)

	// Group retrieves a tab group by ID.
	Group(ctx context.Context, id entity.TabGroupID) (*entity.TabGroup, error)

	// GroupTabs lists a group's tabs in strip order.
	GroupTabs(ctx context.Context, id entity.TabGroupID) ([]*entity.Tab, error)

	// Highlighted lists the multi-selected tabs in strip order.
	Highlighted(ctx context.Context) ([]*entity.Tab, error)

	// Move moves tabs as one block so the first lands at index.
	Move(ctx context.Context, ids []entity.TabID, index int) error

	// SetGroup puts tabs in a group; an empty group ungroups them.
	SetGroup(ctx context.Context, ids []entity.TabID, group entity.TabGroupID) error

	// MoveGroup moves a whole group to index.
	MoveGroup(ctx context.Context, id entity.TabGroupID, index int) error

	// SetGroupCollapsed collapses or expands a group.
	SetGroupCollapsed(ctx context.Context, id entity.TabGroupID, collapsed bool) error

	// Create opens a new tab at index, optionally inside a group.
	Create(ctx context.Context, url string, index int, group entity.TabGroupID) (*entity.Tab, error)

	// MoveToSpace reassigns tabs to another space.
	MoveToSpace(ctx context.Context, ids []entity.TabID, space entity.SpaceID) error
}
