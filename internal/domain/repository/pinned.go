package repository

import (
	"context"

	"github.com/bnema/sidebar/internal/domain/entity"
)

// PinnedSiteRepository is the pinned bar collaborator.
type PinnedSiteRepository interface {
	List(ctx context.Context) ([]*entity.PinnedSite, error)
	FindByURL(ctx context.Context, url string) (*entity.PinnedSite, error)
	Move(ctx context.Context, ids []entity.PinnedSiteID, index int) error
	Create(ctx context.Context, url, title string, index int) (*entity.PinnedSite, error)
}
