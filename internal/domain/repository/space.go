package repository

import (
	"context"

	"github.com/bnema/sidebar/internal/domain/entity"
)

// SpaceRepository is the workspace bar collaborator.
type SpaceRepository interface {
	List(ctx context.Context) ([]*entity.Space, error)
	Move(ctx context.Context, ids []entity.SpaceID, index int) error
}
