package repository

import (
	"context"

	"immomarket/internal/domain/entity"
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID, propertyID string) error
	Remove(ctx context.Context, userID, propertyID string) error
	Exists(ctx context.Context, userID, propertyID string) (bool, error)
	List(ctx context.Context, userID string) ([]*entity.Favorite, error)
}
