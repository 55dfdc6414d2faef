package repository

import (
	"context"

	"immomarket/internal/domain/entity"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *entity.Property) error
	GetByID(ctx context.Context, id string) (*entity.Property, error)
	// ListByStatus returns properties with the given status ordered by
	// creation time descending. An empty status lists everything.
	ListByStatus(ctx context.Context, status string) ([]*entity.Property, error)
	// ListByOwner unions the current ownerId field with the legacy userId
	// field, deduplicated by document id.
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Property, error)
	Update(ctx context.Context, property *entity.Property) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}
