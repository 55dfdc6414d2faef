package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immomarket/internal/domain/entity"
)

func newFavoriteUseCase() (*FavoriteUseCase, *fakeFavoriteRepo, *fakePropertyRepo) {
	favoriteRepo := newFakeFavoriteRepo()
	propertyRepo := newFakePropertyRepo()
	return NewFavoriteUseCase(favoriteRepo, propertyRepo), favoriteRepo, propertyRepo
}

func TestToggleIsAnInvolution(t *testing.T) {
	uc, _, _ := newFavoriteUseCase()
	ctx := context.Background()

	before, err := uc.IsFavorite(ctx, "u1", "p1")
	require.NoError(t, err)
	require.False(t, before)

	on, err := uc.Toggle(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.True(t, on)

	off, err := uc.Toggle(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.False(t, off)

	after, err := uc.IsFavorite(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestListResolvesFavoritesToListings(t *testing.T) {
	uc, _, propertyRepo := newFavoriteUseCase()
	ctx := context.Background()

	property := &entity.Property{OwnerID: "owner", Title: "Studio meuble"}
	require.NoError(t, propertyRepo.Create(ctx, property))

	require.NoError(t, uc.Add(ctx, "u1", property.ID))

	favorites := uc.List(ctx, "u1")
	require.Len(t, favorites, 1)
	assert.Equal(t, "Studio meuble", favorites[0].Title)
}

func TestListSkipsDeletedListings(t *testing.T) {
	uc, _, propertyRepo := newFavoriteUseCase()
	ctx := context.Background()

	kept := &entity.Property{OwnerID: "owner", Title: "Gardee"}
	gone := &entity.Property{OwnerID: "owner", Title: "Supprimee"}
	require.NoError(t, propertyRepo.Create(ctx, kept))
	require.NoError(t, propertyRepo.Create(ctx, gone))

	require.NoError(t, uc.Add(ctx, "u1", kept.ID))
	require.NoError(t, uc.Add(ctx, "u1", gone.ID))
	require.NoError(t, propertyRepo.Delete(ctx, gone.ID))

	favorites := uc.List(ctx, "u1")
	require.Len(t, favorites, 1)
	assert.Equal(t, kept.ID, favorites[0].ID)
}

func TestListDegradesToEmptyOnError(t *testing.T) {
	uc, favoriteRepo, _ := newFavoriteUseCase()
	favoriteRepo.failReads = true

	favorites := uc.List(context.Background(), "u1")
	assert.NotNil(t, favorites)
	assert.Empty(t, favorites)
}
