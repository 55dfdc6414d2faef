package usecase

import (
	"context"

	"immomarket/internal/domain/entity"
	"immomarket/internal/domain/repository"
	"immomarket/pkg/logger"
)

type FavoriteUseCase struct {
	favoriteRepo repository.FavoriteRepository
	propertyRepo repository.PropertyRepository
}

func NewFavoriteUseCase(favoriteRepo repository.FavoriteRepository, propertyRepo repository.PropertyRepository) *FavoriteUseCase {
	return &FavoriteUseCase{
		favoriteRepo: favoriteRepo,
		propertyRepo: propertyRepo,
	}
}

func (uc *FavoriteUseCase) Add(ctx context.Context, userID, propertyID string) error {
	return uc.favoriteRepo.Add(ctx, userID, propertyID)
}

func (uc *FavoriteUseCase) Remove(ctx context.Context, userID, propertyID string) error {
	return uc.favoriteRepo.Remove(ctx, userID, propertyID)
}

func (uc *FavoriteUseCase) IsFavorite(ctx context.Context, userID, propertyID string) (bool, error) {
	return uc.favoriteRepo.Exists(ctx, userID, propertyID)
}

// Toggle flips the favorite state and returns the new state. Applying it
// twice always lands back where it started.
func (uc *FavoriteUseCase) Toggle(ctx context.Context, userID, propertyID string) (bool, error) {
	exists, err := uc.favoriteRepo.Exists(ctx, userID, propertyID)
	if err != nil {
		return false, err
	}

	if exists {
		if err := uc.favoriteRepo.Remove(ctx, userID, propertyID); err != nil {
			return true, err
		}
		return false, nil
	}

	if err := uc.favoriteRepo.Add(ctx, userID, propertyID); err != nil {
		return false, err
	}
	return true, nil
}

// List resolves the user's favorites to full listings. Favorites pointing at
// deleted properties are skipped, and read failures degrade to an empty list.
func (uc *FavoriteUseCase) List(ctx context.Context, userID string) []*entity.Property {
	favorites, err := uc.favoriteRepo.List(ctx, userID)
	if err != nil {
		logger.Error("Failed to list favorites for %s: %v", userID, err)
		return []*entity.Property{}
	}

	properties := []*entity.Property{}
	for _, favorite := range favorites {
		property, err := uc.propertyRepo.GetByID(ctx, favorite.PropertyID)
		if err != nil {
			// Stale favorite, its listing is gone.
			continue
		}
		properties = append(properties, property)
	}
	return properties
}
