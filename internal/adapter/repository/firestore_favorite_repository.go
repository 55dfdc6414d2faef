package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"immomarket/internal/domain/entity"
	"immomarket/internal/domain/repository"
	"immomarket/pkg/errors"
)

type firestoreFavoriteRepository struct {
	client *firestore.Client
}

func NewFirestoreFavoriteRepository(client *firestore.Client) repository.FavoriteRepository {
	return &firestoreFavoriteRepository{
		client: client,
	}
}

func (r *firestoreFavoriteRepository) favorites(userID string) *firestore.CollectionRef {
	return r.client.Collection("users").Doc(userID).Collection("favorites")
}

func (r *firestoreFavoriteRepository) Add(ctx context.Context, userID, propertyID string) error {
	favorite := entity.Favorite{
		PropertyID: propertyID,
		AddedAt:    time.Now(),
	}

	_, err := r.favorites(userID).Doc(propertyID).Set(ctx, favorite)
	if err != nil {
		return errors.Internal("Failed to add favorite", err)
	}

	return nil
}

func (r *firestoreFavoriteRepository) Remove(ctx context.Context, userID, propertyID string) error {
	_, err := r.favorites(userID).Doc(propertyID).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to remove favorite", err)
	}

	return nil
}

func (r *firestoreFavoriteRepository) Exists(ctx context.Context, userID, propertyID string) (bool, error) {
	doc, err := r.favorites(userID).Doc(propertyID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, errors.Internal("Failed to check favorite", err)
	}

	return doc.Exists(), nil
}

func (r *firestoreFavoriteRepository) List(ctx context.Context, userID string) ([]*entity.Favorite, error) {
	iter := r.favorites(userID).Documents(ctx)
	var favorites []*entity.Favorite

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate favorites", err)
		}

		var favorite entity.Favorite
		if err := doc.DataTo(&favorite); err != nil {
			continue // skip malformed documents
		}
		// Older favorite documents may miss the propertyId field; the
		// document id is the property id either way.
		if favorite.PropertyID == "" {
			favorite.PropertyID = doc.Ref.ID
		}
		favorites = append(favorites, &favorite)
	}

	return favorites, nil
}
