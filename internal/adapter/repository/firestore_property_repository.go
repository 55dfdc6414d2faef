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

type firestorePropertyRepository struct {
	client *firestore.Client
}

func NewFirestorePropertyRepository(client *firestore.Client) repository.PropertyRepository {
	return &firestorePropertyRepository{
		client: client,
	}
}

func (r *firestorePropertyRepository) Create(ctx context.Context, property *entity.Property) error {
	if property.ID == "" {
		doc := r.client.Collection("properties").NewDoc()
		property.ID = doc.ID
	}

	// A listing always enters the catalog as pending, whatever the caller
	// put in the struct. Approval is an admin-only transition.
	property.Status = entity.PropertyStatusPending

	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	_, err := r.client.Collection("properties").Doc(property.ID).Set(ctx, property)
	if err != nil {
		return errors.Internal("Failed to create property", err)
	}

	return nil
}

func (r *firestorePropertyRepository) GetByID(ctx context.Context, id string) (*entity.Property, error) {
	doc, err := r.client.Collection("properties").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Property", err)
		}
		return nil, errors.Internal("Failed to get property", err)
	}

	var property entity.Property
	if err := doc.DataTo(&property); err != nil {
		return nil, errors.Internal("Failed to parse property data", err)
	}
	property.ID = doc.Ref.ID

	return &property, nil
}

func (r *firestorePropertyRepository) ListByStatus(ctx context.Context, propertyStatus string) ([]*entity.Property, error) {
	query := r.client.Collection("properties").Query
	if propertyStatus != "" {
		query = query.Where("status", "==", propertyStatus)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	iter := query.Documents(ctx)
	var properties []*entity.Property

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate properties", err)
		}

		var property entity.Property
		if err := doc.DataTo(&property); err != nil {
			return nil, errors.Internal("Failed to parse property data", err)
		}
		property.ID = doc.Ref.ID
		properties = append(properties, &property)
	}

	return properties, nil
}

// ListByOwner issues two queries, one per ownership field, and unions the
// results by document id. Listings written by the old mobile client carry
// only the legacy userId field.
func (r *firestorePropertyRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Property, error) {
	seen := make(map[string]bool)
	var properties []*entity.Property

	for _, field := range []string{"ownerId", "userId"} {
		query := r.client.Collection("properties").
			Where(field, "==", ownerID).
			OrderBy("createdAt", firestore.Desc)

		docs, err := query.Documents(ctx).GetAll()
		if err != nil {
			return nil, errors.Internal("Failed to list owner properties", err)
		}

		for _, doc := range docs {
			if seen[doc.Ref.ID] {
				continue
			}
			var property entity.Property
			if err := doc.DataTo(&property); err != nil {
				return nil, errors.Internal("Failed to parse property data", err)
			}
			property.ID = doc.Ref.ID
			seen[doc.Ref.ID] = true
			properties = append(properties, &property)
		}
	}

	return properties, nil
}

func (r *firestorePropertyRepository) Update(ctx context.Context, property *entity.Property) error {
	property.UpdatedAt = time.Now()

	_, err := r.client.Collection("properties").Doc(property.ID).Set(ctx, property)
	if err != nil {
		return errors.Internal("Failed to update property", err)
	}

	return nil
}

func (r *firestorePropertyRepository) UpdateStatus(ctx context.Context, id, propertyStatus string) error {
	_, err := r.client.Collection("properties").Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: propertyStatus},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Property", err)
		}
		return errors.Internal("Failed to update property status", err)
	}

	return nil
}

func (r *firestorePropertyRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("properties").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete property", err)
	}

	return nil
}
