package usecase

import (
	"context"
	"strings"
	"time"

	"immomarket/internal/domain/entity"
	"immomarket/internal/domain/repository"
	"immomarket/pkg/errors"
	"immomarket/pkg/logger"
)

type PropertyUseCase struct {
	propertyRepo repository.PropertyRepository
	userRepo     repository.UserRepository
	storage      ImageStorage
}

func NewPropertyUseCase(
	propertyRepo repository.PropertyRepository,
	userRepo repository.UserRepository,
	storage ImageStorage,
) *PropertyUseCase {
	return &PropertyUseCase{
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		storage:      storage,
	}
}

type PropertyInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	OldPrice    float64  `json:"old_price"`
	Surface     float64  `json:"surface" validate:"gte=0"`
	Rooms       int      `json:"rooms" validate:"gte=0"`
	Type        string   `json:"type" validate:"required"`
	Purpose     string   `json:"purpose" validate:"required,oneof=rent sale"`
	Location    string   `json:"location" validate:"required"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Images      []string `json:"images"`
	IsPromo     bool     `json:"is_promo"`
}

func validatePropertyInput(input PropertyInput) error {
	if !entity.ValidPropertyType(input.Type) {
		return errors.BadRequest("Invalid property type", nil)
	}
	if input.IsPromo && input.OldPrice <= 0 {
		return errors.BadRequest("Promotional listings require the previous price", nil)
	}
	return nil
}

// Create stores a new listing. The status is always pending regardless of
// the caller; moderation flips it later.
func (uc *PropertyUseCase) Create(ctx context.Context, ownerID string, input PropertyInput) (*entity.Property, error) {
	if err := validatePropertyInput(input); err != nil {
		return nil, err
	}

	// The status is never caller-controlled. The repository enforces the
	// same rule on write as a backstop.
	property := &entity.Property{
		Status:      entity.PropertyStatusPending,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		OldPrice:    input.OldPrice,
		Surface:     input.Surface,
		Rooms:       input.Rooms,
		Type:        input.Type,
		Purpose:     input.Purpose,
		Location:    input.Location,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Images:      input.Images,
		IsPromo:     input.IsPromo,
		OwnerID:     ownerID,
	}

	// Contact details are denormalized onto the listing so the detail screen
	// needs no second read.
	if owner, err := uc.userRepo.GetByID(ctx, ownerID); err == nil {
		property.OwnerName = owner.DisplayName
		property.OwnerPhone = owner.Phone
	}

	if err := uc.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}

	return property, nil
}

func (uc *PropertyUseCase) Update(ctx context.Context, id, userID string, input PropertyInput) (*entity.Property, error) {
	property, err := uc.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !property.OwnedBy(userID) {
		return nil, errors.Forbidden("You can only edit your own listings", nil)
	}

	if err := validatePropertyInput(input); err != nil {
		return nil, err
	}

	property.Title = input.Title
	property.Description = input.Description
	property.Price = input.Price
	property.OldPrice = input.OldPrice
	property.Surface = input.Surface
	property.Rooms = input.Rooms
	property.Type = input.Type
	property.Purpose = input.Purpose
	property.Location = input.Location
	property.Latitude = input.Latitude
	property.Longitude = input.Longitude
	property.Images = input.Images
	property.IsPromo = input.IsPromo
	property.UpdatedAt = time.Now()

	if err := uc.propertyRepo.Update(ctx, property); err != nil {
		return nil, err
	}

	return property, nil
}

func (uc *PropertyUseCase) Delete(ctx context.Context, id, userID string, isAdmin bool) error {
	property, err := uc.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !property.OwnedBy(userID) && !isAdmin {
		return errors.Forbidden("You can only delete your own listings", nil)
	}

	if err := uc.propertyRepo.Delete(ctx, id); err != nil {
		return err
	}

	// Image cleanup is best effort; orphaned objects are acceptable.
	if uc.storage != nil && len(property.Images) > 0 {
		uc.storage.DeleteImages(ctx, property.Images)
	}

	return nil
}

// Get returns a listing. Non-approved listings are only visible to their
// owner and to admins; everyone else gets NotFound rather than a hint that
// the listing exists.
func (uc *PropertyUseCase) Get(ctx context.Context, id, viewerID string, isAdmin bool) (*entity.Property, error) {
	property, err := uc.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if property.Status != entity.PropertyStatusApproved && !property.OwnedBy(viewerID) && !isAdmin {
		return nil, errors.NotFound("Property", nil)
	}

	return property, nil
}

// ListApproved is the public feed. Read failures degrade to an empty list so
// the home screen always renders.
func (uc *PropertyUseCase) ListApproved(ctx context.Context) []*entity.Property {
	properties, err := uc.propertyRepo.ListByStatus(ctx, entity.PropertyStatusApproved)
	if err != nil {
		logger.Error("Failed to list approved properties: %v", err)
		return []*entity.Property{}
	}
	return properties
}

// Search filters the approved set by case-insensitive substring over title,
// description and location. Matching happens here because Firestore has no
// substring queries.
func (uc *PropertyUseCase) Search(ctx context.Context, query string) []*entity.Property {
	approved := uc.ListApproved(ctx)

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return approved
	}

	results := []*entity.Property{}
	for _, p := range approved {
		if strings.Contains(strings.ToLower(p.Title), query) ||
			strings.Contains(strings.ToLower(p.Description), query) ||
			strings.Contains(strings.ToLower(p.Location), query) {
			results = append(results, p)
		}
	}
	return results
}

// ListMine returns the caller's listings in every status.
func (uc *PropertyUseCase) ListMine(ctx context.Context, userID string) []*entity.Property {
	properties, err := uc.propertyRepo.ListByOwner(ctx, userID)
	if err != nil {
		logger.Error("Failed to list properties for owner %s: %v", userID, err)
		return []*entity.Property{}
	}
	return properties
}

// ListForAdmin returns listings filtered by status, or all of them when the
// status is empty. Admin reads propagate failures.
func (uc *PropertyUseCase) ListForAdmin(ctx context.Context, status string) ([]*entity.Property, error) {
	if status != "" &&
		status != entity.PropertyStatusPending &&
		status != entity.PropertyStatusApproved &&
		status != entity.PropertyStatusRejected {
		return nil, errors.BadRequest("Invalid status filter", nil)
	}
	return uc.propertyRepo.ListByStatus(ctx, status)
}

// Approve marks a listing approved. The transition is idempotent and does not
// check the prior status.
func (uc *PropertyUseCase) Approve(ctx context.Context, id string) error {
	return uc.propertyRepo.UpdateStatus(ctx, id, entity.PropertyStatusApproved)
}

func (uc *PropertyUseCase) Reject(ctx context.Context, id string) error {
	return uc.propertyRepo.UpdateStatus(ctx, id, entity.PropertyStatusRejected)
}
