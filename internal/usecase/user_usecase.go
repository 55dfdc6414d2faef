package usecase

import (
	"context"
	"time"

	"immomarket/internal/domain/entity"
	"immomarket/internal/domain/repository"
	"immomarket/pkg/logger"
)

type UserUseCase struct {
	userRepo   repository.UserRepository
	authClient FirebaseAuthClient
}

func NewUserUseCase(userRepo repository.UserRepository, authClient FirebaseAuthClient) *UserUseCase {
	return &UserUseCase{
		userRepo:   userRepo,
		authClient: authClient,
	}
}

func (uc *UserUseCase) GetProfile(ctx context.Context, uid string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, uid)
}

type UpdateProfileInput struct {
	DisplayName string `json:"display_name" validate:"required"`
	Phone       string `json:"phone"`
	Location    string `json:"location"`
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, uid string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	user.DisplayName = input.DisplayName
	user.Phone = input.Phone
	user.Location = input.Location
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ListUsers returns every profile. Read failures degrade to an empty list so
// the admin screen renders instead of erroring.
func (uc *UserUseCase) ListUsers(ctx context.Context) []*entity.User {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		logger.Error("Failed to list users: %v", err)
		return []*entity.User{}
	}
	return users
}

// DeleteUser removes both the auth account and the profile document.
func (uc *UserUseCase) DeleteUser(ctx context.Context, uid string) error {
	if err := uc.authClient.DeleteUser(ctx, uid); err != nil {
		return err
	}

	if err := uc.userRepo.Delete(ctx, uid); err != nil {
		// The auth account is already gone; surface the partial failure.
		logger.Error("Auth account %s deleted but profile removal failed: %v", uid, err)
		return err
	}

	return nil
}
