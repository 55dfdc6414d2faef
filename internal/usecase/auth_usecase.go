package usecase

import (
	"context"
	"time"

	"immomarket/internal/domain/entity"
	"immomarket/internal/domain/repository"
	"immomarket/pkg/errors"
	"immomarket/pkg/logger"
)

type AuthUseCase struct {
	authClient FirebaseAuthClient
	userRepo   repository.UserRepository
}

func NewAuthUseCase(authClient FirebaseAuthClient, userRepo repository.UserRepository) *AuthUseCase {
	return &AuthUseCase{
		authClient: authClient,
		userRepo:   userRepo,
	}
}

type RegisterInput struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	DisplayName string `json:"display_name" validate:"required"`
	Phone       string `json:"phone"`
}

type AuthResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token,omitempty"`
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	uid, err := uc.authClient.CreateUser(ctx, input.Email, input.Password, input.DisplayName)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:          uid,
		Email:       input.Email,
		DisplayName: input.DisplayName,
		Phone:       input.Phone,
		Role:        entity.RoleUser,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		// Roll the auth account back so the email is not burned.
		if delErr := uc.authClient.DeleteUser(ctx, uid); delErr != nil {
			logger.Error("Failed to roll back auth user %s: %v", uid, delErr)
		}
		return nil, err
	}

	token, err := uc.authClient.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		// The account exists; the client can still log in separately.
		logger.Warn("Post-registration sign-in failed for %s: %v", uid, err)
		return &AuthResult{User: user}, nil
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	token, err := uc.authClient.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, err
	}

	uid, err := uc.authClient.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}
		// Accounts created before profile mirroring get one on first login.
		now := time.Now()
		user = &entity.User{
			ID:        uid,
			Email:     email,
			Role:      entity.RoleUser,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) ResetPassword(email string) error {
	return uc.authClient.SendPasswordResetEmail(email)
}

func (uc *AuthUseCase) ChangePassword(ctx context.Context, uid, newPassword string) error {
	if len(newPassword) < 6 {
		return errors.BadRequest("Password must be at least 6 characters", nil)
	}
	return uc.authClient.UpdateUserPassword(ctx, uid, newPassword)
}

func (uc *AuthUseCase) VerifyToken(ctx context.Context, token string) (string, error) {
	uid, err := uc.authClient.VerifyToken(ctx, token)
	if err != nil {
		return "", errors.Unauthorized("Invalid or expired token", err)
	}
	return uid, nil
}
