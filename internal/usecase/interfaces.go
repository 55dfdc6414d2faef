package usecase

import (
	"context"
	"io"
	"time"
)

// FirebaseAuthClient abstracts the identity provider so usecases and tests
// never touch the Admin SDK directly.
type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	SignInWithEmailPassword(email, password string) (string, error)
	SendPasswordResetEmail(email string) error
	UpdateUserPassword(ctx context.Context, uid, newPassword string) error
	DeleteUser(ctx context.Context, uid string) error
}

// ImageStorage abstracts the object store holding listing images.
type ImageStorage interface {
	UploadImage(ctx context.Context, file io.Reader, contentType string) (string, error)
	DeleteImage(ctx context.Context, imageURL string)
	DeleteImages(ctx context.Context, imageURLs []string)
}

// RateLimiter gates per-user actions.
type RateLimiter interface {
	Allow(userID, action string) (bool, time.Duration)
}
