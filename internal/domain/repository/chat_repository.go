package repository

import (
	"context"

	"immomarket/internal/domain/entity"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	// FindByPropertyAndParticipant returns chats about a property that
	// include the given user among their participants.
	FindByPropertyAndParticipant(ctx context.Context, propertyID, userID string) ([]*entity.Chat, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Chat, error)
	Update(ctx context.Context, chat *entity.Chat) error
	UpdateUnreadCount(ctx context.Context, chatID, userID string, count int) error
	SetParticipantName(ctx context.Context, chatID, userID, name string) error
	Delete(ctx context.Context, id string) error

	CreateMessage(ctx context.Context, message *entity.Message) error
	ListMessages(ctx context.Context, chatID string) ([]*entity.Message, error)
}
