package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"immomarket/internal/domain/entity"
	"immomarket/internal/domain/repository"
	"immomarket/pkg/errors"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	if chat.ID == "" {
		chat.ID = uuid.New().String()
	}

	chat.CreatedAt = time.Now()
	if chat.LastMessageTime.IsZero() {
		chat.LastMessageTime = chat.CreatedAt
	}

	_, err := r.client.Collection("chats").Doc(chat.ID).Set(ctx, chat)
	if err != nil {
		return errors.Internal("Failed to create chat", err)
	}

	return nil
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	doc, err := r.client.Collection("chats").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat", err)
		}
		return nil, errors.Internal("Failed to get chat", err)
	}

	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, errors.Internal("Failed to parse chat data", err)
	}
	chat.ID = doc.Ref.ID

	return &chat, nil
}

func (r *firestoreChatRepository) FindByPropertyAndParticipant(ctx context.Context, propertyID, userID string) ([]*entity.Chat, error) {
	query := r.client.Collection("chats").
		Where("propertyId", "==", propertyID).
		Where("participants", "array-contains", userID)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query chats", err)
	}

	var chats []*entity.Chat
	for _, doc := range docs {
		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			continue // skip malformed documents
		}
		chat.ID = doc.Ref.ID
		chats = append(chats, &chat)
	}

	return chats, nil
}

func (r *firestoreChatRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Chat, error) {
	query := r.client.Collection("chats").
		Where("participants", "array-contains", userID).
		OrderBy("lastMessageTime", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch chats", err)
	}

	var chats []*entity.Chat
	for _, doc := range docs {
		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			continue
		}
		chat.ID = doc.Ref.ID
		chats = append(chats, &chat)
	}

	return chats, nil
}

func (r *firestoreChatRepository) Update(ctx context.Context, chat *entity.Chat) error {
	_, err := r.client.Collection("chats").Doc(chat.ID).Set(ctx, chat)
	if err != nil {
		return errors.Internal("Failed to update chat", err)
	}

	return nil
}

func (r *firestoreChatRepository) UpdateUnreadCount(ctx context.Context, chatID, userID string, count int) error {
	_, err := r.client.Collection("chats").Doc(chatID).Update(ctx, []firestore.Update{
		{Path: "unreadCount." + userID, Value: count},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Chat", err)
		}
		return errors.Internal("Failed to update unread count", err)
	}

	return nil
}

func (r *firestoreChatRepository) SetParticipantName(ctx context.Context, chatID, userID, name string) error {
	_, err := r.client.Collection("chats").Doc(chatID).Update(ctx, []firestore.Update{
		{Path: "participantNames." + userID, Value: name},
	})
	if err != nil {
		return errors.Internal("Failed to update participant name", err)
	}

	return nil
}

func (r *firestoreChatRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("chats").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete chat", err)
	}

	return nil
}

func (r *firestoreChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	message.CreatedAt = time.Now()

	_, err := r.client.Collection("chats").Doc(message.ChatID).
		Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreChatRepository) ListMessages(ctx context.Context, chatID string) ([]*entity.Message, error) {
	query := r.client.Collection("chats").Doc(chatID).
		Collection("messages").OrderBy("createdAt", firestore.Asc)

	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, errors.Internal("Failed to parse message data", err)
		}
		message.ID = doc.Ref.ID
		messages = append(messages, &message)
	}

	return messages, nil
}
