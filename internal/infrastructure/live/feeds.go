package live

import (
	"context"
	"encoding/json"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"immomarket/internal/domain/entity"
	"immomarket/internal/domain/repository"
	"immomarket/pkg/logger"
)

// Service bridges Firestore snapshot listeners to connected clients. Each
// Watch method blocks until its context is cancelled and pushes a full
// result set whenever the underlying query changes.
type Service struct {
	client *firestore.Client
	users  repository.UserRepository
	chats  repository.ChatRepository
}

func NewService(client *firestore.Client, users repository.UserRepository, chats repository.ChatRepository) *Service {
	return &Service{
		client: client,
		users:  users,
		chats:  chats,
	}
}

// WatchChats streams the user's conversation list ordered by recency. Chats
// missing the other participant's display name are enriched on the fly and
// the name is written back so later readers get it for free.
func (s *Service) WatchChats(ctx context.Context, userID string, send func([]byte)) {
	query := s.client.Collection("chats").
		Where("participants", "array-contains", userID).
		OrderBy("lastMessageTime", firestore.Desc)

	iter := query.Snapshots(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err != nil {
			if status.Code(err) != codes.Canceled {
				logger.Error("Chat list watcher for %s stopped: %v", userID, err)
			}
			return
		}

		docs, err := snap.Documents.GetAll()
		if err != nil {
			logger.Error("Failed to read chat snapshot for %s: %v", userID, err)
			continue
		}

		var chats []*entity.Chat
		for _, doc := range docs {
			var chat entity.Chat
			if err := doc.DataTo(&chat); err != nil {
				continue
			}
			chat.ID = doc.Ref.ID
			s.ensureParticipantName(ctx, &chat, userID)
			chats = append(chats, &chat)
		}

		s.push(send, map[string]interface{}{
			"type": "chats",
			"data": chats,
		})
	}
}

func (s *Service) ensureParticipantName(ctx context.Context, chat *entity.Chat, userID string) {
	other := chat.OtherParticipant(userID)
	if other == "" {
		return
	}
	// Legacy chat documents carry the client's placeholder instead of an
	// empty string; both mean the name was never resolved.
	if cached := chat.ParticipantNames[other]; cached != "" && cached != entity.PlaceholderParticipantName {
		return
	}

	user, err := s.users.GetByID(ctx, other)
	if err != nil {
		return
	}

	name := user.DisplayName
	if name == "" {
		name = user.Email
	}

	if chat.ParticipantNames == nil {
		chat.ParticipantNames = make(map[string]string)
	}
	chat.ParticipantNames[other] = name

	if err := s.chats.SetParticipantName(ctx, chat.ID, other, name); err != nil {
		logger.Warn("Failed to backfill participant name on chat %s: %v", chat.ID, err)
	}
}

// WatchMessages streams a conversation's messages in chronological order.
// Non-participants get a single error frame and no data.
func (s *Service) WatchMessages(ctx context.Context, chatID, userID string, send func([]byte)) {
	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil || !chat.HasParticipant(userID) {
		s.push(send, map[string]interface{}{
			"type":  "error",
			"error": "Chat not found",
		})
		return
	}

	query := s.client.Collection("chats").Doc(chatID).
		Collection("messages").
		OrderBy("createdAt", firestore.Asc)

	iter := query.Snapshots(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err != nil {
			if status.Code(err) != codes.Canceled {
				logger.Error("Message watcher for chat %s stopped: %v", chatID, err)
			}
			return
		}

		docs, err := snap.Documents.GetAll()
		if err != nil {
			logger.Error("Failed to read message snapshot for chat %s: %v", chatID, err)
			continue
		}

		var messages []*entity.Message
		for _, doc := range docs {
			var message entity.Message
			if err := doc.DataTo(&message); err != nil {
				continue
			}
			message.ID = doc.Ref.ID
			messages = append(messages, &message)
		}

		s.push(send, map[string]interface{}{
			"type":   "messages",
			"chatId": chatID,
			"data":   messages,
		})
	}
}

// WatchProperties streams the public feed of approved listings, newest first.
func (s *Service) WatchProperties(ctx context.Context, send func([]byte)) {
	query := s.client.Collection("properties").
		Where("status", "==", entity.PropertyStatusApproved).
		OrderBy("createdAt", firestore.Desc)

	iter := query.Snapshots(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err != nil {
			if status.Code(err) != codes.Canceled {
				logger.Error("Property feed watcher stopped: %v", err)
			}
			return
		}

		docs, err := snap.Documents.GetAll()
		if err != nil {
			logger.Error("Failed to read property snapshot: %v", err)
			continue
		}

		var properties []*entity.Property
		for _, doc := range docs {
			var property entity.Property
			if err := doc.DataTo(&property); err != nil {
				continue
			}
			property.ID = doc.Ref.ID
			properties = append(properties, &property)
		}

		s.push(send, map[string]interface{}{
			"type": "properties",
			"data": properties,
		})
	}
}

func (s *Service) push(send func([]byte), payload map[string]interface{}) {
	frame, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to encode live frame: %v", err)
		return
	}
	send(frame)
}
