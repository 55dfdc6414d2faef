package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"immomarket/internal/domain/entity"
	"immomarket/internal/domain/repository"
	"immomarket/pkg/errors"
	"immomarket/pkg/logger"
)

// Notifier pushes a frame to a connected user, if any.
type Notifier interface {
	SendToUser(userID string, message []byte)
}

type ChatUseCase struct {
	chatRepo     repository.ChatRepository
	propertyRepo repository.PropertyRepository
	userRepo     repository.UserRepository
	rateLimiter  RateLimiter
	notifier     Notifier
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	propertyRepo repository.PropertyRepository,
	userRepo repository.UserRepository,
	rateLimiter RateLimiter,
	notifier Notifier,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:     chatRepo,
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		rateLimiter:  rateLimiter,
		notifier:     notifier,
	}
}

// GetOrCreate returns the caller's conversation with a listing's owner,
// creating it when none exists. The existence check and the create are two
// separate operations, so two concurrent first messages for the same pair can
// produce duplicate chats. The client tolerates this and the chat list shows
// both; deduplication would need a transaction keyed on the pair.
func (uc *ChatUseCase) GetOrCreate(ctx context.Context, userID, propertyID string) (*entity.Chat, error) {
	property, err := uc.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	ownerID := property.OwnerID
	if ownerID == "" {
		ownerID = property.LegacyOwnerID
	}
	if ownerID == "" {
		return nil, errors.BadRequest("Listing has no contactable owner", nil)
	}
	if ownerID == userID {
		return nil, errors.BadRequest("You cannot start a chat about your own listing", nil)
	}

	existing, err := uc.chatRepo.FindByPropertyAndParticipant(ctx, propertyID, userID)
	if err != nil {
		return nil, err
	}
	for _, chat := range existing {
		if chat.HasParticipant(ownerID) {
			return chat, nil
		}
	}

	if uc.rateLimiter != nil {
		if allowed, wait := uc.rateLimiter.Allow(userID, "create_chat"); !allowed {
			logger.Warn("Chat creation rate limited for %s, retry in %s", userID, wait)
			return nil, errors.TooManyRequests("Too many new conversations. Please try again later")
		}
	}

	chat := &entity.Chat{
		Participants:     []string{userID, ownerID},
		ParticipantNames: map[string]string{},
		PropertyID:       propertyID,
		PropertyTitle:    property.Title,
		UnreadCount:      map[string]int{userID: 0, ownerID: 0},
	}

	for _, uid := range chat.Participants {
		if user, err := uc.userRepo.GetByID(ctx, uid); err == nil {
			name := user.DisplayName
			if name == "" {
				name = user.Email
			}
			chat.ParticipantNames[uid] = name
		}
	}

	if err := uc.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}

	return chat, nil
}

// SendMessage appends a message and refreshes the chat summary. The summary
// update reads the chat, bumps the recipient's unread counter in memory and
// writes the document back; concurrent sends can lose a count. The counter is
// advisory badge state, so this is tolerated.
func (uc *ChatUseCase) SendMessage(ctx context.Context, userID, chatID, text string) (*entity.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.BadRequest("Message text is required", nil)
	}

	if uc.rateLimiter != nil {
		if allowed, wait := uc.rateLimiter.Allow(userID, "send_message"); !allowed {
			logger.Warn("Message sending rate limited for %s, retry in %s", userID, wait)
			return nil, errors.TooManyRequests("You are sending messages too quickly")
		}
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(userID) {
		return nil, errors.NotFound("Chat", nil)
	}

	senderName := chat.ParticipantNames[userID]
	if senderName == "" {
		if user, err := uc.userRepo.GetByID(ctx, userID); err == nil {
			senderName = user.DisplayName
			if senderName == "" {
				senderName = user.Email
			}
		}
	}

	message := &entity.Message{
		ChatID:     chatID,
		SenderID:   userID,
		SenderName: senderName,
		Text:       text,
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	recipient := chat.OtherParticipant(userID)
	if chat.UnreadCount == nil {
		chat.UnreadCount = map[string]int{}
	}
	chat.UnreadCount[recipient]++
	chat.LastMessage = text
	chat.LastMessageTime = time.Now()

	if err := uc.chatRepo.Update(ctx, chat); err != nil {
		logger.Error("Message %s stored but chat summary update failed: %v", message.ID, err)
	}

	uc.notifyRecipient(recipient, chat, message)

	return message, nil
}

func (uc *ChatUseCase) notifyRecipient(recipient string, chat *entity.Chat, message *entity.Message) {
	if uc.notifier == nil || recipient == "" {
		return
	}

	frame, err := json.Marshal(map[string]interface{}{
		"type":   "new_message",
		"chatId": chat.ID,
		"data":   message,
	})
	if err != nil {
		return
	}
	uc.notifier.SendToUser(recipient, frame)
}

// MarkAsRead zeroes the caller's unread counter on a chat.
func (uc *ChatUseCase) MarkAsRead(ctx context.Context, userID, chatID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	if !chat.HasParticipant(userID) {
		return errors.NotFound("Chat", nil)
	}

	return uc.chatRepo.UpdateUnreadCount(ctx, chatID, userID, 0)
}

// ListChats returns the caller's conversations, most recent first. Read
// failures degrade to an empty list.
func (uc *ChatUseCase) ListChats(ctx context.Context, userID string) []*entity.Chat {
	chats, err := uc.chatRepo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to list chats for %s: %v", userID, err)
		return []*entity.Chat{}
	}
	return chats
}

func (uc *ChatUseCase) GetChat(ctx context.Context, userID, chatID string) (*entity.Chat, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(userID) {
		return nil, errors.NotFound("Chat", nil)
	}
	return chat, nil
}

// ListMessages returns a conversation's history in chronological order.
func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, chatID string) ([]*entity.Message, error) {
	if _, err := uc.GetChat(ctx, userID, chatID); err != nil {
		return nil, err
	}

	messages, err := uc.chatRepo.ListMessages(ctx, chatID)
	if err != nil {
		logger.Error("Failed to list messages for chat %s: %v", chatID, err)
		return []*entity.Message{}, nil
	}
	return messages, nil
}
