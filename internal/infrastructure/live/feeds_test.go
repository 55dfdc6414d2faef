package live

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"immomarket/internal/domain/entity"
	"immomarket/pkg/errors"
)

type stubUserRepo struct {
	users map[string]*entity.User
}

func (r *stubUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }

func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, errors.NotFound("User", nil)
}

func (r *stubUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }
func (r *stubUserRepo) List(ctx context.Context) ([]*entity.User, error)   { return nil, nil }
func (r *stubUserRepo) Delete(ctx context.Context, id string) error        { return nil }

type stubChatRepo struct {
	mu        sync.Mutex
	backfills map[string]string // userID -> name written back
}

func (r *stubChatRepo) Create(ctx context.Context, chat *entity.Chat) error { return nil }

func (r *stubChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	return nil, errors.NotFound("Chat", nil)
}

func (r *stubChatRepo) FindByPropertyAndParticipant(ctx context.Context, propertyID, userID string) ([]*entity.Chat, error) {
	return nil, nil
}

func (r *stubChatRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Chat, error) {
	return nil, nil
}

func (r *stubChatRepo) Update(ctx context.Context, chat *entity.Chat) error { return nil }

func (r *stubChatRepo) UpdateUnreadCount(ctx context.Context, chatID, userID string, count int) error {
	return nil
}

func (r *stubChatRepo) SetParticipantName(ctx context.Context, chatID, userID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backfills == nil {
		r.backfills = make(map[string]string)
	}
	r.backfills[userID] = name
	return nil
}

func (r *stubChatRepo) Delete(ctx context.Context, id string) error { return nil }

func (r *stubChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	return nil
}

func (r *stubChatRepo) ListMessages(ctx context.Context, chatID string) ([]*entity.Message, error) {
	return nil, nil
}

func newEnrichmentService(users map[string]*entity.User) (*Service, *stubChatRepo) {
	chats := &stubChatRepo{}
	return NewService(nil, &stubUserRepo{users: users}, chats), chats
}

func TestEnrichmentFillsMissingName(t *testing.T) {
	svc, chats := newEnrichmentService(map[string]*entity.User{
		"seller": {ID: "seller", DisplayName: "Amina"},
	})

	chat := &entity.Chat{
		ID:           "chat-1",
		Participants: []string{"buyer", "seller"},
	}

	svc.ensureParticipantName(context.Background(), chat, "buyer")

	assert.Equal(t, "Amina", chat.ParticipantNames["seller"])
	assert.Equal(t, "Amina", chats.backfills["seller"])
}

func TestEnrichmentReplacesPlaceholderName(t *testing.T) {
	svc, chats := newEnrichmentService(map[string]*entity.User{
		"seller": {ID: "seller", DisplayName: "Amina"},
	})

	chat := &entity.Chat{
		ID:           "chat-1",
		Participants: []string{"buyer", "seller"},
		ParticipantNames: map[string]string{
			"seller": entity.PlaceholderParticipantName,
		},
	}

	svc.ensureParticipantName(context.Background(), chat, "buyer")

	assert.Equal(t, "Amina", chat.ParticipantNames["seller"])
	assert.Equal(t, "Amina", chats.backfills["seller"])
}

func TestEnrichmentKeepsResolvedName(t *testing.T) {
	svc, chats := newEnrichmentService(map[string]*entity.User{
		"seller": {ID: "seller", DisplayName: "Renamed"},
	})

	chat := &entity.Chat{
		ID:               "chat-1",
		Participants:     []string{"buyer", "seller"},
		ParticipantNames: map[string]string{"seller": "Amina"},
	}

	svc.ensureParticipantName(context.Background(), chat, "buyer")

	assert.Equal(t, "Amina", chat.ParticipantNames["seller"])
	assert.Empty(t, chats.backfills)
}

func TestEnrichmentFallsBackToEmail(t *testing.T) {
	svc, _ := newEnrichmentService(map[string]*entity.User{
		"seller": {ID: "seller", Email: "amina@example.com"},
	})

	chat := &entity.Chat{
		ID:           "chat-1",
		Participants: []string{"buyer", "seller"},
	}

	svc.ensureParticipantName(context.Background(), chat, "buyer")

	assert.Equal(t, "amina@example.com", chat.ParticipantNames["seller"])
}

func TestEnrichmentLeavesUnknownProfileAlone(t *testing.T) {
	svc, chats := newEnrichmentService(nil)

	chat := &entity.Chat{
		ID:           "chat-1",
		Participants: []string{"buyer", "seller"},
		ParticipantNames: map[string]string{
			"seller": entity.PlaceholderParticipantName,
		},
	}

	svc.ensureParticipantName(context.Background(), chat, "buyer")

	require.Equal(t, entity.PlaceholderParticipantName, chat.ParticipantNames["seller"])
	assert.Empty(t, chats.backfills)
}
