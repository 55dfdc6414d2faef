package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"immomarket/internal/domain/entity"
	"immomarket/pkg/errors"
)

// In-memory repositories mirroring the Firestore contracts, including the
// pending-status force on property creation and the two-field owner union.

type fakePropertyRepo struct {
	mu         sync.Mutex
	properties map[string]*entity.Property
	nextID     int
	failReads  bool
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{properties: make(map[string]*entity.Property)}
}

func (r *fakePropertyRepo) Create(ctx context.Context, property *entity.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if property.ID == "" {
		r.nextID++
		property.ID = fmt.Sprintf("prop-%d", r.nextID)
	}
	property.Status = entity.PropertyStatusPending
	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	stored := *property
	r.properties[property.ID] = &stored
	return nil
}

func (r *fakePropertyRepo) GetByID(ctx context.Context, id string) (*entity.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	property, ok := r.properties[id]
	if !ok {
		return nil, errors.NotFound("Property", nil)
	}
	copy := *property
	return &copy, nil
}

func (r *fakePropertyRepo) ListByStatus(ctx context.Context, status string) ([]*entity.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failReads {
		return nil, errors.Internal("backend unavailable", nil)
	}

	var result []*entity.Property
	for _, property := range r.properties {
		if status == "" || property.Status == status {
			copy := *property
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (r *fakePropertyRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failReads {
		return nil, errors.Internal("backend unavailable", nil)
	}

	seen := make(map[string]bool)
	var result []*entity.Property
	for _, match := range []func(*entity.Property) bool{
		func(p *entity.Property) bool { return p.OwnerID == ownerID },
		func(p *entity.Property) bool { return p.LegacyOwnerID == ownerID },
	} {
		for id, property := range r.properties {
			if seen[id] || !match(property) {
				continue
			}
			seen[id] = true
			copy := *property
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (r *fakePropertyRepo) Update(ctx context.Context, property *entity.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.properties[property.ID]; !ok {
		return errors.NotFound("Property", nil)
	}
	property.UpdatedAt = time.Now()
	stored := *property
	r.properties[property.ID] = &stored
	return nil
}

func (r *fakePropertyRepo) UpdateStatus(ctx context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	property, ok := r.properties[id]
	if !ok {
		return errors.NotFound("Property", nil)
	}
	property.Status = status
	property.UpdatedAt = time.Now()
	return nil
}

func (r *fakePropertyRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.properties, id)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copy := *user
	return &copy, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copy := *user
			return &copy, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	return r.Create(ctx, user)
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.User
	for _, user := range r.users {
		copy := *user
		result = append(result, &copy)
	}
	return result, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type fakeFavoriteRepo struct {
	mu        sync.Mutex
	favorites map[string]map[string]*entity.Favorite
	failReads bool
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{favorites: make(map[string]map[string]*entity.Favorite)}
}

func (r *fakeFavoriteRepo) Add(ctx context.Context, userID, propertyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.favorites[userID] == nil {
		r.favorites[userID] = make(map[string]*entity.Favorite)
	}
	r.favorites[userID][propertyID] = &entity.Favorite{PropertyID: propertyID, AddedAt: time.Now()}
	return nil
}

func (r *fakeFavoriteRepo) Remove(ctx context.Context, userID, propertyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.favorites[userID], propertyID)
	return nil
}

func (r *fakeFavoriteRepo) Exists(ctx context.Context, userID, propertyID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.favorites[userID][propertyID]
	return ok, nil
}

func (r *fakeFavoriteRepo) List(ctx context.Context, userID string) ([]*entity.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failReads {
		return nil, errors.Internal("backend unavailable", nil)
	}
	var result []*entity.Favorite
	for _, favorite := range r.favorites[userID] {
		copy := *favorite
		result = append(result, &copy)
	}
	return result, nil
}

type fakeChatRepo struct {
	mu       sync.Mutex
	chats    map[string]*entity.Chat
	messages map[string][]*entity.Message
	nextID   int

	// blindFinds simulates the window where a freshly created chat is not
	// yet visible to the existence query.
	blindFinds bool
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:    make(map[string]*entity.Chat),
		messages: make(map[string][]*entity.Message),
	}
}

func (r *fakeChatRepo) Create(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if chat.ID == "" {
		r.nextID++
		chat.ID = fmt.Sprintf("chat-%d", r.nextID)
	}
	chat.CreatedAt = time.Now()
	if chat.LastMessageTime.IsZero() {
		chat.LastMessageTime = chat.CreatedAt
	}
	stored := *chat
	r.chats[chat.ID] = &stored
	return nil
}

func (r *fakeChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[id]
	if !ok {
		return nil, errors.NotFound("Chat", nil)
	}
	copy := *chat
	return &copy, nil
}

func (r *fakeChatRepo) FindByPropertyAndParticipant(ctx context.Context, propertyID, userID string) ([]*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.blindFinds {
		return nil, nil
	}
	var result []*entity.Chat
	for _, chat := range r.chats {
		if chat.PropertyID == propertyID && chat.HasParticipant(userID) {
			copy := *chat
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (r *fakeChatRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Chat
	for _, chat := range r.chats {
		if chat.HasParticipant(userID) {
			copy := *chat
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (r *fakeChatRepo) Update(ctx context.Context, chat *entity.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.chats[chat.ID]; !ok {
		return errors.NotFound("Chat", nil)
	}
	stored := *chat
	r.chats[chat.ID] = &stored
	return nil
}

func (r *fakeChatRepo) UpdateUnreadCount(ctx context.Context, chatID, userID string, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[chatID]
	if !ok {
		return errors.NotFound("Chat", nil)
	}
	if chat.UnreadCount == nil {
		chat.UnreadCount = make(map[string]int)
	}
	chat.UnreadCount[userID] = count
	return nil
}

func (r *fakeChatRepo) SetParticipantName(ctx context.Context, chatID, userID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[chatID]
	if !ok {
		return errors.NotFound("Chat", nil)
	}
	if chat.ParticipantNames == nil {
		chat.ParticipantNames = make(map[string]string)
	}
	chat.ParticipantNames[userID] = name
	return nil
}

func (r *fakeChatRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.chats, id)
	return nil
}

func (r *fakeChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.ID == "" {
		r.nextID++
		message.ID = fmt.Sprintf("msg-%d", r.nextID)
	}
	message.CreatedAt = time.Now()
	stored := *message
	r.messages[message.ChatID] = append(r.messages[message.ChatID], &stored)
	return nil
}

func (r *fakeChatRepo) ListMessages(ctx context.Context, chatID string) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Message
	for _, message := range r.messages[chatID] {
		copy := *message
		result = append(result, &copy)
	}
	return result, nil
}

type fakeAuthClient struct {
	mu        sync.Mutex
	accounts  map[string]string // email -> uid
	passwords map[string]string // email -> password
	resets    []string
	deleted   []string
	nextID    int
}

func newFakeAuthClient() *fakeAuthClient {
	return &fakeAuthClient{
		accounts:  make(map[string]string),
		passwords: make(map[string]string),
	}
}

func (f *fakeAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.accounts[email]; exists {
		return "", errors.BadRequest("This email address is already in use", nil)
	}
	f.nextID++
	uid := fmt.Sprintf("uid-%d", f.nextID)
	f.accounts[email] = uid
	f.passwords[email] = password
	return uid, nil
}

func (f *fakeAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	if len(token) <= len("token-") || token[:len("token-")] != "token-" {
		return "", errors.Unauthorized("Invalid or expired token", nil)
	}
	return token[len("token-"):], nil
}

func (f *fakeAuthClient) SignInWithEmailPassword(email, password string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	uid, ok := f.accounts[email]
	if !ok || f.passwords[email] != password {
		return "", errors.BadRequest("Incorrect email or password", nil)
	}
	return "token-" + uid, nil
}

func (f *fakeAuthClient) SendPasswordResetEmail(email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets = append(f.resets, email)
	return nil
}

func (f *fakeAuthClient) UpdateUserPassword(ctx context.Context, uid, newPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for email, id := range f.accounts {
		if id == uid {
			f.passwords[email] = newPassword
			return nil
		}
	}
	return errors.NotFound("User", nil)
}

func (f *fakeAuthClient) DeleteUser(ctx context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, uid)
	for email, id := range f.accounts {
		if id == uid {
			delete(f.accounts, email)
			delete(f.passwords, email)
		}
	}
	return nil
}

type fakeLimiter struct {
	allow bool
}

func (f *fakeLimiter) Allow(userID, action string) (bool, time.Duration) {
	if f.allow {
		return true, 0
	}
	return false, time.Minute
}

type fakeNotifier struct {
	mu     sync.Mutex
	frames map[string][][]byte
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{frames: make(map[string][][]byte)}
}

func (f *fakeNotifier) SendToUser(userID string, message []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames[userID] = append(f.frames[userID], message)
}
