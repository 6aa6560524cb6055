package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"carebridge/internal/domain/entity"
	"carebridge/internal/domain/repository"
	"carebridge/pkg/errors"
)

type fakeUserRepo struct {
	mu              sync.Mutex
	users           map[string]*entity.User
	presenceWatches int
	watchCancels    int
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) ListByOrphanage(ctx context.Context, orphanageID, role string) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		if u.OrphanageID == orphanageID && u.Role == role && u.Status != entity.UserStatusDismissed {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) SetPresence(ctx context.Context, userID string, online bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		u.Online = online
		u.LastSeen = time.Now()
	}
	return nil
}

func (r *fakeUserRepo) WatchPresence(ctx context.Context, userID string, fn repository.PresenceCallback) (func(), error) {
	r.mu.Lock()
	u, ok := r.users[userID]
	r.presenceWatches++
	r.mu.Unlock()
	if ok {
		fn(u.Online, u.LastSeen)
	}
	return func() {
		r.mu.Lock()
		r.watchCancels++
		r.mu.Unlock()
	}, nil
}

type fakeOrphanageRepo struct {
	mu         sync.Mutex
	orphanages map[string]*entity.Orphanage
}

func newFakeOrphanageRepo(orphanages ...*entity.Orphanage) *fakeOrphanageRepo {
	repo := &fakeOrphanageRepo{orphanages: make(map[string]*entity.Orphanage)}
	for _, o := range orphanages {
		repo.orphanages[o.ID] = o
	}
	return repo
}

func (r *fakeOrphanageRepo) Create(ctx context.Context, orphanage *entity.Orphanage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orphanages[orphanage.ID] = orphanage
	return nil
}

func (r *fakeOrphanageRepo) GetByID(ctx context.Context, id string) (*entity.Orphanage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orphanages[id]; ok {
		return o, nil
	}
	return nil, errors.NotFound("Orphanage", nil)
}

func (r *fakeOrphanageRepo) GetByAdminID(ctx context.Context, adminID string) (*entity.Orphanage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orphanages {
		if o.AdminID == adminID {
			return o, nil
		}
	}
	return nil, errors.NotFound("Orphanage", nil)
}

func (r *fakeOrphanageRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Orphanage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Orphanage
	for _, id := range ids {
		if o, ok := r.orphanages[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrphanageRepo) List(ctx context.Context, limit, offset int) ([]*entity.Orphanage, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Orphanage
	for _, o := range r.orphanages {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeOrphanageRepo) Update(ctx context.Context, orphanage *entity.Orphanage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orphanages[orphanage.ID] = orphanage
	return nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[string]*entity.Payment
}

func newFakePaymentRepo(payments ...*entity.Payment) *fakePaymentRepo {
	repo := &fakePaymentRepo{payments: make(map[string]*entity.Payment)}
	for _, p := range payments {
		repo.payments[p.ID] = p
	}
	return repo
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.payments[id]; ok {
		return p, nil
	}
	return nil, errors.NotFound("Payment", nil)
}

func (r *fakePaymentRepo) GetByReference(ctx context.Context, reference string) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.Reference == reference {
			return p, nil
		}
	}
	return nil, errors.NotFound("Payment", nil)
}

func (r *fakePaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentRepo) ListByDonor(ctx context.Context, donorID string) ([]*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Payment
	for _, p := range r.payments {
		if p.DonorID == donorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) ListByOrphanage(ctx context.Context, orphanageID string) ([]*entity.Payment, error) {
	return r.ListByOrphanages(ctx, []string{orphanageID})
}

func (r *fakePaymentRepo) ListByOrphanages(ctx context.Context, orphanageIDs []string) ([]*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[string]bool, len(orphanageIDs))
	for _, id := range orphanageIDs {
		wanted[id] = true
	}
	var out []*entity.Payment
	for _, p := range r.payments {
		if wanted[p.OrphanageID] {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeChatRepo struct {
	mu       sync.Mutex
	chats    map[string]*entity.Chat
	messages map[string][]*entity.Message
	watches  int
	cancels  int
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		chats:    make(map[string]*entity.Chat),
		messages: make(map[string][]*entity.Message),
	}
}

func (r *fakeChatRepo) GetOrCreate(ctx context.Context, userA, userB string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := entity.ChatID(userA, userB)
	if chat, ok := r.chats[id]; ok {
		return chat, nil
	}
	now := time.Now()
	chat := &entity.Chat{
		ID:           id,
		Participants: entity.SortedPair(userA, userB),
		UnreadCount:  map[string]int{userA: 0, userB: 0},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.chats[id] = chat
	return chat, nil
}

func (r *fakeChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if chat, ok := r.chats[id]; ok {
		return chat, nil
	}
	return nil, errors.NotFound("Chat", nil)
}

func (r *fakeChatRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Chat
	for _, chat := range r.chats {
		for _, p := range chat.Participants {
			if p == userID {
				out = append(out, chat)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeChatRepo) CreateMessageWithSummary(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[message.ChatID]
	if !ok {
		return errors.NotFound("Chat", nil)
	}
	r.messages[message.ChatID] = append(r.messages[message.ChatID], message)
	chat.LastMessage = message.Content
	chat.LastMessageSenderID = message.SenderID
	chat.LastMessageAt = message.CreatedAt
	chat.UpdatedAt = message.CreatedAt
	if chat.UnreadCount == nil {
		chat.UnreadCount = make(map[string]int)
	}
	for _, p := range chat.Participants {
		if p != message.SenderID {
			chat.UnreadCount[p]++
		}
	}
	return nil
}

// orderedMessages returns the conversation's messages sorted by CreatedAt,
// matching the store's ascending delivery order. Callers hold r.mu.
func (r *fakeChatRepo) orderedMessages(chatID string) []*entity.Message {
	all := append([]*entity.Message(nil), r.messages[chatID]...)
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return all
}

func (r *fakeChatRepo) ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.orderedMessages(chatID)
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeChatRepo) MarkRead(ctx context.Context, chatID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	chat, ok := r.chats[chatID]
	if !ok {
		return errors.NotFound("Chat", nil)
	}
	for _, m := range r.messages[chatID] {
		if m.SenderID != userID && !m.ReadByUser(userID) {
			m.ReadBy = append(m.ReadBy, userID)
		}
	}
	chat.UnreadCount[userID] = 0
	return nil
}

func (r *fakeChatRepo) WatchMessages(ctx context.Context, chatID string, fn repository.MessagesCallback) (func(), error) {
	r.mu.Lock()
	r.watches++
	msgs := r.orderedMessages(chatID)
	r.mu.Unlock()
	fn(msgs)
	return func() {
		r.mu.Lock()
		r.cancels++
		r.mu.Unlock()
	}, nil
}

type fakeChildRepo struct {
	mu       sync.Mutex
	children map[string]*entity.Child
}

func newFakeChildRepo(children ...*entity.Child) *fakeChildRepo {
	repo := &fakeChildRepo{children: make(map[string]*entity.Child)}
	for _, c := range children {
		repo.children[c.ID] = c
	}
	return repo
}

func (r *fakeChildRepo) Create(ctx context.Context, child *entity.Child) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.children[child.ID] = child
	return nil
}

func (r *fakeChildRepo) GetByID(ctx context.Context, id string) (*entity.Child, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.children[id]; ok {
		return c, nil
	}
	return nil, errors.NotFound("Child", nil)
}

func (r *fakeChildRepo) ListByOrphanage(ctx context.Context, orphanageID string) ([]*entity.Child, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Child
	for _, c := range r.children {
		if c.OrphanageID == orphanageID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeChildRepo) CountByOrphanage(ctx context.Context, orphanageID string) (int, error) {
	children, _ := r.ListByOrphanage(ctx, orphanageID)
	return len(children), nil
}

func (r *fakeChildRepo) Update(ctx context.Context, child *entity.Child) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.children[child.ID] = child
	return nil
}

func (r *fakeChildRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.children, id)
	return nil
}

type fakeWishRepo struct {
	mu     sync.Mutex
	wishes map[string]*entity.Wish
}

func newFakeWishRepo(wishes ...*entity.Wish) *fakeWishRepo {
	repo := &fakeWishRepo{wishes: make(map[string]*entity.Wish)}
	for _, w := range wishes {
		repo.wishes[w.ID] = w
	}
	return repo
}

func (r *fakeWishRepo) Create(ctx context.Context, wish *entity.Wish) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wishes[wish.ID] = wish
	return nil
}

func (r *fakeWishRepo) GetByID(ctx context.Context, id string) (*entity.Wish, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.wishes[id]; ok {
		return w, nil
	}
	return nil, errors.NotFound("Wish", nil)
}

func (r *fakeWishRepo) ListByOrphanage(ctx context.Context, orphanageID string) ([]*entity.Wish, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Wish
	for _, w := range r.wishes {
		if w.OrphanageID == orphanageID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWishRepo) ListByChild(ctx context.Context, childID string) ([]*entity.Wish, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Wish
	for _, w := range r.wishes {
		if w.ChildID == childID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWishRepo) Update(ctx context.Context, wish *entity.Wish) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wishes[wish.ID] = wish
	return nil
}

func (r *fakeWishRepo) Claim(ctx context.Context, wishID, donorID, donorName string) (*entity.Wish, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wish, ok := r.wishes[wishID]
	if !ok {
		return nil, errors.NotFound("Wish", nil)
	}
	if wish.DonorID != "" {
		return nil, errors.Conflict("Wish already claimed")
	}
	wish.DonorID = donorID
	wish.DonorName = donorName
	wish.Status = entity.WishStatusInProgress
	wish.UpdatedAt = time.Now()
	return wish, nil
}
