package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carebridge/internal/domain/entity"
	"carebridge/internal/infrastructure/ratelimit"
	"carebridge/internal/infrastructure/websocket"
	"carebridge/pkg/errors"
)

func chatFixture(t *testing.T) (*ChatUseCase, *fakeChatRepo, *entity.Chat) {
	t.Helper()

	users := newFakeUserRepo(
		&entity.User{ID: "donor-1", Role: entity.RoleDonor, Status: entity.UserStatusActive},
		&entity.User{ID: "admin-1", Role: entity.RoleAdmin, Status: entity.UserStatusActive},
	)
	chats := newFakeChatRepo()
	uc := NewChatUseCase(chats, users, NewPresenceUseCase(users), websocket.NewManager(), ratelimit.NewRateLimiter())

	chat, err := chats.GetOrCreate(context.Background(), "donor-1", "admin-1")
	require.NoError(t, err)
	return uc, chats, chat
}

func TestOpenChatConvergesFromBothSides(t *testing.T) {
	uc, _, _ := chatFixture(t)

	fromDonor, err := uc.OpenChat(context.Background(), &Session{UserID: "donor-1", Role: entity.RoleDonor}, "admin-1")
	require.NoError(t, err)
	fromAdmin, err := uc.OpenChat(context.Background(), &Session{UserID: "admin-1", Role: entity.RoleAdmin}, "donor-1")
	require.NoError(t, err)

	assert.Equal(t, fromDonor.ID, fromAdmin.ID)
	assert.Equal(t, entity.SortedPair("donor-1", "admin-1"), fromDonor.Participants)
}

func TestOpenChatRejectsSelf(t *testing.T) {
	uc, _, _ := chatFixture(t)

	_, err := uc.OpenChat(context.Background(), &Session{UserID: "donor-1"}, "donor-1")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSendMessageUpdatesSummary(t *testing.T) {
	uc, chats, chat := chatFixture(t)
	session := &Session{UserID: "donor-1", Role: entity.RoleDonor}

	message, err := uc.SendMessage(context.Background(), session, chat.ID, "Hello there")
	require.NoError(t, err)
	assert.Equal(t, "donor-1", message.SenderID)
	assert.Contains(t, message.ReadBy, "donor-1", "sender has read their own message")

	// Message and summary move together.
	stored, err := chats.GetByID(context.Background(), chat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello there", stored.LastMessage)
	assert.Equal(t, "donor-1", stored.LastMessageSenderID)
	assert.Equal(t, 1, stored.UnreadCount["admin-1"])
	assert.Equal(t, 0, stored.UnreadCount["donor-1"])
}

func TestSendMessageRejectsOutsider(t *testing.T) {
	uc, _, chat := chatFixture(t)

	_, err := uc.SendMessage(context.Background(), &Session{UserID: "stranger"}, chat.ID, "hi")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestSendMessageRejectsEmpty(t *testing.T) {
	uc, _, chat := chatFixture(t)

	_, err := uc.SendMessage(context.Background(), &Session{UserID: "donor-1"}, chat.ID, "   ")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSendMessageRateLimited(t *testing.T) {
	uc, _, chat := chatFixture(t)
	session := &Session{UserID: "donor-1", Role: entity.RoleDonor}

	var err error
	for i := 0; i < 10; i++ {
		_, err = uc.SendMessage(context.Background(), session, chat.ID, fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
	}

	_, err = uc.SendMessage(context.Background(), session, chat.ID, "one too many")
	assert.True(t, errors.Is(err, "TOO_MANY_REQUESTS"))
}

func TestMarkReadIsIdempotent(t *testing.T) {
	uc, chats, chat := chatFixture(t)

	_, err := uc.SendMessage(context.Background(), &Session{UserID: "donor-1"}, chat.ID, "unread")
	require.NoError(t, err)

	reader := &Session{UserID: "admin-1", Role: entity.RoleAdmin}
	require.NoError(t, uc.MarkRead(context.Background(), reader, chat.ID))
	require.NoError(t, uc.MarkRead(context.Background(), reader, chat.ID))

	messages, _, err := chats.ListMessages(context.Background(), chat.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)

	count := 0
	for _, id := range messages[0].ReadBy {
		if id == "admin-1" {
			count++
		}
	}
	assert.Equal(t, 1, count, "repeat mark-read must not duplicate the receipt")

	stored, err := chats.GetByID(context.Background(), chat.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.UnreadCount["admin-1"])
}

func TestListMessagesRequiresParticipant(t *testing.T) {
	uc, _, chat := chatFixture(t)

	_, _, err := uc.ListMessages(context.Background(), &Session{UserID: "stranger"}, chat.ID, 20, 0)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestListMessagesOrderedByTimestamp(t *testing.T) {
	uc, chats, chat := chatFixture(t)
	base := time.Now()

	// Insert newest-first; delivery must still follow the timestamps.
	for i := 3; i >= 1; i-- {
		err := chats.CreateMessageWithSummary(context.Background(), &entity.Message{
			ID:        fmt.Sprintf("m%d", i),
			ChatID:    chat.ID,
			SenderID:  "donor-1",
			Content:   fmt.Sprintf("message %d", i),
			ReadBy:    []string{"donor-1"},
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	messages, total, err := uc.ListMessages(context.Background(), &Session{UserID: "donor-1"}, chat.ID, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	var contents []string
	for _, m := range messages {
		contents = append(contents, m.Content)
	}
	assert.Equal(t, []string{"message 1", "message 2", "message 3"}, contents)

	// The snapshot stream observes the same order.
	var watched []*entity.Message
	cancel, err := chats.WatchMessages(context.Background(), chat.ID, func(msgs []*entity.Message) {
		watched = msgs
	})
	require.NoError(t, err)
	defer cancel()

	require.Len(t, watched, 3)
	assert.Equal(t, "m1", watched[0].ID)
	assert.Equal(t, "m3", watched[2].ID)
}
