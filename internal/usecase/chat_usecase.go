package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"carebridge/internal/domain/entity"
	"carebridge/internal/domain/repository"
	"carebridge/internal/infrastructure/ratelimit"
	"carebridge/internal/infrastructure/websocket"
	"carebridge/pkg/errors"
	"carebridge/pkg/logger"
)

const maxMessageLength = 2000

// ChatUseCase owns conversation reads and writes plus the realtime event
// handling for connected WebSocket clients.
type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	userRepo    repository.UserRepository
	presence    *PresenceUseCase
	manager     *websocket.Manager
	rateLimiter *ratelimit.RateLimiter
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	presence *PresenceUseCase,
	manager *websocket.Manager,
	rateLimiter *ratelimit.RateLimiter,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:    chatRepo,
		userRepo:    userRepo,
		presence:    presence,
		manager:     manager,
		rateLimiter: rateLimiter,
	}
}

// GetUserChats lists the session's conversations, most recent first.
func (uc *ChatUseCase) GetUserChats(ctx context.Context, session *Session) ([]*entity.Chat, error) {
	return uc.chatRepo.ListByUserID(ctx, session.UserID)
}

// OpenChat resolves (or creates) the conversation with another user.
func (uc *ChatUseCase) OpenChat(ctx context.Context, session *Session, otherUserID string) (*entity.Chat, error) {
	if otherUserID == "" || otherUserID == session.UserID {
		return nil, errors.BadRequest("Invalid chat counterpart", nil)
	}
	if _, err := uc.userRepo.GetByID(ctx, otherUserID); err != nil {
		return nil, err
	}
	return uc.chatRepo.GetOrCreate(ctx, session.UserID, otherUserID)
}

// ListMessages returns a page of a conversation's messages in ascending
// order. Only participants may read.
func (uc *ChatUseCase) ListMessages(ctx context.Context, session *Session, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, 0, err
	}
	if !uc.isParticipant(chat, session.UserID) {
		return nil, 0, errors.Forbidden("Not a participant of this chat", nil)
	}
	return uc.chatRepo.ListMessages(ctx, chatID, limit, offset)
}

// SendMessage validates, rate-limits, and persists a message together with
// the parent chat's summary, then fans the new message out to the room and
// pushes a chat_update to the counterpart.
func (uc *ChatUseCase) SendMessage(ctx context.Context, session *Session, chatID, content string) (*entity.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.BadRequest("Message content cannot be empty", nil)
	}
	if len(content) > maxMessageLength {
		return nil, errors.BadRequest("Message content too long", nil)
	}

	if allowed, retryAfter := uc.rateLimiter.Allow(session.UserID, "send_message"); !allowed {
		logger.Warn("Rate limit hit for user %s on send_message, retry in %v", session.UserID, retryAfter)
		return nil, errors.TooManyRequests("Too many messages, slow down")
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !uc.isParticipant(chat, session.UserID) {
		return nil, errors.Forbidden("Not a participant of this chat", nil)
	}

	message := &entity.Message{
		ID:        uuid.New().String(),
		ChatID:    chatID,
		SenderID:  session.UserID,
		Content:   content,
		ReadBy:    []string{session.UserID},
		CreatedAt: time.Now(),
	}

	if err := uc.chatRepo.CreateMessageWithSummary(ctx, message); err != nil {
		return nil, err
	}

	uc.fanOutMessage(chat, message)
	return message, nil
}

// MarkRead flags every unauthored message of the chat as read by the session
// and resets its unread counter. Safe to repeat.
func (uc *ChatUseCase) MarkRead(ctx context.Context, session *Session, chatID string) error {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		return err
	}
	if !uc.isParticipant(chat, session.UserID) {
		return errors.Forbidden("Not a participant of this chat", nil)
	}

	if err := uc.chatRepo.MarkRead(ctx, chatID, session.UserID); err != nil {
		return err
	}

	// Tell the counterpart their messages were seen.
	frame := uc.frame(websocket.TypeChatUpdate, chatID, map[string]interface{}{
		"chat_id": chatID,
		"read_by": session.UserID,
	})
	uc.manager.SendToUser(uc.counterpart(chat, session.UserID), frame)
	return nil
}

func (uc *ChatUseCase) isParticipant(chat *entity.Chat, userID string) bool {
	for _, p := range chat.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

func (uc *ChatUseCase) counterpart(chat *entity.Chat, userID string) string {
	for _, p := range chat.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}

func (uc *ChatUseCase) fanOutMessage(chat *entity.Chat, message *entity.Message) {
	newMessage := uc.frame(websocket.TypeNewMessage, chat.ID, message)
	uc.manager.SendToRoom(chat.ID, newMessage, message.SenderID)

	// The counterpart may not be in the room; push a summary update so their
	// contact list reflects the new last message and unread count.
	update := uc.frame(websocket.TypeChatUpdate, chat.ID, map[string]interface{}{
		"chat_id":      chat.ID,
		"last_message": message.Content,
		"sender_id":    message.SenderID,
		"sent_at":      message.CreatedAt.Format(time.RFC3339),
	})
	uc.manager.SendToUser(uc.counterpart(chat, message.SenderID), update)
}

func (uc *ChatUseCase) frame(frameType, chatID string, data interface{}) []byte {
	raw, err := json.Marshal(websocket.Frame{
		Type:      frameType,
		ChatID:    chatID,
		Data:      data,
		Timestamp: time.Now().Format(time.RFC3339),
	})
	if err != nil {
		logger.Error("Failed to marshal %s frame: %v", frameType, err)
		return nil
	}
	return raw
}

func (uc *ChatUseCase) sendError(client *websocket.Client, message string) {
	uc.manager.SendToUser(client.UserID, uc.frame(websocket.TypeError, "", map[string]string{
		"message": message,
	}))
}

// HandleConnect marks the user online and notifies their chat counterparts.
func (uc *ChatUseCase) HandleConnect(ctx context.Context, client *websocket.Client) {
	uc.presence.SetOnline(ctx, client.UserID)
	uc.broadcastPresence(ctx, client.UserID, true)
}

// HandleDisconnect marks the user offline and notifies their chat
// counterparts. Store listeners are already torn down by the manager.
func (uc *ChatUseCase) HandleDisconnect(ctx context.Context, client *websocket.Client) {
	uc.presence.SetOffline(ctx, client.UserID)
	uc.broadcastPresence(ctx, client.UserID, false)
}

func (uc *ChatUseCase) broadcastPresence(ctx context.Context, userID string, online bool) {
	chats, err := uc.chatRepo.ListByUserID(ctx, userID)
	if err != nil {
		logger.Warn("Failed to list chats for presence broadcast of %s: %v", userID, err)
		return
	}

	frame := uc.frame(websocket.TypePresence, "", websocket.PresenceData{
		UserID:   userID,
		Online:   online,
		LastSeen: time.Now().Format(time.RFC3339),
	})
	for _, chat := range chats {
		uc.manager.SendToUser(uc.counterpart(chat, userID), frame)
	}
}

// HandleClientMessage dispatches one raw client frame.
func (uc *ChatUseCase) HandleClientMessage(ctx context.Context, client *websocket.Client, raw []byte) {
	var frame websocket.Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		uc.sendError(client, "Malformed frame")
		return
	}

	session := &Session{UserID: client.UserID}

	switch frame.Type {
	case websocket.TypePing:
		uc.manager.SendToUser(client.UserID, uc.frame(websocket.TypePong, "", nil))

	case websocket.TypeJoinRoom:
		uc.handleJoinRoom(ctx, client, frame.ChatID)

	case websocket.TypeLeaveRoom:
		uc.manager.LeaveRoom(frame.ChatID, client)
		client.Subs.Reset()

	case websocket.TypeSendMessage:
		data, err := decodeFrameData[websocket.SendMessageData](frame.Data)
		if err != nil {
			uc.sendError(client, "Malformed send_message payload")
			return
		}
		chatID := data.ChatID
		if chatID == "" {
			chatID = frame.ChatID
		}
		if _, err := uc.SendMessage(ctx, session, chatID, data.Content); err != nil {
			uc.sendError(client, errorMessage(err))
		}

	case websocket.TypeMarkRead:
		if err := uc.MarkRead(ctx, session, frame.ChatID); err != nil {
			uc.sendError(client, errorMessage(err))
		}

	default:
		uc.sendError(client, "Unknown frame type: "+frame.Type)
	}
}

// handleJoinRoom moves the client into a chat room and swaps its store
// listeners: the previous room's watches are released before the new room's
// message and counterpart-presence watches are opened.
func (uc *ChatUseCase) handleJoinRoom(ctx context.Context, client *websocket.Client, chatID string) {
	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		uc.sendError(client, "Chat not found")
		return
	}
	if !uc.isParticipant(chat, client.UserID) {
		uc.sendError(client, "Not a participant of this chat")
		return
	}

	client.Subs.Reset()
	uc.manager.JoinRoom(chatID, client)

	cancelMessages, err := uc.chatRepo.WatchMessages(ctx, chatID, func(messages []*entity.Message) {
		uc.manager.SendToUser(client.UserID, uc.frame(websocket.TypeChatUpdate, chatID, map[string]interface{}{
			"chat_id":  chatID,
			"messages": messages,
		}))
	})
	if err != nil {
		logger.Warn("Failed to watch messages of chat %s for %s: %v", chatID, client.UserID, err)
	} else {
		client.Subs.Track(cancelMessages)
	}

	other := uc.counterpart(chat, client.UserID)
	cancelPresence, err := uc.presence.Subscribe(ctx, other, func(online bool, lastSeen time.Time) {
		uc.manager.SendToUser(client.UserID, uc.frame(websocket.TypePresence, "", websocket.PresenceData{
			UserID:   other,
			Online:   online,
			LastSeen: lastSeen.Format(time.RFC3339),
		}))
	})
	if err != nil {
		logger.Warn("Failed to watch presence of %s for %s: %v", other, client.UserID, err)
	} else {
		client.Subs.Track(cancelPresence)
	}
}

func decodeFrameData[T any](data interface{}) (T, error) {
	var out T
	raw, err := json.Marshal(data)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}

func errorMessage(err error) string {
	if appErr, ok := err.(*errors.AppError); ok {
		return appErr.Message
	}
	return "Internal error"
}
