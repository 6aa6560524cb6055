package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"carebridge/internal/domain/entity"
	"carebridge/internal/domain/repository"
	"carebridge/pkg/errors"
	"carebridge/pkg/logger"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

// GetOrCreate resolves a conversation through its canonical document ID
// (sorted participant pair), so both sides of a pair converge on one record.
// Creation runs in a transaction; the loser of a creation race reads the
// winner's document on retry.
func (r *firestoreChatRepository) GetOrCreate(ctx context.Context, userA, userB string) (*entity.Chat, error) {
	chatID := entity.ChatID(userA, userB)
	chatRef := r.client.Collection("chats").Doc(chatID)

	var result entity.Chat

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(chatRef)
		if err == nil {
			if err := doc.DataTo(&result); err != nil {
				return errors.Internal("Failed to parse chat data", err)
			}
			result.ID = doc.Ref.ID
			return nil
		}
		if status.Code(err) != codes.NotFound {
			return errors.Internal("Failed to get chat", err)
		}

		now := time.Now()
		result = entity.Chat{
			ID:            chatID,
			Participants:  entity.SortedPair(userA, userB),
			UnreadCount:   make(map[string]int),
			LastMessageAt: now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		return tx.Create(chatRef, &result)
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
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

func (r *firestoreChatRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Chat, error) {
	docs, err := r.client.Collection("chats").
		Where("participants", "array-contains", userID).
		OrderBy("updatedAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch chats", err)
	}

	var chats []*entity.Chat
	for _, doc := range docs {
		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			logger.Warn("Skipping malformed chat document %s: %v", doc.Ref.ID, err)
			continue
		}
		chat.ID = doc.Ref.ID
		chats = append(chats, &chat)
	}

	return chats, nil
}

// CreateMessageWithSummary writes the message and the parent chat's
// last-message summary in one transaction, so a crash can never leave the
// summary stale relative to the message log.
func (r *firestoreChatRepository) CreateMessageWithSummary(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()
	if message.ReadBy == nil {
		message.ReadBy = []string{message.SenderID}
	}

	chatRef := r.client.Collection("chats").Doc(message.ChatID)
	msgRef := chatRef.Collection("messages").Doc(message.ID)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(chatRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Chat", err)
			}
			return errors.Internal("Failed to get chat", err)
		}

		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			return errors.Internal("Failed to parse chat data", err)
		}

		if err := tx.Create(msgRef, message); err != nil {
			return errors.Internal("Failed to create message", err)
		}

		updates := []firestore.Update{
			{Path: "lastMessage", Value: message.Content},
			{Path: "lastMessageSenderId", Value: message.SenderID},
			{Path: "lastMessageAt", Value: message.CreatedAt},
			{Path: "updatedAt", Value: message.CreatedAt},
		}
		for _, participantID := range chat.Participants {
			if participantID != message.SenderID {
				updates = append(updates, firestore.Update{
					Path:  "unreadCount." + participantID,
					Value: firestore.Increment(1),
				})
			}
		}

		return tx.Update(chatRef, updates)
	})
}

func (r *firestoreChatRepository) ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error) {
	query := r.client.Collection("chats").Doc(chatID).Collection("messages").
		OrderBy("createdAt", firestore.Asc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to fetch messages", err)
	}
	total := int64(len(allDocs))

	start := offset
	if start > len(allDocs) {
		start = len(allDocs)
	}
	end := len(allDocs)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	var messages []*entity.Message
	for _, doc := range allDocs[start:end] {
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			logger.Warn("Skipping malformed message document %s: %v", doc.Ref.ID, err)
			continue
		}
		message.ID = doc.Ref.ID
		messages = append(messages, &message)
	}

	return messages, total, nil
}

// MarkRead appends userID to the ReadBy of every message authored by someone
// else. ArrayUnion makes the append idempotent, so running this on every
// snapshot delivery is safe. The chat's unread counter is reset alongside.
func (r *firestoreChatRepository) MarkRead(ctx context.Context, chatID, userID string) error {
	msgDocs, err := r.client.Collection("chats").Doc(chatID).Collection("messages").
		Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to fetch messages for read receipt", err)
	}

	for _, doc := range msgDocs {
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			logger.Warn("Skipping malformed message document %s: %v", doc.Ref.ID, err)
			continue
		}
		if message.SenderID == userID || message.ReadByUser(userID) {
			continue
		}

		if _, err := doc.Ref.Update(ctx, []firestore.Update{
			{Path: "readBy", Value: firestore.ArrayUnion(userID)},
		}); err != nil {
			return errors.Internal("Failed to update read receipt", err)
		}
	}

	_, err = r.client.Collection("chats").Doc(chatID).Update(ctx, []firestore.Update{
		{Path: "unreadCount." + userID, Value: 0},
	})
	if err != nil {
		return errors.Internal("Failed to reset unread counter", err)
	}

	return nil
}

// WatchMessages attaches a snapshot listener to the ordered message query.
// Every delivery hands the full ascending message list to the callback. The
// returned handle cancels the listener.
func (r *firestoreChatRepository) WatchMessages(ctx context.Context, chatID string, fn repository.MessagesCallback) (func(), error) {
	watchCtx, cancel := context.WithCancel(ctx)
	snaps := r.client.Collection("chats").Doc(chatID).Collection("messages").
		OrderBy("createdAt", firestore.Asc).
		Snapshots(watchCtx)

	go func() {
		defer snaps.Stop()
		for {
			qsnap, err := snaps.Next()
			if err != nil {
				if watchCtx.Err() == nil {
					logger.Warn("Message watch for chat %s ended: %v", chatID, err)
				}
				return
			}

			docs, err := qsnap.Documents.GetAll()
			if err != nil {
				logger.Warn("Message watch for chat %s failed to read snapshot: %v", chatID, err)
				continue
			}

			var messages []*entity.Message
			for _, doc := range docs {
				var message entity.Message
				if err := doc.DataTo(&message); err != nil {
					logger.Warn("Skipping malformed message document %s: %v", doc.Ref.ID, err)
					continue
				}
				message.ID = doc.Ref.ID
				messages = append(messages, &message)
			}
			fn(messages)
		}
	}()

	return cancel, nil
}
