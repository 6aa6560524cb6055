package repository

import (
	"context"

	"carebridge/internal/domain/entity"
)

// MessagesCallback receives the full ordered message list of a chat on every
// snapshot delivery.
type MessagesCallback func(messages []*entity.Message)

type ChatRepository interface {
	// GetOrCreate resolves the conversation for an unordered user pair via its
	// canonical document ID, creating it if absent. Idempotent from both sides.
	GetOrCreate(ctx context.Context, userA, userB string) (*entity.Chat, error)
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.Chat, error)

	// CreateMessageWithSummary writes the message and the parent chat's
	// last-message summary in one transaction.
	CreateMessageWithSummary(ctx context.Context, message *entity.Message) error
	ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*entity.Message, int64, error)

	// MarkRead appends userID to ReadBy of every message not authored by
	// userID and resets the chat's unread counter. Idempotent.
	MarkRead(ctx context.Context, chatID, userID string) error

	// WatchMessages streams the ordered message list; the returned handle
	// cancels the listener.
	WatchMessages(ctx context.Context, chatID string, fn MessagesCallback) (func(), error)
}
