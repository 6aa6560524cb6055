package repository

import (
	"context"
	"time"

	"carebridge/internal/domain/entity"
)

// PresenceCallback receives presence updates for a watched user. It is
// invoked once with the current state and again on every change.
type PresenceCallback func(online bool, lastSeen time.Time)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)
	ListByOrphanage(ctx context.Context, orphanageID, role string) ([]*entity.User, error)

	// Presence. SetPresence is a best-effort merge write of {online, lastSeen};
	// WatchPresence returns an unsubscribe handle.
	SetPresence(ctx context.Context, userID string, online bool) error
	WatchPresence(ctx context.Context, userID string, fn PresenceCallback) (func(), error)
}
