package usecase

import (
	"context"
	"time"

	"carebridge/internal/domain/repository"
	"carebridge/pkg/logger"
)

// PresenceUseCase marks users online/offline and exposes the per-user watch
// primitive. Presence is advisory: writes are best-effort and never surface
// an error to the caller.
type PresenceUseCase struct {
	userRepo repository.UserRepository
}

func NewPresenceUseCase(userRepo repository.UserRepository) *PresenceUseCase {
	return &PresenceUseCase{
		userRepo: userRepo,
	}
}

func (uc *PresenceUseCase) SetOnline(ctx context.Context, userID string) {
	if err := uc.userRepo.SetPresence(ctx, userID, true); err != nil {
		logger.Warn("Failed to mark user %s online: %v", userID, err)
	}
}

func (uc *PresenceUseCase) SetOffline(ctx context.Context, userID string) {
	if err := uc.userRepo.SetPresence(ctx, userID, false); err != nil {
		logger.Warn("Failed to mark user %s offline: %v", userID, err)
	}
}

// Subscribe watches a user's presence document. The callback fires once with
// the current state and again on every change; the returned handle stops the
// watch. Callers own the handle and must release it on teardown.
func (uc *PresenceUseCase) Subscribe(ctx context.Context, userID string, fn func(online bool, lastSeen time.Time)) (func(), error) {
	return uc.userRepo.WatchPresence(ctx, userID, repository.PresenceCallback(fn))
}
