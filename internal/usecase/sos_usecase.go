package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"carebridge/internal/domain/entity"
	"carebridge/internal/domain/repository"
	"carebridge/internal/infrastructure/ratelimit"
	"carebridge/internal/infrastructure/websocket"
	"carebridge/pkg/errors"
	"carebridge/pkg/logger"
)

// SOSUseCase raises emergency alerts and fans them out to every connected
// admin in real time.
type SOSUseCase struct {
	sosRepo     repository.SOSRepository
	userRepo    repository.UserRepository
	manager     *websocket.Manager
	rateLimiter *ratelimit.RateLimiter
}

func NewSOSUseCase(
	sosRepo repository.SOSRepository,
	userRepo repository.UserRepository,
	manager *websocket.Manager,
	rateLimiter *ratelimit.RateLimiter,
) *SOSUseCase {
	return &SOSUseCase{
		sosRepo:     sosRepo,
		userRepo:    userRepo,
		manager:     manager,
		rateLimiter: rateLimiter,
	}
}

type SOSInput struct {
	Message string  `json:"message" validate:"required"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// Raise creates an active alert and pushes it to all admins. Rate-limited
// hard: repeated triggers from one user are rejected, not queued.
func (uc *SOSUseCase) Raise(ctx context.Context, session *Session, input SOSInput) (*entity.SOSAlert, error) {
	if allowed, retryAfter := uc.rateLimiter.Allow(session.UserID, "sos_alert"); !allowed {
		logger.Warn("SOS rate limit hit for user %s, retry in %v", session.UserID, retryAfter)
		return nil, errors.TooManyRequests("Too many alerts, please wait")
	}

	user, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	alert := &entity.SOSAlert{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		UserName:    user.DisplayName,
		UserRole:    user.Role,
		Message:     input.Message,
		PhoneNumber: user.Phone,
		Location: entity.SOSLocation{
			Lat:     input.Lat,
			Lng:     input.Lng,
			Address: input.Address,
		},
		Status:    entity.SOSStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.sosRepo.Create(ctx, alert); err != nil {
		return nil, err
	}

	uc.notifyAdmins(ctx, alert)
	return alert, nil
}

func (uc *SOSUseCase) notifyAdmins(ctx context.Context, alert *entity.SOSAlert) {
	admins, err := uc.userRepo.ListByRole(ctx, entity.RoleAdmin)
	if err != nil {
		logger.Error("Failed to list admins for SOS fan-out: %v", err)
		return
	}

	raw, err := json.Marshal(websocket.Frame{
		Type:      "sos_alert",
		Data:      alert,
		Timestamp: time.Now().Format(time.RFC3339),
	})
	if err != nil {
		logger.Error("Failed to marshal SOS frame: %v", err)
		return
	}

	for _, admin := range admins {
		uc.manager.SendToUser(admin.ID, raw)
	}
}

func (uc *SOSUseCase) GetByID(ctx context.Context, id string) (*entity.SOSAlert, error) {
	return uc.sosRepo.GetByID(ctx, id)
}

func (uc *SOSUseCase) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.SOSAlert, int64, error) {
	if status == "" {
		status = entity.SOSStatusActive
	}
	return uc.sosRepo.ListByStatus(ctx, status, limit, offset)
}

// Advance moves an alert through its lifecycle. Admin-only.
func (uc *SOSUseCase) Advance(ctx context.Context, session *Session, alertID, status string) (*entity.SOSAlert, error) {
	if session.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("Only admins can update alerts", nil)
	}

	switch status {
	case entity.SOSStatusInProgress, entity.SOSStatusResolved, entity.SOSStatusFalseAlarm:
	default:
		return nil, errors.BadRequest("Invalid alert status: "+status, nil)
	}

	alert, err := uc.sosRepo.GetByID(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if alert.Status == entity.SOSStatusResolved || alert.Status == entity.SOSStatusFalseAlarm {
		return nil, errors.Conflict("Alert is already closed")
	}

	alert.Status = status
	alert.UpdatedAt = time.Now()
	if err := uc.sosRepo.Update(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}
