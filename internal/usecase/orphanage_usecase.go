package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carebridge/internal/domain/entity"
	"carebridge/internal/domain/repository"
	"carebridge/pkg/errors"
)

type OrphanageUseCase struct {
	orphanageRepo repository.OrphanageRepository
	userRepo      repository.UserRepository
}

func NewOrphanageUseCase(orphanageRepo repository.OrphanageRepository, userRepo repository.UserRepository) *OrphanageUseCase {
	return &OrphanageUseCase{
		orphanageRepo: orphanageRepo,
		userRepo:      userRepo,
	}
}

type OrphanageInput struct {
	Name        string   `json:"name" validate:"required"`
	Address     string   `json:"address" validate:"required"`
	City        string   `json:"city" validate:"required"`
	Country     string   `json:"country" validate:"required"`
	Description string   `json:"description"`
	PhotoURL    string   `json:"photo_url"`
	Needs       []string `json:"needs"`
	Capacity    int      `json:"capacity" validate:"gte=0"`
}

// Create registers the admin's orphanage. Each admin runs at most one.
func (uc *OrphanageUseCase) Create(ctx context.Context, session *Session, input OrphanageInput) (*entity.Orphanage, error) {
	if session.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("Only admins can create orphanages", nil)
	}

	if existing, err := uc.orphanageRepo.GetByAdminID(ctx, session.UserID); err == nil && existing != nil {
		return nil, errors.Conflict("Admin already manages an orphanage")
	}

	now := time.Now()
	orphanage := &entity.Orphanage{
		ID:            uuid.New().String(),
		Name:          input.Name,
		Address:       input.Address,
		City:          input.City,
		Country:       input.Country,
		Description:   input.Description,
		PhotoURL:      input.PhotoURL,
		Needs:         input.Needs,
		ChildrenCount: input.Capacity,
		AdminID:       session.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.orphanageRepo.Create(ctx, orphanage); err != nil {
		return nil, err
	}

	// Keep the admin's profile pointing at their orphanage.
	admin, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err == nil {
		admin.OrphanageID = orphanage.ID
		_ = uc.userRepo.Update(ctx, admin)
	}

	return orphanage, nil
}

func (uc *OrphanageUseCase) GetByID(ctx context.Context, id string) (*entity.Orphanage, error) {
	return uc.orphanageRepo.GetByID(ctx, id)
}

// GetOwn returns the orphanage managed by the session's admin.
func (uc *OrphanageUseCase) GetOwn(ctx context.Context, session *Session) (*entity.Orphanage, error) {
	return uc.orphanageRepo.GetByAdminID(ctx, session.UserID)
}

func (uc *OrphanageUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Orphanage, int64, error) {
	return uc.orphanageRepo.List(ctx, limit, offset)
}

// Update modifies the admin's own orphanage; non-empty fields win.
func (uc *OrphanageUseCase) Update(ctx context.Context, session *Session, id string, input OrphanageInput) (*entity.Orphanage, error) {
	orphanage, err := uc.orphanageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if orphanage.AdminID != session.UserID {
		return nil, errors.Forbidden("Not the admin of this orphanage", nil)
	}

	if input.Name != "" {
		orphanage.Name = input.Name
	}
	if input.Address != "" {
		orphanage.Address = input.Address
	}
	if input.City != "" {
		orphanage.City = input.City
	}
	if input.Country != "" {
		orphanage.Country = input.Country
	}
	if input.Description != "" {
		orphanage.Description = input.Description
	}
	if input.PhotoURL != "" {
		orphanage.PhotoURL = input.PhotoURL
	}
	if input.Needs != nil {
		orphanage.Needs = input.Needs
	}
	if input.Capacity > 0 {
		orphanage.ChildrenCount = input.Capacity
	}
	orphanage.UpdatedAt = time.Now()

	if err := uc.orphanageRepo.Update(ctx, orphanage); err != nil {
		return nil, err
	}
	return orphanage, nil
}
