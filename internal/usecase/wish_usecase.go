package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carebridge/internal/domain/entity"
	"carebridge/internal/domain/repository"
	"carebridge/pkg/errors"
)

type WishUseCase struct {
	wishRepo      repository.WishRepository
	childRepo     repository.ChildRepository
	orphanageRepo repository.OrphanageRepository
	userRepo      repository.UserRepository
}

func NewWishUseCase(
	wishRepo repository.WishRepository,
	childRepo repository.ChildRepository,
	orphanageRepo repository.OrphanageRepository,
	userRepo repository.UserRepository,
) *WishUseCase {
	return &WishUseCase{
		wishRepo:      wishRepo,
		childRepo:     childRepo,
		orphanageRepo: orphanageRepo,
		userRepo:      userRepo,
	}
}

type WishInput struct {
	ChildID     string `json:"child_id" validate:"required"`
	Item        string `json:"item" validate:"required"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity" validate:"gte=1"`
}

// Create publishes a wish for a child of the admin's orphanage.
func (uc *WishUseCase) Create(ctx context.Context, session *Session, input WishInput) (*entity.Wish, error) {
	orphanage, err := uc.orphanageRepo.GetByAdminID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	child, err := uc.childRepo.GetByID(ctx, input.ChildID)
	if err != nil {
		return nil, err
	}
	if child.OrphanageID != orphanage.ID {
		return nil, errors.Forbidden("Child belongs to another orphanage", nil)
	}

	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}

	now := time.Now()
	wish := &entity.Wish{
		ID:          uuid.New().String(),
		ChildID:     child.ID,
		ChildName:   child.Name,
		OrphanageID: orphanage.ID,
		Item:        input.Item,
		Description: input.Description,
		Quantity:    quantity,
		Status:      entity.WishStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.wishRepo.Create(ctx, wish); err != nil {
		return nil, err
	}
	return wish, nil
}

func (uc *WishUseCase) ListByOrphanage(ctx context.Context, orphanageID string) ([]*entity.Wish, error) {
	return uc.wishRepo.ListByOrphanage(ctx, orphanageID)
}

func (uc *WishUseCase) ListByChild(ctx context.Context, childID string) ([]*entity.Wish, error) {
	return uc.wishRepo.ListByChild(ctx, childID)
}

// Claim assigns a pending wish to the calling donor. The repository performs
// the assignment transactionally; a second donor racing for the same wish
// gets CONFLICT.
func (uc *WishUseCase) Claim(ctx context.Context, session *Session, wishID string) (*entity.Wish, error) {
	if session.Role != entity.RoleDonor {
		return nil, errors.Forbidden("Only donors can claim wishes", nil)
	}

	donor, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	return uc.wishRepo.Claim(ctx, wishID, donor.ID, donor.DisplayName)
}

// Fulfill marks a claimed wish fulfilled. Only the orphanage's admin may
// confirm receipt.
func (uc *WishUseCase) Fulfill(ctx context.Context, session *Session, wishID string) (*entity.Wish, error) {
	wish, err := uc.wishRepo.GetByID(ctx, wishID)
	if err != nil {
		return nil, err
	}

	orphanage, err := uc.orphanageRepo.GetByAdminID(ctx, session.UserID)
	if err != nil || orphanage.ID != wish.OrphanageID {
		return nil, errors.Forbidden("Not the admin of this orphanage", err)
	}

	if wish.Status != entity.WishStatusInProgress {
		return nil, errors.BadRequest("Wish is not in progress", nil)
	}

	wish.Status = entity.WishStatusFulfilled
	wish.UpdatedAt = time.Now()
	if err := uc.wishRepo.Update(ctx, wish); err != nil {
		return nil, err
	}
	return wish, nil
}
