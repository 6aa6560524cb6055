package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carebridge/internal/domain/entity"
	"carebridge/internal/domain/repository"
	"carebridge/pkg/errors"
)

type ChildUseCase struct {
	childRepo     repository.ChildRepository
	orphanageRepo repository.OrphanageRepository
}

func NewChildUseCase(childRepo repository.ChildRepository, orphanageRepo repository.OrphanageRepository) *ChildUseCase {
	return &ChildUseCase{
		childRepo:     childRepo,
		orphanageRepo: orphanageRepo,
	}
}

type ChildInput struct {
	Name        string    `json:"name" validate:"required"`
	DateOfBirth time.Time `json:"date_of_birth" validate:"required"`
	Gender      string    `json:"gender" validate:"required,oneof=male female"`
	PhotoURL    string    `json:"photo_url"`
}

// Create adds a child record to the admin's orphanage, rejecting the write
// when the declared capacity is already reached.
func (uc *ChildUseCase) Create(ctx context.Context, session *Session, input ChildInput) (*entity.Child, error) {
	orphanage, err := uc.orphanageRepo.GetByAdminID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	count, err := uc.childRepo.CountByOrphanage(ctx, orphanage.ID)
	if err != nil {
		return nil, err
	}
	if orphanage.ChildrenCount > 0 && count >= orphanage.ChildrenCount {
		return nil, errors.Conflict("Orphanage is at declared capacity")
	}

	now := time.Now()
	child := &entity.Child{
		ID:          uuid.New().String(),
		OrphanageID: orphanage.ID,
		Name:        input.Name,
		DateOfBirth: input.DateOfBirth,
		Gender:      input.Gender,
		PhotoURL:    input.PhotoURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.childRepo.Create(ctx, child); err != nil {
		return nil, err
	}
	return child, nil
}

func (uc *ChildUseCase) GetByID(ctx context.Context, id string) (*entity.Child, error) {
	return uc.childRepo.GetByID(ctx, id)
}

func (uc *ChildUseCase) ListByOrphanage(ctx context.Context, orphanageID string) ([]*entity.Child, error) {
	return uc.childRepo.ListByOrphanage(ctx, orphanageID)
}

func (uc *ChildUseCase) Update(ctx context.Context, session *Session, id string, input ChildInput) (*entity.Child, error) {
	child, err := uc.childRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.requireOwnOrphanage(ctx, session, child.OrphanageID); err != nil {
		return nil, err
	}

	if input.Name != "" {
		child.Name = input.Name
	}
	if !input.DateOfBirth.IsZero() {
		child.DateOfBirth = input.DateOfBirth
	}
	if input.Gender != "" {
		child.Gender = input.Gender
	}
	if input.PhotoURL != "" {
		child.PhotoURL = input.PhotoURL
	}
	child.UpdatedAt = time.Now()

	if err := uc.childRepo.Update(ctx, child); err != nil {
		return nil, err
	}
	return child, nil
}

func (uc *ChildUseCase) Delete(ctx context.Context, session *Session, id string) error {
	child, err := uc.childRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.requireOwnOrphanage(ctx, session, child.OrphanageID); err != nil {
		return err
	}
	return uc.childRepo.Delete(ctx, id)
}

// AttachDocument appends an uploaded document reference to the child record.
func (uc *ChildUseCase) AttachDocument(ctx context.Context, session *Session, childID, name, docType, url string) (*entity.Child, error) {
	child, err := uc.childRepo.GetByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if err := uc.requireOwnOrphanage(ctx, session, child.OrphanageID); err != nil {
		return nil, err
	}

	child.Documents = append(child.Documents, entity.ChildDocument{
		ID:   uuid.New().String(),
		Name: name,
		Type: docType,
		URL:  url,
	})
	child.UpdatedAt = time.Now()

	if err := uc.childRepo.Update(ctx, child); err != nil {
		return nil, err
	}
	return child, nil
}

func (uc *ChildUseCase) requireOwnOrphanage(ctx context.Context, session *Session, orphanageID string) error {
	orphanage, err := uc.orphanageRepo.GetByAdminID(ctx, session.UserID)
	if err != nil {
		return errors.Forbidden("Admin has no orphanage", err)
	}
	if orphanage.ID != orphanageID {
		return errors.Forbidden("Child belongs to another orphanage", nil)
	}
	return nil
}
