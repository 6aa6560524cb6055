package usecase

import (
	"context"

	"carebridge/internal/domain/entity"
	"carebridge/internal/domain/repository"
	"carebridge/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

type UpdateProfileInput struct {
	DisplayName string
	Phone       string
	PhotoURL    string
	Skills      string
	CVURL       string
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != "" {
		user.DisplayName = input.DisplayName
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.PhotoURL != "" {
		user.PhotoURL = input.PhotoURL
	}
	if input.Skills != "" {
		user.Skills = input.Skills
	}
	if input.CVURL != "" {
		user.CVURL = input.CVURL
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ListVolunteers returns the volunteers assigned to an orphanage.
func (uc *UserUseCase) ListVolunteers(ctx context.Context, orphanageID string) ([]*entity.User, error) {
	return uc.userRepo.ListByOrphanage(ctx, orphanageID, entity.RoleVolunteer)
}

// DismissVolunteer status-flags a volunteer instead of deleting the record.
func (uc *UserUseCase) DismissVolunteer(ctx context.Context, session *Session, volunteerID string) error {
	if session.Role != entity.RoleAdmin {
		return errors.Forbidden("Only admins can dismiss volunteers", nil)
	}

	volunteer, err := uc.userRepo.GetByID(ctx, volunteerID)
	if err != nil {
		return err
	}
	if volunteer.Role != entity.RoleVolunteer {
		return errors.BadRequest("User is not a volunteer", nil)
	}

	admin, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return err
	}
	if admin.OrphanageID == "" || admin.OrphanageID != volunteer.OrphanageID {
		return errors.Forbidden("Volunteer is not assigned to your orphanage", nil)
	}

	volunteer.Status = entity.UserStatusDismissed
	return uc.userRepo.Update(ctx, volunteer)
}

// AssignVolunteer links a volunteer to an orphanage.
func (uc *UserUseCase) AssignVolunteer(ctx context.Context, session *Session, volunteerID, orphanageID string) error {
	if session.Role != entity.RoleAdmin {
		return errors.Forbidden("Only admins can assign volunteers", nil)
	}

	volunteer, err := uc.userRepo.GetByID(ctx, volunteerID)
	if err != nil {
		return err
	}
	if volunteer.Role != entity.RoleVolunteer {
		return errors.BadRequest("User is not a volunteer", nil)
	}

	volunteer.OrphanageID = orphanageID
	volunteer.Status = entity.UserStatusActive
	return uc.userRepo.Update(ctx, volunteer)
}
