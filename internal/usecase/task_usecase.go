package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carebridge/internal/domain/entity"
	"carebridge/internal/domain/repository"
	"carebridge/pkg/errors"
)

// TaskUseCase manages volunteer opportunities and the hours logged against
// them.
type TaskUseCase struct {
	taskRepo      repository.TaskRepository
	orphanageRepo repository.OrphanageRepository
	userRepo      repository.UserRepository
}

func NewTaskUseCase(
	taskRepo repository.TaskRepository,
	orphanageRepo repository.OrphanageRepository,
	userRepo repository.UserRepository,
) *TaskUseCase {
	return &TaskUseCase{
		taskRepo:      taskRepo,
		orphanageRepo: orphanageRepo,
		userRepo:      userRepo,
	}
}

type TaskInput struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" validate:"required"`
	Slots       int       `json:"slots" validate:"required,gte=1"`
}

// Create publishes a volunteer task for the admin's orphanage.
func (uc *TaskUseCase) Create(ctx context.Context, session *Session, input TaskInput) (*entity.Task, error) {
	orphanage, err := uc.orphanageRepo.GetByAdminID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task := &entity.Task{
		ID:           uuid.New().String(),
		OrphanageID:  orphanage.ID,
		Title:        input.Title,
		Description:  input.Description,
		Date:         input.Date,
		Slots:        input.Slots,
		VolunteerIDs: []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (uc *TaskUseCase) ListByOrphanage(ctx context.Context, orphanageID string) ([]*entity.Task, error) {
	return uc.taskRepo.ListByOrphanage(ctx, orphanageID)
}

func (uc *TaskUseCase) ListOwn(ctx context.Context, session *Session) ([]*entity.Task, error) {
	return uc.taskRepo.ListByVolunteer(ctx, session.UserID)
}

// SignUp adds the volunteer to the task. Signing up twice is a no-op; a full
// task rejects the signup.
func (uc *TaskUseCase) SignUp(ctx context.Context, session *Session, taskID string) (*entity.Task, error) {
	if session.Role != entity.RoleVolunteer {
		return nil, errors.Forbidden("Only volunteers can sign up for tasks", nil)
	}

	volunteer, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	task, err := uc.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if volunteer.OrphanageID != task.OrphanageID {
		return nil, errors.Forbidden("Task belongs to another orphanage", nil)
	}

	for _, id := range task.VolunteerIDs {
		if id == session.UserID {
			return task, nil
		}
	}

	if len(task.VolunteerIDs) >= task.Slots {
		return nil, errors.Conflict("Task has no open slots")
	}

	task.VolunteerIDs = append(task.VolunteerIDs, session.UserID)
	task.UpdatedAt = time.Now()
	if err := uc.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

type HoursInput struct {
	TaskID string    `json:"task_id" validate:"required"`
	Hours  float64   `json:"hours" validate:"required,gt=0"`
	Date   time.Time `json:"date" validate:"required"`
}

// LogHours records pending volunteer hours against a task the volunteer is
// signed up for.
func (uc *TaskUseCase) LogHours(ctx context.Context, session *Session, input HoursInput) (*entity.HoursEntry, error) {
	task, err := uc.taskRepo.GetByID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}

	signedUp := false
	for _, id := range task.VolunteerIDs {
		if id == session.UserID {
			signedUp = true
			break
		}
	}
	if !signedUp {
		return nil, errors.Forbidden("Not signed up for this task", nil)
	}

	entry := &entity.HoursEntry{
		ID:          uuid.New().String(),
		VolunteerID: session.UserID,
		TaskID:      task.ID,
		OrphanageID: task.OrphanageID,
		Hours:       input.Hours,
		Date:        input.Date,
		Status:      entity.HoursStatusPending,
		CreatedAt:   time.Now(),
	}

	if err := uc.taskRepo.CreateHours(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (uc *TaskUseCase) ListOwnHours(ctx context.Context, session *Session) ([]*entity.HoursEntry, error) {
	return uc.taskRepo.ListHoursByVolunteer(ctx, session.UserID)
}

// ApproveHours confirms a pending hours entry. Only the orphanage's admin
// may approve.
func (uc *TaskUseCase) ApproveHours(ctx context.Context, session *Session, entryID string) (*entity.HoursEntry, error) {
	entry, err := uc.taskRepo.GetHoursByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	orphanage, err := uc.orphanageRepo.GetByAdminID(ctx, session.UserID)
	if err != nil || orphanage.ID != entry.OrphanageID {
		return nil, errors.Forbidden("Not the admin of this orphanage", err)
	}

	if entry.Status == entity.HoursStatusApproved {
		return entry, nil
	}

	entry.Status = entity.HoursStatusApproved
	if err := uc.taskRepo.UpdateHours(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
