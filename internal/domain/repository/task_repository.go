package repository

import (
	"context"

	"carebridge/internal/domain/entity"
)

type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	ListByOrphanage(ctx context.Context, orphanageID string) ([]*entity.Task, error)
	ListByVolunteer(ctx context.Context, volunteerID string) ([]*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error

	CreateHours(ctx context.Context, entry *entity.HoursEntry) error
	ListHoursByVolunteer(ctx context.Context, volunteerID string) ([]*entity.HoursEntry, error)
	ListHoursByOrphanage(ctx context.Context, orphanageID string) ([]*entity.HoursEntry, error)
	UpdateHours(ctx context.Context, entry *entity.HoursEntry) error
	GetHoursByID(ctx context.Context, id string) (*entity.HoursEntry, error)
}
