package repository

import (
	"context"

	"carebridge/internal/domain/entity"
)

type ChildRepository interface {
	Create(ctx context.Context, child *entity.Child) error
	GetByID(ctx context.Context, id string) (*entity.Child, error)
	ListByOrphanage(ctx context.Context, orphanageID string) ([]*entity.Child, error)
	CountByOrphanage(ctx context.Context, orphanageID string) (int, error)
	Update(ctx context.Context, child *entity.Child) error
	Delete(ctx context.Context, id string) error
}
