package repository

import (
	"context"

	"carebridge/internal/domain/entity"
)

type OrphanageRepository interface {
	Create(ctx context.Context, orphanage *entity.Orphanage) error
	GetByID(ctx context.Context, id string) (*entity.Orphanage, error)
	GetByAdminID(ctx context.Context, adminID string) (*entity.Orphanage, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Orphanage, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Orphanage, int64, error)
	Update(ctx context.Context, orphanage *entity.Orphanage) error
}
