package repository

import (
	"context"

	"carebridge/internal/domain/entity"
)

type SOSRepository interface {
	Create(ctx context.Context, alert *entity.SOSAlert) error
	GetByID(ctx context.Context, id string) (*entity.SOSAlert, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*entity.SOSAlert, int64, error)
	Update(ctx context.Context, alert *entity.SOSAlert) error
}
