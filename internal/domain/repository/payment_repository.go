package repository

import (
	"context"

	"carebridge/internal/domain/entity"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	GetByReference(ctx context.Context, reference string) (*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	ListByDonor(ctx context.Context, donorID string) ([]*entity.Payment, error)
	ListByOrphanage(ctx context.Context, orphanageID string) ([]*entity.Payment, error)

	// ListByOrphanages batches "in" filters by 10 under the hood.
	ListByOrphanages(ctx context.Context, orphanageIDs []string) ([]*entity.Payment, error)
}
