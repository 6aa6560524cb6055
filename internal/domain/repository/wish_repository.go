package repository

import (
	"context"

	"carebridge/internal/domain/entity"
)

type WishRepository interface {
	Create(ctx context.Context, wish *entity.Wish) error
	GetByID(ctx context.Context, id string) (*entity.Wish, error)
	ListByOrphanage(ctx context.Context, orphanageID string) ([]*entity.Wish, error)
	ListByChild(ctx context.Context, childID string) ([]*entity.Wish, error)
	Update(ctx context.Context, wish *entity.Wish) error

	// Claim atomically assigns the wish to a donor. It fails with CONFLICT if
	// another donor already claimed it.
	Claim(ctx context.Context, wishID, donorID, donorName string) (*entity.Wish, error)
}
