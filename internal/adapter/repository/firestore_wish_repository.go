package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"carebridge/internal/domain/entity"
	"carebridge/internal/domain/repository"
	"carebridge/pkg/errors"
	"carebridge/pkg/logger"
)

type firestoreWishRepository struct {
	client *firestore.Client
}

func NewFirestoreWishRepository(client *firestore.Client) repository.WishRepository {
	return &firestoreWishRepository{
		client: client,
	}
}

func (r *firestoreWishRepository) Create(ctx context.Context, wish *entity.Wish) error {
	if wish.ID == "" {
		wish.ID = uuid.New().String()
	}

	now := time.Now()
	wish.CreatedAt = now
	wish.UpdatedAt = now
	if wish.Status == "" {
		wish.Status = entity.WishStatusPending
	}

	_, err := r.client.Collection("wishes").Doc(wish.ID).Set(ctx, wish)
	if err != nil {
		return errors.Internal("Failed to create wish", err)
	}
	return nil
}

func (r *firestoreWishRepository) GetByID(ctx context.Context, id string) (*entity.Wish, error) {
	doc, err := r.client.Collection("wishes").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Wish", err)
		}
		return nil, errors.Internal("Failed to get wish", err)
	}

	var wish entity.Wish
	if err := doc.DataTo(&wish); err != nil {
		return nil, errors.Internal("Failed to parse wish data", err)
	}
	wish.ID = doc.Ref.ID

	return &wish, nil
}

func (r *firestoreWishRepository) ListByOrphanage(ctx context.Context, orphanageID string) ([]*entity.Wish, error) {
	docs, err := r.client.Collection("wishes").
		Where("orphanageId", "==", orphanageID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch wishes", err)
	}

	return r.decodeAll(docs), nil
}

func (r *firestoreWishRepository) ListByChild(ctx context.Context, childID string) ([]*entity.Wish, error) {
	docs, err := r.client.Collection("wishes").
		Where("childId", "==", childID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch wishes", err)
	}

	return r.decodeAll(docs), nil
}

func (r *firestoreWishRepository) decodeAll(docs []*firestore.DocumentSnapshot) []*entity.Wish {
	var wishes []*entity.Wish
	for _, doc := range docs {
		var wish entity.Wish
		if err := doc.DataTo(&wish); err != nil {
			logger.Warn("Skipping malformed wish document %s: %v", doc.Ref.ID, err)
			continue
		}
		wish.ID = doc.Ref.ID
		wishes = append(wishes, &wish)
	}
	return wishes
}

func (r *firestoreWishRepository) Update(ctx context.Context, wish *entity.Wish) error {
	wish.UpdatedAt = time.Now()

	_, err := r.client.Collection("wishes").Doc(wish.ID).Set(ctx, wish)
	if err != nil {
		return errors.Internal("Failed to update wish", err)
	}
	return nil
}

// Claim assigns the wish to a donor inside a transaction so that exactly one
// donor can ever win the claim.
func (r *firestoreWishRepository) Claim(ctx context.Context, wishID, donorID, donorName string) (*entity.Wish, error) {
	wishRef := r.client.Collection("wishes").Doc(wishID)
	var claimed entity.Wish

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(wishRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Wish", err)
			}
			return errors.Internal("Failed to get wish", err)
		}

		var wish entity.Wish
		if err := doc.DataTo(&wish); err != nil {
			return errors.Internal("Failed to parse wish data", err)
		}
		wish.ID = doc.Ref.ID

		if wish.DonorID != "" {
			return errors.Conflict("Wish has already been claimed")
		}

		wish.DonorID = donorID
		wish.DonorName = donorName
		wish.Status = entity.WishStatusInProgress
		wish.UpdatedAt = time.Now()
		claimed = wish

		return tx.Set(wishRef, &wish)
	})
	if err != nil {
		return nil, err
	}

	return &claimed, nil
}
