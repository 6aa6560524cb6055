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

type firestoreChildRepository struct {
	client *firestore.Client
}

func NewFirestoreChildRepository(client *firestore.Client) repository.ChildRepository {
	return &firestoreChildRepository{
		client: client,
	}
}

func (r *firestoreChildRepository) Create(ctx context.Context, child *entity.Child) error {
	if child.ID == "" {
		child.ID = uuid.New().String()
	}

	now := time.Now()
	child.CreatedAt = now
	child.UpdatedAt = now

	_, err := r.client.Collection("children").Doc(child.ID).Set(ctx, child)
	if err != nil {
		return errors.Internal("Failed to create child record", err)
	}
	return nil
}

func (r *firestoreChildRepository) GetByID(ctx context.Context, id string) (*entity.Child, error) {
	doc, err := r.client.Collection("children").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Child", err)
		}
		return nil, errors.Internal("Failed to get child record", err)
	}

	var child entity.Child
	if err := doc.DataTo(&child); err != nil {
		return nil, errors.Internal("Failed to parse child data", err)
	}
	child.ID = doc.Ref.ID

	return &child, nil
}

func (r *firestoreChildRepository) ListByOrphanage(ctx context.Context, orphanageID string) ([]*entity.Child, error) {
	docs, err := r.client.Collection("children").
		Where("orphanageId", "==", orphanageID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch children", err)
	}

	var children []*entity.Child
	for _, doc := range docs {
		var child entity.Child
		if err := doc.DataTo(&child); err != nil {
			logger.Warn("Skipping malformed child document %s: %v", doc.Ref.ID, err)
			continue
		}
		child.ID = doc.Ref.ID
		children = append(children, &child)
	}

	return children, nil
}

func (r *firestoreChildRepository) CountByOrphanage(ctx context.Context, orphanageID string) (int, error) {
	docs, err := r.client.Collection("children").
		Where("orphanageId", "==", orphanageID).
		Select().
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count children", err)
	}
	return len(docs), nil
}

func (r *firestoreChildRepository) Update(ctx context.Context, child *entity.Child) error {
	child.UpdatedAt = time.Now()

	_, err := r.client.Collection("children").Doc(child.ID).Set(ctx, child)
	if err != nil {
		return errors.Internal("Failed to update child record", err)
	}
	return nil
}

func (r *firestoreChildRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("children").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete child record", err)
	}
	return nil
}
