package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"carebridge/internal/domain/entity"
	"carebridge/internal/domain/repository"
	"carebridge/pkg/errors"
	"carebridge/pkg/logger"
)

type firestoreOrphanageRepository struct {
	client *firestore.Client
}

func NewFirestoreOrphanageRepository(client *firestore.Client) repository.OrphanageRepository {
	return &firestoreOrphanageRepository{
		client: client,
	}
}

func (r *firestoreOrphanageRepository) Create(ctx context.Context, orphanage *entity.Orphanage) error {
	if orphanage.ID == "" {
		orphanage.ID = uuid.New().String()
	}

	now := time.Now()
	orphanage.CreatedAt = now
	orphanage.UpdatedAt = now

	_, err := r.client.Collection("orphanages").Doc(orphanage.ID).Set(ctx, orphanage)
	if err != nil {
		return errors.Internal("Failed to create orphanage", err)
	}
	return nil
}

func (r *firestoreOrphanageRepository) GetByID(ctx context.Context, id string) (*entity.Orphanage, error) {
	doc, err := r.client.Collection("orphanages").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Orphanage", err)
		}
		return nil, errors.Internal("Failed to get orphanage", err)
	}

	var orphanage entity.Orphanage
	if err := doc.DataTo(&orphanage); err != nil {
		return nil, errors.Internal("Failed to parse orphanage data", err)
	}
	orphanage.ID = doc.Ref.ID

	return &orphanage, nil
}

func (r *firestoreOrphanageRepository) GetByAdminID(ctx context.Context, adminID string) (*entity.Orphanage, error) {
	iter := r.client.Collection("orphanages").Where("adminId", "==", adminID).Limit(1).Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Orphanage", nil)
		}
		return nil, errors.Internal("Failed to query orphanage by admin", err)
	}

	var orphanage entity.Orphanage
	if err := doc.DataTo(&orphanage); err != nil {
		return nil, errors.Internal("Failed to parse orphanage data", err)
	}
	orphanage.ID = doc.Ref.ID

	return &orphanage, nil
}

func (r *firestoreOrphanageRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.Orphanage, error) {
	var orphanages []*entity.Orphanage

	for start := 0; start < len(ids); start += inFilterBatchSize {
		end := start + inFilterBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		refs := make([]*firestore.DocumentRef, 0, end-start)
		for _, id := range ids[start:end] {
			refs = append(refs, r.client.Collection("orphanages").Doc(id))
		}

		docs, err := r.client.Collection("orphanages").Query.
			Where(firestore.DocumentID, "in", refs).
			Documents(ctx).GetAll()
		if err != nil {
			return nil, errors.Internal("Failed to query orphanages by ids", err)
		}

		for _, doc := range docs {
			var orphanage entity.Orphanage
			if err := doc.DataTo(&orphanage); err != nil {
				logger.Warn("Skipping malformed orphanage document %s: %v", doc.Ref.ID, err)
				continue
			}
			orphanage.ID = doc.Ref.ID
			orphanages = append(orphanages, &orphanage)
		}
	}

	return orphanages, nil
}

func (r *firestoreOrphanageRepository) List(ctx context.Context, limit, offset int) ([]*entity.Orphanage, int64, error) {
	query := r.client.Collection("orphanages").OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to fetch orphanages", err)
	}
	total := int64(len(allDocs))

	start := offset
	if start > len(allDocs) {
		start = len(allDocs)
	}
	end := len(allDocs)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	var orphanages []*entity.Orphanage
	for _, doc := range allDocs[start:end] {
		var orphanage entity.Orphanage
		if err := doc.DataTo(&orphanage); err != nil {
			logger.Warn("Skipping malformed orphanage document %s: %v", doc.Ref.ID, err)
			continue
		}
		orphanage.ID = doc.Ref.ID
		orphanages = append(orphanages, &orphanage)
	}

	return orphanages, total, nil
}

func (r *firestoreOrphanageRepository) Update(ctx context.Context, orphanage *entity.Orphanage) error {
	orphanage.UpdatedAt = time.Now()

	_, err := r.client.Collection("orphanages").Doc(orphanage.ID).Set(ctx, orphanage)
	if err != nil {
		return errors.Internal("Failed to update orphanage", err)
	}
	return nil
}
