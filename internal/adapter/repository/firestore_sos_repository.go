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

type firestoreSOSRepository struct {
	client *firestore.Client
}

func NewFirestoreSOSRepository(client *firestore.Client) repository.SOSRepository {
	return &firestoreSOSRepository{
		client: client,
	}
}

func (r *firestoreSOSRepository) Create(ctx context.Context, alert *entity.SOSAlert) error {
	if alert.ID == "" {
		alert.ID = uuid.New().String()
	}

	now := time.Now()
	alert.CreatedAt = now
	alert.UpdatedAt = now
	if alert.Status == "" {
		alert.Status = entity.SOSStatusActive
	}

	_, err := r.client.Collection("sosAlerts").Doc(alert.ID).Set(ctx, alert)
	if err != nil {
		return errors.Internal("Failed to create SOS alert", err)
	}
	return nil
}

func (r *firestoreSOSRepository) GetByID(ctx context.Context, id string) (*entity.SOSAlert, error) {
	doc, err := r.client.Collection("sosAlerts").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("SOS alert", err)
		}
		return nil, errors.Internal("Failed to get SOS alert", err)
	}

	var alert entity.SOSAlert
	if err := doc.DataTo(&alert); err != nil {
		return nil, errors.Internal("Failed to parse SOS alert data", err)
	}
	alert.ID = doc.Ref.ID

	return &alert, nil
}

func (r *firestoreSOSRepository) ListByStatus(ctx context.Context, statusFilter string, limit, offset int) ([]*entity.SOSAlert, int64, error) {
	query := r.client.Collection("sosAlerts").OrderBy("createdAt", firestore.Desc)
	if statusFilter != "" {
		query = r.client.Collection("sosAlerts").
			Where("status", "==", statusFilter).
			OrderBy("createdAt", firestore.Desc)
	}

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to fetch SOS alerts", err)
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

	var alerts []*entity.SOSAlert
	for _, doc := range allDocs[start:end] {
		var alert entity.SOSAlert
		if err := doc.DataTo(&alert); err != nil {
			logger.Warn("Skipping malformed SOS alert document %s: %v", doc.Ref.ID, err)
			continue
		}
		alert.ID = doc.Ref.ID
		alerts = append(alerts, &alert)
	}

	return alerts, total, nil
}

func (r *firestoreSOSRepository) Update(ctx context.Context, alert *entity.SOSAlert) error {
	alert.UpdatedAt = time.Now()

	_, err := r.client.Collection("sosAlerts").Doc(alert.ID).Set(ctx, alert)
	if err != nil {
		return errors.Internal("Failed to update SOS alert", err)
	}
	return nil
}
