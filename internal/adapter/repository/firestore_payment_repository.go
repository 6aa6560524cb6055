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

type firestorePaymentRepository struct {
	client *firestore.Client
}

func NewFirestorePaymentRepository(client *firestore.Client) repository.PaymentRepository {
	return &firestorePaymentRepository{
		client: client,
	}
}

func (r *firestorePaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.Reference == "" {
		payment.Reference = payment.ID
	}

	now := time.Now()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	_, err := r.client.Collection("payments").Doc(payment.ID).Set(ctx, payment)
	if err != nil {
		return errors.Internal("Failed to create payment", err)
	}
	return nil
}

func (r *firestorePaymentRepository) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	doc, err := r.client.Collection("payments").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Payment", err)
		}
		return nil, errors.Internal("Failed to get payment", err)
	}

	var payment entity.Payment
	if err := doc.DataTo(&payment); err != nil {
		return nil, errors.Internal("Failed to parse payment data", err)
	}
	payment.ID = doc.Ref.ID

	return &payment, nil
}

func (r *firestorePaymentRepository) GetByReference(ctx context.Context, reference string) (*entity.Payment, error) {
	iter := r.client.Collection("payments").Where("reference", "==", reference).Limit(1).Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Payment", nil)
		}
		return nil, errors.Internal("Failed to query payment by reference", err)
	}

	var payment entity.Payment
	if err := doc.DataTo(&payment); err != nil {
		return nil, errors.Internal("Failed to parse payment data", err)
	}
	payment.ID = doc.Ref.ID

	return &payment, nil
}

func (r *firestorePaymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	payment.UpdatedAt = time.Now()

	_, err := r.client.Collection("payments").Doc(payment.ID).Set(ctx, payment)
	if err != nil {
		return errors.Internal("Failed to update payment", err)
	}
	return nil
}

func (r *firestorePaymentRepository) ListByDonor(ctx context.Context, donorID string) ([]*entity.Payment, error) {
	docs, err := r.client.Collection("payments").
		Where("donorId", "==", donorID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch payments", err)
	}

	return r.decodeAll(docs), nil
}

func (r *firestorePaymentRepository) ListByOrphanage(ctx context.Context, orphanageID string) ([]*entity.Payment, error) {
	docs, err := r.client.Collection("payments").
		Where("orphanageId", "==", orphanageID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch payments", err)
	}

	return r.decodeAll(docs), nil
}

// ListByOrphanages splits the "in" filter into batches of 10 to respect the
// platform limit.
func (r *firestorePaymentRepository) ListByOrphanages(ctx context.Context, orphanageIDs []string) ([]*entity.Payment, error) {
	var payments []*entity.Payment

	for start := 0; start < len(orphanageIDs); start += inFilterBatchSize {
		end := start + inFilterBatchSize
		if end > len(orphanageIDs) {
			end = len(orphanageIDs)
		}

		docs, err := r.client.Collection("payments").
			Where("orphanageId", "in", orphanageIDs[start:end]).
			Documents(ctx).GetAll()
		if err != nil {
			return nil, errors.Internal("Failed to fetch payments", err)
		}

		payments = append(payments, r.decodeAll(docs)...)
	}

	return payments, nil
}

func (r *firestorePaymentRepository) decodeAll(docs []*firestore.DocumentSnapshot) []*entity.Payment {
	var payments []*entity.Payment
	for _, doc := range docs {
		var payment entity.Payment
		if err := doc.DataTo(&payment); err != nil {
			logger.Warn("Skipping malformed payment document %s: %v", doc.Ref.ID, err)
			continue
		}
		payment.ID = doc.Ref.ID
		payments = append(payments, &payment)
	}
	return payments
}
