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

type firestoreTaskRepository struct {
	client *firestore.Client
}

func NewFirestoreTaskRepository(client *firestore.Client) repository.TaskRepository {
	return &firestoreTaskRepository{
		client: client,
	}
}

func (r *firestoreTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if task.VolunteerIDs == nil {
		task.VolunteerIDs = []string{}
	}

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err := r.client.Collection("tasks").Doc(task.ID).Set(ctx, task)
	if err != nil {
		return errors.Internal("Failed to create task", err)
	}
	return nil
}

func (r *firestoreTaskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	doc, err := r.client.Collection("tasks").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Task", err)
		}
		return nil, errors.Internal("Failed to get task", err)
	}

	var task entity.Task
	if err := doc.DataTo(&task); err != nil {
		return nil, errors.Internal("Failed to parse task data", err)
	}
	task.ID = doc.Ref.ID

	return &task, nil
}

func (r *firestoreTaskRepository) ListByOrphanage(ctx context.Context, orphanageID string) ([]*entity.Task, error) {
	docs, err := r.client.Collection("tasks").
		Where("orphanageId", "==", orphanageID).
		OrderBy("date", firestore.Asc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch tasks", err)
	}

	return r.decodeTasks(docs), nil
}

func (r *firestoreTaskRepository) ListByVolunteer(ctx context.Context, volunteerID string) ([]*entity.Task, error) {
	docs, err := r.client.Collection("tasks").
		Where("volunteerIds", "array-contains", volunteerID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch tasks", err)
	}

	return r.decodeTasks(docs), nil
}

func (r *firestoreTaskRepository) decodeTasks(docs []*firestore.DocumentSnapshot) []*entity.Task {
	var tasks []*entity.Task
	for _, doc := range docs {
		var task entity.Task
		if err := doc.DataTo(&task); err != nil {
			logger.Warn("Skipping malformed task document %s: %v", doc.Ref.ID, err)
			continue
		}
		task.ID = doc.Ref.ID
		tasks = append(tasks, &task)
	}
	return tasks
}

func (r *firestoreTaskRepository) Update(ctx context.Context, task *entity.Task) error {
	task.UpdatedAt = time.Now()

	_, err := r.client.Collection("tasks").Doc(task.ID).Set(ctx, task)
	if err != nil {
		return errors.Internal("Failed to update task", err)
	}
	return nil
}

func (r *firestoreTaskRepository) CreateHours(ctx context.Context, entry *entity.HoursEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now()
	if entry.Status == "" {
		entry.Status = entity.HoursStatusPending
	}

	_, err := r.client.Collection("volunteerHours").Doc(entry.ID).Set(ctx, entry)
	if err != nil {
		return errors.Internal("Failed to log hours", err)
	}
	return nil
}

func (r *firestoreTaskRepository) GetHoursByID(ctx context.Context, id string) (*entity.HoursEntry, error) {
	doc, err := r.client.Collection("volunteerHours").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Hours entry", err)
		}
		return nil, errors.Internal("Failed to get hours entry", err)
	}

	var entry entity.HoursEntry
	if err := doc.DataTo(&entry); err != nil {
		return nil, errors.Internal("Failed to parse hours entry", err)
	}
	entry.ID = doc.Ref.ID

	return &entry, nil
}

func (r *firestoreTaskRepository) ListHoursByVolunteer(ctx context.Context, volunteerID string) ([]*entity.HoursEntry, error) {
	docs, err := r.client.Collection("volunteerHours").
		Where("volunteerId", "==", volunteerID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch hours entries", err)
	}

	return r.decodeHours(docs), nil
}

func (r *firestoreTaskRepository) ListHoursByOrphanage(ctx context.Context, orphanageID string) ([]*entity.HoursEntry, error) {
	docs, err := r.client.Collection("volunteerHours").
		Where("orphanageId", "==", orphanageID).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch hours entries", err)
	}

	return r.decodeHours(docs), nil
}

func (r *firestoreTaskRepository) decodeHours(docs []*firestore.DocumentSnapshot) []*entity.HoursEntry {
	var entries []*entity.HoursEntry
	for _, doc := range docs {
		var entry entity.HoursEntry
		if err := doc.DataTo(&entry); err != nil {
			logger.Warn("Skipping malformed hours document %s: %v", doc.Ref.ID, err)
			continue
		}
		entry.ID = doc.Ref.ID
		entries = append(entries, &entry)
	}
	return entries
}

func (r *firestoreTaskRepository) UpdateHours(ctx context.Context, entry *entity.HoursEntry) error {
	_, err := r.client.Collection("volunteerHours").Doc(entry.ID).Set(ctx, entry)
	if err != nil {
		return errors.Internal("Failed to update hours entry", err)
	}
	return nil
}
