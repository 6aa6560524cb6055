package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"carebridge/internal/domain/entity"
	"carebridge/internal/domain/repository"
	"carebridge/pkg/errors"
	"carebridge/pkg/logger"
)

// Firestore "in" filters accept at most 10 values per query.
const inFilterBatchSize = 10

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection("users").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	user.ID = doc.Ref.ID

	return &user, nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	iter := r.client.Collection("users").Where("email", "==", email).Limit(1).Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("User", nil)
		}
		return nil, errors.Internal("Failed to query user by email", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	user.ID = doc.Ref.ID

	return &user, nil
}

func (r *firestoreUserRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	var users []*entity.User

	for start := 0; start < len(ids); start += inFilterBatchSize {
		end := start + inFilterBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		refs := make([]*firestore.DocumentRef, 0, end-start)
		for _, id := range ids[start:end] {
			refs = append(refs, r.client.Collection("users").Doc(id))
		}

		docs, err := r.client.Collection("users").Query.
			Where(firestore.DocumentID, "in", refs).
			Documents(ctx).GetAll()
		if err != nil {
			return nil, errors.Internal("Failed to query users by ids", err)
		}

		for _, doc := range docs {
			var user entity.User
			if err := doc.DataTo(&user); err != nil {
				logger.Warn("Skipping malformed user document %s: %v", doc.Ref.ID, err)
				continue
			}
			user.ID = doc.Ref.ID
			users = append(users, &user)
		}
	}

	return users, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to update user", err)
	}
	return nil
}

func (r *firestoreUserRepository) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	docs, err := r.client.Collection("users").Where("role", "==", role).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query users by role", err)
	}

	var users []*entity.User
	for _, doc := range docs {
		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			logger.Warn("Skipping malformed user document %s: %v", doc.Ref.ID, err)
			continue
		}
		user.ID = doc.Ref.ID
		users = append(users, &user)
	}

	return users, nil
}

func (r *firestoreUserRepository) ListByOrphanage(ctx context.Context, orphanageID, role string) ([]*entity.User, error) {
	query := r.client.Collection("users").Where("orphanageId", "==", orphanageID)
	if role != "" {
		query = query.Where("role", "==", role)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query users by orphanage", err)
	}

	var users []*entity.User
	for _, doc := range docs {
		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			logger.Warn("Skipping malformed user document %s: %v", doc.Ref.ID, err)
			continue
		}
		user.ID = doc.Ref.ID
		users = append(users, &user)
	}

	return users, nil
}

// SetPresence merge-writes {online, lastSeen} so profile edits and presence
// flips never clobber each other.
func (r *firestoreUserRepository) SetPresence(ctx context.Context, userID string, online bool) error {
	_, err := r.client.Collection("users").Doc(userID).Set(ctx, map[string]interface{}{
		"online":   online,
		"lastSeen": time.Now(),
	}, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update presence", err)
	}
	return nil
}

// WatchPresence attaches a snapshot listener to the user document. The first
// snapshot delivers the current state, so the callback always fires once
// immediately. The returned handle stops the listener.
func (r *firestoreUserRepository) WatchPresence(ctx context.Context, userID string, fn repository.PresenceCallback) (func(), error) {
	watchCtx, cancel := context.WithCancel(ctx)
	snaps := r.client.Collection("users").Doc(userID).Snapshots(watchCtx)

	go func() {
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				if watchCtx.Err() == nil {
					logger.Warn("Presence watch for user %s ended: %v", userID, err)
				}
				return
			}
			if !snap.Exists() {
				continue
			}

			var user entity.User
			if err := snap.DataTo(&user); err != nil {
				logger.Warn("Presence watch: malformed user document %s: %v", userID, err)
				continue
			}
			fn(user.Online, user.LastSeen)
		}
	}()

	return cancel, nil
}
