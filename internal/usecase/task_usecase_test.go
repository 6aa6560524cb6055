package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carebridge/internal/domain/entity"
	"carebridge/internal/domain/repository"
	"carebridge/pkg/errors"
)

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]*entity.Task
	hours map[string]*entity.HoursEntry
}

func newFakeTaskRepo(tasks ...*entity.Task) *fakeTaskRepo {
	repo := &fakeTaskRepo{tasks: make(map[string]*entity.Task), hours: make(map[string]*entity.HoursEntry)}
	for _, task := range tasks {
		repo.tasks[task.ID] = task
	}
	return repo
}

var _ repository.TaskRepository = (*fakeTaskRepo)(nil)

func (r *fakeTaskRepo) Create(ctx context.Context, task *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if task, ok := r.tasks[id]; ok {
		return task, nil
	}
	return nil, errors.NotFound("Task", nil)
}

func (r *fakeTaskRepo) ListByOrphanage(ctx context.Context, orphanageID string) ([]*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Task
	for _, task := range r.tasks {
		if task.OrphanageID == orphanageID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) ListByVolunteer(ctx context.Context, volunteerID string) ([]*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Task
	for _, task := range r.tasks {
		for _, id := range task.VolunteerIDs {
			if id == volunteerID {
				out = append(out, task)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, task *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeTaskRepo) CreateHours(ctx context.Context, entry *entity.HoursEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hours[entry.ID] = entry
	return nil
}

func (r *fakeTaskRepo) ListHoursByVolunteer(ctx context.Context, volunteerID string) ([]*entity.HoursEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.HoursEntry
	for _, entry := range r.hours {
		if entry.VolunteerID == volunteerID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) ListHoursByOrphanage(ctx context.Context, orphanageID string) ([]*entity.HoursEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.HoursEntry
	for _, entry := range r.hours {
		if entry.OrphanageID == orphanageID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) UpdateHours(ctx context.Context, entry *entity.HoursEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hours[entry.ID] = entry
	return nil
}

func (r *fakeTaskRepo) GetHoursByID(ctx context.Context, id string) (*entity.HoursEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.hours[id]; ok {
		return entry, nil
	}
	return nil, errors.NotFound("Hours entry", nil)
}

func taskFixture() (*TaskUseCase, *fakeTaskRepo) {
	users := newFakeUserRepo(
		&entity.User{ID: "admin-1", Role: entity.RoleAdmin, Status: entity.UserStatusActive},
		&entity.User{ID: "vol-1", Role: entity.RoleVolunteer, Status: entity.UserStatusActive, OrphanageID: "orph-1"},
		&entity.User{ID: "vol-2", Role: entity.RoleVolunteer, Status: entity.UserStatusActive, OrphanageID: "orph-1"},
	)
	orphanages := newFakeOrphanageRepo(&entity.Orphanage{ID: "orph-1", AdminID: "admin-1"})
	tasks := newFakeTaskRepo(&entity.Task{
		ID: "t1", OrphanageID: "orph-1", Title: "Garden day", Slots: 1,
		Date: time.Now().Add(48 * time.Hour), VolunteerIDs: []string{},
	})
	return NewTaskUseCase(tasks, orphanages, users), tasks
}

func TestSignUpIsIdempotent(t *testing.T) {
	uc, _ := taskFixture()
	session := &Session{UserID: "vol-1", Role: entity.RoleVolunteer}

	task, err := uc.SignUp(context.Background(), session, "t1")
	require.NoError(t, err)
	require.Len(t, task.VolunteerIDs, 1)

	// Repeat signup neither errors nor duplicates.
	task, err = uc.SignUp(context.Background(), session, "t1")
	require.NoError(t, err)
	assert.Len(t, task.VolunteerIDs, 1)
}

func TestSignUpRespectsSlotCap(t *testing.T) {
	uc, _ := taskFixture()

	_, err := uc.SignUp(context.Background(), &Session{UserID: "vol-1", Role: entity.RoleVolunteer}, "t1")
	require.NoError(t, err)

	_, err = uc.SignUp(context.Background(), &Session{UserID: "vol-2", Role: entity.RoleVolunteer}, "t1")
	assert.True(t, errors.Is(err, "CONFLICT"), "full task must reject further signups")
}

func TestLogHoursRequiresSignup(t *testing.T) {
	uc, _ := taskFixture()

	_, err := uc.LogHours(context.Background(), &Session{UserID: "vol-1", Role: entity.RoleVolunteer}, HoursInput{
		TaskID: "t1", Hours: 4, Date: time.Now(),
	})
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestApproveHours(t *testing.T) {
	uc, tasks := taskFixture()
	volunteer := &Session{UserID: "vol-1", Role: entity.RoleVolunteer}

	_, err := uc.SignUp(context.Background(), volunteer, "t1")
	require.NoError(t, err)

	entry, err := uc.LogHours(context.Background(), volunteer, HoursInput{TaskID: "t1", Hours: 4, Date: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, entity.HoursStatusPending, entry.Status)

	approved, err := uc.ApproveHours(context.Background(), &Session{UserID: "admin-1", Role: entity.RoleAdmin}, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.HoursStatusApproved, approved.Status)

	// Approving twice is a no-op.
	again, err := uc.ApproveHours(context.Background(), &Session{UserID: "admin-1", Role: entity.RoleAdmin}, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.HoursStatusApproved, again.Status)

	stored, err := tasks.GetHoursByID(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.HoursStatusApproved, stored.Status)
}
