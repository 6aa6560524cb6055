package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carebridge/internal/domain/entity"
	"carebridge/pkg/errors"
)

func TestCreateChildWithinCapacity(t *testing.T) {
	orphanages := newFakeOrphanageRepo(&entity.Orphanage{ID: "orph-1", AdminID: "admin-1", ChildrenCount: 2})
	uc := NewChildUseCase(newFakeChildRepo(), orphanages)

	child, err := uc.Create(context.Background(), &Session{UserID: "admin-1", Role: entity.RoleAdmin}, ChildInput{
		Name:        "Ada",
		DateOfBirth: time.Date(2018, 4, 1, 0, 0, 0, 0, time.UTC),
		Gender:      "female",
	})
	require.NoError(t, err)
	assert.Equal(t, "orph-1", child.OrphanageID)
}

func TestCreateChildRejectsBeyondCapacity(t *testing.T) {
	orphanages := newFakeOrphanageRepo(&entity.Orphanage{ID: "orph-1", AdminID: "admin-1", ChildrenCount: 2})
	children := newFakeChildRepo(
		&entity.Child{ID: "c1", OrphanageID: "orph-1"},
		&entity.Child{ID: "c2", OrphanageID: "orph-1"},
	)
	uc := NewChildUseCase(children, orphanages)

	_, err := uc.Create(context.Background(), &Session{UserID: "admin-1", Role: entity.RoleAdmin}, ChildInput{
		Name:        "Ben",
		DateOfBirth: time.Date(2019, 7, 12, 0, 0, 0, 0, time.UTC),
		Gender:      "male",
	})
	assert.True(t, errors.Is(err, "CONFLICT"), "capacity check must reject the write, got %v", err)
}

func TestUpdateChildRequiresOwnOrphanage(t *testing.T) {
	orphanages := newFakeOrphanageRepo(
		&entity.Orphanage{ID: "orph-1", AdminID: "admin-1", ChildrenCount: 10},
		&entity.Orphanage{ID: "orph-2", AdminID: "admin-2", ChildrenCount: 10},
	)
	children := newFakeChildRepo(&entity.Child{ID: "c1", OrphanageID: "orph-2", Name: "Ada"})
	uc := NewChildUseCase(children, orphanages)

	_, err := uc.Update(context.Background(), &Session{UserID: "admin-1", Role: entity.RoleAdmin}, "c1", ChildInput{Name: "Renamed"})
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}
