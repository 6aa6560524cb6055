package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carebridge/internal/domain/entity"
	"carebridge/pkg/errors"
)

func wishFixture() (*WishUseCase, *fakeWishRepo) {
	users := newFakeUserRepo(
		&entity.User{ID: "admin-1", Role: entity.RoleAdmin, Status: entity.UserStatusActive},
		&entity.User{ID: "donor-1", DisplayName: "Chidi", Role: entity.RoleDonor, Status: entity.UserStatusActive},
		&entity.User{ID: "donor-2", DisplayName: "Dayo", Role: entity.RoleDonor, Status: entity.UserStatusActive},
	)
	orphanages := newFakeOrphanageRepo(&entity.Orphanage{ID: "orph-1", AdminID: "admin-1"})
	children := newFakeChildRepo(&entity.Child{ID: "c1", OrphanageID: "orph-1", Name: "Ada"})
	wishes := newFakeWishRepo(&entity.Wish{
		ID: "w1", ChildID: "c1", OrphanageID: "orph-1", Item: "School bag", Quantity: 1, Status: entity.WishStatusPending,
	})
	return NewWishUseCase(wishes, children, orphanages, users), wishes
}

func TestClaimWishAssignsSingleDonor(t *testing.T) {
	uc, _ := wishFixture()

	wish, err := uc.Claim(context.Background(), &Session{UserID: "donor-1", Role: entity.RoleDonor}, "w1")
	require.NoError(t, err)
	assert.Equal(t, "donor-1", wish.DonorID)
	assert.Equal(t, "Chidi", wish.DonorName)
	assert.Equal(t, entity.WishStatusInProgress, wish.Status)

	_, err = uc.Claim(context.Background(), &Session{UserID: "donor-2", Role: entity.RoleDonor}, "w1")
	assert.True(t, errors.Is(err, "CONFLICT"), "second claim must lose, got %v", err)
}

func TestClaimWishRequiresDonorRole(t *testing.T) {
	uc, _ := wishFixture()

	_, err := uc.Claim(context.Background(), &Session{UserID: "admin-1", Role: entity.RoleAdmin}, "w1")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestFulfillWishRequiresClaim(t *testing.T) {
	uc, _ := wishFixture()
	admin := &Session{UserID: "admin-1", Role: entity.RoleAdmin}

	_, err := uc.Fulfill(context.Background(), admin, "w1")
	assert.True(t, errors.Is(err, "BAD_REQUEST"), "unclaimed wish cannot be fulfilled")

	_, err = uc.Claim(context.Background(), &Session{UserID: "donor-1", Role: entity.RoleDonor}, "w1")
	require.NoError(t, err)

	wish, err := uc.Fulfill(context.Background(), admin, "w1")
	require.NoError(t, err)
	assert.Equal(t, entity.WishStatusFulfilled, wish.Status)
}

func TestCreateWishChecksChildOwnership(t *testing.T) {
	uc, _ := wishFixture()

	_, err := uc.Create(context.Background(), &Session{UserID: "admin-1", Role: entity.RoleAdmin}, WishInput{
		ChildID: "missing", Item: "Shoes",
	})
	assert.Error(t, err)
}
