package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zymoune/feedstore-api/internal/domain/entity"
	"github.com/zymoune/feedstore-api/internal/domain/enum"
	"github.com/zymoune/feedstore-api/pkg/apperror"
)

func newStaffFixture(users ...*entity.User) (*StaffService, *fakeUserRepo, *fakeEmailSender) {
	userRepo := newFakeUserRepo(users...)
	roleRepo := &fakeRoleRepo{roles: map[string]*entity.Role{
		"manager": {ID: 2, Name: "manager"},
		"cashier": {ID: 3, Name: "cashier"},
		"staff":   {ID: 4, Name: "staff"},
	}}
	sender := &fakeEmailSender{}
	return NewStaffService(userRepo, roleRepo, sender), userRepo, sender
}

func TestInviteStaff(t *testing.T) {
	svc, userRepo, sender := newStaffFixture()
	ctx := context.Background()

	user, err := svc.InviteStaff(ctx, &InviteStaffInput{
		FirstName: "Amina",
		LastName:  "Otieno",
		Email:     "amina@example.com",
		Role:      "cashier",
	})
	require.NoError(t, err)

	assert.Equal(t, enum.AccountStatusPending, user.Status)
	assert.True(t, user.IsTemporaryPassword)
	assert.True(t, user.HasRole("cashier"))

	require.Equal(t, 1, sender.invitationCount())
	assert.Equal(t, "amina@example.com", sender.invitations[0].Email)
	assert.NotEmpty(t, sender.invitations[0].TemporaryPassword)
	// Password is stored hashed, never in the clear
	stored, err := userRepo.GetByEmail(ctx, "amina@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, sender.invitations[0].TemporaryPassword, stored.Password)
}

func TestInviteStaffRejectsAdminRole(t *testing.T) {
	svc, _, _ := newStaffFixture()

	_, err := svc.InviteStaff(context.Background(), &InviteStaffInput{
		Email: "a@b.com",
		Role:  "admin",
	})
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestInviteStaffDuplicateEmail(t *testing.T) {
	existing := &entity.User{
		Email: "taken@example.com",
		Roles: []entity.Role{{ID: 3, Name: "cashier"}},
	}
	svc, _, _ := newStaffFixture(existing)

	_, err := svc.InviteStaff(context.Background(), &InviteStaffInput{
		Email: "taken@example.com",
		Role:  "staff",
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestInviteStaffRollsBackOnEmailFailure(t *testing.T) {
	svc, userRepo, sender := newStaffFixture()
	sender.failInvites = true
	ctx := context.Background()

	_, err := svc.InviteStaff(ctx, &InviteStaffInput{
		Email: "ghost@example.com",
		Role:  "manager",
	})
	require.Error(t, err)
	assert.Equal(t, 502, apperror.GetAppError(err).Code)

	// The half-created account is removed so the invite can be retried
	gone, err := userRepo.GetByEmail(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestGetStaffRejectsCustomers(t *testing.T) {
	customer := &entity.User{Email: "c@example.com"}
	svc, _, _ := newStaffFixture(customer)

	_, err := svc.GetStaff(context.Background(), customer.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestPauseStaff(t *testing.T) {
	staff := &entity.User{
		Email:  "s@example.com",
		Status: enum.AccountStatusActive,
		Roles:  []entity.Role{{ID: 4, Name: "staff"}},
	}
	admin := &entity.User{
		Email:  "admin@example.com",
		Status: enum.AccountStatusActive,
		Roles:  []entity.Role{{ID: 1, Name: "admin"}},
	}
	svc, _, _ := newStaffFixture(staff, admin)
	ctx := context.Background()

	paused, err := svc.PauseStaff(ctx, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.AccountStatusPaused, paused.Status)

	reactivated, err := svc.ActivateStaff(ctx, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.AccountStatusActive, reactivated.Status)

	// The admin account can never be paused
	_, err = svc.PauseStaff(ctx, admin.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestDeleteStaffProtectsAdmin(t *testing.T) {
	admin := &entity.User{
		Email: "admin@example.com",
		Roles: []entity.Role{{ID: 1, Name: "admin"}},
	}
	svc, _, _ := newStaffFixture(admin)

	err := svc.DeleteStaff(context.Background(), admin.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestResendInviteOnlyForPending(t *testing.T) {
	active := &entity.User{
		Email:  "active@example.com",
		Status: enum.AccountStatusActive,
		Roles:  []entity.Role{{ID: 3, Name: "cashier"}},
	}
	pending := &entity.User{
		Email:  "pending@example.com",
		Status: enum.AccountStatusPending,
		Roles:  []entity.Role{{ID: 3, Name: "cashier"}},
	}
	svc, userRepo, sender := newStaffFixture(active, pending)
	ctx := context.Background()

	err := svc.ResendInvite(ctx, active.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	require.NoError(t, svc.ResendInvite(ctx, pending.ID))
	assert.Equal(t, 1, sender.invitationCount())

	refreshed, err := userRepo.GetWithRoles(ctx, pending.ID)
	require.NoError(t, err)
	assert.True(t, refreshed.IsTemporaryPassword)
}
