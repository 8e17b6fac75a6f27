package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/zymoune/feedstore-api/internal/domain/entity"
	"github.com/zymoune/feedstore-api/internal/domain/enum"
	"github.com/zymoune/feedstore-api/internal/domain/repository"
	"github.com/zymoune/feedstore-api/pkg/apperror"
	"github.com/zymoune/feedstore-api/pkg/email"
	"github.com/zymoune/feedstore-api/pkg/pagination"
	"github.com/zymoune/feedstore-api/pkg/utils"
)

// invitableRoles are the roles an admin can hand out through the staff
// surface. The admin role itself is seeded, never invited.
var invitableRoles = map[string]bool{
	"manager": true,
	"cashier": true,
	"staff":   true,
}

// staffListRoles covers everyone shown on the staff management screen
var staffListRoles = []string{"admin", "manager", "cashier", "staff"}

// StaffService handles the staff account lifecycle
type StaffService struct {
	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
	emailService email.Sender
}

// NewStaffService creates a new staff service
func NewStaffService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	emailService email.Sender,
) *StaffService {
	return &StaffService{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		emailService: emailService,
	}
}

// InviteStaffInput represents the staff invitation input
type InviteStaffInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Position  string
	Role      string
}

// InviteStaff creates a pending staff account with a temporary password and
// emails the credentials. The email is sent synchronously: if it cannot be
// delivered the account is removed again, so a failed invitation leaves no
// half-created staff record behind.
func (s *StaffService) InviteStaff(ctx context.Context, input *InviteStaffInput) (*entity.User, error) {
	if !invitableRoles[input.Role] {
		return nil, apperror.NewBadRequestError("Role must be one of manager, cashier or staff")
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	tempPassword, err := utils.GenerateTemporaryPassword()
	if err != nil {
		return nil, err
	}
	hashedPassword, err := utils.HashPassword(tempPassword)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FirstName:           input.FirstName,
		LastName:            input.LastName,
		Email:               input.Email,
		Phone:               input.Phone,
		Position:            input.Position,
		Password:            hashedPassword,
		Status:              enum.AccountStatusPending,
		IsTemporaryPassword: true,
		Provider:            "local",
	}

	if err := s.userRepo.CreateWithRole(ctx, user, input.Role); err != nil {
		return nil, err
	}

	invitation := email.StaffInvitation{
		Email:             input.Email,
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Role:              input.Role,
		TemporaryPassword: tempPassword,
	}
	if err := s.emailService.SendStaffInvitation(invitation); err != nil {
		// Roll the account back so the invite can be retried cleanly
		if delErr := s.userRepo.Delete(ctx, user.ID); delErr != nil {
			log.Printf("Failed to roll back staff account %s after email failure: %v", user.ID, delErr)
		}
		return nil, apperror.NewAppError(502, "Failed to send invitation email")
	}

	return s.userRepo.GetWithRoles(ctx, user.ID)
}

// ListStaff lists staff accounts
func (s *StaffService) ListStaff(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.User], error) {
	users, total, err := s.userRepo.ListByRoles(ctx, staffListRoles, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(users, pag), nil
}

// GetStaff retrieves a staff member by ID
func (s *StaffService) GetStaff(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsStaff() {
		return nil, apperror.NewNotFoundError("Staff member")
	}
	return user, nil
}

// UpdateStaffInput represents the update staff input
type UpdateStaffInput struct {
	StaffID   uuid.UUID
	FirstName *string
	LastName  *string
	Phone     *string
	Position  *string
	Role      *string
}

// UpdateStaff updates a staff member's details and optionally reassigns the
// role.
func (s *StaffService) UpdateStaff(ctx context.Context, input *UpdateStaffInput) (*entity.User, error) {
	user, err := s.GetStaff(ctx, input.StaffID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Position != nil {
		user.Position = *input.Position
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if input.Role != nil && *input.Role != user.PrimaryRole() {
		if !invitableRoles[*input.Role] {
			return nil, apperror.NewBadRequestError("Role must be one of manager, cashier or staff")
		}
		newRole, err := s.roleRepo.GetByName(ctx, *input.Role)
		if err != nil {
			return nil, err
		}
		if newRole == nil {
			return nil, apperror.NewNotFoundError("Role")
		}
		for _, role := range user.Roles {
			if err := s.userRepo.RemoveRole(ctx, user.ID, role.ID); err != nil {
				return nil, err
			}
		}
		if err := s.userRepo.AssignRole(ctx, user.ID, newRole.ID); err != nil {
			return nil, err
		}
	}

	return s.userRepo.GetWithRoles(ctx, user.ID)
}

// PauseStaff blocks a staff account from signing in
func (s *StaffService) PauseStaff(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return s.setStatus(ctx, id, enum.AccountStatusPaused)
}

// ActivateStaff re-enables a paused staff account
func (s *StaffService) ActivateStaff(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return s.setStatus(ctx, id, enum.AccountStatusActive)
}

func (s *StaffService) setStatus(ctx context.Context, id uuid.UUID, status enum.AccountStatus) (*entity.User, error) {
	user, err := s.GetStaff(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.HasRole("admin") && status == enum.AccountStatusPaused {
		return nil, apperror.NewBadRequestError("The admin account cannot be paused")
	}

	user.Status = status
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteStaff removes a staff account permanently
func (s *StaffService) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	user, err := s.GetStaff(ctx, id)
	if err != nil {
		return err
	}
	if user.HasRole("admin") {
		return apperror.NewBadRequestError("The admin account cannot be deleted")
	}
	return s.userRepo.Delete(ctx, user.ID)
}

// ResendInvite issues a fresh temporary password to a pending staff member
// and emails it
func (s *StaffService) ResendInvite(ctx context.Context, id uuid.UUID) error {
	user, err := s.GetStaff(ctx, id)
	if err != nil {
		return err
	}
	if user.Status != enum.AccountStatusPending {
		return apperror.NewBadRequestError("Account has already been activated")
	}

	tempPassword, err := utils.GenerateTemporaryPassword()
	if err != nil {
		return err
	}
	hashedPassword, err := utils.HashPassword(tempPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	user.IsTemporaryPassword = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	invitation := email.StaffInvitation{
		Email:             user.Email,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		Role:              user.PrimaryRole(),
		TemporaryPassword: tempPassword,
	}
	if err := s.emailService.SendStaffInvitation(invitation); err != nil {
		return apperror.NewAppError(502, "Failed to send invitation email")
	}
	return nil
}
