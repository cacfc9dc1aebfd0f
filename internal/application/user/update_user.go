package user

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/lehi10/tuagenda-sub000/internal/application/ports"
	"github.com/lehi10/tuagenda-sub000/internal/application/validate"
	"github.com/lehi10/tuagenda-sub000/internal/domain"
)

// UpdateUserInput is a partial update: nil fields are untouched. Status and
// role changes go through the entity transitions, so their guards apply —
// blocking an already-blocked user or demoting a customer is an error, not
// a silent no-op.
type UpdateUserInput struct {
	ID              string     `validate:"required,max=255"`
	Email           *string    `validate:"omitempty,email,max=254"`
	FirstName       *string    `validate:"omitempty,max=100"`
	LastName        *string    `validate:"omitempty,max=100"`
	Phone           *string    `validate:"omitempty,max=32"`
	CountryCode     *string    `validate:"omitempty,max=8"`
	Birthday        *time.Time `validate:"omitempty"`
	TimeZone        *string    `validate:"omitempty,max=64"`
	Note            *string    `validate:"omitempty,max=2000"`
	Description     *string    `validate:"omitempty,max=2000"`
	PictureFullPath *string    `validate:"omitempty,max=255"`
	Status          *string    `validate:"omitempty,oneof=hidden visible disabled blocked"`
	Role            *string    `validate:"omitempty,oneof=customer admin superadmin"`
}

// UpdateUserResult carries the updated user.
type UpdateUserResult struct {
	User *domain.User
}

// UpdateUser maintains profile, email, note, status and role of an account.
type UpdateUser struct {
	users    ports.UserRepository
	events   ports.TaskEnqueuer
	validate *validator.Validate
	log      zerolog.Logger
}

// NewUpdateUser builds the use-case.
func NewUpdateUser(users ports.UserRepository, events ports.TaskEnqueuer, log zerolog.Logger) *UpdateUser {
	return &UpdateUser{users: users, events: events, validate: validator.New(), log: log}
}

// Execute applies the partial update and persists the result.
func (uc *UpdateUser) Execute(ctx context.Context, input UpdateUserInput) (*UpdateUserResult, error) {
	if err := validate.Input(uc.validate, input); err != nil {
		return nil, err
	}
	u, err := uc.users.FindByID(ctx, input.ID)
	if err != nil {
		return nil, failUnexpected(uc.log, "find user", err)
	}
	if u == nil {
		return nil, notFoundUser()
	}

	if input.Email != nil && *input.Email != u.Email() {
		taken, err := uc.users.EmailExists(ctx, *input.Email, input.ID)
		if err != nil {
			return nil, failUnexpected(uc.log, "email lookup", err)
		}
		if taken {
			return nil, conflictEmail(*input.Email)
		}
		if err := u.UpdateEmail(*input.Email); err != nil {
			return nil, err
		}
	}

	profile := domain.UserProfileUpdate{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Phone:           input.Phone,
		CountryCode:     input.CountryCode,
		Birthday:        input.Birthday,
		TimeZone:        input.TimeZone,
		Description:     input.Description,
		PictureFullPath: input.PictureFullPath,
	}
	if profile != (domain.UserProfileUpdate{}) {
		if err := u.UpdateProfile(profile); err != nil {
			return nil, err
		}
	}
	if input.Note != nil {
		u.AddNote(*input.Note)
	}
	if input.Status != nil {
		if err := applyStatus(u, domain.UserStatus(*input.Status)); err != nil {
			return nil, err
		}
	}
	if input.Role != nil {
		if err := applyRole(u, domain.UserRole(*input.Role)); err != nil {
			return nil, err
		}
	}

	if err := uc.users.Update(ctx, u); err != nil {
		return nil, failExpectedOr(uc.log, "update user", err)
	}
	emitUserEvent(ctx, uc.events, uc.log, ports.EventUserUpdated, u.ID())
	return &UpdateUserResult{User: u}, nil
}

func applyStatus(u *domain.User, target domain.UserStatus) error {
	switch target {
	case domain.UserStatusBlocked:
		return u.Block()
	case domain.UserStatusVisible:
		if u.IsBlocked() {
			return u.Unblock()
		}
		u.Enable()
	case domain.UserStatusDisabled:
		u.Disable()
	case domain.UserStatusHidden:
		u.Hide()
	}
	return nil
}

func applyRole(u *domain.User, target domain.UserRole) error {
	switch target {
	case domain.UserRoleCustomer:
		return u.DemoteToCustomer()
	case domain.UserRoleAdmin:
		return u.PromoteToAdmin()
	case domain.UserRoleSuperAdmin:
		u.PromoteToSuperAdmin()
	}
	return nil
}
