package user

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/lehi10/tuagenda-sub000/internal/application/ports"
	"github.com/lehi10/tuagenda-sub000/internal/application/validate"
	"github.com/lehi10/tuagenda-sub000/internal/domain"
)

// GetUserInput identifies the user to fetch.
type GetUserInput struct {
	ID string `validate:"required,max=255"`
}

// GetUserResult carries the found user.
type GetUserResult struct {
	User *domain.User
}

// GetUser is the read-only lookup by id.
type GetUser struct {
	users    ports.UserRepository
	validate *validator.Validate
	log      zerolog.Logger
}

// NewGetUser builds the use-case.
func NewGetUser(users ports.UserRepository, log zerolog.Logger) *GetUser {
	return &GetUser{users: users, validate: validator.New(), log: log}
}

// Execute returns the user or a not-found error.
func (uc *GetUser) Execute(ctx context.Context, input GetUserInput) (*GetUserResult, error) {
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
	return &GetUserResult{User: u}, nil
}

// GetUserByEmailInput identifies the user by email.
type GetUserByEmailInput struct {
	Email string `validate:"required,email,max=254"`
}

// ExecuteByEmail returns the user owning the email or a not-found error.
func (uc *GetUser) ExecuteByEmail(ctx context.Context, input GetUserByEmailInput) (*GetUserResult, error) {
	if err := validate.Input(uc.validate, input); err != nil {
		return nil, err
	}
	u, err := uc.users.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, failUnexpected(uc.log, "find user by email", err)
	}
	if u == nil {
		return nil, notFoundUser()
	}
	return &GetUserResult{User: u}, nil
}
