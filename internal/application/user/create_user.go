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

// CreateUserInput is the raw input for CreateUser. The id comes from the
// external identity provider and is never generated here.
type CreateUserInput struct {
	ID              string     `validate:"required,max=255"`
	Email           string     `validate:"required,email,max=254"`
	FirstName       string     `validate:"required,max=100"`
	LastName        string     `validate:"required,max=100"`
	Phone           string     `validate:"omitempty,max=32"`
	CountryCode     string     `validate:"omitempty,max=8"`
	Birthday        *time.Time `validate:"omitempty"`
	TimeZone        string     `validate:"omitempty,max=64"`
	Note            string     `validate:"omitempty,max=2000"`
	Description     string     `validate:"omitempty,max=2000"`
	PictureFullPath string     `validate:"omitempty,max=255"`
}

// CreateUserResult carries the persisted (or pre-existing) user. Existing
// is true when the id was already known and no new account was created.
type CreateUserResult struct {
	User     *domain.User
	Existing bool
}

// CreateUser registers an account, idempotent by id: a second call with
// the same id returns the stored user untouched, without running the email
// uniqueness path.
type CreateUser struct {
	users    ports.UserRepository
	events   ports.TaskEnqueuer
	validate *validator.Validate
	log      zerolog.Logger
}

// NewCreateUser builds the use-case.
func NewCreateUser(users ports.UserRepository, events ports.TaskEnqueuer, log zerolog.Logger) *CreateUser {
	return &CreateUser{users: users, events: events, validate: validator.New(), log: log}
}

// Execute returns the existing user for a known id, otherwise enforces
// email uniqueness and persists a fresh one.
func (uc *CreateUser) Execute(ctx context.Context, input CreateUserInput) (*CreateUserResult, error) {
	if err := validate.Input(uc.validate, input); err != nil {
		return nil, err
	}
	existing, err := uc.users.FindByID(ctx, input.ID)
	if err != nil {
		return nil, failUnexpected(uc.log, "find user", err)
	}
	if existing != nil {
		return &CreateUserResult{User: existing, Existing: true}, nil
	}

	taken, err := uc.users.EmailExists(ctx, input.Email, "")
	if err != nil {
		return nil, failUnexpected(uc.log, "email lookup", err)
	}
	if taken {
		return nil, conflictEmail(input.Email)
	}

	u, err := domain.NewUser(domain.NewUserParams{
		ID:              input.ID,
		Email:           input.Email,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Phone:           input.Phone,
		CountryCode:     input.CountryCode,
		Birthday:        input.Birthday,
		TimeZone:        input.TimeZone,
		Note:            input.Note,
		Description:     input.Description,
		PictureFullPath: input.PictureFullPath,
	})
	if err != nil {
		return nil, err
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, failExpectedOr(uc.log, "create user", err)
	}
	emitUserEvent(ctx, uc.events, uc.log, ports.EventUserCreated, u.ID())
	return &CreateUserResult{User: u}, nil
}
