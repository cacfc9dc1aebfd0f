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

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// ListUsersInput narrows and paginates the listing. When IDs is set the
// other filters are ignored and the named users are returned.
type ListUsersInput struct {
	IDs         []string `validate:"omitempty,dive,required"`
	Statuses    []string `validate:"omitempty,dive,oneof=hidden visible disabled blocked"`
	Search      string   `validate:"omitempty,max=255"`
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int `validate:"omitempty,gte=0,lte=100"`
	Offset      int `validate:"omitempty,gte=0"`
}

// ListUsersResult carries one page plus the filter-wide total.
type ListUsersResult struct {
	Users []*domain.User
	Total int64
}

// ListUsers is the read-only listing with filters.
type ListUsers struct {
	users    ports.UserRepository
	validate *validator.Validate
	log      zerolog.Logger
}

// NewListUsers builds the use-case.
func NewListUsers(users ports.UserRepository, log zerolog.Logger) *ListUsers {
	return &ListUsers{users: users, validate: validator.New(), log: log}
}

// Execute runs FindAll and Count with the identical filter.
func (uc *ListUsers) Execute(ctx context.Context, input ListUsersInput) (*ListUsersResult, error) {
	if err := validate.Input(uc.validate, input); err != nil {
		return nil, err
	}
	if len(input.IDs) > 0 {
		items, err := uc.users.FindByIDs(ctx, input.IDs)
		if err != nil {
			return nil, failUnexpected(uc.log, "list users by ids", err)
		}
		return &ListUsersResult{Users: items, Total: int64(len(items))}, nil
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	statuses := make([]domain.UserStatus, 0, len(input.Statuses))
	for _, s := range input.Statuses {
		statuses = append(statuses, domain.UserStatus(s))
	}
	filter := ports.UserFilter{
		Statuses:    statuses,
		Search:      input.Search,
		CreatedFrom: input.CreatedFrom,
		CreatedTo:   input.CreatedTo,
		Limit:       limit,
		Offset:      input.Offset,
	}
	items, err := uc.users.FindAll(ctx, filter)
	if err != nil {
		return nil, failUnexpected(uc.log, "list users", err)
	}
	total, err := uc.users.Count(ctx, filter)
	if err != nil {
		return nil, failUnexpected(uc.log, "count users", err)
	}
	return &ListUsersResult{Users: items, Total: total}, nil
}
