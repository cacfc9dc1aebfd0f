package business

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

// ListBusinessesInput narrows and paginates the listing. When IDs is set
// the other filters are ignored and the named businesses are returned.
type ListBusinessesInput struct {
	IDs         []int64  `validate:"omitempty,dive,gt=0"`
	Statuses    []string `validate:"omitempty,dive,oneof=active inactive suspended"`
	Search      string   `validate:"omitempty,max=255"`
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int `validate:"omitempty,gte=0,lte=100"`
	Offset      int `validate:"omitempty,gte=0"`
}

// ListBusinessesResult carries one page plus the total count for the same
// filter, computed independently of pagination.
type ListBusinessesResult struct {
	Businesses []*domain.Business
	Total      int64
}

// ListBusinesses is the read-only listing with filters.
type ListBusinesses struct {
	businesses ports.BusinessRepository
	validate   *validator.Validate
	log        zerolog.Logger
}

// NewListBusinesses builds the use-case.
func NewListBusinesses(businesses ports.BusinessRepository, log zerolog.Logger) *ListBusinesses {
	return &ListBusinesses{businesses: businesses, validate: validator.New(), log: log}
}

// Execute runs FindAll and Count with the identical filter.
func (uc *ListBusinesses) Execute(ctx context.Context, input ListBusinessesInput) (*ListBusinessesResult, error) {
	if err := validate.Input(uc.validate, input); err != nil {
		return nil, err
	}
	if len(input.IDs) > 0 {
		items, err := uc.businesses.FindByIDs(ctx, input.IDs)
		if err != nil {
			return nil, failUnexpected(uc.log, "list businesses by ids", err)
		}
		return &ListBusinessesResult{Businesses: items, Total: int64(len(items))}, nil
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	statuses := make([]domain.BusinessStatus, 0, len(input.Statuses))
	for _, s := range input.Statuses {
		statuses = append(statuses, domain.BusinessStatus(s))
	}
	filter := ports.BusinessFilter{
		Statuses:    statuses,
		Search:      input.Search,
		CreatedFrom: input.CreatedFrom,
		CreatedTo:   input.CreatedTo,
		Limit:       limit,
		Offset:      input.Offset,
	}
	items, err := uc.businesses.FindAll(ctx, filter)
	if err != nil {
		return nil, failUnexpected(uc.log, "list businesses", err)
	}
	total, err := uc.businesses.Count(ctx, filter)
	if err != nil {
		return nil, failUnexpected(uc.log, "count businesses", err)
	}
	return &ListBusinessesResult{Businesses: items, Total: total}, nil
}
