package business

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/lehi10/tuagenda-sub000/internal/application/ports"
	"github.com/lehi10/tuagenda-sub000/internal/application/validate"
	"github.com/lehi10/tuagenda-sub000/internal/domain"
)

// GetBusinessInput identifies the business to fetch.
type GetBusinessInput struct {
	ID int64 `validate:"required,gt=0"`
}

// GetBusinessResult carries the found business.
type GetBusinessResult struct {
	Business *domain.Business
}

// GetBusiness is the read-only lookup by id.
type GetBusiness struct {
	businesses ports.BusinessRepository
	validate   *validator.Validate
	log        zerolog.Logger
}

// NewGetBusiness builds the use-case.
func NewGetBusiness(businesses ports.BusinessRepository, log zerolog.Logger) *GetBusiness {
	return &GetBusiness{businesses: businesses, validate: validator.New(), log: log}
}

// Execute returns the business or a not-found error.
func (uc *GetBusiness) Execute(ctx context.Context, input GetBusinessInput) (*GetBusinessResult, error) {
	if err := validate.Input(uc.validate, input); err != nil {
		return nil, err
	}
	b, err := uc.businesses.FindByID(ctx, input.ID)
	if err != nil {
		return nil, failUnexpected(uc.log, "find business", err)
	}
	if b == nil {
		return nil, notFoundBusiness()
	}
	return &GetBusinessResult{Business: b}, nil
}

// GetBusinessBySlugInput identifies the business by its tenant key.
type GetBusinessBySlugInput struct {
	Slug string `validate:"required,max=100"`
}

// ExecuteBySlug returns the business owning the slug or a not-found error.
func (uc *GetBusiness) ExecuteBySlug(ctx context.Context, input GetBusinessBySlugInput) (*GetBusinessResult, error) {
	if err := validate.Input(uc.validate, input); err != nil {
		return nil, err
	}
	b, err := uc.businesses.FindBySlug(ctx, input.Slug)
	if err != nil {
		return nil, failUnexpected(uc.log, "find business by slug", err)
	}
	if b == nil {
		return nil, notFoundBusiness()
	}
	return &GetBusinessResult{Business: b}, nil
}
