package business

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/lehi10/tuagenda-sub000/internal/application/ports"
	"github.com/lehi10/tuagenda-sub000/internal/application/validate"
	"github.com/lehi10/tuagenda-sub000/internal/domain"
	domerrors "github.com/lehi10/tuagenda-sub000/internal/domain/errors"
)

// UpdateBusinessInput is a partial update: nil fields are untouched, a
// present-but-empty value errors for required fields. Latitude and
// longitude must be provided together.
type UpdateBusinessInput struct {
	ID          int64    `validate:"required,gt=0"`
	Slug        *string  `validate:"omitempty,max=100"`
	Title       *string  `validate:"omitempty,max=255"`
	Email       *string  `validate:"omitempty,email,max=254"`
	Phone       *string  `validate:"omitempty,max=32"`
	Website     *string  `validate:"omitempty,max=255"`
	Address     *string  `validate:"omitempty,max=255"`
	City        *string  `validate:"omitempty,max=100"`
	Country     *string  `validate:"omitempty,max=100"`
	State       *string  `validate:"omitempty,max=100"`
	PostalCode  *string  `validate:"omitempty,max=20"`
	Description *string  `validate:"omitempty,max=2000"`
	TimeZone    *string  `validate:"omitempty,max=64"`
	Locale      *string  `validate:"omitempty,max=16"`
	Currency    *string  `validate:"omitempty,max=8"`
	Logo        *string  `validate:"omitempty,max=255"`
	CoverImage  *string  `validate:"omitempty,max=255"`
	Domain      *string  `validate:"omitempty,max=255"`
	Latitude    *float64 `validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `validate:"omitempty,gte=-180,lte=180"`
}

// UpdateBusinessResult carries the updated business.
type UpdateBusinessResult struct {
	Business *domain.Business
}

// UpdateBusiness loads the aggregate, re-checks slug uniqueness with
// self-exclusion when the slug changes and applies only the field groups
// present in the input.
type UpdateBusiness struct {
	businesses ports.BusinessRepository
	events     ports.TaskEnqueuer
	validate   *validator.Validate
	log        zerolog.Logger
}

// NewUpdateBusiness builds the use-case.
func NewUpdateBusiness(businesses ports.BusinessRepository, events ports.TaskEnqueuer, log zerolog.Logger) *UpdateBusiness {
	return &UpdateBusiness{businesses: businesses, events: events, validate: validator.New(), log: log}
}

// Execute applies the partial update and persists the result.
func (uc *UpdateBusiness) Execute(ctx context.Context, input UpdateBusinessInput) (*UpdateBusinessResult, error) {
	if err := validate.Input(uc.validate, input); err != nil {
		return nil, err
	}
	if (input.Latitude == nil) != (input.Longitude == nil) {
		return nil, domerrors.Validation("latitude and longitude must be provided together")
	}

	b, err := uc.businesses.FindByID(ctx, input.ID)
	if err != nil {
		return nil, failUnexpected(uc.log, "find business", err)
	}
	if b == nil {
		return nil, notFoundBusiness()
	}

	if input.Slug != nil && *input.Slug != b.Slug() {
		taken, err := uc.businesses.SlugExists(ctx, *input.Slug, input.ID)
		if err != nil {
			return nil, failUnexpected(uc.log, "slug lookup", err)
		}
		if taken {
			return nil, conflictSlug(*input.Slug)
		}
	}

	if info := infoUpdate(input); info != (domain.BusinessInfoUpdate{}) {
		if err := b.UpdateInfo(info); err != nil {
			return nil, err
		}
	}
	if input.Logo != nil || input.CoverImage != nil || input.Domain != nil {
		b.UpdateBranding(domain.BusinessBrandingUpdate{
			Logo:       input.Logo,
			CoverImage: input.CoverImage,
			Domain:     input.Domain,
		})
	}
	if input.Latitude != nil {
		if err := b.UpdateLocation(*input.Latitude, *input.Longitude); err != nil {
			return nil, err
		}
	}

	if err := uc.businesses.Update(ctx, b); err != nil {
		return nil, failExpectedOr(uc.log, "update business", err)
	}
	emitBusinessEvent(ctx, uc.events, uc.log, ports.EventBusinessUpdated, b.ID())
	return &UpdateBusinessResult{Business: b}, nil
}

func infoUpdate(input UpdateBusinessInput) domain.BusinessInfoUpdate {
	return domain.BusinessInfoUpdate{
		Slug:        input.Slug,
		Title:       input.Title,
		Email:       input.Email,
		Phone:       input.Phone,
		Website:     input.Website,
		Address:     input.Address,
		City:        input.City,
		Country:     input.Country,
		State:       input.State,
		PostalCode:  input.PostalCode,
		Description: input.Description,
		TimeZone:    input.TimeZone,
		Locale:      input.Locale,
		Currency:    input.Currency,
	}
}
