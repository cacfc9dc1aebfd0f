package business

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/lehi10/tuagenda-sub000/internal/application/ports"
	"github.com/lehi10/tuagenda-sub000/internal/application/validate"
	"github.com/lehi10/tuagenda-sub000/internal/domain"
)

// CreateBusinessInput is the raw input for CreateBusiness. The use-case
// validates it; callers must not pre-validate.
type CreateBusinessInput struct {
	Slug        string   `validate:"required,max=100"`
	Title       string   `validate:"required,max=255"`
	Email       string   `validate:"required,email,max=254"`
	Phone       string   `validate:"required,max=32"`
	Website     string   `validate:"omitempty,url,max=255"`
	Address     string   `validate:"required,max=255"`
	City        string   `validate:"required,max=100"`
	Country     string   `validate:"required,max=100"`
	State       string   `validate:"omitempty,max=100"`
	PostalCode  string   `validate:"omitempty,max=20"`
	Latitude    *float64 `validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `validate:"omitempty,gte=-180,lte=180"`
	Domain      string   `validate:"omitempty,max=255"`
	Logo        string   `validate:"omitempty,max=255"`
	CoverImage  string   `validate:"omitempty,max=255"`
	Description string   `validate:"omitempty,max=2000"`
	TimeZone    string   `validate:"required,max=64"`
	Locale      string   `validate:"required,max=16"`
	Currency    string   `validate:"required,max=8"`
}

// CreateBusinessResult carries the persisted business, now with an id.
type CreateBusinessResult struct {
	Business *domain.Business
}

// CreateBusiness registers a new tenant. The slug uniqueness check here is
// check-then-act; the storage unique constraint backs it up and the
// resulting conflict is reported the same way.
type CreateBusiness struct {
	businesses ports.BusinessRepository
	events     ports.TaskEnqueuer
	validate   *validator.Validate
	log        zerolog.Logger
}

// NewCreateBusiness builds the use-case.
func NewCreateBusiness(businesses ports.BusinessRepository, events ports.TaskEnqueuer, log zerolog.Logger) *CreateBusiness {
	return &CreateBusiness{businesses: businesses, events: events, validate: validator.New(), log: log}
}

// Execute validates input, enforces slug uniqueness, constructs the entity
// and persists it.
func (uc *CreateBusiness) Execute(ctx context.Context, input CreateBusinessInput) (*CreateBusinessResult, error) {
	if err := validate.Input(uc.validate, input); err != nil {
		return nil, err
	}
	taken, err := uc.businesses.SlugExists(ctx, input.Slug, 0)
	if err != nil {
		return nil, failUnexpected(uc.log, "slug lookup", err)
	}
	if taken {
		return nil, conflictSlug(input.Slug)
	}
	b, err := domain.NewBusiness(domain.NewBusinessParams{
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
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Domain:      input.Domain,
		Logo:        input.Logo,
		CoverImage:  input.CoverImage,
		Description: input.Description,
		TimeZone:    input.TimeZone,
		Locale:      input.Locale,
		Currency:    input.Currency,
	})
	if err != nil {
		return nil, err
	}
	created, err := uc.businesses.Create(ctx, b)
	if err != nil {
		return nil, failExpectedOr(uc.log, "create business", err)
	}
	emitBusinessEvent(ctx, uc.events, uc.log, ports.EventBusinessCreated, created.ID())
	return &CreateBusinessResult{Business: created}, nil
}
