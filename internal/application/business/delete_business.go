package business

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/lehi10/tuagenda-sub000/internal/application/ports"
	"github.com/lehi10/tuagenda-sub000/internal/application/validate"
)

// DeleteBusinessInput identifies the business to delete.
type DeleteBusinessInput struct {
	ID int64 `validate:"required,gt=0"`
}

// DeleteBusinessResult is the (empty) payload of a successful delete.
type DeleteBusinessResult struct{}

// DeleteBusiness removes a business by id. Deletion is a repository
// operation on an id, not an entity method.
type DeleteBusiness struct {
	businesses ports.BusinessRepository
	events     ports.TaskEnqueuer
	validate   *validator.Validate
	log        zerolog.Logger
}

// NewDeleteBusiness builds the use-case.
func NewDeleteBusiness(businesses ports.BusinessRepository, events ports.TaskEnqueuer, log zerolog.Logger) *DeleteBusiness {
	return &DeleteBusiness{businesses: businesses, events: events, validate: validator.New(), log: log}
}

// Execute checks existence and deletes.
func (uc *DeleteBusiness) Execute(ctx context.Context, input DeleteBusinessInput) (*DeleteBusinessResult, error) {
	if err := validate.Input(uc.validate, input); err != nil {
		return nil, err
	}
	exists, err := uc.businesses.Exists(ctx, input.ID)
	if err != nil {
		return nil, failUnexpected(uc.log, "existence check", err)
	}
	if !exists {
		return nil, notFoundBusiness()
	}
	if err := uc.businesses.Delete(ctx, input.ID); err != nil {
		return nil, failUnexpected(uc.log, "delete business", err)
	}
	emitBusinessEvent(ctx, uc.events, uc.log, ports.EventBusinessDeleted, input.ID)
	return &DeleteBusinessResult{}, nil
}
