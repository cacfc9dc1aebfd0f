// Package business holds the application use-cases for the Business
// aggregate. Each use-case validates its raw input, applies business rules
// that need the repository (uniqueness, existence) and delegates invariant
// enforcement to the entity. Use-cases are the error boundary: expected
// failures come back as classified errors with caller-facing messages;
// anything else is logged and wrapped generically.
package business

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lehi10/tuagenda-sub000/internal/application/ports"
	domerrors "github.com/lehi10/tuagenda-sub000/internal/domain/errors"
)

const msgBusinessNotFound = "Business not found"

func notFoundBusiness() error {
	return domerrors.NotFound(msgBusinessNotFound)
}

func conflictSlug(slug string) error {
	return domerrors.Conflict("business with slug %q already exists", slug)
}

// failUnexpected logs the failure with full detail and returns the generic
// non-leaking error.
func failUnexpected(log zerolog.Logger, op string, err error) error {
	log.Error().Err(err).Str("op", op).Msg("business use-case failed")
	return domerrors.Unexpected(err)
}

// failExpectedOr passes through expected errors (e.g. a storage-level
// unique violation already classified as a conflict) and wraps the rest.
func failExpectedOr(log zerolog.Logger, op string, err error) error {
	if domerrors.IsExpected(err) {
		return err
	}
	return failUnexpected(log, op, err)
}

// emitBusinessEvent enqueues a lifecycle event. Best-effort: a failed
// enqueue is logged and never fails the use-case.
func emitBusinessEvent(ctx context.Context, events ports.TaskEnqueuer, log zerolog.Logger, event string, id int64) {
	if events == nil {
		return
	}
	err := events.EnqueueEvent(ctx, ports.LifecycleEvent{
		ID:            uuid.NewString(),
		Event:         event,
		AggregateType: "business",
		AggregateID:   strconv.FormatInt(id, 10),
		OccurredAt:    time.Now(),
	})
	if err != nil {
		log.Warn().Err(err).Str("event", event).Int64("business_id", id).Msg("enqueue lifecycle event failed")
	}
}
