// Package user holds the application use-cases for the User aggregate.
// Create is idempotent by id: the external identity provider re-issues a
// create call on every login and must get the existing account back
// instead of a duplicate conflict.
package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lehi10/tuagenda-sub000/internal/application/ports"
	domerrors "github.com/lehi10/tuagenda-sub000/internal/domain/errors"
)

const msgUserNotFound = "User not found"

func notFoundUser() error {
	return domerrors.NotFound(msgUserNotFound)
}

func conflictEmail(email string) error {
	return domerrors.Conflict("user with email %q already exists", email)
}

func failUnexpected(log zerolog.Logger, op string, err error) error {
	log.Error().Err(err).Str("op", op).Msg("user use-case failed")
	return domerrors.Unexpected(err)
}

func failExpectedOr(log zerolog.Logger, op string, err error) error {
	if domerrors.IsExpected(err) {
		return err
	}
	return failUnexpected(log, op, err)
}

func emitUserEvent(ctx context.Context, events ports.TaskEnqueuer, log zerolog.Logger, event, id string) {
	if events == nil {
		return
	}
	err := events.EnqueueEvent(ctx, ports.LifecycleEvent{
		ID:            uuid.NewString(),
		Event:         event,
		AggregateType: "user",
		AggregateID:   id,
		OccurredAt:    time.Now(),
	})
	if err != nil {
		log.Warn().Err(err).Str("event", event).Str("user_id", id).Msg("enqueue lifecycle event failed")
	}
}
