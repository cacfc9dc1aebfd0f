package ports

import (
	"context"
	"time"
)

// Lifecycle event types enqueued by the use-cases.
const (
	EventBusinessCreated = "business.created"
	EventBusinessUpdated = "business.updated"
	EventBusinessDeleted = "business.deleted"
	EventUserCreated     = "user.created"
	EventUserUpdated     = "user.updated"
)

// LifecycleEvent describes a state change on an aggregate, delivered to
// external consumers (webhooks) after the fact. Delivery is best-effort;
// use-cases never fail because an event could not be enqueued.
type LifecycleEvent struct {
	ID            string    `json:"id"`
	Event         string    `json:"event"`
	AggregateType string    `json:"aggregate_type"`
	AggregateID   string    `json:"aggregate_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// TaskEnqueuer hands lifecycle events to the async delivery pipeline.
type TaskEnqueuer interface {
	EnqueueEvent(ctx context.Context, event LifecycleEvent) error
}

// EventEmitter sends lifecycle events to an external endpoint.
type EventEmitter interface {
	Emit(ctx context.Context, event LifecycleEvent) error
}
