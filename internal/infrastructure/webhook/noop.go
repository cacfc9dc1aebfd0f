package webhook

import (
	"context"

	"github.com/lehi10/tuagenda-sub000/internal/application/ports"
)

// NoopEmitter discards lifecycle events when WEBHOOK_URL is not set.
type NoopEmitter struct{}

// NewNoopEmitter returns an EventEmitter that discards all events.
func NewNoopEmitter() *NoopEmitter {
	return &NoopEmitter{}
}

// Emit implements ports.EventEmitter.
func (e *NoopEmitter) Emit(ctx context.Context, event ports.LifecycleEvent) error {
	return nil
}

var _ ports.EventEmitter = (*NoopEmitter)(nil)
