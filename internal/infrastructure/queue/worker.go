package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/lehi10/tuagenda-sub000/internal/application/ports"
)

// Worker drains the lifecycle event queue and hands each event to the
// configured emitter. Call Run() to start.
type Worker struct {
	srv     *asynq.Server
	mux     *asynq.ServeMux
	emitter ports.EventEmitter
	log     zerolog.Logger
}

func NewWorker(redisOpt asynq.RedisClientOpt, emitter ports.EventEmitter, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, emitter: emitter, log: log}
	mux.HandleFunc(TypeLifecycleEvent, w.handleLifecycleEvent)
	return w
}

func (w *Worker) handleLifecycleEvent(ctx context.Context, t *asynq.Task) error {
	var event ports.LifecycleEvent
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		w.log.Error().Err(err).Msg("lifecycle event payload invalid")
		return err
	}
	if err := w.emitter.Emit(ctx, event); err != nil {
		w.log.Warn().
			Err(err).
			Str("event", event.Event).
			Str("aggregate_id", event.AggregateID).
			Msg("lifecycle event delivery failed")
		return err
	}
	w.log.Debug().
		Str("event", event.Event).
		Str("aggregate_type", event.AggregateType).
		Str("aggregate_id", event.AggregateID).
		Msg("lifecycle event delivered")
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
