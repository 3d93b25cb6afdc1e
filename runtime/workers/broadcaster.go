package workers

import (
	"conference-lab/contract"
	"conference-lab/domain/event"
	"context"
	"log/slog"
	"time"
)

// Broadcaster delivers conference state-change events to every connected
// client sink.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// ordering across sessions, durability, or retries. Broadcaster is not a
// message broker: the durable record lives in the session store, events
// only tell clients to react.
//
// Broadcaster is safe for concurrent use by multiple goroutines.
type Broadcaster struct {
	Log         *slog.Logger
	Name        contract.WorkerName
	Events      chan event.DomainEvent
	registry    contract.IRegistry
	sinkTimeout time.Duration
}

func NewBroadcaster(log *slog.Logger, registry contract.IRegistry, bufferSize int, sinkTimeout time.Duration) *Broadcaster {
	return &Broadcaster{
		Log:         log,
		Events:      make(chan event.DomainEvent, bufferSize),
		registry:    registry,
		sinkTimeout: sinkTimeout,
	}
}

// Publish hands an event to the broadcast loop without blocking the
// caller. The coordinator publishes strictly after its store mutation
// committed; a full buffer drops the event rather than stall a mutation
// that already durably applied.
func (w *Broadcaster) Publish(e event.DomainEvent) {
	select {
	case w.Events <- e:
	default:
		w.Log.Warn("Broadcast buffer full, dropping event", "event", e.Name(), "target", e.TargetID())
	}
}

func (w *Broadcaster) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-w.Events:
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.Log.Debug("Context done, stopping broadcast loop")
			return nil
		}
	}
}

// Fanout One delivery attempt per connected sink. A failing or slow sink
// only loses its own copy.
func (w *Broadcaster) Fanout(ctx context.Context, evt event.DomainEvent) {
	sinks := w.registry.Sinks()
	for _, sink := range sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
		if err := sink.Consume(sinkCtx, evt); err != nil {
			w.Log.Debug("Sink rejected event", "event", evt.Name(), "error", err)
		}
		cancel()
	}
}
