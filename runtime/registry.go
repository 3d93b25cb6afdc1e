// Package runtime handles client registration, event broadcast and worker
// supervision. It orchestrates the coordinator without containing business
// logic or domain rules.
package runtime

import (
	"conference-lab/contract"
	"sync"
)

// Registry tracks the delivery sink of every connected client, keyed by
// the transport connection id. Delivery is broadcast-all: the coordinator
// never targets a single connection, clients filter on the target id
// embedded in each event.
type Registry struct {
	mu          sync.RWMutex
	Connections map[string]contract.EventSink
}

func NewRegistry() *Registry {
	return &Registry{
		Connections: make(map[string]contract.EventSink),
	}
}

// Sinks snapshots the currently connected sinks. The copy keeps the lock
// out of the delivery path, a slow consumer never blocks registration.
func (r *Registry) Sinks() []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sinks := make([]contract.EventSink, 0, len(r.Connections))
	for _, sink := range r.Connections {
		sinks = append(sinks, sink)
	}
	return sinks
}

// Register records a client's active connection. Re-registering the same
// connection id replaces the previous sink.
func (r *Registry) Register(connectionID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Connections[connectionID] = sink
}

// Unregister drops a disconnected client so broadcasts stop referencing
// its sink.
func (r *Registry) Unregister(connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Connections, connectionID)
}
