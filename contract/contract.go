//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"conference-lab/domain/event"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is one connected client's delivery channel.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IRegistry tracks connected clients by their transport connection id.
// Notifications are broadcast to every sink; clients self-filter on the
// target id embedded in the event.
type IRegistry interface {
	Sinks() []EventSink
	Register(connectionID string, sink EventSink)
	Unregister(connectionID string)
}

// INotifier accepts events for broadcast. Publication is fire-and-forget
// and must only happen after the corresponding store mutation committed.
type INotifier interface {
	Publish(e event.DomainEvent)
}

// IRoomIDGenerator produces a collision-avoiding room identifier on
// demand. The coordinator depends on it but does not own its algorithm.
type IRoomIDGenerator interface {
	Generate() string
}

// INameResolver supplies display names for the denormalized session view.
// Identity management is owned elsewhere; this is a read-only collaborator.
type INameResolver interface {
	DisplayName(userID string) string
}
