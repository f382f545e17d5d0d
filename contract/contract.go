//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"startuplink/domain"
	"startuplink/domain/event"
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

type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IRegistry keys live feeds by (participant, conversation). Unsubscribe
// takes the sink being released so a stale teardown cannot remove a feed
// that has already been replaced.
type IRegistry interface {
	GetSinksForConversation(id domain.ConversationID) []EventSink
	Subscribe(participantID domain.Participant, id domain.ConversationID, sink EventSink)
	Unsubscribe(participantID domain.Participant, id domain.ConversationID, sink EventSink)
}

// Store is the surface the messaging view talks to: the live-query side
// (Subscribe/Unsubscribe via IRegistry semantics), the append side, and the
// snapshot query used to seed a fresh subscription.
type Store interface {
	Append(ctx context.Context, cmd domain.SendMessage) error
	Snapshot(id domain.ConversationID) ([]domain.Message, error)
	Subscribe(participantID domain.Participant, id domain.ConversationID, sink EventSink)
	Unsubscribe(participantID domain.Participant, id domain.ConversationID, sink EventSink)
}
