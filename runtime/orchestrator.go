// Package runtime is the in-process realisation of the realtime document
// store: durable ordered append, snapshot query, and push notification of
// changes to registered subscriber sinks. It orchestrates the system
// without containing domain rules.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"startuplink/contract"
	"startuplink/domain"
	"startuplink/domain/event"
	"startuplink/errors"
	"startuplink/moderation"
	"startuplink/observability"
	"startuplink/repositories"
	"startuplink/runtime/workers"
)

var _ contract.Store = (*Orchestrator)(nil)

type Orchestrator struct {
	mu              sync.Mutex
	log             *slog.Logger
	repository      repositories.IMessageRepository
	registry        *Registry
	moderator       *moderation.Moderator
	supervisor      contract.ISupervisor
	collector       *observability.Collector
	storedEvents    chan event.DomainEvent
	telemetryEvents chan event.DomainEvent
	permanentSinks  []contract.EventSink
	sinkTimeout     time.Duration
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor,
	registry *Registry, repository repositories.IMessageRepository,
	moderator *moderation.Moderator, collector *observability.Collector,
	bufferSize int, sinkTimeout time.Duration) *Orchestrator {
	return &Orchestrator{
		log:             log,
		repository:      repository,
		registry:        registry,
		moderator:       moderator,
		supervisor:      supervisor,
		collector:       collector,
		storedEvents:    make(chan event.DomainEvent, bufferSize),
		telemetryEvents: make(chan event.DomainEvent, bufferSize),
		sinkTimeout:     sinkTimeout,
	}
}

// AddSinks registers permanent sinks (projections, search indexing) that
// receive every stored event. Must be called before Start.
func (o *Orchestrator) AddSinks(sinks ...contract.EventSink) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.permanentSinks = append(o.permanentSinks, sinks...)
}

// Append is the store's write operation. The body is masked, persisted with
// a store-assigned creation marker, and the stored event is handed to the
// fanout pipeline which echoes fresh snapshots to live subscribers.
//
// The append itself is synchronous: a nil return means the record is
// durable. Delivery to subscribers is asynchronous and best-effort.
func (o *Orchestrator) Append(ctx context.Context, cmd domain.SendMessage) error {
	body := strings.TrimSpace(cmd.Body)
	if body == "" {
		return errors.ErrEmptyMessage
	}
	if cmd.Conversation.IsZero() {
		return errors.ErrNoConversation
	}

	if o.moderator != nil {
		masked, found := o.moderator.Mask(body)
		if len(found) > 0 {
			o.log.Warn("Masked forbidden words",
				"conversation", cmd.Conversation, "count", len(found))
		}
		body = masked
	}

	sentAt := cmd.SentAt
	if sentAt.IsZero() {
		sentAt = time.Now().UTC()
	}

	message := domain.NewMessage(cmd.Conversation, cmd.SenderID, cmd.ReceiverID, body, sentAt)

	// Telemetry sees the draft before persistence; losing it is acceptable.
	select {
	case o.telemetryEvents <- event.MessageDrafted{
		ID:           message.ID,
		Conversation: message.Conversation,
		SenderID:     message.SenderID,
		ReceiverID:   message.ReceiverID,
		Body:         message.Body,
		SentAt:       message.SentAt,
	}:
	default:
		o.collector.IncrTelemetryDropped()
	}

	stored, err := o.repository.Append(message)
	if err != nil {
		return fmt.Errorf("append failed: %w", err)
	}

	select {
	case o.storedEvents <- event.MessageStored{Message: stored}:
	case <-ctx.Done():
		// Persisted but not fanned out; subscribers catch up on the
		// next stored event or on re-subscribe.
		return nil
	default:
		o.log.Warn("Stored-event buffer full, delivery lags",
			"conversation", cmd.Conversation)
	}
	return nil
}

// Snapshot is the store's query operation: the full ordered result set for
// one conversation, ascending by timestamp.
func (o *Orchestrator) Snapshot(id domain.ConversationID) ([]domain.Message, error) {
	return o.repository.Conversation(id)
}

// Subscribe opens a live feed for one participant on one conversation and
// seeds the sink with the current snapshot so the subscriber renders
// history immediately, before any new append occurs.
func (o *Orchestrator) Subscribe(participantID domain.Participant, id domain.ConversationID, sink contract.EventSink) {
	o.registry.Subscribe(participantID, id, sink)

	messages, err := o.repository.Conversation(id)
	if err != nil {
		o.log.Error("Initial snapshot load failed", "conversation", id, "error", err)
		return
	}
	seedCtx, cancel := context.WithTimeout(context.Background(), o.sinkTimeout)
	defer cancel()
	if err := sink.Consume(seedCtx, event.Snapshot{Conversation: id, Messages: messages}); err != nil {
		o.log.Debug("Initial snapshot delivery failed", "conversation", id, "error", err)
	}
}

// Unsubscribe releases a live feed handle. Every teardown path must come
// through here, otherwise the sink keeps receiving snapshots ("ghost
// updates") after the view moved on. The sink identifies which feed is
// being released: a teardown racing behind a replacement subscription
// leaves the replacement alone.
func (o *Orchestrator) Unsubscribe(participantID domain.Participant, id domain.ConversationID, sink contract.EventSink) {
	o.registry.Unsubscribe(participantID, id, sink)
}

// Start wires the fanout and telemetry workers under the supervisor and
// launches supervision in the background. It returns once the workers are
// scheduled; Stop triggers the graceful shutdown.
func (o *Orchestrator) Start(ctx context.Context, telemetryInterval time.Duration) {
	o.mu.Lock()
	fanout := workers.NewEventFanout(
		o.log,
		o.repository.Conversation,
		o.registry,
		o.storedEvents,
		o.telemetryEvents,
		o.sinkTimeout,
		o.collector,
	).Add(o.permanentSinks...)

	telemetry := workers.NewTelemetryWorker(o.log, o.telemetryEvents, o.collector, telemetryInterval)

	o.supervisor.Add(fanout, telemetry)
	o.mu.Unlock()

	o.log.Info("Starting store runtime and all supervised workers")
	go o.supervisor.Run(ctx)
}

// Stop initiates a graceful shutdown of the store runtime by cancelling
// the supervision context; workers drain and exit.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting store runtime shutdown")
	o.supervisor.Stop()
}
