package workers

import (
	"context"
	"log/slog"
	"time"

	"startuplink/contract"
	"startuplink/domain"
	"startuplink/domain/event"
	"startuplink/observability"
)

// SnapshotLoader materializes the full ordered result set for a
// conversation. Implemented by the message repository.
type SnapshotLoader func(id domain.ConversationID) ([]domain.Message, error)

// EventFanout turns stored-message events into snapshot deliveries.
//
// For each MessageStored it loads the conversation's current snapshot and
// pushes it to every live subscriber sink, so subscribers always replace
// their rendered list wholesale with store state. Delivery is best-effort
// with no retries; EventFanout is not a message broker.
//
// Permanent sinks (projections, search indexing) receive the raw event.
type EventFanout struct {
	Log            *slog.Logger
	StoredEvents   chan event.DomainEvent
	TelemetryEvent chan event.DomainEvent
	loader         SnapshotLoader
	registry       contract.IRegistry
	permanentSinks []contract.EventSink
	sinkTimeout    time.Duration
	collector      *observability.Collector
}

func NewEventFanout(log *slog.Logger, loader SnapshotLoader, registry contract.IRegistry,
	storedEvents, telemetryEvent chan event.DomainEvent,
	sinkTimeout time.Duration, collector *observability.Collector) *EventFanout {
	return &EventFanout{
		Log:            log,
		StoredEvents:   storedEvents,
		TelemetryEvent: telemetryEvent,
		loader:         loader,
		registry:       registry,
		sinkTimeout:    sinkTimeout,
		collector:      collector,
	}
}

func (w *EventFanout) Add(sinks ...contract.EventSink) *EventFanout {
	w.permanentSinks = append(w.permanentSinks, sinks...)
	return w
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt, ok := <-w.StoredEvents:
			if !ok {
				w.Log.Debug("Channel is closed")
				return nil
			}
			w.Fanout(ctx, evt)
			select {
			case w.TelemetryEvent <- evt:
			default:
				w.collector.IncrTelemetryDropped()
			}
		case <-ctx.Done():
			w.Log.Debug("Context done, stopping fanout")
			return nil
		}
	}
}

// Fanout delivers the raw event to permanent sinks, then a fresh snapshot
// to every live subscriber of the event's conversation. Each sink gets its
// own delivery deadline so one stuck consumer cannot stall the pipeline.
func (w *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	for _, permanent := range w.permanentSinks {
		w.deliver(ctx, permanent, evt)
	}

	subscribers := w.registry.GetSinksForConversation(evt.ConversationID())
	if len(subscribers) == 0 {
		return
	}

	messages, err := w.loader(evt.ConversationID())
	if err != nil {
		w.Log.Error("Snapshot load failed, subscribers skip this update",
			"conversation", evt.ConversationID(), "error", err)
		return
	}
	snapshot := event.Snapshot{Conversation: evt.ConversationID(), Messages: messages}

	for _, subscriber := range subscribers {
		w.deliver(ctx, subscriber, snapshot)
		w.collector.IncrSnapshotsDelivered()
	}
}

func (w *EventFanout) deliver(ctx context.Context, sink contract.EventSink, evt event.DomainEvent) {
	deliveryCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
	defer cancel()
	if err := sink.Consume(deliveryCtx, evt); err != nil {
		w.collector.IncrDeliveryTimeouts()
		w.Log.Debug("Sink delivery failed", "conversation", evt.ConversationID(), "error", err)
	}
}
