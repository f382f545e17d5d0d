// Package sink provides EventSink implementations handed to the fanout
// worker: per-connection stream sinks and local projections.
package sink

import (
	"context"
	"log/slog"

	"startuplink/domain/event"
)

// StreamSink bridges the fanout worker and one long-lived connection.
// Consume is called by fanout; the transport handler drains Events and
// pushes frames to its client.
type StreamSink struct {
	Events chan event.DomainEvent
	log    *slog.Logger
}

func NewStreamSink(log *slog.Logger, bufferSize int) *StreamSink {
	return &StreamSink{Events: make(chan event.DomainEvent, bufferSize), log: log}
}

// Consume forwards the event to the connection's channel. A full buffer
// means the client is not keeping up; the event is dropped because the next
// snapshot supersedes it anyway (snapshots are full state, not deltas).
func (s *StreamSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.Events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		s.log.Debug("Stream sink backpressure, dropping event",
			"conversation", e.ConversationID())
		return nil
	}
}
