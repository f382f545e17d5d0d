package workers

import (
	"context"
	"log/slog"
	"time"

	"startuplink/contract"
	"startuplink/domain/event"
	"startuplink/observability"
)

var _ contract.Worker = (*TelemetryWorker)(nil)

// TelemetryWorker drains the telemetry channel and periodically logs the
// collector snapshot. It sits off the hot path: losing telemetry events is
// acceptable, losing messages is not.
type TelemetryWorker struct {
	log       *slog.Logger
	events    chan event.DomainEvent
	collector *observability.Collector
	interval  time.Duration
}

func NewTelemetryWorker(log *slog.Logger, events chan event.DomainEvent,
	collector *observability.Collector, interval time.Duration) *TelemetryWorker {
	return &TelemetryWorker{log: log, events: events, collector: collector, interval: interval}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping telemetry")
			return nil
		case evt, ok := <-w.events:
			if !ok {
				w.log.Debug("Channel is closed")
				return nil
			}
			if _, isStored := evt.(event.MessageStored); isStored {
				w.collector.IncrMessagesStored()
			}
		case <-ticker.C:
			stats := w.collector.Snapshot()
			w.log.Info("Telemetry",
				"stored", stats.MessagesStored,
				"delivered", stats.SnapshotsDelivered,
				"timeouts", stats.DeliveryTimeouts,
				"sessions", stats.ActiveSessions,
				"cpu_pct", stats.CPUPercent,
				"mem_mb", stats.AllocMemMB)
		}
	}
}
