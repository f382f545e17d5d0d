// Package observability aggregates runtime telemetry for the debug surface.
package observability

import (
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Stats is the point-in-time telemetry snapshot served on the debug
// endpoint and logged by the telemetry worker.
type Stats struct {
	MessagesStored     uint64  `json:"messages_stored"`
	SnapshotsDelivered uint64  `json:"snapshots_delivered"`
	DeliveryTimeouts   uint64  `json:"delivery_timeouts"`
	TelemetryDropped   uint64  `json:"telemetry_dropped"`
	ActiveSessions     int     `json:"active_sessions"`
	CPUPercent         float64 `json:"cpu_percent"`
	RAMPercent         float32 `json:"ram_percent"`
	AllocMemMB         uint64  `json:"alloc_mem_mb"`
	NumGC              uint32  `json:"num_gc"`
	CollectedAt        string  `json:"collected_at"`
}

// Collector owns the atomic counters the runtime increments on its hot
// paths and folds in process-level metrics when a snapshot is requested.
type Collector struct {
	log *slog.Logger
	mu  sync.Mutex

	messagesStored     uint64
	snapshotsDelivered uint64
	deliveryTimeouts   uint64
	telemetryDropped   uint64

	sessionsFn func() int
	proc       *process.Process
}

// NewCollector builds a collector; sessionsFn reports live registry
// sessions and may be nil.
func NewCollector(log *slog.Logger, sessionsFn func() int) *Collector {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Debug("Error while retrieving own process", "err", err)
	}
	return &Collector{log: log, sessionsFn: sessionsFn, proc: proc}
}

func (c *Collector) IncrMessagesStored()     { atomic.AddUint64(&c.messagesStored, 1) }
func (c *Collector) IncrSnapshotsDelivered() { atomic.AddUint64(&c.snapshotsDelivered, 1) }
func (c *Collector) IncrDeliveryTimeouts()   { atomic.AddUint64(&c.deliveryTimeouts, 1) }
func (c *Collector) IncrTelemetryDropped()   { atomic.AddUint64(&c.telemetryDropped, 1) }

// Snapshot folds counters and process metrics into one Stats value.
func (c *Collector) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := Stats{
		MessagesStored:     atomic.LoadUint64(&c.messagesStored),
		SnapshotsDelivered: atomic.LoadUint64(&c.snapshotsDelivered),
		DeliveryTimeouts:   atomic.LoadUint64(&c.deliveryTimeouts),
		TelemetryDropped:   atomic.LoadUint64(&c.telemetryDropped),
		CollectedAt:        time.Now().UTC().Format(time.RFC3339),
	}
	if c.sessionsFn != nil {
		stats.ActiveSessions = c.sessionsFn()
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	stats.AllocMemMB = mem.Alloc / 1024 / 1024
	stats.NumGC = mem.NumGC

	if c.proc != nil {
		if cpu, err := c.proc.CPUPercent(); err == nil {
			stats.CPUPercent = cpu
		} else {
			c.log.Debug("Error while finding process cpu usage", "err", err)
		}
		if ram, err := c.proc.MemoryPercent(); err == nil {
			stats.RAMPercent = ram
		} else {
			c.log.Debug("Error while finding process ram usage", "err", err)
		}
	}
	return stats
}
