// Package metrics collects in-process counters for the monitor and
// reports them periodically to the log. A snapshot is also surfaced
// through the /status command.
package metrics

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// DefaultReportInterval is how often the collector writes a summary line
// to the log.
const DefaultReportInterval = 5 * time.Minute

// Collector accumulates counters across concurrent event handlers.
type Collector struct {
	startedAt time.Time

	eventsReceived    atomic.Uint64
	messagesEvaluated atomic.Uint64
	messagesMatched   atomic.Uint64
	alertsSent        atomic.Uint64
	processingErrors  atomic.Uint64
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	StartedAt         time.Time
	EventsReceived    uint64
	MessagesEvaluated uint64
	MessagesMatched   uint64
	AlertsSent        uint64
	ProcessingErrors  uint64
}

// NewCollector creates a collector with the start time set to now.
func NewCollector() *Collector {
	return &Collector{startedAt: time.Now()}
}

// IncEventsReceived records one inbound event.
func (c *Collector) IncEventsReceived() { c.eventsReceived.Add(1) }

// IncMessagesEvaluated records one message run through the matcher.
func (c *Collector) IncMessagesEvaluated() { c.messagesEvaluated.Add(1) }

// IncMessagesMatched records one message that matched at least one rule.
func (c *Collector) IncMessagesMatched() { c.messagesMatched.Add(1) }

// IncAlertsSent records one successfully delivered alert.
func (c *Collector) IncAlertsSent() { c.alertsSent.Add(1) }

// IncProcessingErrors records one per-event failure.
func (c *Collector) IncProcessingErrors() { c.processingErrors.Add(1) }

// Snapshot returns a copy of the current counter values.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		StartedAt:         c.startedAt,
		EventsReceived:    c.eventsReceived.Load(),
		MessagesEvaluated: c.messagesEvaluated.Load(),
		MessagesMatched:   c.messagesMatched.Load(),
		AlertsSent:        c.alertsSent.Load(),
		ProcessingErrors:  c.processingErrors.Load(),
	}
}

// Report logs a counter summary every interval until the context ends.
func (c *Collector) Report(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultReportInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s := c.Snapshot()
			slog.Info("Monitor counters",
				"uptime", time.Since(s.StartedAt).Round(time.Second),
				"events_received", s.EventsReceived,
				"messages_evaluated", s.MessagesEvaluated,
				"messages_matched", s.MessagesMatched,
				"alerts_sent", s.AlertsSent,
				"processing_errors", s.ProcessingErrors,
			)
		}
	}
}
