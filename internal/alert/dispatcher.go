package alert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tahaayman1/Bot-termux/internal/metrics"
	"github.com/tahaayman1/Bot-termux/internal/monitor"
	"github.com/tahaayman1/Bot-termux/internal/transport"
)

// Dispatcher delivers formatted alerts to the configured destination.
// Alerts are best-effort: a rate-limited send gets one retry against
// Saved Messages after the demanded wait, anything else is logged and
// dropped.
type Dispatcher struct {
	sender    transport.Sender
	state     *monitor.State
	collector *metrics.Collector
}

// NewDispatcher creates an alert dispatcher.
func NewDispatcher(sender transport.Sender, state *monitor.State, collector *metrics.Collector) *Dispatcher {
	return &Dispatcher{sender: sender, state: state, collector: collector}
}

// Dispatch sends one alert. The flood-wait sleep blocks only this call;
// no locks are held while waiting.
func (d *Dispatcher) Dispatch(ctx context.Context, text string) error {
	dest := transport.Saved()
	if id := d.state.AlertChannel(); id != 0 {
		dest = transport.Chat(id)
	}

	err := d.sender.SendMessage(ctx, dest, text)
	if err == nil {
		d.collector.IncAlertsSent()
		return nil
	}

	if wait, ok := transport.AsFloodWait(err); ok {
		// A matched alert is never silently dropped on rate limit: wait
		// out the demanded pause, then fall back to Saved Messages.
		slog.Warn("Rate limited while sending alert, waiting", "wait", wait, "destination", dest.String())
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		if err := d.sender.SendMessage(ctx, transport.Saved(), text); err != nil {
			slog.Error("Failed to send alert after flood wait", "error", err)
			return fmt.Errorf("failed to send alert after flood wait: %w", err)
		}
		d.collector.IncAlertsSent()
		return nil
	}

	slog.Error("Failed to send alert, dropping", "destination", dest.String(), "error", err)
	return fmt.Errorf("failed to send alert: %w", err)
}
