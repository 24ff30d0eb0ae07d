// Package router receives inbound transport events and routes them to
// the command interpreter or the matching pipeline.
package router

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tahaayman1/Bot-termux/internal/alert"
	"github.com/tahaayman1/Bot-termux/internal/command"
	"github.com/tahaayman1/Bot-termux/internal/database"
	"github.com/tahaayman1/Bot-termux/internal/matcher"
	"github.com/tahaayman1/Bot-termux/internal/metrics"
	"github.com/tahaayman1/Bot-termux/internal/monitor"
	"github.com/tahaayman1/Bot-termux/internal/transport"
)

// Router classifies every inbound event and drives the pipeline. Errors
// are isolated per event: they are logged with a correlation id and
// never stop the update stream.
type Router struct {
	db          *database.DB
	state       *monitor.State
	matcher     *matcher.Matcher
	interpreter *command.Interpreter
	dispatcher  *alert.Dispatcher
	sender      transport.Sender
	collector   *metrics.Collector
}

// New creates the event router.
func New(
	db *database.DB,
	state *monitor.State,
	m *matcher.Matcher,
	interpreter *command.Interpreter,
	dispatcher *alert.Dispatcher,
	sender transport.Sender,
	collector *metrics.Collector,
) *Router {
	return &Router{
		db:          db,
		state:       state,
		matcher:     m,
		interpreter: interpreter,
		dispatcher:  dispatcher,
		sender:      sender,
		collector:   collector,
	}
}

// HandleEvent processes one inbound event. Safe to call concurrently;
// a slow dispatch for one event never blocks another.
func (r *Router) HandleEvent(ctx context.Context, ev transport.Event) {
	r.collector.IncEventsReceived()
	eventID := uuid.NewString()

	if ev.Outgoing {
		r.handleOwnMessage(ctx, ev, eventID)
		return
	}

	if ev.Scope == transport.ScopeGroup || ev.Scope == transport.ScopeChannel {
		r.handleCandidate(ctx, ev, eventID)
	}
}

// handleOwnMessage treats a self-originated message as a potential
// control message. Non-command text is ignored without reply.
func (r *Router) handleOwnMessage(ctx context.Context, ev transport.Event, eventID string) {
	if !command.IsCommandText(ev.Text) {
		return
	}
	cmd, ok := command.Parse(ev.Text)
	if !ok {
		return
	}

	slog.Debug("Command received", "scope", ev.Scope.String(), "chat_id", ev.Origin.ID, "event_id", eventID)
	reply, handled := r.interpreter.Execute(ctx, cmd, ev.Origin, ev.Scope)
	if !handled || reply == "" {
		return
	}

	dest := transport.Saved()
	if ev.Scope != transport.ScopePrivate {
		dest = transport.Chat(ev.Origin.ID)
	}
	if err := r.sender.SendMessage(ctx, dest, reply); err != nil {
		slog.Error("Failed to send command reply", "destination", dest.String(), "error", err, "event_id", eventID)
		r.collector.IncProcessingErrors()
	}
}

// handleCandidate evaluates an inbound group or channel message against
// the rule set and dispatches an alert on a match.
func (r *Router) handleCandidate(ctx context.Context, ev transport.Event, eventID string) {
	if !r.state.Active() {
		slog.Debug("Monitoring off, message ignored", "event_id", eventID)
		return
	}

	text := ev.Text
	if text == "" {
		text = ev.Caption
	}
	if text == "" {
		return
	}

	keywords, err := r.db.ListKeywords(ctx)
	if err != nil {
		slog.Error("Failed to load keywords", "error", err, "event_id", eventID)
		r.collector.IncProcessingErrors()
		return
	}
	if len(keywords) == 0 {
		slog.Warn("No keywords configured, skipping evaluation", "event_id", eventID)
		return
	}

	rules := make([]matcher.Rule, len(keywords))
	for i, kw := range keywords {
		rules[i] = matcher.Rule{Text: kw.Keyword, IsRegex: kw.IsRegex}
	}

	r.collector.IncMessagesEvaluated()
	matched := r.matcher.Match(text, rules)
	if len(matched) == 0 {
		return
	}
	r.collector.IncMessagesMatched()

	slog.Info("Keyword match",
		"chat", ev.Origin.DisplayName(),
		"sender", ev.Sender.DisplayName(),
		"matched", matched,
		"event_id", eventID,
	)

	alertText := alert.Format(ev, matched, time.Now())
	if err := r.dispatcher.Dispatch(ctx, alertText); err != nil {
		r.collector.IncProcessingErrors()
	}
}
