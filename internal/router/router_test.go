package router

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/tahaayman1/Bot-termux/internal/alert"
	"github.com/tahaayman1/Bot-termux/internal/command"
	"github.com/tahaayman1/Bot-termux/internal/database"
	"github.com/tahaayman1/Bot-termux/internal/matcher"
	"github.com/tahaayman1/Bot-termux/internal/metrics"
	"github.com/tahaayman1/Bot-termux/internal/monitor"
	"github.com/tahaayman1/Bot-termux/internal/transport"
)

type sentMessage struct {
	dest transport.Destination
	text string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (f *fakeSender) SendMessage(_ context.Context, dest transport.Destination, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{dest: dest, text: text})
	return nil
}

func (f *fakeSender) calls() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

type fixture struct {
	router    *Router
	db        *database.DB
	state     *monitor.State
	sender    *fakeSender
	collector *metrics.Collector
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	state := monitor.NewState()
	m := matcher.New()
	collector := metrics.NewCollector()
	sender := &fakeSender{}
	interpreter := command.NewInterpreter(db, state, m, collector)
	dispatcher := alert.NewDispatcher(sender, state, collector)

	return &fixture{
		router:    New(db, state, m, interpreter, dispatcher, sender, collector),
		db:        db,
		state:     state,
		sender:    sender,
		collector: collector,
	}
}

func groupEvent(text string) transport.Event {
	return transport.Event{
		Text:      text,
		MessageID: 10,
		Sender:    transport.Peer{Kind: transport.PeerPerson, ID: 5, FirstName: "سارة"},
		Origin:    transport.Peer{Kind: transport.PeerGroup, ID: 900, Title: "جروب الدفعة"},
		Scope:     transport.ScopeGroup,
	}
}

func selfCommandEvent(text string) transport.Event {
	return transport.Event{
		Text:     text,
		Outgoing: true,
		Sender:   transport.Peer{Kind: transport.PeerPerson, ID: 1, FirstName: "طه"},
		Origin:   transport.Peer{Kind: transport.PeerPerson, ID: 1, FirstName: "طه"},
		Scope:    transport.ScopePrivate,
	}
}

func TestRouter_MatchDispatchesAlert(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.db.AddKeyword(ctx, "تعرفون احد يحل", false); err != nil {
		t.Fatalf("AddKeyword() error = %v", err)
	}

	f.router.HandleEvent(ctx, groupEvent("السلام، تعرفون احد يحل الواجب؟"))

	calls := f.sender.calls()
	if len(calls) != 1 {
		t.Fatalf("got %d sends, want 1 alert", len(calls))
	}
	if !calls[0].dest.IsSaved() {
		t.Errorf("alert destination = %v, want Saved Messages", calls[0].dest)
	}
	if !strings.Contains(calls[0].text, "تعرفون احد يحل") {
		t.Errorf("alert text missing matched rule:\n%s", calls[0].text)
	}

	s := f.collector.Snapshot()
	if s.MessagesMatched != 1 || s.AlertsSent != 1 {
		t.Errorf("counters = matched %d sent %d, want 1/1", s.MessagesMatched, s.AlertsSent)
	}
}

func TestRouter_MonitoringOffSkipsEvaluation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.db.AddKeyword(ctx, "تعرفون احد يحل", false); err != nil {
		t.Fatalf("AddKeyword() error = %v", err)
	}
	f.state.SetActive(false)

	f.router.HandleEvent(ctx, groupEvent("تعرفون احد يحل الواجب"))

	if len(f.sender.calls()) != 0 {
		t.Error("alert sent while monitoring is off")
	}
	if got := f.collector.Snapshot().MessagesEvaluated; got != 0 {
		t.Errorf("MessagesEvaluated = %d, want 0 (flag check comes first)", got)
	}
}

func TestRouter_NoTextDropped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.db.AddKeyword(ctx, "تعرفون احد يحل", false); err != nil {
		t.Fatalf("AddKeyword() error = %v", err)
	}

	ev := groupEvent("")
	f.router.HandleEvent(ctx, ev)
	if len(f.sender.calls()) != 0 {
		t.Error("send happened for an event without extractable text")
	}

	// The media caption is used when the primary text is empty.
	ev.Caption = "تعرفون احد يحل الواجب"
	f.router.HandleEvent(ctx, ev)
	if len(f.sender.calls()) != 1 {
		t.Errorf("got %d sends, want 1 alert from caption", len(f.sender.calls()))
	}
}

func TestRouter_PrivateIncomingIgnored(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.db.AddKeyword(ctx, "تعرفون احد يحل", false); err != nil {
		t.Fatalf("AddKeyword() error = %v", err)
	}

	ev := groupEvent("تعرفون احد يحل الواجب")
	ev.Scope = transport.ScopePrivate
	f.router.HandleEvent(ctx, ev)

	if len(f.sender.calls()) != 0 {
		t.Error("private incoming message was evaluated")
	}
}

func TestRouter_CommandReplyGoesToSaved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.router.HandleEvent(ctx, selfCommandEvent("/help"))

	calls := f.sender.calls()
	if len(calls) != 1 {
		t.Fatalf("got %d sends, want 1 reply", len(calls))
	}
	if !calls[0].dest.IsSaved() {
		t.Errorf("reply destination = %v, want Saved Messages", calls[0].dest)
	}
	if !strings.Contains(calls[0].text, "أوامر البوت") {
		t.Errorf("reply text = %q, want help text", calls[0].text)
	}
}

func TestRouter_SetLogReplyGoesToIssuingChannel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ev := transport.Event{
		Text:     "/setlog",
		Outgoing: true,
		Sender:   transport.Peer{Kind: transport.PeerPerson, ID: 1},
		Origin:   transport.Peer{Kind: transport.PeerChannel, ID: 777, Title: "قناة"},
		Scope:    transport.ScopeChannel,
	}
	f.router.HandleEvent(ctx, ev)

	calls := f.sender.calls()
	if len(calls) != 1 {
		t.Fatalf("got %d sends, want 1 reply", len(calls))
	}
	if calls[0].dest.ChatID() != 777 {
		t.Errorf("reply destination = %v, want the issuing channel", calls[0].dest)
	}
	if f.state.AlertChannel() != 777 {
		t.Errorf("AlertChannel() = %d, want 777", f.state.AlertChannel())
	}
}

func TestRouter_UnrecognizedCommandSilent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.router.HandleEvent(ctx, selfCommandEvent("/definitely-not-a-command"))
	f.router.HandleEvent(ctx, selfCommandEvent("مجرد رسالة عادية"))

	if len(f.sender.calls()) != 0 {
		t.Error("unrecognized text produced a reply")
	}
}

func TestRouter_RejectedScopeCommandSilent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ev := transport.Event{
		Text:     "+كلمة جديدة",
		Outgoing: true,
		Origin:   transport.Peer{Kind: transport.PeerChannel, ID: 777, Title: "قناة"},
		Scope:    transport.ScopeChannel,
	}
	f.router.HandleEvent(ctx, ev)

	if len(f.sender.calls()) != 0 {
		t.Error("scope-rejected command produced a reply")
	}
	count, err := f.db.CountKeywords(ctx)
	if err != nil {
		t.Fatalf("CountKeywords() error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountKeywords() = %d, want 0", count)
	}
}
