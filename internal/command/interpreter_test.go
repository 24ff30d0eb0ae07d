package command

import (
	"context"
	"strings"
	"testing"

	"github.com/tahaayman1/Bot-termux/internal/database"
	"github.com/tahaayman1/Bot-termux/internal/matcher"
	"github.com/tahaayman1/Bot-termux/internal/metrics"
	"github.com/tahaayman1/Bot-termux/internal/monitor"
	"github.com/tahaayman1/Bot-termux/internal/transport"
)

func newTestInterpreter(t *testing.T) (*Interpreter, *database.DB, *monitor.State) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	state := monitor.NewState()
	it := NewInterpreter(db, state, matcher.New(), metrics.NewCollector())
	return it, db, state
}

func selfPeer() transport.Peer {
	return transport.Peer{Kind: transport.PeerPerson, ID: 1000, FirstName: "طه"}
}

func channelPeer() transport.Peer {
	return transport.Peer{Kind: transport.PeerChannel, ID: 777000111, Title: "قناة التنبيهات"}
}

func TestInterpreter_AddMultiLine(t *testing.T) {
	it, db, _ := newTestInterpreter(t)
	ctx := context.Background()

	cmd, ok := Parse("+كلمة اولى\nr:يحل (واجب|كويز)\nr:(\nكلمة اولى")
	if !ok {
		t.Fatal("Parse() returned not-a-command")
	}
	reply, handled := it.Execute(ctx, cmd, selfPeer(), transport.ScopePrivate)
	if !handled {
		t.Fatal("Execute() handled = false")
	}

	// One literal added, one regex added, one invalid pattern reported,
	// and the duplicate literal reported as already present.
	if !strings.Contains(reply, "تمت الإضافة (2)") {
		t.Errorf("reply missing added group: %q", reply)
	}
	if !strings.Contains(reply, "موجودة مسبقاً (1)") {
		t.Errorf("reply missing exists group: %q", reply)
	}
	if !strings.Contains(reply, "نمط غير صالح (1)") {
		t.Errorf("reply missing invalid group: %q", reply)
	}

	count, err := db.CountKeywords(ctx)
	if err != nil {
		t.Fatalf("CountKeywords() error = %v", err)
	}
	if count != 2 {
		t.Errorf("CountKeywords() = %d, want 2", count)
	}
}

func TestInterpreter_InvalidRegexLeavesStoreUnchanged(t *testing.T) {
	it, db, _ := newTestInterpreter(t)
	ctx := context.Background()

	cmd, _ := Parse("+r:(")
	reply, handled := it.Execute(ctx, cmd, selfPeer(), transport.ScopePrivate)
	if !handled {
		t.Fatal("Execute() handled = false")
	}
	if !strings.Contains(reply, "نمط غير صالح") {
		t.Errorf("reply does not report the skipped pattern: %q", reply)
	}

	count, err := db.CountKeywords(ctx)
	if err != nil {
		t.Fatalf("CountKeywords() error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountKeywords() = %d, want 0", count)
	}
}

func TestInterpreter_DeleteOutcomes(t *testing.T) {
	it, _, _ := newTestInterpreter(t)
	ctx := context.Background()

	addCmd, _ := Parse("+موجودة")
	it.Execute(ctx, addCmd, selfPeer(), transport.ScopePrivate)

	cmd, _ := Parse("-موجودة\nمفقودة")
	reply, handled := it.Execute(ctx, cmd, selfPeer(), transport.ScopePrivate)
	if !handled {
		t.Fatal("Execute() handled = false")
	}
	if !strings.Contains(reply, "تم الحذف (1)") {
		t.Errorf("reply missing deleted group: %q", reply)
	}
	if !strings.Contains(reply, "غير موجودة (1)") {
		t.Errorf("reply missing not-found group: %q", reply)
	}
}

func TestInterpreter_EmptyPayloadUsage(t *testing.T) {
	it, _, _ := newTestInterpreter(t)
	ctx := context.Background()

	for _, text := range []string{"+", "-"} {
		cmd, ok := Parse(text)
		if !ok {
			t.Fatalf("Parse(%q) returned not-a-command", text)
		}
		reply, handled := it.Execute(ctx, cmd, selfPeer(), transport.ScopePrivate)
		if !handled {
			t.Fatalf("Execute(%q) handled = false", text)
		}
		if !strings.Contains(reply, "الاستخدام") {
			t.Errorf("Execute(%q) reply = %q, want usage hint", text, reply)
		}
	}
}

func TestInterpreter_OnOff(t *testing.T) {
	it, _, state := newTestInterpreter(t)
	ctx := context.Background()

	off, _ := Parse("/off")
	if _, handled := it.Execute(ctx, off, selfPeer(), transport.ScopePrivate); !handled {
		t.Fatal("Execute(/off) handled = false")
	}
	if state.Active() {
		t.Error("state still active after /off")
	}

	on, _ := Parse("/on")
	if _, handled := it.Execute(ctx, on, selfPeer(), transport.ScopePrivate); !handled {
		t.Fatal("Execute(/on) handled = false")
	}
	if !state.Active() {
		t.Error("state not active after /on")
	}
}

func TestInterpreter_ScopeGating(t *testing.T) {
	it, _, state := newTestInterpreter(t)
	ctx := context.Background()

	// Administrative commands from a public chat are silently ignored.
	for _, text := range []string{"+كلمة", "-كلمة", "#", "/on", "/off", "/help", "/unsetlog"} {
		cmd, ok := Parse(text)
		if !ok {
			t.Fatalf("Parse(%q) returned not-a-command", text)
		}
		reply, handled := it.Execute(ctx, cmd, channelPeer(), transport.ScopeChannel)
		if handled || reply != "" {
			t.Errorf("Execute(%q) from channel = (%q, %v), want silent rejection", text, reply, handled)
		}
	}

	// /status is allowed from a public chat.
	status, _ := Parse("/status")
	reply, handled := it.Execute(ctx, status, channelPeer(), transport.ScopeChannel)
	if !handled || reply == "" {
		t.Error("Execute(/status) from channel was rejected")
	}

	if !state.Active() {
		t.Error("scope-rejected commands mutated monitoring state")
	}
}

func TestInterpreter_SetLog(t *testing.T) {
	it, db, state := newTestInterpreter(t)
	ctx := context.Background()

	// From Saved Messages: refused with a usage hint, no state change.
	cmd, _ := Parse("/setlog")
	reply, handled := it.Execute(ctx, cmd, selfPeer(), transport.ScopePrivate)
	if !handled {
		t.Fatal("Execute(/setlog) private handled = false")
	}
	if !strings.Contains(reply, "داخل القناة") {
		t.Errorf("private /setlog reply = %q, want usage hint", reply)
	}
	if state.AlertChannel() != 0 {
		t.Error("private /setlog changed the alert destination")
	}

	// From a channel: destination captured and persisted.
	ch := channelPeer()
	reply, handled = it.Execute(ctx, cmd, ch, transport.ScopeChannel)
	if !handled {
		t.Fatal("Execute(/setlog) channel handled = false")
	}
	if !strings.Contains(reply, "777000111") {
		t.Errorf("channel /setlog reply = %q, want captured id", reply)
	}
	if state.AlertChannel() != ch.ID {
		t.Errorf("AlertChannel() = %d, want %d", state.AlertChannel(), ch.ID)
	}
	stored, err := db.GetSetting(ctx, database.LogChannelKey)
	if err != nil {
		t.Fatalf("GetSetting() error = %v", err)
	}
	if stored != "777000111" {
		t.Errorf("persisted destination = %q, want %q", stored, "777000111")
	}

	// /unsetlog reverts to Saved Messages.
	unset, _ := Parse("/unsetlog")
	if _, handled := it.Execute(ctx, unset, selfPeer(), transport.ScopePrivate); !handled {
		t.Fatal("Execute(/unsetlog) handled = false")
	}
	if state.AlertChannel() != 0 {
		t.Error("AlertChannel() not cleared by /unsetlog")
	}
	stored, err = db.GetSetting(ctx, database.LogChannelKey)
	if err != nil {
		t.Fatalf("GetSetting() error = %v", err)
	}
	if stored != "" {
		t.Errorf("persisted destination after /unsetlog = %q, want empty", stored)
	}
}

func TestInterpreter_HelpAndStatus(t *testing.T) {
	it, _, _ := newTestInterpreter(t)
	ctx := context.Background()

	add, _ := Parse("+كلمة")
	it.Execute(ctx, add, selfPeer(), transport.ScopePrivate)

	help, _ := Parse("/help")
	reply, handled := it.Execute(ctx, help, selfPeer(), transport.ScopePrivate)
	if !handled {
		t.Fatal("Execute(/help) handled = false")
	}
	if !strings.Contains(reply, "الكلمات:** 1") {
		t.Errorf("help reply missing live rule count: %q", reply)
	}
	if !strings.Contains(reply, "مفعّل") {
		t.Errorf("help reply missing live monitoring status: %q", reply)
	}

	status, _ := Parse("/status")
	reply, handled = it.Execute(ctx, status, selfPeer(), transport.ScopePrivate)
	if !handled {
		t.Fatal("Execute(/status) handled = false")
	}
	if !strings.Contains(reply, "الرسائل المحفوظة") {
		t.Errorf("status reply missing destination: %q", reply)
	}
	if !strings.Contains(reply, "عدد الكلمات: 1") {
		t.Errorf("status reply missing rule count: %q", reply)
	}
}

func TestInterpreter_List(t *testing.T) {
	it, _, _ := newTestInterpreter(t)
	ctx := context.Background()

	list, _ := Parse("#")
	reply, handled := it.Execute(ctx, list, selfPeer(), transport.ScopePrivate)
	if !handled {
		t.Fatal("Execute(#) handled = false")
	}
	if !strings.Contains(reply, "لا توجد كلمات") {
		t.Errorf("empty list reply = %q", reply)
	}

	add, _ := Parse("+حرفية\nr:نمط")
	it.Execute(ctx, add, selfPeer(), transport.ScopePrivate)

	reply, _ = it.Execute(ctx, list, selfPeer(), transport.ScopePrivate)
	if !strings.Contains(reply, "1. `حرفية` 🔤") {
		t.Errorf("list reply missing literal entry: %q", reply)
	}
	if !strings.Contains(reply, "2. `نمط` 🔣 regex") {
		t.Errorf("list reply missing regex entry: %q", reply)
	}
}
