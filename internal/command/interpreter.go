package command

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/tahaayman1/Bot-termux/internal/database"
	"github.com/tahaayman1/Bot-termux/internal/matcher"
	"github.com/tahaayman1/Bot-termux/internal/metrics"
	"github.com/tahaayman1/Bot-termux/internal/monitor"
	"github.com/tahaayman1/Bot-termux/internal/transport"
)

// Interpreter applies parsed commands to the rule store and monitoring
// state and produces the reply text. It is the single writer of the
// monitoring state.
type Interpreter struct {
	db      *database.DB
	state   *monitor.State
	matcher *matcher.Matcher
	metrics *metrics.Collector
}

// NewInterpreter creates a command interpreter.
func NewInterpreter(db *database.DB, state *monitor.State, m *matcher.Matcher, collector *metrics.Collector) *Interpreter {
	return &Interpreter{db: db, state: state, matcher: m, metrics: collector}
}

// Execute runs one command issued from the given origin. It returns the
// reply text and whether the command was handled; commands rejected by
// scope gating return handled = false and produce no reply.
func (it *Interpreter) Execute(ctx context.Context, cmd Command, origin transport.Peer, scope transport.Scope) (string, bool) {
	// Administrative commands work only in Saved Messages; /setlog and
	// /status are the two allowed from a public chat.
	if scope != transport.ScopePrivate && cmd.Kind != SetLog && cmd.Kind != Status {
		return "", false
	}

	switch cmd.Kind {
	case Add:
		return it.execAdd(ctx, cmd.Payload), true
	case Delete:
		return it.execDelete(ctx, cmd.Payload), true
	case List:
		return it.execList(ctx), true
	case On:
		it.state.SetActive(true)
		slog.Info("Monitoring enabled")
		return "▶️ تم تفعيل المراقبة.", true
	case Off:
		it.state.SetActive(false)
		slog.Info("Monitoring disabled")
		return "⏸ تم إيقاف المراقبة.", true
	case Help:
		return it.execHelp(ctx), true
	case Status:
		return it.execStatus(ctx), true
	case SetLog:
		return it.execSetLog(ctx, origin, scope)
	case UnsetLog:
		return it.execUnsetLog(ctx), true
	}
	return "", false
}

func (it *Interpreter) execAdd(ctx context.Context, payload string) string {
	lines := payloadLines(payload)
	if len(lines) == 0 {
		return "⚠️ الاستخدام: `+ كلمة` أو `+` ثم قائمة كلمات"
	}

	var added, exist, invalid []string
	for _, line := range lines {
		isRegex := false
		kw := line
		if strings.HasPrefix(line, "r:") {
			isRegex = true
			kw = strings.TrimSpace(line[2:])
			if _, err := regexp.Compile(kw); err != nil {
				slog.Warn("Rejected invalid regex rule", "pattern", kw, "error", err)
				invalid = append(invalid, kw)
				continue
			}
		}
		if kw == "" {
			continue
		}

		ok, err := it.db.AddKeyword(ctx, kw, isRegex)
		if err != nil {
			slog.Error("Failed to add keyword", "keyword", kw, "error", err)
			invalid = append(invalid, kw)
			continue
		}
		if ok {
			added = append(added, kw)
		} else {
			exist = append(exist, kw)
		}
	}

	var parts []string
	if len(added) > 0 {
		parts = append(parts, fmt.Sprintf("✅ **تمت الإضافة (%d):**\n%s", len(added), bulletList(added)))
		slog.Info("Added keywords", "count", len(added))
	}
	if len(exist) > 0 {
		parts = append(parts, fmt.Sprintf("⚠️ **موجودة مسبقاً (%d):**\n%s", len(exist), bulletList(exist)))
	}
	if len(invalid) > 0 {
		parts = append(parts, fmt.Sprintf("🚫 **تم تخطيها — نمط غير صالح (%d):**\n%s", len(invalid), bulletList(invalid)))
	}
	if len(parts) == 0 {
		return "⚠️ الاستخدام: `+ كلمة` أو `+` ثم قائمة كلمات"
	}
	return strings.Join(parts, "\n\n")
}

func (it *Interpreter) execDelete(ctx context.Context, payload string) string {
	lines := payloadLines(payload)
	if len(lines) == 0 {
		return "⚠️ الاستخدام: `- كلمة` لحذفها"
	}

	var deleted, notFound []string
	for _, line := range lines {
		ok, err := it.db.DeleteKeyword(ctx, line)
		if err != nil {
			slog.Error("Failed to delete keyword", "keyword", line, "error", err)
			notFound = append(notFound, line)
			continue
		}
		if ok {
			it.matcher.Invalidate(line)
			deleted = append(deleted, line)
		} else {
			notFound = append(notFound, line)
		}
	}

	var parts []string
	if len(deleted) > 0 {
		parts = append(parts, fmt.Sprintf("🗑 **تم الحذف (%d):**\n%s", len(deleted), bulletList(deleted)))
		slog.Info("Deleted keywords", "count", len(deleted))
	}
	if len(notFound) > 0 {
		parts = append(parts, fmt.Sprintf("⚠️ **غير موجودة (%d):**\n%s", len(notFound), bulletList(notFound)))
	}
	return strings.Join(parts, "\n\n")
}

func (it *Interpreter) execList(ctx context.Context) string {
	kws, err := it.db.ListKeywords(ctx)
	if err != nil {
		slog.Error("Failed to list keywords", "error", err)
		return "⚠️ تعذر قراءة قائمة الكلمات."
	}
	if len(kws) == 0 {
		return "📭 لا توجد كلمات مفتاحية حالياً."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 **الكلمات المفتاحية (%d):**\n", len(kws))
	for i, kw := range kws {
		tag := "🔤"
		if kw.IsRegex {
			tag = "🔣 regex"
		}
		fmt.Fprintf(&b, "  %d. `%s` %s\n", i+1, kw.Keyword, tag)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (it *Interpreter) execHelp(ctx context.Context) string {
	count, err := it.db.CountKeywords(ctx)
	if err != nil {
		slog.Error("Failed to count keywords", "error", err)
	}
	return fmt.Sprintf(
		"📖 **أوامر البوت:**\n\n"+
			"`+ كلمة` — إضافة كلمة (أو كلمات في أسطر، `r:` لنمط regex)\n"+
			"`- كلمة` — حذف كلمة (أو كلمات)\n"+
			"`#` — عرض قائمة الكلمات\n"+
			"`/on` — تفعيل المراقبة\n"+
			"`/off` — إيقاف المراقبة\n"+
			"`/status` — الحالة\n"+
			"`/setlog` — تعيين القناة للتنبيهات\n"+
			"`/unsetlog` — إرجاع التنبيهات إلى الرسائل المحفوظة\n\n"+
			"📊 **الحالة:** %s\n"+
			"🔑 **الكلمات:** %d",
		activeLabel(it.state.Active()), count,
	)
}

func (it *Interpreter) execStatus(ctx context.Context) string {
	count, err := it.db.CountKeywords(ctx)
	if err != nil {
		slog.Error("Failed to count keywords", "error", err)
	}

	dest := "📁 الرسائل المحفوظة"
	if id := it.state.AlertChannel(); id != 0 {
		dest = fmt.Sprintf("📢 قناة: `%d`", id)
	}

	s := it.metrics.Snapshot()
	return fmt.Sprintf(
		"📊 **حالة البوت:**\n\n"+
			"المراقبة: %s\n"+
			"التنبيهات: %s\n"+
			"عدد الكلمات: %d\n\n"+
			"الرسائل المفحوصة: %d\n"+
			"التطابقات: %d\n"+
			"التنبيهات المرسلة: %d\n"+
			"الأخطاء: %d",
		activeLabel(it.state.Active()), dest, count,
		s.MessagesEvaluated, s.MessagesMatched, s.AlertsSent, s.ProcessingErrors,
	)
}

func (it *Interpreter) execSetLog(ctx context.Context, origin transport.Peer, scope transport.Scope) (string, bool) {
	// The command must be issued inside the chat that should receive the
	// alerts; from Saved Messages there is no channel to capture.
	if scope == transport.ScopePrivate {
		return "⚠️ استخدم هذا الأمر داخل القناة التي تريد وصول التنبيهات إليها.", true
	}

	if err := it.db.SetSetting(ctx, database.LogChannelKey, strconv.FormatInt(origin.ID, 10)); err != nil {
		slog.Error("Failed to persist alert channel", "chat_id", origin.ID, "error", err)
		return "⚠️ تعذر حفظ قناة التنبيهات.", true
	}
	it.state.SetAlertChannel(origin.ID)
	slog.Info("Alert destination set", "chat_id", origin.ID, "title", origin.Title)
	return fmt.Sprintf("✅ تم تعيين هذه القناة (%d) لاستلام التنبيهات!", origin.ID), true
}

func (it *Interpreter) execUnsetLog(ctx context.Context) string {
	if err := it.db.SetSetting(ctx, database.LogChannelKey, ""); err != nil {
		slog.Error("Failed to clear alert channel", "error", err)
		return "⚠️ تعذر إرجاع التنبيهات."
	}
	it.state.SetAlertChannel(0)
	slog.Info("Alert destination reset to Saved Messages")
	return "✅ رجعت التنبيهات على **الرسائل المحفوظة**."
}

func activeLabel(active bool) string {
	if active {
		return "🟢 مفعّل"
	}
	return "🔴 متوقف"
}

func bulletList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- `%s`", item)
	}
	return b.String()
}
