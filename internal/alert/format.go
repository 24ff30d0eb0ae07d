// Package alert builds and delivers match alerts.
package alert

import (
	"fmt"
	"strings"
	"time"

	"github.com/tahaayman1/Bot-termux/internal/transport"
)

// MessageLink builds the permalink for a message: the public t.me link
// when the origin exposes a username, otherwise the internal /c/ form.
func MessageLink(origin transport.Peer, messageID int) string {
	if origin.Username != "" {
		return fmt.Sprintf("https://t.me/%s/%d", origin.Username, messageID)
	}
	if origin.ID != 0 {
		return fmt.Sprintf("https://t.me/c/%d/%d", origin.ID, messageID)
	}
	return ""
}

// Format renders the alert text for a matched message. It is pure:
// everything, including the timestamp, comes from its arguments.
func Format(ev transport.Event, matched []string, now time.Time) string {
	text := ev.Text
	if text == "" {
		text = ev.Caption
	}

	quoted := make([]string, 0, len(matched))
	for _, m := range matched {
		quoted = append(quoted, "`"+m+"`")
	}

	lines := []string{
		"🔴 **تنبيه جديد _(Monitor Bot)_**",
		"",
		"📨 **الرسالة:**",
		"> " + text,
		"",
		"👤 **المرسل:** " + ev.Sender.DisplayName(),
		"🏷 **المجموعة:** " + ev.Origin.DisplayName(),
		"⏰ **الوقت:** " + now.Format("2006-01-02 15:04:05"),
		"",
		"🎯 " + strings.Join(quoted, ", "),
		"",
		"ــــــــــــــــــــــــــــــــــــــــــــــــ",
		"🚀 **خيارات التواصل السريع:**",
		fmt.Sprintf("1️⃣ [اضغط هنا للمراسلة (رابط 1)](tg://user?id=%d)", ev.Sender.ID),
		fmt.Sprintf("2️⃣ [اضغط هنا للمراسلة (رابط 2)](tg://openmessage?user_id=%d)", ev.Sender.ID),
	}

	if ev.Sender.Username != "" {
		lines = append(lines, fmt.Sprintf("3️⃣ [رابط المعرف (@%s)](https://t.me/%s)", ev.Sender.Username, ev.Sender.Username))
	}
	if link := MessageLink(ev.Origin, ev.MessageID); link != "" {
		lines = append(lines, fmt.Sprintf("4️⃣ [ذهاب للرسالة في الجروب](%s)", link))
	}

	return strings.Join(lines, "\n")
}
