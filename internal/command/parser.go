// Package command parses and executes the operator's control messages.
package command

import (
	"strings"
	"unicode"
)

// Kind enumerates the recognized commands.
type Kind int

const (
	// Add inserts one keyword rule per payload line.
	Add Kind = iota
	// Delete removes one keyword rule per payload line.
	Delete
	// List enumerates the stored rules.
	List
	// On enables monitoring.
	On
	// Off disables monitoring.
	Off
	// Help shows usage and live status.
	Help
	// Status shows monitoring state, destination, and counters.
	Status
	// SetLog captures the issuing chat as the alert destination.
	SetLog
	// UnsetLog reverts alerts to Saved Messages.
	UnsetLog
)

// Command is one parsed control message.
type Command struct {
	Kind    Kind
	Payload string
}

// IsCommandText reports whether text could be a control message. Used by
// the router as a cheap pre-filter before Parse.
func IsCommandText(text string) bool {
	if text == "" {
		return false
	}
	switch text[0] {
	case '+', '-', '#', '/':
		return true
	}
	return false
}

// Parse maps raw message text to exactly one command or reports that the
// text is not a command. Routing is by first token, case-insensitive,
// with the prefix shortcuts "+", "-", and "#". Unrecognized "/" text is
// not a command; the caller ignores it without replying.
func Parse(text string) (Command, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Command{}, false
	}

	switch {
	case strings.HasPrefix(text, "+"):
		return Command{Kind: Add, Payload: strings.TrimSpace(text[1:])}, true
	case strings.HasPrefix(text, "-"):
		return Command{Kind: Delete, Payload: strings.TrimSpace(text[1:])}, true
	case text == "#":
		return Command{Kind: List}, true
	}

	if !strings.HasPrefix(text, "/") {
		return Command{}, false
	}

	token := text
	payload := ""
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		token = text[:i]
		payload = strings.TrimSpace(text[i:])
	}

	switch strings.ToLower(token) {
	case "/add":
		return Command{Kind: Add, Payload: payload}, true
	case "/del":
		return Command{Kind: Delete, Payload: payload}, true
	case "/list":
		return Command{Kind: List}, true
	case "/on":
		return Command{Kind: On}, true
	case "/off":
		return Command{Kind: Off}, true
	case "/help":
		return Command{Kind: Help}, true
	case "/status":
		return Command{Kind: Status}, true
	case "/setlog":
		return Command{Kind: SetLog}, true
	case "/unsetlog":
		return Command{Kind: UnsetLog}, true
	}
	return Command{}, false
}

// payloadLines splits a multi-line payload into trimmed, non-empty lines.
func payloadLines(payload string) []string {
	var lines []string
	for _, line := range strings.Split(payload, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
