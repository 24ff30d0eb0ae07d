// Package matcher evaluates messages against the keyword rule set.
package matcher

import (
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/tahaayman1/Bot-termux/internal/normalize"
)

// Rule is one keyword rule as seen by the matcher. Text is the
// user-facing identity of the rule.
type Rule struct {
	Text    string
	IsRegex bool
}

type compiledPattern struct {
	re      *regexp.Regexp
	invalid bool
}

// Matcher evaluates message text against rules. Compiled regex patterns
// are cached by rule text so a pattern is compiled once per process, and
// an invalid pattern is logged once rather than on every message.
// Safe for concurrent use.
type Matcher struct {
	mu    sync.RWMutex
	cache map[string]compiledPattern
}

// New creates a Matcher with an empty pattern cache.
func New() *Matcher {
	return &Matcher{
		cache: make(map[string]compiledPattern),
	}
}

// Match returns the texts of all rules matching the given message text.
// A rule that fails to evaluate (invalid regex) is skipped; it never
// prevents evaluation of the remaining rules.
func (m *Matcher) Match(text string, rules []Rule) []string {
	normText := normalize.Normalize(text)
	textWords := strings.Fields(normText)

	var matched []string
	for _, rule := range rules {
		normRule := normalize.Normalize(rule.Text)

		if rule.IsRegex {
			re, ok := m.compile(rule.Text, normRule)
			if !ok {
				continue
			}
			if re.MatchString(normText) {
				matched = append(matched, rule.Text)
			}
			continue
		}

		if matchLiteral(normRule, normText, textWords) {
			matched = append(matched, rule.Text)
		}
	}
	return matched
}

// matchLiteral reports whether a literal rule matches. Either the whole
// normalized phrase appears as a substring, or every word of the rule has
// some message word where one contains the other, in any order. The
// word-level check is intentionally permissive (a short rule word can
// match many message words); recall is preferred over precision here.
func matchLiteral(normRule, normText string, textWords []string) bool {
	if strings.Contains(normText, normRule) {
		return true
	}

	ruleWords := strings.Fields(normRule)
	if len(ruleWords) == 0 {
		return false
	}
	for _, rw := range ruleWords {
		found := false
		for _, tw := range textWords {
			if strings.Contains(tw, rw) || strings.Contains(rw, tw) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// compile returns the cached case-insensitive pattern for a regex rule,
// compiling it on first use. Invalid patterns are negative-cached.
func (m *Matcher) compile(ruleText, normPattern string) (*regexp.Regexp, bool) {
	m.mu.RLock()
	cp, ok := m.cache[ruleText]
	m.mu.RUnlock()
	if ok {
		return cp.re, !cp.invalid
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if cp, ok := m.cache[ruleText]; ok {
		return cp.re, !cp.invalid
	}

	re, err := regexp.Compile("(?i)" + normPattern)
	if err != nil {
		slog.Warn("Invalid regex rule, skipping", "rule", ruleText, "error", err)
		m.cache[ruleText] = compiledPattern{invalid: true}
		return nil, false
	}
	m.cache[ruleText] = compiledPattern{re: re}
	return re, true
}

// Invalidate drops the cached pattern for a rule text. Called when a
// rule is removed so a re-added rule with the same text recompiles.
func (m *Matcher) Invalidate(ruleText string) {
	m.mu.Lock()
	delete(m.cache, ruleText)
	m.mu.Unlock()
}
