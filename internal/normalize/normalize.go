// Package normalize canonicalizes message text before keyword matching.
// The corpus is Arabic-centric: diacritics and elongation characters carry
// no matching-relevant information and are stripped, as is the small set
// of punctuation marks that commonly decorates keyword phrases.
package normalize

import "strings"

// Arabic combining marks (fathatan through wavy hamza below), the
// superscript alef, and tatweel. Stripping them lets a vocalized message
// match an unvocalized keyword and vice versa.
func isDiacritic(r rune) bool {
	return (r >= 0x064B && r <= 0x065F) || r == 0x0670 || r == 0x0640
}

func isStrippedPunct(r rune) bool {
	switch r {
	case '؟', '!', '.', '،':
		return true
	}
	return false
}

// Normalize lower-cases text, removes Arabic diacritics and tatweel,
// drops common punctuation, and collapses whitespace runs to single
// spaces. It is pure, total, and idempotent.
func Normalize(text string) string {
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isDiacritic(r) || isStrippedPunct(r) {
			continue
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
