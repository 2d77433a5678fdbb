// Package textnorm canonicalizes noisy statement descriptions so that
// every comparison in the matching engine works on the same substrate.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Quote-style punctuation is removed outright (not replaced with a
// space) so Hebrew geresh/gershayim abbreviations stay one token.
const quoteRunes = "'\"`´‘’“”׳״"

// Normalize lowercases, strips Hebrew diacritical marks and quote
// punctuation, maps every other non-letter/digit rune to a space,
// collapses whitespace, and trims. Pure and total: empty in, empty out.
// Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = stripMarks(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case strings.ContainsRune(quoteRunes, r):
			// drop
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens returns the whitespace-separated tokens of the normalized text.
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}

// stripMarks removes combining marks (Hebrew niqqud and cantillation
// included) by decomposing and dropping the Mn class.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
