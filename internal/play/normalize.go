package play

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize maps free text to the key used to compare answers. It lower-cases,
// folds accented letters to their base letter, drops apostrophes so that
// contractions collapse, turns every other non [a-z0-9] rune into a space and
// collapses whitespace. The result only contains [a-z0-9] and single spaces.
//
// Index construction and submission checks must both go through Normalize.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	folded, _, err := transform.String(stripMarks, strings.ToLower(text))
	if err != nil {
		folded = strings.ToLower(text)
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case isApostrophe(r):
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func isApostrophe(r rune) bool {
	switch r {
	case '\'', '‘', '’', 'ʼ':
		return true
	}
	return false
}
