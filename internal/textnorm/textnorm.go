// Package textnorm folds spoken Portuguese order text into the canonical
// form used for menu matching: ASCII lowercase words separated by single
// spaces, with "com" read as the conjunction "e".
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Stopwords are the articles and prepositions ignored by the relaxed menu
// lookup.
var Stopwords = map[string]struct{}{
	"de": {}, "do": {}, "da": {}, "dos": {}, "das": {},
	"o": {}, "a": {}, "os": {}, "as": {},
}

// Normalize returns the canonical form of s. The result only contains the
// characters a-z, 0-9 and single spaces, and Normalize(Normalize(s)) equals
// Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	folded := foldAccents(s)
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		if w == "com" {
			words[i] = "e"
		}
	}
	return strings.Join(words, " ")
}

// StripStopwords removes Stopwords from an already normalized string.
func StripStopwords(normalized string) string {
	words := strings.Fields(normalized)
	kept := words[:0]
	for _, w := range words {
		if _, ok := Stopwords[w]; ok {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// foldAccents decomposes s and drops the combining marks, so "ã", "É" and
// "ç" become "a", "E" and "c".
func foldAccents(s string) string {
	// transform.Chain keeps internal state; build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
