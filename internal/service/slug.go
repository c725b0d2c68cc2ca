package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var apostrophes = strings.NewReplacer("'", "", "’", "")

// NormalizeTitle folds a title or slug into lowercase words separated by
// single spaces. Diacritics and apostrophes are dropped, and words split on
// separators, camelCase humps and letter/digit boundaries, so "Hello-World",
// "hello_world" and "helloWorld" all become "hello world".
func NormalizeTitle(raw string) string {
	return strings.Join(titleWords(raw), " ")
}

// Slugify renders the link form of a title; NormalizeTitle(Slugify(t)) == NormalizeTitle(t).
func Slugify(title string) string {
	return strings.Join(titleWords(title), "-")
}

func titleWords(raw string) []string {
	plain := apostrophes.Replace(deburr(raw))
	lower := cases.Lower(language.Und)

	var words []string
	for _, run := range strings.FieldsFunc(plain, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		for _, word := range splitRun([]rune(run)) {
			words = append(words, lower.String(word))
		}
	}
	return words
}

// splitRun breaks a run of letters and digits at case and digit boundaries.
func splitRun(rs []rune) []string {
	var parts []string
	start := 0
	for i := 1; i < len(rs); i++ {
		prev, cur := rs[i-1], rs[i]
		boundary := false
		switch {
		case unicode.IsDigit(prev) != unicode.IsDigit(cur):
			boundary = true
		case unicode.IsLower(prev) && unicode.IsUpper(cur):
			boundary = true
		case unicode.IsUpper(prev) && unicode.IsUpper(cur) && i+1 < len(rs) && unicode.IsLower(rs[i+1]):
			// acronym followed by a word: "XMLHttp" -> "XML", "Http"
			boundary = true
		}
		if boundary {
			parts = append(parts, string(rs[start:i]))
			start = i
		}
	}
	return append(parts, string(rs[start:]))
}

func deburr(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
