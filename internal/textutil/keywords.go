package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize lowercases text for keyword matching and trims surrounding space.
func Normalize(text string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(text))
}

// ContainsAny reports whether normalized text contains any keyword.
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Matches returns the keywords contained in normalized text, in vocabulary order.
func Matches(text string, vocabulary []string) []string {
	var found []string
	for _, kw := range vocabulary {
		if strings.Contains(text, kw) {
			found = append(found, kw)
		}
	}
	return found
}

// Title capitalizes each word, e.g. "costume change" -> "Costume Change".
func Title(text string) string {
	return cases.Title(language.Und).String(text)
}
