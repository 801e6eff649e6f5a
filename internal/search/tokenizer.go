package search

import (
	"strings"
	"unicode"
)

// Tokenize lowercases the input and splits it into word tokens on any rune
// that is neither letter nor digit. Matching against the index is by token
// prefix ("forward" tokenization), so queries hit word beginnings.
func Tokenize(input string) []string {
	lower := strings.ToLower(input)
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
