package search

import "strings"

const (
	snippetBefore   = 40
	snippetAfter    = 80
	snippetFallback = 120
)

// ExtractSnippet returns a window around the first case-insensitive
// occurrence of query in body, with ellipsis markers when truncated. When the
// query never appears literally (a hit via tokenized matching only) it falls
// back to the first 120 characters of the body.
func ExtractSnippet(body, query string) string {
	bodyRunes := []rune(body)
	lowerRunes := []rune(strings.ToLower(body))
	queryRunes := []rune(strings.ToLower(query))

	// Case folding can change rune counts in exotic scripts; fall back to
	// the head of the body rather than slice at wrong offsets.
	idx := -1
	if len(lowerRunes) == len(bodyRunes) {
		idx = runeIndex(lowerRunes, queryRunes)
	}

	if idx < 0 {
		end := min(len(bodyRunes), snippetFallback)
		return flatten(string(bodyRunes[:end])) + "..."
	}

	start := max(0, idx-snippetBefore)
	end := min(len(bodyRunes), idx+len(queryRunes)+snippetAfter)

	snippet := flatten(string(bodyRunes[start:end]))
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(bodyRunes) {
		snippet = snippet + "..."
	}
	return snippet
}

func flatten(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}

func runeIndex(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
