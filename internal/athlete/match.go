package athlete

import (
	"strings"
	"unicode"
)

// Normalize lowercases s and drops every whitespace rune.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(s))
}

// EditDistance returns the Levenshtein distance between a and b, counted
// in runes.
func EditDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	// Two rolling rows of the classic DP table.
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				cur[j] = prev[j-1]
				continue
			}
			cur[j] = 1 + min(prev[j-1], prev[j], cur[j-1])
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

// Initials joins the first letter of every word of name with dots,
// e.g. "David Eckstein" -> "D.E".
func Initials(name string) string {
	words := strings.Fields(name)
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, string([]rune(w)[0]))
	}
	return strings.Join(parts, ".")
}

// surname is the normalized last word of name.
func surname(name string) string {
	words := strings.Fields(name)
	if len(words) < 2 {
		return ""
	}
	return Normalize(words[len(words)-1])
}
