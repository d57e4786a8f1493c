package game

import (
	"strings"
	"unicode"
)

// NormalizeName folds a creature name for comparison: lower case, with
// whitespace, hyphens and periods removed. "Mr. Mime", "mr mime" and
// "MR-MIME" all normalize to "mrmime".
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsSpace(r) || r == '-' || r == '.' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// NamesMatch reports whether a guess names the answer.
func NamesMatch(guess, answer string) bool {
	return NormalizeName(guess) == NormalizeName(answer)
}
