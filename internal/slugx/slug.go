// Package slugx normalizes and validates URL slugs for pages, posts,
// categories and tags.
package slugx

import (
	"strings"
	"unicode"
)

// Make lowers s and collapses every run of non-alphanumeric characters into a
// single hyphen. Leading and trailing hyphens are trimmed.
func Make(s string) string {
	var b strings.Builder
	prevHyphen := true // swallow leading separators
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) && r < unicode.MaxASCII || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevHyphen = false
			continue
		}
		if !prevHyphen {
			b.WriteByte('-')
			prevHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Valid reports whether s is a well-formed slug: non-empty, lowercase
// alphanumerics and single hyphens, no hyphen at either end.
func Valid(s string) bool {
	return s != "" && s == Make(s)
}
