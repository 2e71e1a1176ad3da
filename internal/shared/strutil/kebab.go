// Package strutil provides small string helpers shared across features.
package strutil

import (
	"strings"
	"unicode"
)

// Kebab converts a free-form name to lower-kebab-case.
// Whitespace and underscores become separators and camelCase word
// boundaries are split, so "Ana Silva" and "anaSilva" both yield
// "ana-silva".
func Kebab(s string) string {
	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	for _, r := range s {
		switch {
		case unicode.IsSpace(r) || r == '_' || r == '-':
			flush()
		case unicode.IsUpper(r):
			flush()
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return strings.Join(words, "-")
}
