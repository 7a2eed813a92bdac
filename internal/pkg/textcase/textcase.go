// Package textcase provides display casing for throw names and ability stats
package textcase

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Capitalize upper-cases the first letter of s and lower-cases the rest.
// Word breaks are not honoured, so "lore-a" becomes "Lore-a".
func Capitalize(s string) string {
	if s == "" {
		return s
	}

	_, size := utf8.DecodeRuneInString(s)
	head := cases.Upper(language.Und).String(s[:size])
	tail := cases.Lower(language.Und).String(s[size:])

	return head + tail
}
