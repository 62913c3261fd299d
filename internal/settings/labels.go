package settings

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label turns a field path into a display label:
// "cardStyle.cornerRadius.topLeft" becomes "Card Style › Corner Radius › Top Left".
// A Caser is stateful, so each call builds its own.
func Label(path string) string {
	titleCaser := cases.Title(language.English)
	parts := strings.Split(path, ".")
	for i, part := range parts {
		parts[i] = titleCaser.String(splitCamel(part))
	}
	return strings.Join(parts, " › ")
}

// splitCamel inserts a space before each inner upper-case letter.
func splitCamel(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
