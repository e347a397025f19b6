package naming

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// Key canonicalizes an item or backpack name for case-insensitive matching.
// Surrounding whitespace is not part of any name.
func Key(name string) string {
	return folder.String(strings.TrimSpace(name))
}

// Equal reports whether two names match case-insensitively.
func Equal(a, b string) bool {
	return Key(a) == Key(b)
}
