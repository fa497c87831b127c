// Package textkey normalizes display names into lookup keys.
//
// Product and customer names arrive from chat in mixed case and mixed scripts
// (Vietnamese diacritics included), so keying uses Unicode-aware lowercasing
// rather than ASCII strings.ToLower.
package textkey

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// Lower returns the canonical lowercase key for a display name.
func Lower(name string) string {
	return lower.String(strings.TrimSpace(name))
}

// Equal reports whether two names collide under the canonical key.
func Equal(a, b string) bool {
	return Lower(a) == Lower(b)
}
