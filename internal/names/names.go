package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize folds a name to lowercase ASCII for use as a deduplication key.
// Diacritics are stripped and runes with no ASCII form are dropped, so the
// result for any input is deterministic and never an error.
func Normalize(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	for _, r := range folded {
		if r < 128 {
			b.WriteRune(unicode.ToLower(r))
		}
	}

	return b.String()
}

// Key builds the per-person key from a first and last name. Both names blank
// yields the empty key.
func Key(first string, last string) string {
	return strings.TrimSpace(Normalize(first) + " " + Normalize(last))
}
