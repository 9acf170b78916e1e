// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
// Event slugs double as identifiers inside a year, so the output must be
// stable for a given name.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var multiHyphen = regexp.MustCompile(`-{2,}`)

// From converts a name into a URL-safe ASCII slug: NFD-decompose, strip
// combining marks, lowercase, turn whitespace into hyphens and drop any
// other character outside [a-z0-9-]. Punctuation vanishes rather than
// becoming a hyphen, so "Alice's Party" slugs to "alices-party".
func From(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case unicode.IsSpace(r):
			return '-'
		}
		return -1
	}, result)

	result = multiHyphen.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
