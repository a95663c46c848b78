package pep503

import (
	"regexp"
	"strings"
)

var reNameSeparators = regexp.MustCompile(`[-_.]+`)

// Normalize canonicalizes a project name: each run of '-', '_', or '.'
// characters is collapsed to a single '-', and the result is lowercased.  Two
// distribution names refer to the same project iff their normalized forms are
// equal.
//
// Normalize is idempotent.
func Normalize(name string) string {
	return strings.ToLower(reNameSeparators.ReplaceAllLiteralString(name, "-"))
}
