// Package textdiff renders a unified diff of two DDL texts for the CLI's
// --verbose flag, so an operator can see exactly what changed about the
// input before reading the generated migration plan.
package textdiff

import "github.com/pmezard/go-difflib/difflib"

// Unified returns a unified diff of "from" and "to", labeled with the
// given file names. Returns "" if the two texts are identical.
func Unified(fromName, toName, from, to string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(from),
		B:        difflib.SplitLines(to),
		FromFile: fromName,
		ToFile:   toName,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}
