package spanddl

import (
	"fmt"
	"sort"
	"strings"
)

// optionsDiffCanonical implements the §4.6 canonical form for an options
// diff: a removed key becomes "key=NULL", an added or changed key becomes
// "key=<new-value>", entries are joined by commas in ascending key order.
// Returns "" if the two maps are equivalent.
func optionsDiffCanonical(from, to map[string]string) string {
	keySet := make(map[string]struct{}, len(from)+len(to))
	for k := range from {
		keySet[k] = struct{}{}
	}
	for k := range to {
		keySet[k] = struct{}{}
	}
	names := make([]string, 0, len(keySet))
	for k := range keySet {
		names = append(names, k)
	}
	sort.Strings(names)

	var entries []string
	for _, k := range names {
		fv, inFrom := from[k]
		tv, inTo := to[k]
		switch {
		case inFrom && !inTo:
			entries = append(entries, fmt.Sprintf("%s=NULL", k))
		case !inFrom && inTo:
			entries = append(entries, fmt.Sprintf("%s=%s", k, tv))
		case inFrom && inTo && fv != tv:
			entries = append(entries, fmt.Sprintf("%s=%s", k, tv))
		}
	}
	return strings.Join(entries, ", ")
}

// renderOptionsSorted renders a complete options map (not a diff) in
// ascending key order, for embedding in CREATE TABLE / ADD COLUMN clauses.
func renderOptionsSorted(opts map[string]string) string {
	names := make([]string, 0, len(opts))
	for k := range opts {
		names = append(names, k)
	}
	sort.Strings(names)
	entries := make([]string, len(names))
	for i, k := range names {
		entries[i] = fmt.Sprintf("%s=%s", k, opts[k])
	}
	return strings.Join(entries, ", ")
}
