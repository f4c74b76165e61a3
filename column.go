package spanddl

import (
	"fmt"
	"strings"

	"github.com/spanner-tools/spanddl/ast"
)

// Column is a single column definition. By the time a Column reaches the
// core its fields are already canonical text (produced by the Extractor
// straight from the parser's ast.Column), so no separate schema-level
// wrapper type is needed here.
type Column = ast.Column

func columnsEqual(a, b *Column) bool {
	if a.Name != b.Name || a.TypeText != b.TypeText || a.NotNull != b.NotNull {
		return false
	}
	if a.Default != b.Default || a.Generated != b.Generated {
		return false
	}
	return optionsMapEqual(a.Options, b.Options)
}

func optionsMapEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

// columnDefinition renders the column-definition clause used inside both
// CREATE TABLE and ADD COLUMN.
func columnDefinition(c *Column) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", c.Name, c.TypeText)
	if c.NotNull {
		b.WriteString(" NOT NULL")
	}
	if c.Generated != "" {
		fmt.Fprintf(&b, " AS (%s) STORED", c.Generated)
	}
	if c.Default != "" {
		fmt.Fprintf(&b, " DEFAULT (%s)", c.Default)
	}
	if len(c.Options) > 0 {
		fmt.Fprintf(&b, " OPTIONS (%s)", renderOptionsSorted(c.Options))
	}
	return b.String()
}
