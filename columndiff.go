package spanddl

import (
	"fmt"

	"github.com/spanner-tools/spanddl/ast"
)

// diffTable computes the ALTER TABLE statements needed to turn "from" into
// "to" for a single table present on both sides of a diff. It enforces the
// table-level invariants of spec §4.4 before considering any column, then
// applies the dropped/added/modified column rules in that literal order.
func diffTable(from, to *Table, policy Policy) ([]string, error) {
	if (from.Interleave == nil) != (to.Interleave == nil) {
		return nil, newError(ErrIncompatibleInterleaveChange, from.Name, withDetail("interleave presence differs"))
	}

	var stmts []string

	if from.Interleave != nil {
		if from.Interleave.ParentTable != to.Interleave.ParentTable {
			return nil, newError(ErrIncompatibleInterleaveChange, from.Name,
				withBeforeAfter(from.Interleave.ParentTable, to.Interleave.ParentTable))
		}
		if from.Interleave.OnDelete != to.Interleave.OnDelete {
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s SET %s", from.Name, to.Interleave.OnDelete))
		}
	}

	if from.PrimaryKeyText != to.PrimaryKeyText {
		return nil, newError(ErrIncompatiblePrimaryKeyChange, from.Name,
			withBeforeAfter(from.PrimaryKeyText, to.PrimaryKeyText))
	}

	// Dropped columns (only-on-left).
	for pair := from.Columns.Oldest(); pair != nil; pair = pair.Next() {
		if _, ok := to.Columns.Get(pair.Key); ok {
			continue
		}
		if policy.AllowDropStatements {
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", from.Name, pair.Key))
		}
	}

	// Added columns (only-on-right).
	for pair := to.Columns.Oldest(); pair != nil; pair = pair.Next() {
		if _, ok := from.Columns.Get(pair.Key); ok {
			continue
		}
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", from.Name, columnDefinition(pair.Value)))
	}

	// Modified columns, in new-side order.
	for pair := to.Columns.Oldest(); pair != nil; pair = pair.Next() {
		fromCol, ok := from.Columns.Get(pair.Key)
		if !ok {
			continue
		}
		toCol := pair.Value
		if columnsEqual(fromCol, toCol) {
			continue
		}
		colStmts, err := diffColumn(from.Name, fromCol, toCol)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, colStmts...)
	}

	return stmts, nil
}

// diffColumn applies the §4.4.1 per-column compatibility rules in their
// fixed order; any rule that fails aborts the whole diff.
func diffColumn(table string, from, to *Column) ([]string, error) {
	var stmts []string

	typeChanged := from.TypeText != to.TypeText
	if typeChanged && !compatibleTypeChange(from.Type, to.Type) {
		return nil, newError(ErrIncompatibleTypeChange, table+"."+from.Name,
			withBeforeAfter(from.TypeText, to.TypeText))
	}

	if from.Generated != to.Generated {
		return nil, newError(ErrIncompatibleGenerationChange, table+"."+from.Name,
			withBeforeAfter(from.Generated, to.Generated))
	}

	if from.NotNull != to.NotNull || typeChanged {
		notNull := ""
		if to.NotNull {
			notNull = " NOT NULL"
		}
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s %s%s", table, to.Name, to.TypeText, notNull))
	}

	if optDiff := optionsDiffCanonical(from.Options, to.Options); optDiff != "" {
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET OPTIONS (%s)", table, to.Name, optDiff))
	}

	if from.Default != to.Default {
		if to.Default == "" {
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP DEFAULT", table, to.Name))
		} else {
			stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DEFAULT (%s)", table, to.Name, to.Default))
		}
	}

	return stmts, nil
}

// compatibleTypeChange implements §4.4.1 rule 1: a type change is
// in-place alterable only when the root type and array depth are
// unchanged and the root type is STRING or BYTES (a length-only change).
// Anything else — including any change to STRUCT/PG-dialect types, per
// the open question in spec §9 — is incompatible.
func compatibleTypeChange(from, to ast.Type) bool {
	if from.Root != to.Root || from.ArrayDepth != to.ArrayDepth {
		return false
	}
	return from.Root == ast.ScalarString || from.Root == ast.ScalarBytes
}
