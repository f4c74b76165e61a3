package spanddl

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/spanner-tools/spanddl/ast"
)

// Table is the canonical in-memory representation of a single table.
// Inline constraints and the inline row-deletion-policy have already been
// promoted out by the Extractor by the time a Table is constructed, so a
// Table carries neither; equality of two Tables therefore ignores them.
type Table struct {
	Name           string
	Columns        *orderedmap.OrderedMap[string, *Column]
	PrimaryKeyText string
	Interleave     *ast.Interleave
}

func newTable(ct *ast.CreateTable) *Table {
	t := &Table{
		Name:           ct.TableName,
		Columns:        orderedmap.New[string, *Column](),
		PrimaryKeyText: ct.PrimaryKeyText,
		Interleave:     ct.Interleave,
	}
	for _, col := range ct.Columns {
		col := col
		t.Columns.Set(col.Name, &col)
	}
	return t
}

func (t *Table) columnsInOrder() []*Column {
	cols := make([]*Column, 0, t.Columns.Len())
	for pair := t.Columns.Oldest(); pair != nil; pair = pair.Next() {
		cols = append(cols, pair.Value)
	}
	return cols
}

func interleaveEqual(a, b *ast.Interleave) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return a.ParentTable == b.ParentTable && a.OnDelete == b.OnDelete
}
