package spanddl

import (
	"testing"

	"github.com/spanner-tools/spanddl/ast"
)

// Scenario 1 from spec §8: adding a column.
func TestDiffTableAddColumn(t *testing.T) {
	from, _ := schemaOf(createTableStmt("T", "(id)", int64Col("id", true))).Table("T")
	to, _ := schemaOf(createTableStmt("T", "(id)", int64Col("id", true), stringCol("name", "100", false))).Table("T")

	stmts, err := diffTable(from, to, Policy{})
	if err != nil {
		t.Fatalf("diffTable: %v", err)
	}
	want := []string{"ALTER TABLE T ADD COLUMN name STRING(100)"}
	assertStringSlice(t, stmts, want)
}

// Scenario 2: a compatible length-only type change.
func TestDiffColumnCompatibleTypeChange(t *testing.T) {
	from := stringCol("name", "100", false)
	to := stringCol("name", "200", false)
	stmts, err := diffColumn("T", &from, &to)
	if err != nil {
		t.Fatalf("diffColumn: %v", err)
	}
	assertStringSlice(t, stmts, []string{"ALTER TABLE T ALTER COLUMN name STRING(200)"})
}

// Scenario 2 (continued): an incompatible type change.
func TestDiffColumnIncompatibleTypeChange(t *testing.T) {
	from := stringCol("name", "100", false)
	to := int64Col("name", false)
	_, err := diffColumn("T", &from, &to)
	assertErrorKind(t, err, ErrIncompatibleTypeChange)
}

func TestDiffTableInterleavePresenceMismatch(t *testing.T) {
	from := newTable(createTableStmt("C", "(id)", int64Col("id", true)))
	to := newTable(interleavedTableStmt("C", "(id)", "P", "ON DELETE CASCADE", int64Col("id", true)))
	_, err := diffTable(from, to, Policy{})
	assertErrorKind(t, err, ErrIncompatibleInterleaveChange)
}

func TestDiffTableInterleaveParentMismatch(t *testing.T) {
	from := newTable(interleavedTableStmt("C", "(id)", "P1", "ON DELETE CASCADE", int64Col("id", true)))
	to := newTable(interleavedTableStmt("C", "(id)", "P2", "ON DELETE CASCADE", int64Col("id", true)))
	_, err := diffTable(from, to, Policy{})
	assertErrorKind(t, err, ErrIncompatibleInterleaveChange)
}

func TestDiffTableInterleaveOnDeleteChange(t *testing.T) {
	from := newTable(interleavedTableStmt("C", "(id)", "P", "ON DELETE CASCADE", int64Col("id", true)))
	to := newTable(interleavedTableStmt("C", "(id)", "P", "ON DELETE NO ACTION", int64Col("id", true)))
	stmts, err := diffTable(from, to, Policy{})
	if err != nil {
		t.Fatalf("diffTable: %v", err)
	}
	assertStringSlice(t, stmts, []string{"ALTER TABLE C SET ON DELETE NO ACTION"})
}

func TestDiffTablePrimaryKeyMismatch(t *testing.T) {
	from := newTable(createTableStmt("T", "(id)", int64Col("id", true)))
	to := newTable(createTableStmt("T", "(id, shard)", int64Col("id", true)))
	_, err := diffTable(from, to, Policy{})
	assertErrorKind(t, err, ErrIncompatiblePrimaryKeyChange)
}

func TestDiffTableDropColumnGatedByPolicy(t *testing.T) {
	from := newTable(createTableStmt("T", "(id)", int64Col("id", true), stringCol("name", "100", false)))
	to := newTable(createTableStmt("T", "(id)", int64Col("id", true)))

	stmts, err := diffTable(from, to, Policy{})
	if err != nil {
		t.Fatalf("diffTable: %v", err)
	}
	if len(stmts) != 0 {
		t.Errorf("expected no statements without AllowDropStatements, got %v", stmts)
	}

	stmts, err = diffTable(from, to, Policy{AllowDropStatements: true})
	if err != nil {
		t.Fatalf("diffTable: %v", err)
	}
	assertStringSlice(t, stmts, []string{"ALTER TABLE T DROP COLUMN name"})
}

func TestDiffColumnGenerationChange(t *testing.T) {
	from := ast.Column{Name: "c", TypeText: "INT64", Type: ast.Type{Root: ast.ScalarInt64}, Generated: "a + b"}
	to := ast.Column{Name: "c", TypeText: "INT64", Type: ast.Type{Root: ast.ScalarInt64}, Generated: "a - b"}
	_, err := diffColumn("T", &from, &to)
	assertErrorKind(t, err, ErrIncompatibleGenerationChange)
}

func TestDiffColumnOptionsChange(t *testing.T) {
	from := int64Col("c", false)
	from.Options = map[string]string{"allow_commit_timestamp": "true", "old_only": "'x'"}
	to := int64Col("c", false)
	to.Options = map[string]string{"allow_commit_timestamp": "false"}

	stmts, err := diffColumn("T", &from, &to)
	if err != nil {
		t.Fatalf("diffColumn: %v", err)
	}
	assertStringSlice(t, stmts, []string{"ALTER TABLE T ALTER COLUMN c SET OPTIONS (allow_commit_timestamp=false, old_only=NULL)"})
}

func TestDiffColumnDefaultChange(t *testing.T) {
	from := int64Col("c", false)
	to := int64Col("c", false)
	to.Default = "0"
	stmts, err := diffColumn("T", &from, &to)
	if err != nil {
		t.Fatalf("diffColumn: %v", err)
	}
	assertStringSlice(t, stmts, []string{"ALTER TABLE T ALTER COLUMN c SET DEFAULT (0)"})

	// dropping a default
	stmts, err = diffColumn("T", &to, &from)
	if err != nil {
		t.Fatalf("diffColumn: %v", err)
	}
	assertStringSlice(t, stmts, []string{"ALTER TABLE T ALTER COLUMN c DROP DEFAULT"})
}

func assertStringSlice(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %q, want %q (full: got=%v want=%v)", i, got[i], want[i], got, want)
		}
	}
}
