package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spanner-tools/spanddl/ast"
)

func TestStripLineComments(t *testing.T) {
	in := "CREATE TABLE T ( -- a comment\n  id INT64\n) PRIMARY KEY (id); -- trailing\n"
	got := stripLineComments(in)
	want := "CREATE TABLE T ( \n  id INT64\n) PRIMARY KEY (id); \n"
	if got != want {
		t.Errorf("stripLineComments() = %q, want %q", got, want)
	}
}

func TestSplitStatements(t *testing.T) {
	in := "CREATE TABLE A (id INT64) PRIMARY KEY (id); CREATE TABLE B (id INT64) PRIMARY KEY (id);"
	got := splitStatements(in)
	want := []string{
		"CREATE TABLE A (id INT64) PRIMARY KEY (id)",
		" CREATE TABLE B (id INT64) PRIMARY KEY (id)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("splitStatements() mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitStatementsIgnoresSemicolonInQuotes(t *testing.T) {
	in := "ALTER DATABASE D SET OPTIONS (label='a;b');"
	got := splitStatements(in)
	if len(got) != 1 {
		t.Fatalf("splitStatements() = %v, want 1 fragment", got)
	}
}

func TestScalarFromName(t *testing.T) {
	cases := map[string]ast.ScalarType{
		"STRING":  ast.ScalarString,
		"bytes":   ast.ScalarBytes,
		"INT64":   ast.ScalarInt64,
		"unknown": ast.ScalarOther,
	}
	for in, want := range cases {
		if got := scalarFromName(in); got != want {
			t.Errorf("scalarFromName(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseErrorMessage(t *testing.T) {
	err := &parseError{fragment: "BOGUS", message: "unexpected token"}
	if diff := cmp.Diff("BOGUS", err.Fragment()); diff != "" {
		t.Errorf("Fragment() mismatch (-want +got):\n%s", diff)
	}
	if err.Message() != "unexpected token" {
		t.Errorf("Message() = %q", err.Message())
	}
}
