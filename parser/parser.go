// Package parser adapts github.com/cloudspannerecosystem/memefish — the
// real Cloud Spanner DDL parser — into this repository's own ast package.
// It is the only package allowed to import memefish; the core package
// (spanddl) depends solely on ast, so any mismatch between memefish's AST
// and Spanner's evolving grammar is contained here rather than leaking
// into the diff engine's compile-time surface.
package parser

import (
	"fmt"
	"strings"

	"github.com/cloudspannerecosystem/memefish"
	mast "github.com/cloudspannerecosystem/memefish/ast"

	"github.com/spanner-tools/spanddl/ast"
)

// Parse strips `--` line comments, splits the remaining text into
// individual DDL statements, and parses each one with memefish, producing
// this repository's own ast.Statement values (spec §6).
func Parse(name, ddl string) ([]ast.Statement, error) {
	stripped := stripLineComments(ddl)

	var stmts []ast.Statement
	for _, fragment := range splitStatements(stripped) {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		stmt, err := parseOne(name, fragment)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func parseOne(name, fragment string) (ast.Statement, error) {
	ddl, err := memefish.ParseDDL(name, fragment)
	if err != nil {
		return nil, &parseError{fragment: fragment, message: err.Error()}
	}
	return convert(ddl), nil
}

// stripLineComments removes `--` through end-of-line, leaving line breaks
// intact so that reported fragment offsets remain roughly aligned with the
// source.
func stripLineComments(ddl string) string {
	lines := strings.Split(ddl, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, "--"); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	return strings.Join(lines, "\n")
}

// splitStatements splits on top-level semicolons. A simple scan skips
// semicolons inside single-, double- or backtick-quoted text; escaped
// quote characters are not recognized, and memefish itself rejects any
// fragment that comes out malformed.
func splitStatements(ddl string) []string {
	var (
		fragments []string
		current   strings.Builder
		inQuote   rune
	)
	for _, r := range ddl {
		switch {
		case inQuote != 0:
			current.WriteRune(r)
			if r == inQuote {
				inQuote = 0
			}
		case r == '\'' || r == '"' || r == '`':
			inQuote = r
			current.WriteRune(r)
		case r == ';':
			fragments = append(fragments, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if strings.TrimSpace(current.String()) != "" {
		fragments = append(fragments, current.String())
	}
	return fragments
}

type parseError struct {
	fragment string
	message  string
}

func (e *parseError) Error() string {
	return fmt.Sprintf("parse_error: %s: %s", e.message, e.fragment)
}

// Fragment returns the offending DDL fragment, for callers that want to
// wrap this into the core's own *spanddl.Error (ErrParse).
func (e *parseError) Fragment() string { return e.fragment }

// Message returns memefish's own error text.
func (e *parseError) Message() string { return e.message }

// convert maps a memefish DDL node onto this repository's ast.Statement
// shapes, canonicalizing text along the way. Anything memefish parses that
// the core doesn't special-case becomes ast.Unsupported rather than an
// error here — unsupported-statement is the core's decision, not the
// parser's (spec §6: a kind tag drawn from a fixed set, canonical text,
// nothing more).
func convert(ddl mast.DDL) ast.Statement {
	switch n := ddl.(type) {
	case *mast.CreateTable:
		return convertCreateTable(n)
	case *mast.CreateIndex:
		return &ast.CreateIndex{IndexName: identName(n.Name), TableName: identName(n.TableName), Text: n.SQL()}
	case *mast.AlterTable:
		return convertAlterTable(n)
	case *mast.AlterDatabase:
		return convertAlterDatabase(n)
	case *mast.CreateChangeStream:
		return convertCreateChangeStream(n)
	default:
		return &ast.Unsupported{Text: ddl.SQL()}
	}
}

func identName(n interface{ SQL() string }) string {
	if n == nil {
		return ""
	}
	return n.SQL()
}

func convertCreateTable(n *mast.CreateTable) *ast.CreateTable {
	ct := &ast.CreateTable{
		TableName: identName(n.Name),
		Text:      n.SQL(),
	}
	for _, c := range n.Columns {
		ct.Columns = append(ct.Columns, convertColumn(c))
	}
	if n.PrimaryKeys != nil {
		ct.PrimaryKeyText = n.PrimaryKeys.SQL()
	}
	if n.Cluster != nil {
		ct.Interleave = &ast.Interleave{
			ParentTable: identName(n.Cluster.TableName),
			OnDelete:    n.Cluster.OnDelete.SQL(),
		}
	}
	for _, c := range n.TableConstraints {
		ct.Constraints = append(ct.Constraints, convertTableConstraint(c))
	}
	if n.RowDeletionPolicy != nil {
		ct.RowDeletionPolicy = &ast.RowDeletionPolicy{Text: n.RowDeletionPolicy.RowDeletionPolicy.SQL()}
	}
	return ct
}

func convertColumn(c *mast.ColumnDef) ast.Column {
	col := ast.Column{
		Name:     identName(c.Name),
		TypeText: c.Type.SQL(),
		Type:     convertType(c.Type),
		NotNull:  c.NotNull,
	}
	if c.DefaultExpr != nil {
		col.Default = c.DefaultExpr.Expr.SQL()
	}
	if c.GeneratedExpr != nil {
		col.Generated = c.GeneratedExpr.Expr.SQL()
	}
	if c.Options != nil {
		col.Options = convertOptions(c.Options)
	}
	return col
}

func convertType(t mast.SchemaType) ast.Type {
	typeText := t.SQL()
	switch v := t.(type) {
	case *mast.ArraySchemaType:
		inner := convertType(v.Item)
		inner.ArrayDepth++
		return inner
	case *mast.ScalarSchemaType:
		return ast.Type{Root: scalarFromName(string(v.Name)), Length: ""}
	case *mast.SizedSchemaType:
		length := ""
		if v.Max {
			length = "MAX"
		} else if v.Size != nil {
			length = v.Size.SQL()
		}
		return ast.Type{Root: scalarFromName(string(v.Name)), Length: length}
	default:
		_ = typeText
		return ast.Type{Root: ast.ScalarOther}
	}
}

func scalarFromName(name string) ast.ScalarType {
	switch strings.ToUpper(name) {
	case "STRING":
		return ast.ScalarString
	case "BYTES":
		return ast.ScalarBytes
	case "INT64":
		return ast.ScalarInt64
	case "FLOAT64":
		return ast.ScalarFloat64
	case "BOOL":
		return ast.ScalarBool
	case "DATE":
		return ast.ScalarDate
	case "TIMESTAMP":
		return ast.ScalarTimestamp
	case "NUMERIC":
		return ast.ScalarNumeric
	case "JSON":
		return ast.ScalarJSON
	default:
		return ast.ScalarOther
	}
}

func convertOptions(o *mast.Options) map[string]string {
	m := make(map[string]string, len(o.Records))
	for _, r := range o.Records {
		m[identName(r.Name)] = r.Value.SQL()
	}
	return m
}

func convertTableConstraint(c *mast.TableConstraint) ast.Constraint {
	name := ""
	if c.Name != nil {
		name = identName(c.Name)
	}
	switch con := c.Constraint.(type) {
	case *mast.Check:
		return ast.Constraint{Name: name, Kind: ast.ConstraintCheck, Text: con.SQL()}
	case *mast.ForeignKey:
		return ast.Constraint{Name: name, Kind: ast.ConstraintForeignKey, Text: con.SQL()}
	default:
		return ast.Constraint{Name: name, Kind: ast.ConstraintCheck, Text: c.Constraint.SQL()}
	}
}

func convertAlterTable(n *mast.AlterTable) *ast.AlterTable {
	at := &ast.AlterTable{TableName: identName(n.Name), Text: n.SQL()}
	switch a := n.TableAlteration.(type) {
	case *mast.AddTableConstraint:
		c := convertTableConstraint(a.TableConstraint)
		at.AlterKind = ast.AlterTableAddConstraint
		at.Constraint = &c
	case *mast.AddRowDeletionPolicy:
		at.AlterKind = ast.AlterTableAddRowDeletionPolicy
		at.RowDeletionPolicy = &ast.RowDeletionPolicy{Text: a.RowDeletionPolicy.SQL()}
	default:
		at.AlterKind = ast.AlterTableKind(fmt.Sprintf("unsupported:%T", a))
	}
	return at
}

func convertAlterDatabase(n *mast.AlterDatabase) *ast.AlterDatabase {
	ad := &ast.AlterDatabase{DatabaseName: identName(n.Name), Text: n.SQL()}
	if opts, ok := n.Options.(*mast.Options); ok {
		ad.Options = convertOptions(opts)
	}
	return ad
}

func convertCreateChangeStream(n *mast.CreateChangeStream) *ast.CreateChangeStream {
	cs := &ast.CreateChangeStream{Name: identName(n.Name), Text: n.SQL()}
	if n.For != nil {
		cs.ForText = n.For.SQL()
	}
	if n.Options != nil {
		cs.OptionsText = n.Options.SQL()
	}
	return cs
}
