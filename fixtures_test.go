package spanddl

import (
	"fmt"

	"github.com/spanner-tools/spanddl/ast"
)

// Hand-built ast fixtures for the core's tests. The core never imports the
// parser package (see ast's package doc), so tests construct ast values
// directly rather than parsing DDL text.

func int64Col(name string, notNull bool) ast.Column {
	return ast.Column{Name: name, TypeText: "INT64", Type: ast.Type{Root: ast.ScalarInt64}, NotNull: notNull}
}

func stringCol(name, length string, notNull bool) ast.Column {
	return ast.Column{
		Name:     name,
		TypeText: fmt.Sprintf("STRING(%s)", length),
		Type:     ast.Type{Root: ast.ScalarString, Length: length},
		NotNull:  notNull,
	}
}

func createTableStmt(name, pk string, cols ...ast.Column) *ast.CreateTable {
	return &ast.CreateTable{
		TableName:      name,
		Columns:        cols,
		PrimaryKeyText: pk,
		Text:           fmt.Sprintf("CREATE TABLE %s (...) PRIMARY KEY %s", name, pk),
	}
}

func interleavedTableStmt(name, pk, parent, onDelete string, cols ...ast.Column) *ast.CreateTable {
	t := createTableStmt(name, pk, cols...)
	t.Interleave = &ast.Interleave{ParentTable: parent, OnDelete: onDelete}
	return t
}

func createIndexStmt(indexName, tableName, text string) *ast.CreateIndex {
	return &ast.CreateIndex{IndexName: indexName, TableName: tableName, Text: text}
}

func alterDatabaseStmt(dbName string, options map[string]string) *ast.AlterDatabase {
	return &ast.AlterDatabase{DatabaseName: dbName, Options: options, Text: "ALTER DATABASE " + dbName}
}

func addRowDeletionPolicyStmt(table, innerText string) *ast.AlterTable {
	return &ast.AlterTable{
		TableName:         table,
		AlterKind:         ast.AlterTableAddRowDeletionPolicy,
		RowDeletionPolicy: &ast.RowDeletionPolicy{Text: innerText},
		Text:              fmt.Sprintf("ALTER TABLE %s ADD ROW DELETION POLICY (%s)", table, innerText),
	}
}

func createChangeStreamStmt(name, forText, optionsText string) *ast.CreateChangeStream {
	text := "CREATE CHANGE STREAM " + name
	if forText != "" {
		text += " " + forText
	}
	if optionsText != "" {
		text += " " + optionsText
	}
	return &ast.CreateChangeStream{Name: name, ForText: forText, OptionsText: optionsText, Text: text}
}

func schemaOf(t ...*ast.CreateTable) *Schema {
	stmts := make([]ast.Statement, len(t))
	for i, ct := range t {
		stmts[i] = ct
	}
	s, err := Extract(stmts)
	if err != nil {
		panic(err)
	}
	return s
}
