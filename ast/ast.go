// Package ast defines the abstract shape of a parsed Cloud Spanner DDL
// statement that the diff engine consumes. It intentionally carries no
// parsing logic of its own: producing these values from DDL text is the
// job of an external collaborator (see package parser for a concrete,
// memefish-backed one). Every field here is already canonicalized text —
// normalized whitespace, upper-cased keywords, resolved identifiers — so
// the core never needs to reason about surface syntax.
package ast

// Kind tags the statement shapes the Extractor understands. Any other
// parsed statement is handed to the core as Unsupported.
type Kind string

const (
	KindCreateTable        Kind = "create_table"
	KindCreateIndex        Kind = "create_index"
	KindAlterTable         Kind = "alter_table"
	KindAlterDatabase      Kind = "alter_database"
	KindCreateChangeStream Kind = "create_change_stream"
	KindUnsupported        Kind = "unsupported"
)

// Statement is the common contract every parsed DDL fragment satisfies.
type Statement interface {
	Kind() Kind
	// SQL returns the canonical text rendering of the statement, used both
	// for equality and, for object kinds that are emitted verbatim (indexes,
	// change streams), as the literal CREATE statement text.
	SQL() string
}

// ScalarType names a Spanner scalar type outside of array/length concerns.
type ScalarType string

const (
	ScalarString    ScalarType = "STRING"
	ScalarBytes     ScalarType = "BYTES"
	ScalarInt64     ScalarType = "INT64"
	ScalarFloat64   ScalarType = "FLOAT64"
	ScalarBool      ScalarType = "BOOL"
	ScalarDate      ScalarType = "DATE"
	ScalarTimestamp ScalarType = "TIMESTAMP"
	ScalarNumeric   ScalarType = "NUMERIC"
	ScalarJSON      ScalarType = "JSON"
	ScalarOther     ScalarType = "OTHER" // PROTO<...>, ENUM<...>, STRUCT<...>, or anything the parser didn't special-case
)

// Type is a small recursive variant over Spanner column types: a scalar,
// optionally wrapped in one level of ARRAY<...>, optionally carrying a
// STRING/BYTES length argument (a literal digit string, or "MAX").
type Type struct {
	Root       ScalarType
	ArrayDepth int
	Length     string // "" if the root type takes no length argument
}

// Column is a single column definition within a CREATE TABLE.
type Column struct {
	Name       string
	TypeText   string // canonical rendering, e.g. "ARRAY<STRING(MAX)>"
	Type       Type
	NotNull    bool
	Default    string // canonical default expression text; "" if none
	Generated  string // canonical generation expression text; "" if not generated
	Options    map[string]string
}

// ConstraintKind distinguishes the two constraint variants Spanner supports
// at the table level.
type ConstraintKind string

const (
	ConstraintCheck      ConstraintKind = "check"
	ConstraintForeignKey ConstraintKind = "foreign_key"
)

// Constraint is a named table constraint, whether declared inline in a
// CREATE TABLE or added later via ALTER TABLE ... ADD CONSTRAINT. Name is
// empty for an anonymous constraint; the Extractor rejects those.
type Constraint struct {
	Name  string
	Table string
	Kind  ConstraintKind
	Text  string // canonical body, e.g. "FOREIGN KEY (a) REFERENCES t (b)"
}

// Interleave describes a table's physical co-location under a parent.
type Interleave struct {
	ParentTable string
	OnDelete    string // canonical on-delete action, e.g. "ON DELETE CASCADE" or "ON DELETE NO ACTION"
}

// RowDeletionPolicy is a table's TTL declaration.
type RowDeletionPolicy struct {
	Text string // canonical body, e.g. "OLDER_THAN(ts, INTERVAL 7 DAY)"
}

// CreateTable is the statement shape produced for a CREATE TABLE. Inline
// constraints and row-deletion-policy are still attached here; the
// Extractor promotes them into the Schema's top-level maps and the
// resulting Table node drops them, per spec: table equality ignores them.
type CreateTable struct {
	TableName         string
	Columns           []Column
	PrimaryKeyText    string // canonical text of the key-part list, e.g. "(id, shard DESC)"
	Interleave        *Interleave
	Constraints       []Constraint
	RowDeletionPolicy *RowDeletionPolicy
	Text              string // canonical full statement text (including constraints/TTL, for SQL())
}

func (s *CreateTable) Kind() Kind  { return KindCreateTable }
func (s *CreateTable) SQL() string { return s.Text }

// CreateIndex is a standalone CREATE INDEX statement.
type CreateIndex struct {
	IndexName string
	TableName string
	Text      string
}

func (s *CreateIndex) Kind() Kind  { return KindCreateIndex }
func (s *CreateIndex) SQL() string { return s.Text }

// AlterTableKind distinguishes the ALTER TABLE shapes the Extractor
// accepts; the parser gives any other child an AlterKind outside this set,
// which the Extractor rejects as an unsupported statement.
type AlterTableKind string

const (
	AlterTableAddConstraint        AlterTableKind = "add_constraint"
	AlterTableAddRowDeletionPolicy AlterTableKind = "add_row_deletion_policy"
)

// AlterTable is the accepted subset of ALTER TABLE statements: adding a
// named constraint, or adding a row-deletion policy.
type AlterTable struct {
	TableName         string
	AlterKind         AlterTableKind
	Constraint        *Constraint        // set iff AlterKind == AlterTableAddConstraint
	RowDeletionPolicy *RowDeletionPolicy // set iff AlterKind == AlterTableAddRowDeletionPolicy
	Text              string
}

func (s *AlterTable) Kind() Kind  { return KindAlterTable }
func (s *AlterTable) SQL() string { return s.Text }

// AlterDatabase is an ALTER DATABASE ... SET OPTIONS(...) statement, the only
// accepted way to supply database-level options (and the database name).
type AlterDatabase struct {
	DatabaseName string
	Options      map[string]string
	Text         string
}

func (s *AlterDatabase) Kind() Kind  { return KindAlterDatabase }
func (s *AlterDatabase) SQL() string { return s.Text }

// CreateChangeStream is a CREATE CHANGE STREAM statement.
type CreateChangeStream struct {
	Name        string
	ForText     string // canonical FOR clause, "" if the statement omitted FOR
	OptionsText string // canonical OPTIONS clause, "" if none
	Text        string
}

func (s *CreateChangeStream) Kind() Kind  { return KindCreateChangeStream }
func (s *CreateChangeStream) SQL() string { return s.Text }

// Unsupported wraps any parsed statement of a DDL kind other than the five
// above. (An ALTER TABLE with a child alteration other than ADD CONSTRAINT /
// ADD ROW DELETION POLICY stays an AlterTable with an unrecognized
// AlterKind.)
type Unsupported struct {
	Text string
}

func (s *Unsupported) Kind() Kind  { return KindUnsupported }
func (s *Unsupported) SQL() string { return s.Text }
