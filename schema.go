package spanddl

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/spanner-tools/spanddl/ast"
)

// Index, Constraint, ChangeStream, and RowDeletionPolicy are already
// canonical by construction (the parser/Extractor produce them fully
// formed), so the schema model reuses the ast package's shapes directly
// rather than wrapping them a second time.
type (
	Index             = ast.CreateIndex
	Constraint        = ast.Constraint
	ChangeStream      = ast.CreateChangeStream
	RowDeletionPolicy = ast.RowDeletionPolicy
)

// Schema is the canonical in-memory representation of a database schema
// (spec §3). Objects are immutable once produced by Extract; every
// downstream component (Analyze, Generate) only ever reads from it.
type Schema struct {
	DatabaseName string

	tables          *orderedmap.OrderedMap[string, *Table]
	indexes         map[string]*Index
	constraints     map[string]*Constraint
	ttls            map[string]*RowDeletionPolicy
	changeStreams   map[string]*ChangeStream
	databaseOptions map[string]string
}

func newSchema() *Schema {
	return &Schema{
		tables:          orderedmap.New[string, *Table](),
		indexes:         make(map[string]*Index),
		constraints:     make(map[string]*Constraint),
		ttls:            make(map[string]*RowDeletionPolicy),
		changeStreams:   make(map[string]*ChangeStream),
		databaseOptions: make(map[string]string),
	}
}

// Table returns the named table, if any.
func (s *Schema) Table(name string) (*Table, bool) { return s.tables.Get(name) }

// TableNames returns every table name in creation order.
func (s *Schema) TableNames() []string {
	names := make([]string, 0, s.tables.Len())
	for pair := s.tables.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Tables returns every table in creation order.
func (s *Schema) Tables() []*Table {
	tables := make([]*Table, 0, s.tables.Len())
	for pair := s.tables.Oldest(); pair != nil; pair = pair.Next() {
		tables = append(tables, pair.Value)
	}
	return tables
}

// Indexes returns the schema's indexes, keyed by name.
func (s *Schema) Indexes() map[string]*Index { return s.indexes }

// Constraints returns the schema's constraints, keyed by name.
func (s *Schema) Constraints() map[string]*Constraint { return s.constraints }

// TTLs returns the schema's row-deletion policies, keyed by table name.
func (s *Schema) TTLs() map[string]*RowDeletionPolicy { return s.ttls }

// ChangeStreams returns the schema's change streams, keyed by name.
func (s *Schema) ChangeStreams() map[string]*ChangeStream { return s.changeStreams }

// DatabaseOptions returns the union of all ALTER DATABASE SET OPTIONS seen
// during extraction.
func (s *Schema) DatabaseOptions() map[string]string { return s.databaseOptions }
