package spanddl

import "github.com/spanner-tools/spanddl/ast"

// Extract folds a sequence of parsed DDL statements into a Schema,
// promoting inline constraints and row-deletion-policies into their
// top-level maps and validating that every statement shape is one the
// engine understands (spec §4.2).
func Extract(stmts []ast.Statement) (*Schema, error) {
	s := newSchema()

	for _, stmt := range stmts {
		switch v := stmt.(type) {

		case *ast.CreateTable:
			if _, exists := s.tables.Get(v.TableName); exists {
				return nil, newError(ErrUnsupportedStatement, v.TableName, withDetail("duplicate CREATE TABLE"))
			}
			s.tables.Set(v.TableName, newTable(v))

			for _, c := range v.Constraints {
				if c.Name == "" {
					return nil, newError(ErrAnonymousConstraint, v.TableName, withDetail("inline constraint has no explicit name"))
				}
				if _, exists := s.constraints[c.Name]; exists {
					return nil, newError(ErrUnsupportedStatement, c.Name, withDetail("duplicate constraint name"))
				}
				cc := c
				cc.Table = v.TableName
				s.constraints[c.Name] = &cc
			}

			if v.RowDeletionPolicy != nil {
				s.ttls[v.TableName] = v.RowDeletionPolicy
			}

		case *ast.CreateIndex:
			if _, exists := s.indexes[v.IndexName]; exists {
				return nil, newError(ErrUnsupportedStatement, v.IndexName, withDetail("duplicate index name"))
			}
			s.indexes[v.IndexName] = v

		case *ast.AlterTable:
			switch v.AlterKind {
			case ast.AlterTableAddConstraint:
				if v.Constraint == nil || v.Constraint.Name == "" {
					return nil, newError(ErrAnonymousConstraint, v.TableName, withDetail("ALTER TABLE ADD CONSTRAINT has no explicit name"))
				}
				if _, exists := s.constraints[v.Constraint.Name]; exists {
					return nil, newError(ErrUnsupportedStatement, v.Constraint.Name, withDetail("duplicate constraint name"))
				}
				cc := *v.Constraint
				cc.Table = v.TableName
				s.constraints[cc.Name] = &cc

			case ast.AlterTableAddRowDeletionPolicy:
				if v.RowDeletionPolicy == nil {
					return nil, newError(ErrUnsupportedStatement, v.TableName, withDetail("ALTER TABLE ADD ROW DELETION POLICY missing policy body"))
				}
				s.ttls[v.TableName] = v.RowDeletionPolicy

			default:
				return nil, newError(ErrUnsupportedStatement, v.TableName, withDetail("unsupported ALTER TABLE child"))
			}

		case *ast.AlterDatabase:
			if s.DatabaseName != "" && v.DatabaseName != "" && s.DatabaseName != v.DatabaseName {
				return nil, newError(ErrConflictingDatabaseName, v.DatabaseName, withBeforeAfter(s.DatabaseName, v.DatabaseName))
			}
			if v.DatabaseName != "" {
				s.DatabaseName = v.DatabaseName
			}
			for k, val := range v.Options {
				s.databaseOptions[k] = val
			}

		case *ast.CreateChangeStream:
			if _, exists := s.changeStreams[v.Name]; exists {
				return nil, newError(ErrUnsupportedStatement, v.Name, withDetail("duplicate change stream name"))
			}
			s.changeStreams[v.Name] = v

		default:
			return nil, newError(ErrUnsupportedStatement, "", withDetail(stmt.SQL()))
		}
	}

	return s, nil
}
