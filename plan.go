package spanddl

import (
	"fmt"
	"strings"
)

// Generate computes the ordered, dependency-safe migration plan that
// transforms "original" into "new" under the given policy, following the
// fixed 18-step order of spec §4.5. It is a pure function of its three
// arguments: no shared state, freely reentrant.
func Generate(original, new *Schema, policy Policy) ([]string, error) {
	diff := Analyze(original, new)

	dbName, err := resolveDatabaseName(original, new)
	if err != nil {
		return nil, err
	}

	if err := checkRecreateGate(diff, policy); err != nil {
		return nil, err
	}

	var stmts []string

	// 1. ALTER DATABASE SET OPTIONS.
	if optDiff := optionsDiffCanonical(original.databaseOptions, new.databaseOptions); optDiff != "" {
		if dbName == "" {
			return nil, newError(ErrMissingDatabaseName, "", withDetail("database_options differ but no ALTER DATABASE statement supplied a name"))
		}
		stmts = append(stmts, fmt.Sprintf("ALTER DATABASE %s SET OPTIONS (%s)", dbName, optDiff))
	}

	// 2. DROP INDEX (removed).
	if policy.AllowDropStatements {
		for _, name := range sortedKeys(diff.Indexes.Removed) {
			stmts = append(stmts, fmt.Sprintf("DROP INDEX %s", name))
		}
	}

	// 3. DROP CHANGE STREAM (removed).
	if policy.AllowDropStatements {
		for _, name := range sortedKeys(diff.ChangeStreams.Removed) {
			stmts = append(stmts, fmt.Sprintf("DROP CHANGE STREAM %s", name))
		}
	}

	// 4. DROP INDEX (modified) — unconditional once admitted by the gate.
	for _, name := range sortedModifiedKeys(diff.Indexes.Modified) {
		stmts = append(stmts, fmt.Sprintf("DROP INDEX %s", name))
	}

	// 5. DROP CONSTRAINT (removed).
	for _, name := range sortedKeys(diff.Constraints.Removed) {
		c := diff.Constraints.Removed[name]
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s", c.Table, name))
	}

	// 6. DROP CONSTRAINT (modified) — original-side owning table.
	for _, name := range sortedModifiedKeys(diff.Constraints.Modified) {
		c := diff.Constraints.Modified[name].From
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s", c.Table, name))
	}

	// 7. DROP ROW DELETION POLICY (removed).
	for _, name := range sortedKeys(diff.TTLs.Removed) {
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s DROP ROW DELETION POLICY", name))
	}

	// 8. DROP TABLE (removed) — reverse of the original creation order.
	if policy.AllowDropStatements {
		for _, name := range reverseOrder(original.TableNames()) {
			if _, removed := diff.Tables.Removed[name]; removed {
				stmts = append(stmts, fmt.Sprintf("DROP TABLE %s", name))
			}
		}
	}

	// 9. ALTER TABLE for every table in tables ∩ tables, original-side order.
	for _, name := range original.TableNames() {
		toTable, stillExists := new.Table(name)
		if !stillExists {
			continue
		}
		fromTable, _ := original.Table(name)
		alterStmts, err := diffTable(fromTable, toTable, policy)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, alterStmts...)
	}

	// 10. CREATE TABLE (added) — new-side creation order.
	for _, name := range new.TableNames() {
		if t, added := diff.Tables.Added[name]; added {
			stmts = append(stmts, createTableStatement(t))
		}
	}

	// 11. ADD ROW DELETION POLICY (added). Text is already the inner
	// OLDER_THAN(...) body (ast.RowDeletionPolicy's contract), so the clause
	// keyword is added here, once.
	for _, name := range sortedKeys(diff.TTLs.Added) {
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ADD ROW DELETION POLICY (%s)", name, diff.TTLs.Added[name].Text))
	}

	// 12. REPLACE ROW DELETION POLICY (modified).
	for _, name := range sortedModifiedKeys(diff.TTLs.Modified) {
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s REPLACE ROW DELETION POLICY (%s)", name, diff.TTLs.Modified[name].To.Text))
	}

	// 13. CREATE INDEX (added).
	for _, name := range sortedKeys(diff.Indexes.Added) {
		stmts = append(stmts, diff.Indexes.Added[name].Text)
	}

	// 14. CREATE INDEX (modified) — second half of the step-4 recreate pair.
	for _, name := range sortedModifiedKeys(diff.Indexes.Modified) {
		stmts = append(stmts, diff.Indexes.Modified[name].To.Text)
	}

	// 15. ADD CONSTRAINT (added) — new-side owning table.
	for _, name := range sortedKeys(diff.Constraints.Added) {
		c := diff.Constraints.Added[name]
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ADD %s", c.Table, constraintDefinition(c)))
	}

	// 16. ADD CONSTRAINT (modified) — new-side form, pairs with step 6.
	for _, name := range sortedModifiedKeys(diff.Constraints.Modified) {
		c := diff.Constraints.Modified[name].To
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ADD %s", c.Table, constraintDefinition(c)))
	}

	// 17. CREATE CHANGE STREAM (added).
	for _, name := range sortedKeys(diff.ChangeStreams.Added) {
		stmts = append(stmts, diff.ChangeStreams.Added[name].Text)
	}

	// 18. ALTER CHANGE STREAM (modified) — FOR before OPTIONS.
	for _, name := range sortedModifiedKeys(diff.ChangeStreams.Modified) {
		pair := diff.ChangeStreams.Modified[name]
		if pair.From.ForText != pair.To.ForText {
			stmts = append(stmts, fmt.Sprintf("ALTER CHANGE STREAM %s SET %s", name, pair.To.ForText))
		}
		if pair.From.OptionsText != pair.To.OptionsText {
			// OptionsText is already the full "OPTIONS (...)" clause, same as
			// ForText is already the full "FOR ..." clause above.
			stmts = append(stmts, fmt.Sprintf("ALTER CHANGE STREAM %s SET %s", name, pair.To.OptionsText))
		}
	}

	return stmts, nil
}

// resolveDatabaseName implements the name-resolution rule of spec §4.2: if
// both sides name a database they must agree; otherwise whichever side
// names one wins; if neither does, the empty name is returned and it is
// the caller's responsibility (step 1, above) to fail if it turns out to
// be needed.
func resolveDatabaseName(a, b *Schema) (string, error) {
	switch {
	case a.DatabaseName != "" && b.DatabaseName != "" && a.DatabaseName != b.DatabaseName:
		return "", newError(ErrConflictingDatabaseName, "", withBeforeAfter(a.DatabaseName, b.DatabaseName))
	case a.DatabaseName != "":
		return a.DatabaseName, nil
	default:
		return b.DatabaseName, nil
	}
}

// checkRecreateGate implements §4.5-gate: before any statement is emitted,
// fail atomically if a modified set is non-empty without its matching
// allow-flag.
func checkRecreateGate(diff *SchemaDifference, policy Policy) error {
	if len(diff.Indexes.Modified) > 0 && !policy.AllowRecreateIndexes {
		return newError(ErrRecreateNotPermitted, "indexes",
			withDetail(strings.Join(sortedModifiedKeys(diff.Indexes.Modified), ", ")))
	}
	if len(diff.Constraints.Modified) > 0 && !policy.AllowRecreateConstraints {
		return newError(ErrRecreateNotPermitted, "constraints",
			withDetail(strings.Join(sortedModifiedKeys(diff.Constraints.Modified), ", ")))
	}
	return nil
}

// createTableStatement renders a synthetic CREATE TABLE for an added
// table. Inline constraints and the inline TTL are deliberately omitted:
// they were promoted into diff.Constraints.Added / diff.TTLs.Added during
// extraction and ride the same ADD CONSTRAINT / ADD ROW DELETION POLICY
// machinery as any other addition, emitted in steps 11 and 15 after this
// table already exists.
func createTableStatement(t *Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (", t.Name)
	cols := t.columnsInOrder()
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = columnDefinition(c)
	}
	b.WriteString(strings.Join(defs, ", "))
	fmt.Fprintf(&b, ") PRIMARY KEY %s", t.PrimaryKeyText)
	if t.Interleave != nil {
		fmt.Fprintf(&b, ", INTERLEAVE IN PARENT %s %s", t.Interleave.ParentTable, t.Interleave.OnDelete)
	}
	return b.String()
}

func constraintDefinition(c *Constraint) string {
	return fmt.Sprintf("CONSTRAINT %s %s", c.Name, c.Text)
}
