package spanddl

// Policy is the three-flag configuration surface consumed by the Plan
// Generator (spec.md §4.7). It plays the same role as the teacher's
// StatementModifiers: a small value gating which generated statements are
// actually emitted.
type Policy struct {
	// AllowRecreateIndexes permits DROP INDEX + CREATE INDEX pairs for
	// modified indexes. Without it, any modified index fails the diff.
	AllowRecreateIndexes bool

	// AllowRecreateConstraints permits DROP CONSTRAINT + ADD CONSTRAINT pairs
	// for modified constraints. Without it, any modified constraint fails
	// the diff.
	AllowRecreateConstraints bool

	// AllowDropStatements permits DROP TABLE, DROP INDEX (for removals),
	// DROP CHANGE STREAM, and DROP COLUMN. When false these are silently
	// omitted rather than erroring; this does not suppress the DROP half of
	// a recreate (modified indexes/constraints still drop-and-add).
	AllowDropStatements bool
}
