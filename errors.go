package spanddl

import "fmt"

// ErrorKind enumerates the fatal error taxonomy of the diff engine. Every
// error the engine raises carries one of these kinds; there is no partial
// or recovered failure mode (spec.md §7).
type ErrorKind string

const (
	ErrParse                        ErrorKind = "parse_error"
	ErrUnsupportedStatement         ErrorKind = "unsupported_statement"
	ErrAnonymousConstraint          ErrorKind = "anonymous_constraint"
	ErrConflictingDatabaseName      ErrorKind = "conflicting_database_name"
	ErrMissingDatabaseName          ErrorKind = "missing_database_name"
	ErrRecreateNotPermitted         ErrorKind = "recreate_not_permitted"
	ErrIncompatibleInterleaveChange ErrorKind = "incompatible_interleave_change"
	ErrIncompatiblePrimaryKeyChange ErrorKind = "incompatible_primary_key_change"
	ErrIncompatibleTypeChange       ErrorKind = "incompatible_type_change"
	ErrIncompatibleGenerationChange ErrorKind = "incompatible_generation_change"
)

// Error is the single error type raised by every component of the diff
// engine. It plays the same role as the teacher's ForbiddenDiffError: a
// typed, inspectable error rather than an opaque string, so callers can
// branch on Kind instead of matching message text.
type Error struct {
	Kind   ErrorKind
	Object string // name of the offending table/column/index/constraint/etc, if applicable
	Before string // before-value, if applicable (e.g. prior database name, prior type)
	After  string // after-value, if applicable
	Detail string // free-form additional context (e.g. offending DDL fragment, parser message)
}

// Error satisfies the builtin error interface.
func (e *Error) Error() string {
	switch {
	case e.Object != "" && e.Before != "" && e.After != "":
		return fmt.Sprintf("%s: %s (%s -> %s)%s", e.Kind, e.Object, e.Before, e.After, detailSuffix(e.Detail))
	case e.Object != "":
		return fmt.Sprintf("%s: %s%s", e.Kind, e.Object, detailSuffix(e.Detail))
	default:
		return fmt.Sprintf("%s%s", e.Kind, detailSuffix(e.Detail))
	}
}

func detailSuffix(detail string) string {
	if detail == "" {
		return ""
	}
	return ": " + detail
}

func newError(kind ErrorKind, object string, opts ...func(*Error)) *Error {
	e := &Error{Kind: kind, Object: object}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func withBeforeAfter(before, after string) func(*Error) {
	return func(e *Error) {
		e.Before = before
		e.After = after
	}
}

func withDetail(detail string) func(*Error) {
	return func(e *Error) { e.Detail = detail }
}
