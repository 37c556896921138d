package query

import (
	"errors"
	"fmt"
)

// Grammar errors, wrapped by ParseError.
var (
	ErrEmptyQuery        = errors.New("query is empty")
	ErrMissingSelect     = errors.New("query must start with SELECT")
	ErrMissingColumns    = errors.New("expected column list or * after SELECT")
	ErrEmptyColumn       = errors.New("empty column name in column list")
	ErrMixedWildcard     = errors.New("* cannot be combined with column names")
	ErrInvalidIdentifier = errors.New("column names cannot contain whitespace or commas")
	ErrPredicateArity    = errors.New("WHERE expects exactly <column> <operator> <value>")
	ErrUnknownOperator   = errors.New("operator must be one of =, <, >, <=, >=")
	ErrInvalidLiteral    = errors.New("value cannot contain commas")
)

// Schema errors, wrapped by ValidationError.
var (
	ErrUnknownColumn       = errors.New("unknown column")
	ErrAmbiguousColumn     = errors.New("ambiguous column")
	ErrUnsupportedOperator = errors.New("unsupported operator")
)

// Contract violations returned by the evaluator.
var (
	// ErrNotValidated is returned when an expression is evaluated before it
	// passed validation.
	ErrNotValidated = errors.New("expression has not been validated")

	// ErrSchemaMismatch is returned when a validated expression is run
	// against a dataset whose schema lacks a referenced column.
	ErrSchemaMismatch = errors.New("dataset schema does not match validated expression")

	// ErrRowShape is returned when a row has fewer values than its schema.
	ErrRowShape = errors.New("row does not match schema")
)

// ParseError reports malformed query text.
type ParseError struct {
	Query string // raw query text
	Pos   int    // byte offset of the offending token, -1 if unknown
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid select expression %q: %v", e.Query, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a well-formed query that does not fit the schema.
type ValidationError struct {
	Query  string // raw query text
	Column string // offending column
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("invalid select expression %q: %v", e.Query, e.Err)
	}
	return fmt.Sprintf("invalid select expression %q: %v %q", e.Query, e.Err, e.Column)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
