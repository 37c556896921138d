package query

import (
	"errors"
	"fmt"
)

// Input limits. Parse rejects anything larger before building an Expression.
const (
	MaxQueryLength      = 1 << 20 // bytes of query text
	MaxTokens           = 1000    // whitespace-separated words, EOF included
	MaxColumnNameLength = 256     // bytes per column name
)

var (
	ErrQueryTooLong      = errors.New("query exceeds length limit")
	ErrTooManyTokens     = errors.New("query has too many words")
	ErrColumnNameTooLong = errors.New("column name exceeds length limit")
)

// ValidateQuery rejects query text longer than MaxQueryLength.
func ValidateQuery(query string) error {
	if n := len(query); n > MaxQueryLength {
		return fmt.Errorf("%w (%d > %d bytes)", ErrQueryTooLong, n, MaxQueryLength)
	}
	return nil
}

// ValidateColumnName rejects names longer than MaxColumnNameLength.
func ValidateColumnName(name string) error {
	if n := len(name); n > MaxColumnNameLength {
		return fmt.Errorf("%w (%d > %d bytes)", ErrColumnNameTooLong, n, MaxColumnNameLength)
	}
	return nil
}

// ValidateTokens rejects token streams longer than MaxTokens.
func ValidateTokens(tokens []Token) error {
	if n := len(tokens); n > MaxTokens {
		return fmt.Errorf("%w (%d > %d)", ErrTooManyTokens, n, MaxTokens)
	}
	return nil
}

// Validate checks expr against schema. Every projected column and the
// predicate column must appear in schema exactly once.
//
// On success expr is marked valid; on failure it is marked invalid and a
// *ValidationError naming the first offending column is returned. Calling
// Validate again with the same schema yields the same verdict.
func Validate(expr *Expression, schema Schema) error {
	err := validate(expr, schema)
	expr.valid = err == nil
	return err
}

func validate(expr *Expression, schema Schema) error {
	if !expr.Wildcard {
		for _, col := range expr.Columns {
			if err := checkColumn(expr, schema, col); err != nil {
				return err
			}
		}
	}

	if p := expr.Predicate; p != nil {
		if err := checkColumn(expr, schema, p.Column); err != nil {
			return err
		}
		if !p.Op.Supported() {
			return &ValidationError{Query: expr.Raw, Err: fmt.Errorf("%w %d", ErrUnsupportedOperator, int(p.Op))}
		}
	}

	return nil
}

func checkColumn(expr *Expression, schema Schema, col string) error {
	switch schema.Count(col) {
	case 1:
		return nil
	case 0:
		return &ValidationError{Query: expr.Raw, Column: col, Err: ErrUnknownColumn}
	default:
		return &ValidationError{Query: expr.Raw, Column: col, Err: ErrAmbiguousColumn}
	}
}
