package query

import (
	"fmt"
)

// plan holds the column positions an expression resolves to in a schema
type plan struct {
	header     []string
	projection []int
	predicate  int // -1 without a predicate
	width      int // row length the plan reads up to
}

// resolve maps the expression's columns onto schema positions
func resolve(expr *Expression, schema Schema) (*plan, error) {
	pl := &plan{predicate: -1}

	if expr.Wildcard {
		pl.header = append([]string(nil), schema...)
		pl.projection = make([]int, len(schema))
		for i := range schema {
			pl.projection[i] = i
		}
	} else {
		pl.header = append([]string(nil), expr.Columns...)
		pl.projection = make([]int, len(expr.Columns))
		for i, col := range expr.Columns {
			idx := schema.Index(col)
			if idx < 0 {
				return nil, fmt.Errorf("%w: column %q", ErrSchemaMismatch, col)
			}
			pl.projection[i] = idx
		}
	}

	if expr.Predicate != nil {
		idx := schema.Index(expr.Predicate.Column)
		if idx < 0 {
			return nil, fmt.Errorf("%w: column %q", ErrSchemaMismatch, expr.Predicate.Column)
		}
		pl.predicate = idx
	}

	for _, idx := range pl.projection {
		pl.width = max(pl.width, idx+1)
	}
	pl.width = max(pl.width, pl.predicate+1)

	return pl, nil
}

// project copies the planned columns of row into a new slice
func (pl *plan) project(row Row) []string {
	out := make([]string, len(pl.projection))
	for i, idx := range pl.projection {
		out[i] = row[idx]
	}
	return out
}

// Execute runs a validated expression over source and streams the result
// into sink: the header once, then every matching row, projected, in source
// order. It returns the number of rows written.
//
// The source is reset before scanning and is never modified. Executing an
// expression that has not passed Validate returns ErrNotValidated.
func Execute(expr *Expression, source Dataset, sink Sink) (int, error) {
	if expr == nil || !expr.Valid() {
		return 0, ErrNotValidated
	}

	source.Reset()

	pl, err := resolve(expr, source.Schema())
	if err != nil {
		return 0, err
	}

	if err := sink.SetHeader(pl.header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	written := 0
	for line := 1; ; line++ {
		row, ok := source.Next()
		if !ok {
			break
		}
		if len(row) < pl.width {
			return written, fmt.Errorf("%w: row %d has %d values, need %d", ErrRowShape, line, len(row), pl.width)
		}

		if expr.Predicate != nil && !expr.Predicate.Match(row, pl.predicate) {
			continue
		}

		if err := sink.AppendRow(pl.project(row)); err != nil {
			return written, fmt.Errorf("failed to write row %d: %w", line, err)
		}
		written++
	}

	return written, nil
}

// Evaluate runs a validated expression over source and collects the result.
func Evaluate(expr *Expression, source Dataset) (*Result, error) {
	result := &Result{}
	if _, err := Execute(expr, source, result); err != nil {
		return nil, err
	}
	return result, nil
}
