// Package output provides sinks for query results.
//
// Memory accumulates a result so it can be saved or replayed later. The
// streaming formatters (CSV, JSON Lines and a rendered text table) write rows
// to an io.Writer as they arrive.
//
// Example usage:
//
//	formatter, err := output.New("csv", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := query.Execute(expr, cursor, formatter); err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Flush(); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/csvselect/internal/query"
)

// ErrHeaderNotSet is returned when a row arrives before the header
var ErrHeaderNotSet = errors.New("row written before header")

// Formatter is a query.Sink that writes to an io.Writer.
//
// Flush must be called after the last row; some formats only render then.
type Formatter interface {
	query.Sink

	// Flush writes any buffered output
	Flush() error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// Formats lists the names accepted by New
var Formats = []string{"csv", "tsv", "json", "jsonl", "table"}

// New returns the formatter registered under name.
func New(name string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(name) {
	case "csv":
		return NewCSVWriter(w, ','), nil
	case "tsv":
		return NewCSVWriter(w, '\t'), nil
	case "json", "jsonl":
		return NewJSONWriter(w), nil
	case "table":
		return NewTableWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported format %q (supported: %s)", name, strings.Join(Formats, ", "))
	}
}
