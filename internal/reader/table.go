// Package reader loads tabular files into memory.
//
// Delimited text files (CSV, TSV, ...) and Apache Parquet files are read
// into a Table whose values are all strings. A Table never changes after it
// is loaded; queries read it through a Cursor, and each Cursor has its own
// read position so any number of queries can scan the same Table at once.
package reader

import (
	"fmt"

	"github.com/vegasq/csvselect/internal/query"
)

// Table is an in-memory dataset: a header plus rows of string values.
type Table struct {
	Path   string
	Header query.Schema
	Rows   []query.Row

	columns []Column // typed column info, when the source has it
}

// NewTable creates a table, checking every row against the header width.
func NewTable(header []string, rows [][]string) (*Table, error) {
	t := &Table{
		Header: append(query.Schema(nil), header...),
		Rows:   make([]query.Row, len(rows)),
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("row %d has %d values, header has %d", i+1, len(row), len(header))
		}
		t.Rows[i] = row
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Cursor returns a new read position over the table, starting at the first
// row.
func (t *Table) Cursor() *Cursor {
	return &Cursor{table: t}
}

// Cursor reads a Table row by row. It implements query.Dataset.
//
// A Cursor is not safe for concurrent use; create one per query.
type Cursor struct {
	table *Table
	pos   int
}

// Reset rewinds the cursor to the first row.
func (c *Cursor) Reset() {
	c.pos = 0
}

// Schema returns the table header.
func (c *Cursor) Schema() query.Schema {
	return c.table.Header
}

// Next returns the next row, or false after the last one.
func (c *Cursor) Next() (query.Row, bool) {
	if c.pos >= len(c.table.Rows) {
		return nil, false
	}
	row := c.table.Rows[c.pos]
	c.pos++
	return row, true
}
