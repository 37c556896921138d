package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVWriter writes results as delimited text with a header row
type CSVWriter struct {
	writer    io.Writer
	csv       *csv.Writer
	delimiter rune

	// Sanitize prefixes values that spreadsheet applications would run as
	// formulas. It changes the data, so it is off by default.
	Sanitize bool
}

// NewCSVWriter creates a new CSV writer
func NewCSVWriter(w io.Writer, delimiter rune) *CSVWriter {
	return &CSVWriter{writer: w, delimiter: delimiter}
}

// SetOutput sets the output writer
func (c *CSVWriter) SetOutput(w io.Writer) {
	c.writer = w
	c.csv = nil
}

func (c *CSVWriter) csvWriter() *csv.Writer {
	if c.csv == nil {
		c.csv = csv.NewWriter(c.writer)
		c.csv.Comma = c.delimiter
	}
	return c.csv
}

// write writes one record. encoding/csv leaves a lone empty field
// unquoted, which readers take for a blank line and skip, so that record
// is written as "" instead.
func (c *CSVWriter) write(record []string) error {
	if len(record) == 1 && record[0] == "" {
		w := c.csvWriter()
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
		_, err := io.WriteString(c.writer, "\"\"\n")
		return err
	}
	return c.csvWriter().Write(record)
}

// SetHeader writes the header row
func (c *CSVWriter) SetHeader(columns []string) error {
	return c.write(columns)
}

// AppendRow writes one data row
func (c *CSVWriter) AppendRow(row []string) error {
	if c.Sanitize {
		clean := make([]string, len(row))
		for i, v := range row {
			clean[i] = sanitize(v)
		}
		row = clean
	}
	return c.write(row)
}

// Flush flushes buffered rows and reports any write error
func (c *CSVWriter) Flush() error {
	w := c.csvWriter()
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

// sanitize guards against CSV injection by prefixing dangerous characters
// that could trigger formula execution in spreadsheet applications
func sanitize(val string) string {
	if len(val) == 0 {
		return val
	}
	switch val[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		// Escape existing single quotes and prefix with quote
		return "'" + strings.ReplaceAll(val, "'", "''")
	}
	return val
}
