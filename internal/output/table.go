package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableWriter renders results as an aligned text table. Rows are buffered
// and drawn on Flush.
type TableWriter struct {
	writer io.Writer
	header []string
	rows   [][]string
	ready  bool // header set
}

// NewTableWriter creates a new table writer
func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{writer: w}
}

// SetOutput sets the output writer
func (t *TableWriter) SetOutput(w io.Writer) {
	t.writer = w
}

// SetHeader records the table header
func (t *TableWriter) SetHeader(columns []string) error {
	t.header = append([]string(nil), columns...)
	t.rows = nil
	t.ready = true
	return nil
}

// AppendRow buffers one row
func (t *TableWriter) AppendRow(row []string) error {
	if !t.ready {
		return ErrHeaderNotSet
	}
	t.rows = append(t.rows, row)
	return nil
}

// Flush renders the buffered table
func (t *TableWriter) Flush() error {
	if !t.ready {
		return nil
	}

	table := tablewriter.NewWriter(t.writer)
	table.SetHeader(t.header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(t.rows)
	table.Render()

	t.header, t.rows, t.ready = nil, nil, false
	return nil
}
