package output

import (
	"fmt"
	"os"

	"github.com/vegasq/csvselect/internal/query"
)

// Memory accumulates a query result in memory so it can be saved or
// replayed into another sink.
type Memory struct {
	Header []string
	Rows   [][]string
}

// NewMemory creates an empty in-memory sink
func NewMemory() *Memory {
	return &Memory{}
}

// SetHeader records the result columns, discarding any previous result
func (m *Memory) SetHeader(columns []string) error {
	m.Header = append([]string(nil), columns...)
	m.Rows = nil
	return nil
}

// AppendRow stores a copy of row
func (m *Memory) AppendRow(row []string) error {
	m.Rows = append(m.Rows, append([]string(nil), row...))
	return nil
}

// Len returns the number of stored rows
func (m *Memory) Len() int {
	return len(m.Rows)
}

// Replay writes the stored result into sink, header first.
func (m *Memory) Replay(sink query.Sink) error {
	if err := sink.SetHeader(m.Header); err != nil {
		return err
	}
	for _, row := range m.Rows {
		if err := sink.AppendRow(row); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the stored result to path as delimited text.
func (m *Memory) Save(path string, delimiter rune) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
	}()

	w := NewCSVWriter(file, delimiter)
	if err := m.Replay(w); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return w.Flush()
}
