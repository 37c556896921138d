package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// JSONWriter outputs rows as JSON Lines: one object per row, keys in
// column order. A column selected twice appears twice in the object.
type JSONWriter struct {
	writer io.Writer
	buf    *bufio.Writer
	keys   [][]byte // encoded column names
}

// NewJSONWriter creates a new JSON Lines writer
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONWriter) SetOutput(w io.Writer) {
	j.writer = w
	j.buf = nil
}

func (j *JSONWriter) out() *bufio.Writer {
	if j.buf == nil {
		j.buf = bufio.NewWriter(j.writer)
	}
	return j.buf
}

// SetHeader records the object keys
func (j *JSONWriter) SetHeader(columns []string) error {
	j.keys = make([][]byte, len(columns))
	for i, col := range columns {
		key, err := json.Marshal(col)
		if err != nil {
			return err
		}
		j.keys[i] = key
	}
	return nil
}

// AppendRow writes one object line
func (j *JSONWriter) AppendRow(row []string) error {
	if j.keys == nil {
		return ErrHeaderNotSet
	}

	w := j.out()
	_ = w.WriteByte('{')
	for i, key := range j.keys {
		if i > 0 {
			_ = w.WriteByte(',')
		}
		_, _ = w.Write(key)
		_ = w.WriteByte(':')

		var value string
		if i < len(row) {
			value = row[i]
		}
		data, err := json.Marshal(value)
		if err != nil {
			return err
		}
		_, _ = w.Write(data)
	}
	_ = w.WriteByte('}')
	return w.WriteByte('\n')
}

// Flush writes buffered lines
func (j *JSONWriter) Flush() error {
	return j.out().Flush()
}
