package reader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"
)

// LoadParquet reads a parquet file into a Table.
//
// Columns follow the order of the top-level fields in the file schema. Every
// value is rendered as a string: numbers in their shortest form, booleans as
// true/false, nulls as the empty string and nested groups or lists as JSON.
// The entire file is loaded into memory.
func LoadParquet(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	schema := pqFile.Schema()
	header := ColumnNames(schema)
	fields := schema.Fields()

	reader := parquet.NewReader(pqFile)
	defer func() { _ = reader.Close() }()

	var rows [][]string
	for {
		row := make(map[string]interface{})
		err := reader.Read(&row)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row %d: %w", len(rows)+1, err)
		}

		values := make([]string, len(header))
		for i, col := range header {
			values[i] = formatField(row[col], fields[i])
		}
		rows = append(rows, values)
	}

	t, err := NewTable(header, rows)
	if err != nil {
		return nil, err
	}
	t.Path = path
	t.columns = parquetColumns(schema)
	return t, nil
}

// ColumnNames returns the top-level field names of a parquet schema in
// declaration order.
func ColumnNames(schema *parquet.Schema) []string {
	fields := schema.Fields()
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Name()
	}
	return names
}

// formatField renders v, turning timestamps and dates stored as plain
// numbers into times.
func formatField(v interface{}, field parquet.Field) string {
	if field.Leaf() && !field.Repeated() && field.Type() != nil {
		if lt := field.Type().LogicalType(); lt != nil {
			switch n := v.(type) {
			case int64:
				if lt.Timestamp != nil {
					return formatTimestamp(n, lt.Timestamp)
				}
			case int32:
				if lt.Date != nil {
					return time.Unix(int64(n)*secondsPerDay, 0).UTC().Format(time.DateOnly)
				}
			}
		}
	}
	return FormatValue(v)
}

const secondsPerDay = 24 * 60 * 60

func formatTimestamp(n int64, ts *format.TimestampType) string {
	var t time.Time
	switch {
	case ts.Unit.Nanos != nil:
		t = time.Unix(0, n)
	case ts.Unit.Micros != nil:
		t = time.UnixMicro(n)
	default:
		t = time.UnixMilli(n)
	}
	t = t.UTC()
	if !ts.IsAdjustedToUTC {
		// local wall time with no zone attached
		return t.Format("2006-01-02T15:04:05.999999999")
	}
	return t.Format(time.RFC3339Nano)
}

// FormatValue converts a decoded parquet value to its string form
func FormatValue(v interface{}) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	default:
		// groups, maps and lists
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}
