package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoHeader is returned when a delimited file has no header record
var ErrNoHeader = errors.New("file has no header row")

// LoadDelimited reads a delimited text file. The first record is the header;
// every following record must have the same number of fields.
func LoadDelimited(path string, delimiter rune) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	t, err := ReadDelimited(file, delimiter)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	t.Path = path
	return t, nil
}

// ReadDelimited reads a delimited table from r.
func ReadDelimited(r io.Reader, delimiter rune) (*Table, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = delimiter
	csvReader.FieldsPerRecord = 0 // all records as wide as the header

	header, err := csvReader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoHeader
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	header = trimBOM(header)

	var rows [][]string
	for {
		record, err := csvReader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rows = append(rows, record)
	}

	return NewTable(header, rows)
}

// trimBOM strips a UTF-8 byte order mark from the first header field
func trimBOM(header []string) []string {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return header
}
