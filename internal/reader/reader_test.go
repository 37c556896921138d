package reader

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vegasq/csvselect/internal/query"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestReadDelimited(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		delimiter  rune
		wantHeader query.Schema
		wantRows   []query.Row
		wantErr    bool
	}{
		{
			name:       "comma separated",
			input:      "id,name,age\n1,alice,30\n2,bob,25\n",
			delimiter:  ',',
			wantHeader: query.Schema{"id", "name", "age"},
			wantRows:   []query.Row{{"1", "alice", "30"}, {"2", "bob", "25"}},
		},
		{
			name:       "quoted fields keep delimiters",
			input:      "name,city\n\"Doe, Jane\",\"New York\"\n",
			delimiter:  ',',
			wantHeader: query.Schema{"name", "city"},
			wantRows:   []query.Row{{"Doe, Jane", "New York"}},
		},
		{
			name:       "semicolon",
			input:      "a;b\n1;2\n",
			delimiter:  ';',
			wantHeader: query.Schema{"a", "b"},
			wantRows:   []query.Row{{"1", "2"}},
		},
		{
			name:       "header only",
			input:      "a,b\n",
			delimiter:  ',',
			wantHeader: query.Schema{"a", "b"},
			wantRows:   []query.Row{},
		},
		{
			name:       "byte order mark",
			input:      "\ufeffid,name\n7,x\n",
			delimiter:  ',',
			wantHeader: query.Schema{"id", "name"},
			wantRows:   []query.Row{{"7", "x"}},
		},
		{
			name:      "ragged row",
			input:     "a,b\n1,2\n3\n",
			delimiter: ',',
			wantErr:   true,
		},
		{
			name:      "empty input",
			input:     "",
			delimiter: ',',
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ReadDelimited(strings.NewReader(tt.input), tt.delimiter)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadDelimited() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(table.Header, tt.wantHeader) {
				t.Errorf("header = %q, want %q", table.Header, tt.wantHeader)
			}
			if !reflect.DeepEqual(table.Rows, tt.wantRows) {
				t.Errorf("rows = %q, want %q", table.Rows, tt.wantRows)
			}
		})
	}
}

func TestReadDelimited_NoHeader(t *testing.T) {
	_, err := ReadDelimited(strings.NewReader(""), ',')
	if !errors.Is(err, ErrNoHeader) {
		t.Errorf("ReadDelimited() error = %v, want %v", err, ErrNoHeader)
	}
}

func TestNewTable_RowWidth(t *testing.T) {
	if _, err := NewTable([]string{"a", "b"}, [][]string{{"1"}}); err == nil {
		t.Error("NewTable() accepted a short row")
	}
}

func TestCursor(t *testing.T) {
	table, err := NewTable([]string{"n"}, [][]string{{"1"}, {"2"}, {"3"}})
	if err != nil {
		t.Fatal(err)
	}

	drain := func(c *Cursor) []string {
		var got []string
		for {
			row, ok := c.Next()
			if !ok {
				return got
			}
			got = append(got, row[0])
		}
	}

	a := table.Cursor()
	b := table.Cursor()

	if row, _ := a.Next(); row[0] != "1" {
		t.Fatalf("first row = %v", row)
	}

	// b is unaffected by a
	if got := drain(b); !reflect.DeepEqual(got, []string{"1", "2", "3"}) {
		t.Errorf("second cursor read %v", got)
	}
	if got := drain(a); !reflect.DeepEqual(got, []string{"2", "3"}) {
		t.Errorf("first cursor read %v", got)
	}

	a.Reset()
	if got := drain(a); !reflect.DeepEqual(got, []string{"1", "2", "3"}) {
		t.Errorf("after reset read %v", got)
	}

	if !reflect.DeepEqual(a.Schema(), query.Schema{"n"}) {
		t.Errorf("Schema() = %v", a.Schema())
	}
	if table.Len() != 3 {
		t.Errorf("Len() = %d, want 3", table.Len())
	}
}

func TestCursor_RunsQueries(t *testing.T) {
	table, err := NewTable([]string{"id", "name", "age"}, [][]string{
		{"1", "alice", "30"},
		{"2", "bob", "25"},
	})
	if err != nil {
		t.Fatal(err)
	}

	expr, err := query.Parse("SELECT id WHERE name = bob")
	if err != nil {
		t.Fatal(err)
	}
	cursor := table.Cursor()
	if err := query.Validate(expr, cursor.Schema()); err != nil {
		t.Fatal(err)
	}

	result, err := query.Evaluate(expr, cursor)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(result.Rows, [][]string{{"2"}}) {
		t.Errorf("rows = %q", result.Rows)
	}
}

func TestOpen_Delimited(t *testing.T) {
	csvPath := writeFile(t, "people.csv", "id,name\n1,alice\n")
	table, err := Open(csvPath, 0)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if table.Path != csvPath {
		t.Errorf("Path = %q, want %q", table.Path, csvPath)
	}
	if !reflect.DeepEqual(table.Rows, []query.Row{{"1", "alice"}}) {
		t.Errorf("rows = %q", table.Rows)
	}

	tsvPath := writeFile(t, "people.tsv", "id\tname\n1\talice, jr\n")
	table, err = Open(tsvPath, 0)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !reflect.DeepEqual(table.Rows, []query.Row{{"1", "alice, jr"}}) {
		t.Errorf("rows = %q", table.Rows)
	}

	pipePath := writeFile(t, "people.txt", "id|name\n1|alice\n")
	table, err = Open(pipePath, '|')
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !reflect.DeepEqual(table.Header, query.Schema{"id", "name"}) {
		t.Errorf("header = %q", table.Header)
	}
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.csv"), ',')
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open() error = %v, want not exist", err)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"data.parquet", FormatParquet},
		{"DATA.PARQUET", FormatParquet},
		{"data.csv", FormatDelimited},
		{"data", FormatDelimited},
	}
	for _, tt := range tests {
		if got := DetectFormat(tt.path); got != tt.want {
			t.Errorf("DetectFormat(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
