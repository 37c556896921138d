package reader

import (
	"github.com/parquet-go/parquet-go"
)

// TypeText is the type of every column read from delimited text
const TypeText = "TEXT"

// Column describes one column of a loaded table.
type Column struct {
	Name     string
	Type     string
	Nullable bool
}

// Columns describes the table's columns in header order. Columns of
// delimited files are all TEXT; parquet columns carry their file type.
func (t *Table) Columns() []Column {
	cols := make([]Column, len(t.Header))
	for i, name := range t.Header {
		if i < len(t.columns) {
			cols[i] = t.columns[i]
		} else {
			cols[i] = Column{Type: TypeText}
		}
		cols[i].Name = name
	}
	return cols
}

// parquetColumns describes the top-level fields of schema. Nested groups
// are a single column, rendered as JSON, so they are reported as GROUP.
func parquetColumns(schema *parquet.Schema) []Column {
	fields := schema.Fields()
	cols := make([]Column, len(fields))
	for i, field := range fields {
		cols[i] = Column{
			Name:     field.Name(),
			Type:     fieldType(field),
			Nullable: field.Optional(),
		}
	}
	return cols
}

func fieldType(field parquet.Field) string {
	if field.Repeated() {
		return "LIST"
	}
	if !field.Leaf() || field.Type() == nil {
		return "GROUP"
	}

	typ := field.Type()
	if lt := typ.LogicalType(); lt != nil {
		// parameterised types print with their arguments, so match on the union
		switch {
		case lt.UTF8 != nil:
			return "STRING"
		case lt.Enum != nil:
			return "ENUM"
		case lt.UUID != nil:
			return "UUID"
		case lt.Date != nil:
			return "DATE"
		case lt.Time != nil:
			return "TIME"
		case lt.Timestamp != nil:
			return "TIMESTAMP"
		case lt.Decimal != nil:
			return "DECIMAL"
		case lt.Json != nil:
			return "JSON"
		case lt.Bson != nil:
			return "BSON"
		}
	}

	switch typ.Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT32"
	case parquet.Double:
		return "FLOAT64"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}
