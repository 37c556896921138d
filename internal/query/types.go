// Package query parses and evaluates select expressions over string-typed
// tabular data.
//
// The language is deliberately small:
//
//	SELECT <column-list-or-*> [WHERE <column> <op> <value>]
//
// A query moves through a fixed pipeline: Parse turns text into an
// Expression, Validate checks it against a dataset's Schema, and Execute
// streams the matching rows, projected to the requested columns, into a
// Sink.
//
// Example usage:
//
//	expr, err := query.Parse("select name, age where age > 25")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := query.Validate(expr, source.Schema()); err != nil {
//	    log.Fatal(err)
//	}
//	result, err := query.Evaluate(expr, source)
package query

// TokenType represents the type of a token
type TokenType int

const (
	// Mnemonics
	TokenSelect TokenType = iota
	TokenWhere

	// Operators
	TokenEqual        // =
	TokenLess         // <
	TokenGreater      // >
	TokenLessEqual    // <=
	TokenGreaterEqual // >=

	// Any other whitespace-delimited text
	TokenWord

	// Special
	TokenEOF
)

var tokenNames = map[TokenType]string{
	TokenSelect:       "SELECT",
	TokenWhere:        "WHERE",
	TokenEqual:        "=",
	TokenLess:         "<",
	TokenGreater:      ">",
	TokenLessEqual:    "<=",
	TokenGreaterEqual: ">=",
	TokenWord:         "word",
	TokenEOF:          "end of query",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown"
}

// Token represents a lexical token. Pos is the byte offset of the token in
// the query text.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// Operator is a comparison operator usable in a WHERE clause.
type Operator int

const (
	OpEqual Operator = iota
	OpLess
	OpGreater
	OpLessEqual
	OpGreaterEqual
)

func (o Operator) String() string {
	switch o {
	case OpEqual:
		return "="
	case OpLess:
		return "<"
	case OpGreater:
		return ">"
	case OpLessEqual:
		return "<="
	case OpGreaterEqual:
		return ">="
	default:
		return "?"
	}
}

// Supported reports whether o is one of the five comparison operators.
func (o Operator) Supported() bool {
	return o >= OpEqual && o <= OpGreaterEqual
}

// operatorFor maps an operator token to its Operator.
func operatorFor(t TokenType) (Operator, bool) {
	switch t {
	case TokenEqual:
		return OpEqual, true
	case TokenLess:
		return OpLess, true
	case TokenGreater:
		return OpGreater, true
	case TokenLessEqual:
		return OpLessEqual, true
	case TokenGreaterEqual:
		return OpGreaterEqual, true
	default:
		return 0, false
	}
}

// Schema is the ordered list of column names of a dataset.
type Schema []string

// Index returns the position of the first column named name, or -1.
// Lookup is case-sensitive.
func (s Schema) Index(name string) int {
	for i, col := range s {
		if col == name {
			return i
		}
	}
	return -1
}

// Count returns how many columns are named name.
func (s Schema) Count(name string) int {
	n := 0
	for _, col := range s {
		if col == name {
			n++
		}
	}
	return n
}

// Row is one record, positionally aligned with its dataset's Schema.
type Row []string

// Dataset is a restartable, finite sequence of rows sharing one Schema.
//
// Reset rewinds the read position so the next call to Next returns the
// first row again. Implementations used by concurrent queries must give each
// query its own read position.
type Dataset interface {
	Reset()
	Schema() Schema
	Next() (Row, bool)
}

// Sink receives the output of a query: the header exactly once, then each
// result row in order.
type Sink interface {
	SetHeader(columns []string) error
	AppendRow(row []string) error
}

// Predicate is the single optional filter condition of a query.
type Predicate struct {
	Column string
	Op     Operator
	Value  string // literal exactly as typed
}

// Expression is a parsed select expression. It is immutable apart from the
// validity flag, which only Validate sets.
type Expression struct {
	Raw       string
	Wildcard  bool
	Columns   []string // requested columns in order, nil for SELECT *
	Predicate *Predicate

	valid bool
}

// Valid reports whether the expression passed its most recent validation.
func (e *Expression) Valid() bool {
	return e.valid
}

// Result is a collected query result. It implements Sink.
type Result struct {
	Columns []string
	Rows    [][]string
}

// SetHeader records the result columns.
func (r *Result) SetHeader(columns []string) error {
	r.Columns = append([]string(nil), columns...)
	return nil
}

// AppendRow appends a result row.
func (r *Result) AppendRow(row []string) error {
	r.Rows = append(r.Rows, row)
	return nil
}
