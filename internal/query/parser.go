package query

import (
	"fmt"
	"strings"
	"unicode"
)

// Parser turns the tokens of a select expression into an Expression
type Parser struct {
	input  string
	tokens []Token
	pos    int
}

// NewParser creates a new parser over input and its tokens
func NewParser(input string, tokens []Token) *Parser {
	return &Parser{
		input:  input,
		tokens: tokens,
		pos:    0,
	}
}

// current returns the current token
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Value: "", Pos: len(p.input)}
	}
	return p.tokens[p.pos]
}

// advance moves to the next token
func (p *Parser) advance() {
	p.pos++
}

// fail builds a ParseError pointing at pos
func (p *Parser) fail(pos int, err error) *ParseError {
	return &ParseError{Query: p.input, Pos: pos, Err: err}
}

// Parse parses a select expression of the form
//
//	SELECT <column-list-or-*> [WHERE <column> <op> <value>]
//
// Mnemonics are case-insensitive. Errors are always *ParseError.
func Parse(query string) (*Expression, error) {
	if err := ValidateQuery(query); err != nil {
		return nil, &ParseError{Query: query, Pos: -1, Err: err}
	}

	tokens := Tokenize(query)

	if err := ValidateTokens(tokens); err != nil {
		return nil, &ParseError{Query: query, Pos: -1, Err: err}
	}

	parser := NewParser(query, tokens)
	return parser.parseQuery()
}

// parseQuery parses: SELECT columns [WHERE column op value]
func (p *Parser) parseQuery() (*Expression, error) {
	tok := p.current()
	if tok.Type == TokenEOF {
		return nil, p.fail(0, ErrEmptyQuery)
	}
	if tok.Type != TokenSelect {
		return nil, p.fail(tok.Pos, fmt.Errorf("%w, got %q", ErrMissingSelect, tok.Value))
	}
	columnsStart := tok.Pos + len(tok.Value)
	p.advance()

	// The column list runs up to the first WHERE
	for p.current().Type != TokenWhere && p.current().Type != TokenEOF {
		p.advance()
	}
	boundary := p.current()

	expr := &Expression{Raw: p.input}
	if err := p.parseColumns(expr, columnsStart, boundary.Pos); err != nil {
		return nil, err
	}

	if boundary.Type == TokenWhere {
		p.advance()
		pred, err := p.parsePredicate(boundary)
		if err != nil {
			return nil, err
		}
		expr.Predicate = pred
	}

	return expr, nil
}

// parseColumns parses the raw text between SELECT and WHERE as either * or
// a comma-separated list of column names
func (p *Parser) parseColumns(expr *Expression, start, end int) error {
	segment := p.input[start:end]
	if strings.TrimSpace(segment) == "" {
		return p.fail(start, ErrMissingColumns)
	}

	if strings.TrimSpace(segment) == "*" {
		expr.Wildcard = true
		return nil
	}

	offset := start
	for _, part := range strings.Split(segment, ",") {
		name := strings.TrimSpace(part)
		switch {
		case name == "":
			return p.fail(offset, ErrEmptyColumn)
		case name == "*":
			return p.fail(offset, ErrMixedWildcard)
		case strings.IndexFunc(name, unicode.IsSpace) >= 0:
			return p.fail(offset, fmt.Errorf("%w: %q", ErrInvalidIdentifier, name))
		}
		if err := ValidateColumnName(name); err != nil {
			return p.fail(offset, err)
		}
		expr.Columns = append(expr.Columns, name)
		offset += len(part) + 1
	}

	return nil
}

// parsePredicate parses the three words after WHERE
func (p *Parser) parsePredicate(where Token) (*Predicate, error) {
	var words []Token
	for p.current().Type != TokenEOF {
		words = append(words, p.current())
		p.advance()
	}

	if len(words) != 3 {
		pos := where.Pos
		if len(words) > 3 {
			pos = words[3].Pos
		}
		return nil, p.fail(pos, fmt.Errorf("%w, got %d token(s)", ErrPredicateArity, len(words)))
	}

	column, opTok, literal := words[0], words[1], words[2]

	if column.Type != TokenWord {
		return nil, p.fail(column.Pos, fmt.Errorf("%w: expected column name, got %q", ErrPredicateArity, column.Value))
	}
	if strings.Contains(column.Value, ",") {
		return nil, p.fail(column.Pos, fmt.Errorf("%w: %q", ErrInvalidIdentifier, column.Value))
	}
	if err := ValidateColumnName(column.Value); err != nil {
		return nil, p.fail(column.Pos, err)
	}

	op, ok := operatorFor(opTok.Type)
	if !ok {
		return nil, p.fail(opTok.Pos, fmt.Errorf("%w, got %q", ErrUnknownOperator, opTok.Value))
	}

	if strings.Contains(literal.Value, ",") {
		return nil, p.fail(literal.Pos, fmt.Errorf("%w: %q", ErrInvalidLiteral, literal.Value))
	}

	return &Predicate{
		Column: column.Value,
		Op:     op,
		Value:  literal.Value,
	}, nil
}
