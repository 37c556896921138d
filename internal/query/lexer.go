package query

import (
	"unicode"
	"unicode/utf8"
)

// Lexer splits a select expression into whitespace-delimited tokens
type Lexer struct {
	input string
	pos   int // offset of ch
	next  int // offset after ch
	ch    rune
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar reads the next character
func (l *Lexer) readChar() {
	l.pos = l.next
	if l.next >= len(l.input) {
		l.ch = 0
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.next:])
	l.ch = r
	l.next += size
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

// readWord reads everything up to the next whitespace
func (l *Lexer) readWord() string {
	start := l.pos
	for !l.atEnd() && !unicode.IsSpace(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// NextToken returns the next token
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.atEnd() {
		return Token{Type: TokenEOF, Value: "", Pos: len(l.input)}
	}

	pos := l.pos
	word := l.readWord()
	return Token{Type: wordType(word), Value: word, Pos: pos}
}

// wordType classifies a word as a mnemonic, an operator, or plain text
func wordType(word string) TokenType {
	switch word {
	case "=":
		return TokenEqual
	case "<":
		return TokenLess
	case ">":
		return TokenGreater
	case "<=":
		return TokenLessEqual
	case ">=":
		return TokenGreaterEqual
	}

	if keywordEqual(word, "SELECT") {
		return TokenSelect
	}
	if keywordEqual(word, "WHERE") {
		return TokenWhere
	}
	return TokenWord
}

// keywordEqual compares word to an upper-case keyword, folding ASCII letters
// only. Unicode folding would accept "ſelect" (long s) as SELECT.
func keywordEqual(word, keyword string) bool {
	if len(word) != len(keyword) {
		return false
	}
	for i := 0; i < len(word); i++ {
		c := word[i]
		if 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c != keyword[i] {
			return false
		}
	}
	return true
}

// Tokenize returns all tokens from the input, ending with TokenEOF
func Tokenize(input string) []Token {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}

	return tokens
}
