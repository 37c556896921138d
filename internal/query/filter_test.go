package query

import (
	"testing"
)

func TestCompare_Numbers(t *testing.T) {
	tests := []struct {
		name  string
		left  string
		op    Operator
		right string
		want  bool
	}{
		{"numeric greater across widths", "10", OpGreater, "9", true},
		{"numeric not greater", "9", OpGreater, "9", false},
		{"numeric less", "9", OpLess, "10", true},
		{"equal with different spelling", "30", OpEqual, "30.0", true},
		{"equal leading zeros", "007", OpEqual, "7", true},
		{"negative", "-5", OpLess, "2", true},
		{"explicit plus", "+3", OpEqual, "3", true},
		{"fraction", "2.5", OpGreaterEqual, "2.50", true},
		{"bare fraction", ".5", OpLess, "1", true},
		{"trailing point", "5.", OpEqual, "5", true},
		{"exponent", "1e3", OpEqual, "1000", true},
		{"less equal same", "25", OpLessEqual, "25", true},
		{"greater equal less", "24", OpGreaterEqual, "25", false},
		{"large integers stay exact", "9007199254740993", OpEqual, "9007199254740992", false},
		{"large integers order", "9007199254740993", OpGreater, "9007199254740992", true},
		{"int64 bounds", "-9223372036854775808", OpLess, "9223372036854775807", true},
		{"beyond int64 falls back to float", "99999999999999999999", OpGreater, "1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compare(tt.left, tt.op, tt.right); got != tt.want {
				t.Errorf("compare(%q, %v, %q) = %v, want %v", tt.left, tt.op, tt.right, got, tt.want)
			}
		})
	}
}

func TestCompare_Strings(t *testing.T) {
	tests := []struct {
		name  string
		left  string
		op    Operator
		right string
		want  bool
	}{
		{"equal", "alice", OpEqual, "alice", true},
		{"less", "alice", OpLess, "bob", true},
		{"greater", "bob", OpGreater, "alice", true},
		{"less equal same", "alice", OpLessEqual, "alice", true},
		{"greater equal greater", "bob", OpGreaterEqual, "alice", true},
		{"zebra bound", "yak", OpLessEqual, "zebra", true},

		// Case sensitivity and byte order
		{"case sensitive not equal", "Alice", OpEqual, "alice", false},
		{"uppercase sorts first", "Zed", OpLess, "apple", true},

		// Mixed numeric and text falls back to text
		{"word against number", "apple", OpGreater, "9", true},
		{"word against quoted number", "apple", OpGreater, `"9"`, true},
		{"number against word", "10", OpLess, "apple", true},
		{"text order of numbers with units", "10kg", OpLess, "9kg", true},
		{"empty against number", "", OpLess, "0", true},

		// Not plain decimals
		{"hex is text", "0x10", OpEqual, "16", false},
		{"inf is text", "inf", OpGreater, "1", true},
		{"nan is text", "NaN", OpEqual, "NaN", true},
		{"padded number is text", " 5", OpEqual, "5", false},
		{"underscore is text", "1_000", OpEqual, "1000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compare(tt.left, tt.op, tt.right); got != tt.want {
				t.Errorf("compare(%q, %v, %q) = %v, want %v", tt.left, tt.op, tt.right, got, tt.want)
			}
		})
	}
}

func TestIsDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0", true},
		{"42", true},
		{"-42", true},
		{"+1.5", true},
		{"1.", true},
		{".1", true},
		{"1e10", true},
		{"1E-3", true},
		{"2.5e+2", true},
		{"", false},
		{"-", false},
		{".", false},
		{"1e", false},
		{"e5", false},
		{"1.2.3", false},
		{"12a", false},
		{"Infinity", false},
		{"0x1p-2", false},
		{"--1", false},
	}

	for _, tt := range tests {
		if got := isDecimal(tt.in); got != tt.want {
			t.Errorf("isDecimal(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCompare_Overflow(t *testing.T) {
	// out of float64 range, so both sides compare as text
	if !compare("1e999", OpLess, "2") {
		t.Error(`compare("1e999", <, "2") should compare textually`)
	}
}

func TestPredicate_Match(t *testing.T) {
	row := Row{"2", "bob", "25"}

	tests := []struct {
		name  string
		pred  Predicate
		index int
		want  bool
	}{
		{"textual equality", Predicate{Column: "name", Op: OpEqual, Value: "bob"}, 1, true},
		{"numeric greater", Predicate{Column: "age", Op: OpGreater, Value: "25"}, 2, false},
		{"numeric greater equal", Predicate{Column: "age", Op: OpGreaterEqual, Value: "25"}, 2, true},
		{"id equality", Predicate{Column: "id", Op: OpEqual, Value: "2.0"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pred.Match(row, tt.index); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}
