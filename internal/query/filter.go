package query

import (
	"cmp"
	"strconv"
)

// compare compares a row value with a literal using op.
//
// When both sides are decimal numbers they are compared numerically,
// otherwise they are compared as strings in byte order. Integers that fit
// in an int64 are compared exactly; other numbers go through float64.
func compare(value string, op Operator, literal string) bool {
	if leftInt, err := strconv.ParseInt(value, 10, 64); err == nil {
		if rightInt, err := strconv.ParseInt(literal, 10, 64); err == nil {
			return compareOrdered(leftInt, op, rightInt)
		}
	}

	leftNum, leftIsNum := toFloat64(value)
	rightNum, rightIsNum := toFloat64(literal)

	if leftIsNum && rightIsNum {
		return compareOrdered(leftNum, op, rightNum)
	}
	return compareOrdered(value, op, literal)
}

// toFloat64 parses s if it is a plain decimal number
func toFloat64(s string) (float64, bool) {
	if !isDecimal(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// out of range
		return 0, false
	}
	return f, true
}

// isDecimal reports whether s matches [+-]?digits[.digits][(e|E)[+-]?digits],
// allowing either side of the point to be empty but not both. Hex, inf,
// nan and digit separators are rejected.
func isDecimal(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}

	return i == len(s)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// compareOrdered applies op to two values of the same kind. Strings
// compare case-sensitively in byte order.
func compareOrdered[T cmp.Ordered](left T, op Operator, right T) bool {
	c := cmp.Compare(left, right)
	switch op {
	case OpEqual:
		return c == 0
	case OpLess:
		return c < 0
	case OpGreater:
		return c > 0
	case OpLessEqual:
		return c <= 0
	case OpGreaterEqual:
		return c >= 0
	default:
		return false
	}
}

// Match reports whether row satisfies p, given the position of p.Column in
// the row.
func (p *Predicate) Match(row Row, index int) bool {
	return compare(row[index], p.Op, p.Value)
}
