package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the SQL literal forms a seed value can take.
type ValueKind int

// The literal forms found in dump INSERT statements.
const (
	Null ValueKind = iota
	Int
	Float
	String
	Hex
)

// Value is one column value of a seed row.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Str   string
	Bytes []byte
}

// NullValue returns the SQL NULL value.
func NullValue() Value {
	return Value{Kind: Null}
}

// IntValue wraps an integer literal.
func IntValue(n int64) Value {
	return Value{Kind: Int, Int: n}
}

// FloatValue wraps a floating point literal.
func FloatValue(f float64) Value {
	return Value{Kind: Float, Float: f}
}

// StringValue wraps a string literal.
func StringValue(s string) Value {
	return Value{Kind: String, Str: s}
}

// HexValue wraps a hexadecimal blob literal.
func HexValue(b []byte) Value {
	return Value{Kind: Hex, Bytes: b}
}

// IsNull reports whether the value is SQL NULL.
func (v Value) IsNull() bool {
	return v.Kind == Null
}

// AsInt returns the value as an integer id. Only Int values qualify; everything else
// returns false.
func (v Value) AsInt() (int64, bool) {
	if v.Kind != Int {
		return 0, false
	}
	return v.Int, true
}

// AsString renders the value as a bare Go string.
func (v Value) AsString() string {
	switch v.Kind {
	case Null:
		return ""
	case Int:
		return strconv.FormatInt(v.Int, 10)
	case Float:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case String:
		return v.Str
	case Hex:
		return fmt.Sprintf("0x%x", v.Bytes)
	}
	return ""
}

// SQL renders the value as a SQL literal suitable for an INSERT statement.
func (v Value) SQL() string {
	switch v.Kind {
	case Null:
		return "NULL"
	case Int:
		return strconv.FormatInt(v.Int, 10)
	case Float:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case String:
		return "'" + escapeSQLString(v.Str) + "'"
	case Hex:
		return fmt.Sprintf("0x%x", v.Bytes)
	}
	return "NULL"
}

// Key renders the value in a canonical form usable as a map key for uniqueness
// comparisons. Distinct kinds never collide.
func (v Value) Key() string {
	switch v.Kind {
	case Null:
		return "\x00null"
	case Int:
		return "i:" + strconv.FormatInt(v.Int, 10)
	case Float:
		return "f:" + strconv.FormatFloat(v.Float, 'g', -1, 64)
	case String:
		return "s:" + v.Str
	case Hex:
		return fmt.Sprintf("x:%x", v.Bytes)
	}
	return ""
}

// escapeSQLString applies the escaping mysqldump uses for string literals.
func escapeSQLString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case 0x00:
			b.WriteString(`\0`)
		case 0x1a:
			b.WriteString(`\Z`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
