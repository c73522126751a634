package dump

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/marceloslacerda/glpigo/schema"
)

// unquoteSQLString decodes a single-quoted SQL string literal, handling the backslash
// escapes mysqldump emits plus doubled quotes.
func unquoteSQLString(s string) (string, error) {
	if len(s) < 2 || s[0] != '\'' {
		return "", fmt.Errorf("not a string literal: %.30q", s)
	}
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			i++
			if i >= len(s) {
				return "", fmt.Errorf("dangling escape in %.30q", s)
			}
			switch e := s[i]; e {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '0':
				b.WriteByte(0x00)
			case 'Z':
				b.WriteByte(0x1a)
			default:
				// \' \" \\ and anything else decode to the escaped byte
				b.WriteByte(e)
			}
		case '\'':
			if i+1 < len(s) && s[i+1] == '\'' {
				b.WriteByte('\'')
				i++
				continue
			}
			return b.String(), nil
		default:
			b.WriteByte(c)
		}
	}
	return "", fmt.Errorf("unterminated string literal %.30q", s)
}

// valueScanner walks the VALUES section of an INSERT statement. Tuples are comma
// separated parenthesized lists of literals.
type valueScanner struct {
	src string
	pos int
}

func (vs *valueScanner) skipSpace() {
	for vs.pos < len(vs.src) {
		switch vs.src[vs.pos] {
		case ' ', '\t', '\n', '\r':
			vs.pos++
		default:
			return
		}
	}
}

// nextTuple parses one parenthesized row. It returns nil, nil at end of input.
func (vs *valueScanner) nextTuple() (schema.Row, error) {
	vs.skipSpace()
	if vs.pos >= len(vs.src) {
		return nil, nil
	}
	if vs.src[vs.pos] == ',' {
		vs.pos++
		vs.skipSpace()
	}
	if vs.pos >= len(vs.src) {
		return nil, nil
	}
	if vs.src[vs.pos] != '(' {
		return nil, fmt.Errorf("expected '(' at offset %d, found %q", vs.pos, vs.src[vs.pos])
	}
	vs.pos++

	var row schema.Row
	for {
		vs.skipSpace()
		if vs.pos >= len(vs.src) {
			return nil, fmt.Errorf("unterminated row at offset %d", vs.pos)
		}
		v, err := vs.nextValue()
		if err != nil {
			return nil, err
		}
		row = append(row, v)

		vs.skipSpace()
		if vs.pos >= len(vs.src) {
			return nil, fmt.Errorf("unterminated row at offset %d", vs.pos)
		}
		switch vs.src[vs.pos] {
		case ',':
			vs.pos++
		case ')':
			vs.pos++
			return row, nil
		default:
			return nil, fmt.Errorf("unexpected %q at offset %d", vs.src[vs.pos], vs.pos)
		}
	}
}

func (vs *valueScanner) nextValue() (schema.Value, error) {
	c := vs.src[vs.pos]
	switch {
	case c == '\'':
		return vs.stringValue()
	case c == 'N' || c == 'n':
		if len(vs.src)-vs.pos >= 4 && strings.EqualFold(vs.src[vs.pos:vs.pos+4], "NULL") {
			vs.pos += 4
			return schema.NullValue(), nil
		}
		return schema.Value{}, fmt.Errorf("unrecognized literal at offset %d", vs.pos)
	case c == '0' && vs.pos+1 < len(vs.src) && (vs.src[vs.pos+1] == 'x' || vs.src[vs.pos+1] == 'X'):
		return vs.hexValue()
	case c == '-' || (c >= '0' && c <= '9'):
		return vs.numberValue()
	default:
		return schema.Value{}, fmt.Errorf("unrecognized literal %q at offset %d", c, vs.pos)
	}
}

func (vs *valueScanner) stringValue() (schema.Value, error) {
	start := vs.pos
	i := vs.pos + 1
	for i < len(vs.src) {
		switch vs.src[i] {
		case '\\':
			i += 2
		case '\'':
			if i+1 < len(vs.src) && vs.src[i+1] == '\'' {
				i += 2
				continue
			}
			s, err := unquoteSQLString(vs.src[start : i+1])
			if err != nil {
				return schema.Value{}, err
			}
			vs.pos = i + 1
			return schema.StringValue(s), nil
		default:
			i++
		}
	}
	return schema.Value{}, fmt.Errorf("unterminated string at offset %d", start)
}

func (vs *valueScanner) hexValue() (schema.Value, error) {
	start := vs.pos
	i := vs.pos + 2
	for i < len(vs.src) && isHexDigit(vs.src[i]) {
		i++
	}
	b, err := hex.DecodeString(vs.src[start+2 : i])
	if err != nil {
		return schema.Value{}, fmt.Errorf("bad hex literal at offset %d: %v", start, err)
	}
	vs.pos = i
	return schema.HexValue(b), nil
}

func (vs *valueScanner) numberValue() (schema.Value, error) {
	start := vs.pos
	i := vs.pos
	if vs.src[i] == '-' {
		i++
	}
	isFloat := false
	for i < len(vs.src) {
		c := vs.src[i]
		if c >= '0' && c <= '9' {
			i++
			continue
		}
		if c == '.' || c == 'e' || c == 'E' || (isFloat && (c == '+' || c == '-')) {
			isFloat = true
			i++
			continue
		}
		break
	}
	text := vs.src[start:i]
	vs.pos = i
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return schema.Value{}, fmt.Errorf("bad float literal %q: %v", text, err)
		}
		return schema.FloatValue(f), nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return schema.Value{}, fmt.Errorf("bad integer literal %q: %v", text, err)
	}
	return schema.IntValue(n), nil
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// parseInsertRows decodes every VALUES tuple of an INSERT statement.
func parseInsertRows(values string) ([]schema.Row, error) {
	vs := &valueScanner{src: values}
	var rows []schema.Row
	for {
		row, err := vs.nextTuple()
		if err != nil {
			return nil, err
		}
		if row == nil {
			return rows, nil
		}
		rows = append(rows, row)
	}
}
