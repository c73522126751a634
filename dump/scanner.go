package dump

import (
	"bufio"
	"io"
	"strings"
)

// StatementScanner splits a SQL stream into statements on unquoted semicolons. Line
// comments are dropped; conditional comments (/*!40101 ... */) are kept because the
// server interprets their contents. String literals and backtick-quoted identifiers
// may contain semicolons and escaped quotes; INSERT statements routinely span
// megabytes on a single line, so the scanner works on a byte stream rather than lines.
type StatementScanner struct {
	r    *bufio.Reader
	err  error
	stmt string
}

// NewStatementScanner wraps r for statement-at-a-time reading.
func NewStatementScanner(r io.Reader) *StatementScanner {
	return &StatementScanner{r: bufio.NewReaderSize(r, 64*1024)}
}

// Scan advances to the next non-empty statement. It returns false at end of stream or
// on error; check Err afterwards.
func (s *StatementScanner) Scan() bool {
	for {
		stmt, err := s.next()
		stmt = strings.TrimSpace(stmt)
		if err != nil {
			if err != io.EOF {
				s.err = err
			} else if stmt != "" {
				// unterminated trailing statement
				s.stmt = stmt
				return true
			}
			return false
		}
		if stmt != "" {
			s.stmt = stmt
			return true
		}
	}
}

// Statement returns the statement found by the last call to Scan, without its
// terminating semicolon.
func (s *StatementScanner) Statement() string {
	return s.stmt
}

// Err returns the first error encountered, if any.
func (s *StatementScanner) Err() error {
	return s.err
}

const (
	stateNormal = iota
	stateSingleQuote
	stateDoubleQuote
	stateBacktick
)

func (s *StatementScanner) next() (string, error) {
	var b strings.Builder
	state := stateNormal
	lineStart := true // no non-space byte seen yet on the current line

	for {
		c, err := s.r.ReadByte()
		if err != nil {
			return b.String(), err
		}

		switch state {
		case stateNormal:
			switch c {
			case ';':
				return b.String(), nil
			case '\'':
				state = stateSingleQuote
				b.WriteByte(c)
			case '"':
				state = stateDoubleQuote
				b.WriteByte(c)
			case '`':
				state = stateBacktick
				b.WriteByte(c)
			case '-':
				peek, _ := s.r.Peek(1)
				if lineStart && len(peek) == 1 && peek[0] == '-' {
					if err := s.skipLine(); err != nil {
						return b.String(), err
					}
					continue
				}
				b.WriteByte(c)
			case '#':
				if lineStart {
					if err := s.skipLine(); err != nil {
						return b.String(), err
					}
					continue
				}
				b.WriteByte(c)
			case '/':
				peek, _ := s.r.Peek(1)
				if len(peek) == 1 && peek[0] == '*' {
					kept, err := s.readBlockComment()
					if err != nil {
						return b.String(), err
					}
					b.WriteString(kept)
				} else {
					b.WriteByte(c)
				}
			default:
				b.WriteByte(c)
			}
			if c == '\n' {
				lineStart = true
			} else if c != ' ' && c != '\t' && c != '\r' {
				lineStart = false
			}
		case stateSingleQuote, stateDoubleQuote:
			b.WriteByte(c)
			quote := byte('\'')
			if state == stateDoubleQuote {
				quote = '"'
			}
			if c == '\\' {
				// escaped character, copy it through verbatim
				nc, err := s.r.ReadByte()
				if err != nil {
					return b.String(), err
				}
				b.WriteByte(nc)
			} else if c == quote {
				state = stateNormal
			}
		case stateBacktick:
			b.WriteByte(c)
			if c == '`' {
				state = stateNormal
			}
		}
	}
}

func (s *StatementScanner) skipLine() error {
	_, err := s.r.ReadString('\n')
	return err
}

// readBlockComment consumes a comment that starts after a '/' with '*' pending.
// Conditional comments (/*! ... */) are returned so the statement keeps them; plain
// comments are discarded.
func (s *StatementScanner) readBlockComment() (string, error) {
	var b strings.Builder
	b.WriteByte('/')

	c, err := s.r.ReadByte()
	if err != nil {
		return "", err
	}
	b.WriteByte(c) // the '*'

	for {
		c, err := s.r.ReadByte()
		if err != nil {
			return "", err
		}
		b.WriteByte(c)
		if c == '*' {
			peek, _ := s.r.Peek(1)
			if len(peek) == 1 && peek[0] == '/' {
				s.r.ReadByte()
				b.WriteByte('/')
				break
			}
		}
	}

	text := b.String()
	if strings.HasPrefix(text, "/*!") {
		return text, nil
	}
	return "", nil
}
