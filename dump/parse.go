package dump

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/marceloslacerda/glpigo/schema"
)

var conditionalRx = regexp.MustCompile(`^/\*!\d*\s*([\s\S]*?)\s*\*/$`)

// unwrapConditional strips a /*!NNNNN ... */ wrapper so the enclosed statement can be
// classified. Statements without the wrapper pass through unchanged.
func unwrapConditional(stmt string) string {
	if m := conditionalRx.FindStringSubmatch(stmt); m != nil {
		return m[1]
	}
	return stmt
}

// Parse reads a dump stream into a Snapshot. Header pragmas are recorded until the
// first CREATE TABLE; the footer restores (SET back to @OLD_ captures) are dropped, as
// the writer regenerates them.
func Parse(r io.Reader) (*schema.Snapshot, error) {
	snap := &schema.Snapshot{}
	sc := NewStatementScanner(r)
	inHeader := true

	for sc.Scan() {
		stmt := unwrapConditional(sc.Statement())
		upper := upperPrefix(stmt, 16)

		switch {
		case strings.HasPrefix(upper, "SET "):
			if inHeader {
				snap.Pragmas = append(snap.Pragmas, parseSetPragmas(stmt[4:])...)
			}
		case strings.HasPrefix(upper, "CREATE TABLE"):
			inHeader = false
			table, err := parseCreateTable(stmt)
			if err != nil {
				return nil, err
			}
			snap.AddTable(table)
		case strings.HasPrefix(upper, "INSERT INTO"):
			inHeader = false
			if err := parseInsert(snap, stmt); err != nil {
				return nil, err
			}
		case strings.HasPrefix(upper, "DROP TABLE"),
			strings.HasPrefix(upper, "LOCK TABLES"),
			strings.HasPrefix(upper, "UNLOCK TABLES"),
			strings.HasPrefix(upper, "ALTER TABLE"):
			// structural noise around each table block, regenerated on write
			inHeader = false
		case strings.HasPrefix(upper, "USE "),
			strings.HasPrefix(upper, "CREATE DATABASE"):
			// tolerated when the dump was taken with --databases
		default:
			return nil, fmt.Errorf("unrecognized statement: %.60s", stmt)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return snap, nil
}

func upperPrefix(s string, n int) string {
	if len(s) > n {
		s = s[:n]
	}
	return strings.ToUpper(s)
}

// parseSetPragmas decodes the assignment list of a SET statement. Assignments to
// user variables (@OLD_ captures) are dropped; "SET NAMES utf8mb4" is recorded under
// the NAMES pragma. Values are kept verbatim, quotes included.
func parseSetPragmas(list string) []schema.Pragma {
	var pragmas []schema.Pragma
	for _, assign := range splitClauses(list) {
		assign = strings.TrimSpace(assign)
		if assign == "" || strings.HasPrefix(assign, "@") {
			continue
		}
		if eq := strings.Index(assign, "="); eq >= 0 {
			name := strings.TrimSpace(assign[:eq])
			value := strings.TrimSpace(assign[eq+1:])
			if strings.HasPrefix(value, "@") {
				// footer restore that leaked into the header region
				continue
			}
			pragmas = append(pragmas, schema.Pragma{Name: name, Value: value})
			continue
		}
		// "NAMES utf8mb4" and the like
		fields := strings.Fields(assign)
		if len(fields) >= 2 {
			pragmas = append(pragmas, schema.Pragma{
				Name:  strings.ToUpper(fields[0]),
				Value: strings.Join(fields[1:], " "),
			})
		}
	}
	return pragmas
}

var insertRx = regexp.MustCompile("(?is)^INSERT\\s+INTO\\s+`([^`]+)`\\s+VALUES\\s+")

func parseInsert(snap *schema.Snapshot, stmt string) error {
	m := insertRx.FindStringSubmatch(stmt)
	if m == nil {
		return fmt.Errorf("unrecognized insert statement: %.60s", stmt)
	}
	table := snap.Table(m[1])
	if table == nil {
		return fmt.Errorf("insert into %s before its create table", m[1])
	}
	rows, err := parseInsertRows(stmt[len(m[0]):])
	if err != nil {
		return fmt.Errorf("table %s: %v", m[1], err)
	}
	for _, row := range rows {
		if len(row) != len(table.Columns) {
			return fmt.Errorf("table %s: row has %d values, table has %d columns",
				m[1], len(row), len(table.Columns))
		}
	}
	table.Rows = append(table.Rows, rows...)
	return nil
}
