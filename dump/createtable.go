package dump

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/marceloslacerda/glpigo/schema"
)

var backtickedRx = regexp.MustCompile("`([^`]+)`")

// parseCreateTable turns a CREATE TABLE statement into a schema.Table. The parser
// targets the layout mysqldump emits: one column or key clause per line, backticked
// identifiers, table options on the closing line.
func parseCreateTable(stmt string) (*schema.Table, error) {
	open := strings.Index(stmt, "(")
	if open < 0 {
		return nil, fmt.Errorf("create table without column list: %.60s", stmt)
	}
	closeIdx := strings.LastIndex(stmt, ")")
	if closeIdx < open {
		return nil, fmt.Errorf("create table without closing parenthesis: %.60s", stmt)
	}

	head := stmt[:open]
	body := stmt[open+1 : closeIdx]
	tail := stmt[closeIdx+1:]

	name := backtickedRx.FindStringSubmatch(head)
	if name == nil {
		return nil, fmt.Errorf("create table without table name: %.60s", head)
	}
	table := &schema.Table{Name: name[1]}

	for _, line := range splitClauses(body) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := parseClause(table, line); err != nil {
			return nil, fmt.Errorf("table %s: %v", table.Name, err)
		}
	}

	parseTableOptions(table, tail)
	return table, nil
}

// splitClauses splits the body of a CREATE TABLE on commas that sit outside
// parentheses and quotes, so enum('a','b') and composite keys stay intact.
func splitClauses(body string) []string {
	var clauses []string
	depth := 0
	inQuote := false
	start := 0
	for i := 0; i < len(body); i++ {
		switch c := body[i]; {
		case inQuote:
			if c == '\\' {
				i++
			} else if c == '\'' {
				inQuote = false
			}
		case c == '\'':
			inQuote = true
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == ',' && depth == 0:
			clauses = append(clauses, body[start:i])
			start = i + 1
		}
	}
	clauses = append(clauses, body[start:])
	return clauses
}

func parseClause(table *schema.Table, clause string) error {
	switch {
	case strings.HasPrefix(clause, "PRIMARY KEY"):
		table.Indexes = append(table.Indexes, schema.Index{
			Kind:    schema.PrimaryKey,
			Columns: clauseColumns(clause),
		})
	case strings.HasPrefix(clause, "UNIQUE KEY"):
		return parseNamedKey(table, clause, schema.UniqueKey)
	case strings.HasPrefix(clause, "FULLTEXT KEY"):
		return parseNamedKey(table, clause, schema.FulltextKey)
	case strings.HasPrefix(clause, "KEY"):
		return parseNamedKey(table, clause, schema.Key)
	case strings.HasPrefix(clause, "CONSTRAINT"), strings.HasPrefix(clause, "FOREIGN KEY"):
		// GLPI declares no database-level foreign keys; tolerate them anyway.
		return nil
	case strings.HasPrefix(clause, "`"):
		col, err := parseColumn(clause)
		if err != nil {
			return err
		}
		table.Columns = append(table.Columns, col)
	default:
		return fmt.Errorf("unrecognized clause %q", clause)
	}
	return nil
}

func parseNamedKey(table *schema.Table, clause string, kind schema.IndexKind) error {
	paren := strings.Index(clause, "(")
	if paren < 0 {
		return fmt.Errorf("key clause without columns %q", clause)
	}
	name := backtickedRx.FindStringSubmatch(clause[:paren])
	if name == nil {
		return fmt.Errorf("key clause without name %q", clause)
	}
	table.Indexes = append(table.Indexes, schema.Index{
		Kind:    kind,
		Name:    name[1],
		Columns: clauseColumns(clause[paren:]),
	})
	return nil
}

// clauseColumns extracts the backticked column names of a key clause.
func clauseColumns(clause string) []string {
	var cols []string
	for _, m := range backtickedRx.FindAllStringSubmatch(clause, -1) {
		cols = append(cols, m[1])
	}
	return cols
}

func parseColumn(clause string) (schema.Column, error) {
	var col schema.Column

	m := backtickedRx.FindStringSubmatchIndex(clause)
	if m == nil {
		return col, fmt.Errorf("column clause without name %q", clause)
	}
	col.Name = clause[m[2]:m[3]]
	rest := strings.TrimSpace(clause[m[1]:])

	// The type runs until the first attribute keyword. "unsigned" and "zerofill"
	// belong to the type.
	typeEnd := len(rest)
	for _, kw := range []string{" NOT NULL", " DEFAULT ", " AUTO_INCREMENT", " COMMENT ", " COLLATE ", " CHARACTER SET ", " NULL"} {
		if i := strings.Index(rest, kw); i >= 0 && i < typeEnd {
			typeEnd = i
		}
	}
	col.Type = strings.TrimSpace(rest[:typeEnd])
	col.Unsigned = strings.Contains(col.Type, "unsigned")
	attrs := rest[typeEnd:]

	col.Nullable = !strings.Contains(attrs, "NOT NULL")
	col.AutoIncrement = strings.Contains(attrs, "AUTO_INCREMENT")

	if i := strings.Index(attrs, "DEFAULT "); i >= 0 {
		def := strings.TrimSpace(attrs[i+len("DEFAULT "):])
		switch {
		case strings.HasPrefix(def, "NULL"):
			col.Default = schema.DefaultNull
		case strings.HasPrefix(def, "current_timestamp()"), strings.HasPrefix(def, "CURRENT_TIMESTAMP"):
			col.Default = schema.DefaultCurrentTimestamp
		case strings.HasPrefix(def, "'"):
			lit, err := unquoteSQLString(def)
			if err != nil {
				return col, fmt.Errorf("column %s: %v", col.Name, err)
			}
			col.Default = schema.DefaultLiteral
			col.DefaultValue = lit
		default:
			// bare numeric literal
			end := strings.IndexByte(def, ' ')
			if end < 0 {
				end = len(def)
			}
			col.Default = schema.DefaultLiteral
			col.DefaultValue = def[:end]
		}
	}

	if i := strings.Index(attrs, "COMMENT "); i >= 0 {
		comment, err := unquoteSQLString(strings.TrimSpace(attrs[i+len("COMMENT "):]))
		if err != nil {
			return col, fmt.Errorf("column %s comment: %v", col.Name, err)
		}
		col.Comment = comment
	}

	return col, nil
}

var tableOptionRx = regexp.MustCompile(`(ENGINE|AUTO_INCREMENT|DEFAULT CHARSET|COLLATE|ROW_FORMAT)=([^\s]+)`)

func parseTableOptions(table *schema.Table, tail string) {
	for _, m := range tableOptionRx.FindAllStringSubmatch(tail, -1) {
		switch m[1] {
		case "ENGINE":
			table.Engine = m[2]
		case "AUTO_INCREMENT":
			n, err := strconv.ParseInt(m[2], 10, 64)
			if err == nil {
				table.AutoIncrement = n
			}
		case "DEFAULT CHARSET":
			table.Charset = m[2]
		case "COLLATE":
			table.Collation = m[2]
		case "ROW_FORMAT":
			table.RowFormat = m[2]
		}
	}
	if i := strings.Index(tail, "COMMENT="); i >= 0 {
		if comment, err := unquoteSQLString(strings.TrimSpace(tail[i+len("COMMENT="):])); err == nil {
			table.Comment = comment
		}
	}
}
