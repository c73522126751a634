package dump

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/marceloslacerda/glpigo/schema"
)

// pragmaVersion maps a session variable to the conditional-comment version guard
// mysqldump wraps it in.
var pragmaVersion = map[string]string{
	"NAMES":              "40101",
	"TIME_ZONE":          "40103",
	"UNIQUE_CHECKS":      "40014",
	"FOREIGN_KEY_CHECKS": "40014",
	"SQL_MODE":           "40101",
	"SQL_NOTES":          "40111",
}

func versionFor(name string) string {
	if v, ok := pragmaVersion[name]; ok {
		return v
	}
	return "40101"
}

// Write emits the snapshot in mysqldump layout: header pragmas with their @OLD_
// captures, a DROP/CREATE/LOCK/INSERT/UNLOCK block per table, and footer restores in
// reverse order.
func Write(w io.Writer, snap *schema.Snapshot) error {
	bw := bufio.NewWriterSize(w, 64*1024)

	writeHeader(bw, snap)
	for _, table := range snap.Tables {
		writeTable(bw, table)
	}
	writeFooter(bw, snap)

	return bw.Flush()
}

func writeHeader(w *bufio.Writer, snap *schema.Snapshot) {
	for _, p := range snap.Pragmas {
		v := versionFor(p.Name)
		if p.Name == "NAMES" {
			fmt.Fprintf(w, "/*!%s SET NAMES %s */;\n", v, p.Value)
			continue
		}
		fmt.Fprintf(w, "/*!%s SET @OLD_%s=@@%s, %s=%s */;\n", v, p.Name, p.Name, p.Name, p.Value)
	}
	w.WriteByte('\n')
}

func writeFooter(w *bufio.Writer, snap *schema.Snapshot) {
	for i := len(snap.Pragmas) - 1; i >= 0; i-- {
		p := snap.Pragmas[i]
		if p.Name == "NAMES" {
			continue
		}
		fmt.Fprintf(w, "/*!%s SET %s=@OLD_%s */;\n", versionFor(p.Name), p.Name, p.Name)
	}
}

func writeTable(w *bufio.Writer, t *schema.Table) {
	fmt.Fprintf(w, "--\n-- Table structure for table `%s`\n--\n\n", t.Name)
	fmt.Fprintf(w, "DROP TABLE IF EXISTS `%s`;\n", t.Name)
	writeCreateTable(w, t)

	if len(t.Rows) == 0 {
		w.WriteByte('\n')
		return
	}

	fmt.Fprintf(w, "\n--\n-- Dumping data for table `%s`\n--\n\n", t.Name)
	fmt.Fprintf(w, "LOCK TABLES `%s` WRITE;\n", t.Name)
	fmt.Fprintf(w, "/*!40000 ALTER TABLE `%s` DISABLE KEYS */;\n", t.Name)
	writeInsert(w, t)
	fmt.Fprintf(w, "/*!40000 ALTER TABLE `%s` ENABLE KEYS */;\n", t.Name)
	w.WriteString("UNLOCK TABLES;\n\n")
}

func writeCreateTable(w *bufio.Writer, t *schema.Table) {
	fmt.Fprintf(w, "CREATE TABLE `%s` (\n", t.Name)

	var clauses []string
	for _, col := range t.Columns {
		clauses = append(clauses, "  "+columnSQL(col))
	}
	for _, idx := range t.Indexes {
		clauses = append(clauses, "  "+indexSQL(idx))
	}
	w.WriteString(strings.Join(clauses, ",\n"))
	w.WriteString("\n)")

	if t.Engine != "" {
		fmt.Fprintf(w, " ENGINE=%s", t.Engine)
	}
	if t.AutoIncrement > 0 {
		fmt.Fprintf(w, " AUTO_INCREMENT=%d", t.AutoIncrement)
	}
	if t.Charset != "" {
		fmt.Fprintf(w, " DEFAULT CHARSET=%s", t.Charset)
	}
	if t.Collation != "" {
		fmt.Fprintf(w, " COLLATE=%s", t.Collation)
	}
	if t.RowFormat != "" {
		fmt.Fprintf(w, " ROW_FORMAT=%s", t.RowFormat)
	}
	if t.Comment != "" {
		fmt.Fprintf(w, " COMMENT=%s", schema.StringValue(t.Comment).SQL())
	}
	w.WriteString(";\n")
}

func columnSQL(col schema.Column) string {
	var b strings.Builder
	fmt.Fprintf(&b, "`%s` %s", col.Name, col.Type)
	if !col.Nullable {
		b.WriteString(" NOT NULL")
	}
	switch col.Default {
	case schema.DefaultNull:
		b.WriteString(" DEFAULT NULL")
	case schema.DefaultCurrentTimestamp:
		b.WriteString(" DEFAULT current_timestamp()")
	case schema.DefaultLiteral:
		if numericType(col.Type) {
			b.WriteString(" DEFAULT " + col.DefaultValue)
		} else {
			b.WriteString(" DEFAULT " + schema.StringValue(col.DefaultValue).SQL())
		}
	}
	if col.AutoIncrement {
		b.WriteString(" AUTO_INCREMENT")
	}
	if col.Comment != "" {
		b.WriteString(" COMMENT " + schema.StringValue(col.Comment).SQL())
	}
	return b.String()
}

// numericType reports whether literal defaults for the type are written unquoted.
func numericType(sqlType string) bool {
	base := sqlType
	if i := strings.IndexAny(base, "( "); i >= 0 {
		base = base[:i]
	}
	switch base {
	case "tinyint", "smallint", "mediumint", "int", "bigint",
		"float", "double", "decimal", "numeric", "bit":
		return true
	}
	return false
}

func indexSQL(idx schema.Index) string {
	cols := "`" + strings.Join(idx.Columns, "`,`") + "`"
	switch idx.Kind {
	case schema.PrimaryKey:
		return fmt.Sprintf("PRIMARY KEY (%s)", cols)
	case schema.UniqueKey:
		return fmt.Sprintf("UNIQUE KEY `%s` (%s)", idx.Name, cols)
	case schema.FulltextKey:
		return fmt.Sprintf("FULLTEXT KEY `%s` (%s)", idx.Name, cols)
	default:
		return fmt.Sprintf("KEY `%s` (%s)", idx.Name, cols)
	}
}

func writeInsert(w *bufio.Writer, t *schema.Table) {
	fmt.Fprintf(w, "INSERT INTO `%s` VALUES ", t.Name)
	for i, row := range t.Rows {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('(')
		for j, v := range row {
			if j > 0 {
				w.WriteByte(',')
			}
			w.WriteString(v.SQL())
		}
		w.WriteByte(')')
	}
	w.WriteString(";\n")
}
