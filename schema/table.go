package schema

// DefaultKind discriminates how a column default was declared.
type DefaultKind int

// The default forms found in dump CREATE TABLE statements.
const (
	// NoDefault means the column declares no DEFAULT clause.
	NoDefault DefaultKind = iota
	// DefaultNull means DEFAULT NULL.
	DefaultNull
	// DefaultLiteral means a quoted or numeric literal default.
	DefaultLiteral
	// DefaultCurrentTimestamp means DEFAULT current_timestamp().
	DefaultCurrentTimestamp
)

// Column is one column of a table definition.
type Column struct {
	Name string
	// Type is the SQL type as written, e.g. "int unsigned" or "varchar(255)".
	Type     string
	Unsigned bool
	Nullable bool
	// Default records the DEFAULT clause; Kind NoDefault when absent.
	Default       DefaultKind
	DefaultValue  string
	AutoIncrement bool
	Comment       string
}

// IndexKind discriminates the key clauses of a table definition.
type IndexKind int

// Index kinds, in the order mysqldump emits them.
const (
	PrimaryKey IndexKind = iota
	UniqueKey
	Key
	FulltextKey
)

// Index is one key clause of a table definition.
type Index struct {
	Kind IndexKind
	// Name is empty for the primary key.
	Name    string
	Columns []string
}

// Row is one seed data row, with values aligned to the table's column order.
type Row []Value

// Table is one CREATE TABLE definition plus its seed rows.
type Table struct {
	Name    string
	Columns []Column
	Indexes []Index
	// Engine and friends are the table options mysqldump emits.
	Engine        string
	AutoIncrement int64
	Charset       string
	Collation     string
	RowFormat     string
	Comment       string

	Rows []Row
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return i
		}
	}
	return -1
}

// Primary returns the primary key index, if declared.
func (t *Table) Primary() (Index, bool) {
	for _, idx := range t.Indexes {
		if idx.Kind == PrimaryKey {
			return idx, true
		}
	}
	return Index{}, false
}

// UniqueKeys returns the unique key clauses of the table.
func (t *Table) UniqueKeys() []Index {
	var keys []Index
	for _, idx := range t.Indexes {
		if idx.Kind == UniqueKey {
			keys = append(keys, idx)
		}
	}
	return keys
}

// RowID returns the integer primary key of a row, when the table has a single-column
// integer primary key (the GLPI norm).
func (t *Table) RowID(row Row) (int64, bool) {
	pk, ok := t.Primary()
	if !ok || len(pk.Columns) != 1 {
		return 0, false
	}
	i := t.ColumnIndex(pk.Columns[0])
	if i < 0 || i >= len(row) {
		return 0, false
	}
	return row[i].AsInt()
}

// FindRow returns the first row whose primary key equals id.
func (t *Table) FindRow(id int64) (Row, bool) {
	for _, row := range t.Rows {
		if got, ok := t.RowID(row); ok && got == id {
			return row, true
		}
	}
	return nil, false
}
