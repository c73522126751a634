package schema

// Pragma is one session SET statement from the dump header or footer, kept verbatim so
// a rewrite can reproduce the import environment.
type Pragma struct {
	// Name is the session variable, e.g. "NAMES", "TIME_ZONE", "FOREIGN_KEY_CHECKS".
	Name string
	// Value is the raw right-hand side as written in the dump.
	Value string
}

// Snapshot is a parsed dump: session pragmas and tables in file order.
type Snapshot struct {
	// Header pragmas, in the order they must be applied before loading.
	Pragmas []Pragma
	Tables  []*Table

	byName map[string]*Table
}

// AddTable appends a table, keeping the lookup index current.
func (s *Snapshot) AddTable(t *Table) {
	if s.byName == nil {
		s.byName = make(map[string]*Table)
	}
	s.Tables = append(s.Tables, t)
	s.byName[t.Name] = t
}

// Table returns the named table, or nil.
func (s *Snapshot) Table(name string) *Table {
	return s.byName[name]
}

// Pragma returns the value of the named header pragma.
func (s *Snapshot) Pragma(name string) (string, bool) {
	for _, p := range s.Pragmas {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// ConfigValue returns the glpi_configs value for a context/name pair, the way the
// application reads its own version: ConfigValue("core", "version").
func (s *Snapshot) ConfigValue(context, name string) (string, bool) {
	configs := s.Table("glpi_configs")
	if configs == nil {
		return "", false
	}
	ctxIdx := configs.ColumnIndex("context")
	nameIdx := configs.ColumnIndex("name")
	valueIdx := configs.ColumnIndex("value")
	if ctxIdx < 0 || nameIdx < 0 || valueIdx < 0 {
		return "", false
	}
	for _, row := range configs.Rows {
		if len(row) <= valueIdx {
			continue
		}
		if row[ctxIdx].AsString() == context && row[nameIdx].AsString() == name {
			return row[valueIdx].AsString(), true
		}
	}
	return "", false
}
