package schema

import "strings"

// NoRelation is the sentinel id GLPI stores in foreign-key-shaped columns when a row
// has no relation. It never resolves to a real row.
const NoRelation = 0

// ReferencedTable resolves a foreign-key-shaped column name to the table it points at,
// following the naming convention: the column is the referenced table's base name plus
// "_id", optionally followed by a role suffix (users_id_tech points at glpi_users).
// The polymorphic items_id column is excluded; it needs the itemtype column to
// resolve, see TableForItemType.
func ReferencedTable(column string) (string, bool) {
	if column == "id" || column == "items_id" || strings.HasPrefix(column, "items_id_") {
		return "", false
	}
	base := column
	if i := strings.Index(base, "_id_"); i >= 0 {
		base = base[:i]
	} else if strings.HasSuffix(base, "_id") {
		base = base[:len(base)-3]
	} else {
		return "", false
	}
	if base == "" {
		return "", false
	}
	return "glpi_" + base, true
}

// IsPolymorphicID reports whether the column is the items_id half of an
// itemtype/items_id pair.
func IsPolymorphicID(column string) bool {
	return column == "items_id" || strings.HasPrefix(column, "items_id_")
}

// ItemTypeColumnFor returns the itemtype column paired with an items_id column:
// items_id pairs with itemtype, items_id_source pairs with itemtype_source.
func ItemTypeColumnFor(itemsIDColumn string) string {
	if itemsIDColumn == "items_id" {
		return "itemtype"
	}
	if strings.HasPrefix(itemsIDColumn, "items_id_") {
		return "itemtype_" + strings.TrimPrefix(itemsIDColumn, "items_id_")
	}
	return ""
}

// TableForItemType maps an itemtype class name to its table, the way the application
// does: lowercase the class and pluralize. Namespaced plugin classes keep their
// backslash-separated parts joined by underscores.
func TableForItemType(itemtype string) string {
	if itemtype == "" {
		return ""
	}
	name := strings.ToLower(strings.ReplaceAll(itemtype, "\\", "_"))
	return "glpi_" + pluralize(name)
}

// pluralize applies the application's table naming rules.
func pluralize(name string) string {
	switch {
	case strings.HasSuffix(name, "y") && !hasVowelBefore(name, len(name)-1):
		return name[:len(name)-1] + "ies"
	case strings.HasSuffix(name, "s"), strings.HasSuffix(name, "x"),
		strings.HasSuffix(name, "ch"), strings.HasSuffix(name, "sh"):
		return name + "es"
	default:
		return name + "s"
	}
}

func hasVowelBefore(s string, i int) bool {
	if i == 0 {
		return false
	}
	return strings.ContainsRune("aeiou", rune(s[i-1]))
}

// ReferenceColumn describes one foreign-key-shaped column of a table.
type ReferenceColumn struct {
	// Index is the column position within the table definition.
	Index int
	// Name is the column name.
	Name string
	// Table is the referenced table, empty for polymorphic columns.
	Table string
	// ItemTypeIndex is the position of the paired itemtype column for polymorphic
	// references, -1 otherwise.
	ItemTypeIndex int
}

// ReferenceColumns lists the foreign-key-shaped columns of a table, resolving plain
// references by name and polymorphic ones through their itemtype column.
func ReferenceColumns(t *Table) []ReferenceColumn {
	var refs []ReferenceColumn
	for i, col := range t.Columns {
		if IsPolymorphicID(col.Name) {
			itIdx := t.ColumnIndex(ItemTypeColumnFor(col.Name))
			refs = append(refs, ReferenceColumn{Index: i, Name: col.Name, ItemTypeIndex: itIdx})
			continue
		}
		if target, ok := ReferencedTable(col.Name); ok {
			refs = append(refs, ReferenceColumn{Index: i, Name: col.Name, Table: target, ItemTypeIndex: -1})
		}
	}
	return refs
}
