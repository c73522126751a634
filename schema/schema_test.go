package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferencedTable(t *testing.T) {
	cases := []struct {
		column string
		table  string
		ok     bool
	}{
		{"entities_id", "glpi_entities", true},
		{"users_id_tech", "glpi_users", true},
		{"groups_id_tech", "glpi_groups", true},
		{"computermodels_id", "glpi_computermodels", true},
		{"itilcategories_id", "glpi_itilcategories", true},
		{"id", "", false},
		{"items_id", "", false},
		{"name", "", false},
		{"is_recursive", "", false},
		{"date_mod", "", false},
	}
	for _, c := range cases {
		table, ok := ReferencedTable(c.column)
		assert.Equal(t, c.ok, ok, c.column)
		assert.Equal(t, c.table, table, c.column)
	}
}

func TestTableForItemType(t *testing.T) {
	cases := map[string]string{
		"Computer":          "glpi_computers",
		"NetworkEquipment":  "glpi_networkequipments",
		"SoftwareVersion":   "glpi_softwareversions",
		"ITILCategory":      "glpi_itilcategories",
		"BusinessCriticity": "glpi_businesscriticities",
		"Ticket":            "glpi_tickets",
	}
	for itemtype, table := range cases {
		assert.Equal(t, table, TableForItemType(itemtype), itemtype)
	}
}

func testTable() *Table {
	return &Table{
		Name: "glpi_computers",
		Columns: []Column{
			{Name: "id", Type: "int unsigned", AutoIncrement: true},
			{Name: "entities_id", Type: "int unsigned"},
			{Name: "name", Type: "varchar(255)", Nullable: true, Default: DefaultNull},
			{Name: "users_id_tech", Type: "int unsigned"},
			{Name: "itemtype", Type: "varchar(100)", Nullable: true},
			{Name: "items_id", Type: "int unsigned"},
		},
		Indexes: []Index{
			{Kind: PrimaryKey, Columns: []string{"id"}},
			{Kind: UniqueKey, Name: "unicity", Columns: []string{"entities_id", "name"}},
		},
		Rows: []Row{
			{IntValue(1), IntValue(0), StringValue("computer1"), IntValue(0), NullValue(), IntValue(0)},
		},
	}
}

func TestReferenceColumns(t *testing.T) {
	refs := ReferenceColumns(testTable())
	require.Len(t, refs, 3)

	assert.Equal(t, "entities_id", refs[0].Name)
	assert.Equal(t, "glpi_entities", refs[0].Table)
	assert.Equal(t, -1, refs[0].ItemTypeIndex)

	assert.Equal(t, "users_id_tech", refs[1].Name)
	assert.Equal(t, "glpi_users", refs[1].Table)

	assert.Equal(t, "items_id", refs[2].Name)
	assert.Empty(t, refs[2].Table)
	assert.Equal(t, 4, refs[2].ItemTypeIndex)
}

func TestRowIDAndFindRow(t *testing.T) {
	table := testTable()
	id, ok := table.RowID(table.Rows[0])
	require.True(t, ok)
	assert.Equal(t, int64(1), id)

	row, found := table.FindRow(1)
	require.True(t, found)
	assert.Equal(t, "computer1", row[2].AsString())

	_, found = table.FindRow(2)
	assert.False(t, found)
}

func TestSnapshotConfigValue(t *testing.T) {
	var snap Snapshot
	snap.AddTable(&Table{
		Name: "glpi_configs",
		Columns: []Column{
			{Name: "id"}, {Name: "context"}, {Name: "name"}, {Name: "value"},
		},
		Indexes: []Index{{Kind: PrimaryKey, Columns: []string{"id"}}},
		Rows: []Row{
			{IntValue(1), StringValue("core"), StringValue("version"), StringValue("10.0.17")},
			{IntValue(2), StringValue("core"), StringValue("dbversion"), StringValue("10.0.17@somehash")},
		},
	})

	version, ok := snap.ConfigValue("core", "version")
	require.True(t, ok)
	assert.Equal(t, "10.0.17", version)

	_, ok = snap.ConfigValue("core", "missing")
	assert.False(t, ok)
	_, ok = (&Snapshot{}).ConfigValue("core", "version")
	assert.False(t, ok)
}

func TestValueSQLAndKey(t *testing.T) {
	assert.Equal(t, "NULL", NullValue().SQL())
	assert.Equal(t, "42", IntValue(42).SQL())
	assert.Equal(t, `'it\'s'`, StringValue("it's").SQL())
	assert.Equal(t, `'a\nb'`, StringValue("a\nb").SQL())
	assert.Equal(t, "0x0a0b", HexValue([]byte{0x0a, 0x0b}).SQL())

	// keys of different kinds never collide
	assert.NotEqual(t, IntValue(1).Key(), StringValue("1").Key())
	assert.NotEqual(t, NullValue().Key(), StringValue("").Key())
}
