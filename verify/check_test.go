package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marceloslacerda/glpigo/schema"
)

func configsTable(rows ...schema.Row) *schema.Table {
	return &schema.Table{
		Name: "glpi_configs",
		Columns: []schema.Column{
			{Name: "id"}, {Name: "context"}, {Name: "name"}, {Name: "value"},
		},
		Indexes: []schema.Index{
			{Kind: schema.PrimaryKey, Columns: []string{"id"}},
			{Kind: schema.UniqueKey, Name: "unicity", Columns: []string{"context", "name"}},
		},
		Rows: rows,
	}
}

func configRow(id int64, context, name, value string) schema.Row {
	return schema.Row{
		schema.IntValue(id), schema.StringValue(context),
		schema.StringValue(name), schema.StringValue(value),
	}
}

func healthySnapshot() *schema.Snapshot {
	snap := &schema.Snapshot{}
	snap.AddTable(configsTable(
		configRow(1, "core", "version", "10.0.17"),
		configRow(2, "core", "dbversion", "10.0.17@hash"),
	))
	snap.AddTable(&schema.Table{
		Name: "glpi_entities",
		Columns: []schema.Column{
			{Name: "id"}, {Name: "entities_id"}, {Name: "name"},
		},
		Indexes: []schema.Index{
			{Kind: schema.PrimaryKey, Columns: []string{"id"}},
			{Kind: schema.UniqueKey, Name: "unicity", Columns: []string{"entities_id", "name"}},
		},
		Rows: []schema.Row{
			{schema.IntValue(0), schema.IntValue(0), schema.StringValue("Root entity")},
			{schema.IntValue(1), schema.IntValue(0), schema.StringValue("Branch")},
		},
	})
	snap.AddTable(&schema.Table{
		Name: "glpi_computers",
		Columns: []schema.Column{
			{Name: "id"}, {Name: "entities_id"}, {Name: "name"},
		},
		Indexes: []schema.Index{
			{Kind: schema.PrimaryKey, Columns: []string{"id"}},
		},
		Rows: []schema.Row{
			{schema.IntValue(1), schema.IntValue(1), schema.StringValue("pc1")},
		},
	})
	return snap
}

func TestCheckHealthySnapshot(t *testing.T) {
	report := Check(healthySnapshot())
	assert.True(t, report.OK())
	assert.Empty(t, report.Findings)
}

func TestCheckMissingVersion(t *testing.T) {
	snap := &schema.Snapshot{}
	snap.AddTable(configsTable(configRow(1, "core", "dbversion", "10.0.17@hash")))

	report := Check(snap)
	require.False(t, report.OK())
	assert.Contains(t, report.Errors()[0].Detail, "core/version")
}

func TestCheckVersionMismatch(t *testing.T) {
	snap := &schema.Snapshot{}
	snap.AddTable(configsTable(
		configRow(1, "core", "version", "10.0.17"),
		configRow(2, "core", "dbversion", "10.0.16@hash"),
	))

	report := Check(snap)
	require.False(t, report.OK())
	assert.Contains(t, report.Errors()[0].Detail, "does not match")
}

func TestCheckUniqueKeyCollision(t *testing.T) {
	snap := healthySnapshot()
	entities := snap.Table("glpi_entities")
	entities.Rows = append(entities.Rows,
		schema.Row{schema.IntValue(2), schema.IntValue(0), schema.StringValue("Branch")})

	report := Check(snap)
	require.False(t, report.OK())
	errs := report.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "glpi_entities", errs[0].Table)
	assert.Equal(t, int64(2), errs[0].RowID)
	assert.Contains(t, errs[0].Detail, "unique key unicity")
}

func TestCheckUniqueKeyNullExempt(t *testing.T) {
	snap := healthySnapshot()
	entities := snap.Table("glpi_entities")
	entities.Rows = append(entities.Rows,
		schema.Row{schema.IntValue(2), schema.IntValue(0), schema.NullValue()},
		schema.Row{schema.IntValue(3), schema.IntValue(0), schema.NullValue()})

	report := Check(snap)
	assert.True(t, report.OK())
}

func TestCheckDanglingReference(t *testing.T) {
	snap := healthySnapshot()
	computers := snap.Table("glpi_computers")
	computers.Rows = append(computers.Rows,
		schema.Row{schema.IntValue(2), schema.IntValue(99), schema.StringValue("pc2")})

	report := Check(snap)
	require.False(t, report.OK())
	errs := report.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "glpi_computers", errs[0].Table)
	assert.Equal(t, "entities_id", errs[0].Column)
	assert.Equal(t, int64(2), errs[0].RowID)
}

func TestCheckSentinelZeroAllowed(t *testing.T) {
	snap := healthySnapshot()
	computers := snap.Table("glpi_computers")
	computers.Rows = append(computers.Rows,
		schema.Row{schema.IntValue(2), schema.IntValue(0), schema.StringValue("pc2")})

	report := Check(snap)
	assert.True(t, report.OK())
}

func TestCheckMissingReferencedTableIsWarning(t *testing.T) {
	snap := healthySnapshot()
	snap.AddTable(&schema.Table{
		Name: "glpi_tickets",
		Columns: []schema.Column{
			{Name: "id"}, {Name: "users_id_recipient"},
		},
		Indexes: []schema.Index{{Kind: schema.PrimaryKey, Columns: []string{"id"}}},
		Rows: []schema.Row{
			{schema.IntValue(1), schema.IntValue(7)},
			{schema.IntValue(2), schema.IntValue(8)},
		},
	})

	report := Check(snap)
	assert.True(t, report.OK())
	warns := report.Warnings()
	require.Len(t, warns, 1)
	assert.Equal(t, "users_id_recipient", warns[0].Column)
	assert.Contains(t, warns[0].Detail, "glpi_users")
}

func TestCheckPolymorphicReference(t *testing.T) {
	snap := healthySnapshot()
	snap.AddTable(&schema.Table{
		Name: "glpi_logs",
		Columns: []schema.Column{
			{Name: "id"}, {Name: "itemtype"}, {Name: "items_id"},
		},
		Indexes: []schema.Index{{Kind: schema.PrimaryKey, Columns: []string{"id"}}},
		Rows: []schema.Row{
			{schema.IntValue(1), schema.StringValue("Computer"), schema.IntValue(1)},
			{schema.IntValue(2), schema.StringValue("Computer"), schema.IntValue(42)},
			{schema.IntValue(3), schema.StringValue(""), schema.IntValue(0)},
		},
	})

	report := Check(snap)
	require.False(t, report.OK())
	errs := report.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "glpi_logs", errs[0].Table)
	assert.Equal(t, "items_id", errs[0].Column)
	assert.Equal(t, int64(2), errs[0].RowID)
	assert.Contains(t, errs[0].Detail, "glpi_computers")
}

func TestFindingString(t *testing.T) {
	f := Finding{Severity: Error, Table: "glpi_computers", Column: "entities_id", RowID: 2, Detail: "id 99 not found in glpi_entities"}
	assert.Equal(t, "error: glpi_computers.entities_id#2: id 99 not found in glpi_entities", f.String())
}
