package verify

import (
	"fmt"
	"strings"

	"github.com/marceloslacerda/glpigo/schema"
)

// Check runs every integrity check over the snapshot and returns the combined report.
func Check(snap *schema.Snapshot) *Report {
	c := &checker{snap: snap, ids: make(map[string]map[int64]struct{})}
	report := &Report{}

	c.checkVersion(report)
	for _, table := range snap.Tables {
		c.checkUniqueKeys(report, table)
		c.checkReferences(report, table)
	}
	return report
}

type checker struct {
	snap *schema.Snapshot
	// ids caches the primary key sets of referenced tables.
	ids map[string]map[int64]struct{}
}

// idSet returns the set of primary keys present in the named table, or nil when the
// snapshot does not carry that table.
func (c *checker) idSet(name string) map[int64]struct{} {
	if set, ok := c.ids[name]; ok {
		return set
	}
	table := c.snap.Table(name)
	if table == nil {
		c.ids[name] = nil
		return nil
	}
	set := make(map[int64]struct{}, len(table.Rows))
	for _, row := range table.Rows {
		if id, ok := table.RowID(row); ok {
			set[id] = struct{}{}
		}
	}
	c.ids[name] = set
	return set
}

// checkVersion verifies glpi_configs carries consistent core/version and
// core/dbversion markers.
func (c *checker) checkVersion(report *Report) {
	version, ok := c.snap.ConfigValue("core", "version")
	if !ok {
		report.add(Finding{
			Severity: Error, Table: "glpi_configs",
			Detail: "missing core/version row",
		})
		return
	}
	dbversion, ok := c.snap.ConfigValue("core", "dbversion")
	if !ok {
		report.add(Finding{
			Severity: Error, Table: "glpi_configs",
			Detail: "missing core/dbversion row",
		})
		return
	}
	if !strings.HasPrefix(dbversion, version) {
		report.add(Finding{
			Severity: Error, Table: "glpi_configs",
			Detail: fmt.Sprintf("dbversion %q does not match version %q", dbversion, version),
		})
	}
}

// checkUniqueKeys verifies no two rows collide on a UNIQUE KEY. Rows carrying NULL in
// any key column are exempt, matching the server's unique index semantics.
func (c *checker) checkUniqueKeys(report *Report, table *schema.Table) {
	for _, key := range table.UniqueKeys() {
		cols := make([]int, 0, len(key.Columns))
		for _, name := range key.Columns {
			if i := table.ColumnIndex(name); i >= 0 {
				cols = append(cols, i)
			}
		}
		if len(cols) != len(key.Columns) {
			continue
		}

		seen := make(map[string]int64, len(table.Rows))
	rows:
		for _, row := range table.Rows {
			var parts []string
			for _, i := range cols {
				if i >= len(row) || row[i].IsNull() {
					continue rows
				}
				parts = append(parts, row[i].Key())
			}
			composite := strings.Join(parts, "\x1f")
			id, _ := table.RowID(row)
			if other, dup := seen[composite]; dup {
				report.add(Finding{
					Severity: Error,
					Table:    table.Name,
					Column:   strings.Join(key.Columns, ","),
					RowID:    id,
					Detail:   fmt.Sprintf("duplicate of row %d on unique key %s", other, key.Name),
				})
				continue
			}
			seen[composite] = id
		}
	}
}

// checkReferences verifies every relation id resolves: either the no-relation sentinel
// or an existing row of the referenced table. References into tables absent from the
// snapshot are warnings, reported once per column.
func (c *checker) checkReferences(report *Report, table *schema.Table) {
	missingReported := make(map[string]bool)

	for _, ref := range schema.ReferenceColumns(table) {
		for _, row := range table.Rows {
			if ref.Index >= len(row) {
				continue
			}
			id, ok := row[ref.Index].AsInt()
			if !ok || id == schema.NoRelation {
				continue
			}

			target := ref.Table
			if target == "" {
				if ref.ItemTypeIndex < 0 || ref.ItemTypeIndex >= len(row) {
					continue
				}
				itemtype := row[ref.ItemTypeIndex].AsString()
				if itemtype == "" {
					continue
				}
				target = schema.TableForItemType(itemtype)
			}

			set := c.idSet(target)
			if set == nil {
				if !missingReported[ref.Name+"\x1f"+target] {
					missingReported[ref.Name+"\x1f"+target] = true
					report.add(Finding{
						Severity: Warning,
						Table:    table.Name,
						Column:   ref.Name,
						Detail:   fmt.Sprintf("referenced table %s not in snapshot", target),
					})
				}
				continue
			}
			if _, found := set[id]; !found {
				rowID, _ := table.RowID(row)
				report.add(Finding{
					Severity: Error,
					Table:    table.Name,
					Column:   ref.Name,
					RowID:    rowID,
					Detail:   fmt.Sprintf("id %d not found in %s", id, target),
				})
			}
		}
	}
}
