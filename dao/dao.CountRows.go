package dao

import (
	"fmt"
	"regexp"

	"go.uber.org/zap"
)

// tableNameRx matches the table names the application creates. Identifiers cannot be
// bound as statement parameters, so CountRows validates them before interpolation.
var tableNameRx = regexp.MustCompile(`^glpi_[a-z0-9_]+$`)

// CountRows returns the number of rows in a glpi_* table.
func (dao *DataAccessLayer) CountRows(table string) (int64, error) {
	if !tableNameRx.MatchString(table) {
		return 0, fmt.Errorf("invalid table name %q", table)
	}
	var count int64
	err := dao.MetadataDB.Get(&count, fmt.Sprintf("select count(*) from %s", table))
	if err != nil {
		dao.GetLogger().Error("error in CountRows", zap.String("table", table), zap.Error(err))
		return 0, err
	}
	return count, nil
}
