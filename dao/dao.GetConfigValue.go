package dao

import (
	"go.uber.org/zap"
)

// GetConfigValue reads one glpi_configs value by its (context, name) pair.
func (dao *DataAccessLayer) GetConfigValue(context, name string) (string, error) {
	var value string
	getStatement := `select value from glpi_configs where context = ? and name = ?`
	err := dao.MetadataDB.Get(&value, getStatement, context, name)
	if err != nil {
		dao.GetLogger().Error("error in GetConfigValue",
			zap.String("context", context), zap.String("name", name), zap.Error(err))
		return "", err
	}
	return value, nil
}

// SetConfigValue writes one glpi_configs value, inserting or updating on the
// (context, name) unicity key.
func (dao *DataAccessLayer) SetConfigValue(context, name, value string) error {
	setStatement := `insert into glpi_configs (context, name, value) values (?, ?, ?)
        on duplicate key update value = values(value)`
	_, err := dao.MetadataDB.Exec(setStatement, context, name, value)
	if err != nil {
		dao.GetLogger().Error("error in SetConfigValue",
			zap.String("context", context), zap.String("name", name), zap.Error(err))
	}
	return err
}
