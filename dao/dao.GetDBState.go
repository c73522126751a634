package dao

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/marceloslacerda/glpigo/metadata/models"
)

// GetDBState retrieves the version markers of the connected database from the
// glpi_configs core context.
func (dao *DataAccessLayer) GetDBState() (models.DBState, error) {
	tx, err := dao.MetadataDB.Beginx()
	if err != nil {
		dao.GetLogger().Error("could not begin transaction", zap.Error(err))
		return models.DBState{}, err
	}
	dbState, err := getDBStateInTransaction(tx)
	if err != nil {
		dao.GetLogger().Error("error in GetDBState", zap.Error(err))
		tx.Rollback()
	} else {
		tx.Commit()
	}
	return dbState, err
}

func getDBStateInTransaction(tx *sqlx.Tx) (models.DBState, error) {
	var dbState models.DBState

	getVersionStatement := `select value from glpi_configs where context = 'core' and name = ?`
	if err := tx.Get(&dbState.Version, getVersionStatement, "version"); err != nil {
		return dbState, err
	}
	if err := tx.Get(&dbState.DBVersion, getVersionStatement, "dbversion"); err != nil {
		return dbState, err
	}

	return dbState, nil
}
