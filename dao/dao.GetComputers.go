package dao

import (
	"go.uber.org/zap"

	"github.com/marceloslacerda/glpigo/metadata/models"
)

// GetComputers lists inventory computers. Trashed rows and templates are excluded
// unless asked for.
func (dao *DataAccessLayer) GetComputers(includeDeleted, includeTemplates bool) ([]models.Computer, error) {
	getStatement := `select id, entities_id, name, serial, otherserial, uuid,
        computermodels_id, computertypes_id, manufacturers_id, users_id_tech,
        is_deleted, is_template, date_mod, date_creation
        from glpi_computers where 1=1`
	if !includeDeleted {
		getStatement += ` and is_deleted = 0`
	}
	if !includeTemplates {
		getStatement += ` and is_template = 0`
	}
	getStatement += ` order by id`

	var computers []models.Computer
	err := dao.MetadataDB.Select(&computers, getStatement)
	if err != nil {
		dao.GetLogger().Error("error in GetComputers", zap.Error(err))
		return nil, err
	}
	return computers, nil
}
