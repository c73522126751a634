package dao

import (
	"go.uber.org/zap"

	"github.com/marceloslacerda/glpigo/metadata/models"
)

// GetEntities lists every row of the entity tree, root first.
func (dao *DataAccessLayer) GetEntities() ([]models.Entity, error) {
	var entities []models.Entity
	getStatement := `select id, name, entities_id, completename, level, comment
        from glpi_entities order by level, id`
	err := dao.MetadataDB.Select(&entities, getStatement)
	if err != nil {
		dao.GetLogger().Error("error in GetEntities", zap.Error(err))
		return nil, err
	}
	return entities, nil
}

// GetEntity retrieves one entity by id.
func (dao *DataAccessLayer) GetEntity(id int64) (models.Entity, error) {
	var entity models.Entity
	getStatement := `select id, name, entities_id, completename, level, comment
        from glpi_entities where id = ?`
	err := dao.MetadataDB.Get(&entity, getStatement, id)
	if err != nil {
		dao.GetLogger().Error("error in GetEntity", zap.Int64("id", id), zap.Error(err))
		return entity, err
	}
	return entity, nil
}
