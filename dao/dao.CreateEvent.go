package dao

import (
	"time"

	"go.uber.org/zap"

	"github.com/marceloslacerda/glpigo/metadata/models"
)

// CreateEvent appends one audit record to glpi_events and fills in the generated id.
func (dao *DataAccessLayer) CreateEvent(event *models.Event) error {
	if !event.Date.Valid {
		event.Date = models.ToNullTime(time.Now().UTC())
	}
	createStatement := `insert into glpi_events
        (items_id, type, date, service, level, message)
        values (?, ?, ?, ?, ?, ?)`
	result, err := dao.MetadataDB.Exec(createStatement,
		event.ItemsID, event.Type, event.Date, event.Service, event.Level, event.Message)
	if err != nil {
		dao.GetLogger().Error("error in CreateEvent", zap.Error(err))
		return err
	}
	event.ID, err = result.LastInsertId()
	return err
}

// GetEvents retrieves the most recent audit records, newest first.
func (dao *DataAccessLayer) GetEvents(limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = 100
	}
	var events []models.Event
	getStatement := `select id, items_id, type, date, service, level, message
        from glpi_events order by date desc, id desc limit ?`
	err := dao.MetadataDB.Select(&events, getStatement, limit)
	if err != nil {
		dao.GetLogger().Error("error in GetEvents", zap.Error(err))
		return nil, err
	}
	return events, nil
}
