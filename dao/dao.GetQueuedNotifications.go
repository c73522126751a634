package dao

import (
	"go.uber.org/zap"

	"github.com/marceloslacerda/glpigo/metadata/models"
)

// GetQueuedNotifications lists the pending rows of the delivery queue: not yet sent
// and not soft deleted, oldest first.
func (dao *DataAccessLayer) GetQueuedNotifications() ([]models.QueuedNotification, error) {
	var queued []models.QueuedNotification
	getStatement := `select id, itemtype, items_id, entities_id, is_deleted, sent_try,
        create_time, send_time, sent_time, name, sender, sendername, recipient,
        recipientname, replyto, replytoname, headers, body_html, body_text,
        messageid, documents, mode
        from glpi_queuednotifications
        where is_deleted = 0 and sent_time is null
        order by create_time, id`
	err := dao.MetadataDB.Select(&queued, getStatement)
	if err != nil {
		dao.GetLogger().Error("error in GetQueuedNotifications", zap.Error(err))
		return nil, err
	}
	return queued, nil
}

// DeleteQueuedNotification removes one queue row after a confirmed delivery.
func (dao *DataAccessLayer) DeleteQueuedNotification(id int64) error {
	deleteStatement := `delete from glpi_queuednotifications where id = ?`
	_, err := dao.MetadataDB.Exec(deleteStatement, id)
	if err != nil {
		dao.GetLogger().Error("error in DeleteQueuedNotification", zap.Int64("id", id), zap.Error(err))
	}
	return err
}
