package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/marceloslacerda/glpigo/config"
	"github.com/marceloslacerda/glpigo/dao"
	"github.com/marceloslacerda/glpigo/events"
	"github.com/marceloslacerda/glpigo/metadata/models"
	"github.com/marceloslacerda/glpigo/services/kafka"
)

// notificationQueue is the slice of the DAO the drain needs.
type notificationQueue interface {
	DeleteQueuedNotification(id int64) error
}

// drainNotifications reads pending rows from the delivery queue, publishes each as an
// event, and deletes rows whose events the brokers acknowledged.
func drainNotifications(clictx *cli.Context) error {
	conf, err := loadAppConfig(clictx)
	if err != nil {
		return err
	}

	d, _, err := dao.NewDataAccessLayer(conf.DatabaseConnection)
	if err != nil {
		return err
	}
	defer d.MetadataDB.Close()

	queued, err := d.GetQueuedNotifications()
	if err != nil {
		return err
	}
	if len(queued) == 0 {
		fmt.Println("queue is empty")
		return nil
	}

	if clictx.Bool("dry-run") {
		for _, q := range queued {
			fmt.Printf("would publish notification %d (%s #%d) to %s\n",
				q.ID, q.ItemType, q.ItemsID, q.Recipient.String)
		}
		return nil
	}

	if len(conf.EventQueue.KafkaAddrs) == 0 {
		return errors.New("no kafka brokers configured, set " + config.GLPI_EVENT_KAFKA_ADDRS)
	}
	publisher, err := kafka.NewAsyncProducer(conf.EventQueue.KafkaAddrs,
		kafka.WithLogger(config.RootLogger),
		kafka.WithTopic(conf.EventQueue.Topic),
		kafka.WithPublishActions(conf.EventQueue.PublishSuccessActions, conf.EventQueue.PublishFailureActions),
	)
	if err != nil {
		return err
	}
	defer publisher.Close()

	drained, err := drainQueue(d, publisher, queued)
	if err != nil {
		return fmt.Errorf("drained %d of %d notifications: %v", drained, len(queued), err)
	}

	fmt.Printf("drained %d notifications\n", drained)
	return nil
}

// drainQueue publishes each row and deletes it only once the queue acknowledged the
// event. Rows past the first failure stay queued for the next run.
func drainQueue(queue notificationQueue, publisher events.ConfirmedPublisher, queued []models.QueuedNotification) (int, error) {
	drained := 0
	for _, q := range queued {
		if err := publisher.PublishConfirm(toNotificationEvent(q)); err != nil {
			return drained, fmt.Errorf("notification %d was not delivered: %v", q.ID, err)
		}
		if err := queue.DeleteQueuedNotification(q.ID); err != nil {
			return drained, fmt.Errorf("notification %d was delivered but could not be deleted: %v", q.ID, err)
		}
		drained++
	}
	return drained, nil
}

func toNotificationEvent(q models.QueuedNotification) events.Notification {
	created := time.Time{}
	if q.CreateTime.Valid {
		created = q.CreateTime.Time
	}
	return events.Notification{
		ID:         q.ID,
		ItemType:   q.ItemType,
		ItemsID:    q.ItemsID,
		Recipient:  q.Recipient.String,
		Subject:    q.Name.String,
		Mode:       q.Mode,
		CreateTime: created,
	}
}
