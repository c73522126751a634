package models

// QueuedNotification is one row of glpi_queuednotifications, the outbound delivery
// queue. A row is pending until sent_time is set or the row is soft deleted.
type QueuedNotification struct {
	ID            int64      `db:"id" json:"id"`
	ItemType      string     `db:"itemtype" json:"itemtype"`
	ItemsID       int64      `db:"items_id" json:"items_id"`
	EntitiesID    int64      `db:"entities_id" json:"entities_id"`
	IsDeleted     bool       `db:"is_deleted" json:"is_deleted"`
	SentTry       int64      `db:"sent_try" json:"sent_try"`
	CreateTime    NullTime   `db:"create_time" json:"create_time"`
	SendTime      NullTime   `db:"send_time" json:"send_time"`
	SentTime      NullTime   `db:"sent_time" json:"sent_time"`
	Name          NullString `db:"name" json:"name"`
	Sender        NullString `db:"sender" json:"sender"`
	SenderName    NullString `db:"sendername" json:"sendername"`
	Recipient     NullString `db:"recipient" json:"recipient"`
	RecipientName NullString `db:"recipientname" json:"recipientname"`
	ReplyTo       NullString `db:"replyto" json:"replyto"`
	ReplyToName   NullString `db:"replytoname" json:"replytoname"`
	Headers       NullString `db:"headers" json:"headers"`
	BodyHTML      NullString `db:"body_html" json:"body_html"`
	BodyText      NullString `db:"body_text" json:"body_text"`
	MessageID     NullString `db:"messageid" json:"messageid"`
	Documents     NullString `db:"documents" json:"documents"`
	Mode          string     `db:"mode" json:"mode"`
}
