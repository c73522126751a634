package models

// Event is one row of glpi_events, the append-only audit trail.
type Event struct {
	ID      int64      `db:"id" json:"id"`
	ItemsID int64      `db:"items_id" json:"items_id"`
	Type    NullString `db:"type" json:"type"`
	Date    NullTime   `db:"date" json:"date"`
	Service NullString `db:"service" json:"service"`
	Level   int64      `db:"level" json:"level"`
	Message NullString `db:"message" json:"message"`
}
