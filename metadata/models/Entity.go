package models

// Entity is one row of glpi_entities, the organizational tree every item hangs off.
// The root entity has id 0 and references itself through EntitiesID.
type Entity struct {
	ID           int64      `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	EntitiesID   int64      `db:"entities_id" json:"entities_id"`
	CompleteName NullString `db:"completename" json:"completename"`
	Level        int64      `db:"level" json:"level"`
	Comment      NullString `db:"comment" json:"comment"`
}
