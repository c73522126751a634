package models

// Computer is one row of glpi_computers, trimmed to the inventory columns this tool
// reads. Rows flagged is_template are blueprints, not assets; rows flagged is_deleted
// sit in the trash and still exist.
type Computer struct {
	ID              int64      `db:"id" json:"id"`
	EntitiesID      int64      `db:"entities_id" json:"entities_id"`
	Name            NullString `db:"name" json:"name"`
	Serial          NullString `db:"serial" json:"serial"`
	OtherSerial     NullString `db:"otherserial" json:"otherserial"`
	UUID            NullString `db:"uuid" json:"uuid"`
	ComputerModels  int64      `db:"computermodels_id" json:"computermodels_id"`
	ComputerTypes   int64      `db:"computertypes_id" json:"computertypes_id"`
	Manufacturers   int64      `db:"manufacturers_id" json:"manufacturers_id"`
	UsersIDTech     int64      `db:"users_id_tech" json:"users_id_tech"`
	IsDeleted       bool       `db:"is_deleted" json:"is_deleted"`
	IsTemplate      bool       `db:"is_template" json:"is_template"`
	DateMod         NullTime   `db:"date_mod" json:"date_mod"`
	DateCreation    NullTime   `db:"date_creation" json:"date_creation"`
}
