package models

// ConfigEntry is one row of glpi_configs. The (context, name) pair is unique.
type ConfigEntry struct {
	ID      int64      `db:"id" json:"id"`
	Context string     `db:"context" json:"context"`
	Name    string     `db:"name" json:"name"`
	Value   NullString `db:"value" json:"value"`
}
