package models

// DBState holds the version markers a loaded database reports through glpi_configs.
type DBState struct {
	// Version is the application version, glpi_configs core/version.
	Version string
	// DBVersion is the schema version, glpi_configs core/dbversion. It carries the
	// application version as a prefix plus a schema hash.
	DBVersion string
}
