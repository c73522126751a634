package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/urfave/cli"

	"github.com/marceloslacerda/glpigo/config"
)

func main() {
	app := cli.NewApp()
	app.Name = "glpi-database"
	app.Usage = "database manager for loading, verifying and migrating snapshots"

	// Declare flags common to commands, and pass them in Flags below.
	confFlag := cli.StringFlag{
		Name:  "conf",
		Usage: "Path to yaml config",
	}

	force := cli.BoolFlag{
		Name:  "force",
		Usage: "ignore safety checks and overwrite a non-empty database",
	}

	app.Commands = []cli.Command{
		{
			Name:      "load",
			Usage:     "Load a dump file into the configured database",
			ArgsUsage: "DUMPFILE",
			Flags:     []cli.Flag{confFlag, force},
			Action: func(clictx *cli.Context) error {
				if err := load(clictx); err != nil {
					log.Fatal(err)
				}
				return nil
			},
		},
		{
			Name:      "verify",
			Usage:     "Run integrity checks against a dump file, or the live database with --live",
			ArgsUsage: "[DUMPFILE]",
			Flags: []cli.Flag{confFlag, cli.BoolFlag{
				Name:  "live",
				Usage: "probe the configured database instead of a dump file",
			}},
			Action: func(clictx *cli.Context) error {
				if err := verifyCommand(clictx); err != nil {
					log.Fatal(err)
				}
				return nil
			},
		},
		{
			Name:  "status",
			Usage: "Print status for configured database",
			Flags: []cli.Flag{confFlag},
			Action: func(clictx *cli.Context) error {
				if err := status(clictx); err != nil {
					log.Fatal(err)
				}
				return nil
			},
		},
		{
			Name:  "wipe",
			Usage: "Drop every glpi_* table from the configured database",
			Flags: []cli.Flag{confFlag, force},
			Action: func(clictx *cli.Context) error {
				if err := wipe(clictx); err != nil {
					log.Fatal(err)
				}
				return nil
			},
		},
		{
			Name:      "redump",
			Usage:     "Parse a dump file and re-emit it in canonical layout",
			ArgsUsage: "DUMPFILE",
			Flags: []cli.Flag{cli.BoolFlag{
				Name:  "check",
				Usage: "only verify the dump round-trips, write nothing",
			}, cli.StringFlag{
				Name:  "out",
				Usage: "output path, defaults to stdout",
			}},
			Action: func(clictx *cli.Context) error {
				if err := redump(clictx); err != nil {
					log.Fatal(err)
				}
				return nil
			},
		},
		{
			Name:  "migrate",
			Usage: "Apply local schema migrations on top of a loaded snapshot",
			Subcommands: []cli.Command{
				{
					Name:  "up",
					Usage: "Apply all pending migrations",
					Flags: []cli.Flag{confFlag, migrationsFlag},
					Action: func(clictx *cli.Context) error {
						if err := migrateUp(clictx); err != nil {
							log.Fatal(err)
						}
						return nil
					},
				},
				{
					Name:  "down",
					Usage: "Roll back the most recent migration",
					Flags: []cli.Flag{confFlag, migrationsFlag},
					Action: func(clictx *cli.Context) error {
						if err := migrateDown(clictx); err != nil {
							log.Fatal(err)
						}
						return nil
					},
				},
			},
		},
		{
			Name:  "drain-notifications",
			Usage: "Publish pending queued notifications to Kafka and delete them on send",
			Flags: []cli.Flag{confFlag, cli.BoolFlag{
				Name:  "dry-run",
				Usage: "list what would be published without sending or deleting",
			}},
			Action: func(clictx *cli.Context) error {
				if err := drainNotifications(clictx); err != nil {
					log.Fatal(err)
				}
				return nil
			},
		},
	}

	// Global flags. Used when no "command" passed. Must be repeated above for commands.
	app.Flags = []cli.Flag{
		confFlag,
	}

	// There is no "default" command. Print help and exit.
	app.Action = func(clictx *cli.Context) error {
		fmt.Printf("Must specify command. Run `%s help` for info\n", app.Name)
		return nil
	}

	app.Run(os.Args)
}

// loadAppConfig wraps the conversion of the cli conf parameter into a full
// configuration with environment overrides applied.
func loadAppConfig(clictx *cli.Context) (config.AppConfiguration, error) {
	return config.NewAppConfiguration(clictx.String("conf"))
}

// connect provides a database connection with the given config.
func connect(clictx *cli.Context) (*sqlx.DB, error) {
	conf, err := loadAppConfig(clictx)
	if err != nil {
		return nil, err
	}
	db, err := conf.DatabaseConnection.GetDatabaseHandle()
	if err != nil {
		return nil, fmt.Errorf("could not create db connection: %v", err)
	}
	return db, nil
}

// status reports whether the schema is present and which version it carries.
func status(clictx *cli.Context) error {
	db, err := connect(clictx)
	if err != nil {
		return err
	}
	defer db.Close()

	if isDBEmpty(db) {
		fmt.Println("database is empty")
		return nil
	}

	var version, dbversion string
	stmt := `select value from glpi_configs where context = 'core' and name = ?`
	if err := db.Get(&version, stmt, "version"); err != nil {
		return fmt.Errorf("schema present but version missing: %v", err)
	}
	if err := db.Get(&dbversion, stmt, "dbversion"); err != nil {
		return fmt.Errorf("schema present but dbversion missing: %v", err)
	}
	var tables int
	if err := db.Get(&tables, `select count(*) from information_schema.tables
        where table_schema = database() and table_name like 'glpi\_%'`); err != nil {
		return err
	}

	fmt.Printf("version:   %s\n", version)
	fmt.Printf("dbversion: %s\n", dbversion)
	fmt.Printf("tables:    %d\n", tables)
	return nil
}

// isDBEmpty looks for the glpi_configs table. If it exists, a snapshot was already
// loaded into this schema.
func isDBEmpty(db *sqlx.DB) bool {
	var name []string
	stmt := `select table_name from information_schema.tables
        where table_schema = database() and table_name = 'glpi_configs'`
	if err := db.Select(&name, stmt); err != nil {
		log.Println("could not do query:", err)
		return false
	}
	return len(name) == 0
}
