package main

import (
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/urfave/cli"

	"github.com/marceloslacerda/glpigo/util"
)

var migrationsFlag = cli.StringFlag{
	Name:  "dir",
	Usage: "directory holding sql-migrate migration files",
	Value: "migrations",
}

func migrationSource(clictx *cli.Context) (*migrate.FileMigrationSource, error) {
	dir := clictx.String("dir")
	if ok, err := util.PathExists(dir); err != nil {
		return nil, err
	} else if !ok {
		return nil, fmt.Errorf("migrations directory %s does not exist", dir)
	}
	return &migrate.FileMigrationSource{Dir: dir}, nil
}

func migrateUp(clictx *cli.Context) error {
	m, err := migrationSource(clictx)
	if err != nil {
		return err
	}

	db, err := connect(clictx)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := migrate.Exec(db.DB, "mysql", m, migrate.Up)
	if err != nil {
		return err
	}

	fmt.Printf("applied %v migrations up\n", n)
	return nil
}

func migrateDown(clictx *cli.Context) error {
	m, err := migrationSource(clictx)
	if err != nil {
		return err
	}

	db, err := connect(clictx)
	if err != nil {
		return err
	}
	defer db.Close()

	// Apply exactly one migration down.
	n, err := migrate.ExecMax(db.DB, "mysql", m, migrate.Down, 1)
	if err != nil {
		return err
	}
	fmt.Printf("applied %v migrations down\n", n)

	return nil
}
