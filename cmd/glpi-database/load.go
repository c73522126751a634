package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/marceloslacerda/glpigo/dump"
)

// load streams a dump file into the configured database. Every statement runs on a
// single connection so the dump's session pragmas (charset, time zone, disabled
// foreign key and unique checks) stay in effect for the whole replay.
func load(clictx *cli.Context) error {
	path := clictx.Args().First()
	if path == "" {
		return errors.New("load requires a dump file argument")
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	db, err := connect(clictx)
	if err != nil {
		return err
	}
	defer db.Close()

	if !isDBEmpty(db) && !clictx.Bool("force") {
		return errors.New("database is not empty. Review which DB you're connecting to or run with --force")
	}

	ctx := context.Background()
	conn, err := db.Connx(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	total := 0
	sc := dump.NewStatementScanner(f)
	for sc.Scan() {
		stmt := sc.Statement()
		if skipOnReplay(stmt) {
			continue
		}
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("statement %d failed: %v\nstatement was: %.120s", total+1, err, stmt)
		}
		total++
	}
	if err := sc.Err(); err != nil {
		return err
	}

	fmt.Printf("executed %d statements from %s\n", total, path)
	return nil
}

// skipOnReplay reports whether a dump statement should not be executed over the wire.
// Table locks are pointless on our single import connection and fail for users
// without the LOCK TABLES privilege.
func skipOnReplay(stmt string) bool {
	upper := strings.ToUpper(stmt)
	return strings.HasPrefix(upper, "LOCK TABLES") || strings.HasPrefix(upper, "UNLOCK TABLES")
}

// wipe drops every glpi_* table from the configured database.
func wipe(clictx *cli.Context) error {
	db, err := connect(clictx)
	if err != nil {
		return err
	}
	defer db.Close()

	if !clictx.Bool("force") {
		return errors.New("wipe is destructive, run with --force to confirm")
	}

	var tables []string
	if err := db.Select(&tables, `select table_name from information_schema.tables
        where table_schema = database() and table_name like 'glpi\_%'`); err != nil {
		return err
	}
	if len(tables) == 0 {
		fmt.Println("nothing to drop")
		return nil
	}

	ctx := context.Background()
	conn, err := db.Connx(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS=0"); err != nil {
		return err
	}
	for _, table := range tables {
		if _, err := conn.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS `%s`", table)); err != nil {
			return fmt.Errorf("dropping %s: %v", table, err)
		}
	}
	if _, err := conn.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS=1"); err != nil {
		return err
	}

	fmt.Printf("dropped %d tables\n", len(tables))
	return nil
}
