package dao_test

import (
	"os"
	"testing"

	"github.com/marceloslacerda/glpigo/config"
	"github.com/marceloslacerda/glpigo/dao"
)

// testDAO connects to a locally-running database loaded with a snapshot. The tests
// are skipped in short mode and when no database is configured.
func testDAO(t *testing.T) *dao.DataAccessLayer {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	if os.Getenv(config.GLPI_DB_HOST) == "" {
		t.Skip("skipping database test, " + config.GLPI_DB_HOST + " not set")
	}

	conf, err := config.NewAppConfiguration("")
	if err != nil {
		t.Fatalf("loading configuration: %v", err)
	}
	d, _, err := dao.NewDataAccessLayer(conf.DatabaseConnection, dao.WithLogger(config.RootLogger))
	if err != nil {
		t.Fatalf("connecting to database: %v", err)
	}
	t.Cleanup(func() { d.MetadataDB.Close() })
	return d
}
