package dump

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marceloslacerda/glpigo/schema"
)

const sampleDump = `-- MariaDB dump 10.19  Distrib 10.5.19-MariaDB
--
-- Host: localhost    Database: glpi
-- ------------------------------------------------------
/*!40101 SET @OLD_CHARACTER_SET_CLIENT=@@CHARACTER_SET_CLIENT */;
/*!40101 SET NAMES utf8mb4 */;
/*!40103 SET @OLD_TIME_ZONE=@@TIME_ZONE, TIME_ZONE='+00:00' */;
/*!40014 SET @OLD_UNIQUE_CHECKS=@@UNIQUE_CHECKS, UNIQUE_CHECKS=0 */;
/*!40014 SET @OLD_FOREIGN_KEY_CHECKS=@@FOREIGN_KEY_CHECKS, FOREIGN_KEY_CHECKS=0 */;
/*!40101 SET @OLD_SQL_MODE=@@SQL_MODE, SQL_MODE='NO_AUTO_VALUE_ON_ZERO' */;

--
-- Table structure for table ` + "`glpi_configs`" + `
--

DROP TABLE IF EXISTS ` + "`glpi_configs`" + `;
CREATE TABLE ` + "`glpi_configs`" + ` (
  ` + "`id`" + ` int unsigned NOT NULL AUTO_INCREMENT,
  ` + "`context`" + ` varchar(150) NOT NULL DEFAULT 'core',
  ` + "`name`" + ` varchar(150) NOT NULL,
  ` + "`value`" + ` text DEFAULT NULL,
  PRIMARY KEY (` + "`id`" + `),
  UNIQUE KEY ` + "`unicity`" + ` (` + "`context`,`name`" + `)
) ENGINE=InnoDB AUTO_INCREMENT=10 DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci ROW_FORMAT=DYNAMIC;

LOCK TABLES ` + "`glpi_configs`" + ` WRITE;
/*!40000 ALTER TABLE ` + "`glpi_configs`" + ` DISABLE KEYS */;
INSERT INTO ` + "`glpi_configs`" + ` VALUES (1,'core','version','10.0.17'),(2,'core','dbversion','10.0.17@hash'),(3,'core','notes',NULL);
/*!40000 ALTER TABLE ` + "`glpi_configs`" + ` ENABLE KEYS */;
UNLOCK TABLES;

DROP TABLE IF EXISTS ` + "`glpi_computers`" + `;
CREATE TABLE ` + "`glpi_computers`" + ` (
  ` + "`id`" + ` int unsigned NOT NULL AUTO_INCREMENT,
  ` + "`entities_id`" + ` int unsigned NOT NULL DEFAULT 0,
  ` + "`name`" + ` varchar(255) DEFAULT NULL,
  ` + "`date_mod`" + ` timestamp NULL DEFAULT current_timestamp() COMMENT 'last change',
  ` + "`uuid`" + ` varchar(255) DEFAULT NULL,
  PRIMARY KEY (` + "`id`" + `),
  KEY ` + "`entities_id`" + ` (` + "`entities_id`" + `)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;

LOCK TABLES ` + "`glpi_computers`" + ` WRITE;
INSERT INTO ` + "`glpi_computers`" + ` VALUES (1,0,'it\'s a pc; really',NULL,0x0a0b),(2,0,NULL,NULL,NULL);
UNLOCK TABLES;

/*!40101 SET SQL_MODE=@OLD_SQL_MODE */;
/*!40014 SET FOREIGN_KEY_CHECKS=@OLD_FOREIGN_KEY_CHECKS */;
/*!40014 SET UNIQUE_CHECKS=@OLD_UNIQUE_CHECKS */;
/*!40103 SET TIME_ZONE=@OLD_TIME_ZONE */;
`

func TestParseSampleDump(t *testing.T) {
	snap, err := Parse(strings.NewReader(sampleDump))
	require.NoError(t, err)

	tz, ok := snap.Pragma("TIME_ZONE")
	require.True(t, ok)
	assert.Equal(t, "'+00:00'", tz)
	names, ok := snap.Pragma("NAMES")
	require.True(t, ok)
	assert.Equal(t, "utf8mb4", names)
	fk, ok := snap.Pragma("FOREIGN_KEY_CHECKS")
	require.True(t, ok)
	assert.Equal(t, "0", fk)
	mode, ok := snap.Pragma("SQL_MODE")
	require.True(t, ok)
	assert.Equal(t, "'NO_AUTO_VALUE_ON_ZERO'", mode)

	require.Len(t, snap.Tables, 2)

	configs := snap.Table("glpi_configs")
	require.NotNil(t, configs)
	require.Len(t, configs.Columns, 4)
	assert.Equal(t, "int unsigned", configs.Columns[0].Type)
	assert.True(t, configs.Columns[0].AutoIncrement)
	assert.False(t, configs.Columns[0].Nullable)
	assert.Equal(t, schema.DefaultLiteral, configs.Columns[1].Default)
	assert.Equal(t, "core", configs.Columns[1].DefaultValue)
	assert.Equal(t, schema.DefaultNull, configs.Columns[3].Default)
	assert.Equal(t, "InnoDB", configs.Engine)
	assert.Equal(t, int64(10), configs.AutoIncrement)
	assert.Equal(t, "utf8mb4", configs.Charset)
	assert.Equal(t, "utf8mb4_unicode_ci", configs.Collation)
	assert.Equal(t, "DYNAMIC", configs.RowFormat)

	keys := configs.UniqueKeys()
	require.Len(t, keys, 1)
	assert.Equal(t, "unicity", keys[0].Name)
	assert.Equal(t, []string{"context", "name"}, keys[0].Columns)

	require.Len(t, configs.Rows, 3)
	version, ok := snap.ConfigValue("core", "version")
	require.True(t, ok)
	assert.Equal(t, "10.0.17", version)
	assert.True(t, configs.Rows[2][3].IsNull())

	computers := snap.Table("glpi_computers")
	require.NotNil(t, computers)
	assert.Equal(t, schema.DefaultCurrentTimestamp, computers.Columns[3].Default)
	assert.Equal(t, "last change", computers.Columns[3].Comment)
	require.Len(t, computers.Rows, 2)
	assert.Equal(t, "it's a pc; really", computers.Rows[0][2].AsString())
	assert.Equal(t, schema.HexValue([]byte{0x0a, 0x0b}), computers.Rows[0][4])
}

func TestRoundTrip(t *testing.T) {
	first, err := Parse(strings.NewReader(sampleDump))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, first))

	second, err := Parse(&buf)
	require.NoError(t, err)

	assert.Equal(t, first.Pragmas, second.Pragmas)
	require.Len(t, second.Tables, len(first.Tables))
	for i := range first.Tables {
		assert.Equal(t, first.Tables[i], second.Tables[i], first.Tables[i].Name)
	}
}

func TestParseRejectsColumnCountMismatch(t *testing.T) {
	in := "CREATE TABLE `glpi_things` (\n  `id` int unsigned NOT NULL\n) ENGINE=InnoDB;\n" +
		"INSERT INTO `glpi_things` VALUES (1,2);\n"
	_, err := Parse(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 values")
}

func TestParseRejectsInsertBeforeCreate(t *testing.T) {
	_, err := Parse(strings.NewReader("INSERT INTO `glpi_things` VALUES (1);\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before its create table")
}

func TestStatementScanner(t *testing.T) {
	in := "SELECT 1;\n-- a comment; with a semicolon\nSELECT ';';\n# another\nSELECT `a;b`;\nSELECT 2"
	sc := NewStatementScanner(strings.NewReader(in))

	var stmts []string
	for sc.Scan() {
		stmts = append(stmts, sc.Statement())
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, []string{"SELECT 1", "SELECT ';'", "SELECT `a;b`", "SELECT 2"}, stmts)
}

func TestStatementScannerKeepsConditionalComments(t *testing.T) {
	in := "/*!40101 SET NAMES utf8mb4 */;\n/* plain comment */ SELECT 1;"
	sc := NewStatementScanner(strings.NewReader(in))

	require.True(t, sc.Scan())
	assert.Equal(t, "/*!40101 SET NAMES utf8mb4 */", sc.Statement())
	require.True(t, sc.Scan())
	assert.Equal(t, "SELECT 1", sc.Statement())
	assert.False(t, sc.Scan())
	require.NoError(t, sc.Err())
}

func TestStatementScannerEscapedQuote(t *testing.T) {
	in := `INSERT INTO t VALUES ('a\'b;c');`
	sc := NewStatementScanner(strings.NewReader(in))
	require.True(t, sc.Scan())
	assert.Equal(t, `INSERT INTO t VALUES ('a\'b;c')`, sc.Statement())
}

func TestUnquoteSQLString(t *testing.T) {
	cases := map[string]string{
		`'plain'`:          "plain",
		`'it\'s'`:          "it's",
		`'a\nb\tc'`:        "a\nb\tc",
		`'back\\'`:         `back\`,
		`'doubled''quote'`: "doubled'quote",
		`'\0\Z'`:           "\x00\x1a",
	}
	for in, want := range cases {
		got, err := unquoteSQLString(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := unquoteSQLString(`'unterminated`)
	assert.Error(t, err)
	_, err = unquoteSQLString(`notquoted`)
	assert.Error(t, err)
}

func TestParseInsertRows(t *testing.T) {
	rows, err := parseInsertRows(`(1,'a',NULL,2.5,0xdeadbeef),(-2,'b\'c',0,1e3,NULL)`)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, schema.IntValue(1), rows[0][0])
	assert.Equal(t, schema.StringValue("a"), rows[0][1])
	assert.True(t, rows[0][2].IsNull())
	assert.Equal(t, schema.FloatValue(2.5), rows[0][3])
	assert.Equal(t, schema.HexValue([]byte{0xde, 0xad, 0xbe, 0xef}), rows[0][4])

	assert.Equal(t, schema.IntValue(-2), rows[1][0])
	assert.Equal(t, schema.StringValue("b'c"), rows[1][1])
	assert.Equal(t, schema.FloatValue(1000), rows[1][3])
}
