package config

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/marceloslacerda/glpigo/client"
)

var (
	defaultDBDriver = "mysql"
	defaultDBHost   = "localhost"
	defaultDBPort   = "3306"
	defaultDBSchema = "glpi"
)

// AppConfiguration is a structure that defines the known configuration format
// for this application.
type AppConfiguration struct {
	API                client.Config           `yaml:"api"`
	DatabaseConnection DatabaseConfiguration   `yaml:"database"`
	EventQueue         EventQueueConfiguration `yaml:"event_queue"`
}

// DatabaseConfiguration is a structure that defines the attributes
// needed for setting up a database connection.
type DatabaseConfiguration struct {
	// Driver specifies the database driver. Only "mysql" is supported.
	Driver string `yaml:"driver"`
	// Username is the database username.
	Username string `yaml:"username"`
	// Password is the database password. Loading dumps and running migrations
	// requires a user with DDL permissions.
	Password string `yaml:"password"`
	// Protocol specifies the network protocol. Only "tcp" is supported.
	Protocol string `yaml:"protocol"`
	// Host is the database hostname.
	Host string `yaml:"host"`
	// Port is the database port. Commonly 3306 for MariaDB.
	Port string `yaml:"port"`
	// Schema is the database name to connect to. The default is "glpi".
	Schema string `yaml:"schema"`
	// Params are custom connection params injected into the DSN. These
	// will vary depending on your server's configuration.
	Params string `yaml:"conn_params"`
	// UseTLS determines whether to connect to the database with TLS.
	UseTLS bool `yaml:"use_tls"`
	// SkipVerify controls whether the hostname of an SSL peer is verified.
	SkipVerify bool `yaml:"insecure_skip_verify"`
	// CAPath is the path to a PEM encoded certificate. For connecting to
	// some test databases this might be the only SSL asset required, if
	// 2-way SSL is not enforced.
	CAPath string `yaml:"trust"`
	// ClientCert is the path to our PEM encoded client certificate.
	ClientCert string `yaml:"cert"`
	// ClientKey is the path to our PEM encoded client key.
	ClientKey string `yaml:"key"`
	// MaxIdleConns and MaxOpenConns bound the connection pool. Zero keeps the
	// default of 10.
	MaxIdleConns int64 `yaml:"max_idle_conns"`
	MaxOpenConns int64 `yaml:"max_open_conns"`
}

// EventQueueConfiguration configures publishing to the Kafka event queue.
type EventQueueConfiguration struct {
	// KafkaAddrs is a list of host:port pairs of Kafka brokers.
	KafkaAddrs []string `yaml:"kafka_addrs"`
	// Topic denotes the name of the topic to publish events to in Kafka.
	Topic string `yaml:"topic"`
	// PublishSuccessActions, if provided, specifies the types of success actions
	// to publish to Kafka. If empty, all success actions are published.
	PublishSuccessActions []string `yaml:"publish_success_actions"`
	// PublishFailureActions, if provided, specifies the types of failure actions
	// to publish to Kafka. If empty, all failure actions are published.
	PublishFailureActions []string `yaml:"publish_failure_actions"`
}

// NewAppConfiguration loads the YAML configuration file at path, then applies
// environment variable overrides. An empty path yields a configuration built from the
// environment and defaults alone.
func NewAppConfiguration(path string) (AppConfiguration, error) {
	var conf AppConfiguration
	if path != "" {
		loaded, err := LoadYAMLConfig(path)
		if err != nil {
			return conf, err
		}
		conf = loaded
	}

	conf.API.Remote = cascade(GLPI_API_URL, conf.API.Remote, "")
	conf.API.AppToken = cascade(GLPI_APP_TOKEN, conf.API.AppToken, "")
	conf.API.UserToken = cascade(GLPI_USER_TOKEN, conf.API.UserToken, "")
	conf.API.Trust = cascade(GLPI_API_CA, conf.API.Trust, "")

	db := &conf.DatabaseConnection
	db.Driver = cascade(GLPI_DB_DRIVER, db.Driver, defaultDBDriver)
	db.Username = cascade(GLPI_DB_USERNAME, db.Username, "glpi")
	db.Password = cascade(GLPI_DB_PASSWORD, db.Password, "")
	db.Protocol = cascade(GLPI_DB_PROTOCOL, db.Protocol, "tcp")
	db.Host = cascade(GLPI_DB_HOST, db.Host, defaultDBHost)
	db.Port = cascade(GLPI_DB_PORT, db.Port, defaultDBPort)
	db.Schema = cascade(GLPI_DB_SCHEMA, db.Schema, defaultDBSchema)
	db.Params = cascade(GLPI_DB_CONN_PARAMS, db.Params, "")
	db.CAPath = cascade(GLPI_DB_CA, db.CAPath, "")
	db.ClientCert = cascade(GLPI_DB_CERT, db.ClientCert, "")
	db.ClientKey = cascade(GLPI_DB_KEY, db.ClientKey, "")
	db.MaxIdleConns = cascadeInt(GLPI_DB_MAXIDLECONNS, db.MaxIdleConns, 10)
	db.MaxOpenConns = cascadeInt(GLPI_DB_MAXOPENCONNS, db.MaxOpenConns, 10)
	if os.Getenv(GLPI_DB_USE_TLS) != "" {
		db.UseTLS = parseBool(os.Getenv(GLPI_DB_USE_TLS))
	}

	eq := &conf.EventQueue
	eq.KafkaAddrs = CascadeStringSlice(GLPI_EVENT_KAFKA_ADDRS, eq.KafkaAddrs, nil)
	eq.Topic = cascade(GLPI_EVENT_TOPIC, eq.Topic, "glpi-event")
	eq.PublishSuccessActions = CascadeStringSlice(GLPI_EVENT_PUBLISH_SUCCESS_ACTIONS, eq.PublishSuccessActions, nil)
	eq.PublishFailureActions = CascadeStringSlice(GLPI_EVENT_PUBLISH_FAILURE_ACTIONS, eq.PublishFailureActions, nil)

	return conf, nil
}

// GetDatabaseHandle initializes a database connection using the configuration.
func (r *DatabaseConfiguration) GetDatabaseHandle() (*sqlx.DB, error) {
	if r.UseTLS {
		dbTLS, err := r.buildTLSConfig()
		if err != nil {
			return nil, err
		}
		switch r.Driver {
		case defaultDBDriver:
			if err := mysql.RegisterTLSConfig("glpi", dbTLS); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("driver %s does not support TLS configuration", r.Driver)
		}
	}
	db, err := sqlx.Open(r.Driver, r.BuildDSN())
	if err != nil {
		return nil, err
	}
	// A configuration built outside NewAppConfiguration has zero pool bounds; fall
	// back to the environment.
	maxIdle := r.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = getEnvOrDefaultInt(GLPI_DB_MAXIDLECONNS, 10)
	}
	maxOpen := r.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = getEnvOrDefaultInt(GLPI_DB_MAXOPENCONNS, 10)
	}
	db.SetMaxIdleConns(int(maxIdle))
	db.SetMaxOpenConns(int(maxOpen))
	return db, nil
}

// BuildDSN prepares a Data Source Name suitable for the mysql driver. parseTime and the
// utf8mb4 charset are always requested; the session sql_mode gets NO_AUTO_VALUE_ON_ZERO
// so replaying dumps keeps explicit zero ids.
func (r *DatabaseConfiguration) BuildDSN() string {
	var dbDSN = ""
	if len(r.Username) > 0 {
		dbDSN += r.Username
		if len(r.Password) > 0 {
			dbDSN += ":" + r.Password
		}
	}
	if len(dbDSN) > 0 {
		dbDSN += "@"
	}
	if len(r.Protocol) > 0 {
		dbDSN += r.Protocol + "("
		if len(r.Host) > 0 {
			dbDSN += r.Host
		} else {
			dbDSN += defaultDBHost
		}
		dbDSN += ":"
		if len(r.Port) > 0 {
			dbDSN += r.Port
		} else {
			dbDSN += defaultDBPort
		}
		dbDSN += ")"
	}
	dbDSN += "/"
	if len(r.Schema) > 0 {
		dbDSN += r.Schema
	} else {
		dbDSN += defaultDBSchema
	}

	params := []string{
		"parseTime=true",
		"charset=utf8mb4",
		"sql_mode=%27NO_AUTO_VALUE_ON_ZERO%27",
	}
	if r.UseTLS {
		params = append(params, "tls=glpi")
	}
	if len(r.Params) > 0 {
		params = append(params, r.Params)
	}
	dbDSN += "?" + strings.Join(params, "&")

	logDSN := dbDSN
	if r.Password != "" {
		logDSN = strings.Replace(logDSN, r.Password, "{password}", -1)
	}
	RootLogger.Debug("using this connection string", zap.String("dsn", logDSN))
	return dbDSN
}

// buildTLSConfig prepares a standard go tls.Config with RootCAs and client
// certificates for communicating with the database securely.
func (r *DatabaseConfiguration) buildTLSConfig() (*tls.Config, error) {
	conf := &tls.Config{
		ServerName:         r.Host,
		InsecureSkipVerify: r.SkipVerify,
	}
	if r.CAPath != "" {
		trust, err := os.ReadFile(r.CAPath)
		if err != nil {
			return nil, fmt.Errorf("reading database CA trust %s: %w", r.CAPath, err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(trust) {
			return nil, fmt.Errorf("no certificates parsed from %s", r.CAPath)
		}
		conf.RootCAs = pool
	}
	if r.ClientCert != "" && r.ClientKey != "" {
		cert, err := tls.LoadX509KeyPair(r.ClientCert, r.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("loading database client certificate: %w", err)
		}
		conf.Certificates = []tls.Certificate{cert}
	}
	return conf, nil
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
