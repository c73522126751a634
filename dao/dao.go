package dao

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/marceloslacerda/glpigo/config"
	"github.com/marceloslacerda/glpigo/metadata/models"
)

// DAO defines the contract our tools have with a loaded database.
type DAO interface {
	CountRows(table string) (int64, error)
	CreateEvent(event *models.Event) error
	DeleteQueuedNotification(id int64) error
	GetComputers(includeDeleted, includeTemplates bool) ([]models.Computer, error)
	GetConfigValue(context, name string) (string, error)
	GetDBState() (models.DBState, error)
	GetEntities() ([]models.Entity, error)
	GetEntity(id int64) (models.Entity, error)
	GetEvents(limit int) ([]models.Event, error)
	GetQueuedNotifications() ([]models.QueuedNotification, error)
	GetRules(subType string) ([]models.Rule, error)
	SetConfigValue(context, name, value string) error
	GetLogger() *zap.Logger
}

// DataAccessLayer is a concrete DAO implementation with a true DB connection.
type DataAccessLayer struct {
	// MetadataDB is the connection.
	MetadataDB *sqlx.DB
	// Logger has a default, but can be updated by passing options to constructor.
	Logger *zap.Logger
}

// Opt sets an option on DataAccessLayer.
type Opt func(*DataAccessLayer)

// WithLogger sets a custom logger on DataAccessLayer.
func WithLogger(logger *zap.Logger) Opt {
	return func(d *DataAccessLayer) {
		d.Logger = logger
	}
}

// NewDataAccessLayer constructs a new DataAccessLayer with defaults and options. The
// schema version of the connected database is also returned.
func NewDataAccessLayer(conf config.DatabaseConfiguration, opts ...Opt) (*DataAccessLayer, string, error) {
	db, err := conf.GetDatabaseHandle()
	if err != nil {
		return nil, "", err
	}
	d := DataAccessLayer{MetadataDB: db, Logger: config.RootLogger}

	for _, opt := range opts {
		opt(&d)
	}

	if err := pingDB(&d); err != nil {
		return nil, "", fmt.Errorf("could not ping database: %v", err)
	}

	state, err := d.GetDBState()
	if err != nil {
		return nil, "", fmt.Errorf("getting db state failed: %v", err)
	}

	return &d, state.DBVersion, nil
}

// GetLogger is a logger, probably for this session.
func (d *DataAccessLayer) GetLogger() *zap.Logger {
	return d.Logger
}

func daoCompileCheck() DAO {
	// function exists to make compiler complain when interface changes.
	return &DataAccessLayer{}
}

func pingDB(d *DataAccessLayer) error {
	logger := d.GetLogger()

	attempts := 0
	max := 20
	sleep := 3

	var err error

	for attempts < max {
		attempts++

		err = d.MetadataDB.Ping()
		if err == nil {
			if _, err = d.GetDBState(); err == nil {
				return nil
			}
			logger.Info("db available but schema not populated")
		} else {
			logger.Info("db sleep for retry")
		}
		time.Sleep(time.Duration(sleep) * time.Second)
	}
	return err
}
