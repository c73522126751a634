package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables. Each overrides the corresponding YAML field.
const (
	GLPI_API_CA                        = "GLPI_API_CA"
	GLPI_API_URL                       = "GLPI_API_URL"
	GLPI_APP_TOKEN                     = "GLPI_APP_TOKEN"
	GLPI_DB_CA                         = "GLPI_DB_CA"
	GLPI_DB_CERT                       = "GLPI_DB_CERT"
	GLPI_DB_CONN_PARAMS                = "GLPI_DB_CONN_PARAMS"
	GLPI_DB_DRIVER                     = "GLPI_DB_DRIVER"
	GLPI_DB_HOST                       = "GLPI_DB_HOST"
	GLPI_DB_KEY                        = "GLPI_DB_KEY"
	GLPI_DB_MAXIDLECONNS               = "GLPI_DB_MAXIDLECONNS"
	GLPI_DB_MAXOPENCONNS               = "GLPI_DB_MAXOPENCONNS"
	GLPI_DB_PASSWORD                   = "GLPI_DB_PASSWORD"
	GLPI_DB_PORT                       = "GLPI_DB_PORT"
	GLPI_DB_PROTOCOL                   = "GLPI_DB_PROTOCOL"
	GLPI_DB_SCHEMA                     = "GLPI_DB_SCHEMA"
	GLPI_DB_USERNAME                   = "GLPI_DB_USERNAME"
	GLPI_DB_USE_TLS                    = "GLPI_DB_USE_TLS"
	GLPI_EVENT_KAFKA_ADDRS             = "GLPI_EVENT_KAFKA_ADDRS"
	GLPI_EVENT_PUBLISH_FAILURE_ACTIONS = "GLPI_EVENT_PUBLISH_FAILURE_ACTIONS"
	GLPI_EVENT_PUBLISH_SUCCESS_ACTIONS = "GLPI_EVENT_PUBLISH_SUCCESS_ACTIONS"
	GLPI_EVENT_TOPIC                   = "GLPI_EVENT_TOPIC"
	GLPI_LOG_LEVEL                     = "GLPI_LOG_LEVEL"
	GLPI_USER_TOKEN                    = "GLPI_USER_TOKEN"
)

func cascade(fromEnv, fromFile, defaultVal string) string {
	if envVal := os.Getenv(fromEnv); envVal != "" {
		return envVal
	}
	if fromFile != "" {
		return fromFile
	}
	return defaultVal
}

func cascadeInt(fromEnv string, fromFile, defaultVal int64) int64 {
	if parsed, err := strconv.ParseInt(os.Getenv(fromEnv), 10, 64); err == nil {
		return parsed
	}
	if fromFile != 0 {
		return fromFile
	}
	return defaultVal
}

// CascadeStringSlice selects a configuration slice from a comma-split env var,
// the config file, or a default slice.
func CascadeStringSlice(fromEnv string, fromFile, defaultVal []string) []string {
	if splitted := strings.Split(os.Getenv(fromEnv), ","); len(splitted) > 0 {
		if splitted[0] != "" {
			return splitted
		}
	}
	if len(fromFile) > 0 {
		if fromFile[0] != "" {
			return fromFile
		}
	}
	return defaultVal
}

func getEnvOrDefault(name, defaultValue string) string {
	envVal := os.Getenv(name)
	if len(envVal) == 0 {
		return defaultValue
	}
	return envVal
}

func getEnvOrDefaultInt(envVar string, defaultVal int64) int64 {
	if parsed, err := strconv.ParseInt(os.Getenv(envVar), 10, 64); err == nil {
		return parsed
	}
	return defaultVal
}
