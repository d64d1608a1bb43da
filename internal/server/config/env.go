package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays selected Config fields from environment variables.
//
// Supported variables:
//
//	PORT          HTTP port (kept separate from ADDRESS for compatibility
//	              with the reference deployment; results in ":<port>")
//	ADDRESS       full bind address, takes precedence over PORT
//	DATABASE_DSN  PostgreSQL DSN
//	REDIS_ADDR    Redis address for the session store
//	SESSION_TTL   session token lifetime, e.g. "24h"
//	BLOB_BACKEND  "disk" or "s3"
//	FOLDER_PATH   root directory for the disk blob backend
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("PORT"); ok {
		if _, err := strconv.Atoi(v); err == nil {
			config.EndpointAddr = ":" + v
		}
	}
	if v, ok := os.LookupEnv("ADDRESS"); ok {
		config.EndpointAddr = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("REDIS_ADDR"); ok {
		config.RedisAddr = v
	}
	if v, ok := os.LookupEnv("SESSION_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.SessionTTL = d
		}
	}
	if v, ok := os.LookupEnv("BLOB_BACKEND"); ok {
		config.BlobBackend = v
	}
	if v, ok := os.LookupEnv("FOLDER_PATH"); ok {
		config.BlobDir = v
	}
}
