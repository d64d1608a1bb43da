package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_DSN", "postgres://env")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("FOLDER_PATH", "/data/blobs")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, "postgres://env", c.DatabaseDSN)
	assert.Equal(t, "redis:6379", c.RedisAddr)
	assert.Equal(t, time.Hour, c.SessionTTL)
	assert.Equal(t, "/data/blobs", c.BlobDir)
}

func TestParseEnv_AddressWinsOverPort(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("ADDRESS", "0.0.0.0:9090")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "0.0.0.0:9090", c.EndpointAddr)
}

func TestParseEnv_IgnoresGarbage(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("SESSION_TTL", "soon")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, ":5000", c.EndpointAddr)
	assert.Equal(t, 24*time.Hour, c.SessionTTL)
}
