package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"KAFKA_BROKER", "KAFKA_TOPIC", "KAFKA_GROUP_ID", "DB_DSN",
		"API_PORT", "API_BASE_PATH", "LOG_DIR", "LOG_LEVEL",
		"QUEUE_SIZE", "MAX_WORKERS",
		"MAINT_LABOR_RATE", "FLEET_RUNNING_HOURS", "PARTS_CATALOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.API.Port)
	assert.Equal(t, "/api/v1", cfg.API.BasePath)
	assert.Equal(t, "logs", cfg.Logging.Dir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 500, cfg.Ingest.QueueSize)
	assert.Equal(t, 10, cfg.Ingest.MaxWorkers)
	assert.Equal(t, 150000.0, cfg.Maintenance.LaborRatePerHour)
	assert.Equal(t, "maintenance-service", cfg.Kafka.GroupID)
	assert.Empty(t, cfg.DB.DSN)
	assert.Empty(t, cfg.Kafka.Broker)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_PORT", ":9090")
	t.Setenv("QUEUE_SIZE", "50")
	t.Setenv("MAX_WORKERS", "4")
	t.Setenv("MAINT_LABOR_RATE", "200000")
	t.Setenv("FLEET_RUNNING_HOURS", "720")
	t.Setenv("KAFKA_BROKER", "localhost:9092")
	t.Setenv("KAFKA_TOPIC", "machine-anomalies")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.API.Port)
	assert.Equal(t, 50, cfg.Ingest.QueueSize)
	assert.Equal(t, 4, cfg.Ingest.MaxWorkers)
	assert.Equal(t, 200000.0, cfg.Maintenance.LaborRatePerHour)
	assert.Equal(t, 720.0, cfg.Maintenance.FleetRunningHours)
	assert.Equal(t, "machine-anomalies", cfg.Kafka.Topic)
}

func TestLoad_BrokerWithoutTopic(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAFKA_BROKER", "localhost:9092")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_TOPIC")
}

func TestLoad_NegativeLaborRate(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAINT_LABOR_RATE", "-1")

	_, err := Load()
	assert.Error(t, err)
}
