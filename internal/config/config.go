package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Kafka struct {
		Broker  string
		Topic   string
		GroupID string
	}
	DB struct {
		DSN string
	}
	API struct {
		Port     string
		BasePath string
	}
	Logging struct {
		Dir   string
		Level string
	}
	Ingest struct {
		QueueSize  int
		MaxWorkers int
	}
	Maintenance struct {
		LaborRatePerHour  float64
		FleetRunningHours float64
		PartsCatalogFile  string
	}
}

// Load reads environment variables, applies defaults, and returns a Config.
// DB_DSN is optional: without it the service runs on the in-memory store.
// KAFKA_BROKER is optional: without it no anomaly consumer is started.
func Load() (Config, error) {
	// Load .env if present
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	cfg.Kafka.Broker = os.Getenv("KAFKA_BROKER")
	cfg.Kafka.Topic = os.Getenv("KAFKA_TOPIC")
	cfg.Kafka.GroupID = os.Getenv("KAFKA_GROUP_ID")

	cfg.DB.DSN = os.Getenv("DB_DSN")

	cfg.API.Port = os.Getenv("API_PORT")
	cfg.API.BasePath = os.Getenv("API_BASE_PATH")

	cfg.Logging.Dir = os.Getenv("LOG_DIR")
	cfg.Logging.Level = os.Getenv("LOG_LEVEL")

	if qs, err := strconv.Atoi(os.Getenv("QUEUE_SIZE")); err == nil {
		cfg.Ingest.QueueSize = qs
	}
	if mw, err := strconv.Atoi(os.Getenv("MAX_WORKERS")); err == nil {
		cfg.Ingest.MaxWorkers = mw
	}

	if lr, err := strconv.ParseFloat(os.Getenv("MAINT_LABOR_RATE"), 64); err == nil {
		cfg.Maintenance.LaborRatePerHour = lr
	}
	if rh, err := strconv.ParseFloat(os.Getenv("FLEET_RUNNING_HOURS"), 64); err == nil {
		cfg.Maintenance.FleetRunningHours = rh
	}
	cfg.Maintenance.PartsCatalogFile = os.Getenv("PARTS_CATALOG_FILE")

	// Validate values that must be positive when set
	if cfg.Ingest.QueueSize < 0 || cfg.Ingest.MaxWorkers < 0 {
		return Config{}, fmt.Errorf("QUEUE_SIZE and MAX_WORKERS must be non-negative")
	}
	if cfg.Maintenance.LaborRatePerHour < 0 {
		return Config{}, fmt.Errorf("MAINT_LABOR_RATE must be non-negative")
	}
	if cfg.Maintenance.FleetRunningHours < 0 {
		return Config{}, fmt.Errorf("FLEET_RUNNING_HOURS must be non-negative")
	}
	if cfg.Kafka.Broker != "" && cfg.Kafka.Topic == "" {
		return Config{}, fmt.Errorf("KAFKA_TOPIC is required when KAFKA_BROKER is set")
	}

	// Apply defaults
	if cfg.API.Port == "" {
		cfg.API.Port = ":8080"
	}
	if cfg.API.BasePath == "" {
		cfg.API.BasePath = "/api/v1"
	}
	if cfg.Logging.Dir == "" {
		cfg.Logging.Dir = "logs"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Ingest.QueueSize == 0 {
		cfg.Ingest.QueueSize = 500
	}
	if cfg.Ingest.MaxWorkers == 0 {
		cfg.Ingest.MaxWorkers = 10
	}
	if cfg.Maintenance.LaborRatePerHour == 0 {
		cfg.Maintenance.LaborRatePerHour = 150000 // VND per labor hour
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = "maintenance-service"
	}

	return cfg, nil
}
