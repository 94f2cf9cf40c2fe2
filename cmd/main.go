package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"maintenance-service/internal/api"
	"maintenance-service/internal/config"
	"maintenance-service/internal/db"
	"maintenance-service/internal/engine"
	"maintenance-service/internal/ingest"
	"maintenance-service/internal/kafka"
	"maintenance-service/internal/logging"
	"maintenance-service/internal/store"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	// Pick the store backend: Postgres when a DSN is configured, otherwise
	// the in-memory store.
	var faults store.FaultStore
	var alerts store.AlertStore
	var orders store.WorkOrderStore
	var parts store.PartStore
	if cfg.DB.DSN != "" {
		dbConn, err := db.New(cfg.DB.DSN)
		if err != nil {
			log.Fatalf("Database connection failed: %v", err)
		}
		defer dbConn.Close()
		if err := dbConn.Migrate(context.Background()); err != nil {
			log.Fatalf("Database migration failed: %v", err)
		}
		faults, alerts, orders, parts = dbConn, dbConn, dbConn, dbConn
		logger.Infof("Using Postgres store")
	} else {
		mem := store.NewMemory()
		faults, alerts, orders, parts = mem, mem, mem, mem
		logger.Warnf("DB_DSN not set, using in-memory store (state is lost on restart)")
	}

	eng := engine.New(faults, alerts, orders, parts, logger, cfg)
	if cfg.Maintenance.PartsCatalogFile != "" {
		if err := eng.SeedPartsFromFile(context.Background(), cfg.Maintenance.PartsCatalogFile); err != nil {
			log.Fatalf("Failed to seed parts catalog: %v", err)
		}
	}

	// Anomaly ingestion
	svc := ingest.New(eng, logger, cfg.Ingest.QueueSize, cfg.Ingest.MaxWorkers)
	var wg sync.WaitGroup
	svc.Start(&wg)

	ctx, cancel := context.WithCancel(context.Background())
	var consumer *kafka.Consumer
	if cfg.Kafka.Broker != "" {
		consumer = kafka.NewConsumer([]string{cfg.Kafka.Broker}, cfg.Kafka.Topic, cfg.Kafka.GroupID, svc, logger)
		go consumer.Start(ctx)
		logger.Infof("Kafka consumer initialized with topic: %s", cfg.Kafka.Topic)
	}

	// Start API server
	handler := api.NewHandler(eng, logger)
	router := api.NewRouter(logger, cfg, handler)
	go func() {
		logger.Infof("Starting API server on %s", cfg.API.Port)
		if err := router.Run(cfg.API.Port); err != nil {
			logger.Errorf("API server failed: %v", err)
		}
	}()

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.Infof("Shutting down...")
	cancel()
	if consumer != nil {
		consumer.Close()
	}
	svc.Stop()
	wg.Wait()
	logger.Infof("Service stopped")
}
