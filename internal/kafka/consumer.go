package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"maintenance-service/internal/ingest"
	"maintenance-service/internal/logging"
)

// Consumer reads machine anomalies from a Kafka topic and hands them to the
// ingest service.
type Consumer struct {
	reader *kafka.Reader
	svc    *ingest.Service
	logger *logging.Logger
}

func NewConsumer(brokers []string, topic, groupID string, svc *ingest.Service, logger *logging.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})
	return &Consumer{reader: reader, svc: svc, logger: logger}
}

// ParseAnomaly decodes and validates one anomaly message.
func ParseAnomaly(value []byte) (ingest.Anomaly, error) {
	var msg struct {
		MachineID string    `json:"machineId"`
		Severity  string    `json:"severity"`
		Message   string    `json:"message"`
		Timestamp time.Time `json:"timestamp"`
	}
	if err := json.Unmarshal(value, &msg); err != nil {
		return ingest.Anomaly{}, fmt.Errorf("unmarshal anomaly: %w", err)
	}
	if msg.MachineID == "" || msg.Severity == "" {
		return ingest.Anomaly{}, fmt.Errorf("invalid anomaly: missing machineId or severity")
	}
	return ingest.Anomaly{
		MachineID: msg.MachineID,
		Severity:  msg.Severity,
		Message:   msg.Message,
		Timestamp: msg.Timestamp,
	}, nil
}

// Start consumes until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	c.logger.Infof("Kafka consumer started on topic %s", c.reader.Config().Topic)
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Errorf("Read message failed: %v", err)
			continue
		}

		anomaly, err := ParseAnomaly(msg.Value)
		if err != nil {
			c.logger.Errorf("Dropping message: %v", err)
			continue
		}
		c.svc.Queue(anomaly)
	}
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.logger.Errorf("Close consumer failed: %v", err)
	}
}
