package ingest

import (
	"context"
	"sync"
	"time"

	"maintenance-service/internal/engine"
	"maintenance-service/internal/logging"
)

// Anomaly is one raw machine anomaly from the upstream source. It becomes an
// Active alert.
type Anomaly struct {
	MachineID string    `json:"machineId"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Service buffers incoming anomalies and turns them into alerts through a
// worker pool. The queue is bounded; when full, anomalies are dropped with an
// error log rather than blocking the consumer.
type Service struct {
	engine *engine.Engine
	logger *logging.Logger
	tasks  chan Anomaly
	ctx    context.Context
	cancel context.CancelFunc
	wg     *sync.WaitGroup

	workers int
}

// New constructs an ingest Service.
func New(eng *engine.Engine, logger *logging.Logger, queueSize, workers int) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		engine:  eng,
		logger:  logger,
		tasks:   make(chan Anomaly, queueSize),
		ctx:     ctx,
		cancel:  cancel,
		workers: workers,
	}
}

// Start launches the worker pool.
func (s *Service) Start(wg *sync.WaitGroup) {
	s.wg = wg
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
}

// Queue enqueues an anomaly for processing.
func (s *Service) Queue(a Anomaly) {
	select {
	case s.tasks <- a:
		s.logger.Debugf("Queued anomaly for machine %s", a.MachineID)
	default:
		s.logger.Errorf("Queue full, dropping anomaly for machine %s", a.MachineID)
	}
}

// Stop cancels the workers. Queued anomalies that have not been picked up are
// discarded.
func (s *Service) Stop() {
	s.cancel()
}

// worker creates alerts until the context is cancelled.
func (s *Service) worker(id int) {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			s.logger.Infof("Ingest worker %d stopped", id)
			return
		case a := <-s.tasks:
			if _, err := s.engine.CreateAlert(s.ctx, a.MachineID, a.Severity, a.Message, a.Timestamp); err != nil {
				s.logger.Errorf("Failed to create alert for machine %s: %v", a.MachineID, err)
			}
		}
	}
}
