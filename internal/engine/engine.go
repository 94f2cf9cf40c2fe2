package engine

import (
	"time"

	"maintenance-service/internal/config"
	"maintenance-service/internal/logging"
	"maintenance-service/internal/store"
)

// Engine owns the alert lifecycle, the fault catalog, the knowledge-base
// derivation and the work-order KPI rollups. All writes go through the
// injected stores; aggregates are recomputed on every read.
type Engine struct {
	faults store.FaultStore
	alerts store.AlertStore
	orders store.WorkOrderStore
	parts  store.PartStore
	logger *logging.Logger

	laborRate    float64
	runningHours float64

	now func() time.Time
}

// New constructs an Engine over the given stores.
func New(faults store.FaultStore, alerts store.AlertStore, orders store.WorkOrderStore, parts store.PartStore, logger *logging.Logger, cfg config.Config) *Engine {
	return &Engine{
		faults:       faults,
		alerts:       alerts,
		orders:       orders,
		parts:        parts,
		logger:       logger,
		laborRate:    cfg.Maintenance.LaborRatePerHour,
		runningHours: cfg.Maintenance.FleetRunningHours,
		now:          time.Now,
	}
}
