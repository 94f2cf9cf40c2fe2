package engine

import (
	"time"

	"maintenance-service/internal/config"
	"maintenance-service/internal/logging"
	"maintenance-service/internal/store"
)

func newTestEngine() (*Engine, *store.Memory) {
	mem := store.NewMemory()
	var cfg config.Config
	cfg.Maintenance.LaborRatePerHour = 20
	cfg.Maintenance.FleetRunningHours = 100
	return New(mem, mem, mem, mem, logging.NewNop(), cfg), mem
}

// fixClock pins the engine clock to a sequence of instants; the last one
// repeats once the sequence is exhausted.
func fixClock(e *Engine, instants ...time.Time) {
	i := 0
	e.now = func() time.Time {
		t := instants[i]
		if i < len(instants)-1 {
			i++
		}
		return t
	}
}
