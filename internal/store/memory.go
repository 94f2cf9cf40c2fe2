package store

import (
	"context"
	"sync"

	"maintenance-service/internal/models"
)

// Memory is a mutex-guarded in-memory store implementing all four store
// interfaces. It backs tests and single-node deployments without a database;
// state lives for the lifetime of the process.
type Memory struct {
	mu     sync.RWMutex
	faults map[string]models.FaultCode
	alerts map[string]models.Alert
	orders map[string]models.WorkOrder
	parts  map[string]models.SparePart
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		faults: make(map[string]models.FaultCode),
		alerts: make(map[string]models.Alert),
		orders: make(map[string]models.WorkOrder),
		parts:  make(map[string]models.SparePart),
	}
}

func cloneAlert(a models.Alert) models.Alert {
	if a.AcknowledgedAt != nil {
		t := *a.AcknowledgedAt
		a.AcknowledgedAt = &t
	}
	if a.ResolvedAt != nil {
		t := *a.ResolvedAt
		a.ResolvedAt = &t
	}
	if a.ResolvedInfo != nil {
		ri := *a.ResolvedInfo
		a.ResolvedInfo = &ri
	}
	return a
}

func cloneOrder(wo models.WorkOrder) models.WorkOrder {
	if wo.CompletedAt != nil {
		t := *wo.CompletedAt
		wo.CompletedAt = &t
	}
	if wo.PartsUsed != nil {
		parts := make([]models.PartUsage, len(wo.PartsUsed))
		copy(parts, wo.PartsUsed)
		wo.PartsUsed = parts
	}
	return wo
}

func (m *Memory) InsertFault(_ context.Context, f models.FaultCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.faults[f.Code]; ok {
		return ErrDuplicate
	}
	m.faults[f.Code] = f
	return nil
}

func (m *Memory) GetFault(_ context.Context, code string) (models.FaultCode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.faults[code]
	if !ok {
		return models.FaultCode{}, ErrNotFound
	}
	return f, nil
}

func (m *Memory) ReplaceFault(_ context.Context, f models.FaultCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.faults[f.Code]; !ok {
		return ErrNotFound
	}
	m.faults[f.Code] = f
	return nil
}

func (m *Memory) DeleteFault(_ context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.faults[code]; !ok {
		return ErrNotFound
	}
	delete(m.faults, code)
	return nil
}

func (m *Memory) ListFaults(_ context.Context) ([]models.FaultCode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.FaultCode, 0, len(m.faults))
	for _, f := range m.faults {
		out = append(out, f)
	}
	return out, nil
}

func (m *Memory) InsertAlert(_ context.Context, a models.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.alerts[a.ID]; ok {
		return ErrDuplicate
	}
	m.alerts[a.ID] = cloneAlert(a)
	return nil
}

func (m *Memory) GetAlert(_ context.Context, id string) (models.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.alerts[id]
	if !ok {
		return models.Alert{}, ErrNotFound
	}
	return cloneAlert(a), nil
}

func (m *Memory) UpdateAlert(_ context.Context, id string, mutate func(*models.Alert) error) (models.Alert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.alerts[id]
	if !ok {
		return models.Alert{}, ErrNotFound
	}
	working := cloneAlert(a)
	if err := mutate(&working); err != nil {
		return models.Alert{}, err
	}
	m.alerts[id] = working
	return cloneAlert(working), nil
}

func (m *Memory) ListAlerts(_ context.Context) ([]models.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Alert, 0, len(m.alerts))
	for _, a := range m.alerts {
		out = append(out, cloneAlert(a))
	}
	return out, nil
}

func (m *Memory) InsertWorkOrder(_ context.Context, wo models.WorkOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[wo.ID]; ok {
		return ErrDuplicate
	}
	m.orders[wo.ID] = cloneOrder(wo)
	return nil
}

func (m *Memory) InsertWorkOrders(_ context.Context, orders []models.WorkOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, wo := range orders {
		if _, ok := m.orders[wo.ID]; ok {
			return ErrDuplicate
		}
	}
	for _, wo := range orders {
		m.orders[wo.ID] = cloneOrder(wo)
	}
	return nil
}

func (m *Memory) GetWorkOrder(_ context.Context, id string) (models.WorkOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	wo, ok := m.orders[id]
	if !ok {
		return models.WorkOrder{}, ErrNotFound
	}
	return cloneOrder(wo), nil
}

func (m *Memory) UpdateWorkOrder(_ context.Context, id string, mutate func(*models.WorkOrder) error) (models.WorkOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wo, ok := m.orders[id]
	if !ok {
		return models.WorkOrder{}, ErrNotFound
	}
	working := cloneOrder(wo)
	if err := mutate(&working); err != nil {
		return models.WorkOrder{}, err
	}
	m.orders[id] = working
	return cloneOrder(working), nil
}

func (m *Memory) ListWorkOrders(_ context.Context) ([]models.WorkOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.WorkOrder, 0, len(m.orders))
	for _, wo := range m.orders {
		out = append(out, cloneOrder(wo))
	}
	return out, nil
}

func (m *Memory) UpsertPart(_ context.Context, p models.SparePart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parts[p.PartID] = p
	return nil
}

func (m *Memory) GetPart(_ context.Context, partID string) (models.SparePart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.parts[partID]
	if !ok {
		return models.SparePart{}, ErrNotFound
	}
	return p, nil
}

func (m *Memory) ListParts(_ context.Context) ([]models.SparePart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.SparePart, 0, len(m.parts))
	for _, p := range m.parts {
		out = append(out, p)
	}
	return out, nil
}
