package store

import (
	"context"
	"errors"

	"maintenance-service/internal/models"
)

// ErrNotFound is returned when no record exists for the given key.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert collides with an existing key.
var ErrDuplicate = errors.New("duplicate key")

// FaultStore persists the fault-code vocabulary. Codes are stored normalized
// (upper-cased, trimmed) by the caller.
type FaultStore interface {
	InsertFault(ctx context.Context, f models.FaultCode) error
	GetFault(ctx context.Context, code string) (models.FaultCode, error)
	ReplaceFault(ctx context.Context, f models.FaultCode) error
	DeleteFault(ctx context.Context, code string) error
	ListFaults(ctx context.Context) ([]models.FaultCode, error)
}

// AlertStore persists alerts. UpdateAlert applies mutate to the current
// record atomically: under the store mutex for the memory store, under a row
// lock for Postgres. If mutate returns an error the record is left unchanged
// and the error is returned as-is.
type AlertStore interface {
	InsertAlert(ctx context.Context, a models.Alert) error
	GetAlert(ctx context.Context, id string) (models.Alert, error)
	UpdateAlert(ctx context.Context, id string, mutate func(*models.Alert) error) (models.Alert, error)
	ListAlerts(ctx context.Context) ([]models.Alert, error)
}

// WorkOrderStore persists work orders, with the same UpdateWorkOrder
// atomicity contract as AlertStore.
type WorkOrderStore interface {
	InsertWorkOrder(ctx context.Context, wo models.WorkOrder) error
	InsertWorkOrders(ctx context.Context, orders []models.WorkOrder) error
	GetWorkOrder(ctx context.Context, id string) (models.WorkOrder, error)
	UpdateWorkOrder(ctx context.Context, id string, mutate func(*models.WorkOrder) error) (models.WorkOrder, error)
	ListWorkOrders(ctx context.Context) ([]models.WorkOrder, error)
}

// PartStore is the partId -> unitPrice lookup used by the cost rollup.
type PartStore interface {
	UpsertPart(ctx context.Context, p models.SparePart) error
	GetPart(ctx context.Context, partID string) (models.SparePart, error)
	ListParts(ctx context.Context) ([]models.SparePart, error)
}
