package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"maintenance-service/internal/models"
)

// CreateWorkOrder inserts a maintenance job. Status defaults to Pending,
// priority to Trung bình, labor hours to 0.
func (e *Engine) CreateWorkOrder(ctx context.Context, wo models.WorkOrder) (models.WorkOrder, error) {
	if wo.MachineCode == "" {
		return models.WorkOrder{}, invalidf("machineCode", "must not be empty")
	}
	if wo.Title == "" {
		return models.WorkOrder{}, invalidf("title", "must not be empty")
	}
	if err := validOrderType(wo.Type); err != nil {
		return models.WorkOrder{}, err
	}
	if wo.DueDate.IsZero() {
		return models.WorkOrder{}, invalidf("dueDate", "must be set")
	}
	if wo.Priority == "" {
		wo.Priority = models.PriorityMedium
	} else if err := validOrderPriority(wo.Priority); err != nil {
		return models.WorkOrder{}, err
	}
	switch wo.Status {
	case "":
		wo.Status = models.OrderPending
	case models.OrderPending, models.OrderInProgress:
	default:
		return models.WorkOrder{}, invalidf("status", "a new work order must start as Pending or InProgress, not %q", wo.Status)
	}

	wo.ID = uuid.New().String()
	wo.CreatedAt = e.now()
	wo.LaborHours = 0
	wo.CompletedAt = nil
	wo.CompletionNotes = ""
	wo.PartsUsed = nil
	wo.IsCompliant = false

	if err := e.orders.InsertWorkOrder(ctx, wo); err != nil {
		return models.WorkOrder{}, fmt.Errorf("insert work order: %w", err)
	}
	e.logger.Infof("Created work order %s (%s) for machine %s", wo.ID, wo.Type, wo.MachineCode)
	return wo, nil
}

// UpdateWorkOrder merges the patch into an existing order. Completion-only
// fields are never touched here; a Completed or Cancelled order no longer
// accepts updates.
func (e *Engine) UpdateWorkOrder(ctx context.Context, id string, patch models.WorkOrderPatch) (models.WorkOrder, error) {
	updated, err := e.orders.UpdateWorkOrder(ctx, id, func(wo *models.WorkOrder) error {
		if wo.Status == models.OrderCompleted || wo.Status == models.OrderCancelled {
			return &StateError{Op: "update", Current: wo.Status}
		}
		if patch.MachineCode != nil {
			if *patch.MachineCode == "" {
				return invalidf("machineCode", "must not be empty")
			}
			wo.MachineCode = *patch.MachineCode
		}
		if patch.Type != nil {
			if err := validOrderType(*patch.Type); err != nil {
				return err
			}
			wo.Type = *patch.Type
		}
		if patch.Title != nil {
			if *patch.Title == "" {
				return invalidf("title", "must not be empty")
			}
			wo.Title = *patch.Title
		}
		if patch.Description != nil {
			wo.Description = *patch.Description
		}
		if patch.Priority != nil {
			if err := validOrderPriority(*patch.Priority); err != nil {
				return err
			}
			wo.Priority = *patch.Priority
		}
		if patch.AssignedTo != nil {
			wo.AssignedTo = *patch.AssignedTo
		}
		if patch.Status != nil {
			// Completion happens only through the complete transition.
			switch *patch.Status {
			case models.OrderPending, models.OrderInProgress, models.OrderCancelled:
				wo.Status = *patch.Status
			default:
				return invalidf("status", "%q cannot be set by update", *patch.Status)
			}
		}
		if patch.DueDate != nil {
			wo.DueDate = *patch.DueDate
		}
		return nil
	})
	if err != nil {
		return models.WorkOrder{}, err
	}
	e.logger.Infof("Updated work order %s", id)
	return updated, nil
}

// CompleteWorkOrder performs the terminal transition: it atomically sets the
// status, completion time, compliance flag and the supplied completion
// fields. Compliance compares completedAt against dueDate at day
// granularity. Retrying an identical completion is accepted as a no-op; any
// other re-completion is an illegal transition.
func (e *Engine) CompleteWorkOrder(ctx context.Context, id string, c models.WorkOrderCompletion) (models.WorkOrder, error) {
	if c.LaborHours <= 0 {
		return models.WorkOrder{}, invalidf("laborHours", "must be positive")
	}
	for _, p := range c.PartsUsed {
		if p.PartID == "" {
			return models.WorkOrder{}, invalidf("partsUsed", "partId must not be empty")
		}
		if p.Qty < 1 {
			return models.WorkOrder{}, invalidf("partsUsed", "qty for %s must be at least 1", p.PartID)
		}
	}

	updated, err := e.orders.UpdateWorkOrder(ctx, id, func(wo *models.WorkOrder) error {
		if wo.Status == models.OrderCompleted {
			if wo.CompletionNotes == c.CompletionNotes && wo.LaborHours == c.LaborHours && partsEqual(wo.PartsUsed, c.PartsUsed) {
				return nil // idempotent retry
			}
			return &StateError{Op: "complete", Current: wo.Status}
		}
		if wo.Status == models.OrderCancelled {
			return &StateError{Op: "complete", Current: wo.Status}
		}
		now := e.now()
		wo.Status = models.OrderCompleted
		wo.CompletedAt = &now
		wo.CompletionNotes = c.CompletionNotes
		wo.LaborHours = c.LaborHours
		wo.PartsUsed = c.PartsUsed
		wo.IsCompliant = !dayOf(now).After(dayOf(wo.DueDate))
		return nil
	})
	if err != nil {
		return models.WorkOrder{}, err
	}
	e.logger.Infof("Completed work order %s (compliant=%t)", id, updated.IsCompliant)
	return updated, nil
}

// ImportWorkOrders accepts a batch of historical completed orders, e.g. from
// a CSV/ERP export. Each record must be well-formed and completed; ids are
// assigned when missing and compliance is recomputed from the record's own
// dates.
func (e *Engine) ImportWorkOrders(ctx context.Context, orders []models.WorkOrder) (int, error) {
	prepared := make([]models.WorkOrder, 0, len(orders))
	for i, wo := range orders {
		if wo.MachineCode == "" || wo.Title == "" {
			return 0, invalidf("orders", "record %d: machineCode and title are required", i)
		}
		if err := validOrderType(wo.Type); err != nil {
			return 0, err
		}
		if wo.Status != models.OrderCompleted {
			return 0, invalidf("orders", "record %d: status must be Completed", i)
		}
		if wo.CompletedAt == nil || wo.DueDate.IsZero() {
			return 0, invalidf("orders", "record %d: completedAt and dueDate are required", i)
		}
		if wo.LaborHours < 0 {
			return 0, invalidf("orders", "record %d: laborHours must be non-negative", i)
		}
		if wo.ID == "" {
			wo.ID = uuid.New().String()
		}
		if wo.Priority == "" {
			wo.Priority = models.PriorityMedium
		}
		if wo.CreatedAt.IsZero() {
			wo.CreatedAt = wo.DueDate
		}
		wo.IsCompliant = !dayOf(*wo.CompletedAt).After(dayOf(wo.DueDate))
		prepared = append(prepared, wo)
	}

	if err := e.orders.InsertWorkOrders(ctx, prepared); err != nil {
		return 0, fmt.Errorf("insert work orders: %w", err)
	}
	e.logger.Infof("Imported %d completed work orders", len(prepared))
	return len(prepared), nil
}

// GetWorkOrder returns one work order by id.
func (e *Engine) GetWorkOrder(ctx context.Context, id string) (models.WorkOrder, error) {
	return e.orders.GetWorkOrder(ctx, id)
}

// ListWorkOrders returns all work orders, newest first.
func (e *Engine) ListWorkOrders(ctx context.Context) ([]models.WorkOrder, error) {
	orders, err := e.orders.ListWorkOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID < orders[j].ID
	})
	return orders, nil
}

// PMCompliance rolls up preventive-maintenance execution. The rate is 0, not
// NaN, when no PM order has completed.
func (e *Engine) PMCompliance(ctx context.Context) (models.PMComplianceKPI, error) {
	orders, err := e.orders.ListWorkOrders(ctx)
	if err != nil {
		return models.PMComplianceKPI{}, fmt.Errorf("list work orders: %w", err)
	}

	var kpi models.PMComplianceKPI
	for _, wo := range orders {
		if wo.Type != models.TypePreventive || wo.Status != models.OrderCompleted {
			continue
		}
		kpi.TotalPMCompleted++
		if wo.IsCompliant {
			kpi.CompliantCount++
		}
	}
	if kpi.TotalPMCompleted > 0 {
		kpi.ComplianceRate = float64(kpi.CompliantCount) / float64(kpi.TotalPMCompleted) * 100
	}
	return kpi, nil
}

// CostKPI sums parts and labor cost across completed orders. An unknown part
// id contributes 0 and is logged. CPMH is 0 when the fleet running-hours
// denominator is 0.
func (e *Engine) CostKPI(ctx context.Context) (models.CostKPI, error) {
	orders, err := e.orders.ListWorkOrders(ctx)
	if err != nil {
		return models.CostKPI{}, fmt.Errorf("list work orders: %w", err)
	}

	var kpi models.CostKPI
	for _, wo := range orders {
		if wo.Status != models.OrderCompleted {
			continue
		}
		for _, p := range wo.PartsUsed {
			part, err := e.parts.GetPart(ctx, p.PartID)
			if err != nil {
				e.logger.Warnf("No unit price for part %s (work order %s), counting 0", p.PartID, wo.ID)
				continue
			}
			kpi.TotalCost += float64(p.Qty) * part.UnitPrice
		}
		kpi.TotalCost += wo.LaborHours * e.laborRate
		kpi.TotalLaborHours += wo.LaborHours
	}
	if e.runningHours > 0 {
		kpi.CPMH = kpi.TotalCost / e.runningHours
	}
	return kpi, nil
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func partsEqual(a, b []models.PartUsage) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func validOrderType(t string) error {
	switch t {
	case models.TypePreventive, models.TypeCorrective, models.TypePredictive:
		return nil
	}
	return invalidf("type", "%q is not one of PM, CM, PdM", t)
}

func validOrderPriority(p string) error {
	switch p {
	case models.PriorityHigh, models.PriorityMedium, models.PriorityLow:
		return nil
	}
	return invalidf("priority", "%q is not one of Cao, Trung bình, Thấp", p)
}
