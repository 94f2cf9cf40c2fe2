package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"maintenance-service/internal/models"
)

// defaultActor is recorded when a transition arrives without an actor.
const defaultActor = "Admin"

// CreateAlert inserts a new Active alert. This is the upstream seam used by
// the anomaly consumer and the alert-creation endpoint. A zero timestamp is
// replaced with the current time.
func (e *Engine) CreateAlert(ctx context.Context, machineID, severity, message string, ts time.Time) (models.Alert, error) {
	if machineID == "" {
		return models.Alert{}, invalidf("machineId", "must not be empty")
	}
	switch severity {
	case models.SeverityCritical, models.SeverityError, models.SeverityWarning:
	default:
		return models.Alert{}, invalidf("severity", "%q is not one of Critical, Error, Warning", severity)
	}
	if ts.IsZero() {
		ts = e.now()
	}

	a := models.Alert{
		ID:        uuid.New().String(),
		MachineID: machineID,
		Severity:  severity,
		Message:   message,
		Timestamp: ts,
		Status:    models.AlertActive,
	}
	if err := e.alerts.InsertAlert(ctx, a); err != nil {
		return models.Alert{}, fmt.Errorf("insert alert: %w", err)
	}
	e.logger.Infof("Created alert %s for machine %s (%s)", a.ID, machineID, severity)
	return a, nil
}

// Acknowledge moves an Active alert to Acknowledged and records who and when.
// Any other starting status is an illegal transition.
func (e *Engine) Acknowledge(ctx context.Context, alertID, actor string) (models.Alert, error) {
	if actor == "" {
		actor = defaultActor
	}
	updated, err := e.alerts.UpdateAlert(ctx, alertID, func(a *models.Alert) error {
		if a.Status != models.AlertActive {
			return &StateError{Op: "acknowledge", Current: a.Status}
		}
		now := e.now()
		a.Status = models.AlertAcknowledged
		a.AcknowledgedBy = actor
		a.AcknowledgedAt = &now
		// Defensive reset: an unresolved alert carries no resolution data.
		a.ResolvedInfo = nil
		a.FaultCode = ""
		return nil
	})
	if err != nil {
		return models.Alert{}, err
	}
	e.logger.Infof("Alert %s acknowledged by %s", alertID, actor)
	return updated, nil
}

// Resolve closes an alert with a root cause, an action and a fault code. It
// is legal from Active (the acknowledge fields are mirrored onto the record)
// and from Acknowledged. Resolving an already-Resolved alert is an edit: the
// notes and fault code are overwritten, ResolvedAt is not touched, and
// knowledge-base occurrence counts are unaffected.
func (e *Engine) Resolve(ctx context.Context, alertID, actor, cause, action, faultCode string) (models.Alert, error) {
	faultCode = NormalizeCode(faultCode)
	if faultCode == "" {
		return models.Alert{}, invalidf("faultCode", "must not be empty")
	}
	if actor == "" {
		actor = defaultActor
	}

	// Locate the alert before touching the catalog so an unknown id does not
	// leave behind an auto-created fault code.
	if _, err := e.alerts.GetAlert(ctx, alertID); err != nil {
		return models.Alert{}, err
	}
	if _, err := e.ResolveOrCreateFault(ctx, faultCode); err != nil {
		return models.Alert{}, err
	}

	updated, err := e.alerts.UpdateAlert(ctx, alertID, func(a *models.Alert) error {
		switch a.Status {
		case models.AlertActive, models.AlertAcknowledged:
			now := e.now()
			if a.AcknowledgedAt == nil {
				a.AcknowledgedBy = actor
				a.AcknowledgedAt = &now
			}
			a.ResolvedAt = &now
		case models.AlertResolved:
			// Edit of an existing resolution.
		default:
			return &StateError{Op: "resolve", Current: a.Status}
		}
		a.Status = models.AlertResolved
		a.ResolvedInfo = &models.ResolvedInfo{Cause: cause, Action: action, FaultCode: faultCode}
		a.FaultCode = faultCode
		return nil
	})
	if err != nil {
		return models.Alert{}, err
	}
	e.logger.Infof("Alert %s resolved by %s with fault code %s", alertID, actor, faultCode)
	return updated, nil
}

// FilterAlerts returns the alerts matching every given filter, newest first.
// The date range is a closed interval, both ends inclusive, compared at
// second granularity.
func (e *Engine) FilterAlerts(ctx context.Context, f models.AlertFilters) ([]models.Alert, error) {
	alerts, err := e.alerts.ListAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}

	out := make([]models.Alert, 0, len(alerts))
	for _, a := range alerts {
		if f.Status != "" && f.Status != "All" && a.Status != f.Status {
			continue
		}
		if f.Severity != "" && a.Severity != f.Severity {
			continue
		}
		if f.MachineID != "" && a.MachineID != f.MachineID {
			continue
		}
		ts := a.Timestamp.Truncate(time.Second)
		if f.From != nil && ts.Before(f.From.Truncate(time.Second)) {
			continue
		}
		if f.To != nil && ts.After(f.To.Truncate(time.Second)) {
			continue
		}
		out = append(out, a)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// KPISummary recomputes the headline alert counters.
func (e *Engine) KPISummary(ctx context.Context) (models.KPISummary, error) {
	alerts, err := e.alerts.ListAlerts(ctx)
	if err != nil {
		return models.KPISummary{}, fmt.Errorf("list alerts: %w", err)
	}

	var s models.KPISummary
	s.TotalAlerts = len(alerts)
	for _, a := range alerts {
		switch a.Status {
		case models.AlertActive:
			s.ActiveCount++
		case models.AlertAcknowledged:
			s.AcknowledgedCount++
		}
		if a.Severity == models.SeverityCritical {
			s.CriticalCount++
		}
	}
	return s, nil
}

// AdvancedKPIs recomputes MTTA and the top-5 fault and machine rankings.
func (e *Engine) AdvancedKPIs(ctx context.Context) (models.AdvancedKPIs, error) {
	alerts, err := e.alerts.ListAlerts(ctx)
	if err != nil {
		return models.AdvancedKPIs{}, fmt.Errorf("list alerts: %w", err)
	}

	var ackCount int
	var ackTotal time.Duration
	faultCounts := make(map[string]int)
	machineCounts := make(map[string]int)
	for _, a := range alerts {
		if a.AcknowledgedAt != nil {
			ackTotal += a.AcknowledgedAt.Sub(a.Timestamp)
			ackCount++
		}
		if a.FaultCode != "" {
			faultCounts[a.FaultCode]++
		}
		machineCounts[a.MachineID]++
	}

	var kpis models.AdvancedKPIs
	if ackCount > 0 {
		kpis.MTTA = (ackTotal / time.Duration(ackCount)).Hours()
	}
	for code, n := range faultCounts {
		kpis.TopFaults = append(kpis.TopFaults, models.FaultCount{FaultCode: code, Count: n})
	}
	sort.Slice(kpis.TopFaults, func(i, j int) bool {
		if kpis.TopFaults[i].Count != kpis.TopFaults[j].Count {
			return kpis.TopFaults[i].Count > kpis.TopFaults[j].Count
		}
		return kpis.TopFaults[i].FaultCode < kpis.TopFaults[j].FaultCode
	})
	if len(kpis.TopFaults) > 5 {
		kpis.TopFaults = kpis.TopFaults[:5]
	}
	for id, n := range machineCounts {
		kpis.TopMachines = append(kpis.TopMachines, models.MachineCount{MachineID: id, Count: n})
	}
	sort.Slice(kpis.TopMachines, func(i, j int) bool {
		if kpis.TopMachines[i].Count != kpis.TopMachines[j].Count {
			return kpis.TopMachines[i].Count > kpis.TopMachines[j].Count
		}
		return kpis.TopMachines[i].MachineID < kpis.TopMachines[j].MachineID
	})
	if len(kpis.TopMachines) > 5 {
		kpis.TopMachines = kpis.TopMachines[:5]
	}
	return kpis, nil
}
