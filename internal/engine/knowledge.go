package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"maintenance-service/internal/models"
	"maintenance-service/internal/store"
)

// KnowledgeBase reduces resolved alerts into deduplicated root-cause entries
// keyed by fault code. The fold is order-independent: alerts are sorted by
// (resolvedAt, id) before folding, so the earliest resolution seeds the
// entry, lastResolved is a max, and occurrence is a plain count. machineID
// and faultCode filter the derived entries by exact match.
func (e *Engine) KnowledgeBase(ctx context.Context, machineID, faultCode string) ([]models.KnowledgeEntry, error) {
	faultCode = NormalizeCode(faultCode)

	alerts, err := e.alerts.ListAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}

	resolved := make([]models.Alert, 0, len(alerts))
	for _, a := range alerts {
		if a.Status == models.AlertResolved && a.ResolvedInfo != nil {
			resolved = append(resolved, a)
		}
	}
	sort.Slice(resolved, func(i, j int) bool {
		ri, rj := resolved[i], resolved[j]
		switch {
		case ri.ResolvedAt == nil:
			return false
		case rj.ResolvedAt == nil:
			return true
		case !ri.ResolvedAt.Equal(*rj.ResolvedAt):
			return ri.ResolvedAt.Before(*rj.ResolvedAt)
		}
		return ri.ID < rj.ID
	})

	entries := make(map[string]*models.KnowledgeEntry)
	for _, a := range resolved {
		code := a.FaultCode
		entry, ok := entries[code]
		if !ok {
			entry = &models.KnowledgeEntry{
				FaultCode:    code,
				MachineID:    a.MachineID,
				RootCause:    a.ResolvedInfo.Cause,
				ActionTaken:  a.ResolvedInfo.Action,
				LastResolved: a.Timestamp,
			}
			entries[code] = entry
		}
		entry.Occurrence++
		if a.Timestamp.After(entry.LastResolved) {
			entry.LastResolved = a.Timestamp
		}
	}

	out := make([]models.KnowledgeEntry, 0, len(entries))
	for code, entry := range entries {
		f, err := e.faults.GetFault(ctx, code)
		switch {
		case err == nil:
			entry.Description = f.Description
			entry.Category = f.Category
		case errors.Is(err, store.ErrNotFound):
			entry.Description = fmt.Sprintf("Mã lỗi %s (chưa có trong danh mục)", code)
			entry.Category = models.CategoryCustom
		default:
			return nil, fmt.Errorf("get fault %s: %w", code, err)
		}

		if machineID != "" && entry.MachineID != machineID {
			continue
		}
		if faultCode != "" && entry.FaultCode != faultCode {
			continue
		}
		out = append(out, *entry)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Occurrence != out[j].Occurrence {
			return out[i].Occurrence > out[j].Occurrence
		}
		return out[i].FaultCode < out[j].FaultCode
	})
	return out, nil
}
