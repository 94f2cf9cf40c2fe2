package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"maintenance-service/internal/models"
	"maintenance-service/internal/store"
)

// NormalizeCode upper-cases and trims a fault code. Every code crossing the
// engine boundary is normalized before use.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// SaveFault inserts a new fault code or replaces an existing one. Creating a
// code that already exists (case-insensitively) is rejected as a duplicate;
// replacing keeps the code and overwrites the remaining fields.
func (e *Engine) SaveFault(ctx context.Context, f models.FaultCode, isNew bool) (models.FaultCode, error) {
	f.Code = NormalizeCode(f.Code)
	if f.Code == "" {
		return models.FaultCode{}, invalidf("code", "must not be empty")
	}
	if err := validPriority(f.Priority); err != nil {
		return models.FaultCode{}, err
	}
	if f.Category == "" {
		f.Category = models.CategoryCustom
	}

	now := e.now()
	if isNew {
		f.CreatedAt = now
		f.UpdatedAt = now
		if err := e.faults.InsertFault(ctx, f); err != nil {
			return models.FaultCode{}, fmt.Errorf("insert fault %s: %w", f.Code, err)
		}
		e.logger.Infof("Created fault code %s", f.Code)
		return f, nil
	}

	existing, err := e.faults.GetFault(ctx, f.Code)
	if err != nil {
		return models.FaultCode{}, fmt.Errorf("get fault %s: %w", f.Code, err)
	}
	f.CreatedAt = existing.CreatedAt
	f.UpdatedAt = now
	if err := e.faults.ReplaceFault(ctx, f); err != nil {
		return models.FaultCode{}, fmt.Errorf("replace fault %s: %w", f.Code, err)
	}
	e.logger.Infof("Updated fault code %s", f.Code)
	return f, nil
}

// DeleteFault removes a fault code. Deletion is refused while any resolved
// alert still references the code, so historical root-cause records never
// point at a vanished vocabulary entry.
func (e *Engine) DeleteFault(ctx context.Context, code string) error {
	code = NormalizeCode(code)
	if code == "" {
		return invalidf("code", "must not be empty")
	}

	alerts, err := e.alerts.ListAlerts(ctx)
	if err != nil {
		return fmt.Errorf("list alerts: %w", err)
	}
	refs := 0
	for _, a := range alerts {
		if a.FaultCode == code {
			refs++
		}
	}
	if refs > 0 {
		return invalidf("code", "%s is referenced by %d resolved alert(s)", code, refs)
	}

	if err := e.faults.DeleteFault(ctx, code); err != nil {
		return fmt.Errorf("delete fault %s: %w", code, err)
	}
	e.logger.Infof("Deleted fault code %s", code)
	return nil
}

// ResolveOrCreateFault returns the catalog entry for code, synthesizing a
// custom Warning entry if none exists. Guarantees every fault code referenced
// by a resolved alert has a catalog entry without blocking the resolution
// flow on catalog maintenance.
func (e *Engine) ResolveOrCreateFault(ctx context.Context, code string) (models.FaultCode, error) {
	code = NormalizeCode(code)
	if code == "" {
		return models.FaultCode{}, invalidf("faultCode", "must not be empty")
	}

	f, err := e.faults.GetFault(ctx, code)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.FaultCode{}, fmt.Errorf("get fault %s: %w", code, err)
	}

	now := e.now()
	f = models.FaultCode{
		Code:        code,
		Description: fmt.Sprintf("Mã lỗi %s (tự động tạo khi xử lý cảnh báo)", code),
		Category:    models.CategoryCustom,
		Priority:    models.PriorityWarning,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := e.faults.InsertFault(ctx, f); err != nil {
		// A concurrent resolve may have created it in between.
		if errors.Is(err, store.ErrDuplicate) {
			return e.faults.GetFault(ctx, code)
		}
		return models.FaultCode{}, fmt.Errorf("insert fault %s: %w", code, err)
	}
	e.logger.Infof("Auto-created fault code %s", code)
	return f, nil
}

// ListFaults returns the catalog sorted by code.
func (e *Engine) ListFaults(ctx context.Context) ([]models.FaultCode, error) {
	faults, err := e.faults.ListFaults(ctx)
	if err != nil {
		return nil, fmt.Errorf("list faults: %w", err)
	}
	sort.Slice(faults, func(i, j int) bool { return faults[i].Code < faults[j].Code })
	return faults, nil
}

func validPriority(p string) error {
	switch p {
	case models.PriorityCritical, models.PriorityError, models.PriorityWarning, models.PriorityInfo:
		return nil
	}
	return invalidf("priority", "%q is not one of Critical, Error, Warning, Info", p)
}
