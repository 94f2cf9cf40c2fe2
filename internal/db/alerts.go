package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"maintenance-service/internal/models"
	"maintenance-service/internal/store"
)

const alertColumns = `id, machine_id, severity, message, ts, status, acknowledged_by, acknowledged_at, resolved_at, resolved_info, fault_code`

func scanAlert(row pgx.Row) (models.Alert, error) {
	var a models.Alert
	err := row.Scan(
		&a.ID, &a.MachineID, &a.Severity, &a.Message, &a.Timestamp, &a.Status,
		&a.AcknowledgedBy, &a.AcknowledgedAt, &a.ResolvedAt, &a.ResolvedInfo, &a.FaultCode,
	)
	return a, err
}

// InsertAlert inserts a new alert record.
func (d *DB) InsertAlert(ctx context.Context, a models.Alert) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
	INSERT INTO alerts (` + alertColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := d.Pool.Exec(ctx, query,
		a.ID, a.MachineID, a.Severity, a.Message, a.Timestamp, a.Status,
		a.AcknowledgedBy, a.AcknowledgedAt, a.ResolvedAt, a.ResolvedInfo, a.FaultCode,
	)
	if err != nil {
		if mapped := mapErr(err); mapped == store.ErrDuplicate {
			return mapped
		}
		return fmt.Errorf("failed to insert alert: %w", err)
	}
	return nil
}

// GetAlert retrieves one alert by id.
func (d *DB) GetAlert(ctx context.Context, id string) (models.Alert, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	a, err := scanAlert(d.Pool.QueryRow(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id))
	if err != nil {
		if mapped := mapErr(err); mapped == store.ErrNotFound {
			return models.Alert{}, mapped
		}
		return models.Alert{}, fmt.Errorf("failed to get alert: %w", err)
	}
	return a, nil
}

// UpdateAlert applies mutate to the alert row under a row lock so concurrent
// transitions on the same alert serialize. A mutate error rolls back and is
// returned unchanged.
func (d *DB) UpdateAlert(ctx context.Context, id string, mutate func(*models.Alert) error) (models.Alert, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return models.Alert{}, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	a, err := scanAlert(tx.QueryRow(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if mapped := mapErr(err); mapped == store.ErrNotFound {
			return models.Alert{}, mapped
		}
		return models.Alert{}, fmt.Errorf("failed to lock alert: %w", err)
	}

	if err := mutate(&a); err != nil {
		return models.Alert{}, err
	}

	query := `
	UPDATE alerts
	SET status = $2, acknowledged_by = $3, acknowledged_at = $4,
	    resolved_at = $5, resolved_info = $6, fault_code = $7
	WHERE id = $1`

	if _, err := tx.Exec(ctx, query,
		a.ID, a.Status, a.AcknowledgedBy, a.AcknowledgedAt, a.ResolvedAt, a.ResolvedInfo, a.FaultCode,
	); err != nil {
		return models.Alert{}, fmt.Errorf("failed to update alert: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return models.Alert{}, fmt.Errorf("failed to commit alert update: %w", err)
	}
	return a, nil
}

// ListAlerts returns every alert. Filtering happens in the engine so the
// memory and Postgres stores share one filtering contract.
func (d *DB) ListAlerts(ctx context.Context) ([]models.Alert, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := d.Pool.Query(ctx, `SELECT `+alertColumns+` FROM alerts ORDER BY ts DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
