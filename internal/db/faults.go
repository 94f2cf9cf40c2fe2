package db

import (
	"context"
	"fmt"

	"maintenance-service/internal/models"
	"maintenance-service/internal/store"
)

// InsertFault inserts a new fault-code record.
func (d *DB) InsertFault(ctx context.Context, f models.FaultCode) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
	INSERT INTO fault_codes (code, description, category, priority, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := d.Pool.Exec(ctx, query, f.Code, f.Description, f.Category, f.Priority, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		if mapped := mapErr(err); mapped == store.ErrDuplicate {
			return mapped
		}
		return fmt.Errorf("failed to insert fault code: %w", err)
	}
	return nil
}

// GetFault retrieves one fault code by its (normalized) code.
func (d *DB) GetFault(ctx context.Context, code string) (models.FaultCode, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
	SELECT code, description, category, priority, created_at, updated_at
	FROM fault_codes
	WHERE code = $1`

	var f models.FaultCode
	err := d.Pool.QueryRow(ctx, query, code).Scan(
		&f.Code, &f.Description, &f.Category, &f.Priority, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if mapped := mapErr(err); mapped == store.ErrNotFound {
			return models.FaultCode{}, mapped
		}
		return models.FaultCode{}, fmt.Errorf("failed to get fault code: %w", err)
	}
	return f, nil
}

// ReplaceFault overwrites all fields of an existing fault code.
func (d *DB) ReplaceFault(ctx context.Context, f models.FaultCode) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
	UPDATE fault_codes
	SET description = $2, category = $3, priority = $4, updated_at = $5
	WHERE code = $1`

	tag, err := d.Pool.Exec(ctx, query, f.Code, f.Description, f.Category, f.Priority, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update fault code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteFault removes a fault code. Reference checks happen in the engine.
func (d *DB) DeleteFault(ctx context.Context, code string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := d.Pool.Exec(ctx, `DELETE FROM fault_codes WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("failed to delete fault code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListFaults returns every fault code.
func (d *DB) ListFaults(ctx context.Context) ([]models.FaultCode, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
	SELECT code, description, category, priority, created_at, updated_at
	FROM fault_codes`

	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list fault codes: %w", err)
	}
	defer rows.Close()

	var faults []models.FaultCode
	for rows.Next() {
		var f models.FaultCode
		if err := rows.Scan(&f.Code, &f.Description, &f.Category, &f.Priority, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fault code: %w", err)
		}
		faults = append(faults, f)
	}
	return faults, rows.Err()
}
