package db

import (
	"context"
	"fmt"

	"maintenance-service/internal/models"
	"maintenance-service/internal/store"
)

// UpsertPart inserts or replaces a part price.
func (d *DB) UpsertPart(ctx context.Context, p models.SparePart) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
	INSERT INTO spare_parts (part_id, unit_price)
	VALUES ($1, $2)
	ON CONFLICT (part_id) DO UPDATE SET unit_price = EXCLUDED.unit_price`

	if _, err := d.Pool.Exec(ctx, query, p.PartID, p.UnitPrice); err != nil {
		return fmt.Errorf("failed to upsert part: %w", err)
	}
	return nil
}

// GetPart retrieves one part price by id.
func (d *DB) GetPart(ctx context.Context, partID string) (models.SparePart, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var p models.SparePart
	err := d.Pool.QueryRow(ctx, `SELECT part_id, unit_price FROM spare_parts WHERE part_id = $1`, partID).
		Scan(&p.PartID, &p.UnitPrice)
	if err != nil {
		if mapped := mapErr(err); mapped == store.ErrNotFound {
			return models.SparePart{}, mapped
		}
		return models.SparePart{}, fmt.Errorf("failed to get part: %w", err)
	}
	return p, nil
}

// ListParts returns the whole price catalog.
func (d *DB) ListParts(ctx context.Context) ([]models.SparePart, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := d.Pool.Query(ctx, `SELECT part_id, unit_price FROM spare_parts`)
	if err != nil {
		return nil, fmt.Errorf("failed to list parts: %w", err)
	}
	defer rows.Close()

	var parts []models.SparePart
	for rows.Next() {
		var p models.SparePart
		if err := rows.Scan(&p.PartID, &p.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan part: %w", err)
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}
