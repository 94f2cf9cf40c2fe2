package db

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS fault_codes (
		code        TEXT PRIMARY KEY,
		description TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL DEFAULT '',
		priority    TEXT NOT NULL DEFAULT 'Warning',
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS alerts (
		id              TEXT PRIMARY KEY,
		machine_id      TEXT NOT NULL,
		severity        TEXT NOT NULL,
		message         TEXT NOT NULL DEFAULT '',
		ts              TIMESTAMPTZ NOT NULL,
		status          TEXT NOT NULL,
		acknowledged_by TEXT NOT NULL DEFAULT '',
		acknowledged_at TIMESTAMPTZ,
		resolved_at     TIMESTAMPTZ,
		resolved_info   JSONB,
		fault_code      TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_alerts_status ON alerts (status)`,
	`CREATE INDEX IF NOT EXISTS idx_alerts_machine ON alerts (machine_id)`,
	`CREATE TABLE IF NOT EXISTS work_orders (
		id               TEXT PRIMARY KEY,
		machine_code     TEXT NOT NULL,
		type             TEXT NOT NULL,
		title            TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		priority         TEXT NOT NULL,
		assigned_to      TEXT NOT NULL DEFAULT '',
		status           TEXT NOT NULL,
		due_date         TIMESTAMPTZ NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL,
		completed_at     TIMESTAMPTZ,
		completion_notes TEXT NOT NULL DEFAULT '',
		labor_hours      DOUBLE PRECISION NOT NULL DEFAULT 0,
		parts_used       JSONB,
		is_compliant     BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_work_orders_status ON work_orders (status)`,
	`CREATE TABLE IF NOT EXISTS spare_parts (
		part_id    TEXT PRIMARY KEY,
		unit_price DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
}

// Migrate applies the schema. Statements are idempotent so running at every
// boot is safe.
func (d *DB) Migrate(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	for i, stmt := range migrations {
		if _, err := d.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
