package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"maintenance-service/internal/models"
	"maintenance-service/internal/store"
)

const orderColumns = `id, machine_code, type, title, description, priority, assigned_to, status, due_date, created_at, completed_at, completion_notes, labor_hours, parts_used, is_compliant`

func scanWorkOrder(row pgx.Row) (models.WorkOrder, error) {
	var wo models.WorkOrder
	err := row.Scan(
		&wo.ID, &wo.MachineCode, &wo.Type, &wo.Title, &wo.Description, &wo.Priority,
		&wo.AssignedTo, &wo.Status, &wo.DueDate, &wo.CreatedAt, &wo.CompletedAt,
		&wo.CompletionNotes, &wo.LaborHours, &wo.PartsUsed, &wo.IsCompliant,
	)
	return wo, err
}

func orderArgs(wo models.WorkOrder) []interface{} {
	return []interface{}{
		wo.ID, wo.MachineCode, wo.Type, wo.Title, wo.Description, wo.Priority,
		wo.AssignedTo, wo.Status, wo.DueDate, wo.CreatedAt, wo.CompletedAt,
		wo.CompletionNotes, wo.LaborHours, wo.PartsUsed, wo.IsCompliant,
	}
}

const insertOrderQuery = `
	INSERT INTO work_orders (` + orderColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

// InsertWorkOrder inserts a new work-order record.
func (d *DB) InsertWorkOrder(ctx context.Context, wo models.WorkOrder) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := d.Pool.Exec(ctx, insertOrderQuery, orderArgs(wo)...); err != nil {
		if mapped := mapErr(err); mapped == store.ErrDuplicate {
			return mapped
		}
		return fmt.Errorf("failed to insert work order: %w", err)
	}
	return nil
}

// InsertWorkOrders inserts a batch atomically: either all records land or
// none do.
func (d *DB) InsertWorkOrders(ctx context.Context, orders []models.WorkOrder) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, wo := range orders {
		if _, err := tx.Exec(ctx, insertOrderQuery, orderArgs(wo)...); err != nil {
			if mapped := mapErr(err); mapped == store.ErrDuplicate {
				return mapped
			}
			return fmt.Errorf("failed to insert work order %s: %w", wo.ID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit work order batch: %w", err)
	}
	return nil
}

// GetWorkOrder retrieves one work order by id.
func (d *DB) GetWorkOrder(ctx context.Context, id string) (models.WorkOrder, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	wo, err := scanWorkOrder(d.Pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM work_orders WHERE id = $1`, id))
	if err != nil {
		if mapped := mapErr(err); mapped == store.ErrNotFound {
			return models.WorkOrder{}, mapped
		}
		return models.WorkOrder{}, fmt.Errorf("failed to get work order: %w", err)
	}
	return wo, nil
}

// UpdateWorkOrder applies mutate under a row lock, mirroring UpdateAlert.
func (d *DB) UpdateWorkOrder(ctx context.Context, id string, mutate func(*models.WorkOrder) error) (models.WorkOrder, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return models.WorkOrder{}, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	wo, err := scanWorkOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM work_orders WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if mapped := mapErr(err); mapped == store.ErrNotFound {
			return models.WorkOrder{}, mapped
		}
		return models.WorkOrder{}, fmt.Errorf("failed to lock work order: %w", err)
	}

	if err := mutate(&wo); err != nil {
		return models.WorkOrder{}, err
	}

	query := `
	UPDATE work_orders
	SET machine_code = $2, type = $3, title = $4, description = $5, priority = $6,
	    assigned_to = $7, status = $8, due_date = $9, completed_at = $10,
	    completion_notes = $11, labor_hours = $12, parts_used = $13, is_compliant = $14
	WHERE id = $1`

	if _, err := tx.Exec(ctx, query,
		wo.ID, wo.MachineCode, wo.Type, wo.Title, wo.Description, wo.Priority,
		wo.AssignedTo, wo.Status, wo.DueDate, wo.CompletedAt,
		wo.CompletionNotes, wo.LaborHours, wo.PartsUsed, wo.IsCompliant,
	); err != nil {
		return models.WorkOrder{}, fmt.Errorf("failed to update work order: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return models.WorkOrder{}, fmt.Errorf("failed to commit work order update: %w", err)
	}
	return wo, nil
}

// ListWorkOrders returns every work order.
func (d *DB) ListWorkOrders(ctx context.Context) ([]models.WorkOrder, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := d.Pool.Query(ctx, `SELECT `+orderColumns+` FROM work_orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list work orders: %w", err)
	}
	defer rows.Close()

	var orders []models.WorkOrder
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work order: %w", err)
		}
		orders = append(orders, wo)
	}
	return orders, rows.Err()
}
