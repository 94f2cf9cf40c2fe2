package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintenance-service/internal/models"
)

func TestMemory_FaultCRUD(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	f := models.FaultCode{Code: "M-001", Description: "d", Priority: models.PriorityError}
	require.NoError(t, m.InsertFault(ctx, f))
	assert.ErrorIs(t, m.InsertFault(ctx, f), ErrDuplicate)

	got, err := m.GetFault(ctx, "M-001")
	require.NoError(t, err)
	assert.Equal(t, "d", got.Description)

	f.Description = "updated"
	require.NoError(t, m.ReplaceFault(ctx, f))
	got, err = m.GetFault(ctx, "M-001")
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Description)

	require.NoError(t, m.DeleteFault(ctx, "M-001"))
	_, err = m.GetFault(ctx, "M-001")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.DeleteFault(ctx, "M-001"), ErrNotFound)
}

func TestMemory_UpdateAlert_MutateErrorLeavesRecord(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.InsertAlert(ctx, models.Alert{ID: "a1", Status: models.AlertActive}))

	boom := errors.New("boom")
	_, err := m.UpdateAlert(ctx, "a1", func(a *models.Alert) error {
		a.Status = models.AlertResolved
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := m.GetAlert(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, models.AlertActive, got.Status)
}

func TestMemory_UpdateAlert_Unknown(t *testing.T) {
	m := NewMemory()

	_, err := m.UpdateAlert(context.Background(), "nope", func(a *models.Alert) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_ReadsAreIsolatedCopies(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, m.InsertAlert(ctx, models.Alert{
		ID: "a1", Status: models.AlertResolved,
		ResolvedAt:   &now,
		ResolvedInfo: &models.ResolvedInfo{Cause: "c"},
	}))

	got, err := m.GetAlert(ctx, "a1")
	require.NoError(t, err)
	got.ResolvedInfo.Cause = "mutated"

	again, err := m.GetAlert(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "c", again.ResolvedInfo.Cause)
}

func TestMemory_InsertWorkOrders_AllOrNothing(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.InsertWorkOrder(ctx, models.WorkOrder{ID: "w1"}))

	err := m.InsertWorkOrders(ctx, []models.WorkOrder{{ID: "w2"}, {ID: "w1"}})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = m.GetWorkOrder(ctx, "w2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_PartUpsert(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.UpsertPart(ctx, models.SparePart{PartID: "P1", UnitPrice: 10}))
	require.NoError(t, m.UpsertPart(ctx, models.SparePart{PartID: "P1", UnitPrice: 12}))

	p, err := m.GetPart(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, 12.0, p.UnitPrice)

	parts, err := m.ListParts(ctx)
	require.NoError(t, err)
	assert.Len(t, parts, 1)
}
