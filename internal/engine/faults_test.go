package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintenance-service/internal/models"
	"maintenance-service/internal/store"
)

func TestSaveFault_NewAndDuplicate(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	created, err := e.SaveFault(ctx, models.FaultCode{
		Code:        " m-001 ",
		Description: "Bearing wear",
		Category:    "Mechanical",
		Priority:    models.PriorityError,
	}, true)
	require.NoError(t, err)
	assert.Equal(t, "M-001", created.Code)

	// Duplicate create is rejected, case-insensitively.
	_, err = e.SaveFault(ctx, models.FaultCode{Code: "M-001", Priority: models.PriorityInfo}, true)
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestSaveFault_UpdateReplacesFields(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	created, err := e.SaveFault(ctx, models.FaultCode{Code: "M-001", Description: "old", Category: "Mechanical", Priority: models.PriorityError}, true)
	require.NoError(t, err)

	updated, err := e.SaveFault(ctx, models.FaultCode{Code: "M-001", Description: "new", Category: "Electrical", Priority: models.PriorityCritical}, false)
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Description)
	assert.Equal(t, "Electrical", updated.Category)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
}

func TestSaveFault_UpdateUnknownCode(t *testing.T) {
	e, _ := newTestEngine()

	_, err := e.SaveFault(context.Background(), models.FaultCode{Code: "NOPE", Priority: models.PriorityInfo}, false)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSaveFault_InvalidPriority(t *testing.T) {
	e, _ := newTestEngine()

	_, err := e.SaveFault(context.Background(), models.FaultCode{Code: "M-001", Priority: "Severe"}, true)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "priority", ve.Field)
}

func TestDeleteFault_Unreferenced(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	_, err := e.SaveFault(ctx, models.FaultCode{Code: "M-001", Priority: models.PriorityInfo}, true)
	require.NoError(t, err)
	require.NoError(t, e.DeleteFault(ctx, "M-001"))

	_, err = e.faults.GetFault(ctx, "M-001")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteFault_RefusedWhileReferenced(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	a, err := e.CreateAlert(ctx, "M-1", models.SeverityError, "", time.Time{})
	require.NoError(t, err)
	_, err = e.Resolve(ctx, a.ID, "bob", "c", "a", "M-001")
	require.NoError(t, err)

	err = e.DeleteFault(ctx, "M-001")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	// Entry survives the refused delete.
	_, err = e.faults.GetFault(ctx, "M-001")
	assert.NoError(t, err)
}

func TestResolveOrCreateFault_ReturnsExisting(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	_, err := e.SaveFault(ctx, models.FaultCode{Code: "M-001", Description: "curated", Category: "Mechanical", Priority: models.PriorityError}, true)
	require.NoError(t, err)

	f, err := e.ResolveOrCreateFault(ctx, "m-001")
	require.NoError(t, err)
	assert.Equal(t, "curated", f.Description)
	assert.Equal(t, "Mechanical", f.Category)
}
