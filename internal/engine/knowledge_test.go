package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintenance-service/internal/models"
)

func TestKnowledgeBase_EndToEnd(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	a1, err := e.CreateAlert(ctx, "M-1", models.SeverityCritical, "high vibration", time.Time{})
	require.NoError(t, err)
	acked, err := e.Acknowledge(ctx, a1.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.AlertAcknowledged, acked.Status)

	_, err = e.Resolve(ctx, a1.ID, "bob", "worn bearing", "replaced", "M-001")
	require.NoError(t, err)

	entries, err := e.KnowledgeBase(ctx, "", "M-001")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "M-001", entries[0].FaultCode)
	assert.Equal(t, "M-1", entries[0].MachineID)
	assert.Equal(t, "worn bearing", entries[0].RootCause)
	assert.Equal(t, "replaced", entries[0].ActionTaken)
	assert.Equal(t, 1, entries[0].Occurrence)
	assert.Equal(t, models.CategoryCustom, entries[0].Category)
}

func TestKnowledgeBase_OccurrenceIsOrderIndependent(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()
	base := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	// Resolve three alerts carrying the same code in non-chronological order.
	ids := make([]string, 3)
	for i := range ids {
		a, err := e.CreateAlert(ctx, "M-1", models.SeverityError, "", base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
		ids[i] = a.ID
	}
	for _, i := range []int{2, 0, 1} {
		_, err := e.Resolve(ctx, ids[i], "bob", "cause", "action", "F-9")
		require.NoError(t, err)
	}

	entries, err := e.KnowledgeBase(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].Occurrence)
	// lastResolved is the max alert timestamp, regardless of resolve order.
	assert.True(t, entries[0].LastResolved.Equal(base.Add(2*time.Hour)))
}

func TestKnowledgeBase_EditDoesNotDoubleCount(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	a, err := e.CreateAlert(ctx, "M-1", models.SeverityError, "", time.Time{})
	require.NoError(t, err)
	_, err = e.Resolve(ctx, a.ID, "bob", "cause v1", "action v1", "F-1")
	require.NoError(t, err)
	_, err = e.Resolve(ctx, a.ID, "bob", "cause v2", "action v2", "F-1")
	require.NoError(t, err)

	entries, err := e.KnowledgeBase(ctx, "", "F-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Occurrence)
	assert.Equal(t, "cause v2", entries[0].RootCause)
}

func TestKnowledgeBase_SeedsFromEarliestResolution(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()
	base := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	a1, err := e.CreateAlert(ctx, "M-1", models.SeverityError, "", base)
	require.NoError(t, err)
	a2, err := e.CreateAlert(ctx, "M-2", models.SeverityError, "", base.Add(time.Hour))
	require.NoError(t, err)

	fixClock(e, base.Add(2*time.Hour))
	_, err = e.Resolve(ctx, a1.ID, "bob", "first cause", "first action", "F-1")
	require.NoError(t, err)
	fixClock(e, base.Add(3*time.Hour))
	_, err = e.Resolve(ctx, a2.ID, "bob", "later cause", "later action", "F-1")
	require.NoError(t, err)

	entries, err := e.KnowledgeBase(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "M-1", entries[0].MachineID)
	assert.Equal(t, "first cause", entries[0].RootCause)
	assert.Equal(t, 2, entries[0].Occurrence)
}

func TestKnowledgeBase_UsesCatalogDescription(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	_, err := e.SaveFault(ctx, models.FaultCode{Code: "F-1", Description: "Spindle misalignment", Category: "Mechanical", Priority: models.PriorityError}, true)
	require.NoError(t, err)

	a, err := e.CreateAlert(ctx, "M-1", models.SeverityError, "", time.Time{})
	require.NoError(t, err)
	_, err = e.Resolve(ctx, a.ID, "bob", "c", "a", "F-1")
	require.NoError(t, err)

	entries, err := e.KnowledgeBase(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Spindle misalignment", entries[0].Description)
	assert.Equal(t, "Mechanical", entries[0].Category)
}

func TestKnowledgeBase_Filters(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()

	resolveNew := func(machine, code string) {
		a, err := e.CreateAlert(ctx, machine, models.SeverityError, "", time.Time{})
		require.NoError(t, err)
		_, err = e.Resolve(ctx, a.ID, "bob", "c", "a", code)
		require.NoError(t, err)
	}
	resolveNew("M-1", "F-1")
	resolveNew("M-2", "F-2")

	byMachine, err := e.KnowledgeBase(ctx, "M-2", "")
	require.NoError(t, err)
	require.Len(t, byMachine, 1)
	assert.Equal(t, "F-2", byMachine[0].FaultCode)

	none, err := e.KnowledgeBase(ctx, "M-1", "F-2")
	require.NoError(t, err)
	assert.Empty(t, none)
}
