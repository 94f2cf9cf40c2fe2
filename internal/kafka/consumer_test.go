package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnomaly_Valid(t *testing.T) {
	value := []byte(`{"machineId":"CNC-01","severity":"Critical","message":"vibration spike","timestamp":"2026-02-10T09:00:00Z"}`)

	a, err := ParseAnomaly(value)
	require.NoError(t, err)
	assert.Equal(t, "CNC-01", a.MachineID)
	assert.Equal(t, "Critical", a.Severity)
	assert.Equal(t, "vibration spike", a.Message)
	assert.True(t, a.Timestamp.Equal(time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)))
}

func TestParseAnomaly_MissingTimestampIsAllowed(t *testing.T) {
	a, err := ParseAnomaly([]byte(`{"machineId":"CNC-01","severity":"Warning"}`))
	require.NoError(t, err)
	assert.True(t, a.Timestamp.IsZero())
}

func TestParseAnomaly_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"malformed json", `{"machineId":`},
		{"missing machineId", `{"severity":"Critical"}`},
		{"missing severity", `{"machineId":"CNC-01"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAnomaly([]byte(tt.value))
			assert.Error(t, err)
		})
	}
}
