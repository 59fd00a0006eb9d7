package models

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMeasurementID = "9a7c1d52-2f4b-4b7e-8c3d-5e6f7a8b9c0d"

func TestNewMeasurement_Normalize(t *testing.T) {
	m := NewMeasurement{WeightKg: Float(80)}.Normalize(testNow)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), m.Date)

	local := time.Date(2024, 1, 1, 23, 30, 0, 0, time.FixedZone("X", -2*3600))
	m = NewMeasurement{Date: local, WeightKg: Float(80)}.Normalize(testNow)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), m.Date)
}

func TestNewMeasurement_Validate(t *testing.T) {
	skew := 5 * time.Minute
	day := StartOfDay(testNow)
	tests := []struct {
		name    string
		m       NewMeasurement
		wantErr bool
	}{
		{name: "weight only", m: NewMeasurement{Date: day, WeightKg: Float(80)}},
		{name: "zero is a value", m: NewMeasurement{Date: day, BodyFatPct: Float(0)}},
		{name: "nothing recorded", m: NewMeasurement{Date: day}, wantErr: true},
		{name: "negative waist", m: NewMeasurement{Date: day, WaistCm: Float(-3)}, wantErr: true},
		{name: "tomorrow allowed for time zones", m: NewMeasurement{Date: day.AddDate(0, 0, 1), WeightKg: Float(80)}},
		{name: "two days ahead", m: NewMeasurement{Date: day.AddDate(0, 0, 2), WeightKg: Float(80)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate(testNow, skew)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrValidation)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewMeasurement_Row(t *testing.T) {
	m := NewMeasurement{Date: StartOfDay(testNow), WeightKg: Float(78.5), ArmsCm: Float(35)}
	row := m.Row(testUserID)

	assert.Equal(t, "2024-03-10", row["date"])
	assert.Equal(t, 78.5, row["weight_kg"])
	assert.Equal(t, 35.0, row["arms_cm"])
	_, ok := row["chest_cm"]
	assert.False(t, ok)
}

func TestMeasurementFromRow(t *testing.T) {
	row := Row{
		"id":             testMeasurementID,
		"user_id":        testUserID,
		"date":           "2024-02-01",
		"weight_kg":      float64(78),
		"muscle_mass_kg": nil,
		"created_at":     "2024-02-01T08:00:00Z",
	}
	m, err := MeasurementFromRow(row)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), m.Date)
	v, ok := m.Value(MetricWeight)
	assert.True(t, ok)
	assert.Equal(t, 78.0, v)
	_, ok = m.Value(MetricMuscleMass)
	assert.False(t, ok)

	row["date"] = "not a date"
	_, err = MeasurementFromRow(row)
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestProgressMeasurement_ValueCoversAllMetrics(t *testing.T) {
	m := ProgressMeasurement{
		WeightKg: Float(1), BodyFatPct: Float(2), MuscleMassKg: Float(3),
		ChestCm: Float(4), WaistCm: Float(5), ArmsCm: Float(6), ThighsCm: Float(7),
	}
	for i, metric := range Metrics {
		v, ok := m.Value(metric)
		require.True(t, ok, metric)
		assert.Equal(t, float64(i+1), v, metric)
	}
	_, ok := m.Value(Metric("height"))
	assert.False(t, ok)
}
