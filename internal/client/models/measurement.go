package models

import (
	"time"
)

// Metric names one numeric column of a progress measurement. The value is
// the remote column name.
type Metric string

const (
	MetricWeight     Metric = "weight_kg"
	MetricBodyFat    Metric = "body_fat_pct"
	MetricMuscleMass Metric = "muscle_mass_kg"
	MetricChest      Metric = "chest_cm"
	MetricWaist      Metric = "waist_cm"
	MetricArms       Metric = "arms_cm"
	MetricThighs     Metric = "thighs_cm"
)

// Metrics lists every measurement column.
var Metrics = []Metric{MetricWeight, MetricBodyFat, MetricMuscleMass, MetricChest, MetricWaist, MetricArms, MetricThighs}

// ProgressMeasurement is one body-composition measurement session.
type ProgressMeasurement struct {
	ID           string
	UserID       string
	Date         time.Time
	WeightKg     *float64
	BodyFatPct   *float64
	MuscleMassKg *float64
	ChestCm      *float64
	WaistCm      *float64
	ArmsCm       *float64
	ThighsCm     *float64
	Notes        *string
	CreatedAt    time.Time
}

// Value returns the metric's value and whether it was recorded.
func (m ProgressMeasurement) Value(metric Metric) (float64, bool) {
	p := measurementField(metric, m.WeightKg, m.BodyFatPct, m.MuscleMassKg, m.ChestCm, m.WaistCm, m.ArmsCm, m.ThighsCm)
	if p == nil {
		return 0, false
	}
	return *p, true
}

func measurementField(metric Metric, weight, fat, muscle, chest, waist, arms, thighs *float64) *float64 {
	switch metric {
	case MetricWeight:
		return weight
	case MetricBodyFat:
		return fat
	case MetricMuscleMass:
		return muscle
	case MetricChest:
		return chest
	case MetricWaist:
		return waist
	case MetricArms:
		return arms
	case MetricThighs:
		return thighs
	}
	return nil
}

// NewMeasurement is the write shape of a measurement.
type NewMeasurement struct {
	Date         time.Time
	WeightKg     *float64
	BodyFatPct   *float64
	MuscleMassKg *float64
	ChestCm      *float64
	WaistCm      *float64
	ArmsCm       *float64
	ThighsCm     *float64
	Notes        *string
}

func (m NewMeasurement) values() []*float64 {
	return []*float64{m.WeightKg, m.BodyFatPct, m.MuscleMassKg, m.ChestCm, m.WaistCm, m.ArmsCm, m.ThighsCm}
}

// Normalize reduces the date to its UTC day, defaulting to today.
func (m NewMeasurement) Normalize(now time.Time) NewMeasurement {
	if m.Date.IsZero() {
		m.Date = now
	}
	m.Date = StartOfDay(m.Date)
	m.Notes = trimmedPtr(m.Notes)
	return m
}

// Validate checks a normalized measurement. Dates are compared by day and
// may run one calendar day ahead of UTC to allow for local time zones.
func (m NewMeasurement) Validate(now time.Time, skew time.Duration) error {
	present := 0
	for i, v := range m.values() {
		if err := checkNonNegativeFloat(string(Metrics[i]), v); err != nil {
			return err
		}
		if v != nil {
			present++
		}
	}
	if present == 0 {
		return invalid("measurement", "at least one value is required")
	}
	latest := StartOfDay(now.Add(skew)).AddDate(0, 0, 1)
	if m.Date.After(latest) {
		return invalid("date", "must not be in the future")
	}
	return nil
}

// Row renders the insert row for userID.
func (m NewMeasurement) Row(userID string) Row {
	row := Row{
		"user_id": userID,
		"date":    m.Date.Format(DateLayout),
	}
	for i, v := range m.values() {
		putOptional(row, string(Metrics[i]), v)
	}
	putOptionalString(row, "notes", m.Notes)
	return row
}

// MeasurementFromRow validates and converts a remote progress row.
func MeasurementFromRow(row Row) (ProgressMeasurement, error) {
	var (
		m   ProgressMeasurement
		err error
	)
	if m.ID, err = row.uuid("id"); err != nil {
		return ProgressMeasurement{}, err
	}
	if m.UserID, err = row.uuid("user_id"); err != nil {
		return ProgressMeasurement{}, err
	}
	if m.Date, err = row.date("date"); err != nil {
		return ProgressMeasurement{}, err
	}
	if m.CreatedAt, err = row.timestamp("created_at"); err != nil {
		return ProgressMeasurement{}, err
	}
	fields := []**float64{&m.WeightKg, &m.BodyFatPct, &m.MuscleMassKg, &m.ChestCm, &m.WaistCm, &m.ArmsCm, &m.ThighsCm}
	for i, dst := range fields {
		if *dst, err = row.optionalFloat(string(Metrics[i])); err != nil {
			return ProgressMeasurement{}, err
		}
	}
	if m.Notes, err = row.optionalString("notes"); err != nil {
		return ProgressMeasurement{}, err
	}
	return m, nil
}
