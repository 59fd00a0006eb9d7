// Package stats derives dashboard figures from workouts and measurements.
// All functions are pure and leave their inputs untouched.
package stats

import (
	"sort"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
)

// Point is one value of a measurement series.
type Point struct {
	Date  time.Time
	Value float64
}

func TotalWorkouts(ws []models.WorkoutEntry) int {
	return len(ws)
}

// TotalCalories sums recorded calories; workouts without a value count as 0.
func TotalCalories(ws []models.WorkoutEntry) int {
	total := 0
	for _, w := range ws {
		if w.CaloriesBurned != nil {
			total += *w.CaloriesBurned
		}
	}
	return total
}

// TotalMinutes sums recorded durations; workouts without a value count as 0.
func TotalMinutes(ws []models.WorkoutEntry) int {
	total := 0
	for _, w := range ws {
		if w.DurationMinutes != nil {
			total += *w.DurationMinutes
		}
	}
	return total
}

// measuredBefore orders measurements by date, then by creation time, then
// by id, so that the order never depends on the input.
func measuredBefore(a, b models.ProgressMeasurement) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// LatestWeight returns the weight of the most recent measurement that has
// one. Same-day measurements are decided by creation time.
func LatestWeight(ms []models.ProgressMeasurement) (float64, bool) {
	var (
		latest models.ProgressMeasurement
		found  bool
	)
	for _, m := range ms {
		if m.WeightKg == nil {
			continue
		}
		if !found || measuredBefore(latest, m) {
			latest, found = m, true
		}
	}
	if !found {
		return 0, false
	}
	return *latest.WeightKg, true
}

// Series returns the recorded values of metric in ascending date order.
func Series(ms []models.ProgressMeasurement, metric models.Metric) []Point {
	sorted := append([]models.ProgressMeasurement(nil), ms...)
	sort.SliceStable(sorted, func(i, j int) bool { return measuredBefore(sorted[i], sorted[j]) })

	points := make([]Point, 0, len(sorted))
	for _, m := range sorted {
		if v, ok := m.Value(metric); ok {
			points = append(points, Point{Date: m.Date, Value: v})
		}
	}
	return points
}

// RecentWorkouts returns up to n workouts, newest completion first.
// n <= 0 returns all of them.
func RecentWorkouts(ws []models.WorkoutEntry, n int) []models.WorkoutEntry {
	sorted := append([]models.WorkoutEntry(nil), ws...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CompletedAt.Equal(sorted[j].CompletedAt) {
			return sorted[i].CompletedAt.After(sorted[j].CompletedAt)
		}
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
