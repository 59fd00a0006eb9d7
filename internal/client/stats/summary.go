package stats

import "github.com/dmitrijs2005/fittrack/internal/client/models"

// Summary is the dashboard snapshot for one user.
type Summary struct {
	TotalWorkouts    int
	TotalCalories    int
	TotalMinutes     int
	LatestWeight     float64
	HasLatestWeight  bool
	Measurements     int
	WeightSeries     []Point
	BodyFatSeries    []Point
	MuscleMassSeries []Point
}

func Summarize(ws []models.WorkoutEntry, ms []models.ProgressMeasurement) Summary {
	weight, ok := LatestWeight(ms)
	return Summary{
		TotalWorkouts:    TotalWorkouts(ws),
		TotalCalories:    TotalCalories(ws),
		TotalMinutes:     TotalMinutes(ws),
		LatestWeight:     weight,
		HasLatestWeight:  ok,
		Measurements:     len(ms),
		WeightSeries:     Series(ms, models.MetricWeight),
		BodyFatSeries:    Series(ms, models.MetricBodyFat),
		MuscleMassSeries: Series(ms, models.MetricMuscleMass),
	}
}

// AdminSummary aggregates over every user.
type AdminSummary struct {
	Users         int
	Workouts      int
	Measurements  int
	TotalCalories int
	TotalMinutes  int
	// ActiveUsers counts users with at least one workout or measurement.
	ActiveUsers int
}

func SummarizeAdmin(ps []models.Profile, ws []models.WorkoutEntry, ms []models.ProgressMeasurement) AdminSummary {
	active := make(map[string]struct{})
	for _, w := range ws {
		active[w.UserID] = struct{}{}
	}
	for _, m := range ms {
		active[m.UserID] = struct{}{}
	}
	return AdminSummary{
		Users:         len(ps),
		Workouts:      len(ws),
		Measurements:  len(ms),
		TotalCalories: TotalCalories(ws),
		TotalMinutes:  TotalMinutes(ws),
		ActiveUsers:   len(active),
	}
}
