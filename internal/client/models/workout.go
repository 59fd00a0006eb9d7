package models

import (
	"strings"
	"time"
)

// WorkoutType classifies a workout.
type WorkoutType string

const (
	WorkoutStrength    WorkoutType = "strength"
	WorkoutCardio      WorkoutType = "cardio"
	WorkoutFlexibility WorkoutType = "flexibility"
	WorkoutHIIT        WorkoutType = "hiit"
)

// WorkoutTypes lists the known types in display order.
var WorkoutTypes = []WorkoutType{WorkoutStrength, WorkoutCardio, WorkoutFlexibility, WorkoutHIIT}

// ParseWorkoutType accepts a known type name in any case.
func ParseWorkoutType(s string) (WorkoutType, error) {
	t := WorkoutType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range WorkoutTypes {
		if t == known {
			return t, nil
		}
	}
	return "", invalid("type", "unknown workout type "+strings.TrimSpace(s))
}

// WorkoutEntry is a logged workout as stored remotely.
type WorkoutEntry struct {
	ID              string
	UserID          string
	Title           string
	Type            WorkoutType
	DurationMinutes *int
	CaloriesBurned  *int
	CompletedAt     time.Time
	CreatedAt       time.Time
	Notes           *string
}

// NewWorkout is the write shape of a workout. It carries no user id: the
// owner is always the signed-in user.
type NewWorkout struct {
	Title           string
	Type            WorkoutType
	DurationMinutes *int
	CaloriesBurned  *int
	CompletedAt     time.Time
	Notes           *string
}

// Normalize trims text and fills defaults: type strength, completion now.
func (w NewWorkout) Normalize(now time.Time) NewWorkout {
	w.Title = strings.TrimSpace(w.Title)
	if w.Type == "" {
		w.Type = WorkoutStrength
	}
	if w.CompletedAt.IsZero() {
		w.CompletedAt = now
	}
	w.Notes = trimmedPtr(w.Notes)
	return w
}

// Validate checks a normalized workout. skew is the tolerated clock
// difference for completion times slightly in the future.
func (w NewWorkout) Validate(now time.Time, skew time.Duration) error {
	if w.Title == "" {
		return invalid("title", "required")
	}
	if _, err := ParseWorkoutType(string(w.Type)); err != nil {
		return err
	}
	if err := checkNonNegativeInt("duration_minutes", w.DurationMinutes); err != nil {
		return err
	}
	if err := checkNonNegativeInt("calories_burned", w.CaloriesBurned); err != nil {
		return err
	}
	return checkNotFuture("completed_at", w.CompletedAt, now, skew)
}

// Row renders the insert row for userID.
func (w NewWorkout) Row(userID string) Row {
	row := Row{
		"user_id":      userID,
		"title":        w.Title,
		"type":         string(w.Type),
		"completed_at": w.CompletedAt.UTC().Format(time.RFC3339Nano),
	}
	putOptional(row, "duration_minutes", w.DurationMinutes)
	putOptional(row, "calories_burned", w.CaloriesBurned)
	putOptionalString(row, "notes", w.Notes)
	return row
}

// WorkoutFromRow validates and converts a remote workouts row.
func WorkoutFromRow(row Row) (WorkoutEntry, error) {
	var (
		w   WorkoutEntry
		err error
	)
	if w.ID, err = row.uuid("id"); err != nil {
		return WorkoutEntry{}, err
	}
	if w.UserID, err = row.uuid("user_id"); err != nil {
		return WorkoutEntry{}, err
	}
	if w.Title, err = row.requiredString("title"); err != nil {
		return WorkoutEntry{}, err
	}
	typ, err := row.requiredString("type")
	if err != nil {
		return WorkoutEntry{}, err
	}
	if w.Type, err = ParseWorkoutType(typ); err != nil {
		return WorkoutEntry{}, err
	}
	if w.DurationMinutes, err = row.optionalInt("duration_minutes"); err != nil {
		return WorkoutEntry{}, err
	}
	if w.CaloriesBurned, err = row.optionalInt("calories_burned"); err != nil {
		return WorkoutEntry{}, err
	}
	if w.CompletedAt, err = row.timestamp("completed_at"); err != nil {
		return WorkoutEntry{}, err
	}
	if w.CreatedAt, err = row.timestamp("created_at"); err != nil {
		return WorkoutEntry{}, err
	}
	if w.Notes, err = row.optionalString("notes"); err != nil {
		return WorkoutEntry{}, err
	}
	return w, nil
}
