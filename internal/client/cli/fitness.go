package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/prefs"
)

// recentLimit is how many workouts the dashboard lists.
const recentLimit = 5

func (a *App) Dashboard(ctx context.Context) error {
	snap, err := a.dashboard.Refresh(ctx)
	if err != nil {
		return err
	}
	renderDashboard(a.out, snap)
	return nil
}

func (a *App) AddWorkout(ctx context.Context) error {
	var (
		w   models.NewWorkout
		err error
	)
	if w.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if w.Type, err = workoutType(a.reader, a.out); err != nil {
		return err
	}
	if w.DurationMinutes, err = optionalInt(a.reader, "Duration, minutes", a.out); err != nil {
		return err
	}
	if w.CaloriesBurned, err = optionalInt(a.reader, "Calories burned", a.out); err != nil {
		return err
	}
	if w.Notes, err = optionalText(a.reader, "Notes", a.out); err != nil {
		return err
	}

	snap, err := a.dashboard.AddWorkout(ctx, w)
	if err != nil {
		return err
	}
	notice(fmt.Sprintf("Workout saved. %d workouts, %d kcal in total.",
		snap.Summary.TotalWorkouts, snap.Summary.TotalCalories))
	return nil
}

func (a *App) AddProgress(ctx context.Context) error {
	var (
		m   models.NewMeasurement
		err error
	)
	if m.Date, err = optionalDate(a.reader, "Date", a.out); err != nil {
		return err
	}
	fields := []struct {
		prompt string
		dst    **float64
	}{
		{"Weight, kg", &m.WeightKg},
		{"Body fat, %", &m.BodyFatPct},
		{"Muscle mass, kg", &m.MuscleMassKg},
		{"Chest, cm", &m.ChestCm},
		{"Waist, cm", &m.WaistCm},
		{"Arms, cm", &m.ArmsCm},
		{"Thighs, cm", &m.ThighsCm},
	}
	for _, f := range fields {
		if *f.dst, err = optionalFloat(a.reader, f.prompt, a.out); err != nil {
			return err
		}
	}
	if m.Notes, err = optionalText(a.reader, "Notes", a.out); err != nil {
		return err
	}

	snap, err := a.dashboard.AddMeasurement(ctx, m)
	if err != nil {
		return err
	}
	msg := "Measurement saved."
	if snap.Summary.HasLatestWeight {
		msg += fmt.Sprintf(" Current weight: %.1f kg.", snap.Summary.LatestWeight)
	}
	notice(msg)
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	p, err := a.fitness.GetProfile(ctx)
	if err != nil {
		return err
	}
	renderProfile(a.out, p)
	return nil
}

// EditProfile asks for each field; empty answers keep the current value.
func (a *App) EditProfile(ctx context.Context) error {
	var (
		patch models.ProfilePatch
		err   error
	)
	if patch.FullName, err = optionalText(a.reader, "Full name", a.out); err != nil {
		return err
	}
	if patch.Bio, err = optionalText(a.reader, "Bio", a.out); err != nil {
		return err
	}
	if patch.HeightCm, err = optionalFloat(a.reader, "Height, cm", a.out); err != nil {
		return err
	}
	if patch.WeightKg, err = optionalFloat(a.reader, "Weight, kg", a.out); err != nil {
		return err
	}
	if patch.Goal, err = optionalText(a.reader, "Goal", a.out); err != nil {
		return err
	}
	if patch.PreferredLanguage, err = optionalText(a.reader, "Preferred language", a.out); err != nil {
		return err
	}

	p, err := a.fitness.UpdateProfile(ctx, patch)
	if err != nil {
		return err
	}
	notice("Profile updated.")
	renderProfile(a.out, p)
	return nil
}

func (a *App) Avatar(ctx context.Context, path string) error {
	if a.avatars == nil {
		warning("Avatar storage is not configured.")
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	p, err := a.avatars.Upload(ctx, filepath.Base(path), f, info.Size())
	if err != nil {
		return err
	}
	notice("Avatar updated.")
	if p.AvatarURL != nil {
		printlnFn(*p.AvatarURL)
	}
	return nil
}

func (a *App) Admin(ctx context.Context) error {
	o, err := a.dashboard.AdminOverview(ctx)
	if err != nil {
		return err
	}
	renderAdmin(a.out, o)
	return nil
}

// Theme prints the current preference, or stores a new one.
func (a *App) Theme(ctx context.Context, value string) error {
	if value == "" {
		printlnFn("Theme:", a.prefs.Theme())
		return nil
	}
	t, err := prefs.ParseTheme(value)
	if err != nil {
		return err
	}
	if err := a.prefs.SetTheme(ctx, t); err != nil {
		return err
	}
	notice(fmt.Sprintf("Theme set to %s.", t))
	return nil
}
