package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/services"
	"github.com/dmitrijs2005/fittrack/internal/client/stats"
)

func orDash[T any](v *T, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func renderWorkouts(w io.Writer, ws []models.WorkoutEntry) {
	if len(ws) == 0 {
		fmt.Fprintln(w, "No workouts yet. Type 'addworkout' to log one.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTITLE\tTYPE\tMIN\tKCAL")
	for _, e := range ws {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.CompletedAt.Local().Format(time.DateOnly), e.Title, e.Type,
			orDash(e.DurationMinutes, "%d"), orDash(e.CaloriesBurned, "%d"))
	}
	tw.Flush()
}

func renderSeries(w io.Writer, label string, points []stats.Point) {
	if len(points) == 0 {
		return
	}
	vals := make([]string, len(points))
	for i, p := range points {
		vals[i] = fmt.Sprintf("%s %.1f", p.Date.Format("01-02"), p.Value)
	}
	fmt.Fprintf(w, "%s: %s\n", label, strings.Join(vals, " > "))
}

func renderDashboard(w io.Writer, snap services.Snapshot) {
	s := snap.Summary
	fmt.Fprintf(w, "Workouts: %d   Calories: %d kcal   Active time: %d min\n",
		s.TotalWorkouts, s.TotalCalories, s.TotalMinutes)
	if s.HasLatestWeight {
		fmt.Fprintf(w, "Current weight: %.1f kg (%d measurements)\n", s.LatestWeight, s.Measurements)
	} else {
		fmt.Fprintf(w, "Current weight: - (%d measurements)\n", s.Measurements)
	}
	renderSeries(w, "Weight", s.WeightSeries)
	renderSeries(w, "Body fat", s.BodyFatSeries)
	renderSeries(w, "Muscle mass", s.MuscleMassSeries)
	fmt.Fprintln(w)
	renderWorkouts(w, stats.RecentWorkouts(snap.Workouts, recentLimit))
}

func renderProfile(w io.Writer, p models.Profile) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Name\t%s\n", p.DisplayName())
	fmt.Fprintf(tw, "Bio\t%s\n", orDash(p.Bio, "%s"))
	fmt.Fprintf(tw, "Height\t%s\n", orDash(p.HeightCm, "%.1f cm"))
	fmt.Fprintf(tw, "Weight\t%s\n", orDash(p.WeightKg, "%.1f kg"))
	fmt.Fprintf(tw, "Goal\t%s\n", orDash(p.Goal, "%s"))
	fmt.Fprintf(tw, "Language\t%s\n", orDash(p.PreferredLanguage, "%s"))
	fmt.Fprintf(tw, "Avatar\t%s\n", orDash(p.AvatarURL, "%s"))
	fmt.Fprintf(tw, "Member since\t%s\n", p.CreatedAt.Local().Format(time.DateOnly))
	tw.Flush()
}

func renderAdmin(w io.Writer, o services.AdminOverview) {
	s := o.Summary
	fmt.Fprintf(w, "Users: %d (%d active)   Workouts: %d   Measurements: %d\n",
		s.Users, s.ActiveUsers, s.Workouts, s.Measurements)
	fmt.Fprintf(w, "Calories: %d kcal   Active time: %d min\n\n", s.TotalCalories, s.TotalMinutes)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USER\tNAME\tJOINED")
	for _, p := range o.Profiles {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.UserID, p.DisplayName(), p.CreatedAt.Local().Format(time.DateOnly))
	}
	tw.Flush()
}
