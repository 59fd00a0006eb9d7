package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/stats"
	"github.com/dmitrijs2005/fittrack/internal/common"
)

// Snapshot is the dashboard content of the signed-in user.
type Snapshot struct {
	// UserID owns the snapshot.
	UserID       string
	Workouts     []models.WorkoutEntry
	Measurements []models.ProgressMeasurement
	Summary      stats.Summary
}

// AdminOverview is the platform-wide view shown to administrators.
type AdminOverview struct {
	Profiles     []models.Profile
	Workouts     []models.WorkoutEntry
	Measurements []models.ProgressMeasurement
	Summary      stats.AdminSummary
}

// AdminChecker reports the cached administrator capability.
type AdminChecker interface {
	IsAdmin() bool
}

// DashboardService composes fitness reads into dashboard snapshots.
// Writes made through it are followed by a refresh that starts only after
// the write has returned.
type DashboardService interface {
	Refresh(ctx context.Context) (Snapshot, error)
	// Current returns the last refreshed snapshot while its owner is still
	// signed in.
	Current() (Snapshot, bool)
	AddWorkout(ctx context.Context, w models.NewWorkout) (Snapshot, error)
	AddMeasurement(ctx context.Context, m models.NewMeasurement) (Snapshot, error)
	AdminOverview(ctx context.Context) (AdminOverview, error)
}

type dashboardService struct {
	fitness  FitnessService
	sessions SessionSource
	roles    AdminChecker

	mu       sync.RWMutex
	snapshot *Snapshot
}

func NewDashboardService(fitness FitnessService, sessions SessionSource, roles AdminChecker) DashboardService {
	return &dashboardService{fitness: fitness, sessions: sessions, roles: roles}
}

func (d *dashboardService) Refresh(ctx context.Context) (Snapshot, error) {
	s, ok := d.sessions.Current()
	if !ok {
		d.drop()
		return Snapshot{}, common.ErrNotAuthenticated
	}

	ws, err := d.fitness.ListWorkouts(ctx, "", 0)
	if err != nil {
		return Snapshot{}, err
	}
	ms, err := d.fitness.ListMeasurements(ctx, "", 0)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{UserID: s.UserID, Workouts: ws, Measurements: ms, Summary: stats.Summarize(ws, ms)}
	d.mu.Lock()
	d.snapshot = &snap
	d.mu.Unlock()
	return snap, nil
}

func (d *dashboardService) Current() (Snapshot, bool) {
	s, ok := d.sessions.Current()
	if !ok {
		return Snapshot{}, false
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.snapshot == nil || d.snapshot.UserID != s.UserID {
		return Snapshot{}, false
	}
	return *d.snapshot, true
}

func (d *dashboardService) drop() {
	d.mu.Lock()
	d.snapshot = nil
	d.mu.Unlock()
}

func (d *dashboardService) AddWorkout(ctx context.Context, w models.NewWorkout) (Snapshot, error) {
	if _, err := d.fitness.CreateWorkout(ctx, w); err != nil {
		return Snapshot{}, err
	}
	return d.Refresh(ctx)
}

func (d *dashboardService) AddMeasurement(ctx context.Context, m models.NewMeasurement) (Snapshot, error) {
	if _, err := d.fitness.CreateMeasurement(ctx, m); err != nil {
		return Snapshot{}, err
	}
	return d.Refresh(ctx)
}

func (d *dashboardService) AdminOverview(ctx context.Context) (AdminOverview, error) {
	if !d.roles.IsAdmin() {
		return AdminOverview{}, common.ErrNotAuthorized
	}

	ps, err := d.fitness.ListAllProfiles(ctx)
	if err != nil {
		return AdminOverview{}, fmt.Errorf("admin overview: %w", err)
	}
	ws, err := d.fitness.ListAllWorkouts(ctx, 0)
	if err != nil {
		return AdminOverview{}, fmt.Errorf("admin overview: %w", err)
	}
	ms, err := d.fitness.ListAllMeasurements(ctx, 0)
	if err != nil {
		return AdminOverview{}, fmt.Errorf("admin overview: %w", err)
	}

	return AdminOverview{
		Profiles:     ps,
		Workouts:     ws,
		Measurements: ms,
		Summary:      stats.SummarizeAdmin(ps, ws, ms),
	}, nil
}
