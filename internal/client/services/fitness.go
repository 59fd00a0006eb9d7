// Package services contains the application services of the fittrack
// client. This file defines the fitness data service: validated writes and
// scoped reads of workouts, progress measurements and profiles.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/client/client"
	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/logging"
)

// Default page sizes.
const (
	DefaultListLimit  = 50
	DefaultAdminLimit = 100
)

var ErrProfileNotFound = errors.New("profile not found")

// SessionSource exposes the active session.
type SessionSource interface {
	Current() (models.Session, bool)
}

// FitnessService defines the data operations of the client.
//
// Contract:
//   - Writes validate locally first; invalid input never reaches the store.
//     Writes are not retried.
//   - User reads are scoped to the signed-in user. An empty userID means
//     that user; another user's id is a validation error.
//   - Admin reads (ListAll*) rely on the store's row policy for access.
//   - Without a session every call fails with common.ErrNotAuthenticated.
//   - limit <= 0 selects the configured default.
type FitnessService interface {
	CreateWorkout(ctx context.Context, w models.NewWorkout) (models.WorkoutEntry, error)
	CreateMeasurement(ctx context.Context, m models.NewMeasurement) (models.ProgressMeasurement, error)
	GetProfile(ctx context.Context) (models.Profile, error)
	UpdateProfile(ctx context.Context, p models.ProfilePatch) (models.Profile, error)

	ListWorkouts(ctx context.Context, userID string, limit int) ([]models.WorkoutEntry, error)
	ListMeasurements(ctx context.Context, userID string, limit int) ([]models.ProgressMeasurement, error)

	ListAllProfiles(ctx context.Context) ([]models.Profile, error)
	ListAllWorkouts(ctx context.Context, limit int) ([]models.WorkoutEntry, error)
	ListAllMeasurements(ctx context.Context, limit int) ([]models.ProgressMeasurement, error)
}

// FitnessOptions tunes a FitnessService. Zero values select defaults.
type FitnessOptions struct {
	ListLimit  int
	AdminLimit int
	// ClockSkew is how far in the future a timestamp may lie.
	ClockSkew time.Duration
	Now       func() time.Time
	Logger    logging.Logger
}

type fitnessService struct {
	remote   client.RemoteStore
	sessions SessionSource
	opts     FitnessOptions
}

func NewFitnessService(remote client.RemoteStore, sessions SessionSource, opts FitnessOptions) FitnessService {
	if opts.ListLimit <= 0 {
		opts.ListLimit = DefaultListLimit
	}
	if opts.AdminLimit <= 0 {
		opts.AdminLimit = DefaultAdminLimit
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	return &fitnessService{remote: remote, sessions: sessions, opts: opts}
}

func (s *fitnessService) session() (models.Session, error) {
	sess, ok := s.sessions.Current()
	if !ok {
		return models.Session{}, common.ErrNotAuthenticated
	}
	return sess, nil
}

// scope resolves the user a list call reads for.
func (s *fitnessService) scope(userID string) (models.Session, string, error) {
	sess, err := s.session()
	if err != nil {
		return models.Session{}, "", err
	}
	if userID == "" {
		return sess, sess.UserID, nil
	}
	if userID != sess.UserID {
		return models.Session{}, "", &models.ValidationError{Field: "user_id", Reason: "not the signed-in user"}
	}
	return sess, userID, nil
}

func pick(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}

// decode converts rows, skipping and logging the ones that fail validation.
func decode[T any](ctx context.Context, log logging.Logger, table string, rows []models.Row, parse func(models.Row) (T, error)) []T {
	out := make([]T, 0, len(rows))
	for i, row := range rows {
		v, err := parse(row)
		if err != nil {
			log.Warn(ctx, "skipping invalid row", "table", table, "index", i, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}

func (s *fitnessService) CreateWorkout(ctx context.Context, w models.NewWorkout) (models.WorkoutEntry, error) {
	sess, err := s.session()
	if err != nil {
		return models.WorkoutEntry{}, err
	}

	now := s.opts.Now()
	w = w.Normalize(now)
	if err := w.Validate(now, s.opts.ClockSkew); err != nil {
		return models.WorkoutEntry{}, err
	}

	created, err := s.remote.Insert(ctx, sess.RawToken, client.TableWorkouts, w.Row(sess.UserID))
	if err != nil {
		return models.WorkoutEntry{}, fmt.Errorf("create workout: %w", err)
	}
	if created != nil {
		if entry, err := models.WorkoutFromRow(created); err == nil {
			return entry, nil
		}
	}

	return models.WorkoutEntry{
		UserID:          sess.UserID,
		Title:           w.Title,
		Type:            w.Type,
		DurationMinutes: w.DurationMinutes,
		CaloriesBurned:  w.CaloriesBurned,
		CompletedAt:     w.CompletedAt,
		CreatedAt:       now,
		Notes:           w.Notes,
	}, nil
}

func (s *fitnessService) CreateMeasurement(ctx context.Context, m models.NewMeasurement) (models.ProgressMeasurement, error) {
	sess, err := s.session()
	if err != nil {
		return models.ProgressMeasurement{}, err
	}

	now := s.opts.Now()
	m = m.Normalize(now)
	if err := m.Validate(now, s.opts.ClockSkew); err != nil {
		return models.ProgressMeasurement{}, err
	}

	created, err := s.remote.Insert(ctx, sess.RawToken, client.TableProgress, m.Row(sess.UserID))
	if err != nil {
		return models.ProgressMeasurement{}, fmt.Errorf("create measurement: %w", err)
	}
	if created != nil {
		if entry, err := models.MeasurementFromRow(created); err == nil {
			return entry, nil
		}
	}

	return models.ProgressMeasurement{
		UserID:       sess.UserID,
		Date:         m.Date,
		WeightKg:     m.WeightKg,
		BodyFatPct:   m.BodyFatPct,
		MuscleMassKg: m.MuscleMassKg,
		ChestCm:      m.ChestCm,
		WaistCm:      m.WaistCm,
		ArmsCm:       m.ArmsCm,
		ThighsCm:     m.ThighsCm,
		Notes:        m.Notes,
		CreatedAt:    now,
	}, nil
}

func (s *fitnessService) GetProfile(ctx context.Context) (models.Profile, error) {
	sess, err := s.session()
	if err != nil {
		return models.Profile{}, err
	}

	rows, err := s.remote.Select(ctx, sess.RawToken, client.Query{
		Table:   client.TableProfiles,
		Filters: map[string]string{"user_id": sess.UserID},
		Limit:   1,
	})
	if err != nil {
		return models.Profile{}, fmt.Errorf("get profile: %w", err)
	}

	profiles := decode(ctx, s.opts.Logger, client.TableProfiles, rows, models.ProfileFromRow)
	if len(profiles) == 0 {
		return models.Profile{}, ErrProfileNotFound
	}
	return profiles[0], nil
}

func (s *fitnessService) UpdateProfile(ctx context.Context, p models.ProfilePatch) (models.Profile, error) {
	sess, err := s.session()
	if err != nil {
		return models.Profile{}, err
	}
	if err := p.Validate(); err != nil {
		return models.Profile{}, err
	}

	rows, err := s.remote.Update(ctx, sess.RawToken, client.TableProfiles,
		map[string]string{"user_id": sess.UserID}, p.Row(s.opts.Now()))
	if err != nil {
		return models.Profile{}, fmt.Errorf("update profile: %w", err)
	}

	profiles := decode(ctx, s.opts.Logger, client.TableProfiles, rows, models.ProfileFromRow)
	if len(profiles) == 0 {
		return models.Profile{}, ErrProfileNotFound
	}
	return profiles[0], nil
}

func (s *fitnessService) ListWorkouts(ctx context.Context, userID string, limit int) ([]models.WorkoutEntry, error) {
	sess, userID, err := s.scope(userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.remote.Select(ctx, sess.RawToken, client.Query{
		Table:   client.TableWorkouts,
		Filters: map[string]string{"user_id": userID},
		OrderBy: "completed_at",
		Limit:   pick(limit, s.opts.ListLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return decode(ctx, s.opts.Logger, client.TableWorkouts, rows, models.WorkoutFromRow), nil
}

func (s *fitnessService) ListMeasurements(ctx context.Context, userID string, limit int) ([]models.ProgressMeasurement, error) {
	sess, userID, err := s.scope(userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.remote.Select(ctx, sess.RawToken, client.Query{
		Table:     client.TableProgress,
		Filters:   map[string]string{"user_id": userID},
		OrderBy:   "date",
		Ascending: true,
		Limit:     pick(limit, s.opts.ListLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	return decode(ctx, s.opts.Logger, client.TableProgress, rows, models.MeasurementFromRow), nil
}

func (s *fitnessService) ListAllProfiles(ctx context.Context) ([]models.Profile, error) {
	sess, err := s.session()
	if err != nil {
		return nil, err
	}

	rows, err := s.remote.Select(ctx, sess.RawToken, client.Query{
		Table:   client.TableProfiles,
		OrderBy: "created_at",
	})
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return decode(ctx, s.opts.Logger, client.TableProfiles, rows, models.ProfileFromRow), nil
}

func (s *fitnessService) ListAllWorkouts(ctx context.Context, limit int) ([]models.WorkoutEntry, error) {
	sess, err := s.session()
	if err != nil {
		return nil, err
	}

	rows, err := s.remote.Select(ctx, sess.RawToken, client.Query{
		Table:   client.TableWorkouts,
		OrderBy: "completed_at",
		Limit:   pick(limit, s.opts.AdminLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("list all workouts: %w", err)
	}
	return decode(ctx, s.opts.Logger, client.TableWorkouts, rows, models.WorkoutFromRow), nil
}

func (s *fitnessService) ListAllMeasurements(ctx context.Context, limit int) ([]models.ProgressMeasurement, error) {
	sess, err := s.session()
	if err != nil {
		return nil, err
	}

	rows, err := s.remote.Select(ctx, sess.RawToken, client.Query{
		Table:   client.TableProgress,
		OrderBy: "date",
		Limit:   pick(limit, s.opts.AdminLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("list all measurements: %w", err)
	}
	return decode(ctx, s.opts.Logger, client.TableProgress, rows, models.MeasurementFromRow), nil
}
