// Package prefs keeps user interface preferences in the local database.
package prefs

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/repositories/local"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

const themeKey = "theme"

func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return t, nil
	}
	return "", &models.ValidationError{Field: "theme", Reason: "expected light, dark or system"}
}

// Store caches the theme and tells subscribers about changes.
type Store struct {
	repo local.SettingsRepository

	mu    sync.RWMutex
	theme Theme
	subs  []func(Theme)
}

func NewStore(repo local.SettingsRepository) *Store {
	return &Store{repo: repo, theme: ThemeSystem}
}

// Load reads the stored theme. Missing or unknown values leave the default.
func (s *Store) Load(ctx context.Context) error {
	v, ok, err := s.repo.Get(ctx, themeKey)
	if err != nil {
		return fmt.Errorf("failed to load theme: %w", err)
	}
	if !ok {
		return nil
	}
	if t, err := ParseTheme(v); err == nil {
		s.mu.Lock()
		s.theme = t
		s.mu.Unlock()
	}
	return nil
}

func (s *Store) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

func (s *Store) SetTheme(ctx context.Context, t Theme) error {
	t, err := ParseTheme(string(t))
	if err != nil {
		return err
	}
	if err := s.repo.Set(ctx, themeKey, string(t)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}

	s.mu.Lock()
	s.theme = t
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(t)
	}
	return nil
}

func (s *Store) Subscribe(fn func(Theme)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}
