// Package local persists client state that must survive restarts: the
// current session token and small key/value settings.
package local

import (
	"context"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
)

// SessionRepository stores at most one session.
type SessionRepository interface {
	// Load returns the stored session; ok is false when none is stored.
	Load(ctx context.Context) (s models.Session, ok bool, err error)
	Save(ctx context.Context, s models.Session) error
	Clear(ctx context.Context) error
}

// SettingsRepository is a string key/value store.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
