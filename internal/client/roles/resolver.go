// Package roles answers whether the signed-in user is an administrator.
package roles

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/fittrack/internal/client/client"
	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/observability"
	"github.com/dmitrijs2005/fittrack/internal/client/session"
	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/logging"
)

// SessionSource exposes the active session.
type SessionSource interface {
	Current() (models.Session, bool)
}

// SessionNotifier is a SessionSource that reports transitions.
type SessionNotifier interface {
	SessionSource
	Subscribe(fn func(session.State)) (unsubscribe func())
}

// Status is a snapshot of the capability cache.
type Status struct {
	UserID   string
	Resolved bool
	Failed   bool
	Role     models.Role
}

// IsAdmin is false unless a check succeeded and granted the admin role.
func (s Status) IsAdmin() bool {
	return s.Resolved && !s.Failed && s.Role == models.RoleAdmin
}

type Resolver struct {
	remote   client.RemoteStore
	sessions SessionSource
	log      logging.Logger

	mu         sync.RWMutex
	generation uint64
	status     Status
	// token identifies the session the status belongs to.
	token string
}

func NewResolver(remote client.RemoteStore, sessions SessionSource, log logging.Logger) *Resolver {
	if log == nil {
		log = logging.Nop()
	}
	return &Resolver{remote: remote, sessions: sessions, log: log}
}

// Bind drops the cache whenever a session ends or a new one starts, even
// for the same user.
func (r *Resolver) Bind(n SessionNotifier) (unsubscribe func()) {
	return n.Subscribe(func(session.State) {
		s, _ := n.Current()
		r.mu.Lock()
		r.resetLocked(s)
		r.mu.Unlock()
	})
}

// resetLocked rebinds the cache to s unless it already belongs to it.
func (r *Resolver) resetLocked(s models.Session) {
	if s.UserID != "" && r.status.UserID == s.UserID && r.token == s.RawToken {
		return
	}
	r.generation++
	r.status = Status{UserID: s.UserID}
	r.token = s.RawToken
}

func (r *Resolver) Snapshot() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

func (r *Resolver) IsAdmin() bool {
	return r.Snapshot().IsAdmin()
}

// Resolve checks the administrator capability of the session user. An
// empty userID means the session user; any other user is rejected. A
// successful answer is cached for the session, keyed by its token; a
// failed check is not, so a later call retries it.
func (r *Resolver) Resolve(ctx context.Context, userID string) (bool, error) {
	s, ok := r.sessions.Current()
	if !ok {
		return false, common.ErrNotAuthenticated
	}
	if userID == "" {
		userID = s.UserID
	}
	if userID != s.UserID {
		return false, &models.ValidationError{Field: "user_id", Reason: "not the signed-in user"}
	}

	r.mu.Lock()
	// The session may have ended or changed since it was read above.
	s, ok = r.sessions.Current()
	if !ok || s.UserID != userID {
		r.mu.Unlock()
		return false, common.ErrNotAuthenticated
	}
	r.resetLocked(s)
	if r.status.Resolved && !r.status.Failed {
		admin := r.status.IsAdmin()
		r.mu.Unlock()
		return admin, nil
	}
	gen := r.generation
	r.mu.Unlock()

	admin, err := r.remote.HasRole(ctx, s.RawToken, models.RoleAdmin, userID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.generation {
		r.log.Debug(ctx, "discarding stale role check", "user_id", userID)
		return false, nil
	}

	if err != nil {
		observability.RecordRoleResolution("error")
		r.status = Status{UserID: userID, Resolved: true, Failed: true, Role: models.RoleUser}
		r.log.Warn(ctx, "role check failed", "user_id", userID, "error", err)
		return false, fmt.Errorf("%w: %w", common.ErrCapabilityCheckFailed, err)
	}

	role := models.RoleUser
	if admin {
		role = models.RoleAdmin
	}
	observability.RecordRoleResolution(string(role))
	r.status = Status{UserID: userID, Resolved: true, Role: role}
	return admin, nil
}
