// Package session owns the client's authentication lifecycle: restoring a
// stored token at start-up, password sign-in and sign-up, sign-out and the
// password recovery flow.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/client/client"
	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/observability"
	"github.com/dmitrijs2005/fittrack/internal/client/repositories/local"
	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/logging"
)

// DefaultResetRedirect is where password recovery emails point to.
const DefaultResetRedirect = "fittrack://reset-password"

// Manager is the single owner of the current session. Transitions are
// serialized: a transition requested while another is running fails with
// common.ErrOperationInProgress instead of queueing.
type Manager struct {
	remote        client.RemoteStore
	store         local.SessionRepository
	log           logging.Logger
	now           func() time.Time
	resetRedirect string

	transition sync.Mutex

	mu       sync.RWMutex
	state    State
	current  *models.Session
	recovery string
	subs     map[int]func(State)
	nextSub  int

	readyOnce sync.Once
	ready     chan struct{}
}

type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithResetRedirect(target string) Option {
	return func(m *Manager) {
		if target != "" {
			m.resetRedirect = target
		}
	}
}

func NewManager(remote client.RemoteStore, store local.SessionRepository, opts ...Option) *Manager {
	m := &Manager{
		remote:        remote,
		store:         store,
		log:           logging.Nop(),
		now:           time.Now,
		resetRedirect: DefaultResetRedirect,
		subs:          make(map[int]func(State)),
		ready:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Ready is closed once the initial session has been resolved.
func (m *Manager) Ready() <-chan struct{} {
	return m.ready
}

// WaitReady blocks until Ready is closed or ctx is done.
func (m *Manager) WaitReady(ctx context.Context) error {
	select {
	case <-m.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsReady reports whether the initial session has been resolved.
func (m *Manager) IsReady() bool {
	select {
	case <-m.ready:
		return true
	default:
		return false
	}
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Current returns a copy of the active session.
func (m *Manager) Current() (models.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return models.Session{}, false
	}
	return *m.current, true
}

// Subscribe registers fn for state changes. fn runs synchronously on the
// goroutine performing the transition.
func (m *Manager) Subscribe(fn func(State)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Manager) begin() error {
	if !m.transition.TryLock() {
		return common.ErrOperationInProgress
	}
	return nil
}

func (m *Manager) end() {
	m.transition.Unlock()
}

// set swaps the in-memory session and notifies subscribers.
func (m *Manager) set(state State, s *models.Session) {
	m.mu.Lock()
	m.state = state
	m.current = s
	subs := make([]func(State), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	observability.RecordSessionTransition(state.String())
	for _, fn := range subs {
		fn(state)
	}
}

func (m *Manager) markReady() {
	m.readyOnce.Do(func() { close(m.ready) })
}

func (m *Manager) clearStored(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Error(ctx, "failed to clear stored session", "error", err)
	}
}

// Initialize restores a stored session. It always leaves the manager
// resolved; calling it again is a no-op.
func (m *Manager) Initialize(ctx context.Context) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	if m.IsReady() {
		return nil
	}
	defer m.markReady()

	stored, ok, err := m.store.Load(ctx)
	if err != nil {
		m.set(StateAnonymous, nil)
		return fmt.Errorf("failed to restore session: %w", err)
	}
	if !ok || stored.RawToken == "" {
		m.set(StateAnonymous, nil)
		return nil
	}

	s, err := tokenClaims(stored.RawToken)
	if err != nil {
		m.log.Warn(ctx, "discarding unreadable stored token", "error", err)
		m.clearStored(ctx)
		m.set(StateAnonymous, nil)
		return nil
	}
	if s.Email == "" {
		s.Email = stored.Email
	}
	if s.ExpiresAt.IsZero() {
		s.ExpiresAt = stored.ExpiresAt
	}
	if s.Expired(m.now()) {
		m.log.Info(ctx, "stored session expired", "user_id", s.UserID)
		m.clearStored(ctx)
		m.set(StateAnonymous, nil)
		return nil
	}

	user, err := m.remote.GetUser(ctx, s.RawToken)
	switch {
	case err == nil:
		if user.ID != s.UserID {
			m.log.Warn(ctx, "stored token belongs to another user", "user_id", s.UserID)
			m.clearStored(ctx)
			m.set(StateAnonymous, nil)
			return nil
		}
		if user.Email != "" {
			s.Email = user.Email
		}
	case errors.Is(err, client.ErrUnauthorized):
		m.log.Info(ctx, "stored session rejected", "user_id", s.UserID)
		m.clearStored(ctx)
		m.set(StateAnonymous, nil)
		return nil
	default:
		m.log.Warn(ctx, "could not verify stored session, continuing offline", "user_id", s.UserID, "error", err)
	}

	m.set(StateAuthenticated, &s)
	return nil
}

// SignIn authenticates with email and password. A session that is already
// active is replaced only once the new credentials have been accepted.
func (m *Manager) SignIn(ctx context.Context, email, password string) (models.Session, error) {
	if err := m.begin(); err != nil {
		return models.Session{}, err
	}
	defer m.end()

	email = common.NormalizeEmail(email)
	if err := models.ValidateSignIn(email, password); err != nil {
		return models.Session{}, err
	}

	res, err := m.remote.SignIn(ctx, email, password)
	if err != nil {
		return models.Session{}, err
	}

	s := models.Session{
		UserID:    res.UserID,
		Email:     res.Email,
		RawToken:  res.AccessToken,
		IssuedAt:  res.IssuedAt,
		ExpiresAt: res.ExpiresAt,
	}
	if s.Email == "" {
		s.Email = email
	}
	if s.ExpiresAt.IsZero() {
		if c, err := tokenClaims(s.RawToken); err == nil {
			s.ExpiresAt = c.ExpiresAt
		}
	}

	if prev, ok := m.Current(); ok && prev.RawToken != s.RawToken {
		if err := m.remote.SignOut(ctx, prev.RawToken); err != nil {
			m.log.Warn(ctx, "failed to revoke previous session", "user_id", prev.UserID, "error", err)
		}
	}

	if err := m.store.Save(ctx, s); err != nil {
		m.log.Error(ctx, "failed to persist session", "error", err)
	}

	m.set(StateAuthenticated, &s)
	m.markReady()
	m.log.Info(ctx, "signed in", "user_id", s.UserID)
	return s, nil
}

// SignUp creates an account. The manager stays anonymous: the account
// usually needs its email confirmed before it can sign in.
func (m *Manager) SignUp(ctx context.Context, fullName, email, password, confirm string) (models.SignUpResult, error) {
	if err := m.begin(); err != nil {
		return models.SignUpResult{}, err
	}
	defer m.end()

	email = common.NormalizeEmail(email)
	if err := models.ValidateSignUp(email, password, confirm); err != nil {
		return models.SignUpResult{}, err
	}

	res, err := m.remote.SignUp(ctx, email, password, fullName)
	if err != nil {
		return models.SignUpResult{}, err
	}

	if m.State() == StateUninitialized {
		m.set(StateAnonymous, nil)
		m.markReady()
	}
	m.log.Info(ctx, "account created", "user_id", res.UserID, "confirmation_required", res.ConfirmationRequired)
	return res, nil
}

// SignOut ends the session. Remote revocation is best effort; local state
// is always cleared and subscribers have been told before it returns.
func (m *Manager) SignOut(ctx context.Context) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	prev, ok := m.Current()
	if ok {
		if err := m.remote.SignOut(ctx, prev.RawToken); err != nil {
			m.log.Warn(ctx, "remote sign-out failed", "user_id", prev.UserID, "error", err)
		}
	}
	m.clearStored(ctx)

	m.set(StateAnonymous, nil)
	m.markReady()
	return nil
}

// RequestPasswordReset asks the store to email a recovery link.
func (m *Manager) RequestPasswordReset(ctx context.Context, email string) error {
	email = common.NormalizeEmail(email)
	if email == "" {
		return &models.ValidationError{Field: "email", Reason: "required"}
	}
	return m.remote.ResetPasswordForEmail(ctx, email, m.resetRedirect)
}

// OpenLink records a navigation link. Each link replaces the previous
// navigation context: a password recovery link becomes the recovery context
// used by CompletePasswordReset, any other link clears it. It reports
// whether the new context is a recovery one.
func (m *Manager) OpenLink(rawURL string) (bool, error) {
	token, ok, err := recoveryToken(rawURL)
	if err != nil || !ok {
		token = ""
	}

	m.mu.Lock()
	m.recovery = token
	m.mu.Unlock()
	return token != "", err
}

// InRecovery reports whether the current navigation is a recovery link.
func (m *Manager) InRecovery() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.recovery != ""
}

// CompletePasswordReset sets a new password using the recovery context.
func (m *Manager) CompletePasswordReset(ctx context.Context, newPassword string) error {
	m.mu.RLock()
	token := m.recovery
	m.mu.RUnlock()

	if token == "" {
		return common.ErrNoRecoveryContext
	}
	if err := models.ValidatePassword(newPassword); err != nil {
		return err
	}

	if err := m.remote.UpdatePassword(ctx, token, newPassword); err != nil {
		return err
	}

	m.mu.Lock()
	if m.recovery == token {
		m.recovery = ""
	}
	m.mu.Unlock()
	return nil
}
