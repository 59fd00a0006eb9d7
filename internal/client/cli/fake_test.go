package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/prefs"
	"github.com/dmitrijs2005/fittrack/internal/client/roles"
	"github.com/dmitrijs2005/fittrack/internal/client/services"
	"github.com/dmitrijs2005/fittrack/internal/client/session"
	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/logging"
)

func init() {
	color.NoColor = true
}

// capturePrint redirects printlnFn and returns the printed lines.
func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

// stubInputs answers prompts from texts and password prompts from secrets,
// in order. Running out yields io.EOF.
func stubInputs(t *testing.T, texts []string, secrets []string) {
	t.Helper()
	origText, origPass := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		if len(secrets) == 0 {
			return nil, io.EOF
		}
		s := secrets[0]
		secrets = secrets[1:]
		return []byte(s), nil
	}
	t.Cleanup(func() { getSimpleText, getPassword = origText, origPass })
}

type fakeSessions struct {
	ready    bool
	current  *models.Session
	recovery bool

	signInErr   error
	signUpRes   models.SignUpResult
	signUpErr   error
	resetErr    error
	completeErr error

	calls    []string
	email    string
	password string
	fullName string
	link     string
}

func (f *fakeSessions) Initialize(context.Context) error {
	f.ready = true
	return nil
}
func (f *fakeSessions) IsReady() bool { return f.ready }
func (f *fakeSessions) State() session.State {
	if f.current != nil {
		return session.StateAuthenticated
	}
	return session.StateAnonymous
}
func (f *fakeSessions) Current() (models.Session, bool) {
	if f.current == nil {
		return models.Session{}, false
	}
	return *f.current, true
}
func (f *fakeSessions) SignIn(_ context.Context, email, password string) (models.Session, error) {
	f.calls = append(f.calls, "signin")
	f.email, f.password = email, password
	if f.signInErr != nil {
		return models.Session{}, f.signInErr
	}
	f.current = &models.Session{UserID: "u-1", Email: email}
	return *f.current, nil
}
func (f *fakeSessions) SignUp(_ context.Context, fullName, email, password, confirm string) (models.SignUpResult, error) {
	f.calls = append(f.calls, "signup")
	f.fullName, f.email, f.password = fullName, email, password
	if err := models.ValidateSignUp(email, password, confirm); err != nil {
		return models.SignUpResult{}, err
	}
	return f.signUpRes, f.signUpErr
}
func (f *fakeSessions) SignOut(context.Context) error {
	f.calls = append(f.calls, "signout")
	f.current = nil
	return nil
}
func (f *fakeSessions) RequestPasswordReset(_ context.Context, email string) error {
	f.calls = append(f.calls, "forgot")
	f.email = email
	return f.resetErr
}
func (f *fakeSessions) OpenLink(rawURL string) (bool, error) {
	f.calls = append(f.calls, "openlink")
	f.link = rawURL
	f.recovery = strings.Contains(rawURL, "type=recovery")
	return f.recovery, nil
}
func (f *fakeSessions) InRecovery() bool { return f.recovery }
func (f *fakeSessions) CompletePasswordReset(_ context.Context, password string) error {
	f.calls = append(f.calls, "complete")
	f.password = password
	if !f.recovery {
		return common.ErrNoRecoveryContext
	}
	return f.completeErr
}

type fakeRoles struct {
	status   roles.Status
	admin    bool
	err      error
	resolves int
}

func (f *fakeRoles) Resolve(context.Context, string) (bool, error) {
	f.resolves++
	if f.err != nil {
		f.status = roles.Status{UserID: "u-1", Resolved: true, Failed: true, Role: models.RoleUser}
		return false, f.err
	}
	role := models.RoleUser
	if f.admin {
		role = models.RoleAdmin
	}
	f.status = roles.Status{UserID: "u-1", Resolved: true, Role: role}
	return f.admin, nil
}
func (f *fakeRoles) Snapshot() roles.Status { return f.status }
func (f *fakeRoles) IsAdmin() bool         { return f.status.IsAdmin() }

type fakeDashboard struct {
	snap     services.Snapshot
	overview services.AdminOverview
	err      error

	workouts     []models.NewWorkout
	measurements []models.NewMeasurement
}

func (f *fakeDashboard) Refresh(context.Context) (services.Snapshot, error) { return f.snap, f.err }
func (f *fakeDashboard) Current() (services.Snapshot, bool)               { return f.snap, true }
func (f *fakeDashboard) AddWorkout(_ context.Context, w models.NewWorkout) (services.Snapshot, error) {
	f.workouts = append(f.workouts, w)
	return f.snap, f.err
}
func (f *fakeDashboard) AddMeasurement(_ context.Context, m models.NewMeasurement) (services.Snapshot, error) {
	f.measurements = append(f.measurements, m)
	return f.snap, f.err
}
func (f *fakeDashboard) AdminOverview(context.Context) (services.AdminOverview, error) {
	return f.overview, f.err
}

type fakeFitness struct {
	services.FitnessService

	profile models.Profile
	patches []models.ProfilePatch
}

func (f *fakeFitness) GetProfile(context.Context) (models.Profile, error) { return f.profile, nil }
func (f *fakeFitness) UpdateProfile(_ context.Context, p models.ProfilePatch) (models.Profile, error) {
	f.patches = append(f.patches, p)
	if p.FullName != nil {
		f.profile.FullName = p.FullName
	}
	return f.profile, nil
}

type fakeTheme struct {
	theme prefs.Theme
}

func (f *fakeTheme) Theme() prefs.Theme { return f.theme }
func (f *fakeTheme) SetTheme(_ context.Context, t prefs.Theme) error {
	f.theme = t
	return nil
}

type fakeAvatars struct {
	filename string
	size     int64
	body     string
}

func (f *fakeAvatars) Upload(_ context.Context, filename string, body io.Reader, size int64) (models.Profile, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return models.Profile{}, err
	}
	f.filename, f.size, f.body = filename, size, string(b)
	return models.Profile{AvatarURL: models.String("http://cdn/avatars/u-1/x.png")}, nil
}

type testApp struct {
	*App
	sessions  *fakeSessions
	roles     *fakeRoles
	dashboard *fakeDashboard
	fitness   *fakeFitness
	theme     *fakeTheme
	out       *strings.Builder
}

func newTestApp() *testApp {
	ta := &testApp{
		sessions:  &fakeSessions{ready: true},
		roles:     &fakeRoles{},
		dashboard: &fakeDashboard{},
		fitness:   &fakeFitness{profile: models.Profile{CreatedAt: time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)}},
		theme:     &fakeTheme{theme: prefs.ThemeSystem},
		out:       &strings.Builder{},
	}
	ta.App = &App{
		log:       logging.Nop(),
		sessions:  ta.sessions,
		roles:     ta.roles,
		fitness:   ta.fitness,
		dashboard: ta.dashboard,
		prefs:     ta.theme,
		reader:    bufio.NewReader(strings.NewReader("")),
		out:       ta.out,
	}
	return ta
}

func (ta *testApp) signIn() {
	ta.sessions.current = &models.Session{UserID: "u-1", Email: "ann@example.com"}
}
