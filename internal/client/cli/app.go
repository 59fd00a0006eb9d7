package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/fittrack/internal/client/client"
	"github.com/dmitrijs2005/fittrack/internal/client/config"
	"github.com/dmitrijs2005/fittrack/internal/client/guard"
	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/observability"
	"github.com/dmitrijs2005/fittrack/internal/client/prefs"
	"github.com/dmitrijs2005/fittrack/internal/client/repositories/local"
	"github.com/dmitrijs2005/fittrack/internal/client/roles"
	"github.com/dmitrijs2005/fittrack/internal/client/services"
	"github.com/dmitrijs2005/fittrack/internal/client/session"
	"github.com/dmitrijs2005/fittrack/internal/logging"

	_ "modernc.org/sqlite"
)

// sessionManager is the part of session.Manager the CLI drives.
type sessionManager interface {
	Initialize(ctx context.Context) error
	IsReady() bool
	State() session.State
	Current() (models.Session, bool)
	SignIn(ctx context.Context, email, password string) (models.Session, error)
	SignUp(ctx context.Context, fullName, email, password, confirm string) (models.SignUpResult, error)
	SignOut(ctx context.Context) error
	RequestPasswordReset(ctx context.Context, email string) error
	OpenLink(rawURL string) (bool, error)
	InRecovery() bool
	CompletePasswordReset(ctx context.Context, newPassword string) error
}

type roleResolver interface {
	Resolve(ctx context.Context, userID string) (bool, error)
	Snapshot() roles.Status
	IsAdmin() bool
}

type themeStore interface {
	Theme() prefs.Theme
	SetTheme(ctx context.Context, t prefs.Theme) error
}

type App struct {
	config    *config.Config
	log       logging.Logger
	closers   []io.Closer
	sessions  sessionManager
	roles     roleResolver
	fitness   services.FitnessService
	dashboard services.DashboardService
	avatars   services.AvatarService
	prefs     themeStore
	settings  local.SettingsRepository
	guard     guard.Guard
	reader    *bufio.Reader
	out       io.Writer
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repos, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	remote, err := client.NewGRPCClient(client.Options{
		Endpoint: c.RemoteStoreAddr,
		APIKey:   c.APIKey,
		Timeout:  c.RequestTimeout,
		TLS:      c.RemoteStoreTLS,
	})
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	mgr := session.NewManager(remote, repos.Session,
		session.WithLogger(log.With("component", "session")),
		session.WithResetRedirect(c.ResetRedirectURL))

	resolver := roles.NewResolver(remote, mgr, log.With("component", "roles"))
	resolver.Bind(mgr)

	fitness := services.NewFitnessService(remote, mgr, services.FitnessOptions{
		ListLimit:  c.DefaultListLimit,
		AdminLimit: c.AdminListLimit,
		ClockSkew:  c.ClockSkew,
		Logger:     log.With("component", "fitness"),
	})

	theme := prefs.NewStore(repos.Settings)
	if err := theme.Load(ctx); err != nil {
		log.Warn(ctx, "could not load preferences", "error", err)
	}
	applyTheme(theme.Theme())
	theme.Subscribe(applyTheme)

	app := &App{
		config:    c,
		log:       log,
		closers:   []io.Closer{remote, repos},
		sessions:  mgr,
		roles:     resolver,
		fitness:   fitness,
		dashboard: services.NewDashboardService(fitness, mgr, resolver),
		prefs:     theme,
		settings:  repos.Settings,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}

	if c.S3Endpoint != "" {
		opts := services.S3Options{
			Endpoint:      c.S3Endpoint,
			Region:        c.S3Region,
			Bucket:        c.S3Bucket,
			AccessKey:     c.S3AccessKey,
			SecretKey:     c.S3SecretKey,
			PublicBaseURL: c.AvatarBaseURL,
		}
		s3c, err := services.NewS3Client(ctx, opts)
		if err != nil {
			log.Warn(ctx, "avatar storage disabled", "error", err)
		} else {
			app.avatars = services.NewAvatarService(s3c, fitness, mgr, opts)
		}
	}

	return app, nil
}

func (a *App) Close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
}

// Run restores the session, starts the optional metrics endpoint and
// blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if a.config.MetricsAddr != "" {
		go func() {
			if err := observability.Serve(ctx, a.config.MetricsAddr); err != nil {
				a.log.Error(ctx, "metrics endpoint stopped", "error", err)
			}
		}()
	}

	if err := a.sessions.Initialize(ctx); err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
	}

	printlnFn("Welcome to fittrack (type 'help' for commands)")
	if s, ok := a.sessions.Current(); ok {
		notice(fmt.Sprintf("Welcome back, %s", s.Email))
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.sessions.Current()
	return ok
}

func (a *App) status() string {
	s, ok := a.sessions.Current()
	if !ok {
		return "anonymous"
	}
	parts := []string{s.Email}
	if a.roles.IsAdmin() {
		parts = append(parts, "admin")
	}
	return strings.Join(parts, " ")
}

func (a *App) snapshot() guard.Snapshot {
	rs := a.roles.Snapshot()
	s, ok := a.sessions.Current()
	return guard.Snapshot{
		Ready:         a.sessions.IsReady(),
		Authenticated: ok,
		RoleResolved:  ok && rs.UserID == s.UserID && rs.Resolved,
		Admin:         ok && rs.UserID == s.UserID && rs.IsAdmin(),
	}
}

// authorize runs the guard for view. The admin view resolves the role
// first, retrying a failed check, so the decision is not left pending.
func (a *App) authorize(ctx context.Context, view guard.View) bool {
	if guard.AccessOf(view) == guard.Administrative && a.isLoggedIn() &&
		(!a.snapshot().RoleResolved || a.roles.Snapshot().Failed) {
		if _, err := a.roles.Resolve(ctx, ""); err != nil {
			a.log.Warn(ctx, "role check failed", "error", err)
		}
	}

	d := a.guard.Observe(view, a.snapshot())
	switch d.Outcome {
	case guard.Allow:
		return true
	case guard.Redirect:
		switch d.Target {
		case guard.ViewSignIn:
			warning("Please sign in first (type 'login').")
		default:
			warning("That page is not available to you.")
		}
	case guard.Blocked:
		// already redirected for this state
		warning("Still not available.")
	default:
		warning("Still loading, try again in a moment.")
	}
	return false
}
