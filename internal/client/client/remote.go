package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
)

// Remote tables and procedures.
const (
	TableProfiles  = "profiles"
	TableWorkouts  = "workouts"
	TableProgress  = "progress"
	TableUserRoles = "user_roles"

	ProcHasRole = "has_role"
)

// AuthResult is what the store returns for a successful sign-in.
type AuthResult struct {
	AccessToken string
	UserID      string
	Email       string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// User is the identity bound to a token.
type User struct {
	ID    string
	Email string
}

// Query selects rows from one table. Filters are column equality tests.
// A zero Limit means no limit.
type Query struct {
	Table     string
	Filters   map[string]string
	OrderBy   string
	Ascending bool
	Limit     int
}

// RemoteStore is the contract with the hosted backend: identity operations,
// row access on the fitness tables and the role procedure. Calls that act
// on behalf of a user take the raw access token explicitly.
type RemoteStore interface {
	Close() error

	SignIn(ctx context.Context, email, password string) (AuthResult, error)
	SignUp(ctx context.Context, email, password, fullName string) (models.SignUpResult, error)
	SignOut(ctx context.Context, token string) error
	GetUser(ctx context.Context, token string) (User, error)
	ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error
	UpdatePassword(ctx context.Context, token, password string) error

	Select(ctx context.Context, token string, q Query) ([]models.Row, error)
	Insert(ctx context.Context, token, table string, row models.Row) (models.Row, error)
	Update(ctx context.Context, token, table string, filters map[string]string, patch models.Row) ([]models.Row, error)

	HasRole(ctx context.Context, token string, role models.Role, userID string) (bool, error)
}
