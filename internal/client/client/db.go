package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/fittrack/internal/client/migrations"
	"github.com/dmitrijs2005/fittrack/internal/client/repositories/local"
	"github.com/dmitrijs2005/fittrack/internal/filex"
	"github.com/pressly/goose/v3"
)

// Repositories bundles the local stores opened over one SQLite database.
type Repositories struct {
	DB       *sql.DB
	Session  local.SessionRepository
	Settings local.SettingsRepository
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite database at dsn, creating its directory if
// needed, and applies pending migrations.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// A single connection keeps in-memory databases coherent and
	// serializes writers.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := local.NewSQLiteStore(db)
	return &Repositories{DB: db, Session: store, Settings: store}, nil
}
