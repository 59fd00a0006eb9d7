package local

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/dbx"
)

// LastEmailKey is the setting that remembers the most recent sign-in email.
const LastEmailKey = "last_email"

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromUnix(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(v, 0).UTC()
}

func (r *SQLiteStore) Load(ctx context.Context) (models.Session, bool, error) {
	var (
		s                  models.Session
		issued, expiration int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT token, user_id, email, issued_at, expires_at FROM session WHERE id = 1`,
	).Scan(&s.RawToken, &s.UserID, &s.Email, &issued, &expiration)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, false, nil
	}
	if err != nil {
		return models.Session{}, false, fmt.Errorf("failed to load session: %w", err)
	}
	s.IssuedAt = fromUnix(issued)
	s.ExpiresAt = fromUnix(expiration)
	return s, true, nil
}

// Save replaces the stored session and records its email under
// LastEmailKey in the same transaction.
func (r *SQLiteStore) Save(ctx context.Context, s models.Session) error {
	err := dbx.WithTx(ctx, r.db, func(tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO session (id, token, user_id, email, issued_at, expires_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			user_id = excluded.user_id,
			email = excluded.email,
			issued_at = excluded.issued_at,
			expires_at = excluded.expires_at
	`, s.RawToken, s.UserID, s.Email, toUnix(s.IssuedAt), toUnix(s.ExpiresAt)); err != nil {
			return err
		}
		return upsertSetting(ctx, tx, LastEmailKey, s.Email)
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (r *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, true, nil
}

func upsertSetting(ctx context.Context, db dbx.DBTX, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func (r *SQLiteStore) Set(ctx context.Context, key, value string) error {
	if err := upsertSetting(ctx, r.db, key, value); err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}
