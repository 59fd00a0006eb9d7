package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/common"
)

// Session is the authenticated identity of the current process together
// with its raw access token.
type Session struct {
	UserID    string
	Email     string
	RawToken  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token is past its expiry at now. A session
// without a known expiry never expires locally.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// SignUpResult is returned by account creation. ConfirmationRequired means
// the account cannot sign in until the emailed link is followed.
type SignUpResult struct {
	UserID               string
	ConfirmationRequired bool
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < common.MinPasswordLength {
		return invalid("password", fmt.Sprintf("must be at least %d characters", common.MinPasswordLength))
	}
	return nil
}

// ValidateSignIn requires both credentials to be present.
func ValidateSignIn(email, password string) error {
	if email == "" {
		return invalid("email", "required")
	}
	if password == "" {
		return invalid("password", "required")
	}
	return nil
}

// ValidateSignUp checks a registration form: an email, a long enough
// password and a matching confirmation.
func ValidateSignUp(email, password, confirm string) error {
	if email == "" {
		return invalid("email", "required")
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if password != confirm {
		return invalid("confirm_password", "passwords do not match")
	}
	return nil
}
