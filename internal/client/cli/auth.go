package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/repositories/local"
)

// Register prompts for the account details and creates the account. The
// user is not signed in afterwards.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := readSecret("Password", a.out)
	if err != nil {
		return err
	}
	confirm, err := readSecret("Confirm password", a.out)
	if err != nil {
		return err
	}

	res, err := a.sessions.SignUp(ctx, name, email, password, confirm)
	if err != nil {
		return err
	}
	if res.ConfirmationRequired {
		notice("Account created. Check your email to confirm it, then type 'login'.")
	} else {
		notice("Account created. Type 'login' to sign in.")
	}
	return nil
}

// Login offers the last signed-in email as the default answer.
func (a *App) Login(ctx context.Context) error {
	last := a.lastEmail(ctx)
	prompt := "Email"
	if last != "" {
		prompt += " [" + last + "]"
	}
	email, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	if email == "" {
		email = last
	}
	password, err := readSecret("Password", a.out)
	if err != nil {
		return err
	}

	s, err := a.sessions.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	notice(fmt.Sprintf("Signed in as %s", s.Email))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("You are not signed in.")
		return nil
	}
	if err := a.sessions.SignOut(ctx); err != nil {
		return err
	}
	notice("Signed out.")
	return nil
}

// ForgotPassword requests a recovery email.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	if err := a.sessions.RequestPasswordReset(ctx, email); err != nil {
		return err
	}
	notice("If the address is registered, a reset link is on its way.")
	return nil
}

// OpenLink hands a link from an email to the session manager.
func (a *App) OpenLink(_ context.Context, rawURL string) error {
	recovery, err := a.sessions.OpenLink(rawURL)
	if err != nil {
		return err
	}
	if recovery {
		notice("Reset link accepted. Type 'reset' to choose a new password.")
	} else {
		printlnFn("The link does not contain a password reset.")
	}
	return nil
}

// ResetPassword completes recovery. Without an opened link it asks for one.
func (a *App) ResetPassword(ctx context.Context) error {
	if !a.sessions.InRecovery() {
		link, err := getSimpleText(a.reader, "Paste the reset link from your email", a.out)
		if err != nil {
			return err
		}
		if _, err := a.sessions.OpenLink(link); err != nil {
			return err
		}
	}

	password, err := readSecret("New password", a.out)
	if err != nil {
		return err
	}
	confirm, err := readSecret("Confirm new password", a.out)
	if err != nil {
		return err
	}
	if password != confirm {
		return &models.ValidationError{Field: "confirm_password", Reason: "passwords do not match"}
	}

	if err := a.sessions.CompletePasswordReset(ctx, password); err != nil {
		return err
	}
	notice("Password updated. Type 'login' to sign in.")
	return nil
}

func (a *App) lastEmail(ctx context.Context) string {
	if a.settings == nil {
		return ""
	}
	v, _, err := a.settings.Get(ctx, local.LastEmailKey)
	if err != nil {
		a.log.Debug(ctx, "last email unavailable", "error", err)
	}
	return v
}
