package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/prefs"
	"github.com/dmitrijs2005/fittrack/internal/common"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

var (
	successStyle = color.New(color.FgGreen)
	warningStyle = color.New(color.FgYellow)
	failureStyle = color.New(color.FgRed, color.Bold)
)

func notice(msg string) {
	printlnFn(successStyle.Sprint(msg))
}

func warning(msg string) {
	printlnFn(warningStyle.Sprint(msg))
}

func failure(err error) {
	printlnFn(failureStyle.Sprint(describe(err)))
}

// describe turns err into the line shown to the user. Remote messages are
// shown as received.
func describe(err error) string {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, common.ErrOperationInProgress):
		return "Another request is still running, please wait."
	case errors.Is(err, common.ErrNotAuthenticated):
		return "You are signed out. Type 'login' to sign in."
	case errors.Is(err, common.ErrNotAuthorized):
		return "Administrator access required."
	case errors.Is(err, common.ErrNoRecoveryContext):
		return "Open the reset link from your email first."
	default:
		return "Error: " + err.Error()
	}
}

// applyTheme picks the notice palette. Dark terminals get the bright
// variants.
func applyTheme(t prefs.Theme) {
	switch t {
	case prefs.ThemeDark:
		successStyle = color.New(color.FgHiGreen)
		warningStyle = color.New(color.FgHiYellow)
		failureStyle = color.New(color.FgHiRed, color.Bold)
	default:
		successStyle = color.New(color.FgGreen)
		warningStyle = color.New(color.FgYellow)
		failureStyle = color.New(color.FgRed, color.Bold)
	}
}
