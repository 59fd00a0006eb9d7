package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/fittrack/internal/client/guard"
)

// execIface is the command surface the REPL drives. App satisfies it; tests
// provide a stub.
type execIface interface {
	isLoggedIn() bool
	authorize(ctx context.Context, view guard.View) bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	OpenLink(ctx context.Context, rawURL string) error
	ResetPassword(ctx context.Context) error

	Dashboard(ctx context.Context) error
	AddWorkout(ctx context.Context) error
	AddProgress(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Avatar(ctx context.Context, path string) error
	Admin(ctx context.Context) error
	Theme(ctx context.Context, value string) error
}

// commandViews maps commands to the view they open. Commands without an
// entry are not guarded.
var commandViews = map[string]guard.View{
	"register":    guard.ViewRegister,
	"login":       guard.ViewSignIn,
	"forgot":      guard.ViewForgotPassword,
	"reset":       guard.ViewResetPassword,
	"dashboard":   guard.ViewDashboard,
	"d":           guard.ViewDashboard,
	"addworkout":  guard.ViewDashboard,
	"addprogress": guard.ViewDashboard,
	"profile":     guard.ViewProfile,
	"editprofile": guard.ViewProfile,
	"avatar":      guard.ViewProfile,
	"admin":       guard.ViewAdmin,
}

const (
	helpAnonymous = "Available commands: register, login, forgot, openlink <url>, reset, theme [light|dark|system], exit"
	helpSignedIn  = "Available commands: (d)ashboard, addworkout, addprogress, profile, editprofile, avatar <file>, admin, theme [light|dark|system], logout, exit"
)

// runREPL reads commands from reader until EOF, "exit" or "quit".
//
// The prompt shows statusFn. Each command that opens a view is passed
// through authorize first; handler errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("fittrack [%s] > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if view, ok := commandViews[cmd]; ok && !a.authorize(ctx, view) {
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "forgot":
			cmdErr = a.ForgotPassword(ctx)

		case "openlink":
			if len(args) != 1 {
				printlnFn("Usage: openlink <url>")
				continue
			}
			cmdErr = a.OpenLink(ctx, args[0])

		case "reset":
			cmdErr = a.ResetPassword(ctx)

		case "d", "dashboard":
			cmdErr = a.Dashboard(ctx)

		case "addworkout":
			cmdErr = a.AddWorkout(ctx)

		case "addprogress":
			cmdErr = a.AddProgress(ctx)

		case "profile":
			cmdErr = a.Profile(ctx)

		case "editprofile":
			cmdErr = a.EditProfile(ctx)

		case "avatar":
			if len(args) != 1 {
				printlnFn("Usage: avatar <file>")
				continue
			}
			cmdErr = a.Avatar(ctx, args[0])

		case "admin":
			cmdErr = a.Admin(ctx)

		case "theme":
			value := ""
			if len(args) > 0 {
				value = args[0]
			}
			cmdErr = a.Theme(ctx, value)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			failure(cmdErr)
		}

		if err != nil {
			return
		}
	}
}
