// Package guard decides whether a view may be shown for the current
// session and role state, or where to send the user instead.
package guard

import "sync"

// View identifies a screen of the client.
type View string

const (
	ViewHome           View = "home"
	ViewSignIn         View = "sign-in"
	ViewRegister       View = "register"
	ViewForgotPassword View = "forgot-password"
	ViewResetPassword  View = "reset-password"
	ViewDashboard      View = "dashboard"
	ViewProfile        View = "profile"
	ViewAdmin          View = "admin"
)

// Access is the protection level of a view.
type Access int

const (
	Public Access = iota
	Protected
	Administrative
)

// AccessOf classifies v. Unknown views are public.
func AccessOf(v View) Access {
	switch v {
	case ViewDashboard, ViewProfile:
		return Protected
	case ViewAdmin:
		return Administrative
	default:
		return Public
	}
}

// Snapshot is the state a decision is made on.
type Snapshot struct {
	// Ready is false until the initial session has been resolved.
	Ready         bool
	Authenticated bool
	RoleResolved  bool
	Admin         bool
}

type Outcome int

const (
	Pending Outcome = iota
	Allow
	Redirect
	// Blocked means the redirect for this state was already issued: the view
	// stays closed but the caller must not navigate again.
	Blocked
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	case Blocked:
		return "blocked"
	default:
		return "pending"
	}
}

// Decision is the result of evaluating a view. Target is set for redirects.
type Decision struct {
	Outcome Outcome
	Target  View
}

// Evaluate is the pure decision table.
func Evaluate(v View, s Snapshot) Decision {
	if !s.Ready {
		return Decision{Outcome: Pending}
	}
	switch AccessOf(v) {
	case Protected:
		if !s.Authenticated {
			return Decision{Outcome: Redirect, Target: ViewSignIn}
		}
	case Administrative:
		if !s.Authenticated {
			return Decision{Outcome: Redirect, Target: ViewHome}
		}
		if !s.RoleResolved {
			return Decision{Outcome: Pending}
		}
		if !s.Admin {
			return Decision{Outcome: Redirect, Target: ViewHome}
		}
	}
	return Decision{Outcome: Allow}
}

type observation struct {
	view View
	snap Snapshot
}

// Guard wraps Evaluate for callers that re-check a view on every state
// change. A redirect is issued once per (view, snapshot) pair; repeating
// the same observation yields Blocked so navigation cannot loop.
type Guard struct {
	mu   sync.Mutex
	last *observation
}

func (g *Guard) Observe(v View, s Snapshot) Decision {
	d := Evaluate(v, s)

	g.mu.Lock()
	defer g.mu.Unlock()

	obs := observation{view: v, snap: s}
	if d.Outcome == Redirect && g.last != nil && *g.last == obs {
		return Decision{Outcome: Blocked, Target: d.Target}
	}
	if d.Outcome == Redirect {
		g.last = &obs
	} else {
		g.last = nil
	}
	return d
}
