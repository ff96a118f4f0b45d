// Package guard decides whether a navigation may proceed. The same decision runs at
// the edge, where only the access-token cookie is visible, and in the client, where
// the hydrated auth state is; both must agree.
package guard

import (
	"net/url"
	"strings"

	"github.com/charlesng35/assetdesk/internal/state"
	"github.com/charlesng35/assetdesk/pkg/metrics"
)

// Access classifies a route.
type Access int

const (
	Protected Access = iota
	Public
	// GuestOnly routes (login, register) bounce signed-in users to the home page.
	GuestOnly
)

// Action is the outcome of a guard decision.
type Action string

const (
	Allow         Action = "allow"
	RedirectLogin Action = "login"
	RedirectHome  Action = "home"
	Loading       Action = "loading"
)

// RedirectParam carries the intended destination through the login page.
const RedirectParam = "redirect"

// Decision is what the caller must do. Location is set for redirects.
type Decision struct {
	Action   Action
	Location string
}

// Routes describes the dashboard's route table.
type Routes struct {
	LoginPath string
	HomePath  string
	// Prefixes that never require a session.
	Public []string
	// Exact paths only reachable without a session.
	GuestOnly []string
}

// DefaultRoutes is the dashboard layout.
func DefaultRoutes() Routes {
	return Routes{
		LoginPath: "/login",
		HomePath:  "/dashboard",
		Public:    []string{"/forgot-password", "/reset-password", "/healthz", "/readyz", "/metrics", "/static/", "/favicon.ico"},
		GuestOnly: []string{"/login", "/register"},
	}
}

// Classify returns the access class of path.
func (r Routes) Classify(path string) Access {
	path = cleanPath(path)
	for _, p := range r.GuestOnly {
		if path == p {
			return GuestOnly
		}
	}
	for _, p := range r.Public {
		if path == strings.TrimSuffix(p, "/") || strings.HasPrefix(path, p) {
			return Public
		}
	}
	return Protected
}

// Decide is the edge decision: hasSession is the presence of the access-token cookie.
// target is the request path with its query, preserved through the login redirect.
func (r Routes) Decide(target string, hasSession bool) Decision {
	d := r.decide(target, hasSession)
	metrics.RouteDecisions.WithLabelValues("edge", string(d.Action)).Inc()
	return d
}

// DecideClient is the in-app decision. Until the auth slice is hydrated any route
// that depends on the session shows a loading state instead of redirecting.
func (r Routes) DecideClient(target string, auth state.AuthSnapshot) Decision {
	var d Decision
	if !auth.Hydrated && r.Classify(pathOf(target)) != Public {
		d = Decision{Action: Loading}
	} else {
		d = r.decide(target, auth.IsAuthenticated)
	}
	metrics.RouteDecisions.WithLabelValues("client", string(d.Action)).Inc()
	return d
}

// ForState runs DecideClient against the application's auth slice.
func (r Routes) ForState(app *state.AppState, target string) Decision {
	var snap state.AuthSnapshot
	if app != nil && app.Auth != nil {
		snap = app.Auth.Snapshot()
	}
	return r.DecideClient(target, snap)
}

// LoginLocation builds the login URL that returns to target after sign-in.
func (r Routes) LoginLocation(target string) string {
	if target == "" || target == "/" {
		return r.LoginPath
	}
	return r.LoginPath + "?" + RedirectParam + "=" + url.QueryEscape(target)
}

// AfterLogin resolves where to go once signed in. Only same-site relative paths
// are honoured; anything else goes home.
func (r Routes) AfterLogin(redirect string) string {
	redirect = strings.TrimSpace(redirect)
	if redirect == "" || !strings.HasPrefix(redirect, "/") || strings.HasPrefix(redirect, "//") || strings.Contains(redirect, "\\") {
		return r.HomePath
	}
	if r.Classify(pathOf(redirect)) == GuestOnly {
		return r.HomePath
	}
	return redirect
}

func (r Routes) decide(target string, hasSession bool) Decision {
	switch r.Classify(pathOf(target)) {
	case Public:
		return Decision{Action: Allow}
	case GuestOnly:
		if hasSession {
			return Decision{Action: RedirectHome, Location: r.HomePath}
		}
		return Decision{Action: Allow}
	default:
		if !hasSession {
			return Decision{Action: RedirectLogin, Location: r.LoginLocation(target)}
		}
		return Decision{Action: Allow}
	}
}

func pathOf(target string) string {
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		return target[:i]
	}
	return target
}

func cleanPath(path string) string {
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
