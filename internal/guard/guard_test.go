package guard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/internal/state"
	"github.com/charlesng35/assetdesk/internal/storage"
)

func TestClassify(t *testing.T) {
	r := DefaultRoutes()
	require.Equal(t, GuestOnly, r.Classify("/login"))
	require.Equal(t, GuestOnly, r.Classify("/register/"))
	require.Equal(t, Public, r.Classify("/static/app.js"))
	require.Equal(t, Public, r.Classify("/healthz"))
	require.Equal(t, Protected, r.Classify("/dashboard"))
	require.Equal(t, Protected, r.Classify("/equipment/42"))
	require.Equal(t, Protected, r.Classify("/"))
}

func TestEdgeDecisions(t *testing.T) {
	r := DefaultRoutes()

	d := r.Decide("/liquidations?status=pending", false)
	require.Equal(t, RedirectLogin, d.Action)
	require.Equal(t, "/login?redirect=%2Fliquidations%3Fstatus%3Dpending", d.Location)

	require.Equal(t, Decision{Action: Allow}, r.Decide("/liquidations", true))
	require.Equal(t, Decision{Action: RedirectHome, Location: "/dashboard"}, r.Decide("/login", true))
	require.Equal(t, Decision{Action: Allow}, r.Decide("/login", false))
	require.Equal(t, Decision{Action: Allow}, r.Decide("/forgot-password", false))
	require.Equal(t, Decision{Action: RedirectLogin, Location: "/login"}, r.Decide("/", false))
}

func TestClientDecisionWaitsForHydration(t *testing.T) {
	r := DefaultRoutes()

	require.Equal(t, Loading, r.DecideClient("/equipment", state.AuthSnapshot{}).Action)
	require.Equal(t, Loading, r.DecideClient("/login", state.AuthSnapshot{}).Action)
	require.Equal(t, Allow, r.DecideClient("/healthz", state.AuthSnapshot{}).Action)

	require.Equal(t, RedirectLogin, r.DecideClient("/equipment", state.AuthSnapshot{Hydrated: true}).Action)
	require.Equal(t, Allow, r.DecideClient("/equipment", state.AuthSnapshot{Hydrated: true, IsAuthenticated: true}).Action)
}

func TestEdgeAndClientAgreeOnceHydrated(t *testing.T) {
	r := DefaultRoutes()
	for _, target := range []string{"/", "/login", "/register", "/equipment", "/static/x.css", "/audits/1?tab=records"} {
		for _, signedIn := range []bool{true, false} {
			edge := r.Decide(target, signedIn)
			client := r.DecideClient(target, state.AuthSnapshot{Hydrated: true, IsAuthenticated: signedIn})
			require.Equal(t, edge, client, "%s signedIn=%v", target, signedIn)
		}
	}
}

func TestForState(t *testing.T) {
	ctx := context.Background()
	r := DefaultRoutes()
	app := state.New(storage.NewMemoryStore(), nil)

	require.Equal(t, Loading, r.ForState(app, "/equipment").Action)

	require.NoError(t, app.Init(ctx))
	require.Equal(t, RedirectLogin, r.ForState(app, "/equipment").Action)

	require.NoError(t, app.Auth.SetUser(ctx, &models.AuthenticatedUser{ID: "u1"}))
	require.Equal(t, Allow, r.ForState(app, "/equipment").Action)
	require.Equal(t, RedirectHome, r.ForState(app, "/login").Action)

	require.Equal(t, Loading, r.ForState(nil, "/equipment").Action)
}

func TestAfterLogin(t *testing.T) {
	r := DefaultRoutes()
	require.Equal(t, "/equipment?page=2", r.AfterLogin("/equipment?page=2"))
	require.Equal(t, "/dashboard", r.AfterLogin(""))
	require.Equal(t, "/dashboard", r.AfterLogin("https://evil.example"))
	require.Equal(t, "/dashboard", r.AfterLogin("//evil.example"))
	require.Equal(t, "/dashboard", r.AfterLogin("/login"))
}
