package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/charlesng35/assetdesk/internal/app"
	"github.com/charlesng35/assetdesk/internal/session"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	assets := fstest.MapFS{
		"index.html":     {Data: []byte("<div id=\"root\"></div>")},
		"static/app.css": {Data: []byte("body{}")},
	}
	cfg := &app.Config{
		Services: app.ServicesConfig{AuthURL: "https://auth.example.com", EquipmentURL: "https://equipment.example.com"},
		Server:   app.ServerConfig{PublicRoutes: []string{"/status"}},
	}
	r, err := newRouter(cfg, assets)
	require.NoError(t, err)
	return r
}

func serveRequest(r http.Handler, method, target string, signedIn bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if signedIn {
		req.AddCookie(&http.Cookie{Name: session.AccessTokenCookie, Value: "token"})
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestProtectedRouteRedirectsToLogin(t *testing.T) {
	rec := serveRequest(testRouter(t), http.MethodGet, "/equipments?page=2", false)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login?redirect=%2Fequipments%3Fpage%3D2", rec.Header().Get("Location"))
}

func TestProtectedRouteServesShellWithSession(t *testing.T) {
	rec := serveRequest(testRouter(t), http.MethodGet, "/equipments", true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "root")
	require.Contains(t, rec.Header().Get("Content-Security-Policy"), "https://auth.example.com")
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestLoginBouncesSignedInUsers(t *testing.T) {
	r := testRouter(t)

	rec := serveRequest(r, http.MethodGet, "/login", true)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/dashboard", rec.Header().Get("Location"))

	rec = serveRequest(r, http.MethodGet, "/login", false)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPublicEndpoints(t *testing.T) {
	r := testRouter(t)

	rec := serveRequest(r, http.MethodGet, "/healthz", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = serveRequest(r, http.MethodGet, "/metrics", false)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serveRequest(r, http.MethodGet, "/static/app.css", false)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serveRequest(r, http.MethodGet, "/status", false)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownNonGetRouteIsJSONNotFound(t *testing.T) {
	rec := serveRequest(testRouter(t), http.MethodPost, "/equipments", true)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestRoutesFromConfig(t *testing.T) {
	routes := routesFromConfig(app.ServerConfig{LoginPath: "/signin", HomePath: "/home", PublicRoutes: []string{" /docs/ ", ""}})
	require.Equal(t, "/signin", routes.LoginPath)
	require.Equal(t, "/home", routes.HomePath)
	require.Contains(t, routes.GuestOnly, "/signin")
	require.Contains(t, routes.Public, "/docs/")
}

func TestNewRouterRequiresAssets(t *testing.T) {
	_, err := newRouter(&app.Config{}, nil)
	require.Error(t, err)
	_, err = newRouter(nil, fstest.MapFS{})
	require.Error(t, err)
}

func TestReadinessProbesBackends(t *testing.T) {
	gin.SetMode(gin.TestMode)
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer backend.Close()

	assets := fstest.MapFS{"index.html": {Data: []byte("<div></div>")}, "static/app.css": {Data: []byte("")}}
	cfg := &app.Config{Services: app.ServicesConfig{AuthURL: backend.URL, EquipmentURL: backend.URL}}
	r, err := newRouter(cfg, assets)
	require.NoError(t, err)

	rec := serveRequest(r, http.MethodGet, "/readyz", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"component":"auth"`)

	backend.Close()
	rec = serveRequest(r, http.MethodGet, "/readyz", false)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"down"`)
}
