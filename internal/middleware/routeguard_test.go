package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/charlesng35/assetdesk/internal/guard"
	"github.com/charlesng35/assetdesk/internal/session"
)

func guardedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RouteGuard(guard.DefaultRoutes()))
	ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.URL.Path) }
	r.GET("/login", ok)
	r.GET("/dashboard", ok)
	r.GET("/equipment/:id", ok)
	r.GET("/healthz", ok)
	return r
}

func TestRouteGuardRedirectsAnonymousToLogin(t *testing.T) {
	r := guardedRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/equipment/42?tab=history", nil))

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login?redirect=%2Fequipment%2F42%3Ftab%3Dhistory", w.Header().Get("Location"))
}

func TestRouteGuardOnlyChecksCookiePresence(t *testing.T) {
	r := guardedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/equipment/42", nil)
	req.AddCookie(&http.Cookie{Name: session.AccessTokenCookie, Value: "not-even-a-jwt"})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "/equipment/42", w.Body.String())
}

func TestRouteGuardBouncesSignedInUsersFromLogin(t *testing.T) {
	r := guardedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: session.AccessTokenCookie, Value: "t"})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestRouteGuardLeavesPublicRoutesAlone(t *testing.T) {
	r := guardedRouter()

	for _, path := range []string{"/healthz", "/login"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code, path)
	}
}
