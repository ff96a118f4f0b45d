package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/charlesng35/assetdesk/pkg/response"
)

func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var payload response.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.Equal(t, http.StatusInternalServerError, payload.StatusCode)
	require.Equal(t, "INTERNAL_SERVER_ERROR", payload.Code)
	require.NotContains(t, payload.Message, "boom")
}

func TestNotFoundHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.NoRoute(NotFoundHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/missing", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	var payload response.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	require.Equal(t, http.StatusNotFound, payload.StatusCode)
	require.Equal(t, "NOT_FOUND", payload.Code)
	require.Contains(t, payload.Message, "route /api/missing not found")
}

func TestMethodNotAllowedHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(MethodNotAllowedHandler)
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/healthz", nil))

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	require.Contains(t, w.Body.String(), "METHOD_NOT_ALLOWED")
}
